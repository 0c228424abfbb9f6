package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"gopkg.in/yaml.v3"

	"scrolly/store"
)

const (
	DefaultDrawDuration = time.Second
	DefaultStagger      = 600 * time.Millisecond
	DefaultColor        = "#4682b4"
)

// Story is the whole presentation: chart geometry, datasets and the ordered scenes.
type Story struct {
	Title       string            `yaml:"title"`
	Chart       Chart             `yaml:"chart"`
	Datasets    []store.Source    `yaml:"datasets"`
	SharedScale store.ScaleConfig `yaml:"shared_scale"`
	// Stagger separates annotation reveals once a line has finished drawing.
	Stagger time.Duration `yaml:"stagger"`
	Scenes  []Scene       `yaml:"scenes"`
}

type Chart struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Margin Margin `yaml:"margin"`
}

type Margin struct {
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
}

// InnerWidth and InnerHeight are the plot area without margins.
func (c Chart) InnerWidth() int {
	return c.Width - c.Margin.Left - c.Margin.Right
}

func (c Chart) InnerHeight() int {
	return c.Height - c.Margin.Top - c.Margin.Bottom
}

type SceneKind string

const (
	LineScene SceneKind = "line"
	BarScene  SceneKind = "bar"
)

type Scene struct {
	Key       string    `yaml:"key"`
	Title     string    `yaml:"title"`
	Narrative string    `yaml:"narrative"`
	Kind      SceneKind `yaml:"kind"`
	Dataset   string    `yaml:"dataset"`
	// FromYear and ToYear cut a line scene's slice, zero leaves that side open.
	FromYear    int          `yaml:"from_year"`
	ToYear      int          `yaml:"to_year"`
	SharedScale bool         `yaml:"shared_scale"`
	Grouped     bool         `yaml:"grouped"`
	Style       Style        `yaml:"style"`
	Annotations []Annotation `yaml:"annotations"`
}

type Style struct {
	Color        string        `yaml:"color"`
	StrokeWidth  float64       `yaml:"stroke_width"`
	DrawDuration time.Duration `yaml:"draw_duration"`
	XLabel       string        `yaml:"x_label"`
	YLabel       string        `yaml:"y_label"`
}

// Annotation pins a note to the data point of Year. DX and DY offset the note from the point in pixels.
type Annotation struct {
	Year  int    `yaml:"year"`
	Title string `yaml:"title"`
	Label string `yaml:"label"`
	DX    int    `yaml:"dx"`
	DY    int    `yaml:"dy"`
}

// LoadStory reads and validates a story from fsys.
func LoadStory(fsys fs.FS, path string) (*Story, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read story: %w", err)
	}
	return ParseStory(data)
}

func ParseStory(data []byte) (*Story, error) {
	var story Story
	if err := yaml.Unmarshal(data, &story); err != nil {
		return nil, fmt.Errorf("parse story: %w", err)
	}
	story.applyDefaults()
	if err := story.Validate(); err != nil {
		return nil, err
	}
	return &story, nil
}

func (s *Story) applyDefaults() {
	if s.Chart.Width == 0 {
		s.Chart.Width = 1100
	}
	if s.Chart.Height == 0 {
		s.Chart.Height = 500
	}
	if s.Stagger == 0 {
		s.Stagger = DefaultStagger
	}
	s.SharedScale.ChartHeight = float64(s.Chart.InnerHeight())
	for i := range s.Scenes {
		style := &s.Scenes[i].Style
		if style.Color == "" {
			style.Color = DefaultColor
		}
		if style.StrokeWidth == 0 {
			style.StrokeWidth = 2
		}
		if style.DrawDuration == 0 {
			style.DrawDuration = DefaultDrawDuration
		}
	}
}

// Validate checks the story on its own. Whether datasets hold the years it names is checked once data is loaded.
func (s *Story) Validate() error {
	var errs []error
	if s.Chart.InnerWidth() <= 0 || s.Chart.InnerHeight() <= 0 {
		errs = append(errs, errors.New("chart margins leave no room to draw"))
	}
	if len(s.Datasets) == 0 {
		errs = append(errs, errors.New("no datasets"))
	}
	if len(s.Scenes) == 0 {
		errs = append(errs, errors.New("no scenes"))
	}
	keys := make(map[string]bool)
	for i, scene := range s.Scenes {
		if scene.Key == "" {
			errs = append(errs, fmt.Errorf("scene %d has no key", i))
		} else if keys[scene.Key] {
			errs = append(errs, fmt.Errorf("scene key %q used twice", scene.Key))
		}
		keys[scene.Key] = true
		if scene.Kind != LineScene && scene.Kind != BarScene {
			errs = append(errs, fmt.Errorf("scene %q: unknown kind %q", scene.Key, scene.Kind))
		}
		if scene.FromYear != 0 && scene.ToYear != 0 && scene.FromYear > scene.ToYear {
			errs = append(errs, fmt.Errorf("scene %q: from_year after to_year", scene.Key))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid story: %w", err)
	}
	return nil
}
