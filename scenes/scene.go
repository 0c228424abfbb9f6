package scenes

import (
	"fmt"
	"html/template"

	"scrolly/config"
	"scrolly/models"
	"scrolly/store"
)

type Kind string

const (
	Line Kind = "line"
	Bar  Kind = "bar"
)

// Scene describes one step of the story. Scenes are built once at startup and never modified.
type Scene struct {
	Index     int
	Key       string
	Title     string
	Narrative template.HTML
	Kind      Kind
	Dataset   string
	// FromYear and ToYear cut the line slice, zero is an open bound.
	FromYear        int
	ToYear          int
	UsesSharedScale bool
	// Grouped bar scenes draw one group at a time and offer a selector.
	Grouped     bool
	Style       config.Style
	Annotations []config.Annotation
}

// View is the slice of data a scene draws. Scale is nil when the scene picks its own.
type View struct {
	Series     *models.TimeSeries
	Categories *models.CategorySeries
	Group      string
	Groups     []string
	Scale      *models.SharedScale
}

// View slices the store for this scene. The store's series are filtered into new series, never modified.
// For grouped scenes an empty group means the dataset's default group.
func (s *Scene) View(st *store.Store, group string) (View, error) {
	var view View
	switch s.Kind {
	case Line:
		series, ok := st.TimeSeries(s.Dataset)
		if !ok {
			return view, fmt.Errorf("scene %q: %w %q", s.Key, store.ErrUnknownSource, s.Dataset)
		}
		view.Series = series.Between(s.FromYear, s.ToYear)
		if s.UsesSharedScale {
			if shared, ok := st.SharedScale(); ok {
				view.Scale = &shared
			}
		}
	case Bar:
		categories, ok := st.Categories(s.Dataset)
		if !ok {
			return view, fmt.Errorf("scene %q: %w %q", s.Key, store.ErrUnknownSource, s.Dataset)
		}
		if !s.Grouped {
			view.Categories = categories
			return view, nil
		}
		if group == "" {
			group = categories.DefaultGroup()
		}
		view.Group = group
		view.Groups = categories.Groups()
		view.Categories = categories.ForGroup(group)
	default:
		return view, fmt.Errorf("scene %q: unknown kind %q", s.Key, s.Kind)
	}
	return view, nil
}
