package store

import (
	"fmt"
	"sort"

	"scrolly/models"
)

// ScaleConfig picks the series the shared scale is computed from. An empty Source means no shared scale.
type ScaleConfig struct {
	Source      string  `yaml:"source"`
	Padding     float64 `yaml:"padding"`
	ChartHeight float64 `yaml:"-"`
}

// Store holds the loaded datasets and the shared scale. Nothing in it changes after New returns.
type Store struct {
	timeSeries map[string]*models.TimeSeries
	categories map[string]*models.CategorySeries

	sharedScale    models.SharedScale
	hasSharedScale bool
}

// New indexes the series by name and computes the shared scale once.
func New(scale ScaleConfig, timeSeries []*models.TimeSeries, categories []*models.CategorySeries) (*Store, error) {
	s := &Store{
		timeSeries: make(map[string]*models.TimeSeries, len(timeSeries)),
		categories: make(map[string]*models.CategorySeries, len(categories)),
	}
	for _, ts := range timeSeries {
		if err := s.claim(ts.Name()); err != nil {
			return nil, err
		}
		s.timeSeries[ts.Name()] = ts
	}
	for _, cs := range categories {
		if err := s.claim(cs.Name()); err != nil {
			return nil, err
		}
		s.categories[cs.Name()] = cs
	}

	if scale.Source != "" {
		series, ok := s.timeSeries[scale.Source]
		if !ok {
			return nil, fmt.Errorf("shared scale: %w %q", ErrUnknownSource, scale.Source)
		}
		shared, err := ComputeSharedScale(series, scale.Padding, scale.ChartHeight)
		if err != nil {
			return nil, fmt.Errorf("shared scale: %w", err)
		}
		s.sharedScale = shared
		s.hasSharedScale = true
	}
	return s, nil
}

func (s *Store) claim(name string) error {
	_, ts := s.timeSeries[name]
	_, cs := s.categories[name]
	if ts || cs {
		return fmt.Errorf("dataset %q registered twice", name)
	}
	return nil
}

func (s *Store) TimeSeries(name string) (*models.TimeSeries, bool) {
	ts, ok := s.timeSeries[name]
	return ts, ok
}

func (s *Store) Categories(name string) (*models.CategorySeries, bool) {
	cs, ok := s.categories[name]
	return cs, ok
}

// SharedScale returns the one scale every sharing scene renders against.
func (s *Store) SharedScale() (models.SharedScale, bool) {
	return s.sharedScale, s.hasSharedScale
}

// Names lists every dataset, sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.timeSeries)+len(s.categories))
	for name := range s.timeSeries {
		names = append(names, name)
	}
	for name := range s.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
