package models

import (
	"sort"
)

type CategoryPoint struct {
	category string
	value    float64
	// group is optional, e.g. the country a row belongs to. Empty when the source has no group column.
	group string
}

func NewCategoryPoint(category string, value float64, group string) CategoryPoint {
	return CategoryPoint{category, value, group}
}

func (p CategoryPoint) Category() string {
	return p.category
}

func (p CategoryPoint) Value() float64 {
	return p.value
}

func (p CategoryPoint) Group() string {
	return p.group
}

type CategorySeries struct {
	// name is the dataset key the series was loaded under.
	name string
	// sentinel is the aggregate group listed first and used as the default selection, e.g. "World".
	sentinel string
	// points keep source order, that's the order bars are drawn in.
	points []CategoryPoint
}

func NewCategorySeries(name, sentinel string, points []CategoryPoint) *CategorySeries {
	owned := make([]CategoryPoint, len(points))
	copy(owned, points)
	return &CategorySeries{
		name,
		sentinel,
		owned,
	}
}

func (s *CategorySeries) Name() string {
	return s.name
}

func (s *CategorySeries) Sentinel() string {
	return s.sentinel
}

func (s *CategorySeries) Len() int {
	return len(s.points)
}

func (s *CategorySeries) Points() []CategoryPoint {
	out := make([]CategoryPoint, len(s.points))
	copy(out, s.points)
	return out
}

func (s *CategorySeries) HasGroups() bool {
	for _, p := range s.points {
		if p.group != "" {
			return true
		}
	}
	return false
}

// Groups lists the distinct non-empty groups, the sentinel first when present and the rest sorted.
func (s *CategorySeries) Groups() []string {
	seen := make(map[string]bool)
	var groups []string
	hasSentinel := false
	for _, p := range s.points {
		if p.group == "" || seen[p.group] {
			continue
		}
		seen[p.group] = true
		if p.group == s.sentinel {
			hasSentinel = true
			continue
		}
		groups = append(groups, p.group)
	}
	sort.Strings(groups)
	if hasSentinel {
		groups = append([]string{s.sentinel}, groups...)
	}
	return groups
}

// DefaultGroup is the sentinel if the data has it, otherwise the first group. Empty for ungrouped data.
func (s *CategorySeries) DefaultGroup() string {
	groups := s.Groups()
	if len(groups) == 0 {
		return ""
	}
	return groups[0]
}

func (s *CategorySeries) HasGroup(group string) bool {
	for _, p := range s.points {
		if p.group == group {
			return true
		}
	}
	return false
}

// ForGroup builds a new series holding only rows of group. An empty group returns every row.
func (s *CategorySeries) ForGroup(group string) *CategorySeries {
	if group == "" {
		return NewCategorySeries(s.name, s.sentinel, s.points)
	}
	out := make([]CategoryPoint, 0, len(s.points))
	for _, p := range s.points {
		if p.group == group {
			out = append(out, p)
		}
	}
	return &CategorySeries{s.name, s.sentinel, out}
}

func (s *CategorySeries) Total() float64 {
	total := 0.0
	for _, p := range s.points {
		total += p.value
	}
	return total
}

func (s *CategorySeries) Max() float64 {
	max := 0.0
	for i, p := range s.points {
		if i == 0 || p.value > max {
			max = p.value
		}
	}
	return max
}
