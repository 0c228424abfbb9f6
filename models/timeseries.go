package models

import (
	"math"
	"sort"
	"time"
)

type TimeSeriesPoint struct {
	year  int
	value float64
}

func NewTimeSeriesPoint(year int, value float64) TimeSeriesPoint {
	return TimeSeriesPoint{year, value}
}

func (p TimeSeriesPoint) Year() int {
	return p.year
}

func (p TimeSeriesPoint) Value() float64 {
	return p.value
}

// Date is the first of January of the point's year.
func (p TimeSeriesPoint) Date() time.Time {
	return time.Date(p.year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

type TimeSeries struct {
	// name is the dataset key the series was loaded under.
	name string
	// unit of the values in points, only used for labels.
	unit string
	// points are ordered by year ascending and never modified after construction.
	points []TimeSeriesPoint
}

// NewTimeSeries copies points and sorts the copy by year.
func NewTimeSeries(name, unit string, points []TimeSeriesPoint) *TimeSeries {
	owned := make([]TimeSeriesPoint, len(points))
	copy(owned, points)
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].year < owned[j].year
	})
	return &TimeSeries{
		name,
		unit,
		owned,
	}
}

func (s *TimeSeries) Name() string {
	return s.name
}

func (s *TimeSeries) Unit() string {
	return s.unit
}

func (s *TimeSeries) Len() int {
	return len(s.points)
}

// Points returns a copy, callers can't reach the backing array.
func (s *TimeSeries) Points() []TimeSeriesPoint {
	out := make([]TimeSeriesPoint, len(s.points))
	copy(out, s.points)
	return out
}

func (s *TimeSeries) At(i int) TimeSeriesPoint {
	return s.points[i]
}

// Extent returns the smallest and largest value. An empty series gives NaN, NaN.
func (s *TimeSeries) Extent() (min, max float64) {
	if len(s.points) == 0 {
		return math.NaN(), math.NaN()
	}
	min, max = s.points[0].value, s.points[0].value
	for _, p := range s.points[1:] {
		if p.value < min {
			min = p.value
		}
		if p.value > max {
			max = p.value
		}
	}
	return min, max
}

func (s *TimeSeries) YearExtent() (first, last int) {
	if len(s.points) == 0 {
		return 0, 0
	}
	return s.points[0].year, s.points[len(s.points)-1].year
}

func (s *TimeSeries) Find(year int) (TimeSeriesPoint, bool) {
	i := sort.Search(len(s.points), func(i int) bool {
		return s.points[i].year >= year
	})
	if i < len(s.points) && s.points[i].year == year {
		return s.points[i], true
	}
	return TimeSeriesPoint{}, false
}

// Filter builds a new series from the points matching keep.
func (s *TimeSeries) Filter(keep func(TimeSeriesPoint) bool) *TimeSeries {
	out := make([]TimeSeriesPoint, 0, len(s.points))
	for _, p := range s.points {
		if keep(p) {
			out = append(out, p)
		}
	}
	return &TimeSeries{s.name, s.unit, out}
}

// Between keeps years in [from, to]. A zero bound is open.
func (s *TimeSeries) Between(from, to int) *TimeSeries {
	return s.Filter(func(p TimeSeriesPoint) bool {
		if from != 0 && p.year < from {
			return false
		}
		if to != 0 && p.year > to {
			return false
		}
		return true
	})
}
