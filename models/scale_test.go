package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNice(t *testing.T) {
	tests := []struct {
		name           string
		start, stop    float64
		wantLo, wantHi float64
		wantStep       float64
	}{
		{"hundreds", 9, 901, 0, 1000, 100},
		{"already nice", 0, 100, 0, 100, 10},
		{"fractions", 0.13, 0.87, 0.1, 0.9, 0.1},
		{"negative", -13, 47, -15, 50, 5},
		{"reversed", 901, 9, 1000, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, step := Nice(tt.start, tt.stop, DefaultTickCount)
			assert.InDelta(t, tt.wantLo, lo, 1e-9)
			assert.InDelta(t, tt.wantHi, hi, 1e-9)
			assert.InDelta(t, tt.wantStep, step, 1e-9)
		})
	}
}

func TestNiceDegenerate(t *testing.T) {
	lo, hi, step := Nice(5, 5, DefaultTickCount)
	assert.Equal(t, 5.0, lo)
	assert.Equal(t, 5.0, hi)
	assert.Equal(t, 0.0, step)
}

func TestLinearScale(t *testing.T) {
	s := NewLinearScale(10, 900, 1, 460)

	pMin, pMax := s.Padded()
	assert.Equal(t, 9.0, pMin)
	assert.Equal(t, 901.0, pMax)

	dMin, dMax := s.Domain()
	assert.Equal(t, 0.0, dMin)
	assert.Equal(t, 1000.0, dMax)

	r0, r1 := s.Range()
	assert.Equal(t, 460.0, r0)
	assert.Equal(t, 0.0, r1)

	assert.Equal(t, 460.0, s.Map(0))
	assert.Equal(t, 0.0, s.Map(1000))
	assert.Equal(t, 230.0, s.Map(500))

	assert.Len(t, s.Ticks(), 11)
	assert.Equal(t, 0.0, s.Ticks()[0])
	assert.Equal(t, 1000.0, s.Ticks()[10])
}
