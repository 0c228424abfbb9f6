package models

import (
	"math"
)

// DefaultTickCount is the tick count used when rounding a domain outward.
const DefaultTickCount = 10

// SharedScale maps values onto a vertical pixel range. It is a value type, copies can't affect each other.
type SharedScale struct {
	// paddedMin and paddedMax are the data extent widened by the padding, before rounding.
	paddedMin float64
	paddedMax float64
	// domainMin and domainMax are the padded extent rounded outward to nice boundaries.
	domainMin float64
	domainMax float64
	// rangeStart maps domainMin and rangeEnd maps domainMax. Inverted for charts so larger values sit higher.
	rangeStart float64
	rangeEnd   float64
	// step is the tick increment the domain was rounded to.
	step float64
}

// NewLinearScale pads [min, max], rounds it outward and maps it to [height, 0].
func NewLinearScale(min, max, padding, height float64) SharedScale {
	a, b := min-padding, max+padding
	d0, d1, step := Nice(a, b, DefaultTickCount)
	return SharedScale{
		paddedMin:  a,
		paddedMax:  b,
		domainMin:  d0,
		domainMax:  d1,
		rangeStart: height,
		rangeEnd:   0,
		step:       step,
	}
}

func (s SharedScale) Padded() (min, max float64) {
	return s.paddedMin, s.paddedMax
}

func (s SharedScale) Domain() (min, max float64) {
	return s.domainMin, s.domainMax
}

func (s SharedScale) Range() (start, end float64) {
	return s.rangeStart, s.rangeEnd
}

func (s SharedScale) Step() float64 {
	return s.step
}

// Map linearly interpolates v from the domain onto the range.
func (s SharedScale) Map(v float64) float64 {
	span := s.domainMax - s.domainMin
	if span == 0 {
		return (s.rangeStart + s.rangeEnd) / 2
	}
	t := (v - s.domainMin) / span
	return s.rangeStart + t*(s.rangeEnd-s.rangeStart)
}

// Ticks are the multiples of the step inside the domain.
func (s SharedScale) Ticks() []float64 {
	if s.step <= 0 || math.IsNaN(s.step) {
		return []float64{s.domainMin, s.domainMax}
	}
	first := math.Ceil(s.domainMin/s.step - 1e-9)
	last := math.Floor(s.domainMax/s.step + 1e-9)
	ticks := make([]float64, 0, int(last-first)+1)
	for n := first; n <= last; n++ {
		ticks = append(ticks, n*s.step)
	}
	return ticks
}

// Nice rounds [start, stop] outward so both ends fall on a multiple of a 1, 2, 5 or 10 step sized for count ticks.
// Iterates until the step settles because widening the domain can change the step.
func Nice(start, stop float64, count int) (float64, float64, float64) {
	if math.IsNaN(start) || math.IsNaN(stop) || count <= 0 {
		return start, stop, 0
	}
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}

	var prestep, step float64
settle:
	for i := 0; i < 10; i++ {
		step = tickIncrement(start, stop, count)
		if step == prestep {
			break
		}
		switch {
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			break settle
		}
		prestep = step
	}

	// Negative increments encode 1/step for sub-unit spans.
	if step < 0 {
		step = -1 / step
	}
	if reversed {
		return stop, start, step
	}
	return start, stop, step
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / math.Max(0, float64(count))
	if step == 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return 0
	}
	power := math.Floor(math.Log10(step))
	errRatio := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case errRatio >= e10:
		factor = 10
	case errRatio >= e5:
		factor = 5
	case errRatio >= e2:
		factor = 2
	}
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}
