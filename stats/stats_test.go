package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunningStat(t *testing.T) {
	type tc struct {
		samples []float64
		mean    float64
		stdev   float64
		min     float64
		max     float64
	}
	cases := []tc{
		{[]float64{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638, 10, 23},
		{[]float64{5, 7, 9, 9, 6, 8}, 7.3333333333333, 1.6329931618555, 5, 9},
		{[]float64{1}, 1, 0, 1, 1},
		{[]float64{}, 0, 0, 0, 0},
		{[]float64{1, 1}, 1, 0, 1, 1},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, v := range c.samples {
			s.Push(v)
		}
		assert.Equal(t, len(c.samples), s.Count())
		assert.InDelta(t, c.mean, s.Mean(), 1e-9)
		assert.InDelta(t, c.stdev, s.Stdev(), 1e-9)
		assert.Equal(t, c.min, s.Min())
		assert.Equal(t, c.max, s.Max())
	}
}

func TestZVal(t *testing.T) {
	assert.InDelta(t, 1.959964, ZVal(95), 1e-5)
	assert.InDelta(t, 2.575829, ZVal(99), 1e-5)
	assert.InDelta(t, 1.644854, ZVal(90), 1e-5)
}

func TestWilsonInterval(t *testing.T) {
	lo, hi := Proportion{Successes: 100, Trials: 100}.WilsonInterval(95)
	assert.InDelta(t, 0.963007, lo, 1e-5)
	assert.InDelta(t, 1.0, hi, 1e-9)

	lo, hi = Proportion{Successes: 50, Trials: 100}.WilsonInterval(95)
	assert.InDelta(t, 1.0, lo+hi, 1e-9)
	assert.InDelta(t, 0.1923, hi-lo, 1e-3)

	lo, hi = Proportion{}.WilsonInterval(95)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}
