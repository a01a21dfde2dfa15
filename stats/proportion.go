package stats

import "math"

// Proportion is a count of successes out of a number of trials.
type Proportion struct {
	Successes int
	Trials    int
}

func (p Proportion) Rate() float64 {
	if p.Trials == 0 {
		return 0
	}
	return float64(p.Successes) / float64(p.Trials)
}

// WilsonInterval returns the Wilson score interval for the rate at the
// given confidence (0 to 100 percent). It stays inside [0, 1] even when
// every trial succeeds. With no trials the interval is [0, 1].
func (p Proportion) WilsonInterval(confidence float64) (float64, float64) {
	if p.Trials == 0 {
		return 0, 1
	}
	z := ZVal(confidence)
	n := float64(p.Trials)
	phat := p.Rate()
	z2 := z * z
	denom := 1 + z2/n
	center := (phat + z2/(2*n)) / denom
	half := z * math.Sqrt(phat*(1-phat)/n+z2/(4*n*n)) / denom
	return math.Max(0, center-half), math.Min(1, center+half)
}
