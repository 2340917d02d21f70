package fusion

import "fmt"

// Weights holds the four blend coefficients, one pair per fusion engine.
// The engines apply them as-is: nothing normalizes a pair that does not sum
// to one, so misconfigured weights produce a scaled, physically meaningless
// blend rather than an error.
type Weights struct {
	LidarPose   float64
	GNSSPose    float64
	EKFTwist    float64
	FilterTwist float64
}

// DefaultWeights returns an even 0.5/0.5 split for both pairs.
func DefaultWeights() Weights {
	return Weights{
		LidarPose:   0.5,
		GNSSPose:    0.5,
		EKFTwist:    0.5,
		FilterTwist: 0.5,
	}
}

// Check reports configuration problems: a pair whose members leave [0,1] or
// whose sum strays from 1.0 beyond a small tolerance. Callers decide what to
// do with the result; the fusion engines themselves never check.
func (w Weights) Check() []error {
	var errs []error
	pairs := []struct {
		name   string
		w1, w2 float64
	}{
		{"pose", w.LidarPose, w.GNSSPose},
		{"twist", w.EKFTwist, w.FilterTwist},
	}
	for _, p := range pairs {
		if p.w1 < 0 || p.w1 > 1 || p.w2 < 0 || p.w2 > 1 {
			errs = append(errs, fmt.Errorf("%s weights outside [0,1]: %g, %g", p.name, p.w1, p.w2))
		}
		if sum := p.w1 + p.w2; sum < 1-1e-9 || sum > 1+1e-9 {
			errs = append(errs, fmt.Errorf("%s weights sum to %g, want 1.0", p.name, sum))
		}
	}
	return errs
}
