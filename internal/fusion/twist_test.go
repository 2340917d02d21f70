package fusion

import (
	"math"
	"testing"
	"time"
)

func twistSample(rate float64) TwistSample {
	s := TwistSample{
		AngularZ: rate,
		Stamp:    time.Unix(1700000000, 0),
	}
	for i := range s.Covariance {
		s.Covariance[i] = rate * float64(i+1)
	}
	return s
}

func TestFuseTwists_WeightedRate(t *testing.T) {
	a := twistSample(0.4)
	b := twistSample(0.8)

	fused := FuseTwists(a, b, 0.5, 0.5, time.Now())

	want := 0.5*0.4 + 0.5*0.8
	if fused.AngularZ != want {
		t.Errorf("fused angular z = %g, want %g", fused.AngularZ, want)
	}
}

func TestFuseTwists_CovarianceLinearity(t *testing.T) {
	a := twistSample(1.25)
	b := twistSample(-2.5)

	w1, w2 := 0.25, 0.75
	fused := FuseTwists(a, b, w1, w2, time.Now())

	for i := 0; i < CovarianceSize; i++ {
		want := w1*a.Covariance[i] + w2*b.Covariance[i]
		if fused.Covariance[i] != want {
			t.Errorf("covariance[%d] = %g, want %g", i, fused.Covariance[i], want)
		}
	}
}

func TestFuseTwists_IdentityWeights(t *testing.T) {
	a := twistSample(2.5)
	b := twistSample(-1)

	fused := FuseTwists(a, b, 1, 0, time.Now())
	if fused.AngularZ != a.AngularZ || fused.Covariance != a.Covariance {
		t.Error("weights (1,0) did not reproduce the ekf sample")
	}

	fused = FuseTwists(a, b, 0, 1, time.Now())
	if fused.AngularZ != b.AngularZ || fused.Covariance != b.Covariance {
		t.Error("weights (0,1) did not reproduce the filter sample")
	}
}

func TestFuseTwists_NonFiniteValuesPropagate(t *testing.T) {
	a := twistSample(math.Inf(-1))
	b := twistSample(1)

	fused := FuseTwists(a, b, 0.5, 0.5, time.Now())

	if !math.IsInf(fused.AngularZ, -1) {
		t.Errorf("Inf input did not propagate: angular z = %g", fused.AngularZ)
	}
}

func TestFuseTwists_FrameFixed(t *testing.T) {
	fused := FuseTwists(twistSample(1), twistSample(2), 0.5, 0.5, time.Now())
	if fused.FrameID != WorldFrame {
		t.Errorf("frame = %q, want %q", fused.FrameID, WorldFrame)
	}
}
