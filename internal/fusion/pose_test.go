package fusion

import (
	"math"
	"testing"
	"time"
)

func poseSample(x, y, z float64) PoseSample {
	s := PoseSample{
		Position:    Vector3{X: x, Y: y, Z: z},
		Orientation: Quaternion{X: 0, Y: 0, Z: 0.3826834, W: 0.9238795},
		Stamp:       time.Unix(1700000000, 0),
		FrameID:     WorldFrame,
	}
	for i := range s.Covariance {
		s.Covariance[i] = float64(i) * 0.01
	}
	return s
}

func TestFusePoses_WeightedPosition(t *testing.T) {
	a := poseSample(1, 0, 0)
	b := poseSample(3, 0, 0)

	fused := FusePoses(a, b, 0.5, 0.5, time.Now())

	if fused.Position.X != 2 || fused.Position.Y != 0 || fused.Position.Z != 0 {
		t.Errorf("fused position = %+v, want (2,0,0)", fused.Position)
	}
}

func TestFusePoses_Linearity(t *testing.T) {
	a := poseSample(1.5, -2.25, 10)
	b := poseSample(-4, 8.5, 0.125)
	for i := range a.Covariance {
		a.Covariance[i] = float64(i) * 1.5
		b.Covariance[i] = float64(36-i) * -0.25
	}

	w1, w2 := 0.7, 0.3
	fused := FusePoses(a, b, w1, w2, time.Now())

	wantX := w1*a.Position.X + w2*b.Position.X
	wantY := w1*a.Position.Y + w2*b.Position.Y
	wantZ := w1*a.Position.Z + w2*b.Position.Z
	if fused.Position.X != wantX || fused.Position.Y != wantY || fused.Position.Z != wantZ {
		t.Errorf("fused position = %+v, want (%g,%g,%g)", fused.Position, wantX, wantY, wantZ)
	}

	for i := 0; i < CovarianceSize; i++ {
		want := w1*a.Covariance[i] + w2*b.Covariance[i]
		if fused.Covariance[i] != want {
			t.Errorf("covariance[%d] = %g, want %g", i, fused.Covariance[i], want)
		}
	}
}

func TestFusePoses_OrientationFromLidarOnly(t *testing.T) {
	a := poseSample(0, 0, 0)
	a.Orientation = Quaternion{X: 0.1, Y: 0.2, Z: 0.3, W: 0.9}
	b := poseSample(0, 0, 0)
	b.Orientation = Quaternion{X: 0.9, Y: 0.8, Z: 0.7, W: 0.1}

	fused := FusePoses(a, b, 0.5, 0.5, time.Now())

	if fused.Orientation != a.Orientation {
		t.Errorf("orientation = %+v, want lidar orientation %+v", fused.Orientation, a.Orientation)
	}
}

func TestFusePoses_IdentityWeights(t *testing.T) {
	a := poseSample(5, 6, 7)
	b := poseSample(-1, -2, -3)

	// (1,0) reproduces the lidar sample's fields exactly.
	fused := FusePoses(a, b, 1, 0, time.Now())
	if fused.Position != a.Position {
		t.Errorf("weights (1,0): position = %+v, want %+v", fused.Position, a.Position)
	}
	if fused.Covariance != a.Covariance {
		t.Error("weights (1,0): covariance does not match lidar covariance")
	}

	// (0,1) reproduces the gnss position and covariance, but the orientation
	// still comes from the lidar side.
	fused = FusePoses(a, b, 0, 1, time.Now())
	if fused.Position != b.Position {
		t.Errorf("weights (0,1): position = %+v, want %+v", fused.Position, b.Position)
	}
	if fused.Covariance != b.Covariance {
		t.Error("weights (0,1): covariance does not match gnss covariance")
	}
	if fused.Orientation != a.Orientation {
		t.Error("weights (0,1): orientation must still come from the lidar sample")
	}
}

func TestFusePoses_NonFiniteValuesPropagate(t *testing.T) {
	a := poseSample(1, 2, 3)
	a.Position.X = math.NaN()
	a.Covariance[0] = math.Inf(1)
	b := poseSample(4, 5, 6)

	fused := FusePoses(a, b, 0.5, 0.5, time.Now())

	if !math.IsNaN(fused.Position.X) {
		t.Errorf("NaN input did not propagate: position.X = %g", fused.Position.X)
	}
	if !math.IsInf(fused.Covariance[0], 1) {
		t.Errorf("Inf input did not propagate: covariance[0] = %g", fused.Covariance[0])
	}
}

func TestFusePoses_StampAndFrame(t *testing.T) {
	stamp := time.Unix(1700000123, 456)
	fused := FusePoses(poseSample(0, 0, 0), poseSample(0, 0, 0), 0.5, 0.5, stamp)

	if !fused.Stamp.Equal(stamp) {
		t.Errorf("stamp = %v, want %v", fused.Stamp, stamp)
	}
	if fused.FrameID != WorldFrame {
		t.Errorf("frame = %q, want %q", fused.FrameID, WorldFrame)
	}
}
