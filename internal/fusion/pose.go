package fusion

import "time"

// FusePoses blends the two position estimates by the given weights.
//
// Position is the componentwise weighted sum. Orientation is copied from the
// lidar sample verbatim; the satellite fix's orientation is discarded. Each
// of the 36 covariance entries is blended independently by the same weights.
// This is not a statistically principled covariance combination (no
// inversion, no cross-covariance term) and is kept that way on purpose.
// Non-finite inputs propagate into the output unchanged.
func FusePoses(lidar, gnss PoseSample, wLidar, wGNSS float64, stamp time.Time) FusedPose {
	fused := FusedPose{
		Position: Vector3{
			X: wLidar*lidar.Position.X + wGNSS*gnss.Position.X,
			Y: wLidar*lidar.Position.Y + wGNSS*gnss.Position.Y,
			Z: wLidar*lidar.Position.Z + wGNSS*gnss.Position.Z,
		},
		Orientation: lidar.Orientation,
		Stamp:       stamp,
		FrameID:     WorldFrame,
	}
	for i := 0; i < CovarianceSize; i++ {
		fused.Covariance[i] = wLidar*lidar.Covariance[i] + wGNSS*gnss.Covariance[i]
	}
	return fused
}
