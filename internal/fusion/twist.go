package fusion

import "time"

// FuseTwists blends the two angular-rate estimates by the given weights.
//
// Only the rate about the vertical axis is combined; linear motion and the
// x/y angular channels are zero by contract, not computed. Covariance is the
// same elementwise weighted blend used for poses. No validation is applied.
func FuseTwists(ekf, filter TwistSample, wEKF, wFilter float64, stamp time.Time) FusedTwist {
	fused := FusedTwist{
		AngularZ: wEKF*ekf.AngularZ + wFilter*filter.AngularZ,
		Stamp:    stamp,
		FrameID:  WorldFrame,
	}
	for i := 0; i < CovarianceSize; i++ {
		fused.Covariance[i] = wEKF*ekf.Covariance[i] + wFilter*filter.Covariance[i]
	}
	return fused
}
