package fusion

import "time"

// Reference frame labels for fused outputs. The transform parent/child pair
// matches the frame convention already baked in by the upstream localizer.
const (
	WorldFrame     = "map"
	BodyFrame      = "base_link"
	CovarianceSize = 36 // 6x6, row-major
)

// Role identifies one of the four inbound sample streams.
type Role string

const (
	RoleLidarPose   Role = "lidar_pose"   // primary position estimate (localizer)
	RoleGNSSPose    Role = "gnss_pose"    // secondary position estimate (satellite fix)
	RoleEKFTwist    Role = "ekf_twist"    // primary angular-rate estimate
	RoleFilterTwist Role = "filter_twist" // secondary angular-rate estimate
)

// Roles lists all valid roles.
var Roles = []Role{RoleLidarPose, RoleGNSSPose, RoleEKFTwist, RoleFilterTwist}

// IsPose reports whether the role carries a position sample.
func (r Role) IsPose() bool {
	return r == RoleLidarPose || r == RoleGNSSPose
}

// IsTwist reports whether the role carries a rate sample.
func (r Role) IsTwist() bool {
	return r == RoleEKFTwist || r == RoleFilterTwist
}

// Counterpart returns the other half of the role's fusion pair.
func (r Role) Counterpart() Role {
	switch r {
	case RoleLidarPose:
		return RoleGNSSPose
	case RoleGNSSPose:
		return RoleLidarPose
	case RoleEKFTwist:
		return RoleFilterTwist
	case RoleFilterTwist:
		return RoleEKFTwist
	}
	return ""
}

// Valid reports whether the role is one of the four known streams.
func (r Role) Valid() bool {
	return r.Counterpart() != ""
}

// Vector3 is a position or translation in meters.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

// Quaternion is an orientation (x, y, z, w). Unit norm by contract with the
// producing system; never normalized or validated here.
type Quaternion struct {
	X float64
	Y float64
	Z float64
	W float64
}

// Covariance is a 6x6 covariance matrix stored row-major. Symmetric
// positive-semidefinite by contract, not validated.
type Covariance [CovarianceSize]float64

// PoseSample is one inbound position estimate. Immutable once constructed;
// the cache replaces samples wholesale and never merges partial updates.
type PoseSample struct {
	Position    Vector3
	Orientation Quaternion
	Covariance  Covariance
	Stamp       time.Time
	FrameID     string
}

// TwistSample is one inbound angular-rate estimate. Only the rate about the
// vertical axis is meaningful to the combiner; the remaining five kinematic
// channels in the source message are unused.
type TwistSample struct {
	AngularZ   float64
	Covariance Covariance
	Stamp      time.Time
}

// FusedPose is the weighted blend of the two position streams. Orientation
// is copied from the lidar side only.
type FusedPose struct {
	Position    Vector3
	Orientation Quaternion
	Covariance  Covariance
	Stamp       time.Time
	FrameID     string
}

// FusedTwist is the weighted blend of the two rate streams. Linear motion
// and the x/y angular channels are fixed at zero by contract.
type FusedTwist struct {
	AngularZ   float64
	Covariance Covariance
	Stamp      time.Time
	FrameID    string
}

// Transform is a rigid-body transform between two named frames, derived
// one-to-one from a fused pose.
type Transform struct {
	Translation Vector3
	Rotation    Quaternion
	Stamp       time.Time
	ParentFrame string
	ChildFrame  string
}

// Sample is the single inbound event type consumed by the controller.
// Exactly one of Pose or Twist is set, according to the role.
type Sample struct {
	Role  Role
	Pose  *PoseSample
	Twist *TwistSample
}
