// Package network carries fusion samples and fused outputs over UDP
// datagrams. Inbound datagrams are JSON-encoded samples, one per packet;
// outbound fused results use the same wire shape with a type tag.
package network

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/banshee-data/pose.fusion/internal/fusion"
)

// Outbound datagram type tags.
const (
	TypeFusedPose  = "fused_pose"
	TypeFusedTwist = "fused_twist"
	TypeTransform  = "transform"
)

// SampleDatagram is the wire form of one inbound sample. Pose roles fill
// Position/Orientation; twist roles fill AngularZ. Covariance always carries
// the full 36 row-major entries.
type SampleDatagram struct {
	Role        string          `json:"role"`
	StampNanos  int64           `json:"stamp_ns"`
	FrameID     string          `json:"frame_id,omitempty"`
	Position    *vector3JSON    `json:"position,omitempty"`
	Orientation *quaternionJSON `json:"orientation,omitempty"`
	AngularZ    *float64        `json:"angular_z,omitempty"`
	Covariance  []float64       `json:"covariance"`
}

type vector3JSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type quaternionJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// OutputDatagram is the wire form of one fused output.
type OutputDatagram struct {
	Type        string          `json:"type"`
	StampNanos  int64           `json:"stamp_ns"`
	FrameID     string          `json:"frame_id,omitempty"`
	ParentFrame string          `json:"parent_frame,omitempty"`
	ChildFrame  string          `json:"child_frame,omitempty"`
	Position    *vector3JSON    `json:"position,omitempty"`
	Orientation *quaternionJSON `json:"orientation,omitempty"`
	AngularZ    *float64        `json:"angular_z,omitempty"`
	Covariance  []float64       `json:"covariance,omitempty"`
}

// DecodeSample parses an inbound datagram into a fusion event. Decode errors
// cover wire well-formedness only: unknown roles, missing payload fields, a
// covariance that is not exactly 36 entries. Numeric content is passed
// through untouched, NaN and Inf included.
func DecodeSample(packet []byte) (fusion.Sample, error) {
	var d SampleDatagram
	if err := json.Unmarshal(packet, &d); err != nil {
		return fusion.Sample{}, fmt.Errorf("network: decode sample: %w", err)
	}

	role := fusion.Role(d.Role)
	if !role.Valid() {
		return fusion.Sample{}, fmt.Errorf("network: unknown role %q", d.Role)
	}
	if len(d.Covariance) != fusion.CovarianceSize {
		return fusion.Sample{}, fmt.Errorf("network: role %q covariance has %d entries, want %d",
			d.Role, len(d.Covariance), fusion.CovarianceSize)
	}

	var cov fusion.Covariance
	copy(cov[:], d.Covariance)
	stamp := time.Unix(0, d.StampNanos)

	s := fusion.Sample{Role: role}
	switch {
	case role.IsPose():
		if d.Position == nil || d.Orientation == nil {
			return fusion.Sample{}, fmt.Errorf("network: pose role %q missing position or orientation", d.Role)
		}
		s.Pose = &fusion.PoseSample{
			Position:    fusion.Vector3{X: d.Position.X, Y: d.Position.Y, Z: d.Position.Z},
			Orientation: fusion.Quaternion{X: d.Orientation.X, Y: d.Orientation.Y, Z: d.Orientation.Z, W: d.Orientation.W},
			Covariance:  cov,
			Stamp:       stamp,
			FrameID:     d.FrameID,
		}
	case role.IsTwist():
		if d.AngularZ == nil {
			return fusion.Sample{}, fmt.Errorf("network: twist role %q missing angular_z", d.Role)
		}
		s.Twist = &fusion.TwistSample{
			AngularZ:   *d.AngularZ,
			Covariance: cov,
			Stamp:      stamp,
		}
	}
	return s, nil
}

// EncodeSample renders a sample as an inbound-format datagram. Used by the
// replay tool and by tests; producers normally live in other processes.
func EncodeSample(s fusion.Sample) ([]byte, error) {
	d := SampleDatagram{Role: string(s.Role)}
	switch {
	case s.Pose != nil:
		d.StampNanos = s.Pose.Stamp.UnixNano()
		d.FrameID = s.Pose.FrameID
		d.Position = &vector3JSON{X: s.Pose.Position.X, Y: s.Pose.Position.Y, Z: s.Pose.Position.Z}
		d.Orientation = &quaternionJSON{X: s.Pose.Orientation.X, Y: s.Pose.Orientation.Y, Z: s.Pose.Orientation.Z, W: s.Pose.Orientation.W}
		d.Covariance = s.Pose.Covariance[:]
	case s.Twist != nil:
		d.StampNanos = s.Twist.Stamp.UnixNano()
		az := s.Twist.AngularZ
		d.AngularZ = &az
		d.Covariance = s.Twist.Covariance[:]
	default:
		return nil, fmt.Errorf("network: sample for role %q has no payload", s.Role)
	}
	return json.Marshal(d)
}

// EncodeFusedPose renders a fused pose as an outbound datagram.
func EncodeFusedPose(p fusion.FusedPose) ([]byte, error) {
	return json.Marshal(OutputDatagram{
		Type:        TypeFusedPose,
		StampNanos:  p.Stamp.UnixNano(),
		FrameID:     p.FrameID,
		Position:    &vector3JSON{X: p.Position.X, Y: p.Position.Y, Z: p.Position.Z},
		Orientation: &quaternionJSON{X: p.Orientation.X, Y: p.Orientation.Y, Z: p.Orientation.Z, W: p.Orientation.W},
		Covariance:  p.Covariance[:],
	})
}

// EncodeFusedTwist renders a fused twist as an outbound datagram.
func EncodeFusedTwist(t fusion.FusedTwist) ([]byte, error) {
	az := t.AngularZ
	return json.Marshal(OutputDatagram{
		Type:       TypeFusedTwist,
		StampNanos: t.Stamp.UnixNano(),
		FrameID:    t.FrameID,
		AngularZ:   &az,
		Covariance: t.Covariance[:],
	})
}

// EncodeTransform renders a transform as an outbound datagram. Covariance is
// omitted: a rigid transform carries none.
func EncodeTransform(tf fusion.Transform) ([]byte, error) {
	return json.Marshal(OutputDatagram{
		Type:        TypeTransform,
		StampNanos:  tf.Stamp.UnixNano(),
		ParentFrame: tf.ParentFrame,
		ChildFrame:  tf.ChildFrame,
		Position:    &vector3JSON{X: tf.Translation.X, Y: tf.Translation.Y, Z: tf.Translation.Z},
		Orientation: &quaternionJSON{X: tf.Rotation.X, Y: tf.Rotation.Y, Z: tf.Rotation.Z, W: tf.Rotation.W},
	})
}
