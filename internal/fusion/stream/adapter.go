// Package stream provides gRPC streaming of fused pose output to
// downstream consumers (dashboards, bag recorders, remote monitors).
// This file converts the internal fusion model to the wire protobufs.
package stream

import (
	"github.com/banshee-data/pose.fusion/internal/fusion"
	"github.com/banshee-data/pose.fusion/internal/fusion/stream/pb"
)

func vectorToProto(v fusion.Vector3) *pb.Vector3 {
	return &pb.Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

func quaternionToProto(q fusion.Quaternion) *pb.Quaternion {
	return &pb.Quaternion{X: q.X, Y: q.Y, Z: q.Z, W: q.W}
}

func covarianceToProto(c fusion.Covariance) []float64 {
	out := make([]float64, len(c))
	copy(out, c[:])
	return out
}

// FusedPoseToProto converts a fused pose to its wire form.
func FusedPoseToProto(p fusion.FusedPose) *pb.FusedPose {
	return &pb.FusedPose{
		StampNs:     p.Stamp.UnixNano(),
		FrameId:     p.FrameID,
		Position:    vectorToProto(p.Position),
		Orientation: quaternionToProto(p.Orientation),
		Covariance:  covarianceToProto(p.Covariance),
	}
}

// FusedTwistToProto converts a fused twist to its wire form.
func FusedTwistToProto(t fusion.FusedTwist) *pb.FusedTwist {
	return &pb.FusedTwist{
		StampNs:    t.Stamp.UnixNano(),
		FrameId:    t.FrameID,
		AngularZ:   t.AngularZ,
		Covariance: covarianceToProto(t.Covariance),
	}
}

// TransformToProto converts a derived transform to its wire form.
func TransformToProto(tf fusion.Transform) *pb.Transform {
	return &pb.Transform{
		StampNs:     tf.Stamp.UnixNano(),
		ParentFrame: tf.ParentFrame,
		ChildFrame:  tf.ChildFrame,
		Translation: vectorToProto(tf.Translation),
		Rotation:    quaternionToProto(tf.Rotation),
	}
}
