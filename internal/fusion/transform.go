package fusion

// DeriveTransform projects a fused pose into the map->base_link transform.
// Translation and rotation are taken one-to-one from the pose; any frame
// convention was already baked in by the source system, so no reprojection
// or frame-graph lookup happens here.
func DeriveTransform(pose FusedPose) Transform {
	return Transform{
		Translation: pose.Position,
		Rotation:    pose.Orientation,
		Stamp:       pose.Stamp,
		ParentFrame: WorldFrame,
		ChildFrame:  BodyFrame,
	}
}
