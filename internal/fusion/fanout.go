package fusion

type poseFanout []PoseSink

func (f poseFanout) PublishPose(p FusedPose) {
	for _, s := range f {
		s.PublishPose(p)
	}
}

// FanoutPoses combines several pose sinks into one. Nil sinks are
// skipped, so callers can pass optional subsystems unconditionally.
func FanoutPoses(sinks ...PoseSink) PoseSink {
	out := make(poseFanout, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type twistFanout []TwistSink

func (f twistFanout) PublishTwist(t FusedTwist) {
	for _, s := range f {
		s.PublishTwist(t)
	}
}

// FanoutTwists combines several twist sinks into one.
func FanoutTwists(sinks ...TwistSink) TwistSink {
	out := make(twistFanout, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type transformFanout []TransformSink

func (f transformFanout) BroadcastTransform(tf Transform) {
	for _, s := range f {
		s.BroadcastTransform(tf)
	}
}

// FanoutTransforms combines several transform sinks into one.
func FanoutTransforms(sinks ...TransformSink) TransformSink {
	out := make(transformFanout, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
