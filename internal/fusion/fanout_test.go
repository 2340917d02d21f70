package fusion

import "testing"

func TestFanoutDeliversToAllSinks(t *testing.T) {
	a := &recordingSinks{}
	b := &recordingSinks{}

	poses := FanoutPoses(a, b)
	twists := FanoutTwists(a, b)
	transforms := FanoutTransforms(a, b)

	poses.PublishPose(FusedPose{FrameID: WorldFrame})
	twists.PublishTwist(FusedTwist{FrameID: BodyFrame})
	transforms.BroadcastTransform(Transform{ParentFrame: WorldFrame, ChildFrame: BodyFrame})

	for i, sinks := range []*recordingSinks{a, b} {
		p, tw, tf := sinks.counts()
		if p != 1 || tw != 1 || tf != 1 {
			t.Errorf("sink %d: got poses=%d twists=%d transforms=%d, want 1 each", i, p, tw, tf)
		}
	}
}

func TestFanoutSkipsNilSinks(t *testing.T) {
	a := &recordingSinks{}

	poses := FanoutPoses(nil, a, nil)
	poses.PublishPose(FusedPose{})

	if p, _, _ := a.counts(); p != 1 {
		t.Errorf("got %d poses, want 1", p)
	}
}

func TestFanoutAllNilIsNil(t *testing.T) {
	if FanoutPoses(nil, nil) != nil {
		t.Error("FanoutPoses of nil sinks should be nil")
	}
	if FanoutTwists() != nil {
		t.Error("FanoutTwists of no sinks should be nil")
	}
	if FanoutTransforms(nil) != nil {
		t.Error("FanoutTransforms of nil sinks should be nil")
	}
}
