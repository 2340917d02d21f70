package fusion

import (
	"sync"
	"testing"
	"time"

	"github.com/banshee-data/pose.fusion/internal/timeutil"
)

// recordingSinks captures everything the controller emits.
type recordingSinks struct {
	mu         sync.Mutex
	poses      []FusedPose
	twists     []FusedTwist
	transforms []Transform
}

func (r *recordingSinks) PublishPose(p FusedPose) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.poses = append(r.poses, p)
}

func (r *recordingSinks) PublishTwist(tw FusedTwist) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.twists = append(r.twists, tw)
}

func (r *recordingSinks) BroadcastTransform(tf Transform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transforms = append(r.transforms, tf)
}

func (r *recordingSinks) counts() (poses, twists, transforms int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.poses), len(r.twists), len(r.transforms)
}

func newTestController(sinks *recordingSinks) *Controller {
	return NewController(ControllerConfig{
		Weights:    DefaultWeights(),
		Clock:      timeutil.NewMockClock(time.Unix(1700000000, 0)),
		Poses:      sinks,
		Twists:     sinks,
		Transforms: sinks,
	})
}

func TestController_NoFusionBeforeCounterpart(t *testing.T) {
	sinks := &recordingSinks{}
	ctrl := newTestController(sinks)

	p := poseSample(1, 0, 0)
	for i := 0; i < 5; i++ {
		if err := ctrl.Submit(Sample{Role: RoleLidarPose, Pose: &p}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	poses, twists, transforms := sinks.counts()
	if poses != 0 || twists != 0 || transforms != 0 {
		t.Errorf("emitted %d/%d/%d outputs with no counterpart, want none", poses, twists, transforms)
	}
}

func TestController_FusesOnceBothSidesSeen(t *testing.T) {
	sinks := &recordingSinks{}
	ctrl := newTestController(sinks)

	a := poseSample(1, 0, 0)
	b := poseSample(3, 0, 0)
	ctrl.Submit(Sample{Role: RoleLidarPose, Pose: &a})
	ctrl.Submit(Sample{Role: RoleGNSSPose, Pose: &b})

	poses, _, transforms := sinks.counts()
	if poses != 1 {
		t.Fatalf("emitted %d fused poses, want 1", poses)
	}
	if transforms != 1 {
		t.Fatalf("emitted %d transforms, want 1", transforms)
	}
	if sinks.poses[0].Position.X != 2 {
		t.Errorf("fused position.X = %g, want 2", sinks.poses[0].Position.X)
	}
	if sinks.transforms[0].Translation != sinks.poses[0].Position {
		t.Error("transform translation must equal the fused position")
	}
}

func TestController_RefiresOnEveryArrivalWithStaleCounterpart(t *testing.T) {
	sinks := &recordingSinks{}
	ctrl := newTestController(sinks)

	old := twistSample(1.0)
	old.Stamp = time.Unix(1600000000, 0) // minutes (years, even) stale
	ctrl.Submit(Sample{Role: RoleFilterTwist, Twist: &old})

	for i := 0; i < 4; i++ {
		fresh := twistSample(2.0)
		ctrl.Submit(Sample{Role: RoleEKFTwist, Twist: &fresh})
	}

	_, twists, _ := sinks.counts()
	if twists != 4 {
		t.Errorf("emitted %d fused twists for 4 arrivals, want 4", twists)
	}
	want := 0.5*2.0 + 0.5*1.0
	if sinks.twists[3].AngularZ != want {
		t.Errorf("fused angular z = %g, want %g (stale counterpart still used)", sinks.twists[3].AngularZ, want)
	}
}

func TestController_PairsTriggerIndependently(t *testing.T) {
	sinks := &recordingSinks{}
	ctrl := newTestController(sinks)

	a := poseSample(1, 0, 0)
	b := poseSample(3, 0, 0)
	tw := twistSample(0.7)
	ctrl.Submit(Sample{Role: RoleLidarPose, Pose: &a})
	ctrl.Submit(Sample{Role: RoleGNSSPose, Pose: &b})
	ctrl.Submit(Sample{Role: RoleEKFTwist, Twist: &tw})

	poses, twists, _ := sinks.counts()
	if poses != 1 {
		t.Errorf("emitted %d fused poses, want 1", poses)
	}
	if twists != 0 {
		t.Errorf("emitted %d fused twists with half a pair, want 0", twists)
	}
}

func TestController_RejectsMalformedEvents(t *testing.T) {
	ctrl := newTestController(&recordingSinks{})

	if err := ctrl.Submit(Sample{Role: RoleLidarPose}); err == nil {
		t.Error("pose role without pose payload must be rejected")
	}
	if err := ctrl.Submit(Sample{Role: RoleEKFTwist}); err == nil {
		t.Error("twist role without twist payload must be rejected")
	}
	tw := twistSample(1)
	if err := ctrl.Submit(Sample{Role: "barometer", Twist: &tw}); err == nil {
		t.Error("unknown role must be rejected")
	}
}

func TestController_NilSinksAreSkipped(t *testing.T) {
	ctrl := NewController(ControllerConfig{Weights: DefaultWeights()})

	a := poseSample(1, 0, 0)
	b := poseSample(2, 0, 0)
	ctrl.Submit(Sample{Role: RoleLidarPose, Pose: &a})
	// Must not panic with no sinks wired.
	if err := ctrl.Submit(Sample{Role: RoleGNSSPose, Pose: &b}); err != nil {
		t.Fatalf("submit with nil sinks: %v", err)
	}

	snap := ctrl.Stats().Snapshot()
	if snap.FusedPoses != 1 {
		t.Errorf("stats recorded %d fused poses, want 1", snap.FusedPoses)
	}
}

func TestController_ConcurrentSubmissions(t *testing.T) {
	sinks := &recordingSinks{}
	ctrl := newTestController(sinks)

	const perRole = 100
	var wg sync.WaitGroup
	for _, role := range Roles {
		wg.Add(1)
		go func(role Role) {
			defer wg.Done()
			for i := 0; i < perRole; i++ {
				s := Sample{Role: role}
				switch {
				case role.IsPose():
					p := poseSample(float64(i), float64(i), float64(i))
					s.Pose = &p
				case role.IsTwist():
					tw := twistSample(float64(i))
					s.Twist = &tw
				}
				if err := ctrl.Submit(s); err != nil {
					t.Errorf("submit %s: %v", role, err)
					return
				}
			}
		}(role)
	}
	wg.Wait()

	snap := ctrl.Stats().Snapshot()
	for _, role := range Roles {
		if snap.Samples[role] != perRole {
			t.Errorf("stats for %s = %d, want %d", role, snap.Samples[role], perRole)
		}
	}

	// Each pair fuses at most once per arrival and at least once per
	// arrival after both sides are ready.
	poses, twists, transforms := sinks.counts()
	if poses < perRole || poses > 2*perRole {
		t.Errorf("fused poses = %d, want within [%d,%d]", poses, perRole, 2*perRole)
	}
	if twists < perRole || twists > 2*perRole {
		t.Errorf("fused twists = %d, want within [%d,%d]", twists, perRole, 2*perRole)
	}
	if transforms != poses {
		t.Errorf("transforms = %d, want one per fused pose (%d)", transforms, poses)
	}
}
