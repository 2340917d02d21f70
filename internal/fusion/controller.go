package fusion

import (
	"fmt"

	"github.com/banshee-data/pose.fusion/internal/timeutil"
)

// PoseSink receives fused poses. Implementations must not block: delivery is
// fire-and-forget and a slow downstream is never surfaced to the controller.
type PoseSink interface {
	PublishPose(pose FusedPose)
}

// TwistSink receives fused twists.
type TwistSink interface {
	PublishTwist(twist FusedTwist)
}

// TransformSink receives derived transforms, keyed by the fixed
// parent/child frame pair.
type TransformSink interface {
	BroadcastTransform(tf Transform)
}

// ControllerConfig holds the controller's construction-time settings.
// Weights are fixed for the life of the process; there is no runtime
// reconfiguration.
type ControllerConfig struct {
	Weights Weights
	Clock   timeutil.Clock

	// Sinks are optional; a nil sink is skipped.
	Poses      PoseSink
	Twists     TwistSink
	Transforms TransformSink
}

// Controller is the fusion state machine. Each inbound sample updates the
// cache; once both halves of a pair have ever been seen, every subsequent
// arrival on either half re-runs that pair's engine against the latest
// cached counterpart, however stale. There is no cooldown, batching, or
// terminal state: the controller runs until process shutdown.
type Controller struct {
	cfg   ControllerConfig
	cache *SampleCache
	stats *SampleStats
}

// NewController creates a controller with an empty cache.
func NewController(cfg ControllerConfig) *Controller {
	if cfg.Clock == nil {
		cfg.Clock = timeutil.RealClock{}
	}
	return &Controller{
		cfg:   cfg,
		cache: NewSampleCache(),
		stats: NewSampleStats(cfg.Clock),
	}
}

// Cache exposes the sample cache for inspection (status endpoints, tests).
func (c *Controller) Cache() *SampleCache {
	return c.cache
}

// Stats exposes arrival and emission counters.
func (c *Controller) Stats() *SampleStats {
	return c.stats
}

// Submit consumes one inbound sample event. A missing counterpart is a
// silent no-op, not an error; fusion simply fires again on the next arrival.
func (c *Controller) Submit(s Sample) error {
	switch {
	case s.Role.IsPose():
		if s.Pose == nil {
			return fmt.Errorf("fusion: sample for role %q has no pose payload", s.Role)
		}
		c.stats.AddSample(s.Role, s.Pose.Stamp)
		if c.cache.UpdatePose(s.Role, *s.Pose) {
			c.fusePoses()
		}
	case s.Role.IsTwist():
		if s.Twist == nil {
			return fmt.Errorf("fusion: sample for role %q has no twist payload", s.Role)
		}
		c.stats.AddSample(s.Role, s.Twist.Stamp)
		if c.cache.UpdateTwist(s.Role, *s.Twist) {
			c.fuseTwists()
		}
	default:
		return fmt.Errorf("fusion: unknown role %q", s.Role)
	}
	return nil
}

func (c *Controller) fusePoses() {
	lidar, gnss, ok := c.cache.PosePair()
	if !ok {
		return
	}
	pose := FusePoses(lidar, gnss, c.cfg.Weights.LidarPose, c.cfg.Weights.GNSSPose, c.cfg.Clock.Now())
	c.stats.AddFusedPose()
	if c.cfg.Poses != nil {
		c.cfg.Poses.PublishPose(pose)
	}
	if c.cfg.Transforms != nil {
		c.cfg.Transforms.BroadcastTransform(DeriveTransform(pose))
	}
}

func (c *Controller) fuseTwists() {
	ekf, filter, ok := c.cache.TwistPair()
	if !ok {
		return
	}
	twist := FuseTwists(ekf, filter, c.cfg.Weights.EKFTwist, c.cfg.Weights.FilterTwist, c.cfg.Clock.Now())
	c.stats.AddFusedTwist()
	if c.cfg.Twists != nil {
		c.cfg.Twists.PublishTwist(twist)
	}
}
