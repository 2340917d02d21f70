package fusion

import "sync"

// SampleCache holds the most recently observed sample for each role. Each
// fusion pair has its own lock so an engine always reads a self-consistent
// pair; no ordering is guaranteed across pairs. Samples never expire: a
// minutes-old counterpart fuses the same as a fresh one.
type SampleCache struct {
	poseMu    sync.Mutex
	lidarPose *PoseSample
	gnssPose  *PoseSample

	twistMu     sync.Mutex
	ekfTwist    *TwistSample
	filterTwist *TwistSample
}

// NewSampleCache returns an empty cache.
func NewSampleCache() *SampleCache {
	return &SampleCache{}
}

// UpdatePose stores a position sample for the role, replacing any previous
// value, and reports whether the counterpart role already has a sample.
func (c *SampleCache) UpdatePose(role Role, sample PoseSample) bool {
	c.poseMu.Lock()
	defer c.poseMu.Unlock()
	switch role {
	case RoleLidarPose:
		c.lidarPose = &sample
		return c.gnssPose != nil
	case RoleGNSSPose:
		c.gnssPose = &sample
		return c.lidarPose != nil
	}
	return false
}

// UpdateTwist stores a rate sample for the role, replacing any previous
// value, and reports whether the counterpart role already has a sample.
func (c *SampleCache) UpdateTwist(role Role, sample TwistSample) bool {
	c.twistMu.Lock()
	defer c.twistMu.Unlock()
	switch role {
	case RoleEKFTwist:
		c.ekfTwist = &sample
		return c.filterTwist != nil
	case RoleFilterTwist:
		c.filterTwist = &sample
		return c.ekfTwist != nil
	}
	return false
}

// Pose returns the cached position sample for the role, if any.
func (c *SampleCache) Pose(role Role) (PoseSample, bool) {
	c.poseMu.Lock()
	defer c.poseMu.Unlock()
	var p *PoseSample
	switch role {
	case RoleLidarPose:
		p = c.lidarPose
	case RoleGNSSPose:
		p = c.gnssPose
	}
	if p == nil {
		return PoseSample{}, false
	}
	return *p, true
}

// Twist returns the cached rate sample for the role, if any.
func (c *SampleCache) Twist(role Role) (TwistSample, bool) {
	c.twistMu.Lock()
	defer c.twistMu.Unlock()
	var t *TwistSample
	switch role {
	case RoleEKFTwist:
		t = c.ekfTwist
	case RoleFilterTwist:
		t = c.filterTwist
	}
	if t == nil {
		return TwistSample{}, false
	}
	return *t, true
}

// PosePair returns both cached position samples under a single lock so the
// caller sees a consistent pair.
func (c *SampleCache) PosePair() (lidar, gnss PoseSample, ok bool) {
	c.poseMu.Lock()
	defer c.poseMu.Unlock()
	if c.lidarPose == nil || c.gnssPose == nil {
		return PoseSample{}, PoseSample{}, false
	}
	return *c.lidarPose, *c.gnssPose, true
}

// TwistPair returns both cached rate samples under a single lock.
func (c *SampleCache) TwistPair() (ekf, filter TwistSample, ok bool) {
	c.twistMu.Lock()
	defer c.twistMu.Unlock()
	if c.ekfTwist == nil || c.filterTwist == nil {
		return TwistSample{}, TwistSample{}, false
	}
	return *c.ekfTwist, *c.filterTwist, true
}
