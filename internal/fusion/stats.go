package fusion

import (
	"sync"
	"time"

	"github.com/banshee-data/pose.fusion/internal/timeutil"
)

// StatsSnapshot is a point-in-time copy of the fusion counters.
type StatsSnapshot struct {
	Samples     map[Role]int64
	LastArrival map[Role]time.Time
	LastStamp   map[Role]time.Time
	FusedPoses  int64
	FusedTwists int64
	CapturedAt  time.Time
	StartedAt   time.Time
}

// SampleStats tracks per-role arrival counts and fusion emissions with
// thread-safe operations. Per-role last-arrival times let an operator
// observe the skew between the two halves of a pair, which the fusion core
// itself deliberately ignores.
type SampleStats struct {
	mu          sync.Mutex
	clock       timeutil.Clock
	samples     map[Role]int64
	lastArrival map[Role]time.Time
	lastStamp   map[Role]time.Time
	fusedPoses  int64
	fusedTwists int64
	startedAt   time.Time
}

// NewSampleStats creates a stats collector using the given clock.
func NewSampleStats(clock timeutil.Clock) *SampleStats {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &SampleStats{
		clock:       clock,
		samples:     make(map[Role]int64),
		lastArrival: make(map[Role]time.Time),
		lastStamp:   make(map[Role]time.Time),
		startedAt:   clock.Now(),
	}
}

// AddSample records an inbound sample arrival for the role. stamp is the
// producer's timestamp carried in the sample, not the arrival time.
func (s *SampleStats) AddSample(role Role, stamp time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples[role]++
	s.lastArrival[role] = s.clock.Now()
	s.lastStamp[role] = stamp
}

// AddFusedPose increments the fused pose emission counter.
func (s *SampleStats) AddFusedPose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fusedPoses++
}

// AddFusedTwist increments the fused twist emission counter.
func (s *SampleStats) AddFusedTwist() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fusedTwists++
}

// Snapshot returns a copy of the current counters.
func (s *SampleStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := StatsSnapshot{
		Samples:     make(map[Role]int64, len(s.samples)),
		LastArrival: make(map[Role]time.Time, len(s.lastArrival)),
		LastStamp:   make(map[Role]time.Time, len(s.lastStamp)),
		FusedPoses:  s.fusedPoses,
		FusedTwists: s.fusedTwists,
		CapturedAt:  s.clock.Now(),
		StartedAt:   s.startedAt,
	}
	for r, n := range s.samples {
		snap.Samples[r] = n
	}
	for r, t := range s.lastArrival {
		snap.LastArrival[r] = t
	}
	for r, t := range s.lastStamp {
		snap.LastStamp[r] = t
	}
	return snap
}
