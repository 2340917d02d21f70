package fusion

import (
	"testing"
	"time"

	"github.com/banshee-data/pose.fusion/internal/timeutil"
)

func TestSampleStats_Snapshot(t *testing.T) {
	clock := timeutil.NewMockClock(time.Unix(1700000000, 0))
	stats := NewSampleStats(clock)

	stamp := time.Unix(1699999990, 0)
	stats.AddSample(RoleLidarPose, stamp)
	stats.AddSample(RoleLidarPose, stamp.Add(time.Second))
	stats.AddSample(RoleGNSSPose, stamp)
	stats.AddFusedPose()

	snap := stats.Snapshot()
	if snap.Samples[RoleLidarPose] != 2 {
		t.Errorf("lidar samples = %d, want 2", snap.Samples[RoleLidarPose])
	}
	if snap.Samples[RoleGNSSPose] != 1 {
		t.Errorf("gnss samples = %d, want 1", snap.Samples[RoleGNSSPose])
	}
	if snap.FusedPoses != 1 || snap.FusedTwists != 0 {
		t.Errorf("fused counters = %d/%d, want 1/0", snap.FusedPoses, snap.FusedTwists)
	}
	if !snap.LastStamp[RoleLidarPose].Equal(stamp.Add(time.Second)) {
		t.Errorf("lidar last stamp = %v, want %v", snap.LastStamp[RoleLidarPose], stamp.Add(time.Second))
	}
	if !snap.LastArrival[RoleLidarPose].Equal(clock.Now()) {
		t.Errorf("lidar last arrival = %v, want clock time", snap.LastArrival[RoleLidarPose])
	}
}

func TestSampleStats_SnapshotIsACopy(t *testing.T) {
	stats := NewSampleStats(timeutil.RealClock{})
	stats.AddSample(RoleEKFTwist, time.Now())

	snap := stats.Snapshot()
	snap.Samples[RoleEKFTwist] = 99

	if got := stats.Snapshot().Samples[RoleEKFTwist]; got != 1 {
		t.Errorf("mutating a snapshot changed the collector: samples = %d, want 1", got)
	}
}
