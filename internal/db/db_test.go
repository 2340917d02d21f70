package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/banshee-data/pose.fusion/internal/fusion"
)

// newTestDB opens a migrated database in a temp directory.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return database
}

func testPose(x float64, stamp time.Time) fusion.FusedPose {
	var cov fusion.Covariance
	cov[0] = 0.5
	return fusion.FusedPose{
		Position:    fusion.Vector3{X: x, Y: 2, Z: 3},
		Orientation: fusion.Quaternion{W: 1},
		Covariance:  cov,
		Stamp:       stamp,
		FrameID:     fusion.WorldFrame,
	}
}

func TestMigrateUpAndVersion(t *testing.T) {
	database := newTestDB(t)

	version, dirty, err := database.MigrateVersion()
	if err != nil {
		t.Fatalf("MigrateVersion failed: %v", err)
	}
	if dirty {
		t.Error("expected clean migration state")
	}
	if version == 0 {
		t.Error("expected non-zero version after NewDB")
	}

	// Up again is a no-op
	if err := database.MigrateUp(); err != nil {
		t.Errorf("second MigrateUp failed: %v", err)
	}
}

func TestMigrateDown(t *testing.T) {
	database := newTestDB(t)

	if err := database.MigrateDown(); err != nil {
		t.Fatalf("MigrateDown failed: %v", err)
	}

	// Schema should be gone
	var count int
	err := database.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='fused_poses'`,
	).Scan(&count)
	if err != nil {
		t.Fatalf("schema query failed: %v", err)
	}
	if count != 0 {
		t.Error("expected fused_poses table dropped after MigrateDown")
	}
}

func TestCreateAndGetSession(t *testing.T) {
	database := newTestDB(t)

	weights := fusion.Weights{LidarPose: 0.7, GNSSPose: 0.3, EKFTwist: 0.6, FilterTwist: 0.4}
	if err := database.CreateSession("session-1", weights); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	s, err := database.GetSession("session-1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if s.LidarWeight != 0.7 || s.GNSSWeight != 0.3 {
		t.Errorf("unexpected pose weights: %f/%f", s.LidarWeight, s.GNSSWeight)
	}
	if s.EKFWeight != 0.6 || s.FilterWeight != 0.4 {
		t.Errorf("unexpected twist weights: %f/%f", s.EKFWeight, s.FilterWeight)
	}
	if s.StartedAt.IsZero() {
		t.Error("expected started_at to be populated")
	}

	if _, err := database.GetSession("missing"); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestRecordAndQueryFusedPoses(t *testing.T) {
	database := newTestDB(t)
	if err := database.CreateSession("s", fusion.DefaultWeights()); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	base := time.Unix(1700000000, 0)
	for i := 0; i < 3; i++ {
		if err := database.RecordFusedPose("s", testPose(float64(i), base.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("RecordFusedPose %d failed: %v", i, err)
		}
	}

	poses, err := database.RecentFusedPoses("s", 2)
	if err != nil {
		t.Fatalf("RecentFusedPoses failed: %v", err)
	}
	if len(poses) != 2 {
		t.Fatalf("expected 2 poses, got %d", len(poses))
	}
	// Newest first
	if poses[0].X != 2 || poses[1].X != 1 {
		t.Errorf("expected newest first ordering, got x=%f,%f", poses[0].X, poses[1].X)
	}
	if poses[0].FrameID != "map" {
		t.Errorf("frame_id = %q, want map", poses[0].FrameID)
	}
	if len(poses[0].Covariance) != fusion.CovarianceSize {
		t.Fatalf("covariance length = %d, want %d", len(poses[0].Covariance), fusion.CovarianceSize)
	}
	if poses[0].Covariance[0] != 0.5 {
		t.Errorf("covariance[0] = %f, want 0.5", poses[0].Covariance[0])
	}
}

func TestRecordAndQueryFusedTwists(t *testing.T) {
	database := newTestDB(t)
	if err := database.CreateSession("s", fusion.DefaultWeights()); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	twist := fusion.FusedTwist{
		AngularZ: 0.25,
		Stamp:    time.Unix(1700000000, 0),
		FrameID:  fusion.BodyFrame,
	}
	if err := database.RecordFusedTwist("s", twist); err != nil {
		t.Fatalf("RecordFusedTwist failed: %v", err)
	}

	twists, err := database.RecentFusedTwists("s", 10)
	if err != nil {
		t.Fatalf("RecentFusedTwists failed: %v", err)
	}
	if len(twists) != 1 {
		t.Fatalf("expected 1 twist, got %d", len(twists))
	}
	if twists[0].AngularZ != 0.25 {
		t.Errorf("angular_z = %f, want 0.25", twists[0].AngularZ)
	}
	if twists[0].FrameID != "base_link" {
		t.Errorf("frame_id = %q, want base_link", twists[0].FrameID)
	}
}

func TestRecordAndQueryTransforms(t *testing.T) {
	database := newTestDB(t)
	if err := database.CreateSession("s", fusion.DefaultWeights()); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	tf := fusion.Transform{
		Translation: fusion.Vector3{X: 1, Y: 2, Z: 3},
		Rotation:    fusion.Quaternion{W: 1},
		Stamp:       time.Unix(1700000000, 0),
		ParentFrame: fusion.WorldFrame,
		ChildFrame:  fusion.BodyFrame,
	}
	if err := database.RecordTransform("s", tf); err != nil {
		t.Fatalf("RecordTransform failed: %v", err)
	}

	transforms, err := database.RecentTransforms("s", 10)
	if err != nil {
		t.Fatalf("RecentTransforms failed: %v", err)
	}
	if len(transforms) != 1 {
		t.Fatalf("expected 1 transform, got %d", len(transforms))
	}
	if transforms[0].ParentFrame != "map" || transforms[0].ChildFrame != "base_link" {
		t.Errorf("unexpected frames: %q -> %q", transforms[0].ParentFrame, transforms[0].ChildFrame)
	}
}

func TestSessionCounts(t *testing.T) {
	database := newTestDB(t)
	if err := database.CreateSession("s", fusion.DefaultWeights()); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	stamp := time.Unix(1700000000, 0)
	for i := 0; i < 2; i++ {
		if err := database.RecordFusedPose("s", testPose(0, stamp)); err != nil {
			t.Fatal(err)
		}
	}
	if err := database.RecordFusedTwist("s", fusion.FusedTwist{Stamp: stamp}); err != nil {
		t.Fatal(err)
	}

	poses, twists, transforms, err := database.SessionCounts("s")
	if err != nil {
		t.Fatalf("SessionCounts failed: %v", err)
	}
	if poses != 2 || twists != 1 || transforms != 0 {
		t.Errorf("counts = %d/%d/%d, want 2/1/0", poses, twists, transforms)
	}
}
