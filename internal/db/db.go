// Package db provides the SQLite persistence layer for fused output.
// Schema is managed exclusively through migrations; see migrations/.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/pose.fusion/internal/fusion"
)

type DB struct {
	*sql.DB
}

// OpenDB opens the database without touching the schema. Callers that
// need the schema present should follow with MigrateUp.
func OpenDB(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// modernc sqlite allows one writer; serialize access through a
	// single connection to avoid SQLITE_BUSY under concurrent inserts.
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.Exec(`PRAGMA busy_timeout = 5000; PRAGMA journal_mode = WAL;`); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to set pragmas: %w", err)
	}

	return &DB{sqlDB}, nil
}

// NewDB opens the database and applies all pending migrations.
func NewDB(path string) (*DB, error) {
	database, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := database.MigrateUp(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}

// Session describes one fusion process run and the weights it ran with.
type Session struct {
	SessionID    string    `json:"session_id"`
	StartedAt    time.Time `json:"started_at"`
	LidarWeight  float64   `json:"lidar_weight"`
	GNSSWeight   float64   `json:"gnss_weight"`
	EKFWeight    float64   `json:"ekf_weight"`
	FilterWeight float64   `json:"filter_weight"`
}

// FusedPoseRow is a persisted fused pose.
type FusedPoseRow struct {
	ID         int64     `json:"id"`
	SessionID  string    `json:"session_id"`
	StampNs    int64     `json:"stamp_ns"`
	FrameID    string    `json:"frame_id"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Z          float64   `json:"z"`
	QX         float64   `json:"qx"`
	QY         float64   `json:"qy"`
	QZ         float64   `json:"qz"`
	QW         float64   `json:"qw"`
	Covariance []float64 `json:"covariance"`
}

// FusedTwistRow is a persisted fused twist.
type FusedTwistRow struct {
	ID         int64     `json:"id"`
	SessionID  string    `json:"session_id"`
	StampNs    int64     `json:"stamp_ns"`
	FrameID    string    `json:"frame_id"`
	AngularZ   float64   `json:"angular_z"`
	Covariance []float64 `json:"covariance"`
}

// TransformRow is a persisted transform.
type TransformRow struct {
	ID          int64   `json:"id"`
	SessionID   string  `json:"session_id"`
	StampNs     int64   `json:"stamp_ns"`
	ParentFrame string  `json:"parent_frame"`
	ChildFrame  string  `json:"child_frame"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	QX          float64 `json:"qx"`
	QY          float64 `json:"qy"`
	QZ          float64 `json:"qz"`
	QW          float64 `json:"qw"`
}

// CreateSession records a new fusion session.
func (db *DB) CreateSession(sessionID string, weights fusion.Weights) error {
	_, err := db.Exec(
		`INSERT INTO fusion_sessions (session_id, lidar_weight, gnss_weight, ekf_weight, filter_weight)
		 VALUES (?, ?, ?, ?, ?)`,
		sessionID, weights.LidarPose, weights.GNSSPose, weights.EKFTwist, weights.FilterTwist,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession returns a session by id.
func (db *DB) GetSession(sessionID string) (*Session, error) {
	var s Session
	var startedAt string
	err := db.QueryRow(
		`SELECT session_id, started_at, lidar_weight, gnss_weight, ekf_weight, filter_weight
		 FROM fusion_sessions WHERE session_id = ?`, sessionID,
	).Scan(&s.SessionID, &startedAt, &s.LidarWeight, &s.GNSSWeight, &s.EKFWeight, &s.FilterWeight)
	if err != nil {
		return nil, fmt.Errorf("failed to get session %s: %w", sessionID, err)
	}
	// CURRENT_TIMESTAMP stores UTC as "2006-01-02 15:04:05".
	if t, perr := time.Parse("2006-01-02 15:04:05", startedAt); perr == nil {
		s.StartedAt = t.UTC()
	}
	return &s, nil
}

func marshalCovariance(c fusion.Covariance) (string, error) {
	raw, err := json.Marshal(c[:])
	if err != nil {
		return "", fmt.Errorf("failed to marshal covariance: %w", err)
	}
	return string(raw), nil
}

func unmarshalCovariance(raw string) ([]float64, error) {
	var out []float64
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal covariance: %w", err)
	}
	return out, nil
}

// RecordFusedPose persists one fused pose for the session.
func (db *DB) RecordFusedPose(sessionID string, pose fusion.FusedPose) error {
	cov, err := marshalCovariance(pose.Covariance)
	if err != nil {
		return err
	}
	_, err = db.Exec(
		`INSERT INTO fused_poses (session_id, stamp_ns, frame_id, x, y, z, qx, qy, qz, qw, covariance)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, pose.Stamp.UnixNano(), pose.FrameID,
		pose.Position.X, pose.Position.Y, pose.Position.Z,
		pose.Orientation.X, pose.Orientation.Y, pose.Orientation.Z, pose.Orientation.W,
		cov,
	)
	if err != nil {
		return fmt.Errorf("failed to record fused pose: %w", err)
	}
	return nil
}

// RecordFusedTwist persists one fused twist for the session.
func (db *DB) RecordFusedTwist(sessionID string, twist fusion.FusedTwist) error {
	cov, err := marshalCovariance(twist.Covariance)
	if err != nil {
		return err
	}
	_, err = db.Exec(
		`INSERT INTO fused_twists (session_id, stamp_ns, frame_id, angular_z, covariance)
		 VALUES (?, ?, ?, ?, ?)`,
		sessionID, twist.Stamp.UnixNano(), twist.FrameID, twist.AngularZ, cov,
	)
	if err != nil {
		return fmt.Errorf("failed to record fused twist: %w", err)
	}
	return nil
}

// RecordTransform persists one derived transform for the session.
func (db *DB) RecordTransform(sessionID string, tf fusion.Transform) error {
	_, err := db.Exec(
		`INSERT INTO transforms (session_id, stamp_ns, parent_frame, child_frame, x, y, z, qx, qy, qz, qw)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, tf.Stamp.UnixNano(), tf.ParentFrame, tf.ChildFrame,
		tf.Translation.X, tf.Translation.Y, tf.Translation.Z,
		tf.Rotation.X, tf.Rotation.Y, tf.Rotation.Z, tf.Rotation.W,
	)
	if err != nil {
		return fmt.Errorf("failed to record transform: %w", err)
	}
	return nil
}

// RecentFusedPoses returns the most recent fused poses for a session,
// newest first.
func (db *DB) RecentFusedPoses(sessionID string, limit int) ([]FusedPoseRow, error) {
	rows, err := db.Query(
		`SELECT id, session_id, stamp_ns, frame_id, x, y, z, qx, qy, qz, qw, covariance
		 FROM fused_poses WHERE session_id = ?
		 ORDER BY stamp_ns DESC LIMIT ?`, sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query fused poses: %w", err)
	}
	defer rows.Close()

	var out []FusedPoseRow
	for rows.Next() {
		var r FusedPoseRow
		var cov string
		if err := rows.Scan(&r.ID, &r.SessionID, &r.StampNs, &r.FrameID,
			&r.X, &r.Y, &r.Z, &r.QX, &r.QY, &r.QZ, &r.QW, &cov); err != nil {
			return nil, fmt.Errorf("failed to scan fused pose: %w", err)
		}
		if r.Covariance, err = unmarshalCovariance(cov); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RecentFusedTwists returns the most recent fused twists for a session,
// newest first.
func (db *DB) RecentFusedTwists(sessionID string, limit int) ([]FusedTwistRow, error) {
	rows, err := db.Query(
		`SELECT id, session_id, stamp_ns, frame_id, angular_z, covariance
		 FROM fused_twists WHERE session_id = ?
		 ORDER BY stamp_ns DESC LIMIT ?`, sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query fused twists: %w", err)
	}
	defer rows.Close()

	var out []FusedTwistRow
	for rows.Next() {
		var r FusedTwistRow
		var cov string
		if err := rows.Scan(&r.ID, &r.SessionID, &r.StampNs, &r.FrameID, &r.AngularZ, &cov); err != nil {
			return nil, fmt.Errorf("failed to scan fused twist: %w", err)
		}
		if r.Covariance, err = unmarshalCovariance(cov); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RecentTransforms returns the most recent transforms for a session,
// newest first.
func (db *DB) RecentTransforms(sessionID string, limit int) ([]TransformRow, error) {
	rows, err := db.Query(
		`SELECT id, session_id, stamp_ns, parent_frame, child_frame, x, y, z, qx, qy, qz, qw
		 FROM transforms WHERE session_id = ?
		 ORDER BY stamp_ns DESC LIMIT ?`, sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transforms: %w", err)
	}
	defer rows.Close()

	var out []TransformRow
	for rows.Next() {
		var r TransformRow
		if err := rows.Scan(&r.ID, &r.SessionID, &r.StampNs, &r.ParentFrame, &r.ChildFrame,
			&r.X, &r.Y, &r.Z, &r.QX, &r.QY, &r.QZ, &r.QW); err != nil {
			return nil, fmt.Errorf("failed to scan transform: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SessionCounts returns the number of persisted rows per output kind.
func (db *DB) SessionCounts(sessionID string) (poses, twists, transforms int64, err error) {
	if err = db.QueryRow(`SELECT COUNT(*) FROM fused_poses WHERE session_id = ?`, sessionID).Scan(&poses); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count fused poses: %w", err)
	}
	if err = db.QueryRow(`SELECT COUNT(*) FROM fused_twists WHERE session_id = ?`, sessionID).Scan(&twists); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count fused twists: %w", err)
	}
	if err = db.QueryRow(`SELECT COUNT(*) FROM transforms WHERE session_id = ?`, sessionID).Scan(&transforms); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count transforms: %w", err)
	}
	return poses, twists, transforms, nil
}
