// Package storage persists fused output to SQLite without ever blocking
// the fusion path. Writes go through a buffered queue serviced by a
// single worker; when the queue is full the record is dropped and
// counted rather than applying backpressure upstream.
package storage

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/pose.fusion/internal/db"
	"github.com/banshee-data/pose.fusion/internal/fusion"
	"github.com/banshee-data/pose.fusion/internal/monitoring"
)

const queueSize = 1000

type record struct {
	pose      *fusion.FusedPose
	twist     *fusion.FusedTwist
	transform *fusion.Transform
}

// Recorder satisfies the controller's sink interfaces and writes each
// fused output to the database under a per-process session id.
type Recorder struct {
	db        *db.DB
	sessionID string

	queue   chan record
	dropped atomic.Uint64
	written atomic.Uint64
	wg      sync.WaitGroup
}

// NewRecorder creates a session row and returns a recorder bound to it.
func NewRecorder(database *db.DB, weights fusion.Weights) (*Recorder, error) {
	sessionID := uuid.New().String()
	if err := database.CreateSession(sessionID, weights); err != nil {
		return nil, fmt.Errorf("failed to create recording session: %w", err)
	}

	return &Recorder{
		db:        database,
		sessionID: sessionID,
		queue:     make(chan record, queueSize),
	}, nil
}

// SessionID returns the session this recorder writes under.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Start launches the write worker. It drains the queue until the
// context is cancelled, then flushes whatever is still queued.
func (r *Recorder) Start(ctx context.Context) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		summary := time.NewTicker(30 * time.Second)
		defer summary.Stop()

		for {
			select {
			case <-ctx.Done():
				r.flush()
				return
			case rec := <-r.queue:
				r.write(rec)
			case <-summary.C:
				if d := r.dropped.Load(); d > 0 {
					monitoring.Logf("[Storage] session=%s written=%d dropped=%d queue=%d/%d",
						r.sessionID, r.written.Load(), d, len(r.queue), queueSize)
				}
			}
		}
	}()
}

// Wait blocks until the worker has exited.
func (r *Recorder) Wait() {
	r.wg.Wait()
}

// flush writes any records still queued at shutdown.
func (r *Recorder) flush() {
	for {
		select {
		case rec := <-r.queue:
			r.write(rec)
		default:
			return
		}
	}
}

func (r *Recorder) write(rec record) {
	var err error
	switch {
	case rec.pose != nil:
		err = r.db.RecordFusedPose(r.sessionID, *rec.pose)
	case rec.twist != nil:
		err = r.db.RecordFusedTwist(r.sessionID, *rec.twist)
	case rec.transform != nil:
		err = r.db.RecordTransform(r.sessionID, *rec.transform)
	}
	if err != nil {
		log.Printf("[Storage] write failed: %v", err)
		return
	}
	r.written.Add(1)
}

func (r *Recorder) enqueue(rec record) {
	select {
	case r.queue <- rec:
	default:
		r.dropped.Add(1)
	}
}

// PublishPose queues a fused pose for persistence.
func (r *Recorder) PublishPose(pose fusion.FusedPose) {
	r.enqueue(record{pose: &pose})
}

// PublishTwist queues a fused twist for persistence.
func (r *Recorder) PublishTwist(twist fusion.FusedTwist) {
	r.enqueue(record{twist: &twist})
}

// BroadcastTransform queues a derived transform for persistence.
func (r *Recorder) BroadcastTransform(tf fusion.Transform) {
	r.enqueue(record{transform: &tf})
}

// Written returns the number of records committed to the database.
func (r *Recorder) Written() uint64 {
	return r.written.Load()
}

// Dropped returns the number of records discarded because the queue
// was full.
func (r *Recorder) Dropped() uint64 {
	return r.dropped.Load()
}
