package serialmux

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/banshee-data/pose.fusion/internal/fusion"
)

// SampleHandler consumes parsed samples. The fusion controller satisfies
// this interface.
type SampleHandler interface {
	Submit(fusion.Sample) error
}

// TwistIngest subscribes to a serial mux and feeds parsed rate reports
// into the handler as backup-filter twist samples.
type TwistIngest struct {
	mux     SerialMuxInterface
	handler SampleHandler

	parsed  atomic.Uint64
	skipped atomic.Uint64
}

// NewTwistIngest creates an ingest bound to the mux and handler.
func NewTwistIngest(mux SerialMuxInterface, handler SampleHandler) *TwistIngest {
	return &TwistIngest{
		mux:     mux,
		handler: handler,
	}
}

// Run consumes lines until the context is cancelled or the subscription
// channel closes. Non-report lines are skipped and counted, never fatal.
func (i *TwistIngest) Run(ctx context.Context) error {
	id, lines := i.mux.Subscribe()
	defer i.mux.Unsubscribe(id)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if ClassifyLine(line) != EventTypeRateReport {
				i.skipped.Add(1)
				continue
			}

			sample, err := ParseRateLine(line)
			if err != nil {
				i.skipped.Add(1)
				log.Printf("[Serial] skipping malformed rate report: %v", err)
				continue
			}

			if err := i.handler.Submit(sample); err != nil {
				i.skipped.Add(1)
				log.Printf("[Serial] handler rejected rate report: %v", err)
				continue
			}
			i.parsed.Add(1)
		}
	}
}

// Parsed returns the number of reports delivered to the handler.
func (i *TwistIngest) Parsed() uint64 {
	return i.parsed.Load()
}

// Skipped returns the number of lines dropped for any reason.
func (i *TwistIngest) Skipped() uint64 {
	return i.skipped.Load()
}
