package serialmux

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/banshee-data/pose.fusion/internal/fusion"
)

// recordingHandler captures submitted samples.
type recordingHandler struct {
	mu      sync.Mutex
	samples []fusion.Sample
	err     error
}

func (h *recordingHandler) Submit(s fusion.Sample) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.samples = append(h.samples, s)
	return nil
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.samples)
}

func TestTwistIngestDeliversReports(t *testing.T) {
	mux := NewMockSerialMux(nil)
	handler := &recordingHandler{}
	ingest := NewTwistIngest(mux, handler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- ingest.Run(ctx)
	}()

	// Feed lines directly through the subscriber fan-out.
	waitForSubscriber(t, mux)
	deliver(mux, `{"gyro_z":0.5,"stamp_ns":100}`)
	deliver(mux, `READY`)
	deliver(mux, `{"gyro_z":"broken"}`)
	deliver(mux, `{"gyro_z":-0.5,"stamp_ns":200}`)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && handler.count() < 2 {
		time.Sleep(5 * time.Millisecond)
	}

	if got := handler.count(); got != 2 {
		t.Fatalf("expected 2 delivered samples, got %d", got)
	}
	if ingest.Parsed() != 2 {
		t.Errorf("parsed = %d, want 2", ingest.Parsed())
	}
	if ingest.Skipped() != 2 {
		t.Errorf("skipped = %d, want 2", ingest.Skipped())
	}

	handler.mu.Lock()
	first := handler.samples[0]
	handler.mu.Unlock()
	if first.Role != fusion.RoleFilterTwist || first.Twist.AngularZ != 0.5 {
		t.Errorf("unexpected first sample: %+v", first)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("ingest did not exit after cancellation")
	}
}

func TestTwistIngestCountsHandlerRejections(t *testing.T) {
	mux := NewMockSerialMux(nil)
	handler := &recordingHandler{err: errors.New("cache full")}
	ingest := NewTwistIngest(mux, handler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go ingest.Run(ctx)

	waitForSubscriber(t, mux)
	deliver(mux, `{"gyro_z":0.5,"stamp_ns":100}`)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && ingest.Skipped() == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	if ingest.Skipped() != 1 {
		t.Errorf("skipped = %d, want 1", ingest.Skipped())
	}
	if ingest.Parsed() != 0 {
		t.Errorf("parsed = %d, want 0", ingest.Parsed())
	}
}

func TestTwistIngestExitsWhenMuxCloses(t *testing.T) {
	mux := NewMockSerialMux(nil)
	ingest := NewTwistIngest(mux, &recordingHandler{})

	done := make(chan error, 1)
	go func() {
		done <- ingest.Run(context.Background())
	}()

	waitForSubscriber(t, mux)
	mux.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil on mux close, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("ingest did not exit after mux close")
	}
}

// waitForSubscriber blocks until the ingest goroutine has subscribed.
func waitForSubscriber(t *testing.T, mux *SerialMux[*MockSerialPort]) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mux.subscriberMu.Lock()
		n := len(mux.subscribers)
		mux.subscriberMu.Unlock()
		if n > 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("ingest never subscribed")
}

// deliver sends one line to every subscriber, blocking until accepted.
func deliver(mux *SerialMux[*MockSerialPort], line string) {
	mux.subscriberMu.Lock()
	channels := make([]chan string, 0, len(mux.subscribers))
	for _, ch := range mux.subscribers {
		channels = append(channels, ch)
	}
	mux.subscriberMu.Unlock()
	for _, ch := range channels {
		ch <- line
	}
}
