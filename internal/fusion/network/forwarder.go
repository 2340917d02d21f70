package network

import (
	"context"
	"fmt"
	"log"
	"net"
	"sync/atomic"
	"time"

	"github.com/banshee-data/pose.fusion/internal/fusion"
)

// Forwarder sends fused outputs to a downstream consumer as UDP datagrams.
// Delivery is fire-and-forget: datagrams queue on a buffered channel and are
// dropped when it fills, so a slow or absent consumer never backpressures
// the fusion core. It implements the controller's three sink interfaces.
type Forwarder struct {
	conn        *net.UDPConn
	channel     chan []byte
	dropped     atomic.Int64
	logInterval time.Duration
	address     string
}

// NewForwarder creates a forwarder that sends fused outputs to the
// specified address.
func NewForwarder(addr string, port int, logInterval time.Duration) (*Forwarder, error) {
	forwardAddress := fmt.Sprintf("%s:%d", addr, port)
	forwardUDPAddr, err := net.ResolveUDPAddr("udp", forwardAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve forward address: %v", err)
	}

	conn, err := net.DialUDP("udp", nil, forwardUDPAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to create forward connection: %v", err)
	}

	if logInterval == 0 {
		logInterval = time.Minute
	}

	return &Forwarder{
		conn:        conn,
		channel:     make(chan []byte, 1000),
		logInterval: logInterval,
		address:     forwardAddress,
	}, nil
}

// Start begins the forwarding goroutine. Write errors are counted and
// summarized at the log interval rather than reported per packet.
func (f *Forwarder) Start(ctx context.Context) {
	go func() {
		errCount := 0
		var lastError error
		ticker := time.NewTicker(f.logInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case packet := <-f.channel:
				if _, err := f.conn.Write(packet); err != nil {
					errCount++
					lastError = err
				}
			case <-ticker.C:
				if errCount > 0 && lastError != nil {
					log.Printf("Dropped %d forwarded outputs due to errors (latest: %v)", errCount, lastError)
					errCount = 0
					lastError = nil
				}
				if n := f.dropped.Swap(0); n > 0 {
					log.Printf("Dropped %d fused outputs: forward buffer full", n)
				}
			}
		}
	}()

	log.Printf("Forwarding fused outputs to %s", f.address)
}

// Dropped returns the number of outputs dropped since the last log flush.
func (f *Forwarder) Dropped() int64 {
	return f.dropped.Load()
}

// PublishPose implements fusion.PoseSink.
func (f *Forwarder) PublishPose(p fusion.FusedPose) {
	packet, err := EncodeFusedPose(p)
	if err != nil {
		f.dropped.Add(1)
		return
	}
	f.forwardAsync(packet)
}

// PublishTwist implements fusion.TwistSink.
func (f *Forwarder) PublishTwist(t fusion.FusedTwist) {
	packet, err := EncodeFusedTwist(t)
	if err != nil {
		f.dropped.Add(1)
		return
	}
	f.forwardAsync(packet)
}

// BroadcastTransform implements fusion.TransformSink.
func (f *Forwarder) BroadcastTransform(tf fusion.Transform) {
	packet, err := EncodeTransform(tf)
	if err != nil {
		f.dropped.Add(1)
		return
	}
	f.forwardAsync(packet)
}

// forwardAsync queues a datagram without blocking. If the buffer is full
// the datagram is dropped and counted.
func (f *Forwarder) forwardAsync(packet []byte) {
	select {
	case f.channel <- packet:
	default:
		f.dropped.Add(1)
	}
}

// Close closes the UDP connection and channel.
func (f *Forwarder) Close() error {
	close(f.channel)
	return f.conn.Close()
}
