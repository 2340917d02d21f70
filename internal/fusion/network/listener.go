package network

import (
	"context"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/banshee-data/pose.fusion/internal/fusion"
	"github.com/banshee-data/pose.fusion/internal/monitoring"
)

// SampleHandler consumes decoded inbound samples. *fusion.Controller
// satisfies this.
type SampleHandler interface {
	Submit(s fusion.Sample) error
}

// PacketCounters tracks listener-level packet statistics with thread-safe
// operations. Decode failures are counted, not fatal: a bad datagram from
// one producer must not disturb the others.
type PacketCounters struct {
	mu           sync.Mutex
	packetCount  int64
	byteCount    int64
	decodeErrors int64
	lastReset    time.Time
}

// NewPacketCounters creates a new counter set.
func NewPacketCounters() *PacketCounters {
	return &PacketCounters{lastReset: time.Now()}
}

// AddPacket increments packet count and byte count.
func (pc *PacketCounters) AddPacket(bytes int) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.packetCount++
	pc.byteCount += int64(bytes)
}

// AddDecodeError increments the decode failure count.
func (pc *PacketCounters) AddDecodeError() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.decodeErrors++
}

// GetAndReset returns current counters and resets them.
func (pc *PacketCounters) GetAndReset() (packets, bytes, decodeErrors int64, duration time.Duration) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	now := time.Now()
	duration = now.Sub(pc.lastReset)
	packets = pc.packetCount
	bytes = pc.byteCount
	decodeErrors = pc.decodeErrors

	pc.packetCount = 0
	pc.byteCount = 0
	pc.decodeErrors = 0
	pc.lastReset = now
	return
}

// ListenerConfig contains configuration options for the sample listener.
type ListenerConfig struct {
	Address     string
	RcvBuf      int
	LogInterval time.Duration
	Handler     SampleHandler
	Counters    *PacketCounters
	Sockets     UDPSocketFactory
}

// Listener receives sample datagrams over UDP and feeds them to the fusion
// controller. All four roles share one socket; the role tag inside each
// datagram routes it.
type Listener struct {
	address     string
	rcvBuf      int
	logInterval time.Duration
	handler     SampleHandler
	counters    *PacketCounters
	sockets     UDPSocketFactory
	socket      UDPSocket
}

// NewListener creates a listener with the provided configuration.
func NewListener(config ListenerConfig) *Listener {
	counters := config.Counters
	if counters == nil {
		counters = NewPacketCounters()
	}
	logInterval := config.LogInterval
	if logInterval == 0 {
		logInterval = time.Minute
	}
	sockets := config.Sockets
	if sockets == nil {
		sockets = NewRealUDPSocketFactory()
	}
	return &Listener{
		address:     config.Address,
		rcvBuf:      config.RcvBuf,
		logInterval: logInterval,
		handler:     config.Handler,
		counters:    counters,
		sockets:     sockets,
	}
}

// Counters exposes the listener's packet statistics.
func (l *Listener) Counters() *PacketCounters {
	return l.counters
}

// Start begins listening for sample datagrams. It blocks until the context
// is cancelled or the socket fails to open.
func (l *Listener) Start(ctx context.Context) error {
	addr, err := net.ResolveUDPAddr("udp", l.address)
	if err != nil {
		return fmt.Errorf("failed to resolve UDP address: %w", err)
	}

	socket, err := l.sockets.ListenUDP("udp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on UDP address: %w", err)
	}
	l.socket = socket
	defer socket.Close()

	if l.rcvBuf > 0 {
		if err := socket.SetReadBuffer(l.rcvBuf); err != nil {
			log.Printf("Warning: failed to set UDP receive buffer size to %d: %v", l.rcvBuf, err)
		}
	}

	log.Printf("Sample listener started on %s", l.address)

	go l.startStatsLogging(ctx)

	// Sample datagrams are small JSON documents; 8KB leaves ample margin
	// for the 36-entry covariance in full float precision.
	buffer := make([]byte, 8192)

	for {
		select {
		case <-ctx.Done():
			log.Print("Sample listener stopping due to context cancellation")
			return ctx.Err()
		default:
			// Read deadline lets the loop notice context cancellation.
			socket.SetReadDeadline(time.Now().Add(100 * time.Millisecond))

			n, addr, err := socket.ReadFromUDP(buffer)
			if err != nil {
				if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
					continue
				}
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Printf("UDP read error: %v", err)
				continue
			}

			if err := l.handlePacket(buffer[:n]); err != nil {
				l.counters.AddDecodeError()
				log.Printf("Error handling datagram from %v: %v", addr, err)
			}
		}
	}
}

func (l *Listener) handlePacket(packet []byte) error {
	l.counters.AddPacket(len(packet))

	sample, err := DecodeSample(packet)
	if err != nil {
		return err
	}
	if l.handler == nil {
		return nil
	}
	return l.handler.Submit(sample)
}

func (l *Listener) startStatsLogging(ctx context.Context) {
	ticker := time.NewTicker(l.logInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			packets, bytes, decodeErrors, duration := l.counters.GetAndReset()
			if packets == 0 && decodeErrors == 0 {
				continue
			}
			secs := duration.Seconds()
			if secs <= 0 {
				secs = 1
			}
			monitoring.Logf("Samples: %.1f pkt/s, %.1f KB/s, %d decode errors",
				float64(packets)/secs, float64(bytes)/1024/secs, decodeErrors)
		}
	}
}

// Close closes the listener socket if open.
func (l *Listener) Close() error {
	if l.socket != nil {
		return l.socket.Close()
	}
	return nil
}
