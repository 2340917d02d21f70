package stream

import (
	"fmt"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"

	"github.com/banshee-data/pose.fusion/internal/fusion"
	"github.com/banshee-data/pose.fusion/internal/fusion/stream/pb"
	"github.com/banshee-data/pose.fusion/internal/monitoring"
)

// Config holds configuration for the streaming gRPC server.
type Config struct {
	// ListenAddr is the address to listen on (e.g., "localhost:50051")
	ListenAddr string

	// MaxClients is the maximum number of concurrent streaming clients
	MaxClients int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		ListenAddr: "localhost:50051",
		MaxClients: 5,
	}
}

// Publisher manages the gRPC server and fans fused updates out to
// connected clients. It satisfies the controller's sink interfaces, so
// delivery is fire-and-forget: a full queue drops the update rather
// than stalling the fusion path.
type Publisher struct {
	config   Config
	server   *grpc.Server
	listener net.Listener

	// Update broadcasting
	updateChan chan *pb.FusionUpdate
	clients    map[string]*clientStream
	clientsMu  sync.RWMutex

	// Stats
	sequence       atomic.Uint64
	clientCount    atomic.Int32
	droppedUpdates atomic.Uint64
	lastStatsTime  time.Time
	lastStatsCount uint64
	lastStatsMu    sync.Mutex

	// Lifecycle
	running atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// clientStream represents a connected streaming client.
type clientStream struct {
	id       string
	request  *pb.StreamRequest
	updateCh chan *pb.FusionUpdate
	doneCh   chan struct{}
}

// NewPublisher creates a new Publisher with the given configuration.
// The gRPC server is constructed here so services can be registered
// before Start begins serving.
func NewPublisher(cfg Config) *Publisher {
	return &Publisher{
		config:     cfg,
		server:     grpc.NewServer(),
		updateChan: make(chan *pb.FusionUpdate, 100),
		clients:    make(map[string]*clientStream),
		stopCh:     make(chan struct{}),
	}
}

// Start starts the gRPC server.
func (p *Publisher) Start() error {
	if p.running.Load() {
		return fmt.Errorf("publisher already running")
	}

	lis, err := net.Listen("tcp", p.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	p.listener = lis

	p.running.Store(true)

	p.wg.Add(1)
	go p.broadcastLoop()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		log.Printf("[Stream] gRPC server listening on %s", p.config.ListenAddr)
		if err := p.server.Serve(lis); err != nil && p.running.Load() {
			log.Printf("[Stream] gRPC server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully stops the gRPC server.
func (p *Publisher) Stop() {
	if !p.running.Load() {
		return
	}
	p.running.Store(false)
	close(p.stopCh)

	if p.server != nil {
		p.server.GracefulStop()
	}
	if p.listener != nil {
		p.listener.Close()
	}

	p.wg.Wait()
	log.Printf("[Stream] gRPC server stopped")
}

// PublishPose queues a fused pose for all connected clients.
func (p *Publisher) PublishPose(pose fusion.FusedPose) {
	p.publish(&pb.FusionUpdate{Pose: FusedPoseToProto(pose)})
}

// PublishTwist queues a fused twist for all connected clients.
func (p *Publisher) PublishTwist(twist fusion.FusedTwist) {
	p.publish(&pb.FusionUpdate{Twist: FusedTwistToProto(twist)})
}

// BroadcastTransform queues a derived transform for all connected clients.
func (p *Publisher) BroadcastTransform(tf fusion.Transform) {
	p.publish(&pb.FusionUpdate{Transform: TransformToProto(tf)})
}

func (p *Publisher) publish(update *pb.FusionUpdate) {
	if !p.running.Load() {
		return
	}

	update.Sequence = p.sequence.Add(1)
	update.EmittedNs = time.Now().UnixNano()

	select {
	case p.updateChan <- update:
		p.logPeriodicStats(update.Sequence)
	default:
		dropped := p.droppedUpdates.Add(1)
		log.Printf("[Stream] DROPPED update %d (total dropped: %d), channel full",
			update.Sequence, dropped)
	}
}

// logPeriodicStats logs throughput stats every 5 seconds.
func (p *Publisher) logPeriodicStats(sequence uint64) {
	p.lastStatsMu.Lock()
	defer p.lastStatsMu.Unlock()

	now := time.Now()
	if p.lastStatsTime.IsZero() {
		p.lastStatsTime = now
		p.lastStatsCount = sequence
		return
	}

	elapsed := now.Sub(p.lastStatsTime)
	if elapsed >= 5*time.Second {
		inInterval := sequence - p.lastStatsCount
		rate := float64(inInterval) / elapsed.Seconds()
		monitoring.Logf("[Stream] Stats: updates/s=%.1f updates=%d dropped=%d clients=%d queue=%d/100",
			rate, inInterval, p.droppedUpdates.Load(), p.clientCount.Load(), len(p.updateChan))
		p.lastStatsTime = now
		p.lastStatsCount = sequence
	}
}

// broadcastLoop distributes updates to all connected clients.
func (p *Publisher) broadcastLoop() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopCh:
			return
		case update := <-p.updateChan:
			p.clientsMu.RLock()
			for _, client := range p.clients {
				if !clientWants(client.request, update) {
					continue
				}
				select {
				case client.updateCh <- update:
				default:
					// Client is slow, drop the update for this client.
					p.droppedUpdates.Add(1)
				}
			}
			p.clientsMu.RUnlock()
		}
	}
}

// clientWants applies the request's include flags. A request with no
// flags set receives everything.
func clientWants(req *pb.StreamRequest, update *pb.FusionUpdate) bool {
	if req == nil {
		return true
	}
	if !req.IncludePoses && !req.IncludeTwists && !req.IncludeTransforms {
		return true
	}
	switch {
	case update.Pose != nil:
		return req.IncludePoses
	case update.Twist != nil:
		return req.IncludeTwists
	case update.Transform != nil:
		return req.IncludeTransforms
	}
	return false
}

// addClient registers a new streaming client.
func (p *Publisher) addClient(id string, req *pb.StreamRequest) (*clientStream, error) {
	if max := p.config.MaxClients; max > 0 && int(p.clientCount.Load()) >= max {
		return nil, fmt.Errorf("client limit reached (%d)", max)
	}

	client := &clientStream{
		id:       id,
		request:  req,
		updateCh: make(chan *pb.FusionUpdate, 10),
		doneCh:   make(chan struct{}),
	}

	p.clientsMu.Lock()
	p.clients[id] = client
	p.clientsMu.Unlock()

	p.clientCount.Add(1)
	log.Printf("[Stream] Client connected: %s (total: %d)", id, p.clientCount.Load())

	return client, nil
}

// removeClient unregisters a streaming client.
func (p *Publisher) removeClient(id string) {
	p.clientsMu.Lock()
	if client, ok := p.clients[id]; ok {
		close(client.doneCh)
		delete(p.clients, id)
		p.clientsMu.Unlock()
		p.clientCount.Add(-1)
		log.Printf("[Stream] Client disconnected: %s (remaining: %d)", id, p.clientCount.Load())
	} else {
		p.clientsMu.Unlock()
	}
}

// Stats returns current publisher statistics.
func (p *Publisher) Stats() PublisherStats {
	return PublisherStats{
		UpdateCount:    p.sequence.Load(),
		ClientCount:    p.clientCount.Load(),
		DroppedUpdates: p.droppedUpdates.Load(),
		Running:        p.running.Load(),
	}
}

// PublisherStats contains publisher statistics.
type PublisherStats struct {
	UpdateCount    uint64
	ClientCount    int32
	DroppedUpdates uint64
	Running        bool
}

// ClientCount returns the number of connected streaming clients.
func (p *Publisher) ClientCount() int32 {
	return p.clientCount.Load()
}

// UpdateCount returns the number of updates published so far.
func (p *Publisher) UpdateCount() uint64 {
	return p.sequence.Load()
}

// DroppedUpdates returns the number of updates dropped on full queues.
func (p *Publisher) DroppedUpdates() uint64 {
	return p.droppedUpdates.Load()
}

// GRPCServer returns the underlying gRPC server for service registration.
func (p *Publisher) GRPCServer() *grpc.Server {
	return p.server
}
