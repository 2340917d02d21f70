package stream

import (
	"context"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/banshee-data/pose.fusion/internal/fusion"
	"github.com/banshee-data/pose.fusion/internal/fusion/stream/pb"
)

// startTestPublisher starts a publisher on a random loopback port and
// returns it with its bound address.
func startTestPublisher(t *testing.T) (*Publisher, string) {
	t.Helper()

	cfg := DefaultConfig()
	cfg.ListenAddr = "127.0.0.1:0"
	pub := NewPublisher(cfg)
	RegisterService(pub.GRPCServer(), NewServer(pub))

	if err := pub.Start(); err != nil {
		t.Fatalf("failed to start publisher: %v", err)
	}
	t.Cleanup(pub.Stop)

	return pub, pub.listener.Addr().String()
}

func dialTestPublisher(t *testing.T, addr string) pb.FusionServiceClient {
	t.Helper()

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return pb.NewFusionServiceClient(conn)
}

func TestStreamUpdates_DeliversPoses(t *testing.T) {
	pub, addr := startTestPublisher(t)
	client := dialTestPublisher(t, addr)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := client.StreamUpdates(ctx, &pb.StreamRequest{ClientId: "test-client"})
	if err != nil {
		t.Fatalf("StreamUpdates failed: %v", err)
	}

	// Wait for the server to register the subscriber before publishing.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && pub.Stats().ClientCount == 0 {
		time.Sleep(10 * time.Millisecond)
	}
	if pub.Stats().ClientCount == 0 {
		t.Fatal("client never registered with publisher")
	}

	pub.PublishPose(fusion.FusedPose{
		Position: fusion.Vector3{X: 7},
		Stamp:    time.Unix(1700000000, 0),
		FrameID:  fusion.WorldFrame,
	})

	update, err := stream.Recv()
	if err != nil {
		t.Fatalf("Recv failed: %v", err)
	}
	if update.Pose == nil {
		t.Fatal("expected pose update")
	}
	if update.Pose.Position.GetX() != 7 {
		t.Errorf("position.x = %f, want 7", update.Pose.Position.GetX())
	}
	if update.Sequence == 0 {
		t.Error("expected non-zero sequence")
	}
}

func TestStreamUpdates_FiltersByRequest(t *testing.T) {
	pub, addr := startTestPublisher(t)
	client := dialTestPublisher(t, addr)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Subscribe to twists only.
	stream, err := client.StreamUpdates(ctx, &pb.StreamRequest{
		ClientId:      "twist-only",
		IncludeTwists: true,
	})
	if err != nil {
		t.Fatalf("StreamUpdates failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && pub.Stats().ClientCount == 0 {
		time.Sleep(10 * time.Millisecond)
	}

	pub.PublishPose(fusion.FusedPose{Stamp: time.Now()})
	pub.BroadcastTransform(fusion.Transform{Stamp: time.Now()})
	pub.PublishTwist(fusion.FusedTwist{AngularZ: 0.5, Stamp: time.Now()})

	update, err := stream.Recv()
	if err != nil {
		t.Fatalf("Recv failed: %v", err)
	}
	if update.Twist == nil {
		t.Fatalf("expected twist update, got %+v", update)
	}
	if update.Twist.AngularZ != 0.5 {
		t.Errorf("angular_z = %f, want 0.5", update.Twist.AngularZ)
	}
}

func TestStreamUpdates_ClientDisconnectUnregisters(t *testing.T) {
	pub, addr := startTestPublisher(t)
	client := dialTestPublisher(t, addr)

	ctx, cancel := context.WithCancel(context.Background())
	if _, err := client.StreamUpdates(ctx, &pb.StreamRequest{ClientId: "transient"}); err != nil {
		cancel()
		t.Fatalf("StreamUpdates failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && pub.Stats().ClientCount == 0 {
		time.Sleep(10 * time.Millisecond)
	}
	if pub.Stats().ClientCount != 1 {
		t.Fatalf("expected 1 client, got %d", pub.Stats().ClientCount)
	}

	cancel()

	deadline = time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && pub.Stats().ClientCount != 0 {
		time.Sleep(10 * time.Millisecond)
	}
	if got := pub.Stats().ClientCount; got != 0 {
		t.Errorf("expected 0 clients after disconnect, got %d", got)
	}
}
