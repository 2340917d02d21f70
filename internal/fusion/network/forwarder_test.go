package network

import (
	"context"
	"math"
	"net"
	"testing"
	"time"

	"github.com/banshee-data/pose.fusion/internal/fusion"
)

func TestForwarder_DeliversDatagrams(t *testing.T) {
	// Stand up a real UDP receiver on a loopback port.
	recv, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1")})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer recv.Close()
	port := recv.LocalAddr().(*net.UDPAddr).Port

	f, err := NewForwarder("127.0.0.1", port, time.Minute)
	if err != nil {
		t.Fatalf("new forwarder: %v", err)
	}
	defer f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.Start(ctx)

	pose := fusion.FusePoses(*testPoseSample(), *testPoseSample(), 0.5, 0.5, time.Unix(1700000002, 0))
	f.PublishPose(pose)
	f.BroadcastTransform(fusion.DeriveTransform(pose))

	recv.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 8192)
	for i := 0; i < 2; i++ {
		n, _, err := recv.ReadFromUDP(buf)
		if err != nil {
			t.Fatalf("receive datagram %d: %v", i, err)
		}
		if n == 0 {
			t.Errorf("datagram %d is empty", i)
		}
	}
}

func TestForwarder_DropsWhenBufferFull(t *testing.T) {
	f, err := NewForwarder("127.0.0.1", 9, time.Minute)
	if err != nil {
		t.Fatalf("new forwarder: %v", err)
	}
	defer f.Close()

	// Never started: the channel drains nowhere, so the buffer fills and
	// further publishes drop without blocking.
	twist := fusion.FusedTwist{AngularZ: 0.25, Stamp: time.Now(), FrameID: fusion.WorldFrame}
	for i := 0; i < 1100; i++ {
		f.PublishTwist(twist)
	}

	if f.Dropped() == 0 {
		t.Error("expected drops once the forward buffer filled")
	}
}

func TestForwarder_CountsUnencodableOutputs(t *testing.T) {
	f, err := NewForwarder("127.0.0.1", 9, time.Minute)
	if err != nil {
		t.Fatalf("new forwarder: %v", err)
	}
	defer f.Close()

	f.PublishTwist(fusion.FusedTwist{AngularZ: math.NaN()})

	if f.Dropped() != 1 {
		t.Errorf("dropped = %d, want 1 for an unencodable output", f.Dropped())
	}
}
