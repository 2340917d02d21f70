// Command fwd-monitor listens on the fused-output forward port and prints
// per-second datagram counts by type. Useful for checking what a running
// service started with -forward is actually emitting.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"sync/atomic"
	"time"

	"github.com/banshee-data/pose.fusion/internal/fusion/network"
)

var listen = flag.String("listen", ":9101", "UDP address to listen for fused output datagrams")

func main() {
	flag.Parse()

	addr, err := net.ResolveUDPAddr("udp", *listen)
	if err != nil {
		log.Fatal(err)
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	fmt.Printf("Listening for fused output on %s\n", *listen)

	var poseCount, twistCount, transformCount, otherCount, byteCount int64

	// Statistics goroutine
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			poses := atomic.SwapInt64(&poseCount, 0)
			twists := atomic.SwapInt64(&twistCount, 0)
			transforms := atomic.SwapInt64(&transformCount, 0)
			other := atomic.SwapInt64(&otherCount, 0)
			bytes := atomic.SwapInt64(&byteCount, 0)
			if poses+twists+transforms+other > 0 {
				fmt.Printf("Received: %d poses/s, %d twists/s, %d transforms/s, %d other, %.1f KB/s\n",
					poses, twists, transforms, other, float64(bytes)/1024)
			}
		}
	}()

	// Main receive loop
	buffer := make([]byte, 65536)
	for {
		n, _, err := conn.ReadFromUDP(buffer)
		if err != nil {
			log.Printf("Read error: %v", err)
			continue
		}

		atomic.AddInt64(&byteCount, int64(n))

		var out network.OutputDatagram
		if err := json.Unmarshal(buffer[:n], &out); err != nil {
			atomic.AddInt64(&otherCount, 1)
			continue
		}
		switch out.Type {
		case network.TypeFusedPose:
			atomic.AddInt64(&poseCount, 1)
		case network.TypeFusedTwist:
			atomic.AddInt64(&twistCount, 1)
		case network.TypeTransform:
			atomic.AddInt64(&transformCount, 1)
		default:
			atomic.AddInt64(&otherCount, 1)
		}
	}
}
