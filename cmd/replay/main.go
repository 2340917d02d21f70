// Command replay re-injects recorded sample traffic from a PCAP capture
// into the fusion pipeline, as if the datagrams had arrived live over UDP.
//
// Fused output can be recorded to a SQLite database, forwarded over UDP,
// or both. PCAP decoding requires building with the 'pcap' tag.
//
// Usage:
//
//	go run -tags=pcap ./cmd/replay [flags]
//
// Flags:
//
//	-pcap          Path to the PCAP capture (required)
//	-udp-port      UDP port to filter sample datagrams on
//	-db            SQLite database to record fused output into (empty disables)
//	-forward-addr  Address to forward fused outputs to (empty disables)
//	-forward-port  Port to forward fused outputs to
package main

import (
	"context"
	"flag"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/pose.fusion/internal/db"
	"github.com/banshee-data/pose.fusion/internal/fusion"
	"github.com/banshee-data/pose.fusion/internal/fusion/network"
	"github.com/banshee-data/pose.fusion/internal/fusion/storage"
)

var (
	pcapFile    = flag.String("pcap", "", "Path to the PCAP capture (required)")
	udpPort     = flag.Int("udp-port", 9100, "UDP port to filter sample datagrams on")
	dbFile      = flag.String("db", "", "SQLite database to record fused output into (empty disables)")
	forwardAddr = flag.String("forward-addr", "", "Address to forward fused outputs to (empty disables)")
	forwardPort = flag.Int("forward-port", 9101, "Port to forward fused outputs to")

	lidarWeight  = flag.Float64("lidar-weight", 0.5, "Blend weight for lidar pose estimates")
	gnssWeight   = flag.Float64("gnss-weight", 0.5, "Blend weight for GNSS pose estimates")
	ekfWeight    = flag.Float64("ekf-weight", 0.5, "Blend weight for EKF angular rates")
	filterWeight = flag.Float64("filter-weight", 0.5, "Blend weight for onboard filter angular rates")
)

func main() {
	flag.Parse()

	if *pcapFile == "" {
		log.Fatal("Error: -pcap flag is required")
	}

	weights := fusion.Weights{
		LidarPose:   *lidarWeight,
		GNSSPose:    *gnssWeight,
		EKFTwist:    *ekfWeight,
		FilterTwist: *filterWeight,
	}
	for _, err := range weights.Check() {
		log.Printf("Warning: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var poseSinks []fusion.PoseSink
	var twistSinks []fusion.TwistSink
	var transformSinks []fusion.TransformSink

	var recorder *storage.Recorder
	if *dbFile != "" {
		database, err := db.NewDB(*dbFile)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()

		recorder, err = storage.NewRecorder(database, weights)
		if err != nil {
			log.Fatalf("Failed to create recorder: %v", err)
		}
		log.Printf("Recording session %s", recorder.SessionID())
		recorder.Start(ctx)
		poseSinks = append(poseSinks, recorder)
		twistSinks = append(twistSinks, recorder)
		transformSinks = append(transformSinks, recorder)
	}

	if *forwardAddr != "" {
		forwarder, err := network.NewForwarder(*forwardAddr, *forwardPort, time.Minute)
		if err != nil {
			log.Fatalf("Failed to create forwarder: %v", err)
		}
		defer forwarder.Close()
		forwarder.Start(ctx)
		log.Printf("Forwarding fused outputs to %s:%d", *forwardAddr, *forwardPort)
		poseSinks = append(poseSinks, forwarder)
		twistSinks = append(twistSinks, forwarder)
		transformSinks = append(transformSinks, forwarder)
	}

	controller := fusion.NewController(fusion.ControllerConfig{
		Weights:    weights,
		Poses:      fusion.FanoutPoses(poseSinks...),
		Twists:     fusion.FanoutTwists(twistSinks...),
		Transforms: fusion.FanoutTransforms(transformSinks...),
	})

	counters := network.NewPacketCounters()
	start := time.Now()
	if err := network.ReadPCAPFile(ctx, *pcapFile, *udpPort, controller, counters); err != nil {
		log.Fatalf("PCAP replay failed: %v", err)
	}

	// Let the recorder drain before reporting.
	cancel()
	if recorder != nil {
		recorder.Wait()
	}

	packets, bytes, decodeErrors, _ := counters.GetAndReset()
	stats := controller.Stats().Snapshot()
	log.Printf("Replay complete in %v: %d packets (%d bytes), %d decode errors",
		time.Since(start).Round(time.Millisecond), packets, bytes, decodeErrors)
	log.Printf("Fused output: %d poses, %d twists", stats.FusedPoses, stats.FusedTwists)
	if recorder != nil {
		log.Printf("Recorded %d rows (dropped %d) under session %s",
			recorder.Written(), recorder.Dropped(), recorder.SessionID())
	}
}
