package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/pose.fusion/internal/api"
	"github.com/banshee-data/pose.fusion/internal/db"
	"github.com/banshee-data/pose.fusion/internal/fusion"
	"github.com/banshee-data/pose.fusion/internal/fusion/network"
	"github.com/banshee-data/pose.fusion/internal/fusion/storage"
	"github.com/banshee-data/pose.fusion/internal/fusion/stream"
	"github.com/banshee-data/pose.fusion/internal/serialmux"
	"github.com/banshee-data/pose.fusion/internal/version"
)

var (
	showVersion = flag.Bool("version", false, "Print version and exit")

	devMode    = flag.Bool("dev", false, "Run in dev mode (mock serial port fed from fixtures.txt)")
	listen     = flag.String("listen", ":8080", "HTTP listen address")
	udpPort    = flag.Int("udp-port", 9100, "UDP port to listen for sample datagrams")
	udpAddress = flag.String("udp-addr", "", "UDP bind address (default: listen on all interfaces)")
	rcvBuf     = flag.Int("rcvbuf", 1<<20, "UDP receive buffer size in bytes (default 1MB)")

	grpcListen  = flag.String("grpc-listen", "localhost:50051", "gRPC stream listen address (empty disables streaming)")
	grpcClients = flag.Int("grpc-max-clients", 5, "Maximum concurrent gRPC streaming clients")

	forward     = flag.Bool("forward", false, "Forward fused outputs as UDP datagrams")
	forwardPort = flag.Int("forward-port", 9101, "Port to forward fused outputs to")
	forwardAddr = flag.String("forward-addr", "localhost", "Address to forward fused outputs to")

	serialDev = flag.String("serial", "", "Serial device for the onboard rate filter (empty disables serial ingest)")

	dbFile      = flag.String("db", "pose_fusion.db", "Path to the SQLite database file")
	logInterval = flag.Int("log-interval", 60, "Statistics logging interval in seconds")

	lidarWeight  = flag.Float64("lidar-weight", 0.5, "Blend weight for lidar pose estimates")
	gnssWeight   = flag.Float64("gnss-weight", 0.5, "Blend weight for GNSS pose estimates")
	ekfWeight    = flag.Float64("ekf-weight", 0.5, "Blend weight for EKF angular rates")
	filterWeight = flag.Float64("filter-weight", 0.5, "Blend weight for onboard filter angular rates")
)

// Main
func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("pose-fusion %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *listen == "" {
		log.Fatal("HTTP listen address is required")
	}

	log.Printf("pose-fusion %s (%s)", version.Version, version.GitSHA)

	// Construct UDP listen address
	var udpListenAddr string
	if *udpAddress == "" {
		udpListenAddr = fmt.Sprintf(":%d", *udpPort)
	} else {
		udpListenAddr = fmt.Sprintf("%s:%d", *udpAddress, *udpPort)
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

	// Initialize database (runs pending migrations)
	database, err := db.NewDB(*dbFile)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	recorder, err := storage.NewRecorder(database, weights)
	if err != nil {
		log.Fatalf("Failed to create recorder: %v", err)
	}
	log.Printf("Recording session %s", recorder.SessionID())

	// Sinks are assembled conditionally so the controller only fans out to
	// subsystems that are actually enabled.
	poseSinks := []fusion.PoseSink{recorder}
	twistSinks := []fusion.TwistSink{recorder}
	transformSinks := []fusion.TransformSink{recorder}

	var publisher *stream.Publisher
	if *grpcListen != "" {
		publisher = stream.NewPublisher(stream.Config{
			ListenAddr: *grpcListen,
			MaxClients: *grpcClients,
		})
		stream.RegisterService(publisher.GRPCServer(), stream.NewServer(publisher))
		poseSinks = append(poseSinks, publisher)
		twistSinks = append(twistSinks, publisher)
		transformSinks = append(transformSinks, publisher)
	}

	var forwarder *network.Forwarder
	if *forward {
		forwarder, err = network.NewForwarder(*forwardAddr, *forwardPort, time.Duration(*logInterval)*time.Second)
		if err != nil {
			log.Fatalf("Failed to create forwarder: %v", err)
		}
		defer forwarder.Close()
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

	// Optional serial ingest for the onboard rate filter
	var mux serialmux.SerialMuxInterface
	if *devMode {
		data, err := os.ReadFile("fixtures.txt")
		if err != nil {
			log.Fatalf("failed to open fixtures file: %v", err)
		}
		mux = serialmux.NewMockSerialMux(data)
	} else if *serialDev != "" {
		mux, err = serialmux.NewRealSerialMux(*serialDev)
		if err != nil {
			log.Fatalf("failed to open serial device %s: %v", *serialDev, err)
		}
	}

	// Create a wait group for the UDP listener, serial, stream, and HTTP routines
	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recorder.Start(ctx)

	if publisher != nil {
		if err := publisher.Start(); err != nil {
			log.Fatalf("Failed to start gRPC publisher: %v", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-ctx.Done()
			publisher.Stop()
			log.Print("gRPC publisher routine terminated")
		}()
	}

	if forwarder != nil {
		forwarder.Start(ctx)
	}

	// UDP listener routine
	listener := network.NewListener(network.ListenerConfig{
		Address:     udpListenAddr,
		RcvBuf:      *rcvBuf,
		LogInterval: time.Duration(*logInterval) * time.Second,
		Handler:     controller,
	})
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := listener.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("UDP listener error: %v", err)
		}
		log.Print("UDP listener routine terminated")
	}()

	if mux != nil {
		defer mux.Close()
		if err := mux.Initialize(); err != nil {
			log.Printf("Warning: serial initialization failed: %v", err)
		}

		// run the monitor routine to manage IO on the serial port
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := mux.Monitor(ctx); err != nil && err != context.Canceled {
				log.Printf("failed to monitor serial port: %v", err)
			}
			log.Print("monitor routine terminated")
		}()

		// parse rate reports off the serial port and feed them to the controller
		ingest := serialmux.NewTwistIngest(mux, controller)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ingest.Run(ctx); err != nil && err != context.Canceled {
				log.Printf("serial ingest error: %v", err)
			}
			log.Print("serial ingest routine terminated")
		}()
	}

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		srv := api.NewServer(controller, database, recorder.SessionID(), weights)
		srv.SetRecorderStats(recorder)
		if publisher != nil {
			srv.SetStreamStats(publisher)
		}

		server := &http.Server{
			Addr:    *listen,
			Handler: api.LoggingMiddleware(srv.ServeMux()),
		}

		// Start server in a goroutine so it doesn't block
		go func() {
			log.Printf("Starting HTTP server on %s", *listen)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		// Wait for context cancellation to shut down server
		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		// Create a shutdown context with a timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}

		log.Printf("HTTP server routine stopped")
	}()

	// Wait for all goroutines to finish, then let the recorder flush
	wg.Wait()
	recorder.Wait()
	log.Printf("Graceful shutdown complete")
}
