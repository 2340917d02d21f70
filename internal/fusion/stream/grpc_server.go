// This file implements the gRPC service methods.
package stream

import (
	"fmt"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/banshee-data/pose.fusion/internal/fusion/stream/pb"
)

// Ensure Server implements the gRPC interface.
var _ pb.FusionServiceServer = (*Server)(nil)

// Server implements the FusionService gRPC server.
type Server struct {
	pb.UnimplementedFusionServiceServer

	publisher *Publisher
}

// NewServer creates a new gRPC server backed by the publisher.
func NewServer(publisher *Publisher) *Server {
	return &Server{publisher: publisher}
}

// StreamUpdates implements the streaming RPC for fused output.
func (s *Server) StreamUpdates(req *pb.StreamRequest, stream pb.FusionService_StreamUpdatesServer) error {
	log.Printf("[gRPC] StreamUpdates started: client=%s poses=%v twists=%v transforms=%v",
		req.ClientId, req.IncludePoses, req.IncludeTwists, req.IncludeTransforms)

	ctx := stream.Context()

	clientID := req.ClientId
	if clientID == "" {
		clientID = fmt.Sprintf("grpc-%d", time.Now().UnixNano())
	}

	client, err := s.publisher.addClient(clientID, req)
	if err != nil {
		return status.Error(codes.ResourceExhausted, err.Error())
	}
	defer s.publisher.removeClient(clientID)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[gRPC] StreamUpdates cancelled: client=%s", clientID)
			return ctx.Err()
		case update := <-client.updateCh:
			if err := stream.Send(update); err != nil {
				log.Printf("[gRPC] Send error: %v", err)
				return err
			}
		}
	}
}

// RegisterService registers the gRPC service with the server.
func RegisterService(grpcServer *grpc.Server, server *Server) {
	pb.RegisterFusionServiceServer(grpcServer, server)
}
