// Package api implements the gRPC service surface: server construction
// and lifecycle, and the per-RPC Subscription Stream task.
package api

import (
	"context"
	"fmt"
	"net"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	apiproto "github.com/hostwatch/diskwatch/api/proto"
	"github.com/hostwatch/diskwatch/pkg/dispatcher"
	"github.com/hostwatch/diskwatch/pkg/log"
	"github.com/hostwatch/diskwatch/pkg/source"
)

// Server implements the Api gRPC service. Each inbound DiskListAndWatch
// call runs as its own Subscription Stream task against the shared
// Dispatcher.
type Server struct {
	apiproto.UnimplementedApiServer

	dispatcher *dispatcher.Dispatcher
	shutdown   context.Context
	grpc       *grpc.Server
	logger     zerolog.Logger
}

// NewServer creates an API server backed by d. shutdown firing terminates
// every in-flight subscription stream; pass a context derived from a
// shutdown.Receiver's Context.
func NewServer(d *dispatcher.Dispatcher, shutdown context.Context) *Server {
	logger := log.WithComponent("api")

	s := &Server{
		dispatcher: d,
		shutdown:   shutdown,
		logger:     logger,
	}
	s.grpc = grpc.NewServer(grpc.StreamInterceptor(loggingStreamInterceptor(logger)))
	apiproto.RegisterApiServer(s.grpc, s)
	return s
}

// Start listens on addr and serves until Stop is called or the listener
// fails.
func (s *Server) Start(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	s.logger.Info().Str("addr", addr).Msg("gRPC API listening")
	return s.grpc.Serve(lis)
}

// Stop gracefully stops the gRPC server, letting in-flight streams finish
// on their own terms (normally because the shutdown signal has fired).
func (s *Server) Stop() {
	if s.grpc != nil {
		s.grpc.GracefulStop()
	}
}

// DiskListAndWatch serves one Subscription Stream for the Disk source:
// subscribe to the fan-out channel, emit the retained snapshot, then tail
// live updates until the client disconnects or shutdown fires.
func (s *Server) DiskListAndWatch(req *apiproto.DiskListAndWatchRequest, stream apiproto.Api_DiskListAndWatchServer) error {
	subID := uuid.New()
	logger := log.WithSubscription(subID.String())
	logger.Info().Msg("subscription opened")
	defer logger.Info().Msg("subscription closed")

	// Subscribe before reading the cache: a reversed order could miss an
	// update that lands between the read and the subscribe.
	updates, cancel := s.dispatcher.Subscribe(source.Disk)
	defer cancel()

	if payload, ok := s.dispatcher.Snapshot(source.Disk); ok {
		resp, ok := payload.(*apiproto.DiskListAndWatchResponse)
		if !ok {
			logger.Warn().Msg("cached payload had unexpected type, skipping initial snapshot")
		} else if err := stream.Send(resp); err != nil {
			return err
		}
	}

	for {
		select {
		case payload, ok := <-updates:
			if !ok {
				return nil
			}
			resp, ok := payload.(*apiproto.DiskListAndWatchResponse)
			if !ok {
				logger.Warn().Msg("broadcast payload had unexpected type, skipping")
				continue
			}
			if err := stream.Send(resp); err != nil {
				return err
			}

		case <-s.shutdown.Done():
			return nil

		case <-stream.Context().Done():
			return stream.Context().Err()
		}
	}
}
