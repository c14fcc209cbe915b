package api

import (
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
)

// loggingStreamInterceptor logs the outcome and duration of every
// streaming RPC call.
func loggingStreamInterceptor(logger zerolog.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)

		l := logger.With().
			Str("method", info.FullMethod).
			Dur("duration", time.Since(start)).
			Logger()

		if err != nil {
			l.Warn().Err(err).Msg("stream ended with error")
		} else {
			l.Debug().Msg("stream ended")
		}
		return err
	}
}
