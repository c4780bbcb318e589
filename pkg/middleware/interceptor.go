package middleware

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/fekuna/omnipos-pos-service/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type requestIDKey struct{}

// RequestID returns the id assigned to the current call, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RecoveryInterceptor turns handler panics into codes.Internal.
func RecoveryInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if p := recover(); p != nil {
				log.Error("panic in handler",
					zap.String("method", info.FullMethod),
					zap.Any("panic", p),
					zap.ByteString("stack", debug.Stack()),
				)
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}

// ContextInterceptor assigns a request id, taken from x-request-id metadata when present.
func ContextInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		id := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get("x-request-id"); len(v) > 0 {
				id = v[0]
			}
		}
		if id == "" {
			id = uuid.New().String()
		}
		_ = grpc.SetHeader(ctx, metadata.Pairs("x-request-id", id))
		return handler(context.WithValue(ctx, requestIDKey{}, id), req)
	}
}

// LoggingInterceptor logs each call and records its duration.
func LoggingInterceptor(log logger.ZapLogger, m *metrics.Metrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		elapsed := time.Since(start)
		code := status.Code(err)

		m.ObserveRequest(info.FullMethod, code.String(), elapsed)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("duration", elapsed),
			zap.String("request_id", RequestID(ctx)),
		}
		switch code {
		case codes.OK:
			log.Debug("request handled", fields...)
		case codes.Internal, codes.Unknown:
			log.Error("request failed", append(fields, zap.Error(err))...)
		default:
			log.Info("request rejected", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}

// ErrorInterceptor makes sure every error leaving the server carries a status code.
// Errors that already expose GRPCStatus keep their code; anything else is Internal.
func ErrorInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return resp, status.FromContextError(err).Err()
		}
		if st, ok := status.FromError(err); ok {
			return resp, st.Err()
		}
		return resp, status.Error(codes.Internal, err.Error())
	}
}
