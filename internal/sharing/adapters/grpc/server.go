// Package grpc содержит gRPC сервер сервиса с health-проверкой хранилища.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"sharednotes/internal/sharing/config"
	"sharednotes/pkg/logger"
)

// ServiceName - имя сервиса в health-протоколе.
const ServiceName = "sharing.SharedNotes"

// Константы сообщений для логирования.
const (
	LogServerStarted   = "gRPC server started"
	LogServerStopping  = "stopping gRPC server"
	LogHealthChanged   = "storage health changed"
	LogPanicRecovered  = "panic recovered in gRPC handler"
	ErrMsgListen       = "failed to listen"
	ErrMsgServe        = "failed to serve gRPC"
	ErrMsgCloseListen  = "failed to close listener"
	ErrMsgInternalCall = "internal error"
)

// ErrInvalidInterval - интервал опроса хранилища не положителен.
var ErrInvalidInterval = errors.New("health check interval must be positive")

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server представляет gRPC сервер.
type Server struct {
	server   *grpc.Server
	health   *health.Server
	pinger   Pinger
	interval time.Duration
	address  string
	listener net.Listener
}

// New создает сервер. Статус health определяется ответом pinger.
func New(ctx context.Context, cfg *config.GRPCConfig, pinger Pinger) *Server {
	log := logger.Log(ctx)

	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.UnaryServerInterceptor(interceptorLogger(log), logging.WithLogOnEvents(logging.FinishCall)),
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(recoveryHandler)),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recovery.WithRecoveryHandlerContext(recoveryHandler)),
		),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	reflection.Register(server)

	return &Server{
		server:   server,
		health:   healthServer,
		pinger:   pinger,
		interval: cfg.HealthCheckInterval,
		address:  cfg.GetAddress(),
	}
}

// Start открывает порт, проверяет хранилище и запускает обслуживание в фоне.
func (s *Server) Start(ctx context.Context) error {
	log := logger.Log(ctx)

	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgListen, err)
	}
	s.listener = listener

	s.CheckHealth(ctx)

	log.Info(ctx, LogServerStarted, zap.String("address", listener.Addr().String()))

	go func() {
		if err := s.server.Serve(listener); err != nil {
			log.Error(ctx, ErrMsgServe, zap.Error(err))
		}
	}()

	return nil
}

// Addr возвращает фактический адрес после Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.address
	}
	return s.listener.Addr().String()
}

// CheckHealth один раз опрашивает хранилище и обновляет статус.
func (s *Server) CheckHealth(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	next := healthpb.HealthCheckResponse_SERVING
	if err := s.pinger.Ping(ctx); err != nil {
		logger.Log(ctx).Warn(ctx, "storage ping failed", zap.Error(err))
		next = healthpb.HealthCheckResponse_NOT_SERVING
	}

	prev, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil || prev.GetStatus() != next {
		logger.Log(ctx).Info(ctx, LogHealthChanged, zap.String("status", next.String()))
	}

	s.health.SetServingStatus("", next)
	s.health.SetServingStatus(ServiceName, next)
	return next
}

// WatchHealth опрашивает хранилище с заданным интервалом до отмены ctx.
func (s *Server) WatchHealth(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, s.interval)
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.CheckHealth(ctx)
		}
	}
}

// Stop останавливает gRPC сервер.
func (s *Server) Stop(ctx context.Context) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServerStopping)

	s.health.Shutdown()
	s.server.GracefulStop()
	if s.listener != nil {
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			log.Error(ctx, ErrMsgCloseListen, zap.Error(err))
		}
	}
}

func recoveryHandler(ctx context.Context, p any) error {
	logger.Log(ctx).Error(ctx, LogPanicRecovered, zap.Any("panic", p))
	return status.Error(codes.Internal, ErrMsgInternalCall)
}

// interceptorLogger адаптирует logger к интерфейсу go-grpc-middleware.
func interceptorLogger(log *logger.Logger) logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		zapFields := make([]zap.Field, 0, len(fields)/2)
		for i := 0; i+1 < len(fields); i += 2 {
			key, ok := fields[i].(string)
			if !ok {
				continue
			}
			zapFields = append(zapFields, zap.Any(key, fields[i+1]))
		}

		switch lvl {
		case logging.LevelDebug:
			log.Debug(ctx, msg, zapFields...)
		case logging.LevelWarn:
			log.Warn(ctx, msg, zapFields...)
		case logging.LevelError:
			log.Error(ctx, msg, zapFields...)
		default:
			log.Info(ctx, msg, zapFields...)
		}
	})
}
