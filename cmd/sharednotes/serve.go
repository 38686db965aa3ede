package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	sharinggrpc "sharednotes/internal/sharing/adapters/grpc"
	sharinghttp "sharednotes/internal/sharing/adapters/http"
	"sharednotes/pkg/logger"
	"sharednotes/pkg/shutdown"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "sharing service started"
	LogServiceShutdownDone = "sharing service shutdown complete"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogStartingGRPC        = "starting gRPC server"
	LogClosingStorage      = "closing storage and cache"

	ErrStartHTTPServer = "failed to start HTTP server"
	ErrStartGRPCServer = "failed to start gRPC server"
)

func newServeCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the gRPC health endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), opts)
		},
	}
}

func serve(ctx context.Context, opts *cliOptions) error {
	cfg := opts.cfg
	log := logger.Log(ctx)

	log.Info(ctx, LogServiceStarted,
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	d, err := openRuntime(ctx, cfg)
	if err != nil {
		return err
	}

	log.Info(ctx, LogInitHTTPServer)
	httpApp := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	})
	sharinghttp.SetupRouter(httpApp, d.service, cfg.Sharing.PublicURL)

	log.Info(ctx, LogStartingGRPC, zap.String("address", cfg.GRPC.GetAddress()))
	grpcServer := sharinggrpc.New(ctx, &cfg.GRPC, d.store)
	if err := grpcServer.Start(ctx); err != nil {
		if closeErr := d.Close(); closeErr != nil {
			log.Error(ctx, LogClosingStorage, zap.Error(closeErr))
		}
		return fmt.Errorf("%s: %w", ErrStartGRPCServer, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, egCtx := errgroup.WithContext(runCtx)

	eg.Go(func() error {
		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		if err := httpApp.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			return fmt.Errorf("%s: %w", ErrStartHTTPServer, err)
		}
		return nil
	})

	eg.Go(func() error {
		return grpcServer.WatchHealth(egCtx)
	})

	shutdown.Wait(egCtx, cfg.Shutdown.GetTimeout(),
		// Остановка HTTP сервера.
		func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			return httpApp.ShutdownWithContext(ctx)
		},
		// Остановка gRPC сервера и опроса хранилища.
		func(ctx context.Context) error {
			cancel()
			grpcServer.Stop(ctx)
			return nil
		},
	)

	err = eg.Wait()

	log.Info(ctx, LogClosingStorage)
	if closeErr := d.Close(); closeErr != nil {
		log.Error(ctx, LogClosingStorage, zap.Error(closeErr))
	}

	log.Info(ctx, LogServiceShutdownDone)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
