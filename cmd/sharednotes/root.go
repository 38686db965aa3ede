package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sharednotes/internal/sharing/config"
	"sharednotes/pkg/logger"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "SHARING_LOGGER_MODE"
	EnvLoggerLevel = "SHARING_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

type cliOptions struct {
	output string
	cfg    *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "sharednotes",
		Short: "Shared notes with read-only viewer tokens",
		Long: `sharednotes keeps notes in SQLite or Postgres and hands out up to three
viewer tokens per note. Viewers always see the latest saved version.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(opts.output); err != nil {
				return err
			}
			ctx, cfg, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			opts.cfg = cfg
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			syncLogger()
		},
	}

	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputText, "output format: text, yaml or json")

	root.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newNoteCmd(opts),
		newTokenCmd(opts),
		newViewCmd(opts),
		newLinkCmd(opts),
	)
	return root
}

// setup создает начальный logger, загружает конфигурацию и заменяет logger настроенным.
func setup(parent context.Context) (context.Context, *config.Config, error) {
	if parent == nil {
		parent = context.Background()
	}

	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrInitLogger, err)
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(parent, "")

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		return nil, nil, fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		return nil, nil, fmt.Errorf("%s: %w", ErrInitLoggerWithConfig, err)
	}
	logger.SetGlobalLogger(finalLogger)

	return ctx, cfg, nil
}

func syncLogger() {
	if err := logger.Log(context.Background()).Sync(); err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
			return
		}
		if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
			panic(writeErr)
		}
	}
}
