// Package shutdown ждет сигнала завершения и выполняет хуки остановки в пределах таймаута.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"sharednotes/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogShutdownSignal   = "shutdown signal received"
	LogShutdownContext  = "shutdown triggered by context"
	LogHookFailed       = "shutdown hook failed"
	LogShutdownTimedOut = "shutdown hooks did not finish in time"
)

// Hook освобождает один ресурс при остановке.
type Hook func(ctx context.Context) error

// Wait блокируется до SIGINT/SIGTERM или отмены ctx, затем параллельно
// запускает хуки и ждет их не дольше timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	log := logger.Log(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Info(ctx, LogShutdownSignal, zap.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info(ctx, LogShutdownContext)
	}

	Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run выполняет хуки параллельно с общим таймаутом.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	log := logger.Log(ctx)

	hookCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(hookCtx); err != nil {
				log.Error(hookCtx, LogHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(ctx, LogShutdownTimedOut, zap.Duration("timeout", timeout))
	}
}
