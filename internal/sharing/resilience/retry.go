package resilience

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"

	"sharednotes/pkg/logger"
)

// RetryConfig содержит настройки для retry механизма.
type RetryConfig struct {
	// MaxAttempts - максимальное количество попыток (включая первую).
	MaxAttempts int
	// InitialBackoff - начальная задержка между попытками.
	InitialBackoff time.Duration
	// MaxBackoff - максимальная задержка между попытками.
	MaxBackoff time.Duration
	// BackoffFactor - множитель для экспоненциального отступа.
	BackoffFactor float64
	// ShouldRetry решает, повторять ли попытку после ошибки.
	ShouldRetry func(error) bool
}

// DefaultRetryConfig возвращает конфигурацию retry механизма по умолчанию.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		BackoffFactor:  2.0,
		ShouldRetry:    defaultShouldRetry,
	}
}

// ErrContextCanceled возвращается, когда контекст был отменен во время ожидания перед повторной попыткой.
var ErrContextCanceled = errors.New("context was canceled during retry")

func defaultShouldRetry(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Константы для логирования.
const (
	LogRetryAttempt     = "retry attempt"
	LogRetrySuccess     = "retry succeeded"
	LogRetryMaxAttempts = "retry max attempts reached"
)

// Retry выполняет функцию с повторными попытками.
type Retry struct {
	name   string
	config RetryConfig
}

// NewRetry создает новый экземпляр retry механизма.
func NewRetry(name string, config RetryConfig) *Retry {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	if config.BackoffFactor < 1 {
		config.BackoffFactor = 1
	}
	if config.ShouldRetry == nil {
		config.ShouldRetry = defaultShouldRetry
	}
	return &Retry{name: name, config: config}
}

// Execute выполняет функцию с автоматическими повторными попытками.
func (r *Retry) Execute(ctx context.Context, operation func() error) error {
	log := logger.Log(ctx).With(zap.String("retry", r.name))

	attempts := 0
	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(uint(r.config.MaxAttempts)),
		retry.Delay(r.config.InitialBackoff),
		retry.DelayType(r.backoff),
		retry.RetryIf(r.config.ShouldRetry),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Debug(ctx, LogRetryAttempt,
				zap.Uint("attempt", n+1),
				zap.Duration("backoff", r.backoff(n, err, nil)),
				zap.Error(err))
		}),
	}
	if r.config.MaxBackoff > 0 {
		opts = append(opts, retry.MaxDelay(r.config.MaxBackoff))
	}

	err := retry.Do(func() error {
		attempts++
		return operation()
	}, opts...)

	switch {
	case err == nil:
		if attempts > 1 {
			log.Info(ctx, LogRetrySuccess, zap.Int("attempts", attempts))
		}
		return nil
	case ctx.Err() != nil:
		return fmt.Errorf("%w: %w", ErrContextCanceled, err)
	case attempts >= r.config.MaxAttempts:
		log.Warn(ctx, LogRetryMaxAttempts, zap.Int("attempts", attempts), zap.Error(err))
	}
	return err
}

// backoff - задержка после попытки n (с нуля): InitialBackoff * BackoffFactor^n, не больше MaxBackoff.
func (r *Retry) backoff(n uint, _ error, _ *retry.Config) time.Duration {
	d := time.Duration(float64(r.config.InitialBackoff) * math.Pow(r.config.BackoffFactor, float64(n)))
	if r.config.MaxBackoff > 0 && (d > r.config.MaxBackoff || d < 0) {
		return r.config.MaxBackoff
	}
	return d
}
