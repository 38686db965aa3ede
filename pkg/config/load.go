// Package config загружает конфигурацию сервисов из переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"sharednotes/pkg/logger"
)

const (
	msgLoadingConfiguration = "loading configuration"
	msgConfigurationLoaded  = "configuration loaded successfully"
	msgEnvFileLoaded        = "environment file loaded"

	errFailedLoadEnvFile       = "failed to load environment file"
	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// EnvFileVariable задает путь к необязательному .env файлу.
const EnvFileVariable = "SHARING_ENV_FILE"

const defaultEnvFile = ".env"

// Load читает переменные окружения в структуру T. Если существует .env файл
// (путь из SHARING_ENV_FILE либо ./.env), его значения подмешиваются без
// перезаписи уже заданных переменных.
func Load[T any](ctx context.Context, serviceName string) (*T, error) {
	log := logger.Log(ctx)

	envPath := os.Getenv(EnvFileVariable)
	if envPath == "" {
		envPath = defaultEnvFile
	}

	log.Info(ctx, msgLoadingConfiguration,
		zap.String(attrService, serviceName),
		zap.String(attrPath, envPath))

	if err := godotenv.Load(envPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Error(ctx, errFailedLoadEnvFile, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errFailedLoadEnvFile, err)
		}
	} else {
		log.Debug(ctx, msgEnvFileLoaded, zap.String(attrPath, envPath))
	}

	var cfg T
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, errFailedLoadConfiguration,
			zap.String(attrService, serviceName),
			zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded, zap.String(attrService, serviceName))

	return &cfg, nil
}
