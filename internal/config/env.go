package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"

	"fjacquet/cert-archive/internal/logging"
)

var once sync.Once

// LoadEnv loads variables from a .env file in the working directory or its
// parent, once per process. Variables already set in the environment win.
func LoadEnv(logger logging.Logger) {
	once.Do(func() {
		loadEnvFile(logger)
	})
}

func loadEnvFile(logger logging.Logger) string {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			logger.Debug("No .env file found, using environment variables")
			return ""
		}
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.WithError(err).Warn("Error loading .env file")
		return ""
	}
	logger.Debug("Loaded environment variables", logging.F(logging.FieldFile, envFile))
	return envFile
}
