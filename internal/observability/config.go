package observability

import (
	"os"
	"strings"
)

// Config controls logging and instrumentation.
type Config struct {
	ServiceName string
	Environment string
	Version     string
	LogLevel    string
	LogFormat   string
}

func (c Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

// LoadConfig reads observability settings from the environment.
func LoadConfig() Config {
	return Config{
		ServiceName: getenv("APP_SERVICE", "galeri"),
		Environment: getenv("ENVIRONMENT", "development"),
		Version:     getenv("APP_VERSION", "0.1.0"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		LogFormat:   getenv("LOG_FORMAT", "json"),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
