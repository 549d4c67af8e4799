package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prasetyadi/volley-club/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string

	DBURL             string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	StaticDir          string

	RecountInterval    time.Duration
	RecountConcurrency int

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "volley-club"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		DBURL:          strings.TrimSpace(getEnv("DB_URL", "")),
		StaticDir:      getEnv("STATIC_DIR", "web"),
	}

	if cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}

	maxOpen, err := getEnvAsInt("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	if maxOpen < 1 {
		return Config{}, fmt.Errorf("DB_MAX_OPEN_CONNS must be >= 1")
	}
	maxIdle, err := getEnvAsInt("DB_MAX_IDLE_CONNS", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_IDLE_CONNS: %w", err)
	}
	connLifetime, err := time.ParseDuration(getEnv("DB_CONN_MAX_LIFETIME", "30m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_CONN_MAX_LIFETIME: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}

	recountInterval, err := time.ParseDuration(getEnv("RECOUNT_INTERVAL", "0s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RECOUNT_INTERVAL: %w", err)
	}
	recountConcurrency, err := getEnvAsInt("RECOUNT_CONCURRENCY", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECOUNT_CONCURRENCY: %w", err)
	}
	if recountConcurrency < 1 {
		return Config{}, fmt.Errorf("RECOUNT_CONCURRENCY must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServer := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServer == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}

	cfg.DBMaxOpenConns = maxOpen
	cfg.DBMaxIdleConns = maxIdle
	cfg.DBConnMaxLifetime = connLifetime
	cfg.CORSAllowedOrigins = splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))
	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.RecountInterval = recountInterval
	cfg.RecountConcurrency = recountConcurrency
	cfg.UptraceEnabled = uptraceEnabled
	cfg.UptraceDSN = uptraceDSN
	cfg.PyroscopeEnabled = pyroscopeEnabled
	cfg.PyroscopeServerAddress = pyroscopeServer
	cfg.PyroscopeAppName = getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName)
	cfg.PyroscopeAuthToken = getEnv("PYROSCOPE_AUTH_TOKEN", "")
	cfg.PyroscopeBasicAuthUser = getEnv("PYROSCOPE_BASIC_AUTH_USER", "")
	cfg.PyroscopeBasicAuthPassword = getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")
	cfg.PyroscopeUploadRate = pyroscopeUploadRate
	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
