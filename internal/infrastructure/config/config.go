// Package config loads service configuration from environment variables with
// sensible defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the risk service.
type Config struct {
	// gRPC server port
	GRPCPort int
	// HTTP metrics/health port
	HTTPPort int
	// Service name for observability
	ServiceName string
	Environment string

	Log       LogConfig
	Database  DatabaseConfig
	Kafka     KafkaConfig
	Training  TrainingConfig
	Artifacts ArtifactsConfig
	Tracing   TracingConfig
	TLS       TLSConfig
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// DSN returns the PostgreSQL data source name.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// KafkaConfig holds Kafka connection settings.
type KafkaConfig struct {
	Brokers     []string
	EventsTopic string
	AlertsTopic string
}

// TrainingConfig holds the training pipeline settings that are deployment
// concerns. Model hyperparameters live in the optional params file.
type TrainingConfig struct {
	// MinSamples is the smallest labeled dataset a training run accepts.
	MinSamples int
	// ValidationSplit is the held-out fraction for model evaluation.
	ValidationSplit float64
	// ImportanceThreshold zeroes categories whose normalized importance
	// falls below it before weights are derived.
	ImportanceThreshold float64
	// AutoApprove moves freshly trained versions straight to APPROVED.
	AutoApprove bool
	// Concurrency caps simultaneous training runs.
	Concurrency int
	// ParamsFile optionally points at a YAML hyperparameter profile.
	ParamsFile string
}

// ArtifactsConfig holds model artifact storage settings.
type ArtifactsConfig struct {
	Backend  string // "fs" or "s3"
	Dir      string
	Bucket   string
	Region   string
	Endpoint string
	Prefix   string
}

// TracingConfig holds the OTLP exporter settings.
type TracingConfig struct {
	Endpoint string
	Insecure bool
}

// TLSConfig holds the gRPC server certificate paths. Empty paths mean
// plaintext.
type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// GRPCAddress returns the full gRPC listen address.
func (c Config) GRPCAddress() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// Validate checks cross-field constraints that env parsing cannot.
func (c Config) Validate() error {
	if c.Training.ValidationSplit <= 0 || c.Training.ValidationSplit >= 1 {
		return fmt.Errorf("TRAINING_VALIDATION_SPLIT must be in (0, 1), got %g", c.Training.ValidationSplit)
	}
	if c.Training.ImportanceThreshold < 0 {
		return fmt.Errorf("TRAINING_IMPORTANCE_THRESHOLD must not be negative, got %g", c.Training.ImportanceThreshold)
	}
	if c.Training.MinSamples < 1 {
		return fmt.Errorf("TRAINING_MIN_SAMPLES must be positive, got %d", c.Training.MinSamples)
	}
	if c.Training.Concurrency < 1 {
		return fmt.Errorf("TRAINING_CONCURRENCY must be positive, got %d", c.Training.Concurrency)
	}
	switch c.Artifacts.Backend {
	case "", "fs", "s3":
	default:
		return fmt.Errorf("ARTIFACT_BACKEND must be fs or s3, got %q", c.Artifacts.Backend)
	}
	if c.Artifacts.Backend == "s3" && c.Artifacts.Bucket == "" {
		return fmt.Errorf("ARTIFACT_S3_BUCKET is required when ARTIFACT_BACKEND=s3")
	}
	return nil
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		GRPCPort:    getEnvInt("GRPC_PORT", 8090),
		HTTPPort:    getEnvInt("HTTP_PORT", 9090),
		ServiceName: getEnv("SERVICE_NAME", "risk-service"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "aegis"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "aegis_risk"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers:     splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			EventsTopic: getEnv("KAFKA_EVENTS_TOPIC", "risk.events"),
			AlertsTopic: getEnv("KAFKA_ALERTS_TOPIC", "risk.alerts"),
		},
		Training: TrainingConfig{
			MinSamples:          getEnvInt("TRAINING_MIN_SAMPLES", 50),
			ValidationSplit:     getEnvFloat("TRAINING_VALIDATION_SPLIT", 0.2),
			ImportanceThreshold: getEnvFloat("TRAINING_IMPORTANCE_THRESHOLD", 0.01),
			AutoApprove:         getEnvBool("TRAINING_AUTO_APPROVE", false),
			Concurrency:         getEnvInt("TRAINING_CONCURRENCY", 2),
			ParamsFile:          getEnv("MODEL_PARAMS_FILE", ""),
		},
		Artifacts: ArtifactsConfig{
			Backend:  getEnv("ARTIFACT_BACKEND", "fs"),
			Dir:      getEnv("ARTIFACT_DIR", "data/artifacts"),
			Bucket:   getEnv("ARTIFACT_S3_BUCKET", ""),
			Region:   getEnv("ARTIFACT_S3_REGION", "us-east-1"),
			Endpoint: getEnv("ARTIFACT_S3_ENDPOINT", ""),
			Prefix:   getEnv("ARTIFACT_S3_PREFIX", ""),
		},
		Tracing: TracingConfig{
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure: getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		},
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
