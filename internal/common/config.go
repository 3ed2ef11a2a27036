package common

import (
	"os"
	"strconv"
	"time"

	"github.com/comexdesk/invoice-extract/constants"
)

// Config holds all application configuration
type Config struct {
	Extraction ExtractionConfig
	Geometry   GeometryConfig
	Reference  ReferenceConfig
}

// ExtractionConfig tunes grid and totals handling.
type ExtractionConfig struct {
	// NumberStyle is the default numeric convention when a profile does not
	// set one: "comma-decimal" (1.234,56) or "dot-decimal" (1,234.56).
	NumberStyle string
	// TotalsTolerance is the maximum declared-vs-computed difference that is
	// not reported as a discrepancy.
	TotalsTolerance string
	// MinHeaderMatches is the minimum number of canonical fields a row must
	// match to be accepted as a table header.
	MinHeaderMatches int
}

// GeometryConfig tunes line reconstruction and table location.
type GeometryConfig struct {
	LineTolerance         float64
	HeaderBuffer          float64
	FooterBuffer          float64
	SnapTolerance         float64
	TextTolerance         float64
	IntersectionTolerance float64
}

// ReferenceConfig holds reference-store connection settings.
type ReferenceConfig struct {
	SQLitePath       string
	PostgresDSN      string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			NumberStyle:      getEnv("NUMBER_STYLE", "comma-decimal"),
			TotalsTolerance:  getEnv("TOTALS_TOLERANCE", "0.05"),
			MinHeaderMatches: getEnvAsInt("MIN_HEADER_MATCHES", 3),
		},
		Geometry: GeometryConfig{
			LineTolerance:         getEnvAsFloat64("LINE_TOLERANCE", 3.0),
			HeaderBuffer:          getEnvAsFloat64("HEADER_BUFFER", 15.0),
			FooterBuffer:          getEnvAsFloat64("FOOTER_BUFFER", 15.0),
			SnapTolerance:         getEnvAsFloat64("SNAP_TOLERANCE", 3.0),
			TextTolerance:         getEnvAsFloat64("TEXT_TOLERANCE", 3.0),
			IntersectionTolerance: getEnvAsFloat64("INTERSECTION_TOLERANCE", 3.0),
		},
		Reference: ReferenceConfig{
			SQLitePath:       getEnv("REF_SQLITE_PATH", ""),
			PostgresDSN:      getEnv("REF_DB_URL", ""),
			MaxConns:         getEnvAsInt32("REF_DB_MAX_CONNS", 10),
			MinConns:         getEnvAsInt32("REF_DB_MIN_CONNS", 1),
			MaxConnLifetime:  getEnvAsDuration("REF_DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("REF_DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("REF_DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("REF_DB_STATEMENT_TIMEOUT", 0),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// DefaultNumberStyle returns the configured numeric convention, falling back
// to comma-decimal for unknown values (Validate rejects those anyway).
func (c *Config) DefaultNumberStyle() constants.NumberStyle {
	if style, ok := constants.ParseNumberStyle(c.Extraction.NumberStyle); ok {
		return style
	}
	return constants.CommaDecimal
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Extraction.NumberStyle != "comma-decimal" && c.Extraction.NumberStyle != "dot-decimal" {
		return NewAppError("CONFIG_ERROR", "NUMBER_STYLE must be comma-decimal or dot-decimal", ErrInvalidInput)
	}
	if _, err := strconv.ParseFloat(c.Extraction.TotalsTolerance, 64); err != nil {
		return NewAppError("CONFIG_ERROR", "TOTALS_TOLERANCE must be numeric", ErrInvalidInput)
	}
	if c.Extraction.MinHeaderMatches < 1 {
		return NewAppError("CONFIG_ERROR", "MIN_HEADER_MATCHES must be >= 1", ErrInvalidInput)
	}
	return nil
}
