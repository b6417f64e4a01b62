package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	RateLimit  RateLimitConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// AttendanceConfig holds the attendance business rules
type AttendanceConfig struct {
	Timezone             string
	LateThresholdMinutes int
	HalfDayHours         float64
	StaleSweepInterval   time.Duration

	location *time.Location
}

type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
}

func Load() (*Config, error) {
	// A missing .env is fine; the environment may already be populated.
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "168h"),
	}

	// Attendance configuration
	lateThreshold, err := strconv.Atoi(getEnv("LATE_THRESHOLD_MINUTES", strconv.Itoa(attendance.DefaultLateThresholdMinutes)))
	if err != nil {
		return nil, fmt.Errorf("invalid LATE_THRESHOLD_MINUTES: %w", err)
	}

	halfDayHours, err := strconv.ParseFloat(getEnv("HALF_DAY_HOURS", "4"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid HALF_DAY_HOURS: %w", err)
	}

	sweepInterval, err := time.ParseDuration(getEnv("STALE_SESSION_SWEEP_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid STALE_SESSION_SWEEP_INTERVAL: %w", err)
	}

	config.Attendance = AttendanceConfig{
		Timezone:             getEnv("ATTENDANCE_TIMEZONE", "UTC"),
		LateThresholdMinutes: lateThreshold,
		HalfDayHours:         halfDayHours,
		StaleSweepInterval:   sweepInterval,
	}

	// Rate limit configuration
	window, err := time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}

	maxRequests, err := strconv.Atoi(getEnv("RATE_LIMIT_MAX_REQUESTS", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_MAX_REQUESTS: %w", err)
	}

	config.RateLimit = RateLimitConfig{
		Window:      window,
		MaxRequests: maxRequests,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return errors.New("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME is not a duration: %w", err)
	}

	loc, ok := validator.IsValidTimezone(c.Attendance.Timezone)
	if !ok {
		return fmt.Errorf("ATTENDANCE_TIMEZONE %q is not a known time zone", c.Attendance.Timezone)
	}
	c.Attendance.location = loc

	if c.Attendance.LateThresholdMinutes < 0 || c.Attendance.LateThresholdMinutes > 59 {
		return errors.New("LATE_THRESHOLD_MINUTES must be between 0 and 59")
	}
	if c.Attendance.HalfDayHours <= 0 || c.Attendance.HalfDayHours > 24 {
		return errors.New("HALF_DAY_HOURS must be greater than 0 and at most 24")
	}
	if c.RateLimit.MaxRequests < 0 {
		return errors.New("RATE_LIMIT_MAX_REQUESTS must not be negative")
	}
	return nil
}

// Policy returns the attendance rules. Validate must have succeeded.
func (c *Config) Policy() attendance.Policy {
	loc := c.Attendance.location
	if loc == nil {
		loc = time.UTC
	}
	return attendance.Policy{
		LateThresholdMinutes: c.Attendance.LateThresholdMinutes,
		HalfDayHours:         c.Attendance.HalfDayHours,
		Location:             loc,
	}
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
