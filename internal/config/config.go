package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
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
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds the attendance engine constants. The engine never
// reads these from globals; every resolver takes the struct as an argument.
type AttendanceConfig struct {
	// CheckInWindowMinutes is how long before shift start check-in opens.
	CheckInWindowMinutes int
	// CheckOutWindowMinutes is how long after shift end check-out stays open.
	CheckOutWindowMinutes int
	// MinWorkDurationMinutes gates whether checkout is offered to the client.
	MinWorkDurationMinutes int
	// RegularizationMonthlyQuota caps self-regularized records per employee per month.
	RegularizationMonthlyQuota int
	// DefaultTimeZone applies to shifts with no zone configured.
	DefaultTimeZone string
}

// DefaultAttendanceConfig returns the engine constants with their documented defaults.
func DefaultAttendanceConfig() AttendanceConfig {
	return AttendanceConfig{
		CheckInWindowMinutes:       60,
		CheckOutWindowMinutes:      120,
		MinWorkDurationMinutes:     240,
		RegularizationMonthlyQuota: 3,
		DefaultTimeZone:            "Asia/Kolkata",
	}
}

func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

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
		Name:     getEnv("DB_NAME", "attendly"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance engine configuration
	attendance := DefaultAttendanceConfig()
	if attendance.CheckInWindowMinutes, err = getEnvInt("CHECK_IN_WINDOW_MINUTES", attendance.CheckInWindowMinutes); err != nil {
		return nil, err
	}
	if attendance.CheckOutWindowMinutes, err = getEnvInt("CHECK_OUT_WINDOW_MINUTES", attendance.CheckOutWindowMinutes); err != nil {
		return nil, err
	}
	if attendance.MinWorkDurationMinutes, err = getEnvInt("MIN_WORK_DURATION_MINUTES", attendance.MinWorkDurationMinutes); err != nil {
		return nil, err
	}
	if attendance.RegularizationMonthlyQuota, err = getEnvInt("REGULARIZATION_MONTHLY_QUOTA", attendance.RegularizationMonthlyQuota); err != nil {
		return nil, err
	}
	attendance.DefaultTimeZone = getEnv("DEFAULT_TIMEZONE", attendance.DefaultTimeZone)
	config.Attendance = attendance

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.CheckInWindowMinutes < 0 || c.Attendance.CheckOutWindowMinutes < 0 {
		return fmt.Errorf("attendance windows must be non-negative")
	}
	if c.Attendance.RegularizationMonthlyQuota < 0 {
		return fmt.Errorf("REGULARIZATION_MONTHLY_QUOTA must be non-negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
