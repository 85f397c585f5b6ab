package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Company  CompanyConfig
	Face     FaceConfig
	Storage  StorageConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds token verification configuration. Tokens are minted by the
// identity service; this backend only verifies them.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// CompanyConfig holds company-wide defaults used until an admin saves
// settings. Timezone fixes the calendar-day policy for attendance dedup and
// payroll bucketing; host-local time is never used.
type CompanyConfig struct {
	Timezone            string
	DefaultLatitude     float64
	DefaultLongitude    float64
	DefaultRadiusMeters int
}

// FaceConfig holds the face verification pipeline tuning knobs.
type FaceConfig struct {
	CascadePath    string
	MatchThreshold float64
	BlurThreshold  float64
}

type StorageConfig struct {
	BasePath string
	BaseURL  string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
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
		Name:     getEnv("DB_NAME", "goodzwork"),
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

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Company defaults (geofence center + timezone policy)
	lat, err := strconv.ParseFloat(getEnv("COMPANY_LATITUDE", "10.7769"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid COMPANY_LATITUDE: %w", err)
	}
	lon, err := strconv.ParseFloat(getEnv("COMPANY_LONGITUDE", "106.7009"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid COMPANY_LONGITUDE: %w", err)
	}
	radius, err := strconv.Atoi(getEnv("GEOFENCE_RADIUS_METERS", "50"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_RADIUS_METERS: %w", err)
	}

	config.Company = CompanyConfig{
		Timezone:            getEnv("COMPANY_TIMEZONE", "Asia/Ho_Chi_Minh"),
		DefaultLatitude:     lat,
		DefaultLongitude:    lon,
		DefaultRadiusMeters: radius,
	}

	matchThreshold, err := strconv.ParseFloat(getEnv("FACE_MATCH_THRESHOLD", "0.5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_MATCH_THRESHOLD: %w", err)
	}
	blurThreshold, err := strconv.ParseFloat(getEnv("FACE_BLUR_THRESHOLD", "50.0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_BLUR_THRESHOLD: %w", err)
	}

	config.Face = FaceConfig{
		CascadePath:    getEnv("FACE_CASCADE_PATH", "cascade/facefinder"),
		MatchThreshold: matchThreshold,
		BlurThreshold:  blurThreshold,
	}

	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_BASE_PATH", "uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
	}

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
	if c.Face.MatchThreshold < -1 || c.Face.MatchThreshold > 1 {
		return fmt.Errorf("FACE_MATCH_THRESHOLD must be within [-1, 1]")
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
