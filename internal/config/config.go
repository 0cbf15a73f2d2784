package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode   string
	Port      string
	Database  DatabaseConfig
	JWT       JWTConfig
	SMTP      SMTPConfig
	AdminSeed AdminSeedConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret        string
	Issuer        string
	Audience      string
	ExpiryMinutes int
}

// SMTPConfig holds mail delivery configuration
type SMTPConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	FromName  string
	FromEmail string
}

// AdminSeedConfig holds the boot-time admin account seed
type AdminSeedConfig struct {
	Enabled  bool
	FullName string
	Email    string
	Password string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:   appMode,
		Port:      getEnv("PORT", "3000"),
		Database:  loadDatabaseConfig(),
		JWT:       loadJWTConfig(),
		SMTP:      loadSMTPConfig(),
		AdminSeed: loadAdminSeedConfig(),
	}

	if config.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config
func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASS", ""),
		DBName:   getEnv("DB_NAME", "lms"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

// loadJWTConfig loads session token config
func loadJWTConfig() JWTConfig {
	expiryMinutes, _ := strconv.Atoi(getEnv("JWT_EXPIRY_MINUTES", "60"))

	return JWTConfig{
		Secret:        getEnv("JWT_SECRET", ""),
		Issuer:        getEnv("JWT_ISSUER", "lms-backend"),
		Audience:      getEnv("JWT_AUDIENCE", "lms-clients"),
		ExpiryMinutes: expiryMinutes,
	}
}

// loadSMTPConfig loads mail delivery config
func loadSMTPConfig() SMTPConfig {
	port, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))

	return SMTPConfig{
		Host:      getEnv("SMTP_HOST", "localhost"),
		Port:      port,
		User:      getEnv("SMTP_USER", ""),
		Password:  getEnv("SMTP_PASS", ""),
		FromName:  getEnv("SMTP_FROM_NAME", "Library"),
		FromEmail: getEnv("SMTP_FROM_EMAIL", "no-reply@localhost"),
	}
}

// loadAdminSeedConfig loads the admin seed config
func loadAdminSeedConfig() AdminSeedConfig {
	enabled, _ := strconv.ParseBool(getEnv("ADMIN_SEED_ENABLED", "false"))

	return AdminSeedConfig{
		Enabled:  enabled,
		FullName: getEnv("ADMIN_SEED_FULL_NAME", "Admin"),
		Email:    getEnv("ADMIN_SEED_EMAIL", ""),
		Password: getEnv("ADMIN_SEED_PASSWORD", ""),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" && c.IsDev() {
		return "*"
	}
	return origins
}
