package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config contiene la configuración del servicio de cumplimiento, cargada
// desde variables de entorno al arranque.
type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Identidad del establecimiento ante SIRE. Estos dos campos prellenan
	// el registro de 13 campos y nunca se preguntan al huésped.
	TenantID      string
	HotelSireCode string
	HotelCityCode string

	// Runner de automatización que ejecuta el envío real en los portales
	PortalRunnerURL   string
	PortalRunnerToken string
	PortalTimeout     time.Duration
	TraEnabled        bool

	// Notificaciones de fallo de envío
	ComplianceNotifyEmail string
	SMTPHost              string
	SMTPPort              string
	SMTPUser              string
	SMTPPassword          string
	SMTPFromName          string
	SMTPFromEmail         string
}

// LoadConfig carga la configuración desde el entorno
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "compliance"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		TenantID:      os.Getenv("TENANT_ID"),
		HotelSireCode: os.Getenv("HOTEL_SIRE_CODE"),
		HotelCityCode: os.Getenv("HOTEL_CITY_CODE"),

		PortalRunnerURL:   os.Getenv("PORTAL_RUNNER_URL"),
		PortalRunnerToken: os.Getenv("PORTAL_RUNNER_TOKEN"),
		TraEnabled:        getEnv("TRA_ENABLED", "false") == "true",

		ComplianceNotifyEmail: os.Getenv("COMPLIANCE_NOTIFY_EMAIL"),
		SMTPHost:              os.Getenv("SMTP_HOST"),
		SMTPPort:              getEnv("SMTP_PORT", "587"),
		SMTPUser:              os.Getenv("SMTP_USER"),
		SMTPPassword:          os.Getenv("SMTP_PASSWORD"),
		SMTPFromName:          getEnv("SMTP_FROM_NAME", "Cumplimiento SIRE"),
		SMTPFromEmail:         os.Getenv("SMTP_FROM_EMAIL"),
	}

	timeoutSeconds, err := strconv.Atoi(getEnv("PORTAL_TIMEOUT_SECONDS", "120"))
	if err != nil {
		return nil, fmt.Errorf("PORTAL_TIMEOUT_SECONDS inválido: %w", err)
	}
	cfg.PortalTimeout = time.Duration(timeoutSeconds) * time.Second

	if cfg.HotelSireCode == "" || cfg.HotelCityCode == "" {
		return nil, fmt.Errorf("HOTEL_SIRE_CODE y HOTEL_CITY_CODE son requeridos")
	}

	if cfg.PortalRunnerURL == "" {
		return nil, fmt.Errorf("PORTAL_RUNNER_URL es requerido")
	}

	return cfg, nil
}

// GetDBConnString construye el connection string de Postgres
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
