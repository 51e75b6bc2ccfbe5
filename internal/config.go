package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/dhindle/commerce-cif-commercetools/internal/ccif"
)

type Config struct {
	Env      string
	LogLevel string
	Port     uint16

	CommerceTools CommerceToolsConfig
	Payment       PaymentConfig
}

// CommerceToolsConfig holds the project credentials for the CommerceTools
// HTTP API and its OAuth token endpoint.
type CommerceToolsConfig struct {
	APIHost      string
	AuthHost     string
	ProjectKey   string
	ClientID     string
	ClientSecret string
}

// PaymentConfig drives the cart payment policy.
type PaymentConfig struct {
	// SinglePayment rejects attaching a payment to a cart that already
	// carries one.
	SinglePayment bool

	// Methods is the payment method catalog offered to carts, declared as
	// "id:display name" pairs.
	Methods []ccif.PaymentMethod
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnvInt("PORT", 3000),
		CommerceTools: CommerceToolsConfig{
			APIHost:      getEnv("CT_API_HOST", "https://api.commercetools.co"),
			AuthHost:     getEnv("CT_AUTH_HOST", "https://auth.commercetools.co"),
			ProjectKey:   getEnv("CT_PROJECT_KEY", ""),
			ClientID:     getEnv("CT_CLIENT_ID", ""),
			ClientSecret: getEnv("CT_CLIENT_SECRET", ""),
		},
		Payment: PaymentConfig{
			SinglePayment: getEnvBool("SINGLE_PAYMENT", true),
			Methods:       parsePaymentMethods(getEnv("PAYMENT_METHODS", "credit-card:Credit Card")),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.CommerceTools.ProjectKey == "" {
		return nil, fmt.Errorf("CT_PROJECT_KEY must be set")
	}
	if cfg.CommerceTools.ClientID == "" || cfg.CommerceTools.ClientSecret == "" {
		return nil, fmt.Errorf("CT_CLIENT_ID and CT_CLIENT_SECRET must be set")
	}

	return cfg, nil
}

// parsePaymentMethods reads a comma-separated list of "id:display name"
// pairs. A pair without a display name reuses the id.
func parsePaymentMethods(raw string) []ccif.PaymentMethod {
	var methods []ccif.PaymentMethod
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, name, ok := strings.Cut(pair, ":")
		id = strings.TrimSpace(id)
		if !ok || strings.TrimSpace(name) == "" {
			name = id
		}
		methods = append(methods, ccif.PaymentMethod{
			ID:   id,
			Name: strings.TrimSpace(name),
		})
	}
	return methods
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
