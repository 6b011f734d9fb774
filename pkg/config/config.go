package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	JWT         JWTConfig
	CORS        CORSConfig
	Log         LogConfig
	Login       LoginConfig
	Messaging   MessagingConfig
	Permissions PermissionsConfig
	Exports     ExportsConfig
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// LoginConfig tunes the simulated sign-in latency. The portal performs no
// credential verification; login resolves a seeded user and routes by role.
type LoginConfig struct {
	SimulatedDelay time.Duration
}

// MessagingConfig governs the delayed sent->delivered transition.
type MessagingConfig struct {
	DeliveryDelay time.Duration
}

// PermissionsConfig holds the auto-grant payment ratio threshold.
type PermissionsConfig struct {
	AutoGrantThreshold float64
}

// ExportsConfig gates the finance ledger statement endpoints.
type ExportsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Login = LoginConfig{
		SimulatedDelay: parseDuration(v.GetString("LOGIN_SIMULATED_DELAY"), 1500*time.Millisecond),
	}

	cfg.Messaging = MessagingConfig{
		DeliveryDelay: parseDuration(v.GetString("MESSAGE_DELIVERY_DELAY"), 2*time.Second),
	}

	threshold := v.GetFloat64("AUTO_GRANT_THRESHOLD")
	if threshold <= 0 || threshold > 1 {
		threshold = 0.5
	}
	cfg.Permissions = PermissionsConfig{AutoGrantThreshold: threshold}

	cfg.Exports = ExportsConfig{Enabled: v.GetBool("ENABLE_EXPORTS")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "his-portal-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("LOGIN_SIMULATED_DELAY", "1500ms")
	v.SetDefault("MESSAGE_DELIVERY_DELAY", "2s")
	v.SetDefault("AUTO_GRANT_THRESHOLD", 0.5)
	v.SetDefault("ENABLE_EXPORTS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
