package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // embedded zone database for minimal containers

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Cache       CacheConfig
	RateLimit   RateLimitConfig
	Recognition RecognitionConfig
	Providers   ProvidersConfig
	AI          AIConfig
	Logging     LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxBodyBytes   int64    `mapstructure:"max_body_bytes"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // "memory" or "none"
	TTL  time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration, in requests per minute
type RateLimitConfig struct {
	PerIP    int `mapstructure:"per_ip"`
	Provider int `mapstructure:"provider"`
}

// RecognitionConfig controls the provider cascade
type RecognitionConfig struct {
	ProviderOrder   []string      `mapstructure:"provider_order"`
	ProviderTimeout time.Duration `mapstructure:"provider_timeout"`
	Timezone        string        `mapstructure:"timezone"`
	Debug           bool          `mapstructure:"debug"`
}

// ProviderConfig holds credentials for one vision provider
type ProviderConfig struct {
	Enabled       bool    `mapstructure:"enabled"`
	APIKey        string  `mapstructure:"api_key"`
	Endpoint      string  `mapstructure:"endpoint"`
	Region        string  `mapstructure:"region"`
	MinConfidence float64 `mapstructure:"min_confidence"`
}

// ProvidersConfig holds per-provider configuration
type ProvidersConfig struct {
	LogMeal      ProviderConfig `mapstructure:"logmeal"`
	Clarifai     ProviderConfig `mapstructure:"clarifai"`
	GoogleVision ProviderConfig `mapstructure:"google_vision"`
	Spoonacular  ProviderConfig `mapstructure:"spoonacular"`
	Roboflow     ProviderConfig `mapstructure:"roboflow"`
	Rekognition  ProviderConfig `mapstructure:"rekognition"`
}

// ByName returns the provider configurations keyed by provider name
func (p ProvidersConfig) ByName() map[string]ProviderConfig {
	return map[string]ProviderConfig{
		"logmeal":       p.LogMeal,
		"clarifai":      p.Clarifai,
		"google_vision": p.GoogleVision,
		"spoonacular":   p.Spoonacular,
		"roboflow":      p.Roboflow,
		"rekognition":   p.Rekognition,
	}
}

// AIConfig holds the generative AI endpoint configuration
type AIConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// providerNames lists every name accepted in recognition.provider_order.
// "ai" marks the generative fallback and is accepted but never called as a provider.
var providerNames = []string{"logmeal", "clarifai", "google_vision", "spoonacular", "roboflow", "rekognition"}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/healthsnap/")

	// HEALTHSNAP_PROVIDERS_LOGMEAL_API_KEY -> providers.logmeal.api_key
	v.SetEnvPrefix("HEALTHSNAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values. Every key needs a default
// so AutomaticEnv can find its environment variable during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*", "exp://*"})
	v.SetDefault("server.max_body_bytes", 10<<20)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 30)
	v.SetDefault("ratelimit.provider", 60)

	// Recognition defaults
	v.SetDefault("recognition.provider_order", append(append([]string{}, providerNames...), "ai"))
	v.SetDefault("recognition.provider_timeout", "15s")
	v.SetDefault("recognition.timezone", "America/Sao_Paulo")
	v.SetDefault("recognition.debug", false)

	// Provider defaults: enabled but unconfigured until a key is supplied
	for _, name := range providerNames {
		v.SetDefault("providers."+name+".enabled", true)
		v.SetDefault("providers."+name+".api_key", "")
		v.SetDefault("providers."+name+".endpoint", "")
		v.SetDefault("providers."+name+".region", "")
		v.SetDefault("providers."+name+".min_confidence", 0)
	}

	// AI defaults
	v.SetDefault("ai.endpoint", "")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.timeout", "30s")

	v.SetDefault("logging.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Cache.Type != "memory" && config.Cache.Type != "none" {
		return fmt.Errorf("cache type must be 'memory' or 'none', got: %s", config.Cache.Type)
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got: %s", config.Cache.TTL)
	}

	if config.Recognition.ProviderTimeout <= 0 {
		return fmt.Errorf("provider timeout must be positive, got: %s", config.Recognition.ProviderTimeout)
	}

	if config.AI.Timeout <= 0 {
		return fmt.Errorf("ai timeout must be positive, got: %s", config.AI.Timeout)
	}

	if config.RateLimit.PerIP <= 0 || config.RateLimit.Provider <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}

	for _, name := range config.Recognition.ProviderOrder {
		if !validProviderName(strings.ToLower(strings.TrimSpace(name))) {
			return fmt.Errorf("unknown provider in recognition.provider_order: %q", name)
		}
	}

	for name, p := range config.Providers.ByName() {
		if p.MinConfidence < 0 || p.MinConfidence >= 1 {
			return fmt.Errorf("providers.%s.min_confidence must be in [0, 1), got: %v", name, p.MinConfidence)
		}
	}

	if _, err := time.LoadLocation(config.Recognition.Timezone); err != nil {
		return fmt.Errorf("invalid recognition timezone %q: %w", config.Recognition.Timezone, err)
	}

	return nil
}

func validProviderName(name string) bool {
	if name == "ai" {
		return true
	}
	for _, p := range providerNames {
		if p == name {
			return true
		}
	}
	return false
}

// Location returns the time zone used for the meal-type heuristic
func (c RecognitionConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
