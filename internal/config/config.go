package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"shipvoid-backend/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultConfigFile is read when present; every key has a default
const DefaultConfigFile = "configs/config.yaml"

type Config struct {
	Server struct {
		Host               string   `mapstructure:"host"`
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Sources SourcesConfig `mapstructure:"sources"`

	DCs map[string]DCConfig `mapstructure:"dcs"`

	Database struct {
		Enabled  bool   `mapstructure:"enabled"`
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	Redis RedisConfig `mapstructure:"redis"`

	Remote RemoteConfig `mapstructure:"remote"`

	Auth struct {
		JWTSecret         string `mapstructure:"jwt_secret"`
		ExpirationHours   int    `mapstructure:"expiration_hours"`
		Issuer            string `mapstructure:"issuer"`
		AdminPasswordHash string `mapstructure:"admin_password_hash"`
	} `mapstructure:"auth"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
}

// SourcesConfig locates the two extracts
type SourcesConfig struct {
	DC                       string   `mapstructure:"dc"`
	ShipvoidPath             string   `mapstructure:"shipvoid_path"`
	LegacyPath               string   `mapstructure:"legacy_path"`
	ShipvoidPattern          string   `mapstructure:"shipvoid_pattern"`
	ShipvoidFallbackPatterns []string `mapstructure:"shipvoid_fallback_patterns"`
	LegacyPattern            string   `mapstructure:"legacy_pattern"`
	DownloadDir              string   `mapstructure:"download_dir"`
}

// ShipvoidPatterns returns the primary pattern followed by the fallbacks
func (s SourcesConfig) ShipvoidPatterns() []string {
	return append([]string{s.ShipvoidPattern}, s.ShipvoidFallbackPatterns...)
}

type RedisConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Addr      string        `mapstructure:"addr"`
	Password  string        `mapstructure:"password"`
	ResultTTL time.Duration `mapstructure:"result_ttl"`
}

// RemoteConfig points at an S3 compatible bucket (Cloudflare R2 in
// production) that receives copies of the extracts.
type RemoteConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Load reads the optional config file at path (DefaultConfigFile when
// empty), applies defaults and environment overrides, and validates.
func Load(path string) (*Config, error) {
	log := logging.Component("Config")

	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	if path == "" {
		path = DefaultConfigFile
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	// Auto bind environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Infof("No config file at %s, using defaults", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}
	if len(cfg.DCs) == 0 {
		cfg.DCs = DefaultDCs()
	}

	applyEnvOverrides(&cfg)

	if cfg.Sources.ShipvoidPath == "" {
		p, err := cfg.DCPath(cfg.Sources.DC, time.Now())
		if err != nil {
			return nil, err
		}
		cfg.Sources.ShipvoidPath = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8050)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Authorization", "Content-Type"})

	v.SetDefault("sources.dc", DefaultDC)
	v.SetDefault("sources.shipvoid_path", "")
	v.SetDefault("sources.legacy_path", "")
	v.SetDefault("sources.shipvoid_pattern", "Shipvoid*.xlsm")
	v.SetDefault("sources.shipvoid_fallback_patterns", []string{"Shipvoid*.xlsx", "Shipvoid*.xls"})
	v.SetDefault("sources.legacy_pattern", "Legacy*.csv")
	v.SetDefault("sources.download_dir", "downloads")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "shipvoid")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.result_ttl", "12h")

	v.SetDefault("remote.enabled", false)
	v.SetDefault("remote.region", "auto")
	v.SetDefault("remote.prefix", "extracts/")

	v.SetDefault("auth.expiration_hours", 12)
	v.SetDefault("auth.issuer", "shipvoid-backend")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func applyEnvOverrides(cfg *Config) {
	if dc := os.Getenv("SHIPVOID_DC"); dc != "" {
		cfg.Sources.DC = dc
	}
	if p := os.Getenv("SHIPVOID_SOURCE_PATH"); p != "" {
		cfg.Sources.ShipvoidPath = p
	}
	if p := os.Getenv("LEGACY_SOURCE_PATH"); p != "" {
		cfg.Sources.LegacyPath = p
	}
	if host := os.Getenv("SHIPVOID_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("SHIPVOID_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Server.Port = n
		}
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
		cfg.Database.Enabled = true
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
		cfg.Redis.Enabled = true
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		cfg.Redis.Password = pass
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		cfg.Auth.AdminPasswordHash = hash
	}

	if endpoint := os.Getenv("R2_ENDPOINT"); endpoint != "" {
		cfg.Remote.Endpoint = endpoint
		cfg.Remote.Enabled = true
	}
	if bucket := os.Getenv("R2_BUCKET"); bucket != "" {
		cfg.Remote.Bucket = bucket
	}
	if key := os.Getenv("R2_ACCESS_KEY"); key != "" {
		cfg.Remote.AccessKey = key
	}
	if secret := os.Getenv("R2_SECRET_KEY"); secret != "" {
		cfg.Remote.SecretKey = secret
	}
}

// Validate checks the values the server cannot start without
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if _, ok := c.DCs[c.Sources.DC]; !ok {
		return c.unknownDC(c.Sources.DC)
	}
	if c.Sources.ShipvoidPattern == "" {
		return fmt.Errorf("sources.shipvoid_pattern must not be empty")
	}
	if c.Sources.LegacyPattern == "" {
		return fmt.Errorf("sources.legacy_pattern must not be empty")
	}
	if c.Remote.Enabled && c.Remote.Bucket == "" {
		return fmt.Errorf("remote.bucket is required when remote sync is enabled")
	}
	return nil
}

// Addr is the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DatabaseURL builds the pgx connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}
