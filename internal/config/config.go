package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LogAdapterConfig configures one logging output.
type LogAdapterConfig struct {
	Name    string                 `yaml:"name"`
	Type    string                 `yaml:"type"`
	Enabled bool                   `yaml:"enabled"`
	Options map[string]interface{} `yaml:"options"`
}

// Config represents the application configuration
type Config struct {
	Server struct {
		Port           int           `yaml:"port" default:"3001"`
		Host           string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout    time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout   time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout    time.Duration `yaml:"idle_timeout" default:"60s"`
		RequestTimeout time.Duration `yaml:"request_timeout" default:"30s"`
		BodyLimit      string        `yaml:"body_limit" default:"12M"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
	} `yaml:"server"`

	Auth struct {
		JWTSecret  string        `yaml:"jwt_secret"`
		TokenTTL   time.Duration `yaml:"token_ttl" default:"168h"`
		BcryptCost int           `yaml:"bcrypt_cost" default:"10"`
	} `yaml:"auth"`

	RateLimit struct {
		Enabled           bool          `yaml:"enabled" default:"true"`
		RequestsPerMinute int           `yaml:"requests_per_minute" default:"20"`
		Burst             int           `yaml:"burst" default:"5"`
		IdleTTL           time.Duration `yaml:"idle_ttl" default:"10m"`
	} `yaml:"rate_limit"`

	Logging struct {
		Level    string             `yaml:"level" default:"info"`
		Format   string             `yaml:"format" default:"json"`
		Adapters []LogAdapterConfig `yaml:"adapters"`
	} `yaml:"logging"`

	Storage struct {
		Backend  string `yaml:"backend" default:"local"` // local or spaces
		LocalDir string `yaml:"local_dir" default:"uploads"`
		MaxSize  int64  `yaml:"max_size" default:"10485760"`
		Spaces   struct {
			Endpoint        string `yaml:"endpoint"`
			Region          string `yaml:"region" default:"blr1"`
			BucketName      string `yaml:"bucket_name"`
			AccessKeyID     string `yaml:"access_key_id"`
			AccessKeySecret string `yaml:"access_key_secret"`
			Prefix          string `yaml:"prefix" default:"documents"`
		} `yaml:"spaces"`
	} `yaml:"storage"`

	Redis struct {
		Enabled  bool          `yaml:"enabled"`
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"redis"`

	Workers struct {
		PoolSize  int           `yaml:"pool_size" default:"4"`
		QueueSize int           `yaml:"queue_size" default:"64"`
		Timeout   time.Duration `yaml:"timeout" default:"60s"`
	} `yaml:"workers"`

	Scheduler struct {
		Enabled          bool   `yaml:"enabled" default:"true"`
		RevocationPurge  string `yaml:"revocation_purge" default:"@every 10m"`
		DashboardRefresh string `yaml:"dashboard_refresh" default:"@every 1m"`
	} `yaml:"scheduler"`

	Seed struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path"` // empty means the embedded demo data
	} `yaml:"seed"`
}

// Address returns host:port for the HTTP listener.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	bareEnvVar   = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands ${VAR} and $VAR references; unknown variables are left as written.
func expandEnvVars(s string) string {
	lookup := func(name, original string) string {
		if val, ok := os.LookupEnv(name); ok && val != "" {
			return val
		}
		return original
	}

	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return lookup(match[2:len(match)-1], match)
	})
	return bareEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return lookup(match[1:], match)
	})
}

// Default returns the configuration used when no file or environment overrides exist.
func Default() *Config {
	config := &Config{}

	config.Server.Port = 3001
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second
	config.Server.RequestTimeout = 30 * time.Second
	config.Server.BodyLimit = "12M"
	config.Server.AllowedOrigins = []string{"*"}

	config.Auth.JWTSecret = "your-secret-key-change-in-production"
	config.Auth.TokenTTL = 7 * 24 * time.Hour
	config.Auth.BcryptCost = 10

	config.RateLimit.Enabled = true
	config.RateLimit.RequestsPerMinute = 20
	config.RateLimit.Burst = 5
	config.RateLimit.IdleTTL = 10 * time.Minute

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Storage.Backend = "local"
	config.Storage.LocalDir = "uploads"
	config.Storage.MaxSize = 10 * 1024 * 1024
	config.Storage.Spaces.Region = "blr1"
	config.Storage.Spaces.Prefix = "documents"

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.Timeout = 5 * time.Second

	config.Workers.PoolSize = 4
	config.Workers.QueueSize = 64
	config.Workers.Timeout = 60 * time.Second

	config.Scheduler.Enabled = true
	config.Scheduler.RevocationPurge = "@every 10m"
	config.Scheduler.DashboardRefresh = "@every 1m"

	config.Seed.Enabled = true

	return config
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	config := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), config); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
		}
	}

	config.loadFromEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret must not be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}
	switch c.Storage.Backend {
	case "local":
		if c.Storage.LocalDir == "" {
			return fmt.Errorf("storage.local_dir is required for the local backend")
		}
	case "spaces":
		if c.Storage.Spaces.BucketName == "" {
			return fmt.Errorf("storage.spaces.bucket_name is required for the spaces backend")
		}
	default:
		return fmt.Errorf("unsupported storage backend %q", c.Storage.Backend)
	}
	return nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = splitList(origins)
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.Auth.JWTSecret = secret
	}

	if ttl := os.Getenv("JWT_EXPIRY"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Auth.TokenTTL = d
		}
	}

	if enabled := os.Getenv("RATE_LIMIT_ENABLED"); enabled != "" {
		c.RateLimit.Enabled = parseBool(enabled)
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if backend := os.Getenv("STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}

	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		c.Storage.LocalDir = dir
	}

	if endpoint := os.Getenv("BUCKET_ENDPOINT"); endpoint != "" {
		c.Storage.Spaces.Endpoint = endpoint
	}

	if region := os.Getenv("BUCKET_REGION"); region != "" {
		c.Storage.Spaces.Region = region
	}

	if bucketName := os.Getenv("BUCKET_NAME"); bucketName != "" {
		c.Storage.Spaces.BucketName = bucketName
	}

	if accessKeyID := os.Getenv("BUCKET_ACCESS_KEY_ID"); accessKeyID != "" {
		c.Storage.Spaces.AccessKeyID = accessKeyID
	}

	if accessKeySecret := os.Getenv("BUCKET_ACCESS_KEY_SECRET"); accessKeySecret != "" {
		c.Storage.Spaces.AccessKeySecret = accessKeySecret
	}

	if enabled := os.Getenv("REDIS_ENABLED"); enabled != "" {
		c.Redis.Enabled = parseBool(enabled)
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if poolSize := os.Getenv("WORKER_POOL_SIZE"); poolSize != "" {
		if n, err := strconv.Atoi(poolSize); err == nil {
			c.Workers.PoolSize = n
		}
	}

	if enabled := os.Getenv("SEED_ENABLED"); enabled != "" {
		c.Seed.Enabled = parseBool(enabled)
	}

	if path := os.Getenv("SEED_PATH"); path != "" {
		c.Seed.Path = path
	}
}

func parseBool(s string) bool {
	return s == "true" || s == "1"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
