package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	Debug   bool
	DB      DBConfig
	CORS    CORSConfig
	Admin   AdminConfig
	Storage StorageConfig
	Sweeper SweeperConfig
	Client  ClientConfig
}

type DBConfig struct {
	URL          string
	MaxOpenConns int
	AutoMigrate  bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

// AdminConfig guards the admin endpoints. PasswordHash is a bcrypt hash.
type AdminConfig struct {
	User         string
	PasswordHash string
}

type StorageConfig struct {
	URL    string
	Key    string
	Bucket string
}

// SweeperConfig controls the orphaned image cleanup. A zero Interval
// disables it.
type SweeperConfig struct {
	Interval time.Duration
	Grace    time.Duration
}

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	maxOpen, err := getInt("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return nil, err
	}
	interval, err := getDuration("SWEEP_INTERVAL", 0)
	if err != nil {
		return nil, err
	}
	grace, err := getDuration("SWEEP_GRACE", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	timeout, err := getDuration("API_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:  getEnv("PORT", "3003"),
		Debug: getBool("DEBUG"),
		DB: DBConfig{
			URL:          getEnv("DATABASE_URL", ""),
			MaxOpenConns: maxOpen,
			AutoMigrate:  getBool("AUTO_MIGRATE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		},
		Admin: AdminConfig{
			User:         getEnv("ADMIN_USER", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Storage: StorageConfig{
			URL:    strings.TrimRight(getEnv("STORAGE_URL", ""), "/"),
			Key:    getEnv("STORAGE_KEY", ""),
			Bucket: getEnv("STORAGE_BUCKET", "menu-images"),
		},
		Sweeper: SweeperConfig{
			Interval: interval,
			Grace:    grace,
		},
		Client: ClientConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:3003/api"),
			Timeout: timeout,
		},
	}, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if c.Admin.PasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH environment variable not set")
	}
	return nil
}

// StorageEnabled reports whether object storage credentials are configured.
func (c *Config) StorageEnabled() bool {
	return c.Storage.URL != "" && c.Storage.Key != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	return v == "1" || strings.EqualFold(v, "true")
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
