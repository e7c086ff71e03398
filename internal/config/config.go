package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileEnv names the environment variable holding an optional TOML config file
const FileEnv = "RETIREPLAN_CONFIG"

// Store drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP     HTTPConfig     `toml:"http"`
	GRPC     GRPCConfig     `toml:"grpc"`
	Store    StoreConfig    `toml:"store"`
	Logging  LoggingConfig  `toml:"logging"`
	Autosave AutosaveConfig `toml:"autosave"`
	APIToken string         `toml:"api_token"`
}

// HTTPConfig governs the JSON API server.
type HTTPConfig struct {
	Addr            string        `toml:"addr"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	RequestTimeout  time.Duration `toml:"request_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
	AllowedOrigins  []string      `toml:"allowed_origins"`
}

// GRPCConfig governs the gRPC server. An empty Addr disables it.
type GRPCConfig struct {
	Addr       string `toml:"addr"`
	Reflection bool   `toml:"reflection"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	Driver     string `toml:"driver"` // postgres|sqlite|redis|memory
	DBConnStr  string `toml:"db_conn_str"`
	DBHost     string `toml:"db_host"`
	DBPort     int    `toml:"db_port"`
	DBUser     string `toml:"db_user"`
	DBPassword string `toml:"db_password"`
	DBName     string `toml:"db_name"`
	SQLitePath string `toml:"sqlite_path"`
	RedisURL   string `toml:"redis_url"`
	Migrate    bool   `toml:"migrate"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `toml:"level"`
	Format        string `toml:"format"` // text|json
	IncludeCaller bool   `toml:"include_caller"`
}

// AutosaveConfig controls the debounced save of client sessions.
type AutosaveConfig struct {
	Delay time.Duration `toml:"delay"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":8081",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		GRPC: GRPCConfig{
			Addr:       ":8080",
			Reflection: true,
		},
		Store: StoreConfig{
			Driver:     DriverPostgres,
			DBHost:     "localhost",
			DBPort:     5432,
			DBUser:     "postgres",
			DBPassword: "postgres",
			DBName:     "retireplan",
			SQLitePath: "retireplan.db",
			RedisURL:   "redis://localhost:6379/0",
			Migrate:    true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Autosave: AutosaveConfig{
			Delay: time.Second,
		},
		APIToken: "dev-token",
	}
}

// Load applies defaults, then the TOML file named by RETIREPLAN_CONFIG (if set),
// then environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(FileEnv); path != "" {
		if err := cfg.ReadFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReadFile overlays the values present in a TOML file.
// A missing file is not an error.
func (c *Config) ReadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.HTTP.Addr = valueOrDefault("HTTP_ADDR", c.HTTP.Addr)
	c.GRPC.Addr = valueOrDefault("GRPC_ADDR", c.GRPC.Addr)
	c.APIToken = valueOrDefault("API_TOKEN", c.APIToken)
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.HTTP.AllowedOrigins = splitCSV(v)
	}

	c.Store.Driver = valueOrDefault("STORE_DRIVER", c.Store.Driver)
	c.Store.DBConnStr = valueOrDefault("DB_CONN_STR", c.Store.DBConnStr)
	c.Store.DBHost = valueOrDefault("DB_HOST", c.Store.DBHost)
	c.Store.DBUser = valueOrDefault("DB_USER", c.Store.DBUser)
	c.Store.DBPassword = valueOrDefault("DB_PASSWORD", c.Store.DBPassword)
	c.Store.DBName = valueOrDefault("DB_NAME", c.Store.DBName)
	c.Store.SQLitePath = valueOrDefault("SQLITE_PATH", c.Store.SQLitePath)
	c.Store.RedisURL = valueOrDefault("REDIS_URL", c.Store.RedisURL)
	c.Store.Migrate = parseBoolWithDefault("DB_MIGRATE", c.Store.Migrate)

	port, err := parsePort("DB_PORT", c.Store.DBPort)
	if err != nil {
		return err
	}
	c.Store.DBPort = port

	c.Logging.Level = valueOrDefault("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = valueOrDefault("LOG_FORMAT", c.Logging.Format)
	c.Logging.IncludeCaller = parseBoolWithDefault("LOG_INCLUDE_CALLER", c.Logging.IncludeCaller)

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"HTTP_READ_TIMEOUT", &c.HTTP.ReadTimeout},
		{"HTTP_WRITE_TIMEOUT", &c.HTTP.WriteTimeout},
		{"HTTP_REQUEST_TIMEOUT", &c.HTTP.RequestTimeout},
		{"SHUTDOWN_TIMEOUT", &c.HTTP.ShutdownTimeout},
		{"AUTOSAVE_DELAY", &c.Autosave.Delay},
	}
	for _, d := range durations {
		if v := os.Getenv(d.key); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", d.key, err)
			}
			*d.dst = parsed
		}
	}

	return nil
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverPostgres, DriverSQLite, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Autosave.Delay < 0 {
		return fmt.Errorf("autosave delay must not be negative")
	}
	if c.HTTP.Addr == "" && c.GRPC.Addr == "" {
		return fmt.Errorf("at least one of HTTP_ADDR or GRPC_ADDR must be set")
	}
	return nil
}

// PostgresDSN returns DBConnStr, or builds one from the individual DB_* settings.
func (s StoreConfig) PostgresDSN() string {
	if s.DBConnStr != "" {
		return s.DBConnStr
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		s.DBHost, s.DBPort, s.DBUser, s.DBPassword, s.DBName)
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}

func splitCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
