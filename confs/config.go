package confs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultInferenceURL is the Lyzr agent chat endpoint.
const DefaultInferenceURL = "https://agent-prod.studio.lyzr.ai/v3/inference/chat/"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds every setting the server reads from the environment.
// It is loaded once at startup and not mutated afterwards.
type Config struct {
	Port               string
	LogLevel           string
	CORSAllowedOrigins []string

	Database  DatabaseConfig
	Inference InferenceConfig
}

// DatabaseConfig selects the gorm dialect and its connection settings.
type DatabaseConfig struct {
	Driver string

	// postgres
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string

	// sqlite
	Path string

	MaxOpenConns int
	MaxIdleConns int
}

// InferenceConfig carries the credentials of the external inference API.
type InferenceConfig struct {
	URL       string
	APIKey    string
	UserID    string
	AgentID   string
	SessionID string
	Timeout   time.Duration
}

// Missing returns the names of the required inference variables that are unset.
func (c InferenceConfig) Missing() []string {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "LYZR_API_KEY")
	}
	if c.UserID == "" {
		missing = append(missing, "LYZR_USER_ID")
	}
	if c.AgentID == "" {
		missing = append(missing, "LYZR_AGENT_ID")
	}
	if c.SessionID == "" {
		missing = append(missing, "LYZR_SESSION_ID")
	}
	return missing
}

// LoadEnvFile loads environment variables from a .env file if present.
// An explicitly named file that cannot be read is an error; a missing
// default .env is not.
func LoadEnvFile(path string) error {
	if path == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("could not load .env", slog.String("error", err.Error()))
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// LoadConfig reads the configuration from the environment without
// validating the inference credentials. Use Validate before serving.
func LoadConfig() *Config {
	return &Config{
		Port:               getEnv("PORT", "5000"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			URL:      os.Getenv("DB_URL"),
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Path:     getEnv("DB_PATH", "tweets.db"),

			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 100),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 10),
		},
		Inference: InferenceConfig{
			URL:       getEnv("LYZR_API_URL", DefaultInferenceURL),
			APIKey:    os.Getenv("LYZR_API_KEY"),
			UserID:    os.Getenv("LYZR_USER_ID"),
			AgentID:   os.Getenv("LYZR_AGENT_ID"),
			SessionID: os.Getenv("LYZR_SESSION_ID"),
			Timeout:   getEnvDuration("INFERENCE_TIMEOUT", 60*time.Second),
		},
	}
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	missing := c.Inference.Missing()

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" && (c.Database.Host == "" || c.Database.Port == "" ||
			c.Database.User == "" || c.Database.Password == "" || c.Database.Name == "") {
			missing = append(missing, "DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			missing = append(missing, "DB_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if len(missing) > 0 {
		return fmt.Errorf("required environment variables are not set: %v", missing)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return i
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultValue
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
