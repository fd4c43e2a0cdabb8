package confs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnv = []string{
	"PORT", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS",
	"DB_DRIVER", "DB_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_PATH",
	"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
	"LYZR_API_URL", "LYZR_API_KEY", "LYZR_USER_ID", "LYZR_AGENT_ID", "LYZR_SESSION_ID",
	"INFERENCE_TIMEOUT",
}

// clearEnv blanks every variable LoadConfig reads; t.Setenv restores them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func setInferenceEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LYZR_API_KEY", "key")
	t.Setenv("LYZR_USER_ID", "user")
	t.Setenv("LYZR_AGENT_ID", "agent")
	t.Setenv("LYZR_SESSION_ID", "session")
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := LoadConfig()
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "tweets.db", cfg.Database.Path)
	assert.Equal(t, 100, cfg.Database.MaxOpenConns)
	assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	assert.Equal(t, DefaultInferenceURL, cfg.Inference.URL)
	assert.Equal(t, 60*time.Second, cfg.Inference.Timeout)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("INFERENCE_TIMEOUT", "15s")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 15*time.Second, cfg.Inference.Timeout)
	assert.Equal(t, 100, cfg.Database.MaxOpenConns)
}

func TestValidate(t *testing.T) {
	t.Run("missing inference credentials", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_DRIVER", "sqlite")

		err := LoadConfig().Validate()
		require.Error(t, err)
		for _, key := range []string{"LYZR_API_KEY", "LYZR_USER_ID", "LYZR_AGENT_ID", "LYZR_SESSION_ID"} {
			assert.Contains(t, err.Error(), key)
		}
	})

	t.Run("postgres needs a dsn", func(t *testing.T) {
		clearEnv(t)
		setInferenceEnv(t)

		err := LoadConfig().Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_URL")

		t.Setenv("DB_URL", "postgres://u:p@localhost:5432/tweets")
		assert.NoError(t, LoadConfig().Validate())
	})

	t.Run("sqlite", func(t *testing.T) {
		clearEnv(t)
		setInferenceEnv(t)
		t.Setenv("DB_DRIVER", "sqlite")

		assert.NoError(t, LoadConfig().Validate())
	})

	t.Run("unsupported driver", func(t *testing.T) {
		clearEnv(t)
		setInferenceEnv(t)
		t.Setenv("DB_DRIVER", "mysql")

		err := LoadConfig().Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mysql")
	})
}

func TestInferenceConfig_Missing(t *testing.T) {
	cfg := InferenceConfig{APIKey: "k", AgentID: "a"}
	assert.Equal(t, []string{"LYZR_USER_ID", "LYZR_SESSION_ID"}, cfg.Missing())
	assert.Empty(t, InferenceConfig{APIKey: "k", UserID: "u", AgentID: "a", SessionID: "s"}.Missing())
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "app.env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\nLYZR_AGENT_ID=agent-from-file\n"), 0o600))

	require.NoError(t, LoadEnvFile(path))
	t.Cleanup(func() {
		_ = os.Unsetenv("PORT")
		_ = os.Unsetenv("LYZR_AGENT_ID")
	})

	cfg := LoadConfig()
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "agent-from-file", cfg.Inference.AgentID)

	assert.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}
