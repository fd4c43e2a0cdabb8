package app

import (
	"path/filepath"
	"testing"

	"tweet-server/db"
	"tweet-server/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "container.db"))
	t.Setenv("LYZR_API_KEY", "key")
	t.Setenv("LYZR_USER_ID", "user")
	t.Setenv("LYZR_AGENT_ID", "agent")
	t.Setenv("LYZR_SESSION_ID", "session")
}

func TestBuildContainer_ResolvesServer(t *testing.T) {
	setTestEnv(t)

	container, err := BuildContainer()
	require.NoError(t, err)

	err = container.Invoke(func(s *server.Server, database db.Database) {
		assert.NotNil(t, s.Handler())
		t.Cleanup(func() { _ = database.Close() })
	})
	require.NoError(t, err)
}

func TestBuildContainer_MissingCredentials(t *testing.T) {
	setTestEnv(t)
	t.Setenv("LYZR_API_KEY", "")

	container, err := BuildContainer()
	require.NoError(t, err)

	err = container.Invoke(func(s *server.Server) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LYZR_API_KEY")
}
