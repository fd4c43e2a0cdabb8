package cli

import (
	"os"
	"path/filepath"
	"testing"

	"tweet-server/confs"
	"tweet-server/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCommand_SQLite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "cli.db")
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("DB_DRIVER=sqlite\nDB_PATH="+dbPath+"\n"), 0o600))

	// godotenv does not override variables that are already set
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_PATH", "")
	require.NoError(t, os.Unsetenv("DB_DRIVER"))
	require.NoError(t, os.Unsetenv("DB_PATH"))

	rootCmd.SetArgs([]string{"migrate", "--config", envPath})
	require.NoError(t, rootCmd.Execute())

	database, err := db.Connect(confs.DatabaseConfig{Driver: confs.DriverSQLite, Path: dbPath})
	require.NoError(t, err)
	defer database.Close()

	assert.True(t, database.GetDB().Migrator().HasTable("tweets"))
	assert.True(t, database.GetDB().Migrator().HasTable("users"))
}

func TestRootCommand_MissingEnvFile(t *testing.T) {
	rootCmd.SetArgs([]string{"migrate", "--config", filepath.Join(t.TempDir(), "missing.env")})
	assert.Error(t, rootCmd.Execute())
}
