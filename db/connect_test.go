package db

import (
	"path/filepath"
	"testing"

	"tweet-server/confs"
	"tweet-server/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSN_URLGetsSSLMode(t *testing.T) {
	dsn, err := postgresDSN(confs.DatabaseConfig{URL: "postgres://u:p@db.example.com/tweets"})
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db.example.com/tweets?sslmode=require", dsn)

	dsn, err = postgresDSN(confs.DatabaseConfig{URL: "postgres://u:p@db.example.com/tweets?application_name=x"})
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db.example.com/tweets?application_name=x&sslmode=require", dsn)
}

func TestPostgresDSN_URLKeepsExplicitSSLMode(t *testing.T) {
	dsn, err := postgresDSN(confs.DatabaseConfig{URL: "postgres://u:p@localhost/tweets?sslmode=disable"})
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost/tweets?sslmode=disable", dsn)
}

func TestPostgresDSN_Parameters(t *testing.T) {
	cfg := confs.DatabaseConfig{Host: "localhost", Port: "5432", User: "u", Password: "p", Name: "tweets"}
	dsn, err := postgresDSN(cfg)
	require.NoError(t, err)
	assert.Contains(t, dsn, "sslmode=disable")
	assert.Contains(t, dsn, "dbname=tweets")

	cfg.Host = "db.internal"
	dsn, err = postgresDSN(cfg)
	require.NoError(t, err)
	assert.Contains(t, dsn, "sslmode=require")
}

func TestPostgresDSN_MissingParameters(t *testing.T) {
	_, err := postgresDSN(confs.DatabaseConfig{Host: "localhost"})
	assert.Error(t, err)
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := Connect(confs.DatabaseConfig{Driver: "mysql"})
	assert.Error(t, err)
}

func TestConnectAndMigrate_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweets.db")
	database, err := Connect(confs.DatabaseConfig{Driver: confs.DriverSQLite, Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, Migrate(database))

	migrator := database.GetDB().Migrator()
	assert.True(t, migrator.HasTable(&entities.Tweet{}))
	assert.True(t, migrator.HasTable(&entities.User{}))
	assert.True(t, migrator.HasIndex(&entities.Tweet{}, "CreatedAt"))
}
