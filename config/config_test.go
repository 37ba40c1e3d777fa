package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"SERVER_PORT", "LOG_LEVEL", "TASK_STORE", "FIREBASE_CREDENTIALS_PATH",
		"CORS_ALLOWED_ORIGINS", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
		"DB_NAME", "DB_SSLMODE",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.TaskStore)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.UsesPostgres())
	assert.Equal(t, "host=localhost port=5432 user= password= dbname= sslmode=disable", cfg.Database.DSN())
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TASK_STORE", "Postgres")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("DB_NAME", "tasker")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StorePostgres, cfg.TaskStore)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.UsesPostgres())
}

func TestFromEnvRejectsUnknownStore(t *testing.T) {
	clearEnv(t)
	t.Setenv("TASK_STORE", "redis")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFirestoreNeedsCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("TASK_STORE", "firestore")

	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("FIREBASE_CREDENTIALS_PATH", "/etc/tasker/sa.json")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, StoreFirestore, cfg.TaskStore)
}
