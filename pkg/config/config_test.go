package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hst-contabilidad/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "local")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "hst-contabilidad", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Minute, cfg.Storage.SignedURLTTL())
	assert.Equal(t, 5, cfg.JWT.ElevateExpiration)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("STORAGE_SIGNED_URL_TTL_MINUTES", "3")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.Equal(t, 3*time.Minute, cfg.Storage.SignedURLTTL())
}

func TestLoad_SupabaseSinCredenciales(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "supabase")
	t.Setenv("SUPABASE_URL", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss/word", DBName: "hst", SSLMode: "require"}
	assert.Equal(t, "postgres://u:p%40ss%2Fword@db:5432/hst?sslmode=require", c.DSN())
}

func TestLocation_Invalida(t *testing.T) {
	assert.Equal(t, time.UTC, config.AppConfig{Timezone: "No/Existe"}.Location())
}

func TestLoad_DriverDesconocido(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestUsesExecMode(t *testing.T) {
	pooler := "postgres://u:p@aws-0-us-east-1.pooler.supabase.com:6543/postgres"
	direct := "postgres://u:p@db.abc.supabase.co:5432/postgres"

	assert.True(t, config.DBConfig{DatabaseURL: pooler, ExecMode: "auto"}.UsesExecMode())
	assert.False(t, config.DBConfig{DatabaseURL: direct, ExecMode: "auto"}.UsesExecMode())
	assert.True(t, config.DBConfig{DatabaseURL: direct, ExecMode: "exec"}.UsesExecMode())
	assert.False(t, config.DBConfig{DatabaseURL: pooler, ExecMode: "cache"}.UsesExecMode())
	assert.True(t, config.DBConfig{Host: "localhost", Port: 6543, ExecMode: "auto"}.UsesExecMode())
}

func TestLoad_ExecModeDesconocido(t *testing.T) {
	t.Setenv("DB_EXEC_MODE", "simple")

	_, err := config.Load()
	assert.Error(t, err)
}
