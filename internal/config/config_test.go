package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "analogygen", cfg.App.Name)
	require.Equal(t, 60, cfg.Auth.JWTExpireMinute)
	require.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	require.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr())
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LLM_MODEL", "gpt-4o")
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("LLM_TEMPERATURE", "0.2")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "from-env", cfg.Auth.JWTSecret)
	require.Equal(t, 9090, cfg.App.Port)
	require.Equal(t, "gpt-4o", cfg.LLM.Model)
	require.Equal(t, 0.2, cfg.LLM.Temperature)
	require.Equal(t, "127.0.0.1:9090", cfg.HTTPAddr())
}

func TestEnvOverrideBadInt(t *testing.T) {
	t.Setenv("APP_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.App.Port)
}

func TestEnvOverrideBadFloat(t *testing.T) {
	t.Setenv("LLM_TEMPERATURE", "warm")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 0.7, cfg.LLM.Temperature)
}

func TestMySQLDSN(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Contains(t, cfg.MySQLDSN(), "@tcp(127.0.0.1:3306)/analogygen?")
}
