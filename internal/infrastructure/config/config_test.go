package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "finance-engine", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Fees.DefaultRate.Equal(dec(t, "0.08")))
	assert.True(t, cfg.Margin.ThinBelow.Equal(dec(t, "0.10")))
	assert.True(t, cfg.Margin.HealthyUpTo.Equal(dec(t, "0.25")))
	assert.Equal(t, 8, cfg.Margin.BatchParallel)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.CollectorEndpoint)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
	assert.Equal(t, cfg.App.Name, cfg.Telemetry.ServiceName)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[app]
name = "fin-test"
env = "development"

[database]
driver = "sqlite"
path = "test.db"

[fees]
default_rate = "0.07"

[fees.platforms]
shopee = "0.09"

[fees.categories]
"shopee/electronics" = "0.05"

[margin]
thin_below = "0.05"
healthy_up_to = "0.20"
batch_parallel = 4
`)
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "fin-test", cfg.App.Name)
	assert.True(t, cfg.Fees.DefaultRate.Equal(dec(t, "0.07")))
	assert.True(t, cfg.Fees.Platforms["shopee"].Equal(dec(t, "0.09")))
	assert.True(t, cfg.Fees.Categories["shopee/electronics"].Equal(dec(t, "0.05")))
	assert.True(t, cfg.Margin.ThinBelow.Equal(dec(t, "0.05")))
	assert.Equal(t, 4, cfg.Margin.BatchParallel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{
			name: "unknown driver",
			toml: "[database]\ndriver = \"oracle\"\n",
		},
		{
			name: "fee rate not a decimal",
			toml: "[fees]\ndefault_rate = \"lots\"\n",
		},
		{
			name: "fee rate at one",
			toml: "[fees]\ndefault_rate = \"1\"\n",
		},
		{
			name: "thin above healthy",
			toml: "[margin]\nthin_below = \"0.30\"\nhealthy_up_to = \"0.20\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.toml)
			t.Chdir(dir)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	t.Run("sqlite uses the file path", func(t *testing.T) {
		cfg := DatabaseConfig{Driver: "sqlite", Path: "finance.db"}
		assert.Equal(t, "finance.db", cfg.DSN())
	})

	t.Run("postgres escapes credentials", func(t *testing.T) {
		cfg := DatabaseConfig{
			Driver:   "postgres",
			Host:     "db.internal",
			Port:     5432,
			User:     "fin",
			Password: "p@ss/word",
			DBName:   "finance",
			SSLMode:  "require",
		}
		dsn := cfg.DSN()
		assert.Contains(t, dsn, "postgres://")
		assert.Contains(t, dsn, "db.internal:5432")
		assert.Contains(t, dsn, "sslmode=require")
		assert.NotContains(t, dsn, "p@ss/word", "password must be escaped")
	})
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(s)
}
