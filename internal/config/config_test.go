package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:               "8000",
		Env:                "development",
		DBDriver:           DriverPostgres,
		DBPassword:         "password",
		DBSSLMode:          "disable",
		SQLitePath:         "postboard.db",
		TracingSampleRatio: 1,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"Development defaults", func(*Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"SQLite without path", func(c *Config) { c.DBDriver = DriverSQLite; c.SQLitePath = "" }, true},
		{"Unknown tracing exporter", func(c *Config) { c.TracingEnabled = true; c.TracingExporter = "jaeger" }, true},
		{"OTLP tracing", func(c *Config) { c.TracingEnabled = true; c.TracingExporter = "otlp" }, false},
		{"Sample ratio out of range", func(c *Config) { c.TracingSampleRatio = 1.5 }, true},
		{"Production with default password", func(c *Config) { c.Env = "production"; c.DBSSLMode = "require" }, true},
		{"Production with disabled SSL", func(c *Config) { c.Env = "prod"; c.DBPassword = "s3cret-pass" }, true},
		{"Production hardened", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "s3cret-pass"
			c.DBSSLMode = "verify-full"
		}, false},
		{"Production with DATABASE_URL", func(c *Config) {
			c.Env = "production"
			c.DatabaseURL = "postgres://app:pw@db:5432/postboard?sslmode=require"
		}, false},
		{"Production on sqlite", func(c *Config) { c.Env = "production"; c.DBDriver = DriverSQLite }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_PostgresDSN(t *testing.T) {
	c := &Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "app",
		DBPassword: "pw",
		DBName:     "postboard",
	}
	assert.Equal(t, "host=db port=5433 user=app password=pw dbname=postboard sslmode=disable", c.PostgresDSN())

	c.DatabaseURL = "postgres://app:pw@db/postboard"
	assert.Equal(t, "postgres://app:pw@db/postboard", c.PostgresDSN())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	defer viper.Reset()
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("DB_DRIVER")
	defer os.Unsetenv("PORT")
	defer os.Unsetenv("DB_SSLMODE")

	os.Setenv("APP_ENV", "test")
	os.Setenv("DB_DRIVER", "  SQLite ")
	os.Setenv("PORT", "9100")
	os.Setenv("DB_SSLMODE", "  DISABLE  ")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "test", c.Env)
	assert.Equal(t, DriverSQLite, c.DBDriver)
	assert.Equal(t, "9100", c.Port)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, 25, c.DBMaxOpenConns)
	assert.False(t, c.IsProduction())
}

func TestLoadConfig_ReadsDotEnv(t *testing.T) {
	defer viper.Reset()
	defer os.Unsetenv("PORT")
	defer os.Unsetenv("DB_DRIVER")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9200\nDB_DRIVER=sqlite\n"), 0o600))
	t.Chdir(dir)

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9200", c.Port)
	assert.Equal(t, DriverSQLite, c.DBDriver)
}
