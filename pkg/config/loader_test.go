package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/pkg/config"
)

type testConfig struct {
	Host    string        `env:"HOST" envDefault:"smtp.gmail.com"`
	Port    int           `env:"PORT" envDefault:"587"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
	Enabled bool          `env:"ENABLED" envDefault:"true"`
}

type requiredConfig struct {
	User string `env:"USER_NAME,required"`
}

type fileConfig struct {
	Value string `env:"FR_TEST_FILE_VALUE"`
	Port  int    `env:"FR_TEST_FILE_PORT"`
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		var cfg testConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvironment(map[string]string{})))
		assert.Equal(t, "smtp.gmail.com", cfg.Host)
		assert.Equal(t, 587, cfg.Port)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.True(t, cfg.Enabled)
	})

	t.Run("values override defaults", func(t *testing.T) {
		t.Parallel()
		var cfg testConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{
			"HOST":    "mail.example.com",
			"PORT":    "2525",
			"TIMEOUT": "5s",
			"ENABLED": "false",
		}))
		require.NoError(t, err)
		assert.Equal(t, "mail.example.com", cfg.Host)
		assert.Equal(t, 2525, cfg.Port)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.False(t, cfg.Enabled)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()
		var cfg testConfig
		err := config.Load(&cfg,
			config.WithPrefix("RELAY_"),
			config.WithEnvironment(map[string]string{"RELAY_PORT": "465", "PORT": "1"}),
		)
		require.NoError(t, err)
		assert.Equal(t, 465, cfg.Port)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()
		var cfg testConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{"PORT": "not-a-number"}))
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("missing required", func(t *testing.T) {
		t.Parallel()
		var cfg requiredConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{}))
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, config.Load[testConfig](nil), config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	t.Parallel()

	var cfg requiredConfig
	assert.Panics(t, func() {
		config.MustLoad(&cfg, config.WithEnvironment(map[string]string{}))
	})
	assert.NotPanics(t, func() {
		config.MustLoad(&cfg, config.WithEnvironment(map[string]string{"USER_NAME": "relay"}))
	})
	assert.Equal(t, "relay", cfg.User)
}

func TestLoadEnvFiles(t *testing.T) {
	require.NoError(t, config.LoadEnvFiles("testdata/test.env"))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from_file", cfg.Value)
	assert.Equal(t, 2525, cfg.Port)

	err := config.LoadEnvFiles("testdata/missing.env")
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	assert.NoError(t, config.LoadEnvFiles())
}
