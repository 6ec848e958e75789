package nexus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Host string `env:"NEXUS_TEST_HOST" env-default:"localhost"`
	Port string `env:"NEXUS_TEST_PORT" env-default:"8080" validate:"required"`
}

func TestLoader_Load(t *testing.T) {
	t.Run("defaults from tags", func(t *testing.T) {
		cfg := &testConfig{}

		err := NewLoader().Load(cfg)

		require.NoError(t, err)
		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, "8080", cfg.Port)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("NEXUS_TEST_HOST", "0.0.0.0")
		cfg := &testConfig{}

		err := NewLoader().Load(cfg)

		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0", cfg.Host)
	})

	t.Run("rejects non-pointer config", func(t *testing.T) {
		err := NewLoader().Load(testConfig{})

		require.Error(t, err)
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, ErrCodeInvalidType, cfgErr.Code)
	})

	t.Run("missing file reported", func(t *testing.T) {
		cfg := &testConfig{}

		err := NewLoader(WithFileName("does-not-exist.env")).Load(cfg)

		require.Error(t, err)
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, ErrCodeFileNotFound, cfgErr.Code)
	})
}
