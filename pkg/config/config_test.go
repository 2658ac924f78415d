package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fahleh/alx-files-manager/pkg/config"
)

type serverConfig struct {
	Addr string `env:"TEST_CFG_ADDR" envDefault:":5000"`
	Port int    `env:"TEST_CFG_PORT" envDefault:"5000"`
}

type requiredConfig struct {
	Token string `env:"TEST_CFG_REQUIRED,required"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, 5000, cfg.Port)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TEST_CFG_ADDR", ":8080")
	t.Setenv("TEST_CFG_PORT", "8080")

	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoad_RequiredMissing(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_NilPointer(t *testing.T) {
	err := config.Load[serverConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}
