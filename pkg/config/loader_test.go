package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inputguard/pkg/config"
)

type basicConfig struct {
	Name    string        `env:"CFG_TEST_NAME" envDefault:"inputguard"`
	Port    int           `env:"CFG_TEST_PORT" envDefault:"8080"`
	Debug   bool          `env:"CFG_TEST_DEBUG" envDefault:"false"`
	Timeout time.Duration `env:"CFG_TEST_TIMEOUT" envDefault:"5s"`
}

type requiredConfig struct {
	Secret string `env:"CFG_TEST_REQUIRED_SECRET,required"`
}

type fileConfig struct {
	Name     string   `env:"CFG_TEST_FILE_NAME"`
	List     []string `env:"CFG_TEST_FILE_LIST" envSeparator:","`
	Priority string   `env:"CFG_TEST_FILE_PRIORITY"`
}

type validatedConfig struct {
	Policy string `env:"CFG_TEST_POLICY" envDefault:"log"`
}

var errBadPolicy = errors.New("bad policy")

func (c *validatedConfig) Validate() error {
	if c.Policy != "log" && c.Policy != "reject" {
		return errBadPolicy
	}
	return nil
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load[basicConfig]()
	require.NoError(t, err)
	assert.Equal(t, basicConfig{Name: "inputguard", Port: 8080, Timeout: 5 * time.Second}, cfg)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CFG_TEST_PORT", "9090")
	t.Setenv("CFG_TEST_DEBUG", "true")

	cfg, err := config.Load[basicConfig]()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Debug)
}

func TestLoadReadsFreshValues(t *testing.T) {
	t.Setenv("CFG_TEST_NAME", "first")
	first, err := config.Load[basicConfig]()
	require.NoError(t, err)

	t.Setenv("CFG_TEST_NAME", "second")
	second, err := config.Load[basicConfig]()
	require.NoError(t, err)

	assert.Equal(t, "first", first.Name)
	assert.Equal(t, "second", second.Name)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing required", func(t *testing.T) {
		_, err := config.Load[requiredConfig]()
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("malformed value", func(t *testing.T) {
		t.Setenv("CFG_TEST_PORT", "not-a-number")
		_, err := config.Load[basicConfig]()
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("missing env file", func(t *testing.T) {
		_, err := config.Load[basicConfig](config.WithEnvFiles("testdata/.env.missing"))
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	})
}

func TestLoadWithPrefix(t *testing.T) {
	t.Setenv("APP_CFG_TEST_PORT", "7070")

	cfg, err := config.Load[basicConfig](config.WithPrefix("APP_"))
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
}

func TestLoadWithEnvFiles(t *testing.T) {
	t.Setenv("CFG_TEST_FILE_PRIORITY", "environment")

	cfg, err := config.Load[fileConfig](config.WithEnvFiles("testdata/.env.test"))
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Name)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.List)
	assert.Equal(t, "environment", cfg.Priority)
}

func TestLoadValidates(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		t.Setenv("CFG_TEST_POLICY", "reject")
		cfg, err := config.Load[validatedConfig]()
		require.NoError(t, err)
		assert.Equal(t, "reject", cfg.Policy)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv("CFG_TEST_POLICY", "drop")
		_, err := config.Load[validatedConfig]()
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
		assert.ErrorIs(t, err, errBadPolicy)
	})
}

func TestMustLoad(t *testing.T) {
	assert.NotPanics(t, func() { config.MustLoad[basicConfig]() })
	assert.Panics(t, func() { config.MustLoad[requiredConfig]() })
}
