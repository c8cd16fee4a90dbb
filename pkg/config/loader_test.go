package config_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bindkit/pkg/config"
)

type defaultsConfig struct {
	Name    string        `env:"CFG_TEST_DEFAULT_NAME" envDefault:"bindkit"`
	Port    int           `env:"CFG_TEST_DEFAULT_PORT" envDefault:"8080"`
	Timeout time.Duration `env:"CFG_TEST_DEFAULT_TIMEOUT" envDefault:"5s"`
	Secure  bool          `env:"CFG_TEST_DEFAULT_SECURE" envDefault:"true"`
}

type cachedConfig struct {
	Value string `env:"CFG_TEST_CACHED" envDefault:"first"`
}

type requiredConfig struct {
	Value string `env:"CFG_TEST_REQUIRED_VALUE,required"`
}

type concurrentConfig struct {
	Value string `env:"CFG_TEST_CONCURRENT" envDefault:"shared"`
}

type prefixedConfig struct {
	Addr string `env:"ADDR" envDefault:"localhost"`
}

type fileConfig struct {
	Value string `env:"CFG_TEST_FROM_FILE"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg defaultsConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "bindkit", cfg.Name)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.True(t, cfg.Secure)
	})

	t.Run("cached per type", func(t *testing.T) {
		t.Setenv("CFG_TEST_CACHED", "first")
		var first cachedConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("CFG_TEST_CACHED", "second")
		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Value)
	})

	t.Run("copies are independent", func(t *testing.T) {
		var a, b cachedConfig
		require.NoError(t, config.Load(&a))
		a.Value = "changed"
		require.NoError(t, config.Load(&b))
		assert.NotEqual(t, "changed", b.Value)
	})

	t.Run("missing required variable", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[defaultsConfig](nil), config.ErrNilPointer)
	})

	t.Run("concurrent loads", func(t *testing.T) {
		var wg sync.WaitGroup
		results := make([]string, 20)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				var cfg concurrentConfig
				if err := config.Load(&cfg); err == nil {
					results[i] = cfg.Value
				}
			}()
		}
		wg.Wait()
		for _, v := range results {
			assert.Equal(t, "shared", v)
		}
	})
}

func TestMustLoad(t *testing.T) {
	assert.NotPanics(t, func() {
		var cfg defaultsConfig
		config.MustLoad(&cfg)
	})
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}

func TestParse(t *testing.T) {
	t.Setenv("PRIMARY_ADDR", "primary:6379")

	primary, err := config.Parse[prefixedConfig]("PRIMARY_")
	require.NoError(t, err)
	assert.Equal(t, "primary:6379", primary.Addr)

	replica, err := config.Parse[prefixedConfig]("REPLICA_")
	require.NoError(t, err)
	assert.Equal(t, "localhost", replica.Addr)

	_, err = config.Parse[requiredConfig]("")
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoadEnvFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CFG_TEST_FROM_FILE=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CFG_TEST_FROM_FILE") })

	require.NoError(t, config.LoadEnvFiles(path))
	cfg, err := config.Parse[fileConfig]("")
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Value)

	err = config.LoadEnvFiles(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}
