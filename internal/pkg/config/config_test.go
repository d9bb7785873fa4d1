package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type section struct {
	Level   string        `mapstructure:"level"`
	APIKey  string        `mapstructure:"api-key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type testOptions struct {
	Log      *section `mapstructure:"log"`
	Markdown bool     `mapstructure:"markdown"`
}

func newFlags(o *testOptions) *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringVar(&o.Log.Level, "log.level", o.Log.Level, "")
	fs.StringVar(&o.Log.APIKey, "log.api-key", o.Log.APIKey, "")
	fs.DurationVar(&o.Log.Timeout, "log.timeout", o.Log.Timeout, "")
	fs.BoolVar(&o.Markdown, "markdown", o.Markdown, "")
	return fs
}

func defaults() *testOptions {
	return &testOptions{Log: &section{Level: "info", Timeout: time.Second}}
}

func TestLoadDefaults(t *testing.T) {
	o := defaults()
	fs := newFlags(o)
	require.NoError(t, fs.Parse(nil))

	require.NoError(t, Load(fs, "CFGTEST", "", o))
	assert.Equal(t, "info", o.Log.Level)
	assert.Equal(t, time.Second, o.Log.Timeout)
	assert.False(t, o.Markdown)
}

func TestLoadEnvAndFlags(t *testing.T) {
	t.Setenv("CFGTEST_LOG_API_KEY", "from-env")
	t.Setenv("CFGTEST_LOG_LEVEL", "warn")

	o := defaults()
	fs := newFlags(o)
	require.NoError(t, fs.Parse([]string{"--log.level=debug", "--markdown"}))

	require.NoError(t, Load(fs, "CFGTEST", "", o))
	assert.Equal(t, "debug", o.Log.Level)
	assert.Equal(t, "from-env", o.Log.APIKey)
	assert.True(t, o.Markdown)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: error\n  timeout: 5s\n"), 0o600))

	o := defaults()
	fs := newFlags(o)
	require.NoError(t, fs.Parse(nil))

	require.NoError(t, Load(fs, "CFGTEST", path, o))
	assert.Equal(t, "error", o.Log.Level)
	assert.Equal(t, 5*time.Second, o.Log.Timeout)
}

func TestLoadMissingConfigFile(t *testing.T) {
	o := defaults()
	fs := newFlags(o)
	require.NoError(t, fs.Parse(nil))

	assert.Error(t, Load(fs, "CFGTEST", filepath.Join(t.TempDir(), "nope.yaml"), o))
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CFGTEST_DOTENV=loaded\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CFGTEST_DOTENV") })

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "loaded", os.Getenv("CFGTEST_DOTENV"))
}

func TestLoadEnvFileMissing(t *testing.T) {
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), ".env")))
	assert.NoError(t, LoadEnvFile(""))
}
