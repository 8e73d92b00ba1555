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

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return filepath.Join(dir, "lzl")
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 10, cfg.InitialListSize)
	assert.Equal(t, 50*time.Millisecond, cfg.ScrollEventThrottle)
	assert.Equal(t, 2*time.Second, cfg.CacheTTL)
	assert.Equal(t, ":", cfg.SectionDelimiter)
	assert.Equal(t, "dark", cfg.Theme)
	assert.False(t, cfg.UseBodyScroll)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	yaml := "page_size: 25\ninitial_list_size: 5\ntheme: light\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	t.Setenv("LZL_FETCH_SIZE", "7")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("initial", 0, "")
	flags.Bool("body-scroll", false, "")
	require.NoError(t, flags.Parse([]string{"--initial=3", "--body-scroll"}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.PageSize, "from file")
	assert.Equal(t, "light", cfg.Theme, "from file")
	assert.Equal(t, 7, cfg.FetchSize, "from env")
	assert.Equal(t, 3, cfg.InitialListSize, "flag wins over file")
	assert.True(t, cfg.UseBodyScroll)
}

func TestLoad_UnsetFlagKeepsFileValue(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("page_size: 4\n"), 0o644))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("page-size", 10, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.PageSize)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	isolate(t)
	t.Setenv("LZL_PAGE_SIZE", "0")
	_, err := Load(nil)
	assert.ErrorContains(t, err, "page_size must be positive")
}

func TestValidate(t *testing.T) {
	valid := Config{PageSize: 1, FetchSize: 1, Theme: "dark"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "negative initial", mutate: func(c *Config) { c.InitialListSize = -1 }, want: "initial_list_size"},
		{name: "zero fetch", mutate: func(c *Config) { c.FetchSize = 0 }, want: "fetch_size"},
		{name: "negative throttle", mutate: func(c *Config) { c.ScrollEventThrottle = -time.Second }, want: "scroll_event_throttle"},
		{name: "unknown theme", mutate: func(c *Config) { c.Theme = "neon" }, want: "unknown theme"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			assert.ErrorContains(t, c.Validate(), tc.want)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 50*time.Millisecond, cfg.ScrollEventThrottle)
	assert.Equal(t, 50, cfg.FetchSize)
	assert.Equal(t, "dark", cfg.Theme)
}
