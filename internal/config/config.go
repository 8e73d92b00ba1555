package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the resolved application configuration.
type Config struct {
	// PageSize is how many rows the list reveals per growth step.
	PageSize int `mapstructure:"page_size"`
	// InitialListSize is how many rows are rendered before any scrolling.
	InitialListSize int `mapstructure:"initial_list_size"`
	// OnEndReachedThreshold is the distance from the end, in rows, at
	// which the next feed page is requested.
	OnEndReachedThreshold int `mapstructure:"on_end_reached_threshold"`
	// ScrollRenderAheadDistance is the distance from the end, in rows,
	// below which more already-loaded rows are rendered.
	ScrollRenderAheadDistance int `mapstructure:"scroll_render_ahead_distance"`
	// ScrollEventThrottle is the minimum interval between scroll ticks.
	ScrollEventThrottle time.Duration `mapstructure:"scroll_event_throttle"`
	// UseBodyScroll makes the screen, not the list box, the scroll surface.
	UseBodyScroll bool `mapstructure:"use_body_scroll"`
	// FetchSize is how many records are requested from the feed at once.
	FetchSize int `mapstructure:"fetch_size"`
	// CacheTTL is how long fetched pages are reused.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	// WatchDebounce delays reloads after the backing file changes.
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
	// SectionDelimiter splits "category<delim>text" lines in sectioned mode.
	SectionDelimiter string `mapstructure:"section_delimiter"`
	// Theme name: "dark" (default) or "light".
	Theme string `mapstructure:"theme"`
	// LogFile receives debug logs. Empty disables logging.
	LogFile string `mapstructure:"log_file"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"page-size":   "page_size",
	"initial":     "initial_list_size",
	"body-scroll": "use_body_scroll",
	"delimiter":   "section_delimiter",
	"log-file":    "log_file",
	"log-level":   "log_level",
}

// Load reads configuration from ~/.config/lzl/config.yaml (or TOML/JSON),
// then the LZL_* environment, then any flags in flags that were set.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(configDirectory())
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("LZL")
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is fine, use defaults.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration, ignoring files, the
// environment and flags.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	// Defaults always decode.
	_ = v.Unmarshal(cfg)
	return cfg
}

// Validate rejects settings the list cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page_size must be positive, got %d", c.PageSize))
	}
	if c.InitialListSize < 0 {
		errs = append(errs, fmt.Errorf("initial_list_size must not be negative, got %d", c.InitialListSize))
	}
	if c.FetchSize <= 0 {
		errs = append(errs, fmt.Errorf("fetch_size must be positive, got %d", c.FetchSize))
	}
	if c.OnEndReachedThreshold < 0 {
		errs = append(errs, fmt.Errorf("on_end_reached_threshold must not be negative, got %d", c.OnEndReachedThreshold))
	}
	if c.ScrollRenderAheadDistance < 0 {
		errs = append(errs, fmt.Errorf("scroll_render_ahead_distance must not be negative, got %d", c.ScrollRenderAheadDistance))
	}
	if c.ScrollEventThrottle < 0 {
		errs = append(errs, fmt.Errorf("scroll_event_throttle must not be negative, got %s", c.ScrollEventThrottle))
	}
	switch c.Theme {
	case "dark", "light":
	default:
		errs = append(errs, fmt.Errorf("unknown theme %q", c.Theme))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("page_size", 10)
	v.SetDefault("initial_list_size", 10)
	v.SetDefault("on_end_reached_threshold", 10)
	v.SetDefault("scroll_render_ahead_distance", 20)
	v.SetDefault("scroll_event_throttle", "50ms")
	v.SetDefault("use_body_scroll", false)
	v.SetDefault("fetch_size", 50)
	v.SetDefault("cache_ttl", "2s")
	v.SetDefault("watch_debounce", "500ms")
	v.SetDefault("section_delimiter", ":")
	v.SetDefault("theme", "dark")
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")
}

func configDirectory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lzl")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "lzl")
}
