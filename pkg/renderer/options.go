package renderer

import (
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/snapshot/pkg/graphics"
	"github.com/go-drift/snapshot/pkg/render"
)

// Options configures a Renderer.
type Options struct {
	// DefaultLogicalSize is used when a request leaves its size zero.
	DefaultLogicalSize graphics.Size
	// EnableCaching turns the icon cache and in-flight deduplication on.
	EnableCaching bool
	// MaxCacheEntries bounds the cache entry count. Must be positive.
	MaxCacheEntries int
	// MaxCacheBytes bounds the total encoded size of cached icons.
	// Zero or negative disables the byte bound.
	MaxCacheBytes int64
	// InitialImageDelay is the settle delay before the pending-image check.
	InitialImageDelay time.Duration
	// ImageRepaintDelay is the settle delay before the single repaint.
	ImageRepaintDelay time.Duration
}

// DefaultOptions returns the options a fresh renderer starts from.
func DefaultOptions() Options {
	return Options{
		DefaultLogicalSize: graphics.Size{Width: 48, Height: 48},
		EnableCaching:      true,
		MaxCacheEntries:    64,
		InitialImageDelay:  render.DefaultInitialImageDelay,
		ImageRepaintDelay:  render.DefaultImageRepaintDelay,
	}
}

func (o Options) validate() error {
	if o.MaxCacheEntries <= 0 {
		return fmt.Errorf("renderer: MaxCacheEntries must be positive, got %d", o.MaxCacheEntries)
	}
	return nil
}

// fileConfig is the snapshot.yaml schema.
type fileConfig struct {
	Cache struct {
		Enabled    *bool `yaml:"enabled"`
		MaxEntries int   `yaml:"max_entries"`
		MaxBytes   int64 `yaml:"max_bytes"`
	} `yaml:"cache"`
	Render struct {
		DefaultWidth        float64 `yaml:"default_width"`
		DefaultHeight       float64 `yaml:"default_height"`
		InitialImageDelayMS int     `yaml:"initial_image_delay_ms"`
		ImageRepaintDelayMS int     `yaml:"image_repaint_delay_ms"`
	} `yaml:"render"`
}

// LoadOptions reads renderer options from a yaml file, starting from
// DefaultOptions. A missing file is not an error and yields the defaults,
// mirroring how optional project configuration behaves elsewhere in the
// toolchain.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return opts, nil
		}
		return opts, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return opts, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.Cache.Enabled != nil {
		opts.EnableCaching = *cfg.Cache.Enabled
	}
	if cfg.Cache.MaxEntries > 0 {
		opts.MaxCacheEntries = cfg.Cache.MaxEntries
	}
	if cfg.Cache.MaxBytes > 0 {
		opts.MaxCacheBytes = cfg.Cache.MaxBytes
	}
	if cfg.Render.DefaultWidth > 0 && cfg.Render.DefaultHeight > 0 {
		opts.DefaultLogicalSize = graphics.Size{
			Width:  cfg.Render.DefaultWidth,
			Height: cfg.Render.DefaultHeight,
		}
	}
	if cfg.Render.InitialImageDelayMS > 0 {
		opts.InitialImageDelay = time.Duration(cfg.Render.InitialImageDelayMS) * time.Millisecond
	}
	if cfg.Render.ImageRepaintDelayMS > 0 {
		opts.ImageRepaintDelay = time.Duration(cfg.Render.ImageRepaintDelayMS) * time.Millisecond
	}
	return opts, nil
}
