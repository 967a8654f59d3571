package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgreveal/pkg/cache"
	"github.com/matzehuels/svgreveal/pkg/pipeline"
	"github.com/matzehuels/svgreveal/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "svgreveal"

	// outputSuffix is appended to input names when no output path is given.
	outputSuffix = ".animated.svg"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

// newLoader creates the input reader. Downloads share the runner's cache.
func (c *CLI) newLoader(cc cache.Cache, refresh bool) *source.Loader {
	l := source.NewLoader(cc, c.Logger)
	l.Refresh = refresh
	return l
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newServerCache picks the cache backend for the HTTP server. A Redis URL
// takes precedence over the local file cache.
func (c *CLI) newServerCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if redisURL != "" && !noCache {
		rc, err := cache.NewRedisCache(ctx, redisURL, cache.DefaultRedisPrefix)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("using redis cache", "prefix", cache.DefaultRedisPrefix)
		return rc, nil
	}
	return newCache(noCache)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/svgreveal/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
