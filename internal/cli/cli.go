package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modelviewer/pkg/buildinfo"
	"github.com/matzehuels/modelviewer/pkg/cache"
	"github.com/matzehuels/modelviewer/pkg/config"
	"github.com/matzehuels/modelviewer/pkg/export"
	"github.com/matzehuels/modelviewer/pkg/viewer"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "modelviewer"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the config file, then applies MODELVIEWER_* overrides.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.config = cfg
	return nil
}

// cfg returns the loaded configuration, or defaults before loading.
func (c *CLI) cfg() *config.Config {
	if c.config == nil {
		return config.Default()
	}
	return c.config
}

// =============================================================================
// Factories
// =============================================================================

// newGenerator builds a DOT generator from the diagnostics settings.
func (c *CLI) newGenerator(w io.Writer) *viewer.Generator {
	return viewer.NewGenerator(
		viewer.WithLogger(c.Logger.WithPrefix(viewer.ID)),
		viewer.WithDiagnostics(c.cfg().Diagnostics),
		viewer.WithStdout(w),
	)
}

// newBridge builds the Graphviz bridge. The returned cache must be closed.
func (c *CLI) newBridge(ctx context.Context, engine string, noCache bool) (*export.GraphvizBridge, cache.Cache, error) {
	if engine == "" {
		engine = c.cfg().Export.Engine
	}
	e, err := export.ParseEngine(engine)
	if err != nil {
		return nil, nil, err
	}

	var store cache.Cache = cache.NewNullCache()
	keyer := cache.NewDefaultKeyer()
	if !noCache {
		if store, keyer, err = c.openCache(ctx); err != nil {
			return nil, nil, err
		}
	}
	b := export.NewGraphvizBridge(
		export.WithEngine(e),
		export.WithCache(store, c.cfg().Cache.TTL.Duration),
		export.WithKeyer(keyer),
		export.WithLogger(c.Logger.WithPrefix("export")),
	)
	return b, store, nil
}

// openCache opens the configured cache backend.
func (c *CLI) openCache(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	cfg := c.cfg().Cache
	keyer := cache.NewDefaultKeyer()

	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), keyer, nil
	case config.BackendRedis:
		rc := cache.NewRedisCache(cfg.RedisAddr, cache.WithRedisPrefix(appName+":"))
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		return rc, cache.NewScopedKeyer(keyer, buildinfo.Version+":"), nil
	case config.BackendMongo:
		mc, err := cache.NewMongoCache(ctx, cfg.MongoURI, cfg.MongoDatabase,
			cache.WithMongoPrefix(appName+":"))
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		return mc, cache.NewScopedKeyer(keyer, buildinfo.Version+":"), nil
	default:
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache(), keyer, nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, nil, err
		}
		return fc, keyer, nil
	}
}

// cacheDir returns the file cache directory (~/.cache/modelviewer/ unless configured).
func (c *CLI) cacheDir() (string, error) {
	if dir := c.cfg().Cache.Dir; dir != "" {
		return dir, nil
	}
	return cache.DefaultDir()
}
