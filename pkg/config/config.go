// Package config loads modelviewer settings from a TOML file and the
// environment.
//
// Settings are layered: [Default] values, then the file passed to [Load],
// then MODELVIEWER_* environment variables applied by [Config.ApplyEnv].
//
//	[diagnostics]
//	show_dot = true
//
//	[export]
//	engine = "neato"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "cache:6379"
package config

import (
	"errors"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	mverrors "github.com/matzehuels/modelviewer/pkg/errors"
	"github.com/matzehuels/modelviewer/pkg/export"
)

// DefaultFile is the configuration file looked up in the working directory
// when no path is given.
const DefaultFile = "modelviewer.toml"

// EnvPrefix namespaces the environment variables read by [Config.ApplyEnv].
const EnvPrefix = "MODELVIEWER_"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config is the complete modelviewer configuration.
type Config struct {
	Diagnostics Diagnostics  `toml:"diagnostics"`
	Export      ExportConfig `toml:"export"`
	Cache       CacheConfig  `toml:"cache"`
	Server      ServerConfig `toml:"server"`
}

// Diagnostics toggles debugging output of the DOT generator. Neither flag
// changes generated results.
type Diagnostics struct {
	// ShowDOT logs every generated DOT document.
	ShowDOT bool `toml:"show_dot"`
	// ShowMemory prints heap figures after every generation.
	ShowMemory bool `toml:"show_memory"`
}

// ExportConfig selects the Graphviz engine and default output format.
type ExportConfig struct {
	Engine string `toml:"engine"`
	Format string `toml:"format"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"` // empty means the XDG cache directory
	TTL           Duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
}

// ServerConfig configures the HTTP viewer.
type ServerConfig struct {
	Addr string `toml:"addr"`
	Root string `toml:"root"`
}

// Duration is a time.Duration written as a string ("168h") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Engine: string(export.EngineDot),
			Format: string(export.FormatPNG),
		},
		Cache: CacheConfig{
			Backend:       BackendFile,
			TTL:           Duration{7 * 24 * time.Hour},
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "modelviewer",
		},
		Server: ServerConfig{
			Addr: ":8080",
			Root: ".",
		},
	}
}

// Load reads path on top of [Default]. An empty path loads [DefaultFile] if
// it exists and the defaults otherwise. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, mverrors.Wrap(mverrors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, mverrors.New(mverrors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from MODELVIEWER_* variables looked up with
// lookup (usually [os.LookupEnv]):
//
//	MODELVIEWER_SHOW_DOT, MODELVIEWER_SHOW_MEMORY  booleans
//	MODELVIEWER_ENGINE                             layout engine
//	MODELVIEWER_CACHE_BACKEND, MODELVIEWER_CACHE_DIR
//	MODELVIEWER_REDIS_ADDR, MODELVIEWER_MONGO_URI
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	bools := []struct {
		name string
		dst  *bool
	}{
		{"SHOW_DOT", &c.Diagnostics.ShowDOT},
		{"SHOW_MEMORY", &c.Diagnostics.ShowMemory},
	}
	for _, b := range bools {
		v, ok := lookup(EnvPrefix + b.name)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return mverrors.Wrap(mverrors.ErrCodeInvalidConfig, err, "%s%s", EnvPrefix, b.name)
		}
		*b.dst = parsed
	}

	strs := []struct {
		name string
		dst  *string
	}{
		{"ENGINE", &c.Export.Engine},
		{"CACHE_BACKEND", &c.Cache.Backend},
		{"CACHE_DIR", &c.Cache.Dir},
		{"REDIS_ADDR", &c.Cache.RedisAddr},
		{"MONGO_URI", &c.Cache.MongoURI},
	}
	for _, s := range strs {
		if v, ok := lookup(EnvPrefix + s.name); ok && v != "" {
			*s.dst = v
		}
	}
	return c.Validate()
}

// Validate checks names and values that would otherwise fail late.
func (c *Config) Validate() error {
	if _, err := export.ParseEngine(c.Export.Engine); err != nil {
		return mverrors.Wrap(mverrors.ErrCodeInvalidConfig, err, "export.engine")
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return mverrors.Wrap(mverrors.ErrCodeInvalidConfig, err, "export.format")
	}
	if !slices.Contains([]string{BackendFile, BackendRedis, BackendMongo, BackendNone}, c.Cache.Backend) {
		return mverrors.New(mverrors.ErrCodeInvalidConfig, "cache.backend: unknown backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return mverrors.New(mverrors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// FromEnv is a shorthand for Default().ApplyEnv(os.LookupEnv).
func FromEnv() (*Config, error) {
	cfg := Default()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}
