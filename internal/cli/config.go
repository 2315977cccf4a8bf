package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/classkit/wordcloud/pkg/cloud"
	"github.com/classkit/wordcloud/pkg/errors"
)

// Backend names accepted by the serve config.
const (
	storeMemory = "memory"
	storeMongo  = "mongo"

	cacheFile  = "file"
	cacheRedis = "redis"
	cacheNone  = "none"
)

// serveConfig is the TOML configuration of the serve command.
//
// Example:
//
//	listen = ":8080"
//
//	[store]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "wordcloud"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[layout]
//	theme = "blue"
//	canvas_width = 800
type serveConfig struct {
	Listen string      `toml:"listen"`
	Store  storeConfig `toml:"store"`
	Cache  cacheConfig `toml:"cache"`

	// Layout sets the default layout options of artifact endpoints;
	// request query parameters override individual fields.
	Layout cloud.Config `toml:"layout"`
}

type storeConfig struct {
	Backend       string `toml:"backend"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

type cacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// defaultServeConfig returns the config used when no file is given:
// in-memory store, file cache, default layout.
func defaultServeConfig() serveConfig {
	return serveConfig{
		Listen: ":8080",
		Store:  storeConfig{Backend: storeMemory},
		Cache:  cacheConfig{Backend: cacheFile},
	}
}

// loadServeConfig reads the TOML config at path. An empty path returns
// the defaults; a missing file is an error.
func loadServeConfig(path string) (serveConfig, error) {
	cfg := defaultServeConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *serveConfig) validate() error {
	switch c.Store.Backend {
	case storeMemory:
	case storeMongo:
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown store backend: %q (must be memory or mongo)", c.Store.Backend)
	}

	switch c.Cache.Backend {
	case cacheFile, cacheRedis, cacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown cache backend: %q (must be file, redis, or none)", c.Cache.Backend)
	}

	if c.Layout.Theme != "" && !cloud.ValidTheme(c.Layout.Theme) {
		return errors.New(errors.ErrCodeInvalidTheme, "unknown theme: %q", c.Layout.Theme)
	}
	return nil
}
