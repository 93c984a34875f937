package main

import (
	"fmt"
	"os"

	"github.com/bookforge/content-cache/pkg/cache"
	"github.com/bookforge/content-cache/pkg/config"
	"github.com/bookforge/content-cache/pkg/logging"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "cachectl",
		Short:   "Inspect and maintain a content cache",
		Version: version,
	}

	root.AddCommand(
		newStatsCmd(),
		newCleanupCmd(),
		newClearCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig returns the defaults when no config file is given via flag or
// the CACHECTL_CONFIG environment variable.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		path = os.Getenv("CACHECTL_CONFIG")
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// openCache builds a cache from file configuration. A configured Redis
// address replaces the disk tier with a shared Redis-backed one.
func openCache(cfg config.Config) (*cache.Cache, error) {
	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Pretty,
	})

	cacheCfg := cache.Config{
		Dir:            cfg.Cache.Dir,
		MemoryCapacity: cfg.Cache.MemoryCapacity,
		TTL:            cfg.Cache.TTL(),
	}
	if cfg.Cache.Durability == config.DurabilityStrict {
		cacheCfg.Durability = cache.DurabilityStrict
	}
	if addr := cfg.Cache.Redis.Addr; addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr, DB: cfg.Cache.Redis.DB})
		cacheCfg.Store = cache.NewRedisStore(client, cfg.Cache.Redis.Prefix, cfg.Cache.TTL())
	}

	return cache.New(cacheCfg)
}
