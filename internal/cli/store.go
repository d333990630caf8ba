package cli

import (
	"fmt"

	"github.com/aretw0/automata/internal/adapters/file"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/ports"
)

// OpenStore builds the report store selected by cfg. The returned close
// function is always safe to call.
func OpenStore(cfg config.Config) (ports.ReportStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Kind {
	case config.StoreMemory:
		return memory.NewStore(), noop, nil
	case config.StoreFile:
		return file.New(cfg.Store.Path), noop, nil
	case config.StoreRedis:
		opts := []redis.Option{redis.WithPrefix(cfg.Redis.Prefix)}
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.Redis.TTL))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		return store, store.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown store kind %q", cfg.Store.Kind)
}
