package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/talenthub/talenthub-api/internal/api/handler"
	"github.com/talenthub/talenthub-api/internal/infrastructure/config"
	mongodb "github.com/talenthub/talenthub-api/internal/infrastructure/db/mongo"
	"github.com/talenthub/talenthub-api/internal/infrastructure/db/postgres"
	redisdb "github.com/talenthub/talenthub-api/internal/infrastructure/db/redis"
	"github.com/talenthub/talenthub-api/internal/infrastructure/db/store"
)

// resources are the connections opened for one command run.
type resources struct {
	store     store.Client
	pool      *pgxpool.Pool
	redis     *goredis.Client
	readiness map[string]handler.Pinger
	closers   []func()
}

func (r *resources) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

// open connects the configured record store and, when REDIS_ADDR is set,
// Redis.
func (a *app) open(ctx context.Context) (*resources, error) {
	res := &resources{readiness: map[string]handler.Pinger{}}

	switch a.cfg.StoreDriver {
	case config.DriverPostgres:
		user, password := a.cfg.StoreCredentials()
		pool, err := postgres.Connect(ctx, postgres.Config{
			URL:      a.cfg.Postgres.URL,
			User:     user,
			Password: password,
			MaxConns: a.cfg.Postgres.MaxConns,
			Timeout:  a.cfg.Postgres.ConnectTimeout,
		})
		if err != nil {
			return nil, err
		}
		res.closers = append(res.closers, pool.Close)
		res.pool = pool
		res.store = postgres.NewRecordStore(pool)

	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      a.cfg.Mongo.URI,
			Database: a.cfg.Mongo.Database,
			Username: a.cfg.Mongo.Username,
			Password: a.cfg.Mongo.Password,
		})
		if err != nil {
			return nil, err
		}
		res.closers = append(res.closers, func() { _ = client.Disconnect(context.Background()) })
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			res.Close()
			return nil, err
		}
		res.store = mongodb.NewRecordStore(db)

	case config.DriverMemory:
		a.log.Warn().Msg("Using the in-memory store; data is lost on exit")
		res.store = store.NewMemory()

	default:
		return nil, fmt.Errorf("unsupported store driver %q", a.cfg.StoreDriver)
	}
	res.readiness["store"] = res.store

	if a.cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err != nil {
			res.Close()
			return nil, err
		}
		res.closers = append(res.closers, func() { _ = rdb.Close() })
		res.redis = rdb
		res.readiness["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	a.log.Info().Str("driver", a.cfg.StoreDriver).Bool("redis", res.redis != nil).Msg("Connected")
	return res, nil
}
