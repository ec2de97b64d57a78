package store

import (
	"context"
	"fmt"
	"time"

	pkgerrors "github.com/rafaeltorres/rocketcart-backend/pkg/errors"
	"github.com/rafaeltorres/rocketcart-backend/pkg/redis"
)

type redisAPI interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CartKey(namespace, sessionID string) string
}

// Redis stores cart snapshots in redis, one key per session. Snapshots do
// not expire; the cart must survive process restarts.
type Redis struct {
	client    redisAPI
	namespace string
}

// NewRedis wires the redis-backed durable store.
func NewRedis(client redisAPI, namespace string) (*Redis, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &Redis{client: client, namespace: namespace}, nil
}

func (r *Redis) Read(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.client.CartKey(r.namespace, key))
	if redis.IsNil(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read cart snapshot")
	}
	return value, true, nil
}

func (r *Redis) Write(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.client.CartKey(r.namespace, key), value, 0); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write cart snapshot")
	}
	return nil
}
