package schedule

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RunLock suppresses duplicate scheduled fan-outs across distributor
// replicas. Billing correctness never depends on it.
type RunLock struct {
	client *redis.Client
}

func NewRunLock(client *redis.Client) *RunLock {
	return &RunLock{client: client}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse REDIS_URL")
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrapf(err, "connect to redis at %s", opt.Addr)
	}
	return client, nil
}

// Acquire sets key with SET NX. It reports false when another holder has
// it.
func (l *RunLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, key, "running", ttl).Result()
	if err != nil {
		return false, errors.Wrapf(err, "acquire %s", key)
	}
	return ok, nil
}

func (l *RunLock) Release(ctx context.Context, key string) error {
	return errors.Wrapf(l.client.Del(ctx, key).Err(), "release %s", key)
}
