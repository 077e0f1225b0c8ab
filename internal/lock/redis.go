package lock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ImpressionsBot/internal/lib/sl"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	keyPrefix     = "impressions:conversation:lock:"
	retryInterval = 50 * time.Millisecond
	unlockTimeout = 5 * time.Second
	defaultTTL    = 30 * time.Second
)

// Client is the part of the Redis client the locker needs.
type Client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
	EvalSha(ctx context.Context, sha1 string, keys []string, args ...interface{}) *redis.Cmd
	ScriptExists(ctx context.Context, hashes ...string) *redis.BoolSliceCmd
	ScriptLoad(ctx context.Context, script string) *redis.StringCmd
}

var luaUnlock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end`)

var luaRenew = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
else
	return 0
end`)

// RedisLocker serializes conversation cycles of a chat across bot replicas.
// A held lock is extended every third of the TTL until released, so the TTL
// only frees locks of a replica that died mid-cycle.
type RedisLocker struct {
	cli Client
	ttl time.Duration
	log *slog.Logger
}

func NewRedisLocker(cli Client, ttl time.Duration, log *slog.Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisLocker{
		cli: cli,
		ttl: ttl,
		log: log.With(sl.Module("redis-lock")),
	}
}

func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return c, nil
}

// Lock waits until the chat lock is taken or ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, chatID int64) (func(), error) {
	key := fmt.Sprintf("%s%d", keyPrefix, chatID)
	token := uuid.NewString()

	for {
		ok, err := l.cli.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis lock chat %d: %w", chatID, err)
		}
		if ok {
			stop := make(chan struct{})
			go l.keepAlive(key, token, stop)

			var once sync.Once
			return func() {
				once.Do(func() {
					close(stop)
					l.unlock(key, token)
				})
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("redis lock chat %d: %w", chatID, ctx.Err())
		case <-time.After(retryInterval):
		}
	}
}

// keepAlive extends the lock while its owner still holds it.
func (l *RedisLocker) keepAlive(key, token string, stop <-chan struct{}) {
	ticker := time.NewTicker(l.ttl / 3)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), unlockTimeout)
		n, err := luaRenew.Run(ctx, l.cli, []string{key}, token, l.ttl.Milliseconds()).Int64()
		cancel()
		if err != nil {
			l.log.With(slog.String("key", key)).Warn("extending lock", sl.Err(err))
			continue
		}
		if n == 0 {
			l.log.With(slog.String("key", key)).Warn("lock lost before release")
			return
		}
	}
}

func (l *RedisLocker) unlock(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), unlockTimeout)
	defer cancel()

	if _, err := luaUnlock.Run(ctx, l.cli, []string{key}, token).Result(); err != nil {
		l.log.With(slog.String("key", key)).Error("releasing lock", sl.Err(err))
	}
}
