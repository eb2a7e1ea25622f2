package backend

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Redis implements [Backend] over a go-redis universal client.
// The client should be obtained from [Open] or [MustOpen], or shared with the
// host application's cache client.
type Redis struct {
	client redis.UniversalClient
	opts   *redisOptions
}

// NewRedis creates a Redis-backed deletion backend.
//
// Example:
//
//	client := backend.MustOpen(ctx, os.Getenv("REDIS_URL"))
//	b := backend.NewRedis(client,
//	    backend.WithPrefix("myapp"),
//	    backend.WithUnlink(),
//	)
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	o := defaultRedisOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Redis{client: client, opts: o}
}

// Delete removes a single key. Deleting a missing key succeeds.
func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.DeleteMulti(ctx, []string{key})
}

// DeleteMulti removes the given keys in one variadic DEL (or UNLINK, see
// WithUnlink) call. This is the bulk-delete primitive the batch deleter
// chunks onto; it never splits the key set further.
func (r *Redis) DeleteMulti(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := keys
	if r.opts.prefix != "" {
		prefixed = make([]string, len(keys))
		for i, key := range keys {
			prefixed[i] = r.opts.prefix + ":" + key
		}
	}

	if r.opts.unlink {
		return r.client.Unlink(ctx, prefixed...).Err()
	}
	return r.client.Del(ctx, prefixed...).Err()
}

var _ Backend = (*Redis)(nil)
