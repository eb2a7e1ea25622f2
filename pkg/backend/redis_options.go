package backend

// redisOptions holds Redis backend configuration.
type redisOptions struct {
	prefix string
	unlink bool
}

// RedisOption configures the Redis backend.
type RedisOption func(*redisOptions)

func defaultRedisOptions() *redisOptions {
	return &redisOptions{}
}

// WithPrefix namespaces all keys as "<prefix>:<key>". Use the same prefix the
// host cache writes with.
func WithPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		o.prefix = prefix
	}
}

// WithUnlink switches bulk deletion from DEL to UNLINK, which reclaims memory
// asynchronously on the server. Prefer it for large batch sizes.
func WithUnlink() RedisOption {
	return func(o *redisOptions) {
		o.unlink = true
	}
}
