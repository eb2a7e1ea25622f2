// Package backend provides the cache-store deletion primitives the
// invalidation engine runs against.
//
// The [Backend] interface is deliberately narrow: Delete and DeleteMulti.
// The engine never reads or writes cache values; it only removes keys, and
// removal of a missing key is a success. Two implementations ship:
//
//   - [Memory] — a mutex-guarded map for tests and single-process apps.
//   - [Redis] — variadic DEL (or UNLINK with [WithUnlink]) over a go-redis
//     client, with an optional key prefix matching the host cache.
//
// [Open] and [MustOpen] create a verified Redis client from a URL, and
// [Healthcheck] yields a readiness probe for health endpoints:
//
//	client := backend.MustOpen(ctx, os.Getenv("REDIS_URL"))
//	b := backend.NewRedis(client, backend.WithPrefix("shop"))
package backend
