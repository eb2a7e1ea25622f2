// Package queue is the async execution backend: it inserts and executes
// cache-invalidation jobs over a Postgres-backed queue (River).
//
// The job payload is canonical and shared by every enqueue path:
//
//	{"keys": [...], "trigger": "instant" | "deferred"}
//
// Per-job behavior (queue, priority, max_attempts, scheduled_in, unique_for,
// tags) comes from the resolved job-options map and is translated into
// insert options, never into the payload.
//
// [Enqueuer] is insert-only for web processes and satisfies the engine's
// enqueuer interface; [Enqueuer.EnqueueTx] inserts within a host transaction
// so the job becomes visible only on commit. [Worker] hosts the consumers;
// run it with the same deleter configuration as the web process so chunking
// behaves identically everywhere.
//
// The queue tables are managed by River's migrator; run
// `river migrate-up --database-url $DATABASE_URL` before first use.
package queue
