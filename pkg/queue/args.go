package queue

// invalidationArgs is the canonical invalidation job payload: the keys to
// delete and the trigger path that enqueued them. Both enqueue paths (the
// instant dispatcher and the buffered flush) use this exact shape; per-job
// options travel as insert options, never inside the payload.
type invalidationArgs struct {
	Keys    []string `json:"keys"`
	Trigger string   `json:"trigger"`
}

// Kind identifies the job type in the queue.
func (invalidationArgs) Kind() string { return "cache_invalidation" }
