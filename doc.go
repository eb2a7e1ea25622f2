// Package sweep is a rule-driven cache invalidation engine.
//
// Applications declare, next to each entity kind, which cache keys a change
// to that entity invalidates. The engine listens for entity lifecycle events,
// matches them against registered rules, and deletes the affected keys from
// the cache backend either immediately or at the end of the request, either
// inline or through a background job queue.
//
// The root package is a facade over the building blocks in pkg/:
//
//   - pkg/settings: global defaults and the three-level option resolver
//   - pkg/rules: rule declarations and the group registry
//   - pkg/backend: cache-store deletion (Redis, in-memory)
//   - pkg/invalidator: dispatcher, request scope, batch deleter, listener
//   - pkg/queue: River-backed async execution
//
// Minimal usage:
//
//	engine, err := sweep.New(backend.NewRedis(client))
//	engine.Register(sweep.Group{
//	    Kind: "product",
//	    Rules: []sweep.Rule{{
//	        Name:              "pricing",
//	        WatchedAttributes: []string{"price"},
//	        Keys: func(e sweep.Entity) ([]string, error) {
//	            p := e.(*Product)
//	            return []string{fmt.Sprintf("pricing/%d", p.ID)}, nil
//	        },
//	    }},
//	})
//
//	// from the ORM hook:
//	engine.Notify(ctx, sweep.PostCommit, sweep.Change{
//	    Entity:  product,
//	    Changed: []string{"price"},
//	    Event:   sweep.EventUpdate,
//	})
//
// Invalidation is best-effort. Failures are logged and never propagate to
// the caller, so a broken cache backend cannot break the host transaction.
package sweep
