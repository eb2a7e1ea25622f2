// Package invalidator implements the invalidation pipeline: the change
// listener, the dispatcher, the request-scoped buffer and the batch deleter.
//
// # Flow
//
// The host ORM reports a change through [Listener.Notify]. The listener
// matches rules by observed kind, applies the attribute filter and the
// condition, resolves association targets, generates keys and hands them to
// [Dispatcher.Invalidate]. The dispatcher resolves the effective settings
// and either deletes now ([Deleter]), enqueues now ([Enqueuer]), or buffers
// a [BatchEntry] in the request [Scope]. [Dispatcher.Flush] drains the scope
// at end of request.
//
// # Failure policy
//
// Everything downstream of the host's write is best-effort. Key-generation
// errors skip one rule, chunk failures lose one chunk, enqueue failures lose
// one job; all are logged with context and none propagate. The scope is
// cleared on flush regardless of outcome so keys never leak across requests.
package invalidator
