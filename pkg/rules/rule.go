package rules

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/sweep/pkg/settings"
)

// Entity is the minimal surface the engine needs from a domain object.
// Key generators receive the Entity and type-assert to their concrete type.
type Entity interface {
	// EntityKind returns the stable kind identifier, e.g. "product".
	// Owner groups are one-to-one with entity kinds.
	EntityKind() string
}

// NamedPredicator lets an entity answer conditions declared with
// [PredicateMethod]. Entities that only use [PredicateFunc] conditions do not
// need to implement it.
type NamedPredicator interface {
	EvaluatePredicate(name string) bool
}

// Event is an entity lifecycle transition.
type Event string

const (
	EventCreate  Event = "create"
	EventUpdate  Event = "update"
	EventDestroy Event = "destroy"
)

// CallbackPoint positions a rule relative to the persistence transaction.
type CallbackPoint string

const (
	PreCommit  CallbackPoint = "pre_commit"
	PostCommit CallbackPoint = "post_commit"
)

// KeyGenerator produces the cache keys to invalidate for an entity.
type KeyGenerator func(Entity) ([]string, error)

// Change describes one entity lifecycle event reported by the host ORM.
// Changed carries the names of modified attributes; it is empty for destroy
// events, which match attribute filters unconditionally.
type Change struct {
	Entity  Entity
	Changed []string
	Event   Event
}

// Rule declares which cache keys one kind of change invalidates.
// Rules are immutable once registered and evaluated in registration order;
// each matched rule fires at most one invalidation action per entity change.
type Rule struct {
	// Name identifies the rule in logs. Optional; a positional label is used
	// when empty.
	Name string

	// Association names a relation declared on the owning kind. When set,
	// the rule observes changes on the related kind and invalidates keys for
	// the owner entities resolved through a reverse lookup.
	Association string

	// WatchedAttributes filters changes by attribute name.
	// Empty means any change matches.
	WatchedAttributes []string

	// Condition gates the rule after the attribute filter passes.
	// The zero value always passes.
	Condition Predicate

	// Keys generates the cache keys for the owner entity. Required.
	Keys KeyGenerator

	// Point defaults to PostCommit.
	Point CallbackPoint

	// Events defaults to create, update and destroy.
	Events []Event

	// Overrides shadow group and global settings field by field.
	Overrides settings.Overrides
}

// MatchesEvent reports whether the rule fires for the given lifecycle event.
func (r Rule) MatchesEvent(e Event) bool {
	if len(r.Events) == 0 {
		return e == EventCreate || e == EventUpdate || e == EventDestroy
	}
	return slices.Contains(r.Events, e)
}

// MatchesPoint reports whether the rule fires at the given callback point.
func (r Rule) MatchesPoint(p CallbackPoint) bool {
	point := r.Point
	if point == "" {
		point = PostCommit
	}
	return point == p
}

// MatchesAttributes reports whether the changed attribute set intersects the
// watched set. An empty watched set matches anything. Destroy events match
// unconditionally: a destroyed entity has no changed set in the conventional
// sense.
func (r Rule) MatchesAttributes(event Event, changed []string) bool {
	if event == EventDestroy || len(r.WatchedAttributes) == 0 {
		return true
	}
	for _, attr := range changed {
		if slices.Contains(r.WatchedAttributes, attr) {
			return true
		}
	}
	return false
}

// Group declares the invalidation rules owned by one entity kind, together
// with the group-level settings layer.
type Group struct {
	// Kind is the owning entity kind and the group identifier.
	Kind string

	// Settings apply to every rule in the group unless the rule overrides
	// the field.
	Settings settings.Overrides

	// Rules fire independently, in declaration order.
	Rules []Rule
}

// Binding pairs a registered rule with its owning group. The registry indexes
// bindings under the entity kind the rule observes, which for association
// rules differs from the owning kind.
type Binding struct {
	Group string
	Rule  Rule
	Index int
}

// Label returns the rule identity used in logs.
func (b Binding) Label() string {
	if b.Rule.Name != "" {
		return b.Group + "#" + b.Rule.Name
	}
	return fmt.Sprintf("%s#rule[%d]", b.Group, b.Index)
}
