package rules

import "fmt"

// Predicate gates a rule against the changed entity. It is a tagged variant:
// either a bound Go function or a named predicate answered by the entity
// through [NamedPredicator]. The zero value always passes.
type Predicate struct {
	fn   func(Entity) bool
	name string
}

// PredicateFunc wraps a bound predicate function.
func PredicateFunc(fn func(Entity) bool) Predicate {
	return Predicate{fn: fn}
}

// PredicateMethod references a predicate by name. At evaluation time the
// entity must implement [NamedPredicator]; otherwise the rule does not fire
// and a warning is logged by the listener.
func PredicateMethod(name string) Predicate {
	return Predicate{name: name}
}

// IsZero reports whether no condition was declared.
func (p Predicate) IsZero() bool {
	return p.fn == nil && p.name == ""
}

// Evaluate reports whether the rule should fire for e. A named predicate on
// an entity that does not implement NamedPredicator returns an error; the
// caller logs it and treats the rule as not matching.
func (p Predicate) Evaluate(e Entity) (bool, error) {
	switch {
	case p.fn != nil:
		return p.fn(e), nil
	case p.name != "":
		np, ok := e.(NamedPredicator)
		if !ok {
			return false, fmt.Errorf("%w: %q on kind %q", ErrPredicateNotAnswerable, p.name, e.EntityKind())
		}
		return np.EvaluatePredicate(p.name), nil
	default:
		return true, nil
	}
}

// String returns a short description for logs.
func (p Predicate) String() string {
	switch {
	case p.fn != nil:
		return "func"
	case p.name != "":
		return "method:" + p.name
	default:
		return "none"
	}
}
