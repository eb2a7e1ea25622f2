package rules

import "errors"

var (
	// ErrEmptyKind is returned when a group is registered without a kind.
	ErrEmptyKind = errors.New("rules: group kind must not be empty")

	// ErrNilKeyGenerator is returned when a rule is registered without a
	// key generator.
	ErrNilKeyGenerator = errors.New("rules: rule has no key generator")

	// ErrUnknownAssociation marks an association the resolver cannot map to
	// an entity kind. The rule is skipped at registration time.
	ErrUnknownAssociation = errors.New("rules: unknown association")

	// ErrNoAssociationResolver is reported when an association rule is
	// registered but no resolver is configured.
	ErrNoAssociationResolver = errors.New("rules: no association resolver configured")

	// ErrPredicateNotAnswerable is reported when a named predicate is
	// evaluated against an entity that does not implement NamedPredicator.
	ErrPredicateNotAnswerable = errors.New("rules: predicate not answerable by entity")
)
