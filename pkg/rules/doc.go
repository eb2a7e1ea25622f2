// Package rules defines the invalidation rule model and the registry that
// owner groups register into.
//
// A [Group] is declared by one entity kind and carries an ordered list of
// [Rule] values. Each rule names the attributes it watches, an optional
// condition ([Predicate]), a key generator, the lifecycle events and callback
// point it fires at, and optional settings overrides.
//
// Groups call [Registry.Register] explicitly at their own definition time;
// there is no runtime discovery of declaring types. Re-registering a kind
// replaces its previous rules, so code reloads never accumulate duplicates.
//
// Association rules observe a related entity kind instead of the owner:
// the registry resolves the observed kind through an [AssociationResolver]
// once at registration time, and the listener later resolves the affected
// owner entities per event through a reverse lookup. An association the
// resolver does not know is logged once and the rule is skipped permanently.
package rules
