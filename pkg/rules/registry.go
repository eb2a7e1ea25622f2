package rules

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/sweep/pkg/settings"
)

// AssociationResolver is the host ORM surface for association rules.
type AssociationResolver interface {
	// RelatedKind returns the entity kind reached from the owner kind
	// through the named association. An error marks the association unknown;
	// the declaring rule is then skipped permanently at registration time.
	RelatedKind(owner, association string) (string, error)

	// Parents enumerates the owner entities currently related to e through
	// the association. This is a reverse lookup from the changed entity, not
	// a forward navigation.
	Parents(ctx context.Context, owner, association string, e Entity) ([]Entity, error)
}

// Registry holds registered groups and an index of rules by the entity kind
// they observe. Registering a group again replaces its previous registration
// wholesale, so host code reloads never duplicate rules.
type Registry struct {
	mu           sync.RWMutex
	groups       map[string]Group
	bindings     map[string][]Binding
	associations AssociationResolver
	logger       *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithAssociations sets the association resolver. Without one, association
// rules are skipped at registration time.
func WithAssociations(r AssociationResolver) RegistryOption {
	return func(reg *Registry) {
		reg.associations = r
	}
}

// WithRegistryLogger sets the logger for registration diagnostics.
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(reg *Registry) {
		if l != nil {
			reg.logger = l
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	reg := &Registry{
		groups:   make(map[string]Group),
		bindings: make(map[string][]Binding),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

// Register stores a group's rules and indexes each rule under the kind it
// observes. A group Kind registered before is replaced, never appended to.
//
// A missing key generator is a configuration error and aborts the call with
// nothing changed. An unknown association is not: the rule is logged and
// skipped permanently while its siblings register normally, matching the
// recover-at-registration policy for relation errors.
func (r *Registry) Register(g Group) error {
	if g.Kind == "" {
		return ErrEmptyKind
	}
	for i, rule := range g.Rules {
		if rule.Keys == nil {
			return fmt.Errorf("%w: group %q rule %d", ErrNilKeyGenerator, g.Kind, i)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[g.Kind]; ok {
		r.dropBindingsLocked(g.Kind)
	}

	kept := make([]Rule, 0, len(g.Rules))
	for i, rule := range g.Rules {
		observed := g.Kind
		if rule.Association != "" {
			kind, err := r.relatedKind(g.Kind, rule.Association)
			if err != nil {
				r.logger.Error("association rule skipped",
					slog.String("group", g.Kind),
					slog.String("association", rule.Association),
					slog.Any("error", err))
				continue
			}
			observed = kind
		}
		r.bindings[observed] = append(r.bindings[observed], Binding{Group: g.Kind, Rule: rule, Index: i})
		kept = append(kept, rule)
	}

	g.Rules = kept
	r.groups[g.Kind] = g

	r.logger.Debug("group registered",
		slog.String("group", g.Kind),
		slog.Int("rules", len(kept)))
	return nil
}

// relatedKind resolves the observed kind for an association rule.
func (r *Registry) relatedKind(owner, association string) (string, error) {
	if r.associations == nil {
		return "", ErrNoAssociationResolver
	}
	kind, err := r.associations.RelatedKind(owner, association)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnknownAssociation, err)
	}
	return kind, nil
}

// dropBindingsLocked removes every binding owned by the group.
// Caller must hold the mutex.
func (r *Registry) dropBindingsLocked(group string) {
	for kind, bs := range r.bindings {
		filtered := bs[:0]
		for _, b := range bs {
			if b.Group != group {
				filtered = append(filtered, b)
			}
		}
		if len(filtered) == 0 {
			delete(r.bindings, kind)
			continue
		}
		r.bindings[kind] = filtered
	}
}

// BindingsFor returns the rules observing the given entity kind, in
// registration order.
func (r *Registry) BindingsFor(kind string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bs := r.bindings[kind]
	out := make([]Binding, len(bs))
	copy(out, bs)
	return out
}

// RulesFor returns the rules declared by the given group, in declaration
// order, excluding rules skipped at registration time.
func (r *Registry) RulesFor(group string) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs := r.groups[group].Rules
	out := make([]Rule, len(rs))
	copy(out, rs)
	return out
}

// GroupSettings returns the settings layer of the given group.
// An unregistered group yields the zero layer, i.e. full inheritance.
func (r *Registry) GroupSettings(group string) settings.Overrides {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.groups[group].Settings
}

// Associations returns the configured association resolver, or nil.
func (r *Registry) Associations() AssociationResolver {
	return r.associations
}
