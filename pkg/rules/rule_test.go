package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sweep/pkg/rules"
)

type product struct {
	id       int
	featured bool
}

func (p *product) EntityKind() string { return "product" }

func (p *product) EvaluatePredicate(name string) bool {
	if name == "featured" {
		return p.featured
	}
	return false
}

// bareEntity has no named predicates.
type bareEntity struct{}

func (bareEntity) EntityKind() string { return "bare" }

func TestMatchesEvent(t *testing.T) {
	t.Parallel()

	t.Run("empty events match all", func(t *testing.T) {
		t.Parallel()

		r := rules.Rule{}
		assert.True(t, r.MatchesEvent(rules.EventCreate))
		assert.True(t, r.MatchesEvent(rules.EventUpdate))
		assert.True(t, r.MatchesEvent(rules.EventDestroy))
	})

	t.Run("explicit events filter", func(t *testing.T) {
		t.Parallel()

		r := rules.Rule{Events: []rules.Event{rules.EventDestroy}}
		assert.False(t, r.MatchesEvent(rules.EventUpdate))
		assert.True(t, r.MatchesEvent(rules.EventDestroy))
	})
}

func TestMatchesPoint(t *testing.T) {
	t.Parallel()

	t.Run("defaults to post commit", func(t *testing.T) {
		t.Parallel()

		r := rules.Rule{}
		assert.True(t, r.MatchesPoint(rules.PostCommit))
		assert.False(t, r.MatchesPoint(rules.PreCommit))
	})

	t.Run("explicit point", func(t *testing.T) {
		t.Parallel()

		r := rules.Rule{Point: rules.PreCommit}
		assert.True(t, r.MatchesPoint(rules.PreCommit))
		assert.False(t, r.MatchesPoint(rules.PostCommit))
	})
}

func TestMatchesAttributes(t *testing.T) {
	t.Parallel()

	t.Run("empty watched set matches anything", func(t *testing.T) {
		t.Parallel()

		r := rules.Rule{}
		assert.True(t, r.MatchesAttributes(rules.EventUpdate, []string{"name"}))
		assert.True(t, r.MatchesAttributes(rules.EventUpdate, nil))
	})

	t.Run("intersection required", func(t *testing.T) {
		t.Parallel()

		r := rules.Rule{WatchedAttributes: []string{"price", "currency"}}
		assert.True(t, r.MatchesAttributes(rules.EventUpdate, []string{"name", "price"}))
		assert.False(t, r.MatchesAttributes(rules.EventUpdate, []string{"name"}))
		assert.False(t, r.MatchesAttributes(rules.EventUpdate, nil))
	})

	t.Run("destroy bypasses the filter", func(t *testing.T) {
		t.Parallel()

		r := rules.Rule{WatchedAttributes: []string{"price"}}
		assert.True(t, r.MatchesAttributes(rules.EventDestroy, nil))
	})
}

func TestPredicate(t *testing.T) {
	t.Parallel()

	t.Run("zero value always passes", func(t *testing.T) {
		t.Parallel()

		var p rules.Predicate
		assert.True(t, p.IsZero())

		ok, err := p.Evaluate(&product{})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("bound function", func(t *testing.T) {
		t.Parallel()

		p := rules.PredicateFunc(func(e rules.Entity) bool {
			return e.(*product).featured
		})
		assert.False(t, p.IsZero())

		ok, err := p.Evaluate(&product{featured: true})
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = p.Evaluate(&product{featured: false})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("named predicate", func(t *testing.T) {
		t.Parallel()

		p := rules.PredicateMethod("featured")

		ok, err := p.Evaluate(&product{featured: true})
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = p.Evaluate(&product{featured: false})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("named predicate on incapable entity", func(t *testing.T) {
		t.Parallel()

		p := rules.PredicateMethod("featured")
		_, err := p.Evaluate(bareEntity{})
		require.ErrorIs(t, err, rules.ErrPredicateNotAnswerable)
	})
}

func TestBindingLabel(t *testing.T) {
	t.Parallel()

	named := rules.Binding{Group: "product", Rule: rules.Rule{Name: "pricing"}, Index: 2}
	assert.Equal(t, "product#pricing", named.Label())

	anon := rules.Binding{Group: "product", Index: 2}
	assert.Equal(t, "product#rule[2]", anon.Label())
}
