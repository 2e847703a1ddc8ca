package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// card builds a card id from its feature vector, the inverse of FeaturesOf.
func card(g Geometry, features ...int) Card {
	id := 0
	for i := len(features) - 1; i >= 0; i-- {
		id = id*g.Options + features[i]
	}
	return Card(id)
}

func TestFeaturesOfRoundTrip(t *testing.T) {
	g := ClassicGeometry()
	require.Equal(t, 81, g.DeckSize())

	for id := 0; id < g.DeckSize(); id++ {
		f := g.FeaturesOf(Card(id))
		require.Len(t, f, g.Features)
		assert.Equal(t, Card(id), card(g, f...), "feature vector should round-trip")
	}
}

func TestIsSet(t *testing.T) {
	g := ClassicGeometry()

	tests := []struct {
		name  string
		cards [][]int // feature vectors
		valid bool
	}{
		{
			name: "color same, count distinct, shape same, shading same",
			cards: [][]int{
				{0, 0, 0, 0},
				{0, 1, 0, 0},
				{0, 2, 0, 0},
			},
			valid: true,
		},
		{
			name: "all features distinct",
			cards: [][]int{
				{0, 0, 0, 0},
				{1, 1, 1, 1},
				{2, 2, 2, 2},
			},
			valid: true,
		},
		{
			name: "all features same is impossible with distinct ids, mix is fine",
			cards: [][]int{
				{0, 0, 0, 0},
				{0, 0, 1, 1},
				{0, 0, 2, 2},
			},
			valid: true,
		},
		{
			name: "exactly two equal in one feature",
			cards: [][]int{
				{0, 0, 0, 0},
				{0, 0, 1, 0},
				{1, 0, 2, 0},
			},
			valid: false,
		},
		{
			name: "two equal in the last feature only",
			cards: [][]int{
				{0, 0, 0, 0},
				{1, 1, 1, 0},
				{2, 2, 2, 1},
			},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := make([]Card, len(tt.cards))
			for i, f := range tt.cards {
				cards[i] = card(g, f...)
			}
			assert.Equal(t, tt.valid, g.IsSet(cards))
		})
	}
}

func TestIsSetWrongSize(t *testing.T) {
	g := ClassicGeometry()
	assert.False(t, g.IsSet([]Card{0, 1}))
	assert.False(t, g.IsSet([]Card{0, 1, 2, 3}))
	assert.False(t, g.IsSet(nil))
}

func TestFindSets(t *testing.T) {
	g := ClassicGeometry()

	// 0,1,2 differ only in the first feature: a set.
	cards := []Card{0, 1, 2}
	sets := g.FindSets(cards, -1)
	require.Len(t, sets, 1)
	assert.Equal(t, cards, sets[0])

	// 0,1 and 3 share first-feature values pairwise: no set.
	assert.Empty(t, g.FindSets([]Card{0, 1, 3}, -1))
}

func TestFindSetsLimit(t *testing.T) {
	g := ClassicGeometry()

	all := make([]Card, g.DeckSize())
	for i := range all {
		all[i] = Card(i)
	}

	// The full deck contains 1080 sets; a limit of 1 stops at the first.
	require.Len(t, g.FindSets(all, 1), 1)
	assert.True(t, g.HasSet(all))

	assert.Empty(t, g.FindSets(all, 0))
}

func TestHasSetTooFewCards(t *testing.T) {
	g := ClassicGeometry()
	assert.False(t, g.HasSet([]Card{0, 1}))
	assert.False(t, g.HasSet(nil))
}
