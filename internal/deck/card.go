package deck

import (
	"fmt"
	"strings"
)

// Card identifies a single card. The id encodes the card's feature vector as
// base-Options digits over Features positions; the engine never interprets
// individual features beyond equality.
type Card int

// NoCard is the sentinel for an empty slot or a failed draw.
const NoCard Card = -1

// Geometry describes the card space and the match rule: how many feature
// positions a card has, how many options each feature can take, and how many
// cards make a set. The classic game is 4 features of 3 options with sets of
// 3, an 81 card deck.
type Geometry struct {
	Features int
	Options  int
	SetSize  int
}

// ClassicGeometry is the standard 81-card game.
func ClassicGeometry() Geometry {
	return Geometry{Features: 4, Options: 3, SetSize: 3}
}

// DeckSize returns the number of distinct cards, Options^Features.
func (g Geometry) DeckSize() int {
	size := 1
	for i := 0; i < g.Features; i++ {
		size *= g.Options
	}
	return size
}

// FeaturesOf decodes a card id into its feature vector.
func (g Geometry) FeaturesOf(c Card) []int {
	features := make([]int, g.Features)
	v := int(c)
	for i := 0; i < g.Features; i++ {
		features[i] = v % g.Options
		v /= g.Options
	}
	return features
}

// String renders a card with its feature vector, e.g. "27[0 0 0 1]".
func (g Geometry) String(c Card) string {
	if c == NoCard {
		return "none"
	}
	parts := make([]string, g.Features)
	for i, f := range g.FeaturesOf(c) {
		parts[i] = fmt.Sprintf("%d", f)
	}
	return fmt.Sprintf("%d[%s]", int(c), strings.Join(parts, " "))
}
