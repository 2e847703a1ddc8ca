package deck

import (
	rand "math/rand/v2"
)

// Deck holds the cards that are not currently on the table. Draw order is
// randomised by shuffling; a draw pops the last card. The deck is owned and
// mutated by the dealer only, so it carries no locking of its own.
type Deck struct {
	geometry Geometry
	cards    []Card
	rng      *rand.Rand
}

// New creates a full deck for the geometry and shuffles it.
func New(g Geometry, rng *rand.Rand) *Deck {
	d := &Deck{
		geometry: g,
		cards:    make([]Card, 0, g.DeckSize()),
		rng:      rng,
	}
	for id := 0; id < g.DeckSize(); id++ {
		d.cards = append(d.cards, Card(id))
	}
	d.Shuffle()
	return d
}

// FromCards creates a deck holding exactly the given cards, unshuffled.
// Deterministic deals for tests and tooling.
func FromCards(g Geometry, cards []Card, rng *rand.Rand) *Deck {
	d := &Deck{
		geometry: g,
		cards:    make([]Card, len(cards)),
		rng:      rng,
	}
	copy(d.cards, cards)
	return d
}

// Shuffle randomises the order of the remaining cards.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns a random card. Returns NoCard and false when the
// deck is empty.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return NoCard, false
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// Return puts cards back into the deck. Callers shuffle afterwards when
// re-dealing.
func (d *Deck) Return(cards ...Card) {
	d.cards = append(d.cards, cards...)
}

// Len returns the number of undealt cards.
func (d *Deck) Len() int {
	return len(d.cards)
}

// IsEmpty reports whether the deck has no cards left.
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Remaining returns a copy of the undealt cards, for set searches.
func (d *Deck) Remaining() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
