// Package table implements the shared board: the bijection between slots and
// cards currently in play, plus the per-slot player tokens. It is the only
// structure mutated by more than one goroutine, so every mutating operation
// is serialized behind a single mutex covering cards and tokens together. A
// card removal and a token removal for the same slot can therefore never
// interleave incoherently.
package table

import (
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/settable/internal/deck"
	"github.com/lox/settable/internal/display"
)

// Table is the shared board. It carries no game policy: placement rules,
// verdicts and replenishment all live with the dealer and players.
type Table struct {
	geometry deck.Geometry
	size     int
	players  int
	display  display.Display
	clock    quartz.Clock
	delay    time.Duration

	mu         sync.Mutex
	slotToCard []deck.Card // NoCard when vacant
	cardToSlot []int       // -1 when off-table
	tokens     [][]bool    // [slot][player]
}

// New creates an empty board with the given capacity.
func New(g deck.Geometry, size, players int, d display.Display, clock quartz.Clock, delay time.Duration) *Table {
	t := &Table{
		geometry:   g,
		size:       size,
		players:    players,
		display:    d,
		clock:      clock,
		delay:      delay,
		slotToCard: make([]deck.Card, size),
		cardToSlot: make([]int, g.DeckSize()),
		tokens:     make([][]bool, size),
	}
	for slot := range t.slotToCard {
		t.slotToCard[slot] = deck.NoCard
		t.tokens[slot] = make([]bool, players)
	}
	for card := range t.cardToSlot {
		t.cardToSlot[card] = -1
	}
	return t
}

// Size returns the board capacity.
func (t *Table) Size() int {
	return t.size
}

// PlaceCard puts a card in a vacant slot and reports whether it was placed.
// The configured mutation delay models the latency of a physical deal and is
// paid before the lock is taken, so other actors stay unblocked.
func (t *Table) PlaceCard(card deck.Card, slot int) bool {
	t.mutationDelay()

	t.mu.Lock()
	defer t.mu.Unlock()

	if slot < 0 || slot >= t.size || t.slotToCard[slot] != deck.NoCard {
		return false
	}
	t.slotToCard[slot] = card
	t.cardToSlot[card] = slot
	t.display.PlaceCard(card, slot)
	return true
}

// RemoveCard clears an occupied slot and every token that referenced it,
// returning the removed card. Clearing tokens here is what invalidates
// in-flight selections that pointed at the consumed card. Returns NoCard if
// the slot was already vacant.
func (t *Table) RemoveCard(slot int) deck.Card {
	t.mutationDelay()

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.removeCardLocked(slot)
}

func (t *Table) removeCardLocked(slot int) deck.Card {
	if slot < 0 || slot >= t.size {
		return deck.NoCard
	}
	card := t.slotToCard[slot]
	if card == deck.NoCard {
		return deck.NoCard
	}
	t.slotToCard[slot] = deck.NoCard
	t.cardToSlot[card] = -1
	for player, has := range t.tokens[slot] {
		if has {
			t.tokens[slot][player] = false
			t.display.RemoveToken(player, slot)
		}
	}
	t.display.RemoveCard(slot)
	return card
}

// PlaceToken marks a slot as selected by a player. A token may only sit on a
// slot that currently holds a card; selecting a vacant slot is a no-op and
// reports false.
func (t *Table) PlaceToken(player, slot int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if slot < 0 || slot >= t.size || t.slotToCard[slot] == deck.NoCard {
		return false
	}
	t.tokens[slot][player] = true
	t.display.PlaceToken(player, slot)
	return true
}

// RemoveToken clears a player's token from a slot and reports whether a token
// was actually there. The player actor uses the result to decide between
// toggle-off and fresh placement.
func (t *Table) RemoveToken(player, slot int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if slot < 0 || slot >= t.size || !t.tokens[slot][player] {
		return false
	}
	t.tokens[slot][player] = false
	t.display.RemoveToken(player, slot)
	return true
}

// ClearTokens removes every token a player has on the board.
func (t *Table) ClearTokens(player int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for slot := range t.tokens {
		if t.tokens[slot][player] {
			t.tokens[slot][player] = false
			t.display.RemoveToken(player, slot)
		}
	}
}

// TokenCount returns how many tokens a player currently has placed.
func (t *Table) TokenCount(player int) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := 0
	for slot := range t.tokens {
		if t.tokens[slot][player] {
			count++
		}
	}
	return count
}

// SelectedSlots returns a player's tokened slots and the cards under them as
// one consistent snapshot. This is the dealer's verification read: taking
// both under the lock is what keeps a claim check atomic with respect to
// concurrent card removals and token toggles.
func (t *Table) SelectedSlots(player int) ([]int, []deck.Card) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var slots []int
	var cards []deck.Card
	for slot := range t.tokens {
		if t.tokens[slot][player] {
			slots = append(slots, slot)
			cards = append(cards, t.slotToCard[slot])
		}
	}
	return slots, cards
}

// AvailableSlot returns the lowest vacant slot index, or -1 when the board is
// full. Used by the dealer for its deterministic left-to-right refill.
func (t *Table) AvailableSlot() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	for slot, card := range t.slotToCard {
		if card == deck.NoCard {
			return slot
		}
	}
	return -1
}

// CountCards returns the number of occupied slots.
func (t *Table) CountCards() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := 0
	for _, card := range t.slotToCard {
		if card != deck.NoCard {
			count++
		}
	}
	return count
}

// CardAt returns the card in a slot, or NoCard.
func (t *Table) CardAt(slot int) deck.Card {
	t.mu.Lock()
	defer t.mu.Unlock()

	if slot < 0 || slot >= t.size {
		return deck.NoCard
	}
	return t.slotToCard[slot]
}

// SlotOf returns the slot holding a card, or -1.
func (t *Table) SlotOf(card deck.Card) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cardToSlot[card]
}

// Visible returns the cards currently on the board.
func (t *Table) Visible() []deck.Card {
	t.mu.Lock()
	defer t.mu.Unlock()

	var cards []deck.Card
	for _, card := range t.slotToCard {
		if card != deck.NoCard {
			cards = append(cards, card)
		}
	}
	return cards
}

func (t *Table) mutationDelay() {
	if t.delay <= 0 {
		return
	}
	timer := t.clock.NewTimer(t.delay)
	defer timer.Stop()
	<-timer.C
}
