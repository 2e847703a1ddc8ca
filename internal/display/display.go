// Package display defines the boundary to whatever renders the game. The
// engine fires these notifications and never consumes a return value, so
// implementations must be non-blocking and safe for concurrent use.
package display

import (
	"time"

	"github.com/lox/settable/internal/deck"
)

// Display receives state-change notifications from the table, players and
// dealer.
type Display interface {
	// PlaceCard shows a card in a slot.
	PlaceCard(card deck.Card, slot int)

	// RemoveCard clears a slot.
	RemoveCard(slot int)

	// PlaceToken shows a player's token on a slot.
	PlaceToken(player, slot int)

	// RemoveToken clears a player's token from a slot.
	RemoveToken(player, slot int)

	// SetScore updates a player's displayed score.
	SetScore(player, score int)

	// SetFreeze shows the remaining freeze time for a player; zero clears it.
	SetFreeze(player int, remaining time.Duration)

	// SetCountdown updates the round countdown. warn is set when the
	// remaining time is inside the configured warning threshold.
	SetCountdown(remaining time.Duration, warn bool)

	// AnnounceWinners reports the final winners (ties are legal).
	AnnounceWinners(players []int)
}

// Noop discards every notification. Used by tests and simulations.
type Noop struct{}

func (Noop) PlaceCard(deck.Card, int)         {}
func (Noop) RemoveCard(int)                   {}
func (Noop) PlaceToken(int, int)              {}
func (Noop) RemoveToken(int, int)             {}
func (Noop) SetScore(int, int)                {}
func (Noop) SetFreeze(int, time.Duration)     {}
func (Noop) SetCountdown(time.Duration, bool) {}
func (Noop) AnnounceWinners([]int)            {}
