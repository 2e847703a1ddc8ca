package display

import (
	"time"

	"github.com/lox/settable/internal/deck"
)

// Tee fans every notification out to multiple displays, e.g. the TUI event
// bridge plus a log trace.
func Tee(displays ...Display) Display {
	return tee(displays)
}

type tee []Display

func (t tee) PlaceCard(card deck.Card, slot int) {
	for _, d := range t {
		d.PlaceCard(card, slot)
	}
}

func (t tee) RemoveCard(slot int) {
	for _, d := range t {
		d.RemoveCard(slot)
	}
}

func (t tee) PlaceToken(player, slot int) {
	for _, d := range t {
		d.PlaceToken(player, slot)
	}
}

func (t tee) RemoveToken(player, slot int) {
	for _, d := range t {
		d.RemoveToken(player, slot)
	}
}

func (t tee) SetScore(player, score int) {
	for _, d := range t {
		d.SetScore(player, score)
	}
}

func (t tee) SetFreeze(player int, remaining time.Duration) {
	for _, d := range t {
		d.SetFreeze(player, remaining)
	}
}

func (t tee) SetCountdown(remaining time.Duration, warn bool) {
	for _, d := range t {
		d.SetCountdown(remaining, warn)
	}
}

func (t tee) AnnounceWinners(players []int) {
	for _, d := range t {
		d.AnnounceWinners(players)
	}
}
