package display

import (
	"time"

	"github.com/lox/settable/internal/deck"
)

// Event is a display notification in value form, consumed by the TUI.
type Event interface{ displayEvent() }

type CardPlaced struct {
	Card deck.Card
	Slot int
}

type CardRemoved struct {
	Slot int
}

type TokenPlaced struct {
	Player, Slot int
}

type TokenRemoved struct {
	Player, Slot int
}

type ScoreChanged struct {
	Player, Score int
}

type FreezeChanged struct {
	Player    int
	Remaining time.Duration
}

type CountdownTick struct {
	Remaining time.Duration
	Warn      bool
}

type WinnersAnnounced struct {
	Players []int
}

func (CardPlaced) displayEvent()       {}
func (CardRemoved) displayEvent()      {}
func (TokenPlaced) displayEvent()      {}
func (TokenRemoved) displayEvent()     {}
func (ScoreChanged) displayEvent()     {}
func (FreezeChanged) displayEvent()    {}
func (CountdownTick) displayEvent()    {}
func (WinnersAnnounced) displayEvent() {}

// Events turns display calls into a channel of Event values. Sends never
// block: when the consumer falls behind, events are dropped rather than
// stalling the game goroutines. The TUI re-reads absolute state from each
// event, so a dropped countdown tick or token flicker is harmless.
type Events struct {
	ch chan Event
}

// NewEvents creates an event fanout with the given buffer size.
func NewEvents(buffer int) *Events {
	return &Events{ch: make(chan Event, buffer)}
}

// C returns the event channel.
func (e *Events) C() <-chan Event {
	return e.ch
}

func (e *Events) send(ev Event) {
	select {
	case e.ch <- ev:
	default:
	}
}

func (e *Events) PlaceCard(card deck.Card, slot int) { e.send(CardPlaced{Card: card, Slot: slot}) }
func (e *Events) RemoveCard(slot int)                { e.send(CardRemoved{Slot: slot}) }
func (e *Events) PlaceToken(player, slot int)        { e.send(TokenPlaced{Player: player, Slot: slot}) }
func (e *Events) RemoveToken(player, slot int)       { e.send(TokenRemoved{Player: player, Slot: slot}) }
func (e *Events) SetScore(player, score int)         { e.send(ScoreChanged{Player: player, Score: score}) }

func (e *Events) SetFreeze(player int, remaining time.Duration) {
	e.send(FreezeChanged{Player: player, Remaining: remaining})
}

func (e *Events) SetCountdown(remaining time.Duration, warn bool) {
	e.send(CountdownTick{Remaining: remaining, Warn: warn})
}

func (e *Events) AnnounceWinners(players []int) {
	e.send(WinnersAnnounced{Players: players})
}
