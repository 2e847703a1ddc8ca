package display

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/settable/internal/deck"
)

// LogSink renders display notifications as structured log lines. It is the
// default display for headless runs, and doubles as a trace of everything the
// players would have seen.
type LogSink struct {
	geometry deck.Geometry
	logger   *log.Logger

	mu         sync.Mutex
	lastSecond int64
}

// NewLogSink creates a log-backed display.
func NewLogSink(g deck.Geometry, logger *log.Logger) *LogSink {
	return &LogSink{geometry: g, logger: logger.WithPrefix("display")}
}

func (s *LogSink) PlaceCard(card deck.Card, slot int) {
	s.logger.Debug("Card placed", "slot", slot, "card", s.geometry.String(card))
}

func (s *LogSink) RemoveCard(slot int) {
	s.logger.Debug("Card removed", "slot", slot)
}

func (s *LogSink) PlaceToken(player, slot int) {
	s.logger.Debug("Token placed", "player", player, "slot", slot)
}

func (s *LogSink) RemoveToken(player, slot int) {
	s.logger.Debug("Token removed", "player", player, "slot", slot)
}

func (s *LogSink) SetScore(player, score int) {
	s.logger.Info("Score", "player", player, "score", score)
}

func (s *LogSink) SetFreeze(player int, remaining time.Duration) {
	if remaining <= 0 {
		s.logger.Debug("Freeze cleared", "player", player)
		return
	}
	s.logger.Debug("Freeze", "player", player, "remaining", remaining)
}

func (s *LogSink) SetCountdown(remaining time.Duration, warn bool) {
	// The dealer refreshes every few milliseconds; only log second transitions.
	second := int64(remaining / time.Second)
	s.mu.Lock()
	changed := second != s.lastSecond
	s.lastSecond = second
	s.mu.Unlock()
	if changed {
		s.logger.Debug("Countdown", "remaining", remaining.Truncate(time.Second), "warn", warn)
	}
}

func (s *LogSink) AnnounceWinners(players []int) {
	s.logger.Info("Winners", "players", players)
}
