package game

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/settable/internal/deck"
	"github.com/lox/settable/internal/display"
	"github.com/lox/settable/internal/randutil"
	"github.com/lox/settable/internal/table"
)

// testConfig is the classic game with timings shrunk for tests and the
// artificial table delay disabled.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.TableDelay = 0
	cfg.TurnTimeout = 5 * time.Second
	cfg.WarnTime = time.Second
	cfg.PointFreeze = 20 * time.Millisecond
	cfg.PenaltyFreeze = 50 * time.Millisecond
	cfg.AIInterval = 2 * time.Millisecond
	return cfg
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// harness wires a table, deck and claim queue for driving players and the
// dealer directly.
type harness struct {
	cfg     Config
	table   *table.Table
	deck    *deck.Deck
	claims  chan *claim
	players []*Player
	dealer  *Dealer
}

// newHarness pre-places boardCards on slots 0..n-1 and hands deckCards to
// the dealer for refills. Players take no generator (human mode) so tests
// control every selection.
func newHarness(t *testing.T, cfg Config, boardCards, deckCards []deck.Card) *harness {
	t.Helper()

	clock := quartz.NewReal()
	logger := testLogger()
	tbl := table.New(cfg.Geometry(), cfg.TableSize, cfg.Players, display.Noop{}, clock, cfg.TableDelay)
	for slot, card := range boardCards {
		require.True(t, tbl.PlaceCard(card, slot))
	}

	dk := deck.FromCards(cfg.Geometry(), deckCards, randutil.New(1))
	claims := make(chan *claim, cfg.Players)

	players := make([]*Player, cfg.Players)
	for id := range players {
		players[id] = NewPlayer(id, true, cfg, tbl, display.Noop{}, clock, logger, randutil.New(int64(id)+1), claims)
	}

	return &harness{
		cfg:     cfg,
		table:   tbl,
		deck:    dk,
		claims:  claims,
		players: players,
		dealer:  NewDealer(cfg, tbl, dk, players, display.Noop{}, clock, logger, claims),
	}
}
