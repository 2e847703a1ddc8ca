// Package game wires the table, players and dealer into one running game and
// owns their lifecycles. One goroutine per player (automated players get a
// second one for their key-press generator) plus the dealer; everything else
// is channels and one shared lock on the table.
package game

import (
	"context"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/settable/internal/deck"
	"github.com/lox/settable/internal/display"
	"github.com/lox/settable/internal/randutil"
	"github.com/lox/settable/internal/table"
)

// Game owns one complete game: shared table, deck, player actors and the
// dealer.
type Game struct {
	cfg     Config
	logger  *log.Logger
	clock   quartz.Clock
	table   *table.Table
	deck    *deck.Deck
	players []*Player
	dealer  *Dealer
	sup     *supervisor
}

// Options tweak construction; zero values get sensible production defaults.
type Options struct {
	// Clock defaults to the real clock.
	Clock quartz.Clock

	// Seed drives every RNG in the game; 0 picks one from the wall clock.
	Seed int64
}

// New builds a game from a validated config.
func New(cfg Config, disp display.Display, logger *log.Logger, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	clock := opts.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	seed := opts.Seed
	var rng *rand.Rand
	if seed == 0 {
		rng, seed = randutil.NewSeed()
	} else {
		rng = randutil.New(seed)
	}
	logger.Debug("Game seed", "seed", seed)

	geometry := cfg.Geometry()
	t := table.New(geometry, cfg.TableSize, cfg.Players, disp, clock, cfg.TableDelay)
	d := deck.New(geometry, rng)

	claims := make(chan *claim, cfg.Players)
	players := make([]*Player, cfg.Players)
	for id := 0; id < cfg.Players; id++ {
		human := id < cfg.HumanPlayers
		// each generator gets an independent deterministic stream
		prng := randutil.New(seed + int64(id) + 1)
		players[id] = NewPlayer(id, human, cfg, t, disp, clock, logger, prng, claims)
	}

	return &Game{
		cfg:     cfg,
		logger:  logger,
		clock:   clock,
		table:   t,
		deck:    d,
		players: players,
		dealer:  NewDealer(cfg, t, d, players, disp, clock, logger, claims),
		sup:     newSupervisor(logger),
	}, nil
}

// Player returns the actor with the given id, for wiring human input.
func (g *Game) Player(id int) *Player {
	return g.players[id]
}

// Players returns all player actors in creation order.
func (g *Game) Players() []*Player {
	return g.players
}

// Table returns the shared board.
func (g *Game) Table() *table.Table {
	return g.table
}

// Run plays the game to completion and returns the winners. Players start in
// id order; when the dealer's loop ends (no sets left, or ctx cancelled) they
// are stopped in reverse order, each fully joined before the next, and only
// then are winners computed and announced.
func (g *Game) Run(ctx context.Context) []int {
	for _, p := range g.players {
		p := p
		g.sup.Start(fmt.Sprintf("player-%d", p.ID()), p.Run)
	}

	g.dealer.Run(ctx)
	g.sup.Stop()
	return g.dealer.AnnounceWinners()
}
