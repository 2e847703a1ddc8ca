package game

import (
	"context"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/settable/internal/display"
	"github.com/lox/settable/internal/table"
)

// Player is one participant's actor. It consumes slot selections from a
// single input channel (keyboard or its own generator), toggles tokens on
// the shared table, and once it holds a full selection submits a claim to
// the dealer and suspends until a verdict arrives or it is cancelled.
type Player struct {
	id      int
	human   bool
	cfg     Config
	table   *table.Table
	display display.Display
	clock   quartz.Clock
	logger  *log.Logger
	rng     *rand.Rand
	claims  chan<- *claim

	actions chan int

	mu          sync.Mutex
	score       int
	frozenUntil time.Time
}

// NewPlayer creates a player actor. Non-human players drive themselves with
// a key-press generator goroutine started by Run.
func NewPlayer(id int, human bool, cfg Config, t *table.Table, d display.Display, clock quartz.Clock, logger *log.Logger, rng *rand.Rand, claims chan<- *claim) *Player {
	return &Player{
		id:      id,
		human:   human,
		cfg:     cfg,
		table:   t,
		display: d,
		clock:   clock,
		logger:  logger.WithPrefix("player").With("id", id),
		rng:     rng,
		claims:  claims,
		actions: make(chan int, cfg.SetSize),
	}
}

// ID returns the player's id.
func (p *Player) ID() int {
	return p.id
}

// Human reports whether this player takes keyboard input.
func (p *Player) Human() bool {
	return p.human
}

// Score returns the player's current score.
func (p *Player) Score() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.score
}

// Frozen reports whether the player is inside a freeze window.
func (p *Player) Frozen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clock.Now().Before(p.frozenUntil)
}

// OnSelect feeds one slot selection into the player. It is the single entry
// point for both the human-input collaborator and the player's own
// generator. The send never blocks: presses beyond the buffered window are
// dropped, like keys mashed faster than the player can act.
func (p *Player) OnSelect(slot int) {
	if slot < 0 || slot >= p.table.Size() {
		return
	}
	select {
	case p.actions <- slot:
	default:
	}
}

// Run is the player's main loop. For automated players it also runs the
// generator goroutine; Run only returns once both have stopped, so a
// stopped player never leaves a generator behind.
func (p *Player) Run(ctx context.Context) error {
	p.logger.Debug("Starting")
	defer p.logger.Debug("Stopped")

	g, ctx := errgroup.WithContext(ctx)
	if !p.human {
		g.Go(func() error { return p.runGenerator(ctx) })
	}
	g.Go(func() error { return p.loop(ctx) })
	return g.Wait()
}

func (p *Player) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case slot := <-p.actions:
			if p.Frozen() {
				continue
			}
			p.toggle(ctx, slot)
		}
	}
}

// toggle applies one selection: a token already on the slot comes off,
// otherwise a token goes on if the player is under the limit and the slot
// holds a card. Reaching a full selection submits a claim.
func (p *Player) toggle(ctx context.Context, slot int) {
	if p.table.RemoveToken(p.id, slot) {
		return
	}
	if p.table.TokenCount(p.id) >= p.cfg.SetSize {
		return
	}
	if !p.table.PlaceToken(p.id, slot) {
		// The slot lost its card in a race with the dealer; a no-op.
		return
	}
	if p.table.TokenCount(p.id) == p.cfg.SetSize {
		p.submitClaim(ctx)
	}
}

// submitClaim hands the selection to the dealer and suspends until the
// verdict or cancellation. This is the actor's only suspension point besides
// waiting for input.
func (p *Player) submitClaim(ctx context.Context) {
	c := newClaim(p.id)
	select {
	case p.claims <- c:
	case <-ctx.Done():
		return
	}

	p.logger.Debug("Claim submitted")
	select {
	case v := <-c.verdict:
		switch v {
		case VerdictPoint:
			p.point(ctx)
		case VerdictPenalty:
			p.penalty(ctx)
		case VerdictStale:
			p.resetSelection()
		}
	case <-ctx.Done():
	}
}

// point applies the reward: score up, clear the selection, short freeze.
func (p *Player) point(ctx context.Context) {
	p.table.ClearTokens(p.id)

	p.mu.Lock()
	p.score++
	score := p.score
	p.mu.Unlock()

	p.display.SetScore(p.id, score)
	p.logger.Info("Point awarded", "score", score)
	p.freeze(ctx, p.cfg.PointFreeze)
}

// penalty clears the selection and applies the longer penalty freeze.
func (p *Player) penalty(ctx context.Context) {
	p.table.ClearTokens(p.id)
	p.logger.Info("Penalty")
	p.freeze(ctx, p.cfg.PenaltyFreeze)
}

// resetSelection is the silent outcome of a stale claim: whatever tokens
// survived the dealer's board mutation come off and the player returns to
// selecting. No score change, no freeze.
func (p *Player) resetSelection() {
	p.table.ClearTokens(p.id)
	p.logger.Debug("Stale claim, selection reset")
}

// freeze ignores input until the deadline while ticking the freeze display
// down once per second. Input arriving during the freeze is consumed and
// dropped rather than left queued, and cancellation is observed throughout.
func (p *Player) freeze(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	until := p.clock.Now().Add(d)

	p.mu.Lock()
	p.frozenUntil = until
	p.mu.Unlock()

	for {
		remaining := until.Sub(p.clock.Now())
		if remaining <= 0 {
			break
		}
		p.display.SetFreeze(p.id, remaining)

		step := time.Second
		if remaining < step {
			step = remaining
		}
		timer := p.clock.NewTimer(step)
		select {
		case <-timer.C:
		case <-p.actions:
			// dropped: frozen
			timer.Stop()
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
	p.display.SetFreeze(p.id, 0)
}

// runGenerator produces random slot picks for automated players. It idles
// while the player is frozen or already holds a full selection, and it only
// ever talks to the actor through OnSelect.
func (p *Player) runGenerator(ctx context.Context) error {
	p.logger.Debug("Generator starting")
	defer p.logger.Debug("Generator stopped")

	ticker := p.clock.NewTicker(p.cfg.AIInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if p.Frozen() || p.table.TokenCount(p.id) >= p.cfg.SetSize {
				continue
			}
			p.OnSelect(p.rng.IntN(p.table.Size()))
		}
	}
}
