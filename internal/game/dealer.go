package game

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/settable/internal/deck"
	"github.com/lox/settable/internal/display"
	"github.com/lox/settable/internal/table"
)

// wakeInterval is the dealer's bounded wait between countdown ticks. It is
// coarser than any display refresh needs to be, and short enough that claim
// arrival and cancellation are never missed for long.
const wakeInterval = 10 * time.Millisecond

// Dealer owns the deck and the round countdown, and is the sole verifier of
// claims. It drains claims strictly oldest-first, verifies at most one per
// wake cycle, and is the only goroutine that places or removes cards while
// the game runs.
type Dealer struct {
	cfg      Config
	geometry deck.Geometry
	table    *table.Table
	deck     *deck.Deck
	players  []*Player
	display  display.Display
	clock    quartz.Clock
	logger   *log.Logger

	claims  chan *claim
	pending []*claim // submission order, oldest first

	reshuffleAt time.Time
}

// NewDealer creates the dealer for a set of players sharing a table.
func NewDealer(cfg Config, t *table.Table, d *deck.Deck, players []*Player, disp display.Display, clock quartz.Clock, logger *log.Logger, claims chan *claim) *Dealer {
	return &Dealer{
		cfg:      cfg,
		geometry: cfg.Geometry(),
		table:    t,
		deck:     d,
		players:  players,
		display:  disp,
		clock:    clock,
		logger:   logger.WithPrefix("dealer"),
		claims:   claims,
	}
}

// Run is the dealer's main loop: deal, count down, reshuffle, until no set
// remains anywhere or the context is cancelled. It returns without touching
// the players; the caller sequences their shutdown before winners are
// announced.
func (d *Dealer) Run(ctx context.Context) {
	d.logger.Debug("Starting")
	defer d.logger.Debug("Stopped")

	for !d.shouldFinish(ctx) {
		d.placeCardsOnTable(ctx)
		d.resetDeadline()
		d.countdownLoop(ctx)
		d.removeAllCardsFromTable()
	}
}

// shouldFinish is the authoritative end condition: external cancellation, or
// no legal set left among the undealt deck and the visible board combined.
// At the loop head the board has just been cleared, so the search covers
// every card still in the game.
func (d *Dealer) shouldFinish(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	remaining := append(d.deck.Remaining(), d.table.Visible()...)
	return !d.geometry.HasSet(remaining)
}

// countdownLoop runs one round: wait briefly for a claim or the next tick,
// refresh the countdown, verify at most one claim, replenish. Repeats until
// the reshuffle deadline elapses or the game is cancelled.
func (d *Dealer) countdownLoop(ctx context.Context) {
	for ctx.Err() == nil && d.clock.Now().Before(d.reshuffleAt) {
		d.sleepUntilWokenOrTimeout(ctx)
		d.updateCountdown()
		if c := d.nextClaim(); c != nil {
			d.verify(c)
			d.placeCardsOnTable(ctx)
		}
	}
}

// sleepUntilWokenOrTimeout blocks for at most wakeInterval, woken early by a
// claim arriving or by cancellation. Any further queued claims are drained
// without blocking so FIFO order is preserved in d.pending.
func (d *Dealer) sleepUntilWokenOrTimeout(ctx context.Context) {
	timer := d.clock.NewTimer(wakeInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case c := <-d.claims:
		d.pending = append(d.pending, c)
	case <-timer.C:
		// spurious or plain tick; nothing to do
	}

	for {
		select {
		case c := <-d.claims:
			d.pending = append(d.pending, c)
		default:
			return
		}
	}
}

func (d *Dealer) nextClaim() *claim {
	if len(d.pending) == 0 {
		return nil
	}
	c := d.pending[0]
	d.pending = d.pending[1:]
	return c
}

// verify rules on a single claim against the live board state. The selection
// is read atomically with its cards under the table lock; anything short of
// a full selection means another accepted claim already consumed a slot, and
// the verdict is stale.
func (d *Dealer) verify(c *claim) {
	slots, cards := d.table.SelectedSlots(c.player)
	if len(slots) != d.cfg.SetSize {
		d.logger.Debug("Stale claim", "player", c.player, "tokens", len(slots))
		c.resolve(VerdictStale)
		return
	}
	for _, card := range cards {
		if card == deck.NoCard {
			c.resolve(VerdictStale)
			return
		}
	}

	if !d.geometry.IsSet(cards) {
		d.logger.Info("Claim rejected", "player", c.player, "slots", slots)
		c.resolve(VerdictPenalty)
		return
	}

	d.logger.Info("Set claimed", "player", c.player, "slots", slots)
	c.resolve(VerdictPoint)

	// Consume the matched slots. RemoveCard clears every token on them,
	// which is what invalidates other players' in-flight selections.
	for _, slot := range slots {
		d.table.RemoveCard(slot)
	}
	d.resetDeadline()
	d.resolveStalePending()
}

// resolveStalePending cancels queued claims whose selection no longer holds
// a full set of tokens after an accepted match consumed their slots.
func (d *Dealer) resolveStalePending() {
	kept := d.pending[:0]
	for _, c := range d.pending {
		if d.table.TokenCount(c.player) != d.cfg.SetSize {
			d.logger.Debug("Cancelling stale queued claim", "player", c.player)
			c.resolve(VerdictStale)
			continue
		}
		kept = append(kept, c)
	}
	d.pending = kept
}

// placeCardsOnTable refills vacant slots from the deck, lowest slot first,
// while capacity and supply allow.
func (d *Dealer) placeCardsOnTable(ctx context.Context) {
	placed := 0
	for ctx.Err() == nil {
		slot := d.table.AvailableSlot()
		if slot == -1 {
			break
		}
		card, ok := d.deck.Draw()
		if !ok {
			break
		}
		if !d.table.PlaceCard(card, slot) {
			// Slot filled between the lookup and the placement; only the
			// dealer deals, so this cannot happen while the game runs.
			d.deck.Return(card)
			break
		}
		placed++
	}
	if placed > 0 && d.cfg.Hints {
		d.logHints()
	}
}

// removeAllCardsFromTable is the reshuffle: every card returns to the deck,
// every token goes with its card, every still-pending claim resolves stale,
// and the deck is shuffled for the next deal.
func (d *Dealer) removeAllCardsFromTable() {
	for slot := 0; slot < d.table.Size(); slot++ {
		if card := d.table.RemoveCard(slot); card != deck.NoCard {
			d.deck.Return(card)
		}
	}

	d.drainClaims()
	for _, c := range d.pending {
		c.resolve(VerdictStale)
	}
	d.pending = nil

	d.deck.Shuffle()
	d.logger.Debug("Board cleared", "deck", d.deck.Len())
}

func (d *Dealer) drainClaims() {
	for {
		select {
		case c := <-d.claims:
			d.pending = append(d.pending, c)
		default:
			return
		}
	}
}

// resetDeadline gives the round a full fresh countdown.
func (d *Dealer) resetDeadline() {
	d.reshuffleAt = d.clock.Now().Add(d.cfg.TurnTimeout)
	d.updateCountdown()
}

func (d *Dealer) updateCountdown() {
	remaining := d.reshuffleAt.Sub(d.clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	d.display.SetCountdown(remaining, remaining <= d.cfg.WarnTime)
}

// logHints prints every legal set currently visible, behind the hints
// config flag.
func (d *Dealer) logHints() {
	for _, set := range d.geometry.FindSets(d.table.Visible(), -1) {
		slots := make([]int, len(set))
		names := make([]string, len(set))
		for i, card := range set {
			slots[i] = d.table.SlotOf(card)
			names[i] = d.geometry.String(card)
		}
		d.logger.Info("Hint: set on table", "slots", slots, "cards", names)
	}
}

// Winners returns every player tied at the maximum score.
func (d *Dealer) Winners() []int {
	best := 0
	for _, p := range d.players {
		if s := p.Score(); s > best {
			best = s
		}
	}
	var winners []int
	for _, p := range d.players {
		if p.Score() == best {
			winners = append(winners, p.ID())
		}
	}
	return winners
}

// AnnounceWinners computes and reports the winners. Called once, after every
// player has fully stopped.
func (d *Dealer) AnnounceWinners() []int {
	winners := d.Winners()
	scores := make([]int, len(d.players))
	for i, p := range d.players {
		scores[i] = p.Score()
	}
	d.logger.Info("Game over", "winners", winners, "scores", scores)
	d.display.AnnounceWinners(winners)
	return winners
}
