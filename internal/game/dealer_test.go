package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/settable/internal/deck"
)

func verdictOf(t *testing.T, c *claim) Verdict {
	t.Helper()
	select {
	case v := <-c.verdict:
		return v
	case <-time.After(time.Second):
		t.Fatal("claim never resolved")
		return VerdictStale
	}
}

func placeTokens(t *testing.T, h *harness, player int, slots ...int) {
	t.Helper()
	for _, slot := range slots {
		require.True(t, h.table.PlaceToken(player, slot))
	}
}

func TestVerifyAwardsPointAndConsumesSlots(t *testing.T) {
	// Cards 0, 1, 2 differ in the low feature only and form a valid set.
	h := newHarness(t, testConfig(), []deck.Card{0, 1, 2, 4, 7}, nil)
	placeTokens(t, h, 0, 0, 1, 2)

	h.dealer.reshuffleAt = h.dealer.clock.Now().Add(10 * time.Millisecond)

	c := newClaim(0)
	h.dealer.verify(c)

	require.Equal(t, VerdictPoint, verdictOf(t, c))
	for slot := 0; slot < 3; slot++ {
		assert.Equal(t, deck.NoCard, h.table.CardAt(slot))
	}
	assert.Equal(t, deck.Card(4), h.table.CardAt(3))
	assert.Equal(t, 0, h.table.TokenCount(0))

	// An accepted match restarts the countdown in full.
	assert.True(t, h.dealer.reshuffleAt.After(h.dealer.clock.Now().Add(h.cfg.TurnTimeout/2)))
}

func TestVerifyRejectsNonSet(t *testing.T) {
	// Cards 0, 1, 3: the low feature reads 0, 1, 0.
	h := newHarness(t, testConfig(), []deck.Card{0, 1, 3}, nil)
	placeTokens(t, h, 0, 0, 1, 2)

	deadline := h.dealer.clock.Now().Add(time.Hour)
	h.dealer.reshuffleAt = deadline

	c := newClaim(0)
	h.dealer.verify(c)

	require.Equal(t, VerdictPenalty, verdictOf(t, c))
	// Rejection leaves the board and the countdown alone.
	assert.Equal(t, deck.Card(0), h.table.CardAt(0))
	assert.Equal(t, deck.Card(1), h.table.CardAt(1))
	assert.Equal(t, deck.Card(3), h.table.CardAt(2))
	assert.Equal(t, deadline, h.dealer.reshuffleAt)
}

func TestVerifyStaleOnPartialSelection(t *testing.T) {
	h := newHarness(t, testConfig(), []deck.Card{0, 1, 2}, nil)
	placeTokens(t, h, 0, 0, 1)

	c := newClaim(0)
	h.dealer.verify(c)
	require.Equal(t, VerdictStale, verdictOf(t, c))
}

func TestAcceptedMatchStalesOverlappingQueuedClaim(t *testing.T) {
	// Two valid sets sharing the card on slot 2: {0,1,2} and {2,5,8}.
	h := newHarness(t, testConfig(), []deck.Card{0, 1, 2, 5, 8}, nil)
	placeTokens(t, h, 0, 0, 1, 2)
	placeTokens(t, h, 1, 2, 3, 4)

	first := newClaim(0)
	second := newClaim(1)
	h.dealer.pending = []*claim{first, second}

	c := h.dealer.nextClaim()
	require.Same(t, first, c)
	h.dealer.verify(c)

	require.Equal(t, VerdictPoint, verdictOf(t, first))
	// Player 1 lost the token on slot 2 with the card, so the queued claim
	// resolves stale without reaching verification.
	require.Equal(t, VerdictStale, verdictOf(t, second))
	assert.Empty(t, h.dealer.pending)
	assert.Equal(t, 2, h.table.TokenCount(1))
}

func TestQueuedClaimSurvivesDisjointMatch(t *testing.T) {
	// {0,1,2} and {9,12,15} share no card (9=100, 12=110, 15=120 in base 3).
	h := newHarness(t, testConfig(), []deck.Card{0, 1, 2, 9, 12, 15}, nil)
	placeTokens(t, h, 0, 0, 1, 2)
	placeTokens(t, h, 1, 3, 4, 5)

	first := newClaim(0)
	second := newClaim(1)
	h.dealer.pending = []*claim{first, second}

	h.dealer.verify(h.dealer.nextClaim())
	require.Equal(t, VerdictPoint, verdictOf(t, first))

	require.Equal(t, []*claim{second}, h.dealer.pending)
	h.dealer.verify(h.dealer.nextClaim())
	require.Equal(t, VerdictPoint, verdictOf(t, second))
}

func TestPlaceCardsFillsLowestSlotsFirst(t *testing.T) {
	cfg := testConfig()
	cfg.TableSize = 4
	h := newHarness(t, cfg, nil, []deck.Card{9, 10, 11, 12, 13})

	h.dealer.placeCardsOnTable(context.Background())

	// Draw pops the last card first.
	assert.Equal(t, deck.Card(13), h.table.CardAt(0))
	assert.Equal(t, deck.Card(12), h.table.CardAt(1))
	assert.Equal(t, deck.Card(11), h.table.CardAt(2))
	assert.Equal(t, deck.Card(10), h.table.CardAt(3))
	assert.Equal(t, 1, h.deck.Len())
}

func TestRemoveAllCardsReturnsThemAndStalesPending(t *testing.T) {
	h := newHarness(t, testConfig(), []deck.Card{0, 1, 2}, []deck.Card{40})
	placeTokens(t, h, 0, 0, 1, 2)

	queued := newClaim(0)
	h.claims <- queued

	h.dealer.removeAllCardsFromTable()

	require.Equal(t, VerdictStale, verdictOf(t, queued))
	assert.Empty(t, h.dealer.pending)
	assert.Equal(t, 4, h.deck.Len())
	assert.Empty(t, h.table.Visible())
	assert.Equal(t, 0, h.table.TokenCount(0))
}

func TestShouldFinish(t *testing.T) {
	ctx := context.Background()

	t.Run("set in deck", func(t *testing.T) {
		h := newHarness(t, testConfig(), nil, []deck.Card{0, 1, 2})
		assert.False(t, h.dealer.shouldFinish(ctx))
	})

	t.Run("no set anywhere", func(t *testing.T) {
		h := newHarness(t, testConfig(), nil, []deck.Card{0, 1, 3})
		assert.True(t, h.dealer.shouldFinish(ctx))
	})

	t.Run("set only on the board", func(t *testing.T) {
		h := newHarness(t, testConfig(), []deck.Card{0, 1, 2}, nil)
		assert.False(t, h.dealer.shouldFinish(ctx))
	})

	t.Run("board without a set, empty deck", func(t *testing.T) {
		h := newHarness(t, testConfig(), []deck.Card{0, 1, 3}, nil)
		assert.True(t, h.dealer.shouldFinish(ctx))
	})

	t.Run("cancelled", func(t *testing.T) {
		h := newHarness(t, testConfig(), nil, []deck.Card{0, 1, 2})
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		assert.True(t, h.dealer.shouldFinish(cancelled))
	})
}

func TestRunEndsWhenNoSetsRemain(t *testing.T) {
	h := newHarness(t, testConfig(), nil, []deck.Card{0, 1, 3})

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.dealer.Run(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dealer kept running with no set left in the game")
	}
	// The losing cards were never dealt.
	assert.Equal(t, 3, h.deck.Len())
}

func TestRunReshufflesOnTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.TurnTimeout = 60 * time.Millisecond
	cfg.WarnTime = 10 * time.Millisecond
	h := newHarness(t, cfg, nil, []deck.Card{0, 1, 2})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.dealer.Run(ctx)
	}()

	// The three cards get dealt, then return to the deck on every timeout.
	require.Eventually(t, func() bool { return len(h.table.Visible()) == 3 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dealer did not stop on cancellation")
	}
}

func TestWinners(t *testing.T) {
	h := newHarness(t, testConfig(), nil, nil)

	assert.Equal(t, []int{0, 1}, h.dealer.Winners())

	h.players[1].score = 2
	assert.Equal(t, []int{1}, h.dealer.Winners())

	h.players[0].score = 2
	assert.Equal(t, []int{0, 1}, h.dealer.Winners())
}
