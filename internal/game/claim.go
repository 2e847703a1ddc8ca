package game

// Verdict is the dealer's ruling on a claimed set.
type Verdict int

const (
	// VerdictStale means the selection changed between submission and
	// verification; the player resets with no reward or penalty.
	VerdictStale Verdict = iota

	// VerdictPoint rewards a correct set.
	VerdictPoint

	// VerdictPenalty punishes an incorrect set.
	VerdictPenalty
)

func (v Verdict) String() string {
	switch v {
	case VerdictStale:
		return "stale"
	case VerdictPoint:
		return "point"
	case VerdictPenalty:
		return "penalty"
	default:
		return "unknown"
	}
}

// claim is a player's request to have its current selection verified. It
// carries no slot copy: the dealer reads the live selection under the table
// lock at verification time. The verdict channel is buffered so the dealer
// never blocks delivering a ruling, and the player wakes exactly once.
type claim struct {
	player  int
	verdict chan Verdict
}

func newClaim(player int) *claim {
	return &claim{player: player, verdict: make(chan Verdict, 1)}
}

func (c *claim) resolve(v Verdict) {
	c.verdict <- v
}
