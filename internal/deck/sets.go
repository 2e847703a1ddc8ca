package deck

// IsSet reports whether the cards form a legal set: for every feature
// position, the values must be either all equal or all pairwise distinct.
// Any other pattern (e.g. exactly two equal) is not a set. The number of
// cards must equal the geometry's SetSize.
func (g Geometry) IsSet(cards []Card) bool {
	if len(cards) != g.SetSize {
		return false
	}

	vectors := make([][]int, len(cards))
	for i, c := range cards {
		vectors[i] = g.FeaturesOf(c)
	}

	for f := 0; f < g.Features; f++ {
		seen := make(map[int]int, len(cards))
		for _, vec := range vectors {
			seen[vec[f]]++
		}
		allSame := len(seen) == 1
		allDistinct := len(seen) == len(cards)
		if !allSame && !allDistinct {
			return false
		}
	}
	return true
}

// FindSets returns up to limit legal sets among the given cards. A limit of 1
// is the cheap "does any set exist" query the dealer uses for game-over
// detection; a negative limit returns every set (used for hints).
func (g Geometry) FindSets(cards []Card, limit int) [][]Card {
	if limit == 0 {
		return nil
	}

	var found [][]Card
	combo := make([]Card, g.SetSize)

	var search func(start, depth int) bool
	search = func(start, depth int) bool {
		if depth == g.SetSize {
			if g.IsSet(combo) {
				set := make([]Card, g.SetSize)
				copy(set, combo)
				found = append(found, set)
				return limit > 0 && len(found) >= limit
			}
			return false
		}
		for i := start; i < len(cards); i++ {
			combo[depth] = cards[i]
			if search(i+1, depth+1) {
				return true
			}
		}
		return false
	}

	search(0, 0)
	return found
}

// HasSet reports whether any legal set exists among the given cards.
func (g Geometry) HasSet(cards []Card) bool {
	return len(g.FindSets(cards, 1)) > 0
}
