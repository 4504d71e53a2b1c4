package poker

// PreflopStrength scores a two-card holding on a 0-100 scale. It is a
// range-shaping heuristic, not an equity calculation: high cards, pairs,
// suitedness and connectivity push the score up, wide gaps pull it down.
func PreflopStrength(a, b Card) float64 {
	high, low := int(a.Rank), int(b.Rank)
	if low > high {
		high, low = low, high
	}
	suited := a.Suit == b.Suit

	score := float64(high)*3.0 + float64(low)*2.0
	if a.Rank == b.Rank {
		score += 24.0 + float64(a.Rank)*1.5
	}
	if suited {
		score += 4.0
	}
	gap := high - low
	switch {
	case gap == 1:
		score += 4.0
	case gap == 2:
		score += 2.0
	case gap >= 4:
		score -= 2.0
	}
	if high >= int(Jack) {
		score += 2.0
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// BoardTexture scores how coordinated a board is; higher means wetter.
// Flush draws, connectivity and pairing each contribute.
func BoardTexture(board []Card) float64 {
	if len(board) < 3 {
		return 0
	}
	ranks := make([]int, 0, len(board))
	suitCounts := map[Suit]int{}
	seen := map[int]bool{}
	paired := false
	for _, c := range board {
		r := int(c.Rank)
		if seen[r] {
			paired = true
		}
		seen[r] = true
		ranks = append(ranks, r)
		suitCounts[c.Suit]++
	}
	sortDesc(ranks)

	maxSuit := 0
	for _, n := range suitCounts {
		if n > maxSuit {
			maxSuit = n
		}
	}
	connected := 0
	for i := 1; i < len(ranks); i++ {
		if ranks[i-1]-ranks[i] <= 2 {
			connected++
		}
	}
	texture := 0.9 * float64(maxInt(0, maxSuit-2))
	texture += 0.6 * float64(connected)
	if paired {
		texture += 0.8
	}
	return texture
}

// MadeHandScore normalizes the current made-hand category to roughly [0, 1.3].
func MadeHandScore(hole, board []Card) float64 {
	if len(board) < 3 {
		return 0
	}
	cards := make([]Card, 0, len(hole)+len(board))
	cards = append(cards, hole...)
	cards = append(cards, board...)
	rank := EvaluateBest(cards)
	score := float64(rank.Category) / 8.0
	if len(rank.Ranks) > 0 {
		score += 0.3 * float64(rank.Ranks[0]) / 14.0
	}
	return score
}

func sortDesc(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] > xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
