package ev

import (
	"math"
	"math/rand"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/gabe-silva/poker-analyzer/internal/archetype"
	"github.com/gabe-silva/poker-analyzer/internal/poker"
)

// Monte Carlo trial bounds.
const (
	DefaultTrials = 360
	MinTrials     = 120
	MaxTrials     = 2400
)

// EquityEstimate is the simulated showdown equity with its standard
// error. Degenerate reports that at least one villain's narrowed range
// collapsed and the un-narrowed archetype range was substituted.
type EquityEstimate struct {
	Equity     float64 `json:"equity"`
	Stderr     float64 `json:"stderr"`
	Degenerate bool    `json:"degenerate,omitempty"`
}

// villainSpec is one opponent entering the simulation.
type villainSpec struct {
	arch     archetype.Archetype
	role     string
	position string
}

// splitmix64 derives independent per-trial sub-seeds from one base
// seed. Trials are therefore reproducible regardless of how the worker
// pool schedules them.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

func trialSeed(base uint64, trial int) int64 {
	return int64(splitmix64(base + uint64(trial)))
}

// simulateEquity runs seeded Monte Carlo showdowns of the hero hand
// against weighted villain ranges. Hero equity per trial is the pot
// share (1/tied on a chop).
func simulateEquity(
	heroHand, board []poker.Card,
	street poker.Street,
	villains []villainSpec,
	pressure float64,
	trials int,
	baseSeed uint64,
) EquityEstimate {
	if len(villains) == 0 {
		return EquityEstimate{Equity: 1.0}
	}
	if trials < MinTrials {
		trials = MinTrials
	}
	if trials > MaxTrials {
		trials = MaxTrials
	}

	deck := poker.NewDeck()
	deck.Remove(append(append([]poker.Card{}, heroHand...), board...)...)
	live := deck.Cards()
	boardMissing := 5 - len(board)

	ranges := make([]villainRange, len(villains))
	degenerate := false
	for i, v := range villains {
		ranges[i] = buildRange(live, board, street, v.arch, v.role, pressure)
		degenerate = degenerate || ranges[i].Degenerate
	}

	shares := make([]float64, trials)
	valid := make([]bool, trials)

	workers := runtime.GOMAXPROCS(0)
	if workers > 8 {
		workers = 8
	}
	if workers < 1 {
		workers = 1
	}
	var wg sync.WaitGroup
	chunk := (trials + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > trials {
			end = trials
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for t := start; t < end; t++ {
				rng := rand.New(rand.NewSource(trialSeed(baseSeed, t)))
				share, ok := runTrial(rng, heroHand, board, live, ranges, boardMissing)
				shares[t] = share
				valid[t] = ok
			}
		}(start, end)
	}
	wg.Wait()

	observed := shares[:0:0]
	for t, ok := range valid {
		if ok {
			observed = append(observed, shares[t])
		}
	}
	if len(observed) == 0 {
		return EquityEstimate{Equity: 0, Stderr: 0, Degenerate: degenerate}
	}

	mean, variance := stat.MeanVariance(observed, nil)
	stderr := math.Sqrt(maxf(0, variance) / float64(len(observed)))
	return EquityEstimate{Equity: mean, Stderr: stderr, Degenerate: degenerate}
}

// runTrial deals one full runout and scores hero's share of the pot.
func runTrial(
	rng *rand.Rand,
	heroHand, board, live []poker.Card,
	ranges []villainRange,
	boardMissing int,
) (float64, bool) {
	used := make(map[poker.Card]bool, 2*len(ranges))
	hands := make([][2]poker.Card, 0, len(ranges))

	for _, rc := range ranges {
		drawn := false
		for attempt := 0; attempt < 64; attempt++ {
			h := rc.sample(rng)
			if used[h[0]] || used[h[1]] {
				continue
			}
			used[h[0]] = true
			used[h[1]] = true
			hands = append(hands, h)
			drawn = true
			break
		}
		if !drawn {
			return 0, false
		}
	}

	remaining := make([]poker.Card, 0, len(live))
	for _, c := range live {
		if !used[c] {
			remaining = append(remaining, c)
		}
	}
	runout := make([]poker.Card, 0, boardMissing)
	for i := 0; i < boardMissing; i++ {
		idx := rng.Intn(len(remaining))
		runout = append(runout, remaining[idx])
		remaining[idx] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}

	finalBoard := append(append([]poker.Card{}, board...), runout...)
	heroRank := poker.EvaluateBest(append(append([]poker.Card{}, heroHand...), finalBoard...))

	best := heroRank
	heroBest := true
	tied := 1
	for _, h := range hands {
		vr := poker.EvaluateBest(append([]poker.Card{h[0], h[1]}, finalBoard...))
		if vr.BetterThan(best) {
			best = vr
			heroBest = false
		} else if heroBest && vr.Equal(heroRank) {
			tied++
		}
	}
	if !heroBest {
		return 0, true
	}
	return 1.0 / float64(tied), true
}
