package dataio

import (
	"math"
	"math/rand"
	"sort"

	"github.com/gridiron-labs/adp-optimizer/internal/types"
	"github.com/gridiron-labs/adp-optimizer/pkg/logger"
)

// DefaultBaselineRanks are the positional baseline ranks used for VBR:
// a player's value is measured against the Nth-best player at the
// position, roughly the last starter-quality option in a 10-team league.
func DefaultBaselineRanks() map[types.Position]int {
	return map[types.Position]int{
		types.QB: 21,
		types.RB: 29,
		types.WR: 43,
		types.TE: 11,
	}
}

// SeedEntry is one row of the initial ranking: a player, their value over
// the positional baseline, and the seeded ADP (1-based pick rank).
type SeedEntry struct {
	Player *types.Player
	VBR    float64
	ADP    float64
}

// ComputeInitialADP seeds the optimization with a Value-Based Ranking:
// VBR = avg − baseline avg at the configured positional rank, sorted
// descending and assigned dense ADP 1..n. Positions short of their
// baseline rank fall back to their worst player's average.
func ComputeInitialADP(players []*types.Player, baselineRanks map[types.Position]int) []SeedEntry {
	byPosition := make(map[types.Position][]*types.Player)
	for _, p := range players {
		byPosition[p.Position] = append(byPosition[p.Position], p)
	}
	for _, posPlayers := range byPosition {
		sort.SliceStable(posPlayers, func(i, j int) bool {
			return posPlayers[i].Avg > posPlayers[j].Avg
		})
	}

	baselinePoints := make(map[types.Position]float64, len(baselineRanks))
	for pos, rank := range baselineRanks {
		posPlayers := byPosition[pos]
		switch {
		case len(posPlayers) >= rank:
			baselinePoints[pos] = posPlayers[rank-1].Avg
		case len(posPlayers) > 0:
			baselinePoints[pos] = posPlayers[len(posPlayers)-1].Avg
		default:
			baselinePoints[pos] = 0
		}
	}

	entries := make([]SeedEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, SeedEntry{
			Player: p,
			VBR:    p.Avg - baselinePoints[p.Position],
		})
	}
	// Highest value over baseline drafts earliest; ties resolve by name so
	// seeding is reproducible.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].VBR != entries[j].VBR {
			return entries[i].VBR > entries[j].VBR
		}
		return entries[i].Player.Name < entries[j].Player.Name
	})
	for i := range entries {
		entries[i].ADP = float64(i + 1)
	}

	logger.WithComponent("dataio").WithField("players", len(entries)).
		Debug("Computed initial VBR-based ADP")
	return entries
}

// Perturb applies a bounded random jitter to each seeded ADP value:
// adp *= 1+u with u uniform in ±factor, floored at 1 and rounded to an
// integer pick. The randomness source is injected so runs stay seedable.
// A zero factor returns a copy unchanged.
func Perturb(entries []SeedEntry, factor float64, rng *rand.Rand) []SeedEntry {
	perturbed := make([]SeedEntry, len(entries))
	copy(perturbed, entries)
	if factor == 0 {
		return perturbed
	}

	for i := range perturbed {
		jitter := (rng.Float64()*2 - 1) * factor
		newADP := math.Round(perturbed[i].ADP * (1 + jitter))
		if newADP < 1 {
			newADP = 1
		}
		perturbed[i].ADP = newADP
	}
	sort.SliceStable(perturbed, func(i, j int) bool {
		return perturbed[i].ADP < perturbed[j].ADP
	})
	return perturbed
}

// ADPMap flattens seed entries into the player-name keyed ADP map the
// optimizer consumes.
func ADPMap(entries []SeedEntry) map[string]float64 {
	adpMap := make(map[string]float64, len(entries))
	for _, e := range entries {
		adpMap[e.Player.Name] = e.ADP
	}
	return adpMap
}
