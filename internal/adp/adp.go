// Package adp converts regret into ADP adjustments, repairs same-position
// ordering violations, and rescales values to dense integer ranks.
package adp

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/gridiron-labs/adp-optimizer/internal/types"
	"github.com/gridiron-labs/adp-optimizer/pkg/logger"
)

// ApplyRegret returns a new map with newADP = oldADP + learningRate*regret
// for every player present in both maps. Positive regret pushes a player
// to a later pick. Players without a regret entry carry over unchanged.
func ApplyRegret(current, regrets map[string]float64, learningRate float64) map[string]float64 {
	updated := make(map[string]float64, len(current))
	for name, value := range current {
		updated[name] = value
	}
	for name, regretScore := range regrets {
		if old, ok := current[name]; ok {
			updated[name] = old + learningRate*regretScore
		}
	}
	return updated
}

// RepairHierarchy enforces that within a position, a higher-scoring player
// is never assigned a later pick than a lower-scoring one, by swapping the
// offending pair's ADP values. Equal averages break ties toward the
// lexicographically smaller name. This is a single sweep over all ordered
// pairs, not a fixed-point loop; residual multi-way violations are
// surfaced by Violations rather than re-swept. The sweep walks the player
// slice in order, so results are deterministic for a given input order.
func RepairHierarchy(adpMap map[string]float64, players []*types.Player) map[string]float64 {
	updated := make(map[string]float64, len(adpMap))
	for name, value := range adpMap {
		updated[name] = value
	}

	swaps := 0
	for _, p1 := range players {
		adp1, ok := updated[p1.Name]
		if !ok {
			continue
		}
		for _, p2 := range players {
			if p1.Name == p2.Name || p1.Position != p2.Position {
				continue
			}
			adp2, ok := updated[p2.Name]
			if !ok {
				continue
			}

			shouldSwap := false
			if adp1 > adp2 {
				if p1.Avg > p2.Avg {
					shouldSwap = true
				} else if p1.Avg == p2.Avg && p1.Name < p2.Name {
					shouldSwap = true
				}
			}
			if shouldSwap {
				updated[p1.Name], updated[p2.Name] = adp2, adp1
				adp1 = adp2
				swaps++
			}
		}
	}

	if swaps > 0 {
		logger.WithComponent("adp").WithField("swaps", swaps).
			Debug("Swapped ADP values to maintain position hierarchy")
	}
	return updated
}

// Rescale sorts entries ascending by value and reassigns sequential
// integer ranks starting at 1, preserving relative order. Ties order by
// player name so the result is deterministic. Applying Rescale to an
// already-dense map is a no-op in relative terms.
func Rescale(adpMap map[string]float64) map[string]float64 {
	if len(adpMap) == 0 {
		return map[string]float64{}
	}

	names := sortedByValue(adpMap)
	rescaled := make(map[string]float64, len(names))
	for i, name := range names {
		rescaled[name] = float64(i + 1)
	}
	return rescaled
}

// CheckConvergence ranks both maps ascending and returns the total
// magnitude of rank moves across players present in both. Zero means the
// relative ordering is unchanged.
func CheckConvergence(oldADP, newADP map[string]float64) int {
	if len(oldADP) == 0 || len(newADP) == 0 {
		return 0
	}

	oldRanks := denseRanks(oldADP)
	newRanks := denseRanks(newADP)

	changes := 0
	for name, oldRank := range oldRanks {
		if newRank, ok := newRanks[name]; ok {
			delta := newRank - oldRank
			if delta < 0 {
				delta = -delta
			}
			changes += delta
		}
	}
	return changes
}

// Violations lists every residual same-position hierarchy violation in the
// map: a player ranked ahead of a same-position player with a higher
// average. Used for observability after the single-sweep repair; a
// non-empty result is logged, never fatal.
func Violations(adpMap map[string]float64, players []*types.Player) []string {
	byPosition := make(map[types.Position][]*types.Player)
	for _, p := range players {
		if _, ok := adpMap[p.Name]; ok {
			byPosition[p.Position] = append(byPosition[p.Position], p)
		}
	}

	var violations []string
	for _, pos := range types.Positions() {
		posPlayers := byPosition[pos]
		sort.SliceStable(posPlayers, func(i, j int) bool {
			return adpMap[posPlayers[i].Name] < adpMap[posPlayers[j].Name]
		})
		for i := 0; i+1 < len(posPlayers); i++ {
			cur, next := posPlayers[i], posPlayers[i+1]
			if cur.Avg < next.Avg {
				violations = append(violations, fmt.Sprintf(
					"%s: %s (avg %.1f, adp %.1f) ranked before %s (avg %.1f, adp %.1f)",
					pos, cur.Name, cur.Avg, adpMap[cur.Name],
					next.Name, next.Avg, adpMap[next.Name]))
			}
		}
	}

	if len(violations) > 0 {
		logger.WithComponent("adp").WithFields(logrus.Fields{
			"violations": len(violations),
		}).Warn("Position hierarchy violations remain after repair")
	}
	return violations
}

// sortedByValue returns player names ordered by ascending ADP value,
// breaking equal values by name.
func sortedByValue(adpMap map[string]float64) []string {
	names := make([]string, 0, len(adpMap))
	for name := range adpMap {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		vi, vj := adpMap[names[i]], adpMap[names[j]]
		if vi != vj {
			return vi < vj
		}
		return names[i] < names[j]
	})
	return names
}

func denseRanks(adpMap map[string]float64) map[string]int {
	ranks := make(map[string]int, len(adpMap))
	for i, name := range sortedByValue(adpMap) {
		ranks[name] = i + 1
	}
	return ranks
}
