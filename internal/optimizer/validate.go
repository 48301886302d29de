package optimizer

import (
	"fmt"

	"github.com/gridiron-labs/adp-optimizer/internal/adp"
	"github.com/gridiron-labs/adp-optimizer/internal/types"
)

// Report collects post-run sanity checks. Failures are diagnostics for the
// operator, never fatal to the run that produced them.
type Report struct {
	HierarchyViolations []string
	EliteViolations     []string
}

// OK reports whether every check passed.
func (r *Report) OK() bool {
	return len(r.HierarchyViolations) == 0 && len(r.EliteViolations) == 0
}

// ValidateResult runs the post-optimization diagnostics: residual position
// hierarchy violations, and whether the top QB/RB/WR by average landed in
// the first round.
func ValidateResult(result *Result, players []*types.Player, cfg types.DraftConfig) *Report {
	return &Report{
		HierarchyViolations: adp.Violations(result.FinalADP, players),
		EliteViolations:     eliteFirstRound(result.FinalADP, players, cfg.NumTeams),
	}
}

// eliteFirstRound checks that the best player by average at each premium
// position has an ADP inside round one.
func eliteFirstRound(finalADP map[string]float64, players []*types.Player, numTeams int) []string {
	var violations []string
	for _, pos := range []types.Position{types.QB, types.RB, types.WR} {
		var top *types.Player
		for _, p := range players {
			if p.Position != pos {
				continue
			}
			if _, ok := finalADP[p.Name]; !ok {
				continue
			}
			if top == nil || p.Avg > top.Avg {
				top = p
			}
		}
		if top == nil {
			violations = append(violations, fmt.Sprintf("no %s players found in final ADP", pos))
			continue
		}
		if adpValue := finalADP[top.Name]; adpValue > float64(numTeams) {
			violations = append(violations, fmt.Sprintf(
				"top %s %s (avg %.1f) has ADP %.1f, expected <= %d",
				pos, top.Name, top.Avg, adpValue, numTeams))
		}
	}
	return violations
}
