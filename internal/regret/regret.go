// Package regret scores each pick of a simulated draft against its best
// reachable counterfactual: what the drafting team would have ended up with
// had that pick been forced to a different player.
package regret

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gridiron-labs/adp-optimizer/internal/draft"
	"github.com/gridiron-labs/adp-optimizer/pkg/logger"
)

// PickRegret computes the score delta for one pick. The original draft is
// cloned, rewound to just before pickIndex, the originally drafted player
// is removed from the pool so the counterfactual must choose differently,
// and the draft is replayed forward greedily. Regret is the counterfactual
// team score minus the actual team score; positive regret means a better
// alternative existed. The input state is never mutated.
func PickRegret(original *draft.State, pickIndex int) (float64, error) {
	if pickIndex < 0 || pickIndex >= len(original.History) {
		return 0, fmt.Errorf("%w: %d (history length %d)",
			draft.ErrInvalidPickIndex, pickIndex, len(original.History))
	}

	picked := original.History[pickIndex].Player
	teamIdx := original.PickOrder[pickIndex]
	originalScore := original.Teams[teamIdx].Score()

	counterfactual, err := original.Clone().RewindToPick(pickIndex)
	if err != nil {
		return 0, err
	}

	// Removing the original player forces a different selection at this
	// pick in the replayed draft.
	counterfactual.Board.MarkDrafted(picked.Name)
	if _, err := counterfactual.SimulateFrom(pickIndex); err != nil {
		return 0, err
	}

	counterfactualScore := counterfactual.Teams[teamIdx].Score()
	regret := counterfactualScore - originalScore

	logger.WithComponent("regret").WithFields(logrus.Fields{
		"pick":                 pickIndex,
		"player":               picked.Name,
		"team":                 teamIdx,
		"original_score":       originalScore,
		"counterfactual_score": counterfactualScore,
		"regret":               regret,
	}).Debug("Pick regret computed")

	return regret, nil
}

// AllRegrets computes PickRegret for every pick in the history, keyed by
// player name.
func AllRegrets(state *draft.State) (map[string]float64, error) {
	log := logger.WithComponent("regret")
	log.WithField("picks", len(state.History)).Debug("Calculating regret for all picks")

	regrets := make(map[string]float64, len(state.History))
	for i, pick := range state.History {
		score, err := PickRegret(state, i)
		if err != nil {
			return nil, fmt.Errorf("regret for pick %d: %w", i, err)
		}
		regrets[pick.Player.Name] = score
	}

	log.WithField("players", len(regrets)).Debug("Regret calculation complete")
	return regrets, nil
}
