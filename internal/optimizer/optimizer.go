// Package optimizer runs the regret-minimization loop: simulate a draft,
// score every pick's counterfactual regret, nudge ADP values against the
// regret, and repeat until the ranking stops moving.
package optimizer

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gridiron-labs/adp-optimizer/internal/adp"
	"github.com/gridiron-labs/adp-optimizer/internal/draft"
	"github.com/gridiron-labs/adp-optimizer/internal/regret"
	"github.com/gridiron-labs/adp-optimizer/internal/types"
	"github.com/gridiron-labs/adp-optimizer/pkg/logger"
)

// Params are the tuning knobs for one optimization run.
type Params struct {
	LearningRate  float64
	MaxIterations int
}

// Validate checks the tuning parameters before a run starts.
func (p Params) Validate() error {
	if p.MaxIterations < 1 {
		return fmt.Errorf("max iterations must be >= 1, got %d", p.MaxIterations)
	}
	if p.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive, got %f", p.LearningRate)
	}
	return nil
}

// Result is everything a run produces for reporting and persistence.
type Result struct {
	FinalADP           map[string]float64
	ConvergenceHistory []int
	Iterations         int
	FinalRegrets       map[string]float64
	FinalState         *draft.State
}

// Converged reports whether the last iteration produced zero rank moves.
func (r *Result) Converged() bool {
	n := len(r.ConvergenceHistory)
	return n > 0 && r.ConvergenceHistory[n-1] == 0
}

// TeamScores returns the final simulated draft's team scores.
func (r *Result) TeamScores() map[int]float64 {
	if r.FinalState == nil {
		return map[int]float64{}
	}
	return r.FinalState.TeamScores()
}

// Optimize iterates {simulate, regret, update, repair, rescale} from the
// supplied seed ADP until the dense ranking stabilizes or MaxIterations is
// reached. The seed map is not mutated; every iteration produces a fresh
// map and a fresh draft state.
func Optimize(players []*types.Player, cfg types.DraftConfig, initialADP map[string]float64, params Params) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	log := logger.WithComponent("optimizer")
	log.WithFields(logrus.Fields{
		"players":        len(players),
		"num_teams":      cfg.NumTeams,
		"total_picks":    cfg.TotalPicks(),
		"learning_rate":  params.LearningRate,
		"max_iterations": params.MaxIterations,
	}).Info("Starting ADP optimization")

	currentADP := make(map[string]float64, len(initialADP))
	for name, value := range initialADP {
		currentADP[name] = value
	}

	result := &Result{}
	for iteration := 0; iteration < params.MaxIterations; iteration++ {
		snapshot := currentADP

		state := draft.NewState(players, currentADP, cfg).SimulateFull()
		if state.Status() == draft.StatusHalted {
			log.WithFields(logrus.Fields{
				"iteration":  iteration + 1,
				"picks_made": len(state.History),
			}).Warn("Draft halted before all picks, continuing with partial result")
		}

		regrets, err := regret.AllRegrets(state)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iteration+1, err)
		}

		updated := adp.ApplyRegret(currentADP, regrets, params.LearningRate)
		updated = adp.RepairHierarchy(updated, players)
		currentADP = adp.Rescale(updated)

		if violations := adp.Violations(currentADP, players); len(violations) > 0 {
			for i, v := range violations {
				if i >= 3 {
					log.WithField("remaining", len(violations)-3).
						Warn("Further hierarchy violations omitted")
					break
				}
				log.WithField("violation", v).Warn("Hierarchy violation after repair")
			}
		}

		changes := adp.CheckConvergence(snapshot, currentADP)
		result.ConvergenceHistory = append(result.ConvergenceHistory, changes)
		result.Iterations = iteration + 1
		result.FinalRegrets = regrets
		result.FinalState = state

		log.WithFields(logrus.Fields{
			"iteration":        iteration + 1,
			"position_changes": changes,
		}).Info("Iteration complete")

		if changes == 0 {
			log.WithField("iterations", iteration+1).Info("Convergence achieved")
			break
		}
	}

	result.FinalADP = currentADP
	log.WithFields(logrus.Fields{
		"iterations": result.Iterations,
		"converged":  result.Converged(),
	}).Info("ADP optimization finished")
	return result, nil
}
