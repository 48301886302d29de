package dataio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gridiron-labs/adp-optimizer/internal/draft"
	"github.com/gridiron-labs/adp-optimizer/internal/types"
	"github.com/gridiron-labs/adp-optimizer/pkg/logger"
)

// RunArtifacts writes every output of one optimization run into a
// dedicated directory so runs can be compared after the fact.
type RunArtifacts struct {
	RunID string
	Dir   string
}

// NewRunArtifacts creates a timestamped run directory under baseDir. The
// run ID carries the tuning parameters plus a short unique suffix for log
// correlation.
func NewRunArtifacts(baseDir string, learningRate float64, maxIterations int) (*RunArtifacts, error) {
	runID := fmt.Sprintf("%s_lr%g_iter%d_%s",
		time.Now().Format("20060102_150405"),
		learningRate,
		maxIterations,
		uuid.New().String()[:8])

	dir := filepath.Join(baseDir, "run_"+runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}

	logger.WithRun(runID).WithField("dir", dir).Info("Created run artifacts directory")
	return &RunArtifacts{RunID: runID, Dir: dir}, nil
}

// WriteInitialADP records the VBR-seeded ranking the run started from.
func (a *RunArtifacts) WriteInitialADP(entries []SeedEntry) error {
	rows := [][]string{{"name", "position", "team", "avg", "total", "vbr", "adp"}}
	for _, e := range entries {
		rows = append(rows, []string{
			e.Player.Name,
			string(e.Player.Position),
			e.Player.Team,
			formatFloat(e.Player.Avg),
			formatFloat(e.Player.Total),
			formatFloat(e.VBR),
			formatFloat(e.ADP),
		})
	}
	return a.writeCSV("initial_vbr_adp.csv", rows)
}

// WriteFinalADP records the optimized ranking with the draft slot each
// player landed in during the final simulation.
func (a *RunArtifacts) WriteFinalADP(players []*types.Player, finalADP map[string]float64, finalState *draft.State) error {
	type row struct {
		player *types.Player
		adp    float64
	}
	ranked := make([]row, 0, len(players))
	for _, p := range players {
		if adpValue, ok := finalADP[p.Name]; ok {
			ranked = append(ranked, row{player: p, adp: adpValue})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].adp < ranked[j].adp })

	rows := [][]string{{"name", "position", "team", "avg", "total", "adp", "drafted_by", "round", "overall_pick"}}
	for _, r := range ranked {
		teamID, round, pick := 0, 0, 0
		if finalState != nil {
			if id, rnd, pk, ok := finalState.PickDetails(r.player.Name); ok {
				teamID, round, pick = id, rnd, pk
			}
		}
		rows = append(rows, []string{
			r.player.Name,
			string(r.player.Position),
			r.player.Team,
			formatFloat(r.player.Avg),
			formatFloat(r.player.Total),
			formatFloat(r.adp),
			strconv.Itoa(teamID),
			strconv.Itoa(round),
			strconv.Itoa(pick),
		})
	}
	return a.writeCSV("final_adp.csv", rows)
}

// WriteTeamScores records each simulated team's total score.
func (a *RunArtifacts) WriteTeamScores(finalState *draft.State) error {
	rows := [][]string{{"team_id", "total_score"}}
	if finalState != nil {
		scores := finalState.TeamScores()
		for teamID := 0; teamID < len(finalState.Teams); teamID++ {
			rows = append(rows, []string{
				strconv.Itoa(teamID + 1),
				formatFloat(scores[teamID]),
			})
		}
	}
	return a.writeCSV("team_scores.csv", rows)
}

// WriteRegrets records the final iteration's regret per player, ordered by
// final ADP.
func (a *RunArtifacts) WriteRegrets(regrets, finalADP map[string]float64) error {
	names := make([]string, 0, len(regrets))
	for name := range regrets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		vi, vj := finalADP[names[i]], finalADP[names[j]]
		if vi != vj {
			return vi < vj
		}
		return names[i] < names[j]
	})

	rows := [][]string{{"player_name", "regret_score", "final_adp"}}
	for _, name := range names {
		rows = append(rows, []string{
			name,
			formatFloat(regrets[name]),
			formatFloat(finalADP[name]),
		})
	}
	return a.writeCSV("regrets.csv", rows)
}

// WriteConvergenceHistory records the rank-move count per iteration.
func (a *RunArtifacts) WriteConvergenceHistory(history []int) error {
	rows := [][]string{{"iteration", "position_changes"}}
	for i, changes := range history {
		rows = append(rows, []string{strconv.Itoa(i + 1), strconv.Itoa(changes)})
	}
	return a.writeCSV("convergence_history.csv", rows)
}

// RunParams captures the inputs of a run for the parameters artifact.
type RunParams struct {
	DataFile           string
	LearningRate       float64
	MaxIterations      int
	NumTeams           int
	PerturbationFactor float64
	PerturbationSeed   int64
	Iterations         int
	Converged          bool
}

// WriteRunParams records the run's inputs and outcome as plain text.
func (a *RunArtifacts) WriteRunParams(params RunParams) error {
	content := fmt.Sprintf(
		"Run ID: %s\nTimestamp: %s\nData file: %s\nLearning rate: %g\n"+
			"Max iterations: %d\nNumber of teams: %d\nPerturbation factor: %g\n"+
			"Perturbation seed: %d\nIterations completed: %d\nConverged: %t\n",
		a.RunID,
		time.Now().Format(time.RFC3339),
		params.DataFile,
		params.LearningRate,
		params.MaxIterations,
		params.NumTeams,
		params.PerturbationFactor,
		params.PerturbationSeed,
		params.Iterations,
		params.Converged,
	)
	path := filepath.Join(a.Dir, "run_parameters.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write run parameters: %w", err)
	}
	return nil
}

func (a *RunArtifacts) writeCSV(name string, rows [][]string) error {
	path := filepath.Join(a.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	logger.WithComponent("dataio").WithFields(logrus.Fields{
		"artifact": name,
		"rows":     len(rows) - 1,
	}).Debug("Wrote run artifact")
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
