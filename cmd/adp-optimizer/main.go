package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gridiron-labs/adp-optimizer/internal/dataio"
	"github.com/gridiron-labs/adp-optimizer/internal/optimizer"
	"github.com/gridiron-labs/adp-optimizer/internal/storage"
	"github.com/gridiron-labs/adp-optimizer/internal/types"
	"github.com/gridiron-labs/adp-optimizer/pkg/config"
	"github.com/gridiron-labs/adp-optimizer/pkg/logger"
)

func main() {
	flags := pflag.NewFlagSet("adp-optimizer", pflag.ExitOnError)
	dataFile := flags.String("data", "", "Path to the player statistics CSV (required)")
	flags.Int("num_teams", 10, "Number of teams in the draft")
	flags.Float64("learning_rate", 0.1, "Learning rate for ADP updates")
	flags.Int("max_iterations", 50, "Maximum optimization iterations")
	flags.Float64("perturbation_factor", 0.0, "Random jitter applied to the initial ADP seed (0 disables)")
	flags.Int64("perturbation_seed", 1, "Seed for the perturbation RNG")
	flags.String("artifacts_dir", "artifacts", "Directory for run artifacts")
	verbose := flags.Bool("verbose", false, "Enable debug logging")
	flags.Parse(os.Args[1:])

	// Flags override environment and .env values for the same keys.
	bindFlag(flags, "num_teams", "NUM_TEAMS")
	bindFlag(flags, "learning_rate", "LEARNING_RATE")
	bindFlag(flags, "max_iterations", "MAX_ITERATIONS")
	bindFlag(flags, "perturbation_factor", "PERTURBATION_FACTOR")
	bindFlag(flags, "perturbation_seed", "PERTURBATION_SEED")
	bindFlag(flags, "artifacts_dir", "ARTIFACTS_DIR")

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	logLevel := cfg.LogLevel
	if *verbose {
		logLevel = "debug"
	}
	logger.InitLogger(logLevel, cfg.IsDevelopment())
	log := logger.GetLogger()

	if *dataFile == "" {
		flags.Usage()
		log.Fatal("--data is required")
	}

	if err := run(*dataFile, cfg, log); err != nil {
		log.WithError(err).Fatal("Optimization failed")
	}
}

func run(dataFile string, cfg *config.Config, log *logrus.Logger) error {
	draftCfg := types.DraftConfig{
		NumTeams: cfg.NumTeams,
		Roster:   types.DefaultRosterConfig(),
	}
	params := optimizer.Params{
		LearningRate:  cfg.LearningRate,
		MaxIterations: cfg.MaxIterations,
	}

	log.WithFields(logrus.Fields{
		"data_file":      dataFile,
		"num_teams":      draftCfg.NumTeams,
		"total_picks":    draftCfg.TotalPicks(),
		"learning_rate":  params.LearningRate,
		"max_iterations": params.MaxIterations,
	}).Info("Starting ADP optimizer")

	players, err := dataio.LoadPlayers(dataFile, dataio.LoadOptions{
		MinWeeks:    cfg.MinWeeks,
		TopNByTotal: cfg.TopNByTotal,
	})
	if err != nil {
		return err
	}

	seed := dataio.ComputeInitialADP(players, dataio.DefaultBaselineRanks())
	if cfg.PerturbationFactor > 0 {
		rng := rand.New(rand.NewSource(cfg.PerturbationSeed))
		seed = dataio.Perturb(seed, cfg.PerturbationFactor, rng)
		log.WithFields(logrus.Fields{
			"factor": cfg.PerturbationFactor,
			"seed":   cfg.PerturbationSeed,
		}).Info("Perturbed initial ADP seed")
	}

	artifacts, err := dataio.NewRunArtifacts(cfg.ArtifactsDir, params.LearningRate, params.MaxIterations)
	if err != nil {
		return err
	}
	if err := artifacts.WriteInitialADP(seed); err != nil {
		return err
	}

	result, err := optimizer.Optimize(players, draftCfg, dataio.ADPMap(seed), params)
	if err != nil {
		return err
	}

	report := optimizer.ValidateResult(result, players, draftCfg)
	if !report.OK() {
		log.WithFields(logrus.Fields{
			"hierarchy_violations": len(report.HierarchyViolations),
			"elite_violations":     len(report.EliteViolations),
		}).Warn("Post-run validation found issues")
	}

	if err := writeArtifacts(artifacts, dataFile, players, cfg, result); err != nil {
		return err
	}

	if cfg.DatabaseURL != "" {
		store, err := storage.NewStore(cfg.DatabaseURL, cfg.IsDevelopment())
		if err != nil {
			return fmt.Errorf("connect result store: %w", err)
		}
		defer store.Close()
		if err := store.SaveRun(artifacts.RunID, dataFile, draftCfg, params, result, players); err != nil {
			return err
		}
	}

	log.WithFields(logrus.Fields{
		"run_id":              artifacts.RunID,
		"iterations":          result.Iterations,
		"converged":           result.Converged(),
		"convergence_history": result.ConvergenceHistory,
	}).Info("Optimization complete")
	return nil
}

func writeArtifacts(artifacts *dataio.RunArtifacts, dataFile string, players []*types.Player, cfg *config.Config, result *optimizer.Result) error {
	if err := artifacts.WriteFinalADP(players, result.FinalADP, result.FinalState); err != nil {
		return err
	}
	if err := artifacts.WriteTeamScores(result.FinalState); err != nil {
		return err
	}
	if err := artifacts.WriteRegrets(result.FinalRegrets, result.FinalADP); err != nil {
		return err
	}
	if err := artifacts.WriteConvergenceHistory(result.ConvergenceHistory); err != nil {
		return err
	}
	return artifacts.WriteRunParams(dataio.RunParams{
		DataFile:           dataFile,
		LearningRate:       cfg.LearningRate,
		MaxIterations:      cfg.MaxIterations,
		NumTeams:           cfg.NumTeams,
		PerturbationFactor: cfg.PerturbationFactor,
		PerturbationSeed:   cfg.PerturbationSeed,
		Iterations:         result.Iterations,
		Converged:          result.Converged(),
	})
}

func bindFlag(flags *pflag.FlagSet, flagName, key string) {
	if flag := flags.Lookup(flagName); flag != nil && flag.Changed {
		viper.Set(key, flag.Value.String())
	}
}
