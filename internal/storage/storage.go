// Package storage persists optimization results to Postgres when a
// DATABASE_URL is configured. The optimization core never depends on it;
// it consumes the same Result the CSV artifacts do.
package storage

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gridiron-labs/adp-optimizer/internal/optimizer"
	"github.com/gridiron-labs/adp-optimizer/internal/types"
	"github.com/gridiron-labs/adp-optimizer/pkg/logger"
)

// OptimizationRun is the persisted summary of one run.
type OptimizationRun struct {
	ID            uint      `gorm:"primaryKey"`
	RunID         string    `gorm:"uniqueIndex;size:128"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	DataFile      string
	NumTeams      int
	LearningRate  float64
	MaxIterations int
	Iterations    int
	Converged     bool
	FinalChanges  int
}

// PlayerRanking is one player's final ADP and regret for a run.
type PlayerRanking struct {
	ID       uint   `gorm:"primaryKey"`
	RunID    string `gorm:"index;size:128"`
	Name     string `gorm:"size:128"`
	Position string `gorm:"size:8"`
	Team     string `gorm:"size:8"`
	Avg      float64
	Total    float64
	ADP      float64 `gorm:"column:adp"`
	Regret   float64
}

// TeamScore is one simulated team's final score for a run.
type TeamScore struct {
	ID     uint   `gorm:"primaryKey"`
	RunID  string `gorm:"index;size:128"`
	TeamID int
	Score  float64
}

// Store wraps the gorm connection used for run persistence.
type Store struct {
	db  *gorm.DB
	log *logrus.Entry
}

// NewStore opens a Postgres connection and migrates the result tables.
func NewStore(databaseURL string, isDevelopment bool) (*Store, error) {
	logLevel := gormlogger.Error
	if isDevelopment {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&OptimizationRun{}, &PlayerRanking{}, &TeamScore{}); err != nil {
		return nil, fmt.Errorf("failed to migrate result tables: %w", err)
	}

	return &Store{
		db:  db,
		log: logger.WithComponent("storage"),
	}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveRun persists a run summary with its player rankings and team scores
// in one transaction.
func (s *Store) SaveRun(runID, dataFile string, cfg types.DraftConfig, params optimizer.Params, result *optimizer.Result, players []*types.Player) error {
	finalChanges := 0
	if n := len(result.ConvergenceHistory); n > 0 {
		finalChanges = result.ConvergenceHistory[n-1]
	}

	run := OptimizationRun{
		RunID:         runID,
		DataFile:      dataFile,
		NumTeams:      cfg.NumTeams,
		LearningRate:  params.LearningRate,
		MaxIterations: params.MaxIterations,
		Iterations:    result.Iterations,
		Converged:     result.Converged(),
		FinalChanges:  finalChanges,
	}

	rankings := make([]PlayerRanking, 0, len(players))
	for _, p := range players {
		adpValue, ok := result.FinalADP[p.Name]
		if !ok {
			continue
		}
		rankings = append(rankings, PlayerRanking{
			RunID:    runID,
			Name:     p.Name,
			Position: string(p.Position),
			Team:     p.Team,
			Avg:      p.Avg,
			Total:    p.Total,
			ADP:      adpValue,
			Regret:   result.FinalRegrets[p.Name],
		})
	}
	sort.SliceStable(rankings, func(i, j int) bool { return rankings[i].ADP < rankings[j].ADP })

	scores := result.TeamScores()
	teamScores := make([]TeamScore, 0, len(scores))
	for teamID := 0; teamID < len(scores); teamID++ {
		teamScores = append(teamScores, TeamScore{
			RunID:  runID,
			TeamID: teamID + 1,
			Score:  scores[teamID],
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return err
		}
		if len(rankings) > 0 {
			if err := tx.CreateInBatches(rankings, 200).Error; err != nil {
				return err
			}
		}
		if len(teamScores) > 0 {
			if err := tx.Create(&teamScores).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to persist run %s: %w", runID, err)
	}

	s.log.WithFields(logrus.Fields{
		"run_id":   runID,
		"rankings": len(rankings),
		"teams":    len(teamScores),
	}).Info("Persisted optimization run")
	return nil
}
