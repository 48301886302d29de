// Package dataio owns the boundaries of the engine: loading player
// statistics from CSV, seeding the initial VBR-based ADP, and writing run
// artifacts. The optimization core itself never touches the filesystem.
package dataio

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/gridiron-labs/adp-optimizer/internal/types"
	"github.com/gridiron-labs/adp-optimizer/pkg/logger"
)

// LoadOptions control the player filters applied at load time.
type LoadOptions struct {
	// MinWeeks drops players whose implied weeks played
	// (round(total/avg)) falls below this threshold.
	MinWeeks int
	// TopNByTotal keeps only the N highest season totals after filtering.
	TopNByTotal int
}

// DefaultLoadOptions matches the standard season filters.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{MinWeeks: 10, TopNByTotal: 150}
}

// LoadPlayers reads the season stats CSV (columns Player, Pos, Team, AVG,
// TTL) and returns the filtered player pool. Rows with unknown positions
// or unparseable numbers are skipped rather than failing the load.
func LoadPlayers(path string, opts LoadOptions) ([]*types.Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open player data: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read player data: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("player data %s is empty", path)
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[name] = i
	}
	for _, required := range []string{"Player", "Pos", "Team", "AVG", "TTL"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("player data %s missing column %q", path, required)
		}
	}

	validPositions := make(map[types.Position]bool, len(types.Positions()))
	for _, pos := range types.Positions() {
		validPositions[pos] = true
	}

	var players []*types.Player
	skipped := 0
	for _, row := range records[1:] {
		name := field(row, columns["Player"])
		pos := types.Position(field(row, columns["Pos"]))
		if name == "" || !validPositions[pos] {
			skipped++
			continue
		}

		avg, errAvg := strconv.ParseFloat(field(row, columns["AVG"]), 64)
		total, errTotal := strconv.ParseFloat(field(row, columns["TTL"]), 64)
		if errAvg != nil || errTotal != nil {
			skipped++
			continue
		}

		weeksPlayed := 0
		if avg != 0 {
			weeksPlayed = int(math.Round(total / avg))
		}
		if weeksPlayed < opts.MinWeeks {
			skipped++
			continue
		}

		players = append(players, &types.Player{
			Name:     name,
			Position: pos,
			Team:     field(row, columns["Team"]),
			Avg:      avg,
			Total:    total,
		})
	}

	// Keep only the top N by season total.
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Total > players[j].Total
	})
	if opts.TopNByTotal > 0 && len(players) > opts.TopNByTotal {
		players = players[:opts.TopNByTotal]
	}

	logger.WithComponent("dataio").WithFields(logrus.Fields{
		"file":    path,
		"loaded":  len(players),
		"skipped": skipped,
	}).Info("Loaded player data")

	return players, nil
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
