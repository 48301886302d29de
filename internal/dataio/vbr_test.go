package dataio

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-labs/adp-optimizer/internal/types"
)

func testPlayer(name string, pos types.Position, avg float64) *types.Player {
	return &types.Player{Name: name, Position: pos, Team: "FA", Avg: avg, Total: avg * 17}
}

func TestComputeInitialADPRanksByValueOverBaseline(t *testing.T) {
	players := []*types.Player{
		testPlayer("QB A", types.QB, 25),
		testPlayer("QB B", types.QB, 20),
		testPlayer("RB C", types.RB, 18),
		testPlayer("RB D", types.RB, 10),
	}
	baselines := map[types.Position]int{types.QB: 2, types.RB: 2}

	entries := ComputeInitialADP(players, baselines)
	require.Len(t, entries, 4)

	// Baselines land on the second-best at each position, so VBR is
	// QB A 5, QB B 0, RB C 8, RB D 0. Zero-VBR ties break by name.
	assert.Equal(t, "RB C", entries[0].Player.Name)
	assert.InDelta(t, 8, entries[0].VBR, 1e-9)
	assert.Equal(t, "QB A", entries[1].Player.Name)
	assert.InDelta(t, 5, entries[1].VBR, 1e-9)
	assert.Equal(t, "QB B", entries[2].Player.Name)
	assert.Equal(t, "RB D", entries[3].Player.Name)

	for i, e := range entries {
		assert.InDelta(t, float64(i+1), e.ADP, 1e-9, "ADP must be dense 1..n")
	}
}

func TestComputeInitialADPShortPositionFallsBackToWorst(t *testing.T) {
	// One TE against a baseline rank of 11: the baseline becomes that TE's
	// own average and its VBR is zero.
	players := []*types.Player{
		testPlayer("Lone TE", types.TE, 12),
		testPlayer("QB A", types.QB, 25),
		testPlayer("QB B", types.QB, 20),
	}
	baselines := map[types.Position]int{types.QB: 2, types.TE: 11}

	entries := ComputeInitialADP(players, baselines)
	require.Len(t, entries, 3)

	byName := make(map[string]SeedEntry, len(entries))
	for _, e := range entries {
		byName[e.Player.Name] = e
	}
	assert.InDelta(t, 0, byName["Lone TE"].VBR, 1e-9)
	assert.InDelta(t, 5, byName["QB A"].VBR, 1e-9)
}

func TestComputeInitialADPEmptyPool(t *testing.T) {
	entries := ComputeInitialADP(nil, DefaultBaselineRanks())
	assert.Empty(t, entries)
}

func TestPerturbZeroFactorCopies(t *testing.T) {
	entries := ComputeInitialADP([]*types.Player{
		testPlayer("QB A", types.QB, 25),
		testPlayer("QB B", types.QB, 20),
	}, map[types.Position]int{types.QB: 2})

	perturbed := Perturb(entries, 0, rand.New(rand.NewSource(1)))
	require.Len(t, perturbed, len(entries))
	for i := range entries {
		assert.Equal(t, entries[i].Player.Name, perturbed[i].Player.Name)
		assert.InDelta(t, entries[i].ADP, perturbed[i].ADP, 1e-9)
	}

	// The copy must not alias the input.
	perturbed[0].ADP = 99
	assert.InDelta(t, 1, entries[0].ADP, 1e-9)
}

func TestPerturbSeededIsDeterministic(t *testing.T) {
	players := make([]*types.Player, 0, 20)
	for i := 0; i < 20; i++ {
		players = append(players, testPlayer(
			string(rune('A'+i))+" RB", types.RB, float64(25-i)))
	}
	entries := ComputeInitialADP(players, map[types.Position]int{types.RB: 10})

	first := Perturb(entries, 0.3, rand.New(rand.NewSource(42)))
	second := Perturb(entries, 0.3, rand.New(rand.NewSource(42)))
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Player.Name, second[i].Player.Name)
		assert.InDelta(t, first[i].ADP, second[i].ADP, 1e-9)
	}
}

func TestPerturbKeepsIntegerPicksAtLeastOne(t *testing.T) {
	entries := ComputeInitialADP([]*types.Player{
		testPlayer("QB A", types.QB, 25),
		testPlayer("QB B", types.QB, 20),
		testPlayer("QB C", types.QB, 15),
	}, map[types.Position]int{types.QB: 3})

	perturbed := Perturb(entries, 0.9, rand.New(rand.NewSource(7)))
	for i := 1; i < len(perturbed); i++ {
		assert.LessOrEqual(t, perturbed[i-1].ADP, perturbed[i].ADP, "must stay sorted by ADP")
	}
	for _, e := range perturbed {
		assert.GreaterOrEqual(t, e.ADP, 1.0)
		assert.InDelta(t, math.Round(e.ADP), e.ADP, 1e-9, "perturbed ADP must be a whole pick")
	}
}

func TestADPMapFlattensEntries(t *testing.T) {
	entries := ComputeInitialADP([]*types.Player{
		testPlayer("QB A", types.QB, 25),
		testPlayer("QB B", types.QB, 20),
	}, map[types.Position]int{types.QB: 2})

	adpMap := ADPMap(entries)
	require.Len(t, adpMap, 2)
	assert.InDelta(t, 1, adpMap["QB A"], 1e-9)
	assert.InDelta(t, 2, adpMap["QB B"], 1e-9)
}
