package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-labs/adp-optimizer/internal/types"
)

func miniDraftConfig(numTeams int) types.DraftConfig {
	return types.DraftConfig{NumTeams: numTeams, Roster: smallRoster()}
}

// Two QBs and two RBs fill a 2-team draft with one QB and one RB slot each.
func miniPlayers() []*types.Player {
	return []*types.Player{
		testPlayer("QB One", types.QB, 25),
		testPlayer("QB Two", types.QB, 20),
		testPlayer("RB One", types.RB, 15),
		testPlayer("RB Two", types.RB, 10),
	}
}

func miniADP() map[string]float64 {
	return map[string]float64{
		"QB One": 1,
		"QB Two": 2,
		"RB One": 3,
		"RB Two": 4,
	}
}

func TestSnakePickOrder(t *testing.T) {
	tests := []struct {
		name     string
		teams    int
		rounds   int
		expected []int
	}{
		{"four teams three rounds", 4, 3, []int{0, 1, 2, 3, 3, 2, 1, 0, 0, 1, 2, 3}},
		{"two teams two rounds", 2, 2, []int{0, 1, 1, 0}},
		{"single team", 1, 3, []int{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := SnakePickOrder(tt.teams, tt.rounds)
			assert.Equal(t, tt.expected, order)
			assert.Len(t, order, tt.teams*tt.rounds)
		})
	}
}

func TestSnakePickOrderAlternatesDirection(t *testing.T) {
	teams, rounds := 10, 11
	order := SnakePickOrder(teams, rounds)
	require.Len(t, order, teams*rounds)

	for round := 0; round < rounds; round++ {
		first := order[round*teams]
		last := order[round*teams+teams-1]
		if round%2 == 0 {
			assert.Equal(t, 0, first, "round %d should ascend", round)
			assert.Equal(t, teams-1, last)
		} else {
			assert.Equal(t, teams-1, first, "round %d should descend", round)
			assert.Equal(t, 0, last)
		}
	}
}

func TestBoardOrdersByADPWithMissingLast(t *testing.T) {
	players := miniPlayers()
	adp := map[string]float64{
		"RB One": 1,
		"QB One": 2,
		// QB Two and RB Two unranked, must sort last in input order.
	}
	board := NewBoard(players, adp)

	pool := board.Players()
	require.Len(t, pool, 4)
	assert.Equal(t, "RB One", pool[0].Name)
	assert.Equal(t, "QB One", pool[1].Name)
	assert.Equal(t, "QB Two", pool[2].Name)
	assert.Equal(t, "RB Two", pool[3].Name)
}

func TestBoardEligiblePlayersRespectsRosterNeeds(t *testing.T) {
	board := NewBoard(miniPlayers(), miniADP())
	roster := NewTeamRoster(0, smallRoster())
	require.True(t, roster.AddPlayer(testPlayer("QB Zero", types.QB, 30)))

	eligible := board.EligiblePlayers(roster)
	require.Len(t, eligible, 2, "QB slot is full, only RBs remain eligible")
	assert.Equal(t, "RB One", eligible[0].Name)
	assert.Equal(t, "RB Two", eligible[1].Name)
}

func TestBoardMarkDraftedIdempotent(t *testing.T) {
	board := NewBoard(miniPlayers(), miniADP())
	board.MarkDrafted("QB One")
	board.MarkDrafted("QB One")
	assert.Equal(t, 1, board.DraftedCount())
	assert.True(t, board.IsDrafted("QB One"))
}

func TestSimulateFullGreedyOrder(t *testing.T) {
	state := NewState(miniPlayers(), miniADP(), miniDraftConfig(2)).SimulateFull()

	require.Equal(t, StatusComplete, state.Status())
	require.Len(t, state.History, 4)
	assert.Equal(t, state.CurrentPick, len(state.History))

	// Snake order 0,1,1,0 over ADP 1..4.
	assert.Equal(t, "QB One", state.History[0].Player.Name)
	assert.Equal(t, "QB Two", state.History[1].Player.Name)
	assert.Equal(t, "RB One", state.History[2].Player.Name)
	assert.Equal(t, "RB Two", state.History[3].Player.Name)

	scores := state.TeamScores()
	assert.InDelta(t, 35, scores[0], 1e-9) // QB One 25 + RB Two 10
	assert.InDelta(t, 35, scores[1], 1e-9) // QB Two 20 + RB One 15
}

func TestMakePickTieBreakPrefersHigherAverage(t *testing.T) {
	players := []*types.Player{
		testPlayer("QB Low", types.QB, 18),
		testPlayer("QB High", types.QB, 24),
	}
	adp := map[string]float64{"QB Low": 1, "QB High": 1}

	cfg := types.DraftConfig{
		NumTeams: 1,
		Roster: types.RosterConfig{
			Slots:         map[types.Position]int{types.QB: 1},
			FlexPositions: map[types.Position]bool{},
		},
	}
	state := NewState(players, adp, cfg)
	pick, err := state.MakePick()
	require.NoError(t, err)
	assert.Equal(t, "QB High", pick.Player.Name)
}

func TestSimulateHaltsWhenNoEligiblePlayers(t *testing.T) {
	// One QB for two QB-needing teams: the draft halts at pick 1.
	players := []*types.Player{testPlayer("QB One", types.QB, 25)}
	cfg := types.DraftConfig{
		NumTeams: 2,
		Roster: types.RosterConfig{
			Slots:         map[types.Position]int{types.QB: 1},
			FlexPositions: map[types.Position]bool{},
		},
	}
	state := NewState(players, map[string]float64{"QB One": 1}, cfg).SimulateFull()

	assert.Equal(t, StatusHalted, state.Status())
	assert.Len(t, state.History, 1)
	assert.Equal(t, 1, state.CurrentPick)
}

func TestCloneHasNoSharedMutableState(t *testing.T) {
	state := NewState(miniPlayers(), miniADP(), miniDraftConfig(2))
	_, err := state.MakePick()
	require.NoError(t, err)

	clone := state.Clone()
	clone.SimulateFull()

	assert.Equal(t, 1, state.CurrentPick, "original cursor must not move")
	assert.Len(t, state.History, 1)
	assert.Equal(t, 1, state.Board.DraftedCount())
	assert.Equal(t, 4, clone.Board.DraftedCount())
}

func TestRewindToPickReplaysHistoryExactly(t *testing.T) {
	state := NewState(miniPlayers(), miniADP(), miniDraftConfig(2)).SimulateFull()

	rewound, err := state.Clone().RewindToPick(2)
	require.NoError(t, err)

	assert.Equal(t, 2, rewound.CurrentPick)
	require.Len(t, rewound.History, 2)
	assert.Equal(t, "QB One", rewound.History[0].Player.Name)
	assert.Equal(t, "QB Two", rewound.History[1].Player.Name)
	assert.True(t, rewound.Board.IsDrafted("QB One"))
	assert.True(t, rewound.Board.IsDrafted("QB Two"))
	assert.False(t, rewound.Board.IsDrafted("RB One"))

	// Resuming the rewound draft reproduces the original outcome.
	resumed, err := rewound.SimulateFrom(2)
	require.NoError(t, err)
	require.Len(t, resumed.History, 4)
	for i, pick := range state.History {
		assert.Equal(t, pick.Player.Name, resumed.History[i].Player.Name)
	}
}

func TestRewindToPickRejectsOutOfRange(t *testing.T) {
	state := NewState(miniPlayers(), miniADP(), miniDraftConfig(2)).SimulateFull()

	_, err := state.RewindToPick(-1)
	assert.ErrorIs(t, err, ErrInvalidPickIndex)

	_, err = state.RewindToPick(len(state.History))
	assert.ErrorIs(t, err, ErrInvalidPickIndex)
}

func TestSimulateFromRejectsEarlierPick(t *testing.T) {
	state := NewState(miniPlayers(), miniADP(), miniDraftConfig(2))
	state.SimulateFull()

	_, err := state.SimulateFrom(1)
	assert.Error(t, err)
}

func TestPickDetails(t *testing.T) {
	state := NewState(miniPlayers(), miniADP(), miniDraftConfig(2)).SimulateFull()

	teamID, round, pick, ok := state.PickDetails("RB One")
	require.True(t, ok)
	assert.Equal(t, 1, teamID)
	assert.Equal(t, 2, round)
	assert.Equal(t, 3, pick)

	_, _, _, ok = state.PickDetails("Nobody")
	assert.False(t, ok)
}
