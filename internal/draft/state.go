package draft

import (
	"fmt"

	"github.com/gridiron-labs/adp-optimizer/internal/types"
)

// Status describes where a simulation is in its lifecycle.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
	// StatusHalted means a pick could not be filled from the remaining
	// pool. Downstream consumers operate over the picks actually made.
	StatusHalted Status = "halted"
)

// Pick records one completed selection.
type Pick struct {
	Index  int
	Player *types.Player
}

// State is the aggregate draft simulation state: all team rosters, the
// board, the precomputed snake pick order, the pick cursor, and the full
// pick history. The invariant len(History) == CurrentPick holds between
// picks; History[i] was assigned to team PickOrder[i].
type State struct {
	Config      types.DraftConfig
	Teams       []*TeamRoster
	Board       *Board
	PickOrder   []int
	CurrentPick int
	History     []Pick

	status Status
}

// NewState builds a fresh draft state with empty rosters and a full board.
func NewState(players []*types.Player, adp map[string]float64, cfg types.DraftConfig) *State {
	teams := make([]*TeamRoster, cfg.NumTeams)
	for i := range teams {
		teams[i] = NewTeamRoster(i, cfg.Roster)
	}
	return &State{
		Config:    cfg,
		Teams:     teams,
		Board:     NewBoard(players, adp),
		PickOrder: SnakePickOrder(cfg.NumTeams, cfg.Roster.TotalRounds()),
		status:    StatusNotStarted,
	}
}

// SnakePickOrder generates the boustrophedon pick order: round 0 ascends
// team indices, round 1 descends, and so on.
func SnakePickOrder(numTeams, totalRounds int) []int {
	order := make([]int, 0, numTeams*totalRounds)
	for round := 0; round < totalRounds; round++ {
		if round%2 == 0 {
			for team := 0; team < numTeams; team++ {
				order = append(order, team)
			}
		} else {
			for team := numTeams - 1; team >= 0; team-- {
				order = append(order, team)
			}
		}
	}
	return order
}

// TotalPicks is the length of a complete draft.
func (s *State) TotalPicks() int {
	return len(s.PickOrder)
}

// Status reports the simulation lifecycle state.
func (s *State) Status() Status {
	return s.status
}

// Clone produces a fully independent copy with no shared mutable
// structure. Player records are immutable and stay shared.
func (s *State) Clone() *State {
	teams := make([]*TeamRoster, len(s.Teams))
	for i, team := range s.Teams {
		teams[i] = team.Clone()
	}
	order := make([]int, len(s.PickOrder))
	copy(order, s.PickOrder)
	history := make([]Pick, len(s.History))
	copy(history, s.History)
	return &State{
		Config:      s.Config,
		Teams:       teams,
		Board:       s.Board.Clone(),
		PickOrder:   order,
		CurrentPick: s.CurrentPick,
		History:     history,
		status:      s.status,
	}
}

// RewindToPick reconstructs the state immediately before pick k by
// replaying History[0..k) onto a brand-new state seeded from the same
// player pool and ADP map. The replay re-applies the recorded players
// directly rather than re-running the greedy algorithm, so the
// reconstruction is exact.
func (s *State) RewindToPick(k int) (*State, error) {
	if k < 0 || k >= len(s.History) {
		return nil, fmt.Errorf("%w: %d (history length %d)", ErrInvalidPickIndex, k, len(s.History))
	}

	rewound := NewState(s.Board.Players(), s.Board.ADPMap(), s.Config)
	for i := 0; i < k; i++ {
		pick := s.History[i]
		team := rewound.Teams[rewound.PickOrder[i]]
		team.AddPlayer(pick.Player)
		rewound.Board.MarkDrafted(pick.Player.Name)
		rewound.History = append(rewound.History, Pick{Index: i, Player: pick.Player})
		rewound.CurrentPick = i + 1
	}
	if rewound.CurrentPick > 0 {
		rewound.status = StatusInProgress
	}
	return rewound, nil
}

// TeamScores returns each team's total score keyed by team index.
func (s *State) TeamScores() map[int]float64 {
	scores := make(map[int]float64, len(s.Teams))
	for i, team := range s.Teams {
		scores[i] = team.Score()
	}
	return scores
}

// PickDetails looks up where a player was drafted. Returns the team index,
// 1-based round, and 1-based overall pick, or ok=false when the player was
// never drafted.
func (s *State) PickDetails(name string) (teamID, round, pick int, ok bool) {
	for _, p := range s.History {
		if p.Player.Name == name {
			return s.PickOrder[p.Index], p.Index/s.Config.NumTeams + 1, p.Index + 1, true
		}
	}
	return 0, 0, 0, false
}
