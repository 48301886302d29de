package draft

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gridiron-labs/adp-optimizer/pkg/logger"
)

var (
	// ErrInvalidPickIndex signals a rewind or regret computation outside
	// the recorded history. Callers treat this as a logic fault.
	ErrInvalidPickIndex = errors.New("invalid pick index")

	// ErrNoEligiblePlayers signals the active team cannot fill any open
	// slot from the remaining pool. The simulation halts at that pick.
	ErrNoEligiblePlayers = errors.New("no eligible players for team")
)

// MakePick executes one greedy pick for the active team: the eligible
// player with the lowest ADP, breaking ties by higher average score. On
// success the pick is appended to history and the cursor advances.
func (s *State) MakePick() (pick *Pick, err error) {
	if s.CurrentPick >= s.TotalPicks() {
		return nil, fmt.Errorf("pick %d: draft already complete", s.CurrentPick)
	}

	teamIdx := s.PickOrder[s.CurrentPick]
	team := s.Teams[teamIdx]

	eligible := s.Board.EligiblePlayers(team)
	if len(eligible) == 0 {
		s.status = StatusHalted
		return nil, fmt.Errorf("pick %d: %w %d", s.CurrentPick, ErrNoEligiblePlayers, teamIdx)
	}

	selected := eligible[0]
	for _, p := range eligible[1:] {
		pADP, selADP := s.Board.ADP(p.Name), s.Board.ADP(selected.Name)
		if pADP < selADP || (pADP == selADP && p.Avg > selected.Avg) {
			selected = p
		}
	}

	team.AddPlayer(selected)
	s.Board.MarkDrafted(selected.Name)
	made := Pick{Index: s.CurrentPick, Player: selected}
	s.History = append(s.History, made)
	s.CurrentPick++
	s.status = StatusInProgress
	if s.CurrentPick == s.TotalPicks() {
		s.status = StatusComplete
	}

	logger.WithComponent("simulator").WithFields(logrus.Fields{
		"pick":     made.Index,
		"team":     teamIdx,
		"player":   selected.Name,
		"position": selected.Position,
	}).Debug("Pick made")

	return &made, nil
}

// SimulateFull runs picks until the draft completes or halts. A halted
// draft is not an error; downstream consumers use the partial history.
func (s *State) SimulateFull() *State {
	log := logger.WithComponent("simulator")
	log.WithField("total_picks", s.TotalPicks()).Debug("Starting draft simulation")

	for s.CurrentPick < s.TotalPicks() {
		if _, err := s.MakePick(); err != nil {
			log.WithFields(logrus.Fields{
				"pick": s.CurrentPick,
			}).WithError(err).Warn("Could not complete pick, halting simulation")
			break
		}
	}
	if s.CurrentPick >= s.TotalPicks() && s.status != StatusHalted {
		s.status = StatusComplete
	}

	log.WithFields(logrus.Fields{
		"picks_made": len(s.History),
		"status":     s.status,
	}).Debug("Draft simulation finished")
	return s
}

// SimulateFrom advances the cursor to startPick and continues picking
// until the draft completes or halts. startPick must not precede the
// current cursor.
func (s *State) SimulateFrom(startPick int) (*State, error) {
	if startPick < s.CurrentPick {
		return nil, fmt.Errorf("cannot simulate from pick %d, already at pick %d", startPick, s.CurrentPick)
	}
	s.CurrentPick = startPick
	return s.SimulateFull(), nil
}
