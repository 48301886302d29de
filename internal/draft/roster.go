package draft

import (
	"github.com/gridiron-labs/adp-optimizer/internal/types"
)

// TeamRoster tracks one team's drafted players in fixed-size position slots.
// A nil entry is an open slot. Slots are only ever filled, never cleared,
// within a single optimization run.
type TeamRoster struct {
	TeamID int

	cfg   types.RosterConfig
	slots map[types.Position][]*types.Player
	flex  []*types.Player
}

// NewTeamRoster creates an empty roster sized from the configuration.
func NewTeamRoster(teamID int, cfg types.RosterConfig) *TeamRoster {
	slots := make(map[types.Position][]*types.Player, len(cfg.Slots))
	for pos, count := range cfg.Slots {
		slots[pos] = make([]*types.Player, count)
	}
	return &TeamRoster{
		TeamID: teamID,
		cfg:    cfg,
		slots:  slots,
		flex:   make([]*types.Player, cfg.FlexSlots),
	}
}

// CanDraft reports whether the roster has an open slot for the player's
// position, or an open FLEX slot the position is eligible for.
func (r *TeamRoster) CanDraft(p *types.Player) bool {
	if hasOpenSlot(r.slots[p.Position]) {
		return true
	}
	return r.cfg.FlexEligible(p.Position) && hasOpenSlot(r.flex)
}

// AddPlayer places the player in the first open position-specific slot,
// falling back to the first open FLEX slot. Returns false when no
// compatible slot is open; the simulator always checks CanDraft first.
func (r *TeamRoster) AddPlayer(p *types.Player) bool {
	if fillFirstOpen(r.slots[p.Position], p) {
		return true
	}
	if r.cfg.FlexEligible(p.Position) {
		return fillFirstOpen(r.flex, p)
	}
	return false
}

// Score is the sum of average points across all filled slots.
func (r *TeamRoster) Score() float64 {
	var total float64
	for _, p := range r.Players() {
		total += p.Avg
	}
	return total
}

// OpenSlots returns the count of open slots by position, with FLEX under
// the "FLEX" key.
func (r *TeamRoster) OpenSlots() map[string]int {
	open := make(map[string]int, len(r.slots)+1)
	for _, pos := range types.Positions() {
		open[string(pos)] = countOpen(r.slots[pos])
	}
	open["FLEX"] = countOpen(r.flex)
	return open
}

// IsFull reports whether every slot on the roster is filled.
func (r *TeamRoster) IsFull() bool {
	for _, count := range r.OpenSlots() {
		if count > 0 {
			return false
		}
	}
	return true
}

// Players returns all drafted players in canonical slot order.
func (r *TeamRoster) Players() []*types.Player {
	players := make([]*types.Player, 0, r.cfg.TotalRounds())
	for _, pos := range types.Positions() {
		for _, p := range r.slots[pos] {
			if p != nil {
				players = append(players, p)
			}
		}
	}
	for _, p := range r.flex {
		if p != nil {
			players = append(players, p)
		}
	}
	return players
}

// Clone returns a fully independent copy. Player pointers are shared
// because Player records are immutable.
func (r *TeamRoster) Clone() *TeamRoster {
	clone := &TeamRoster{
		TeamID: r.TeamID,
		cfg:    r.cfg,
		slots:  make(map[types.Position][]*types.Player, len(r.slots)),
		flex:   make([]*types.Player, len(r.flex)),
	}
	for pos, slots := range r.slots {
		copied := make([]*types.Player, len(slots))
		copy(copied, slots)
		clone.slots[pos] = copied
	}
	copy(clone.flex, r.flex)
	return clone
}

func hasOpenSlot(slots []*types.Player) bool {
	for _, p := range slots {
		if p == nil {
			return true
		}
	}
	return false
}

func countOpen(slots []*types.Player) int {
	open := 0
	for _, p := range slots {
		if p == nil {
			open++
		}
	}
	return open
}

func fillFirstOpen(slots []*types.Player, p *types.Player) bool {
	for i, existing := range slots {
		if existing == nil {
			slots[i] = p
			return true
		}
	}
	return false
}
