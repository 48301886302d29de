package draft

import (
	"math"
	"sort"

	"github.com/gridiron-labs/adp-optimizer/internal/types"
)

// Board tracks every eligible player ordered by current ADP and which of
// them have already been drafted. The ordering is fixed at construction;
// only the drafted set changes during a simulation.
type Board struct {
	players []*types.Player
	adp     map[string]float64
	drafted map[string]struct{}
}

// NewBoard builds a board with players sorted ascending by ADP value.
// Players missing from the ADP map sort last. The sort is stable so
// equal-ADP players keep the caller's ordering.
func NewBoard(players []*types.Player, adp map[string]float64) *Board {
	b := &Board{
		players: make([]*types.Player, len(players)),
		adp:     make(map[string]float64, len(adp)),
		drafted: make(map[string]struct{}),
	}
	copy(b.players, players)
	for name, value := range adp {
		b.adp[name] = value
	}
	sort.SliceStable(b.players, func(i, j int) bool {
		return b.ADP(b.players[i].Name) < b.ADP(b.players[j].Name)
	})
	return b
}

// ADP returns the player's current ADP value, or +Inf when unranked.
func (b *Board) ADP(name string) float64 {
	if value, ok := b.adp[name]; ok {
		return value
	}
	return math.Inf(1)
}

// ADPMap returns a copy of the board's ADP mapping.
func (b *Board) ADPMap() map[string]float64 {
	adp := make(map[string]float64, len(b.adp))
	for name, value := range b.adp {
		adp[name] = value
	}
	return adp
}

// Players returns the full player pool in board order, drafted or not.
func (b *Board) Players() []*types.Player {
	players := make([]*types.Player, len(b.players))
	copy(players, b.players)
	return players
}

// EligiblePlayers returns every undrafted player the team can still take,
// in ADP order.
func (b *Board) EligiblePlayers(team *TeamRoster) []*types.Player {
	var eligible []*types.Player
	for _, p := range b.players {
		if b.IsDrafted(p.Name) {
			continue
		}
		if team.CanDraft(p) {
			eligible = append(eligible, p)
		}
	}
	return eligible
}

// MarkDrafted removes a player from the available pool. Marking an
// already-drafted player is a no-op.
func (b *Board) MarkDrafted(name string) {
	b.drafted[name] = struct{}{}
}

// IsDrafted reports whether the named player has been taken.
func (b *Board) IsDrafted(name string) bool {
	_, ok := b.drafted[name]
	return ok
}

// DraftedCount returns how many players have been taken so far.
func (b *Board) DraftedCount() int {
	return len(b.drafted)
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	clone := &Board{
		players: make([]*types.Player, len(b.players)),
		adp:     make(map[string]float64, len(b.adp)),
		drafted: make(map[string]struct{}, len(b.drafted)),
	}
	copy(clone.players, b.players)
	for name, value := range b.adp {
		clone.adp[name] = value
	}
	for name := range b.drafted {
		clone.drafted[name] = struct{}{}
	}
	return clone
}
