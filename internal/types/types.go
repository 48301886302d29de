package types

// Position is one of the draftable fantasy positions.
type Position string

const (
	QB Position = "QB"
	RB Position = "RB"
	WR Position = "WR"
	TE Position = "TE"
)

// Positions returns the closed position set in canonical order. Iterating
// this slice instead of a map keeps every roster walk deterministic.
func Positions() []Position {
	return []Position{QB, RB, WR, TE}
}

// Player holds one player's season statistics. Players are created once by
// the loader and never mutated afterwards, so instances may be shared freely
// between cloned draft states.
type Player struct {
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Team     string   `json:"team"`
	Avg      float64  `json:"avg"`
	Total    float64  `json:"total"`
}

// RosterConfig defines how many slots each position gets on a roster, plus
// the FLEX slot count and which positions may fill FLEX.
type RosterConfig struct {
	Slots         map[Position]int  `json:"slots"`
	FlexSlots     int               `json:"flex_slots"`
	FlexPositions map[Position]bool `json:"flex_positions"`
}

// DefaultRosterConfig mirrors a standard 10-team league lineup:
// 2 QB, 2 RB, 3 WR, 1 TE, 2 FLEX (RB/WR/TE eligible).
func DefaultRosterConfig() RosterConfig {
	return RosterConfig{
		Slots: map[Position]int{
			QB: 2,
			RB: 2,
			WR: 3,
			TE: 1,
		},
		FlexSlots: 2,
		FlexPositions: map[Position]bool{
			RB: true,
			WR: true,
			TE: true,
		},
	}
}

// TotalRounds is the number of draft rounds needed to fill one roster.
func (rc RosterConfig) TotalRounds() int {
	total := rc.FlexSlots
	for _, count := range rc.Slots {
		total += count
	}
	return total
}

// FlexEligible reports whether a position may occupy a FLEX slot.
func (rc RosterConfig) FlexEligible(pos Position) bool {
	return rc.FlexPositions[pos]
}

// DraftConfig bundles the league-level draft parameters. It is immutable
// once constructed and threaded through every component explicitly rather
// than living in package-level state.
type DraftConfig struct {
	NumTeams int          `json:"num_teams"`
	Roster   RosterConfig `json:"roster"`
}

// DefaultDraftConfig is a 10-team league with the default roster shape.
func DefaultDraftConfig() DraftConfig {
	return DraftConfig{
		NumTeams: 10,
		Roster:   DefaultRosterConfig(),
	}
}

// TotalPicks is the number of picks in a complete draft.
func (dc DraftConfig) TotalPicks() int {
	return dc.NumTeams * dc.Roster.TotalRounds()
}
