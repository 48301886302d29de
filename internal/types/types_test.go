package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRosterShape(t *testing.T) {
	roster := DefaultRosterConfig()

	assert.Equal(t, 10, roster.TotalRounds(), "2 QB + 2 RB + 3 WR + 1 TE + 2 FLEX")
	assert.False(t, roster.FlexEligible(QB))
	assert.True(t, roster.FlexEligible(RB))
	assert.True(t, roster.FlexEligible(WR))
	assert.True(t, roster.FlexEligible(TE))
}

func TestDefaultDraftTotalPicks(t *testing.T) {
	cfg := DefaultDraftConfig()
	assert.Equal(t, 10, cfg.NumTeams)
	assert.Equal(t, 100, cfg.TotalPicks())
}

func TestPositionsCanonicalOrder(t *testing.T) {
	assert.Equal(t, []Position{QB, RB, WR, TE}, Positions())
}
