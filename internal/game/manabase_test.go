package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/goldfish-go/internal/card"
	"github.com/magefree/goldfish-go/internal/game/mana"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	catalog, err := card.LoadEmbedded()
	require.NoError(t, err)
	deck, err := card.ParseDeckList(card.SampleDeckList, catalog)
	require.NoError(t, err)
	return NewGame(deck, 1, catalog, Options{})
}

func putLand(t *testing.T, g *Game, name string) {
	t.Helper()
	c, err := g.catalog.Get(name)
	require.NoError(t, err)
	g.enterBattlefield(c)
}

func castCtx(t *testing.T, g *Game, name string) CastContext {
	t.Helper()
	c, err := g.catalog.Get(name)
	require.NoError(t, err)
	return CastContext{Card: &c}
}

func TestCanAffordCost_ColorlessLandCannotPayWhitePip(t *testing.T) {
	g := newTestGame(t)
	putLand(t, g, "Cavern of Souls")

	assert.False(t, g.CanAffordCost(mana.MustParseCost("{W}"), CastContext{}))
	assert.True(t, g.CanAffordCost(mana.MustParseCost("{C}"), CastContext{}))
}

func TestCanAffordCost_QuickRejectOnLandCount(t *testing.T) {
	g := newTestGame(t)
	putLand(t, g, "Island")

	assert.False(t, g.CanAffordCost(mana.MustParseCost("{1}{U}"), CastContext{}))
	assert.True(t, g.CanAffordCost(mana.MustParseCost("{U}"), CastContext{}))
}

func TestCanAffordCost_RequiresBacktracking(t *testing.T) {
	g := newTestGame(t)
	// Verge first so a greedy scan would bind the blue pip to the dual land
	// and strand the black pip.
	putLand(t, g, "Gloomlake Verge")
	putLand(t, g, "Island")

	// Island unlocks the Verge's black mode.
	assert.True(t, g.CanAffordCost(mana.MustParseCost("{U}{B}"), CastContext{}))
	assert.False(t, g.CanAffordCost(mana.MustParseCost("{B}{B}"), CastContext{}))
}

func TestVerge_SecondColorNeedsEnabler(t *testing.T) {
	g := newTestGame(t)
	putLand(t, g, "Blazemire Verge")

	// Alone the Verge only produces its first color.
	assert.True(t, g.CanAffordCost(mana.MustParseCost("{B}"), CastContext{}))
	assert.False(t, g.CanAffordCost(mana.MustParseCost("{R}"), CastContext{}))

	putLand(t, g, "Swamp")
	assert.True(t, g.CanAffordCost(mana.MustParseCost("{R}"), CastContext{}))
}

func TestCavernOfSouls_ChosenTypeGating(t *testing.T) {
	g := newTestGame(t)
	putLand(t, g, "Cavern of Souls")

	// The sample deck's dominant creature type is Nightmare.
	oculus := castCtx(t, g, "Abhorrent Oculus")
	assert.True(t, g.CanAffordCost(mana.MustParseCost("{U}"), oculus))

	// Faerie spells do not match the chosen type.
	prankster := castCtx(t, g, "Picklock Prankster")
	assert.False(t, g.CanAffordCost(mana.MustParseCost("{U}"), prankster))

	// Non-creature spells never get colored mana from the Cavern.
	consider := castCtx(t, g, "Consider")
	assert.False(t, g.CanAffordCost(mana.MustParseCost("{U}"), consider))
}

func TestStartingTown_LifeThresholdAndPayment(t *testing.T) {
	g := newTestGame(t)
	putLand(t, g, "Starting Town")

	require.True(t, g.CanAffordCost(mana.MustParseCost("{R}"), CastContext{}))
	lifeBefore := g.life
	require.True(t, g.TapLandsForCost(mana.MustParseCost("{R}"), CastContext{}))
	assert.Equal(t, lifeBefore-1, g.life, "colored mana from Starting Town costs 1 life")

	// Below the threshold only colorless remains.
	g2 := newTestGame(t)
	putLand(t, g2, "Starting Town")
	g2.life = startingTownLifeFloor
	assert.False(t, g2.CanAffordCost(mana.MustParseCost("{R}"), CastContext{}))
	assert.True(t, g2.CanAffordCost(mana.MustParseCost("{C}"), CastContext{}))
}

func TestMultiversalPassage_EntersWithChosenColor(t *testing.T) {
	g := newTestGame(t)
	putLand(t, g, "Multiversal Passage")

	// Nothing else in play: the first tracked color (blue) is chosen.
	assert.True(t, g.CanAffordCost(mana.MustParseCost("{U}"), CastContext{}))
	assert.False(t, g.CanAffordCost(mana.MustParseCost("{B}"), CastContext{}))

	// With blue covered, the next Passage fills the next missing color.
	g2 := newTestGame(t)
	putLand(t, g2, "Island")
	putLand(t, g2, "Multiversal Passage")
	assert.True(t, g2.CanAffordCost(mana.MustParseCost("{B}"), CastContext{}))
}

func TestTapLandsForCost_PreservesFlexibleLands(t *testing.T) {
	g := newTestGame(t)
	putLand(t, g, "Gloomlake Verge")
	putLand(t, g, "Island")

	require.True(t, g.TapLandsForCost(mana.MustParseCost("{U}"), CastContext{}))

	var verge, island *Permanent
	for _, p := range g.battlefield.Permanents() {
		switch p.Card.Name {
		case "Gloomlake Verge":
			verge = p
		case "Island":
			island = p
		}
	}
	require.NotNil(t, verge)
	require.NotNil(t, island)
	assert.True(t, island.Tapped, "the mono-color land should be spent first")
	assert.False(t, verge.Tapped, "the flexible land should be preserved")
}

func TestFeasibilityPaymentAgreement(t *testing.T) {
	costs := []string{
		"{U}", "{B}", "{R}", "{W}", "{C}",
		"{1}{U}", "{1}{B}", "{U}{B}", "{B}{B}", "{2}{U}{U}",
		"{3}{B}{B}", "{1}{U}{B}{R}", "{5}",
	}
	boards := [][]string{
		{"Island"},
		{"Island", "Swamp"},
		{"Gloomlake Verge", "Island", "Swamp"},
		{"Cavern of Souls", "Starting Town", "Island"},
		{"Blazemire Verge", "Swamp", "Mountain", "Multiversal Passage"},
		{"Island", "Island", "Swamp", "Swamp", "Mountain"},
	}

	for _, board := range boards {
		for _, costStr := range costs {
			g := newTestGame(t)
			for _, land := range board {
				putLand(t, g, land)
			}
			cost := mana.MustParseCost(costStr)

			feasible := g.CanAffordCost(cost, CastContext{})
			paid := g.TapLandsForCost(cost, CastContext{})
			require.Equal(t, feasible, paid,
				"feasibility and payment disagree for %s on %v", costStr, board)

			if paid {
				// Payment taps exactly the cost's worth of lands and leaves
				// nothing floating beyond what those taps produced.
				tapped := 0
				for _, p := range g.battlefield.Permanents() {
					if p.Tapped {
						tapped++
					}
				}
				assert.Equal(t, cost.Total(), tapped,
					"payment for %s on %v tapped %d lands", costStr, board, tapped)
				assert.Zero(t, g.pool.Total(),
					"payment for %s on %v left mana in the pool", costStr, board)
			}
		}
	}
}
