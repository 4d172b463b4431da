package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/goldfish-go/internal/card"
	"github.com/magefree/goldfish-go/internal/game/mana"
)

func TestResolveOpeningHand_SizeBounds(t *testing.T) {
	catalog, err := card.LoadEmbedded()
	require.NoError(t, err)
	deck, err := card.ParseDeckList(card.SampleDeckList, catalog)
	require.NoError(t, err)

	for seed := uint64(1); seed <= 200; seed++ {
		g := NewGame(deck, seed, catalog, Options{})
		g.ResolveOpeningHand()

		size := g.hand.Len()
		assert.GreaterOrEqual(t, size, minHandSize, "seed %d kept too few cards", seed)
		assert.LessOrEqual(t, size, openingHandSize, "seed %d kept too many cards", seed)

		// No card is lost or duplicated by the protocol.
		assert.Equal(t, len(deck), g.hand.Len()+g.library.Len(),
			"seed %d: hand plus library must account for the whole deck", seed)
	}
}

func TestResolveOpeningHand_Deterministic(t *testing.T) {
	catalog, err := card.LoadEmbedded()
	require.NoError(t, err)
	deck, err := card.ParseDeckList(card.SampleDeckList, catalog)
	require.NoError(t, err)

	for _, seed := range []uint64{7, 12345, 987654321} {
		g1 := NewGame(deck, seed, catalog, Options{})
		g1.ResolveOpeningHand()
		g2 := NewGame(deck, seed, catalog, Options{})
		g2.ResolveOpeningHand()

		require.Equal(t, g1.hand.Len(), g2.hand.Len(), "seed %d", seed)
		for i, c := range g1.hand.Cards() {
			assert.Equal(t, c.Name, g2.hand.Cards()[i].Name, "seed %d hand position %d", seed, i)
		}

		// Library order must match too, or later draws diverge.
		for g1.library.Len() > 0 {
			c1, _ := g1.library.Draw()
			c2, _ := g2.library.Draw()
			require.Equal(t, c1.Name, c2.Name, "seed %d library order diverged", seed)
		}
	}
}

func TestHandScore_PrefersBalancedLands(t *testing.T) {
	land := card.Card{Name: "Island", Type: card.TypeLand}
	cheap := card.Card{Name: "Consider", Type: card.TypeInstant, Cost: mana.MustParseCost("{U}")}
	pricey := card.Card{Name: "Abhorrent Oculus", Type: card.TypeCreature, Cost: mana.MustParseCost("{1}{U}")}

	balanced := []card.Card{land, land, land, cheap, cheap, pricey, pricey}
	flooded := []card.Card{land, land, land, land, land, land, cheap}
	screwed := []card.Card{land, cheap, cheap, cheap, pricey, pricey, pricey}

	assert.Less(t, handScore(balanced), handScore(flooded))
	assert.Less(t, handScore(balanced), handScore(screwed))
	assert.Less(t, handScore(flooded), handScore(screwed),
		"flood is penalized more gently than screw")
}

func TestHandWorthy(t *testing.T) {
	land := card.Card{Name: "Swamp", Type: card.TypeLand}
	cheap := card.Card{Name: "Consider", Type: card.TypeInstant, Cost: mana.MustParseCost("{U}")}
	pricey := card.Card{Name: "Stitch Together", Type: card.TypeSorcery, Cost: mana.MustParseCost("{3}{B}")}
	enabler := card.Card{Name: "Picklock Prankster", Type: card.TypeCreature, Cost: mana.MustParseCost("{1}{U}")}

	assert.True(t, handWorthy([]card.Card{land, land, pricey, pricey}),
		"two lands always keep")
	assert.True(t, handWorthy([]card.Card{pricey, pricey, enabler, pricey}),
		"a mill enabler keeps regardless of lands")
	assert.True(t, handWorthy([]card.Card{land, cheap, pricey, pricey}),
		"one land with a cheap spell keeps")
	assert.False(t, handWorthy([]card.Card{land, pricey, pricey, pricey}),
		"one land with only expensive spells does not keep")
	assert.False(t, handWorthy([]card.Card{pricey, pricey, pricey, pricey}),
		"no lands and no enabler does not keep")
}

func TestScryAfterMulligan_Buckets(t *testing.T) {
	g := newTestGame(t)
	island, err := g.catalog.Get("Island")
	require.NoError(t, err)
	oculus, err := g.catalog.Get("Abhorrent Oculus")
	require.NoError(t, err)
	consider, err := g.catalog.Get("Consider")
	require.NoError(t, err)

	g.library = NewLibrary([]card.Card{oculus, consider, island})
	hand := []card.Card{island, island, island, consider, consider, consider}

	// Three lands in hand: the looked-at land and the reanimation target are
	// bottomed, the cheap spell stays on top.
	g.scryAfterMulligan(hand, 3)

	top, ok := g.library.Draw()
	require.True(t, ok)
	assert.Equal(t, "Consider", top.Name)

	bottomed := g.library.Mill(2)
	require.Len(t, bottomed, 2)
	assert.Equal(t, "Abhorrent Oculus", bottomed[0].Name)
	assert.Equal(t, "Island", bottomed[1].Name)
}
