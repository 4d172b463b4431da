package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/goldfish-go/internal/card"
	"github.com/magefree/goldfish-go/internal/game/counters"
)

func loadDeck(t *testing.T) ([]card.Card, *card.Catalog) {
	t.Helper()
	catalog, err := card.LoadEmbedded()
	require.NoError(t, err)
	deck, err := card.ParseDeckList(card.SampleDeckList, catalog)
	require.NoError(t, err)
	return deck, catalog
}

func TestRunGame_Deterministic(t *testing.T) {
	deck, catalog := loadDeck(t)

	r1 := RunGame(deck, 54321, catalog, Options{})
	r2 := RunGame(deck, 54321, catalog, Options{})
	assert.Equal(t, r1, r2, "same seed must reproduce the same result")

	r3 := RunGame(deck, 54322, catalog, Options{})
	assert.NotEqual(t, r1.Seed, r3.Seed)
}

func TestRunGame_ConcurrentSameSeed(t *testing.T) {
	deck, catalog := loadDeck(t)

	const workers = 8
	results := make([]Result, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = RunGame(deck, 777, catalog, Options{})
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Equal(t, results[0], results[i],
			"concurrent games with one seed must not interfere")
	}
}

func TestRunGame_ResultShape(t *testing.T) {
	deck, catalog := loadDeck(t)

	for seed := uint64(1); seed <= 100; seed++ {
		r := RunGame(deck, seed, catalog, Options{})
		assert.Equal(t, seed, r.Seed)
		if r.Won {
			assert.Greater(t, r.WinTurn, 0, "seed %d", seed)
			assert.LessOrEqual(t, r.WinTurn, defaultTurnLimit, "seed %d", seed)
			assert.GreaterOrEqual(t, r.CombatDamage+r.ComboDamage, startingLife,
				"seed %d: a won game must have dealt lethal damage", seed)
		} else {
			assert.Zero(t, r.WinTurn, "seed %d: unwon games record no win turn", seed)
		}
		if r.AllColorsTurn > 0 {
			assert.GreaterOrEqual(t, r.AllColorsTurn, r.FirstBlueTurn, "seed %d", seed)
			assert.GreaterOrEqual(t, r.AllColorsTurn, r.FirstBlackTurn, "seed %d", seed)
			assert.GreaterOrEqual(t, r.AllColorsTurn, r.FirstRedTurn, "seed %d", seed)
		}
	}
}

func TestRunGame_TurnLimitOverride(t *testing.T) {
	deck, catalog := loadDeck(t)

	r := RunGame(deck, 12345, catalog, Options{TurnLimit: 3})
	if r.Won {
		assert.LessOrEqual(t, r.WinTurn, 3)
	}
}

func TestEndStep_DiscardsToHandLimit(t *testing.T) {
	g := newTestGame(t)
	consider, err := g.catalog.Get("Consider")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		g.hand.Add(consider)
	}

	g.endStep()
	assert.Equal(t, maxHandSize, g.hand.Len())
	assert.Equal(t, 3, g.graveyard.Len())
}

func TestAdvanceSagas_OneChapterPerTurn(t *testing.T) {
	g := newTestGame(t)
	saga, err := g.catalog.Get("Founding the Third Path")
	require.NoError(t, err)

	g.turn = 1
	g.enterBattlefield(saga)
	libBefore := g.library.Len()

	// The turn it entered: no chapter yet.
	g.advanceSagas()
	require.Equal(t, 1, g.battlefield.Len())
	p := g.battlefield.At(0)
	assert.Zero(t, p.Counters.Count(counters.CounterTypeLore))
	assert.Equal(t, libBefore, g.library.Len())

	// Chapters 1 and 2 each mill three.
	g.turn = 2
	g.advanceSagas()
	assert.Equal(t, 1, p.Counters.Count(counters.CounterTypeLore))
	assert.Equal(t, libBefore-3, g.library.Len())

	g.turn = 3
	g.advanceSagas()
	assert.Equal(t, 2, p.Counters.Count(counters.CounterTypeLore))
	assert.Equal(t, libBefore-6, g.library.Len())

	// Chapter 3 deals damage and the saga leaves for the graveyard.
	oppBefore := g.opponentLife
	gyBefore := g.graveyard.Len()
	g.turn = 4
	g.advanceSagas()
	assert.Zero(t, g.battlefield.Len())
	assert.Equal(t, oppBefore-2, g.opponentLife)
	assert.Equal(t, gyBefore+1, g.graveyard.Len())
}

func TestImpending_TimeCountersGateCombat(t *testing.T) {
	g := newTestGame(t)
	overlord, err := g.catalog.Get("Overlord of the Balemurk")
	require.NoError(t, err)

	g.turn = 1
	g.enterBattlefieldImpending(overlord, true)
	require.Equal(t, 1, g.battlefield.Len())
	p := g.battlefield.At(0)
	require.Equal(t, 4, p.Counters.Count(counters.CounterTypeTime))

	// While time counters remain it is not a creature and never attacks.
	assert.False(t, p.IsCreature())
	assert.False(t, p.CanAttack(5))

	for turn := 1; turn <= 4; turn++ {
		g.turn = turn
		g.endStep()
	}
	assert.Zero(t, p.Counters.Count(counters.CounterTypeTime))
	assert.True(t, p.IsCreature())
	assert.True(t, p.CanAttack(5))
}

func TestImpending_SagaLoreCountersUnaffectedByEndStep(t *testing.T) {
	g := newTestGame(t)
	saga, err := g.catalog.Get("Founding the Third Path")
	require.NoError(t, err)

	g.turn = 1
	g.enterBattlefield(saga)
	g.turn = 2
	g.advanceSagas()
	p := g.battlefield.At(0)
	require.Equal(t, 1, p.Counters.Count(counters.CounterTypeLore))

	g.endStep()
	assert.Equal(t, 1, p.Counters.Count(counters.CounterTypeLore),
		"the end step countdown must not touch lore counters")
}

func TestDrawStep_SkippedOnTurnOneOnPlay(t *testing.T) {
	deck, catalog := loadDeck(t)

	// Find seeds for both sides of the coin.
	var onPlay, onDraw *Game
	for seed := uint64(1); onPlay == nil || onDraw == nil; seed++ {
		g := NewGame(deck, seed, catalog, Options{})
		if g.onPlay && onPlay == nil {
			onPlay = g
		}
		if !g.onPlay && onDraw == nil {
			onDraw = g
		}
	}

	onPlay.turn = 1
	before := onPlay.library.Len()
	onPlay.drawStep()
	assert.Equal(t, before, onPlay.library.Len(), "on the play turn 1 skips the draw")

	onDraw.turn = 1
	before = onDraw.library.Len()
	onDraw.drawStep()
	assert.Equal(t, before-1, onDraw.library.Len(), "on the draw turn 1 draws")
}

func TestPlayLand_Errors(t *testing.T) {
	g := newTestGame(t)
	island, err := g.catalog.Get("Island")
	require.NoError(t, err)
	consider, err := g.catalog.Get("Consider")
	require.NoError(t, err)
	g.hand.Add(consider)
	g.hand.Add(island)

	err = g.PlayLand(0)
	assert.ErrorIs(t, err, ErrInvalidState, "playing a non-land is rejected")

	require.NoError(t, g.PlayLand(1))
	g.hand.Add(island)
	err = g.PlayLand(1)
	assert.ErrorIs(t, err, ErrInvalidState, "one land per turn")

	err = g.PlayLand(42)
	assert.ErrorIs(t, err, ErrInvalidState, "out-of-range hand index")
}

func TestDominantCreatureType(t *testing.T) {
	deck, _ := loadDeck(t)
	assert.Equal(t, "Nightmare", dominantCreatureType(deck))
}
