package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/magefree/goldfish-go/internal/card"
	"github.com/magefree/goldfish-go/internal/game/counters"
	"github.com/magefree/goldfish-go/internal/game/mana"
	"github.com/magefree/goldfish-go/internal/game/rng"
)

const (
	startingLife     = 20
	maxHandSize      = 7
	defaultTurnLimit = 20
)

// TrackedColors are the colors whose first-available turn is recorded in the
// result. They match the reference deck's color identity.
var TrackedColors = []mana.Color{mana.Blue, mana.Black, mana.Red}

// Result is the immutable output record of one game.
type Result struct {
	Seed    uint64 `json:"seed"`
	Won     bool   `json:"won"`
	WinTurn int    `json:"win_turn"` // 0 when the game never ended
	OnPlay  bool   `json:"on_play"`

	CombatDamage int `json:"combat_damage"`
	ComboDamage  int `json:"combo_damage"`

	// First turn each tracked color could be produced; 0 = never.
	FirstBlueTurn  int `json:"first_blue_turn"`
	FirstBlackTurn int `json:"first_black_turn"`
	FirstRedTurn   int `json:"first_red_turn"`
	// First turn all three tracked colors were simultaneously available.
	AllColorsTurn int `json:"all_colors_turn"`
}

// Options configures a single game run.
type Options struct {
	// Logger receives a Debug-level game trace. Nil disables logging.
	Logger *zap.Logger
	// TurnLimit overrides the 20-turn ceiling; zero keeps the default.
	TurnLimit int
}

// Game holds the full state of one goldfish game. Everything inside a game is
// single-threaded and synchronous; concurrency happens at whole-game
// granularity only.
type Game struct {
	catalog *card.Catalog
	rng     *rng.Stream
	logger  *zap.Logger

	library     *Library
	hand        *Hand
	graveyard   *Graveyard
	battlefield *Battlefield
	exile       *Exile
	pool        *mana.Pool

	turn         int
	step         Step
	onPlay       bool
	landPlayed   bool
	life         int
	opponentLife int

	// cavernChoice is the creature type Cavern of Souls names as it enters:
	// the most common creature subtype of the deck, fixed at game start.
	cavernChoice string

	combatDamage   int
	comboDamage    int
	colorFirstTurn map[mana.Color]int
	allColorsTurn  int
	winTurn        int
}

// NewGame constructs a fresh game: the deck is cloned and shuffled into the
// library, and the play/draw flip is taken. The RNG consumption order is
// fixed: play/draw coin first, then the deck shuffle, then any mulligan
// draws and tie-breaks.
func NewGame(deck []card.Card, seed uint64, catalog *card.Catalog, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Game{
		catalog:        catalog,
		rng:            rng.New(seed),
		logger:         logger,
		hand:           &Hand{},
		graveyard:      &Graveyard{},
		battlefield:    &Battlefield{},
		exile:          &Exile{},
		pool:           mana.NewPool(),
		life:           startingLife,
		opponentLife:   startingLife,
		colorFirstTurn: make(map[mana.Color]int),
		cavernChoice:   dominantCreatureType(deck),
	}

	g.onPlay = g.rng.Coin()
	g.library = NewLibrary(deck)
	g.library.Shuffle(g.rng)

	return g
}

// RunGame plays one full game and returns its result. It is a pure function
// of (deck, seed, catalog): the same inputs always produce the same result,
// no matter how many other games run concurrently.
func RunGame(deck []card.Card, seed uint64, catalog *card.Catalog, opts Options) Result {
	g := NewGame(deck, seed, catalog, opts)
	g.ResolveOpeningHand()

	limit := opts.TurnLimit
	if limit <= 0 {
		limit = defaultTurnLimit
	}

	for g.turn < limit && g.winTurn == 0 {
		g.playTurn()
	}

	result := Result{
		Seed:          seed,
		Won:           g.winTurn > 0,
		WinTurn:       g.winTurn,
		OnPlay:        g.onPlay,
		CombatDamage:  g.combatDamage,
		ComboDamage:   g.comboDamage,
		AllColorsTurn: g.allColorsTurn,
	}
	result.FirstBlueTurn = g.colorFirstTurn[mana.Blue]
	result.FirstBlackTurn = g.colorFirstTurn[mana.Black]
	result.FirstRedTurn = g.colorFirstTurn[mana.Red]
	return result
}

// playTurn runs one full cycle of the turn sequence.
func (g *Game) playTurn() {
	for _, step := range turnSequence {
		g.step = step
		switch step {
		case StepUntap:
			g.untapStep()
		case StepDraw:
			g.drawStep()
		case StepMain1, StepMain2:
			g.mainPhase()
		case StepCombat:
			g.combatStep()
		case StepEnd:
			g.endStep()
		}
		if g.winTurn > 0 {
			return
		}
	}
}

// untapStep advances the turn counter, untaps every permanent, and resets the
// per-turn land drop and the mana pool.
func (g *Game) untapStep() {
	g.turn++
	g.landPlayed = false
	g.pool.Empty()
	for _, p := range g.battlefield.Permanents() {
		p.Tapped = false
	}
	g.logger.Debug("turn start", zap.Int("turn", g.turn))
}

// drawStep draws a card (skipped on turn 1 on the play) and then advances
// sagas that entered before this turn.
func (g *Game) drawStep() {
	if g.turn != 1 || !g.onPlay {
		if c, ok := g.library.Draw(); ok {
			g.hand.Add(c)
			g.logger.Debug("drew card", zap.String("card", c.Name))
		}
	}
	g.advanceSagas()
}

// mainPhase plays a land, records color availability, and casts spells
// greedily in priority order.
func (g *Game) mainPhase() {
	if g.step == StepMain1 {
		g.playBestLand()
		g.recordColorAvailability()
	}
	g.castSpells()
}

// combatStep attacks with every eligible creature and applies damage to the
// opponent's life total.
func (g *Game) combatStep() {
	damage := 0
	for _, p := range g.battlefield.Permanents() {
		if !p.CanAttack(g.turn) {
			continue
		}
		p.Tapped = true
		damage += p.Card.Power
		g.resolveAttackTriggers(p)
		if g.winTurn > 0 {
			return
		}
	}
	if damage > 0 {
		g.combatDamage += damage
		g.dealDamage(damage)
		g.logger.Debug("combat damage", zap.Int("damage", damage), zap.Int("opponent_life", g.opponentLife))
	}
}

// endStep runs the impending countdown and discards down to the hand limit.
func (g *Game) endStep() {
	// Time counters tick down on creature cards only. Sagas use lore counters
	// counting up and must never be touched here.
	for _, p := range g.battlefield.Permanents() {
		if p.Card.IsCreature() && p.Counters.Has(counters.CounterTypeTime) {
			p.Counters.Remove(counters.CounterTypeTime, 1)
		}
	}

	for g.hand.Len() > maxHandSize {
		// Discard from the end of hand; no selection heuristic is applied.
		if c, ok := g.hand.RemoveAt(g.hand.Len() - 1); ok {
			g.graveyard.Add(c)
		}
	}
}

// dealDamage applies damage to the opponent and records the win turn when the
// life total is exhausted.
func (g *Game) dealDamage(damage int) {
	g.opponentLife -= damage
	if g.opponentLife <= 0 && g.winTurn == 0 {
		g.winTurn = g.turn
		g.logger.Debug("win", zap.Int("turn", g.turn))
	}
}

// dealComboDamage applies non-combat damage, tracked separately.
func (g *Game) dealComboDamage(damage int) {
	if damage <= 0 {
		return
	}
	g.comboDamage += damage
	g.dealDamage(damage)
}

// PlayLand moves the land at the given hand index onto the battlefield. It is
// exposed for the feasibility oracle and tests; mainPhase drives it during a
// normal game. Playing a non-land is a caller logic error.
func (g *Game) PlayLand(handIndex int) error {
	c, ok := g.hand.At(handIndex)
	if !ok {
		return fmt.Errorf("%w: no card at hand index %d", ErrInvalidState, handIndex)
	}
	if !c.IsLand() {
		return fmt.Errorf("%w: %s is not a land", ErrInvalidState, c.Name)
	}
	if g.landPlayed {
		return fmt.Errorf("%w: land already played this turn", ErrInvalidState)
	}

	g.hand.RemoveAt(handIndex)
	g.landPlayed = true
	g.enterBattlefield(c)
	g.logger.Debug("played land", zap.String("card", c.Name))
	return nil
}

// playBestLand picks the land in hand that adds the most new producible
// colors to the board, breaking ties by hand order.
func (g *Game) playBestLand() {
	if g.landPlayed {
		return
	}

	current := g.availableColorSet()
	bestIdx := -1
	bestGain := -1
	for i, c := range g.hand.Cards() {
		if !c.IsLand() {
			continue
		}
		gain := 0
		for _, color := range g.landColorPreview(c) {
			if !current[color] {
				gain++
			}
		}
		if gain > bestGain {
			bestGain = gain
			bestIdx = i
		}
	}

	if bestIdx >= 0 {
		_ = g.PlayLand(bestIdx)
	}
}

// castSpells repeatedly casts the highest-priority affordable spell until
// nothing else can be cast.
func (g *Game) castSpells() {
	for {
		if !g.castNextSpell() {
			return
		}
		if g.winTurn > 0 {
			return
		}
	}
}

// castPriority is the fixed order the driver attempts casts in. Impending
// names are tried at their impending cost.
var castPriority = []string{
	"Stitch Together",
	"Abhorrent Oculus",
	"Overlord of the Balemurk",
	"Overlord of the Floodpits",
	"Fear of Missing Out",
	"Founding the Third Path",
	"Picklock Prankster",
	"Consider",
}

func (g *Game) castNextSpell() bool {
	for _, name := range castPriority {
		idx := g.hand.FindName(name)
		if idx < 0 {
			continue
		}
		c, _ := g.hand.At(idx)

		// Reanimation needs a target before it is worth casting.
		if c.HasAbility("reanimate") {
			if _, _, ok := g.graveyard.FirstCreature(); !ok {
				continue
			}
		}

		if g.tryCast(idx, c) {
			return true
		}
	}
	return false
}

// tryCast pays for and resolves the card at the given hand index. Impending
// creatures are cast for their impending cost when the full cost is not
// affordable.
func (g *Game) tryCast(idx int, c card.Card) bool {
	ctx := CastContext{Card: &c}

	cost := c.Cost
	impending := false
	if !g.CanAffordCost(cost, ctx) {
		if c.Impending == 0 {
			return false
		}
		cost = c.ImpendingCost
		impending = true
		if !g.CanAffordCost(cost, ctx) {
			return false
		}
	}

	if !g.TapLandsForCost(cost, ctx) {
		return false
	}

	g.hand.RemoveAt(idx)
	g.logger.Debug("cast spell", zap.String("card", c.Name), zap.Bool("impending", impending))

	switch c.Type {
	case card.TypeInstant, card.TypeSorcery:
		g.resolveSpell(c)
		g.graveyard.Add(c)
	default:
		g.enterBattlefieldImpending(c, impending)
	}
	return true
}

// recordColorAvailability notes the first turn each tracked color (and their
// conjunction) could be produced by an untapped land.
func (g *Game) recordColorAvailability() {
	available := g.availableColorSet()
	allPresent := true
	for _, color := range TrackedColors {
		if available[color] {
			if g.colorFirstTurn[color] == 0 {
				g.colorFirstTurn[color] = g.turn
			}
		} else {
			allPresent = false
		}
	}
	if allPresent && g.allColorsTurn == 0 {
		g.allColorsTurn = g.turn
	}
}

// OpponentLife returns the opponent's remaining life total.
func (g *Game) OpponentLife() int {
	return g.opponentLife
}

// Turn returns the current turn number.
func (g *Game) Turn() int {
	return g.turn
}

// dominantCreatureType returns the most common creature subtype in the deck,
// used as the Cavern of Souls naming choice. Ties break by first appearance.
func dominantCreatureType(deck []card.Card) string {
	count := make(map[string]int)
	var order []string
	for _, c := range deck {
		if !c.IsCreature() {
			continue
		}
		for _, s := range c.Subtypes {
			if count[s] == 0 {
				order = append(order, s)
			}
			count[s]++
		}
	}

	best := ""
	bestCount := 0
	for _, s := range order {
		if count[s] > bestCount {
			best = s
			bestCount = count[s]
		}
	}
	return best
}
