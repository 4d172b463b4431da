package game

import (
	"go.uber.org/zap"

	"github.com/magefree/goldfish-go/internal/card"
	"github.com/magefree/goldfish-go/internal/game/counters"
)

// Ability execution is deliberately a closed set of name matches inside the
// handlers below. The tags are data in the catalog, but their behavior lives
// here; there is no open dispatch registry.

// enterBattlefield puts a card onto the battlefield, making any entry choices
// and firing enter-the-battlefield effects.
func (g *Game) enterBattlefield(c card.Card) {
	g.enterBattlefieldImpending(c, false)
}

// enterBattlefieldImpending is enterBattlefield for cards that may have been
// cast for their impending cost, entering with time counters.
func (g *Game) enterBattlefieldImpending(c card.Card, impending bool) {
	p := NewPermanent(c, g.turn)

	switch c.Name {
	case "Cavern of Souls":
		p.ChosenType = g.cavernChoice
	case "Multiversal Passage":
		p.ChosenColor = g.chooseMultiversalColor()
	}

	if impending && c.Impending > 0 {
		p.Counters.Add(counters.CounterTypeTime, c.Impending)
	}

	g.battlefield.Add(p)
	g.resolveEntryTriggers(p)
}

// resolveEntryTriggers fires the enter-the-battlefield effects of the
// permanent's ability tags.
func (g *Game) resolveEntryTriggers(p *Permanent) {
	for _, ability := range p.Card.Abilities {
		switch ability {
		case "manifest-dread":
			// Simplified manifest dread: the two looked-at cards go to the
			// graveyard, feeding reanimation.
			g.mill(2)
		case "balemurk-mill":
			g.mill(4)
		case "floodpits-surveil":
			g.surveil(2)
		case "prankster-mill":
			g.mill(4)
		}
	}
}

// resolveAttackTriggers fires attack-triggered effects for one attacker.
func (g *Game) resolveAttackTriggers(p *Permanent) {
	for _, ability := range p.Card.Abilities {
		switch ability {
		case "fomo-frenzy":
			// With a stocked graveyard the frenzy loop adds damage on top of
			// the combat total.
			if g.graveyard.Len() >= 7 {
				g.dealComboDamage(2)
			}
		case "balemurk-mill":
			g.mill(4)
		}
	}
}

// resolveSpell resolves an instant or sorcery. The card is added to the
// graveyard by the caller after resolution.
func (g *Game) resolveSpell(c card.Card) {
	for _, ability := range c.Abilities {
		switch ability {
		case "reanimate":
			g.reanimateFirstCreature()
		case "surveil-draw":
			g.surveil(1)
			if drawn, ok := g.library.Draw(); ok {
				g.hand.Add(drawn)
			}
		}
	}
}

// reanimateFirstCreature returns the first creature card in the graveyard to
// the battlefield.
func (g *Game) reanimateFirstCreature() {
	c, idx, ok := g.graveyard.FirstCreature()
	if !ok {
		return
	}
	g.graveyard.RemoveAt(idx)
	g.enterBattlefield(c)
	g.logger.Debug("reanimated", zap.String("card", c.Name))
}

// mill moves up to n cards from the top of the library to the graveyard.
func (g *Game) mill(n int) {
	for _, c := range g.library.Mill(n) {
		g.graveyard.Add(c)
	}
}

// surveil looks at the top n cards one at a time, binning each to the
// graveyard or leaving it on top. Policy: creatures are binned (they feed
// reanimation), lands are binned once four are already in play or hand,
// everything else stays.
func (g *Game) surveil(n int) {
	for i := 0; i < n; i++ {
		top, ok := g.library.Peek()
		if !ok {
			return
		}
		if !g.shouldBinSurveiledCard(top) {
			return
		}
		if c, ok := g.library.RemoveTop(); ok {
			g.graveyard.Add(c)
		}
	}
}

func (g *Game) shouldBinSurveiledCard(c card.Card) bool {
	if c.IsCreature() {
		return true
	}
	if c.IsLand() {
		landsInPlay := 0
		for _, p := range g.battlefield.Permanents() {
			if p.Card.IsLand() {
				landsInPlay++
			}
		}
		return landsInPlay+g.hand.CountLands() >= 4
	}
	return false
}

// advanceSagas runs during the draw step: every saga that entered strictly
// before the current turn gains exactly one lore counter and resolves that
// chapter. Sagas reaching their final chapter leave the battlefield in the
// same pass; removals are applied in descending index order so earlier
// indices stay valid.
func (g *Game) advanceSagas() {
	var finished []int
	for i, p := range g.battlefield.Permanents() {
		if !p.Card.IsSaga() || p.TurnEntered >= g.turn {
			continue
		}
		p.Counters.Add(counters.CounterTypeLore, 1)
		chapter := p.Counters.Count(counters.CounterTypeLore)
		g.resolveChapter(p, chapter)
		if chapter >= p.Card.Chapters {
			finished = append(finished, i)
		}
	}

	for i := len(finished) - 1; i >= 0; i-- {
		if p := g.battlefield.RemoveAt(finished[i]); p != nil {
			g.graveyard.Add(p.Card)
		}
	}
}

// resolveChapter fires the numbered chapter effect of a saga.
func (g *Game) resolveChapter(p *Permanent, chapter int) {
	for _, ability := range p.Card.Abilities {
		switch ability {
		case "third-path":
			switch chapter {
			case 1, 2:
				g.mill(3)
			case 3:
				g.dealComboDamage(2)
			}
		}
	}
	g.logger.Debug("saga chapter",
		zap.String("card", p.Card.Name),
		zap.Int("chapter", chapter),
	)
}
