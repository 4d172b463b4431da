package game

import (
	"go.uber.org/zap"

	"github.com/magefree/goldfish-go/internal/card"
)

const (
	openingHandSize = 7
	minHandSize     = 4
	minKeepLands    = 2
)

// reanimationTargets are bottomed unconditionally when scrying after a
// mulligan: the plan wants them milled, not drawn.
var reanimationTargets = map[string]bool{
	"Abhorrent Oculus": true,
}

// millEnablers make a land-light hand worth keeping: they fill the graveyard
// and dig toward lands at the same time.
var millEnablers = map[string]bool{
	"Picklock Prankster":       true,
	"Founding the Third Path":  true,
	"Overlord of the Balemurk": true,
}

// ResolveOpeningHand runs the BO1-style opening hand protocol: two candidate
// 7-card hands, keep the better one, with an explicit mulligan-down loop and
// scry bottoming when neither qualifies. The resolver never keeps fewer than
// 4 or more than 7 cards.
func (g *Game) ResolveOpeningHand() {
	hand1 := g.drawN(openingHandSize)
	hand2 := g.drawN(openingHandSize)
	lands1 := countLands(hand1)
	lands2 := countLands(hand2)

	var keep, reject []card.Card
	switch {
	case lands1 >= minKeepLands && lands2 >= minKeepLands:
		score1 := handScore(hand1)
		score2 := handScore(hand2)
		switch {
		case score1 < score2:
			keep, reject = hand1, hand2
		case score2 < score1:
			keep, reject = hand2, hand1
		case g.rng.Coin():
			keep, reject = hand1, hand2
		default:
			keep, reject = hand2, hand1
		}
	case lands1 >= minKeepLands:
		keep, reject = hand1, hand2
	case lands2 >= minKeepLands:
		keep, reject = hand2, hand1
	default:
		// Neither hand qualifies: both go back and the mulligan-down loop
		// starts at six cards.
		g.library.PutOnBottom(hand1)
		g.library.PutOnBottom(hand2)
		g.library.Shuffle(g.rng)
		g.keepWorthyHand(g.mulliganDown(openingHandSize - 1))
		return
	}

	// The rejected hand always returns to the library before play.
	g.library.PutOnBottom(reject)
	g.library.Shuffle(g.rng)
	g.keepWorthyHand(keep)
}

// keepWorthyHand applies the post-selection worthiness test, mulliganing
// further down to the 4-card floor when the hand cannot function.
func (g *Game) keepWorthyHand(hand []card.Card) {
	size := len(hand)
	for !handWorthy(hand) && size > minHandSize {
		g.library.PutOnBottom(hand)
		g.library.Shuffle(g.rng)
		size--
		hand = g.mulliganDown(size)
	}

	for _, c := range hand {
		g.hand.Add(c)
	}
	g.logger.Debug("kept opening hand",
		zap.Int("size", len(hand)),
		zap.Int("lands", countLands(hand)),
	)
}

// mulliganDown draws successively smaller hands until one holds two lands or
// the 4-card floor is reached, then scrys the cards the smaller hand gave up.
// An explicit loop carries the hand size; recursion is not needed.
func (g *Game) mulliganDown(size int) []card.Card {
	for {
		hand := g.drawN(size)
		if countLands(hand) < minKeepLands && size > minHandSize {
			g.library.PutOnBottom(hand)
			g.library.Shuffle(g.rng)
			size--
			continue
		}
		g.scryAfterMulligan(hand, openingHandSize-size)
		return hand
	}
}

// scryAfterMulligan looks at n cards from the top and bottoms the ones the
// kept hand does not want: excess lands when the hand already holds three,
// expensive spells when the hand is short on lands, and reanimation targets
// always. Relative order is preserved within the kept and bottomed buckets.
func (g *Game) scryAfterMulligan(hand []card.Card, n int) {
	if n <= 0 {
		return
	}
	looked := g.library.Mill(n)
	lands := countLands(hand)

	var top, bottom []card.Card
	for _, c := range looked {
		switch {
		case reanimationTargets[c.Name]:
			bottom = append(bottom, c)
		case c.IsLand() && lands >= 3:
			bottom = append(bottom, c)
		case !c.IsLand() && c.ManaValue() >= 4 && lands < minKeepLands:
			bottom = append(bottom, c)
		default:
			top = append(top, c)
		}
	}

	g.library.PutOnTop(top)
	g.library.PutOnBottom(bottom)
}

// drawN draws up to n cards from the top of the library.
func (g *Game) drawN(n int) []card.Card {
	var cards []card.Card
	for i := 0; i < n; i++ {
		c, ok := g.library.Draw()
		if !ok {
			break
		}
		cards = append(cards, c)
	}
	return cards
}

// handScore rates a qualifying hand; lower is better. The land count penalty
// is the primary key (heavy below two lands, light above four, zero for 2-4)
// and total mana value breaks ties toward cheaper hands.
func handScore(hand []card.Card) int {
	lands := countLands(hand)
	penalty := 0
	switch {
	case lands < 2:
		penalty = 50 * (2 - lands)
	case lands > 4:
		penalty = 10 * (lands - 4)
	}

	manaValue := 0
	for _, c := range hand {
		if !c.IsLand() {
			manaValue += c.ManaValue()
		}
	}

	return penalty*100 + manaValue
}

// handWorthy is the post-keep test: two lands always keep; a mill enabler
// keeps regardless of lands; one land is tolerated when a cheap spell can
// come down early.
func handWorthy(hand []card.Card) bool {
	lands := countLands(hand)
	if lands >= minKeepLands {
		return true
	}
	for _, c := range hand {
		if millEnablers[c.Name] {
			return true
		}
	}
	if lands == 1 {
		for _, c := range hand {
			if !c.IsLand() && c.ManaValue() <= 2 {
				return true
			}
		}
	}
	return false
}

func countLands(cards []card.Card) int {
	n := 0
	for _, c := range cards {
		if c.IsLand() {
			n++
		}
	}
	return n
}
