package game

import (
	"github.com/magefree/goldfish-go/internal/card"
	"github.com/magefree/goldfish-go/internal/game/counters"
	"github.com/magefree/goldfish-go/internal/game/mana"
)

// Permanent is a card on the battlefield plus its board-only state. It is
// created when the card enters the battlefield and destroyed when the card
// leaves; there is no implicit cleanup pass.
type Permanent struct {
	Card        card.Card
	Tapped      bool
	TurnEntered int
	Counters    *counters.Counters

	// ChosenType disambiguates Cavern of Souls: the creature type named as
	// the land entered.
	ChosenType string
	// ChosenColor disambiguates Multiversal Passage: the basic color named as
	// the land entered.
	ChosenColor mana.Color
}

// NewPermanent creates a permanent for a card entering the battlefield on the
// given turn.
func NewPermanent(c card.Card, turn int) *Permanent {
	return &Permanent{
		Card:        c,
		Tapped:      c.EntersTapped,
		TurnEntered: turn,
		Counters:    counters.NewCounters(),
	}
}

// IsCreature reports whether the permanent is currently a creature. An
// impending card with time counters remaining has not become a creature yet.
func (p *Permanent) IsCreature() bool {
	if !p.Card.IsCreature() {
		return false
	}
	return !p.Counters.Has(counters.CounterTypeTime)
}

// CanAttack reports whether the permanent may be declared as an attacker on
// the given turn: it must be a creature, untapped, and free of summoning
// sickness.
func (p *Permanent) CanAttack(turn int) bool {
	return p.IsCreature() && !p.Tapped && p.TurnEntered < turn
}
