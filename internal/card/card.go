package card

import (
	"github.com/magefree/goldfish-go/internal/game/mana"
)

// Type is the variant tag of a card.
type Type string

const (
	TypeLand        Type = "Land"
	TypeCreature    Type = "Creature"
	TypeInstant     Type = "Instant"
	TypeSorcery     Type = "Sorcery"
	TypeEnchantment Type = "Enchantment"
	TypeSaga        Type = "Saga"
)

// Card is an immutable card definition. Cards are value data once loaded from
// the catalog and are cloned freely between zones; no aliasing is required.
type Card struct {
	Name     string
	Type     Type
	Cost     mana.Cost
	Subtypes []string
	// Abilities holds name tags. Execution is special-cased by string match
	// inside the spell and battlefield-entry handlers; there is no generic
	// dispatch mechanism.
	Abilities []string

	// Creature fields.
	Power     int
	Toughness int
	// Impending is the number of time counters the creature enters with when
	// cast for its impending cost; zero means the card has no impending mode.
	Impending     int
	ImpendingCost mana.Cost

	// Land fields.
	Colors       []mana.Color
	Basic        bool
	EntersTapped bool

	// Saga fields.
	Chapters int
}

// IsLand reports whether the card is a land.
func (c Card) IsLand() bool {
	return c.Type == TypeLand
}

// IsCreature reports whether the card is a creature.
func (c Card) IsCreature() bool {
	return c.Type == TypeCreature
}

// IsSaga reports whether the card is a saga.
func (c Card) IsSaga() bool {
	return c.Type == TypeSaga
}

// ManaValue returns the converted mana value of the card's full cost.
func (c Card) ManaValue() int {
	return c.Cost.Total()
}

// HasAbility reports whether the card carries the named ability tag.
func (c Card) HasAbility(name string) bool {
	for _, a := range c.Abilities {
		if a == name {
			return true
		}
	}
	return false
}

// HasSubtype reports whether the card has the given subtype.
func (c Card) HasSubtype(subtype string) bool {
	for _, s := range c.Subtypes {
		if s == subtype {
			return true
		}
	}
	return false
}
