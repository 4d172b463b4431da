package card

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/magefree/goldfish-go/internal/game/mana"
)

//go:embed cards.json
var embeddedCards []byte

// ErrCardNotFound is returned by Catalog.Get for unknown card names.
var ErrCardNotFound = fmt.Errorf("card not found")

// Catalog is an immutable card lookup table. It is safe to share between any
// number of concurrent games.
type Catalog struct {
	cards map[string]Card
}

// cardRecord is the JSON wire format of a catalog entry.
type cardRecord struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Cost          string   `json:"cost,omitempty"`
	Subtypes      []string `json:"subtypes,omitempty"`
	Abilities     []string `json:"abilities,omitempty"`
	Power         int      `json:"power,omitempty"`
	Toughness     int      `json:"toughness,omitempty"`
	Impending     int      `json:"impending,omitempty"`
	ImpendingCost string   `json:"impending_cost,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Basic         bool     `json:"basic,omitempty"`
	EntersTapped  bool     `json:"enters_tapped,omitempty"`
	Chapters      int      `json:"chapters,omitempty"`
}

type catalogFile struct {
	Cards []cardRecord `json:"cards"`
}

// LoadEmbedded loads the catalog compiled into the binary.
func LoadEmbedded() (*Catalog, error) {
	return parseCatalog(embeddedCards)
}

// LoadFile loads a catalog from a JSON file on disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	cards := make(map[string]Card, len(file.Cards))
	for _, rec := range file.Cards {
		c, err := rec.toCard()
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", rec.Name, err)
		}
		if _, dup := cards[c.Name]; dup {
			return nil, fmt.Errorf("card %q: duplicate catalog entry", c.Name)
		}
		cards[c.Name] = c
	}

	return &Catalog{cards: cards}, nil
}

func (rec cardRecord) toCard() (Card, error) {
	if rec.Name == "" {
		return Card{}, fmt.Errorf("missing name")
	}

	cost, err := mana.ParseCost(rec.Cost)
	if err != nil {
		return Card{}, err
	}
	impendingCost, err := mana.ParseCost(rec.ImpendingCost)
	if err != nil {
		return Card{}, err
	}

	var colors []mana.Color
	for _, sym := range rec.Colors {
		color, err := colorFromSymbol(sym)
		if err != nil {
			return Card{}, err
		}
		colors = append(colors, color)
	}

	switch Type(rec.Type) {
	case TypeLand, TypeCreature, TypeInstant, TypeSorcery, TypeEnchantment, TypeSaga:
	default:
		return Card{}, fmt.Errorf("unknown card type %q", rec.Type)
	}

	return Card{
		Name:          rec.Name,
		Type:          Type(rec.Type),
		Cost:          cost,
		Subtypes:      rec.Subtypes,
		Abilities:     rec.Abilities,
		Power:         rec.Power,
		Toughness:     rec.Toughness,
		Impending:     rec.Impending,
		ImpendingCost: impendingCost,
		Colors:        colors,
		Basic:         rec.Basic,
		EntersTapped:  rec.EntersTapped,
		Chapters:      rec.Chapters,
	}, nil
}

func colorFromSymbol(sym string) (mana.Color, error) {
	switch sym {
	case "W":
		return mana.White, nil
	case "U":
		return mana.Blue, nil
	case "B":
		return mana.Black, nil
	case "R":
		return mana.Red, nil
	case "G":
		return mana.Green, nil
	case "C":
		return mana.Colorless, nil
	default:
		return "", fmt.Errorf("unknown color symbol %q", sym)
	}
}

// Get looks up a card by name.
func (cat *Catalog) Get(name string) (Card, error) {
	c, ok := cat.cards[name]
	if !ok {
		return Card{}, fmt.Errorf("%w: %s", ErrCardNotFound, name)
	}
	return c, nil
}

// Size returns the number of cards in the catalog.
func (cat *Catalog) Size() int {
	return len(cat.cards)
}
