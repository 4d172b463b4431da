package mana

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Color represents a color of mana.
type Color string

const (
	White     Color = "WHITE"
	Blue      Color = "BLUE"
	Black     Color = "BLACK"
	Red       Color = "RED"
	Green     Color = "GREEN"
	Colorless Color = "COLORLESS"
)

// Colors lists every color in WUBRG-C order. Iteration over costs and pools
// always uses this order so that payment is deterministic.
var Colors = []Color{White, Blue, Black, Red, Green, Colorless}

// Symbol returns the single-letter cost symbol for the color.
func (c Color) Symbol() string {
	switch c {
	case White:
		return "W"
	case Blue:
		return "U"
	case Black:
		return "B"
	case Red:
		return "R"
	case Green:
		return "G"
	case Colorless:
		return "C"
	default:
		return "?"
	}
}

// Cost represents a parsed mana cost. Generic mana can be paid by any color.
type Cost struct {
	Generic   int
	White     int
	Blue      int
	Black     int
	Red       int
	Green     int
	Colorless int
}

var costPattern = regexp.MustCompile(`\{([^}]+)\}`)

// ParseCost parses a mana cost string (e.g., "{1}{U}", "{2}{B}{B}").
// Supports generic ({1}, {2}, ...) and colored ({W}, {U}, {B}, {R}, {G}, {C})
// symbols. Hybrid and X symbols are not part of the simulated card pool.
func ParseCost(costStr string) (Cost, error) {
	cost := Cost{}
	if costStr == "" {
		return cost, nil
	}

	matches := costPattern.FindAllStringSubmatch(costStr, -1)
	for _, match := range matches {
		if len(match) < 2 {
			continue
		}
		symbol := strings.ToUpper(strings.TrimSpace(match[1]))

		switch symbol {
		case "W":
			cost.White++
		case "U":
			cost.Blue++
		case "B":
			cost.Black++
		case "R":
			cost.Red++
		case "G":
			cost.Green++
		case "C":
			cost.Colorless++
		default:
			num, err := strconv.Atoi(symbol)
			if err != nil {
				return Cost{}, fmt.Errorf("unknown mana symbol: {%s}", symbol)
			}
			cost.Generic += num
		}
	}

	return cost, nil
}

// MustParseCost parses a cost and panics on failure. Catalog data is validated
// at load time, so this is only used for literals in code and tests.
func MustParseCost(costStr string) Cost {
	cost, err := ParseCost(costStr)
	if err != nil {
		panic(err)
	}
	return cost
}

// Amount returns the number of pips of the given color in the cost.
func (c Cost) Amount(color Color) int {
	switch color {
	case White:
		return c.White
	case Blue:
		return c.Blue
	case Black:
		return c.Black
	case Red:
		return c.Red
	case Green:
		return c.Green
	case Colorless:
		return c.Colorless
	default:
		return 0
	}
}

// Pips expands the colored portion of the cost into one Color per required
// unit, in WUBRG-C order. Generic units are not included.
func (c Cost) Pips() []Color {
	var pips []Color
	for _, color := range Colors {
		for i := 0; i < c.Amount(color); i++ {
			pips = append(pips, color)
		}
	}
	return pips
}

// Total returns the converted mana value: every colored pip plus generic.
func (c Cost) Total() int {
	return c.White + c.Blue + c.Black + c.Red + c.Green + c.Colorless + c.Generic
}

// String returns the cost in symbol notation, generic first.
func (c Cost) String() string {
	var sb strings.Builder
	if c.Generic > 0 {
		fmt.Fprintf(&sb, "{%d}", c.Generic)
	}
	for _, color := range Colors {
		for i := 0; i < c.Amount(color); i++ {
			sb.WriteString("{" + color.Symbol() + "}")
		}
	}
	if sb.Len() == 0 {
		return "{0}"
	}
	return sb.String()
}
