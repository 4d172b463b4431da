package game

import (
	"sort"

	"github.com/magefree/goldfish-go/internal/card"
	"github.com/magefree/goldfish-go/internal/game/mana"
)

// startingTownLifeFloor is the life total Starting Town needs to stay above
// to offer any color; tapping it for colored mana costs 1 life.
const startingTownLifeFloor = 5

// Lands whose presence unlocks the Verges' second color, keyed by verge name.
var vergeEnablers = map[string][]string{
	"Gloomlake Verge": {"Island", "Swamp"},
	"Blazemire Verge": {"Swamp", "Mountain"},
}

var vergeSecondColor = map[string]mana.Color{
	"Gloomlake Verge": mana.Black,
	"Blazemire Verge": mana.Red,
}

var allColors = []mana.Color{mana.White, mana.Blue, mana.Black, mana.Red, mana.Green, mana.Colorless}

// CastContext carries the spell a payment is for. Conditional lands (Cavern
// of Souls) resolve differently depending on what is being cast; a zero
// context asks for unconditional availability.
type CastContext struct {
	Card *card.Card
}

// producibleColors computes the colors an untapped land can produce right
// now. The result depends on current board state and life total, so it is
// re-evaluated on every call and never cached.
func (g *Game) producibleColors(p *Permanent, ctx CastContext) []mana.Color {
	if !p.Card.IsLand() {
		return nil
	}

	switch p.Card.Name {
	case "Cavern of Souls":
		if ctx.Card != nil && ctx.Card.IsCreature() && p.ChosenType != "" && ctx.Card.HasSubtype(p.ChosenType) {
			return allColors
		}
		return []mana.Color{mana.Colorless}

	case "Multiversal Passage":
		if p.ChosenColor == "" {
			return nil
		}
		return []mana.Color{p.ChosenColor}

	case "Starting Town":
		if g.life > startingTownLifeFloor {
			return allColors
		}
		return []mana.Color{mana.Colorless}

	case "Gloomlake Verge", "Blazemire Verge":
		colors := append([]mana.Color{}, p.Card.Colors...)
		if g.controlsAnyLandNamed(vergeEnablers[p.Card.Name], p) {
			colors = append(colors, vergeSecondColor[p.Card.Name])
		}
		return colors

	default:
		return p.Card.Colors
	}
}

// controlsAnyLandNamed reports whether a land with one of the given names is
// on the battlefield, excluding the permanent asking.
func (g *Game) controlsAnyLandNamed(names []string, except *Permanent) bool {
	for _, p := range g.battlefield.Permanents() {
		if p == except || !p.Card.IsLand() {
			continue
		}
		for _, name := range names {
			if p.Card.Name == name {
				return true
			}
		}
	}
	return false
}

// manaSource pairs an untapped land with its currently producible colors.
type manaSource struct {
	perm   *Permanent
	colors map[mana.Color]bool
}

func (s manaSource) produces(c mana.Color) bool {
	return s.colors[c]
}

// untappedSources collects every untapped land able to produce at least one
// color under the given context, in battlefield order.
func (g *Game) untappedSources(ctx CastContext) []manaSource {
	var sources []manaSource
	for _, p := range g.battlefield.Permanents() {
		if !p.Card.IsLand() || p.Tapped {
			continue
		}
		colors := g.producibleColors(p, ctx)
		if len(colors) == 0 {
			continue
		}
		set := make(map[mana.Color]bool, len(colors))
		for _, c := range colors {
			set[c] = true
		}
		sources = append(sources, manaSource{perm: p, colors: set})
	}
	return sources
}

// CanAffordCost reports whether the current untapped lands can pay the cost.
// It first rejects on raw land count, then runs an exact backtracking
// assignment of each colored pip to a distinct land; generic units are
// wildcards covered by the count check. Multi-color lands make greedy
// color-by-color assignment unsound, hence the exact search.
func (g *Game) CanAffordCost(cost mana.Cost, ctx CastContext) bool {
	sources := g.untappedSources(ctx)
	if len(sources) < cost.Total() {
		return false
	}
	used := make([]bool, len(sources))
	return assignPips(cost.Pips(), 0, sources, used)
}

// assignPips assigns pips[idx:] to distinct unused sources, backtracking on
// failure.
func assignPips(pips []mana.Color, idx int, sources []manaSource, used []bool) bool {
	if idx == len(pips) {
		return true
	}
	for i := range sources {
		if used[i] || !sources[i].produces(pips[idx]) {
			continue
		}
		used[i] = true
		if assignPips(pips, idx+1, sources, used) {
			used[i] = false
			return true
		}
		used[i] = false
	}
	return false
}

// TapLandsForCost realizes a feasible assignment: it taps the chosen lands,
// adds their mana to the pool, and pays the cost from the pool. Lands whose
// producible set is a single color are preferred for matching pips so that
// flexible multi-color lands stay available; colored pips are paid before
// generic, and generic is paid from the narrowest remaining lands.
// If CanAffordCost reports payable, TapLandsForCost succeeds.
func (g *Game) TapLandsForCost(cost mana.Cost, ctx CastContext) bool {
	sources := g.untappedSources(ctx)
	if len(sources) < cost.Total() {
		return false
	}

	// Candidate order per pip: fewest producible colors first, battlefield
	// order as tie-break. The first assignment the search finds is then the
	// flexibility-preserving one.
	order := make([]int, len(sources))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len(sources[order[a]].colors) < len(sources[order[b]].colors)
	})

	pips := cost.Pips()
	used := make([]bool, len(sources))
	assignment := make([]int, len(pips))
	if !searchAssignment(pips, 0, sources, order, used, assignment) {
		return false
	}

	for k, pip := range pips {
		g.tapForMana(sources[assignment[k]].perm, pip, sources[assignment[k]])
	}

	// Generic from whatever remains, narrowest lands first.
	remaining := 0
	for _, i := range order {
		if remaining == cost.Generic {
			break
		}
		if used[i] {
			continue
		}
		src := sources[i]
		g.tapForMana(src.perm, naturalColor(src), src)
		remaining++
	}

	return g.pool.Pay(cost)
}

// searchAssignment is the backtracking search used by payment, trying
// candidates in preference order and recording the chosen source per pip.
func searchAssignment(pips []mana.Color, idx int, sources []manaSource, order []int, used []bool, assignment []int) bool {
	if idx == len(pips) {
		return true
	}
	for _, i := range order {
		if used[i] || !sources[i].produces(pips[idx]) {
			continue
		}
		used[i] = true
		assignment[idx] = i
		if searchAssignment(pips, idx+1, sources, order, used, assignment) {
			return true
		}
		used[i] = false
	}
	return false
}

// tapForMana taps a land for one mana of the given color. Starting Town's
// colored mode costs 1 life.
func (g *Game) tapForMana(p *Permanent, color mana.Color, src manaSource) {
	if !src.produces(color) {
		// Payment planning guarantees this; reaching it is a defect.
		color = naturalColor(src)
	}
	p.Tapped = true
	g.pool.Add(color, 1)
	if p.Card.Name == "Starting Town" && color != mana.Colorless {
		g.life--
	}
}

// naturalColor picks the color a land taps for when any will do: colorless if
// possible, otherwise the first in WUBRG order.
func naturalColor(src manaSource) mana.Color {
	if src.colors[mana.Colorless] {
		return mana.Colorless
	}
	for _, c := range mana.Colors {
		if src.colors[c] {
			return c
		}
	}
	return mana.Colorless
}

// availableColorSet reports which colors the untapped lands can produce
// without a cast context. Cavern of Souls counts as colorless here since its
// colored mode exists only toward a matching creature spell.
func (g *Game) availableColorSet() map[mana.Color]bool {
	available := make(map[mana.Color]bool)
	for _, src := range g.untappedSources(CastContext{}) {
		for c := range src.colors {
			available[c] = true
		}
	}
	return available
}

// landColorPreview returns the colors a land in hand would produce if played
// right now, applying the same entry choices enterBattlefield would make.
func (g *Game) landColorPreview(c card.Card) []mana.Color {
	p := NewPermanent(c, g.turn)
	switch c.Name {
	case "Multiversal Passage":
		p.ChosenColor = g.chooseMultiversalColor()
	case "Cavern of Souls":
		p.ChosenType = g.cavernChoice
	}
	return g.producibleColors(p, CastContext{})
}

// chooseMultiversalColor picks the first tracked color the board cannot
// currently produce, defaulting to the first tracked color.
func (g *Game) chooseMultiversalColor() mana.Color {
	available := g.availableColorSet()
	for _, color := range TrackedColors {
		if !available[color] {
			return color
		}
	}
	return TrackedColors[0]
}
