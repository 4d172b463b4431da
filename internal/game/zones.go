package game

import (
	"github.com/magefree/goldfish-go/internal/card"
	"github.com/magefree/goldfish-go/internal/game/rng"
)

// Library is the ordered draw pile. Index 0 is the top.
type Library struct {
	cards []card.Card
}

// NewLibrary creates a library holding a copy of the given sequence, top
// first.
func NewLibrary(cards []card.Card) *Library {
	l := &Library{cards: make([]card.Card, len(cards))}
	copy(l.cards, cards)
	return l
}

// Len returns the number of cards remaining.
func (l *Library) Len() int {
	return len(l.cards)
}

// Draw removes and returns the top card. The second return is false when the
// library is empty.
func (l *Library) Draw() (card.Card, bool) {
	if len(l.cards) == 0 {
		return card.Card{}, false
	}
	top := l.cards[0]
	l.cards = l.cards[1:]
	return top, true
}

// Mill removes up to n cards from the top and returns them in order. Fewer
// are returned when the library empties mid-mill; that is not an error.
func (l *Library) Mill(n int) []card.Card {
	if n > len(l.cards) {
		n = len(l.cards)
	}
	milled := make([]card.Card, n)
	copy(milled, l.cards[:n])
	l.cards = l.cards[n:]
	return milled
}

// Add places a card on the bottom of the library.
func (l *Library) Add(c card.Card) {
	l.cards = append(l.cards, c)
}

// PutOnTop places cards on top of the library, preserving their order: the
// first card of the slice ends up on top.
func (l *Library) PutOnTop(cards []card.Card) {
	l.cards = append(append([]card.Card{}, cards...), l.cards...)
}

// PutOnBottom places cards on the bottom, preserving their relative order.
func (l *Library) PutOnBottom(cards []card.Card) {
	l.cards = append(l.cards, cards...)
}

// Peek returns the top card without removing it.
func (l *Library) Peek() (card.Card, bool) {
	if len(l.cards) == 0 {
		return card.Card{}, false
	}
	return l.cards[0], true
}

// RemoveTop removes the top card without returning it to any zone. The caller
// owns placing it somewhere.
func (l *Library) RemoveTop() (card.Card, bool) {
	return l.Draw()
}

// Shuffle permutes the library with the stream's Fisher-Yates shuffle.
func (l *Library) Shuffle(stream *rng.Stream) {
	stream.Shuffle(len(l.cards), func(i, j int) {
		l.cards[i], l.cards[j] = l.cards[j], l.cards[i]
	})
}

// Hand is the index-addressable hand zone. Insertion order is preserved but
// carries no game meaning.
type Hand struct {
	cards []card.Card
}

// Len returns the hand size.
func (h *Hand) Len() int {
	return len(h.cards)
}

// Add appends a card to the hand.
func (h *Hand) Add(c card.Card) {
	h.cards = append(h.cards, c)
}

// At returns the card at index i. The second return is false when i is out of
// range.
func (h *Hand) At(i int) (card.Card, bool) {
	if i < 0 || i >= len(h.cards) {
		return card.Card{}, false
	}
	return h.cards[i], true
}

// RemoveAt removes and returns the card at index i. The second return is
// false when i is out of range.
func (h *Hand) RemoveAt(i int) (card.Card, bool) {
	if i < 0 || i >= len(h.cards) {
		return card.Card{}, false
	}
	c := h.cards[i]
	h.cards = append(h.cards[:i], h.cards[i+1:]...)
	return c, true
}

// Find returns the index of the first card satisfying the predicate, or -1.
func (h *Hand) Find(pred func(card.Card) bool) int {
	for i, c := range h.cards {
		if pred(c) {
			return i
		}
	}
	return -1
}

// FindName returns the index of the first card with the given name, or -1.
func (h *Hand) FindName(name string) int {
	return h.Find(func(c card.Card) bool { return c.Name == name })
}

// Cards returns the hand contents. The slice is shared; callers must not
// mutate it.
func (h *Hand) Cards() []card.Card {
	return h.cards
}

// CountLands returns the number of lands in hand.
func (h *Hand) CountLands() int {
	n := 0
	for _, c := range h.cards {
		if c.IsLand() {
			n++
		}
	}
	return n
}

// Graveyard is the ordered discard pile.
type Graveyard struct {
	cards []card.Card
}

// Len returns the graveyard size.
func (g *Graveyard) Len() int {
	return len(g.cards)
}

// Add appends a card to the graveyard.
func (g *Graveyard) Add(c card.Card) {
	g.cards = append(g.cards, c)
}

// Cards returns the graveyard contents. The slice is shared; callers must not
// mutate it.
func (g *Graveyard) Cards() []card.Card {
	return g.cards
}

// FirstCreature returns the first creature card and its index, or ok=false
// when the graveyard holds no creature.
func (g *Graveyard) FirstCreature() (card.Card, int, bool) {
	for i, c := range g.cards {
		if c.IsCreature() {
			return c, i, true
		}
	}
	return card.Card{}, 0, false
}

// RemoveAt removes and returns the card at index i.
func (g *Graveyard) RemoveAt(i int) (card.Card, bool) {
	if i < 0 || i >= len(g.cards) {
		return card.Card{}, false
	}
	c := g.cards[i]
	g.cards = append(g.cards[:i], g.cards[i+1:]...)
	return c, true
}

// RemoveCreatures removes and returns every creature card, preserving order.
func (g *Graveyard) RemoveCreatures() []card.Card {
	var creatures, rest []card.Card
	for _, c := range g.cards {
		if c.IsCreature() {
			creatures = append(creatures, c)
		} else {
			rest = append(rest, c)
		}
	}
	g.cards = rest
	return creatures
}

// Battlefield is an index-addressable sequence of permanents. Removal
// renumbers trailing indices, so batched removals must be applied in
// descending index order.
type Battlefield struct {
	permanents []*Permanent
}

// Len returns the number of permanents.
func (b *Battlefield) Len() int {
	return len(b.permanents)
}

// Add puts a permanent onto the battlefield.
func (b *Battlefield) Add(p *Permanent) {
	b.permanents = append(b.permanents, p)
}

// At returns the permanent at index i, or nil when out of range.
func (b *Battlefield) At(i int) *Permanent {
	if i < 0 || i >= len(b.permanents) {
		return nil
	}
	return b.permanents[i]
}

// RemoveAt removes and returns the permanent at index i. Returns nil when i
// is out of range.
func (b *Battlefield) RemoveAt(i int) *Permanent {
	if i < 0 || i >= len(b.permanents) {
		return nil
	}
	p := b.permanents[i]
	b.permanents = append(b.permanents[:i], b.permanents[i+1:]...)
	return p
}

// Permanents returns the battlefield contents. The slice is shared; callers
// must not mutate it.
func (b *Battlefield) Permanents() []*Permanent {
	return b.permanents
}

// Exile is the append-only exile zone.
type Exile struct {
	cards []card.Card
}

// Len returns the exile size.
func (e *Exile) Len() int {
	return len(e.cards)
}

// Add appends a card to exile.
func (e *Exile) Add(c card.Card) {
	e.cards = append(e.cards, c)
}
