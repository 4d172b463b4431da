package game

import (
	"testing"

	"github.com/magefree/goldfish-go/internal/card"
	"github.com/magefree/goldfish-go/internal/game/rng"
)

func testCard(name string, t card.Type) card.Card {
	return card.Card{Name: name, Type: t}
}

func TestLibrary_DrawFromTop(t *testing.T) {
	lib := NewLibrary([]card.Card{
		testCard("a", card.TypeInstant),
		testCard("b", card.TypeInstant),
	})

	c, ok := lib.Draw()
	if !ok || c.Name != "a" {
		t.Fatalf("Expected to draw a, got %v ok=%v", c.Name, ok)
	}
	c, ok = lib.Draw()
	if !ok || c.Name != "b" {
		t.Fatalf("Expected to draw b, got %v ok=%v", c.Name, ok)
	}
	if _, ok := lib.Draw(); ok {
		t.Error("Expected empty library to report no card")
	}
}

func TestLibrary_MillShortfall(t *testing.T) {
	lib := NewLibrary([]card.Card{
		testCard("a", card.TypeInstant),
		testCard("b", card.TypeInstant),
	})

	milled := lib.Mill(5)
	if len(milled) != 2 {
		t.Fatalf("Expected 2 milled cards, got %d", len(milled))
	}
	if lib.Len() != 0 {
		t.Errorf("Expected empty library, got %d", lib.Len())
	}
}

func TestLibrary_PutOnTopPreservesOrder(t *testing.T) {
	lib := NewLibrary([]card.Card{testCard("c", card.TypeInstant)})
	lib.PutOnTop([]card.Card{
		testCard("a", card.TypeInstant),
		testCard("b", card.TypeInstant),
	})

	got := lib.Mill(3)
	want := []string{"a", "b", "c"}
	for i, c := range got {
		if c.Name != want[i] {
			t.Fatalf("Position %d: expected %s, got %s", i, want[i], c.Name)
		}
	}
}

func TestLibrary_ShuffleDeterministic(t *testing.T) {
	cards := make([]card.Card, 40)
	for i := range cards {
		cards[i] = testCard(string(rune('a'+i%26)), card.TypeInstant)
	}

	lib1 := NewLibrary(cards)
	lib2 := NewLibrary(cards)
	lib1.Shuffle(rng.New(9))
	lib2.Shuffle(rng.New(9))

	for lib1.Len() > 0 {
		c1, _ := lib1.Draw()
		c2, _ := lib2.Draw()
		if c1.Name != c2.Name {
			t.Fatal("Identically seeded shuffles diverged")
		}
	}
}

func TestHand_FindAndRemove(t *testing.T) {
	h := &Hand{}
	h.Add(testCard("x", card.TypeInstant))
	h.Add(testCard("y", card.TypeLand))

	if idx := h.FindName("y"); idx != 1 {
		t.Fatalf("Expected index 1, got %d", idx)
	}
	if idx := h.Find(func(c card.Card) bool { return c.IsLand() }); idx != 1 {
		t.Fatalf("Expected first land at index 1, got %d", idx)
	}

	if _, ok := h.RemoveAt(5); ok {
		t.Error("Out-of-range removal must report absence, not fail")
	}
	c, ok := h.RemoveAt(0)
	if !ok || c.Name != "x" {
		t.Fatalf("Expected to remove x, got %v", c.Name)
	}
	if h.Len() != 1 {
		t.Errorf("Expected hand size 1, got %d", h.Len())
	}
}

func TestGraveyard_FirstCreatureAndRemoveCreatures(t *testing.T) {
	gy := &Graveyard{}
	gy.Add(testCard("spell", card.TypeSorcery))
	gy.Add(testCard("bear", card.TypeCreature))
	gy.Add(testCard("wolf", card.TypeCreature))

	c, idx, ok := gy.FirstCreature()
	if !ok || c.Name != "bear" || idx != 1 {
		t.Fatalf("Expected bear at index 1, got %s at %d (ok=%v)", c.Name, idx, ok)
	}

	creatures := gy.RemoveCreatures()
	if len(creatures) != 2 {
		t.Fatalf("Expected 2 creatures removed, got %d", len(creatures))
	}
	if gy.Len() != 1 {
		t.Errorf("Expected 1 card left, got %d", gy.Len())
	}
	if _, _, ok := gy.FirstCreature(); ok {
		t.Error("Expected no creature after bulk removal")
	}
}

func TestBattlefield_DescendingRemoval(t *testing.T) {
	b := &Battlefield{}
	for _, name := range []string{"a", "b", "c", "d"} {
		b.Add(NewPermanent(testCard(name, card.TypeCreature), 1))
	}

	// Removing in descending order keeps earlier indices valid.
	for _, i := range []int{3, 1} {
		if p := b.RemoveAt(i); p == nil {
			t.Fatalf("Expected a permanent at index %d", i)
		}
	}

	if b.Len() != 2 {
		t.Fatalf("Expected 2 permanents, got %d", b.Len())
	}
	if b.At(0).Card.Name != "a" || b.At(1).Card.Name != "c" {
		t.Errorf("Unexpected survivors: %s, %s", b.At(0).Card.Name, b.At(1).Card.Name)
	}
	if b.RemoveAt(10) != nil {
		t.Error("Out-of-range removal must return nil")
	}
}
