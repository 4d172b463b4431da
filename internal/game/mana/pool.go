package mana

// Pool represents the active player's mana pool. It is a simple six-color
// accumulator; the goldfish simulation runs one game per goroutine, so no
// locking is required.
type Pool struct {
	White     int
	Blue      int
	Black     int
	Red       int
	Green     int
	Colorless int
}

// NewPool creates a new empty mana pool.
func NewPool() *Pool {
	return &Pool{}
}

// Add adds mana of the given color to the pool. Non-positive amounts are
// ignored.
func (p *Pool) Add(color Color, amount int) {
	if amount <= 0 {
		return
	}
	switch color {
	case White:
		p.White += amount
	case Blue:
		p.Blue += amount
	case Black:
		p.Black += amount
	case Red:
		p.Red += amount
	case Green:
		p.Green += amount
	case Colorless:
		p.Colorless += amount
	}
}

// Amount returns the amount of a specific color currently in the pool.
func (p *Pool) Amount(color Color) int {
	switch color {
	case White:
		return p.White
	case Blue:
		return p.Blue
	case Black:
		return p.Black
	case Red:
		return p.Red
	case Green:
		return p.Green
	case Colorless:
		return p.Colorless
	default:
		return 0
	}
}

// Total returns the total mana count across all colors.
func (p *Pool) Total() int {
	return p.White + p.Blue + p.Black + p.Red + p.Green + p.Colorless
}

// CanPay reports whether the pool holds enough mana for the cost: every
// colored requirement individually, and enough total mana to also cover the
// generic portion.
func (p *Pool) CanPay(cost Cost) bool {
	for _, color := range Colors {
		if p.Amount(color) < cost.Amount(color) {
			return false
		}
	}
	return p.Total() >= cost.Total()
}

// Pay removes the cost from the pool. Colored requirements are paid first;
// the generic portion is then paid preferring colorless, falling back to
// colors in WUBRG order. Pay only mutates the pool when CanPay succeeds and
// returns false otherwise.
func (p *Pool) Pay(cost Cost) bool {
	if !p.CanPay(cost) {
		return false
	}

	p.White -= cost.White
	p.Blue -= cost.Blue
	p.Black -= cost.Black
	p.Red -= cost.Red
	p.Green -= cost.Green
	p.Colorless -= cost.Colorless

	generic := cost.Generic
	order := []Color{Colorless, White, Blue, Black, Red, Green}
	for _, color := range order {
		if generic <= 0 {
			break
		}
		spend := generic
		if available := p.Amount(color); spend > available {
			spend = available
		}
		switch color {
		case White:
			p.White -= spend
		case Blue:
			p.Blue -= spend
		case Black:
			p.Black -= spend
		case Red:
			p.Red -= spend
		case Green:
			p.Green -= spend
		case Colorless:
			p.Colorless -= spend
		}
		generic -= spend
	}

	return true
}

// Empty empties the mana pool. Called at the start of every turn.
func (p *Pool) Empty() {
	p.White = 0
	p.Blue = 0
	p.Black = 0
	p.Red = 0
	p.Green = 0
	p.Colorless = 0
}

// Copy creates a copy of the mana pool.
func (p *Pool) Copy() *Pool {
	c := *p
	return &c
}
