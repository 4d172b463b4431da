package sim

import (
	"fmt"
	"sort"
	"strings"

	"github.com/magefree/goldfish-go/internal/game"
)

// Report is the aggregate view of a batch. All averages are over the games
// the statistic applies to (win turn over won games, color turns over games
// where the color appeared).
type Report struct {
	Games   int
	Wins    int
	WinRate float64

	AvgWinTurn float64
	// WinTurns maps win turn to the number of games won on that turn.
	WinTurns map[int]int

	OnPlayGames int
	OnPlayWins  int
	OnDrawWins  int

	AvgCombatDamage float64
	AvgComboDamage  float64

	AvgFirstBlueTurn  float64
	AvgFirstBlackTurn float64
	AvgFirstRedTurn   float64
	AvgAllColorsTurn  float64
	// AllColorsGames counts games where every tracked color became available.
	AllColorsGames int
}

// Aggregate computes the report for a batch's results.
func Aggregate(results []game.Result) Report {
	rep := Report{
		Games:    len(results),
		WinTurns: make(map[int]int),
	}
	if rep.Games == 0 {
		return rep
	}

	winTurnSum := 0
	combatSum, comboSum := 0, 0
	blueSum, blueN := 0, 0
	blackSum, blackN := 0, 0
	redSum, redN := 0, 0
	allSum := 0

	for _, r := range results {
		combatSum += r.CombatDamage
		comboSum += r.ComboDamage
		if r.OnPlay {
			rep.OnPlayGames++
		}
		if r.Won {
			rep.Wins++
			winTurnSum += r.WinTurn
			rep.WinTurns[r.WinTurn]++
			if r.OnPlay {
				rep.OnPlayWins++
			} else {
				rep.OnDrawWins++
			}
		}
		if r.FirstBlueTurn > 0 {
			blueSum += r.FirstBlueTurn
			blueN++
		}
		if r.FirstBlackTurn > 0 {
			blackSum += r.FirstBlackTurn
			blackN++
		}
		if r.FirstRedTurn > 0 {
			redSum += r.FirstRedTurn
			redN++
		}
		if r.AllColorsTurn > 0 {
			allSum += r.AllColorsTurn
			rep.AllColorsGames++
		}
	}

	n := float64(rep.Games)
	rep.WinRate = float64(rep.Wins) / n
	rep.AvgCombatDamage = float64(combatSum) / n
	rep.AvgComboDamage = float64(comboSum) / n
	if rep.Wins > 0 {
		rep.AvgWinTurn = float64(winTurnSum) / float64(rep.Wins)
	}
	if blueN > 0 {
		rep.AvgFirstBlueTurn = float64(blueSum) / float64(blueN)
	}
	if blackN > 0 {
		rep.AvgFirstBlackTurn = float64(blackSum) / float64(blackN)
	}
	if redN > 0 {
		rep.AvgFirstRedTurn = float64(redSum) / float64(redN)
	}
	if rep.AllColorsGames > 0 {
		rep.AvgAllColorsTurn = float64(allSum) / float64(rep.AllColorsGames)
	}
	return rep
}

// String renders a human-readable report.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Games:           %d\n", r.Games)
	fmt.Fprintf(&b, "Wins:            %d (%.1f%%)\n", r.Wins, r.WinRate*100)
	if r.Wins > 0 {
		fmt.Fprintf(&b, "Avg win turn:    %.2f\n", r.AvgWinTurn)
	}
	fmt.Fprintf(&b, "On the play:     %d games, %d wins (on the draw: %d wins)\n",
		r.OnPlayGames, r.OnPlayWins, r.OnDrawWins)
	fmt.Fprintf(&b, "Avg damage:      %.1f combat / %.1f combo\n",
		r.AvgCombatDamage, r.AvgComboDamage)
	fmt.Fprintf(&b, "Color curve:     U %.2f  B %.2f  R %.2f  all %.2f (%d games)\n",
		r.AvgFirstBlueTurn, r.AvgFirstBlackTurn, r.AvgFirstRedTurn,
		r.AvgAllColorsTurn, r.AllColorsGames)

	if len(r.WinTurns) > 0 {
		turns := make([]int, 0, len(r.WinTurns))
		for t := range r.WinTurns {
			turns = append(turns, t)
		}
		sort.Ints(turns)
		b.WriteString("Win turns:\n")
		for _, t := range turns {
			fmt.Fprintf(&b, "  turn %2d: %d\n", t, r.WinTurns[t])
		}
	}
	return b.String()
}
