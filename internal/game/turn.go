package game

import "fmt"

// Step represents the steps of a goldfish turn, visited in fixed order. One
// cycle through the sequence is one turn. Termination (win or turn ceiling)
// is checked by the game driver, not the turn structure.
type Step int

const (
	StepUntap Step = iota
	StepDraw
	StepMain1
	StepCombat
	StepMain2
	StepEnd
)

var stepNames = map[Step]string{
	StepUntap:  "UNTAP",
	StepDraw:   "DRAW",
	StepMain1:  "MAIN1",
	StepCombat: "COMBAT",
	StepMain2:  "MAIN2",
	StepEnd:    "END",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STEP_%d", int(s))
}

// turnSequence is the fixed step order of a turn.
var turnSequence = []Step{
	StepUntap,
	StepDraw,
	StepMain1,
	StepCombat,
	StepMain2,
	StepEnd,
}
