package game

import "errors"

// Ability error taxonomy for the generic ability dispatch path. Ability
// execution is currently hard-wired as name matches inside the spell and
// battlefield-entry handlers, so no core code raises these yet; they are kept
// for the future registry-based dispatcher.
var (
	ErrInvalidAbility = errors.New("invalid ability name")
	ErrAbilityFailed  = errors.New("ability execution failed")
	ErrInvalidState   = errors.New("invalid game state")
)
