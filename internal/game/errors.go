package game

import (
	"errors"
	"fmt"
)

// Sentinels for the three failure kinds. Use errors.Is to classify:
// ErrNotFound is a bad request, ErrInvalidState means "not now",
// ErrRuleViolation means the action breaks a game rule.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidState  = errors.New("invalid game state")
	ErrRuleViolation = errors.New("rule violation")
)

// NotFoundError reports a player or card absent from the expected collection.
type NotFoundError struct {
	Kind  string // "player" or "card"
	ID    string
	Where string // collection searched, e.g. "hand"
}

func (e *NotFoundError) Error() string {
	if e.Where != "" {
		return fmt.Sprintf("%s %s not found in %s", e.Kind, e.ID, e.Where)
	}
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StateError reports an action attempted in the wrong phase or lifecycle state,
// or by a player who already acted.
type StateError struct {
	Op     string
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *StateError) Is(target error) bool {
	return target == ErrInvalidState
}

// RuleError reports an action the rules forbid with the current entities,
// such as investing a resource the player does not hold.
type RuleError struct {
	Op     string
	Reason string
	Err    error
}

func (e *RuleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *RuleError) Is(target error) bool {
	return target == ErrRuleViolation
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

func stateErrorf(op, format string, args ...interface{}) error {
	return &StateError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

func ruleErrorf(op, format string, args ...interface{}) error {
	return &RuleError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
