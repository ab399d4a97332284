// Package lang is the contract call-dispatch engine: it derives a selector
// table from function descriptors, routes incoming call data to the matching
// function, decodes arguments through the ABI shape adapter, gates storage
// flushes on mutability, and turns every failure into a single revert at the
// environment boundary.
package lang

import (
	"errors"
	"fmt"

	"github.com/ethan75/liquid/primitives"
)

// Runtime dispatch failures. All are terminal for the invocation; their
// messages are the diagnostics carried across the revert boundary.
var (
	// ErrCouldNotReadInput: the environment failed to supply call data.
	ErrCouldNotReadInput = errors.New("could not read input")
	// ErrUnknownSelector: no registered external function matches.
	ErrUnknownSelector = errors.New("unknown selector")
	// ErrInvalidParams: the byte layout does not match the expected shape.
	ErrInvalidParams = errors.New("invalid params")
)

// CollisionError reports two external functions whose derived selectors
// coincide. It is raised at table construction, never at call time: a
// collision would make one function permanently unreachable, so contract
// initialization must halt.
type CollisionError struct {
	Selector primitives.Selector
	First    string // canonical signature registered first
	Second   string // canonical signature colliding with it
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("selector collision: %s and %s both derive %s", e.First, e.Second, e.Selector)
}
