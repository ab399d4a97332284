// Package env defines the execution environment boundary the dispatcher runs
// against: call-data retrieval and the finish/revert termination primitives.
// The hosting environment guarantees one invocation per execution context.
package env

import (
	"errors"

	"github.com/ethan75/liquid/primitives"
)

// CallMode selects which entry protocol the call data is read for.
type CallMode int

const (
	// ModeCall routes through the selector table: the wire shape is
	// [4-byte selector][ABI-encoded positional arguments].
	ModeCall CallMode = iota
	// ModeDeploy targets the constructor: ABI-encoded arguments only,
	// no selector prefix.
	ModeDeploy
)

func (m CallMode) String() string {
	switch m {
	case ModeCall:
		return "call"
	case ModeDeploy:
		return "deploy"
	}
	return "unknown"
}

// CallData is one decoded unit of incoming invocation data: the call frame
// for a single dispatch. In deploy mode Selector is zero.
type CallData struct {
	Selector primitives.Selector
	Data     []byte
}

// ErrTruncatedInput is returned when call-mode input is too short to carry a
// selector.
var ErrTruncatedInput = errors.New("call data shorter than a selector")

// Environment is the contract between the dispatcher and its host. Finish
// and Revert terminate the invocation; a success path calls Finish at most
// once, and every failure path funnels through Revert exactly once.
type Environment interface {
	GetCallData(mode CallMode) (*CallData, error)
	Finish(ret []byte)
	Revert(msg string)
}

// SplitCallData interprets raw input bytes for the given mode. Call mode
// peels the selector prefix; deploy mode passes the bytes through untouched,
// selector bytes present or not.
func SplitCallData(mode CallMode, input []byte) (*CallData, error) {
	if mode == ModeDeploy {
		return &CallData{Data: input}, nil
	}
	if len(input) < primitives.SelectorLength {
		return nil, ErrTruncatedInput
	}
	return &CallData{
		Selector: primitives.SelectorFromBytes(input),
		Data:     input[primitives.SelectorLength:],
	}, nil
}
