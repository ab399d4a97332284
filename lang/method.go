package lang

import (
	"fmt"

	"github.com/ethan75/liquid/abi"
	"github.com/ethan75/liquid/primitives"
)

// Kind classifies a contract function. Only constructors and external
// functions participate in dispatch; internal functions are carried in the
// descriptor set for tooling but are never reachable from call data.
type Kind uint8

const (
	KindConstructor Kind = iota
	KindExternal
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindConstructor:
		return "constructor"
	case KindExternal:
		return "external"
	case KindInternal:
		return "internal"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Handler is the callable bound to a descriptor. It receives the decoded
// positional argument tuple (receiver excluded) and returns the result value,
// or nil for unit-returning functions. A non-nil error aborts the invocation:
// storage is not flushed and the error message becomes the revert diagnostic.
type Handler func(args []interface{}) (interface{}, error)

// Method is the normalized descriptor of one contract function. Output nil
// marks the unit return type: the dispatcher then terminates without a
// payload instead of emitting a meaningless empty one.
type Method struct {
	Name    string
	Kind    Kind
	Inputs  *abi.Shape // parameter shape, implicit receiver excluded
	Output  *abi.Shape // single-value return shape, nil for unit
	Mutable bool       // may mutate persistent storage
	Getter  bool       // generated public-field accessor; set explicitly, never derived from position
	Fn      Handler
}

// HasOutput reports whether the function produces a value.
func (m *Method) HasOutput() bool {
	return m.Output != nil
}

// Signature renders the canonical signature hashed for selector derivation.
func (m *Method) Signature() string {
	return primitives.Signature(m.Name, m.Inputs.Names())
}

// validate checks the descriptor invariants shared by every kind.
func (m *Method) validate() error {
	if m.Name == "" {
		return fmt.Errorf("unnamed %s function", m.Kind)
	}
	if m.Inputs == nil {
		return fmt.Errorf("function %s: nil input shape", m.Name)
	}
	if m.Output != nil && m.Output.Len() != 1 {
		return fmt.Errorf("function %s: output shape must hold exactly one type", m.Name)
	}
	if m.Fn == nil {
		return fmt.Errorf("function %s: no handler bound", m.Name)
	}
	return nil
}
