package lang

import (
	"fmt"

	"github.com/ethan75/liquid/primitives"
)

// Table is the selector table of one contract: the immutable mapping from
// each external function's selector to its descriptor, built once at
// contract construction and read-only thereafter.
//
// Construction enforces the hard invariants: every external selector is
// unique within the contract, the constructor carries no selector and is
// reachable only through the deploy entry, and every shape was validated
// when its descriptor was built.
type Table struct {
	family      primitives.HashFamily
	constructor *Method
	ordered     []*Method                        // external functions in declaration order
	selectors   map[primitives.Selector]*Method  // selector → descriptor
	derived     map[*Method]primitives.Selector  // descriptor → its selector
}

// NewTable builds the dispatch table for a contract from its constructor and
// declared functions. It fails fast on a selector collision or a malformed
// descriptor; a contract whose table cannot be built must not initialize.
func NewTable(family primitives.HashFamily, constructor *Method, methods []*Method) (*Table, error) {
	if constructor == nil {
		return nil, fmt.Errorf("contract has no constructor")
	}
	if constructor.Kind != KindConstructor {
		return nil, fmt.Errorf("constructor descriptor has kind %s", constructor.Kind)
	}
	if err := constructor.validate(); err != nil {
		return nil, err
	}
	if constructor.HasOutput() {
		return nil, fmt.Errorf("constructor %s must not return a value", constructor.Name)
	}
	// Construction always mutates; a non-mutable constructor descriptor is a
	// registration bug.
	if !constructor.Mutable {
		return nil, fmt.Errorf("constructor %s must be mutable", constructor.Name)
	}

	t := &Table{
		family:      family,
		constructor: constructor,
		selectors:   make(map[primitives.Selector]*Method, len(methods)),
		derived:     make(map[*Method]primitives.Selector, len(methods)),
	}
	for _, m := range methods {
		if err := m.validate(); err != nil {
			return nil, err
		}
		switch m.Kind {
		case KindConstructor:
			return nil, fmt.Errorf("function %s: a contract has exactly one constructor", m.Name)
		case KindInternal:
			// Carried by the contract, never dispatched.
			continue
		}
		sel := primitives.NewSelector(family, m.Name, m.Inputs.Names())
		if prev, ok := t.selectors[sel]; ok {
			return nil, &CollisionError{Selector: sel, First: prev.Signature(), Second: m.Signature()}
		}
		t.selectors[sel] = m
		t.derived[m] = sel
		t.ordered = append(t.ordered, m)
	}
	return t, nil
}

// Family returns the hash family the table derives selectors with.
func (t *Table) Family() primitives.HashFamily {
	return t.family
}

// Constructor returns the deploy-entry descriptor.
func (t *Table) Constructor() *Method {
	return t.constructor
}

// Methods returns the external functions in declaration order.
func (t *Table) Methods() []*Method {
	return append([]*Method(nil), t.ordered...)
}

// Lookup resolves a selector to its descriptor.
func (t *Table) Lookup(sel primitives.Selector) (*Method, bool) {
	m, ok := t.selectors[sel]
	return m, ok
}

// SelectorOf returns the derived selector of a registered external function.
func (t *Table) SelectorOf(m *Method) (primitives.Selector, bool) {
	sel, ok := t.derived[m]
	return sel, ok
}
