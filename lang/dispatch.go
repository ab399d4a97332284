package lang

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"

	"github.com/ethan75/liquid/env"
)

// State is the slice of the storage collaborator the dispatcher needs:
// commit staged mutations on success, drop them on failure. The storage
// instance itself is owned by the embedding code and borrowed exclusively
// for the duration of one invocation.
type State interface {
	Flush() error
	Discard()
}

// Dispatcher executes one invocation against a contract's selector table.
// It is single-use per call frame in spirit but carries no per-invocation
// state of its own, so reuse across sequential invocations is fine; the
// hosting environment guarantees there are no concurrent ones.
type Dispatcher struct {
	table *Table
	env   env.Environment
	state State
	log   log.Logger
}

// NewDispatcher wires a dispatcher to its collaborators.
func NewDispatcher(table *Table, environment env.Environment, state State) *Dispatcher {
	return &Dispatcher{
		table: table,
		env:   environment,
		state: state,
		log:   log.New("module", "dispatch"),
	}
}

// Call runs the selector-routed entry: read call data, match the selector,
// decode, invoke, flush if the function mutates, emit the result. The
// returned error is terminal for the invocation; Execute converts it into
// the environment-level revert.
func (d *Dispatcher) Call() error {
	callCounter.Inc(1)

	cd, err := d.env.GetCallData(env.ModeCall)
	if err != nil {
		inputErrCounter.Inc(1)
		return ErrCouldNotReadInput
	}

	m, ok := d.table.Lookup(cd.Selector)
	if !ok {
		unknownCounter.Inc(1)
		d.log.Debug("No function for selector", "selector", cd.Selector)
		return ErrUnknownSelector
	}
	d.log.Debug("Selector matched", "selector", cd.Selector, "function", m.Name, "mutable", m.Mutable)

	args, err := m.Inputs.Unpack(cd.Data)
	if err != nil {
		invalidCounter.Inc(1)
		d.log.Debug("Argument decode failed", "function", m.Name, "err", err)
		return ErrInvalidParams
	}

	result, err := m.Fn(args)
	if err != nil {
		// Handler aborted: no flush, the handler's message is the diagnostic.
		return err
	}

	if m.Mutable {
		if err := d.state.Flush(); err != nil {
			return fmt.Errorf("storage flush: %v", err)
		}
	}

	if m.HasOutput() {
		ret, err := m.Output.Pack(result)
		if err != nil {
			// Shapes are validated at construction; this means the handler
			// returned a value its descriptor does not describe.
			return fmt.Errorf("function %s returned malformed value: %v", m.Name, err)
		}
		d.env.Finish(ret)
	}
	return nil
}

// Deploy runs the constructor entry. Deploy-mode call data is decoded
// directly against the constructor's shape, with no selector matching; the
// constructor is the sole target. Storage is flushed unconditionally, since
// construction always mutates. There is no return value path.
func (d *Dispatcher) Deploy() error {
	deployCounter.Inc(1)

	cd, err := d.env.GetCallData(env.ModeDeploy)
	if err != nil {
		inputErrCounter.Inc(1)
		return ErrCouldNotReadInput
	}

	ctor := d.table.Constructor()
	args, err := ctor.Inputs.Unpack(cd.Data)
	if err != nil {
		invalidCounter.Inc(1)
		d.log.Debug("Constructor decode failed", "err", err)
		return ErrInvalidParams
	}

	if _, err := ctor.Fn(args); err != nil {
		return err
	}
	if err := d.state.Flush(); err != nil {
		return fmt.Errorf("storage flush: %v", err)
	}
	d.log.Debug("Contract deployed", "constructor", ctor.Name)
	return nil
}

// Execute is the process boundary: it runs the entry for mode and converts
// any terminal failure into a single environment revert carrying the
// diagnostic. A reverted invocation discards whatever it staged, so the
// cells of a shared state never leak into a later invocation's flush.
// Success paths have either already finished with a payload or exit
// silently.
func (d *Dispatcher) Execute(mode env.CallMode) {
	var err error
	switch mode {
	case env.ModeDeploy:
		err = d.Deploy()
	default:
		err = d.Call()
	}
	if err != nil {
		revertCounter.Inc(1)
		d.state.Discard()
		d.env.Revert(err.Error())
	}
}

// HashType reports the build-mode discriminator of the table's hash family:
// 0 for keccak256 deployments, 1 for the GM flavor. A pure constant lookup,
// not part of dispatch proper.
func (d *Dispatcher) HashType() uint32 {
	return d.table.Family().Tag()
}
