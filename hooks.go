package evm

import (
	"github.com/pkg/errors"
)

// ErrBreakpoint is the sentinel a BreakAtPC/BreakAtOp hook returns to halt
// execution; cmd/levm treats it as "paused", not "crashed".
var ErrBreakpoint = errors.New("breakpoint")

// Hook observes every instruction a VM executes. Hooks are attached
// in-process only; there is no persisted debug session to restore them
// from.
type Hook interface {
	// PreStep runs before line is executed; a non-nil error halts the VM.
	PreStep(vm *VM, line *Line) error
	// PostStep runs after line is executed; a non-nil error halts the VM.
	PostStep(vm *VM, line *Line) error
}

// EmptyHook is embeddable by hooks that only care about one of
// PreStep/PostStep.
type EmptyHook struct{}

func (EmptyHook) PreStep(*VM, *Line) error  { return nil }
func (EmptyHook) PostStep(*VM, *Line) error { return nil }

// Hooks is an ordered list of attached Hooks, invoked in attachment order.
type Hooks struct {
	arr []Hook
}

func (hks *Hooks) Attach(h Hook) { hks.arr = append(hks.arr, h) }

func (hks *Hooks) Detach(i int) {
	if i >= 0 && i < len(hks.arr) {
		hks.arr = append(hks.arr[:i], hks.arr[i+1:]...)
	}
}

func (hks *Hooks) List() []Hook { return hks.arr }

func (hks *Hooks) preRunAll(vm *VM, line *Line) error {
	var err error
	for _, h := range hks.arr {
		if e := h.PreStep(vm, line); e != nil {
			err = e
		}
	}
	return err
}

func (hks *Hooks) postRunAll(vm *VM, line *Line) error {
	var err error
	for _, h := range hks.arr {
		if e := h.PostStep(vm, line); e != nil {
			err = e
		}
	}
	return err
}

// BreakAtPC halts the VM with ErrBreakpoint the moment execution reaches
// the given program counter.
type BreakAtPC struct {
	EmptyHook
	PC int
}

func (bp *BreakAtPC) PreStep(_ *VM, line *Line) error {
	if line.PC != bp.PC {
		return nil
	}
	return errors.Wrapf(ErrBreakpoint, "@ pc %d", bp.PC)
}

// BreakAtOp halts the VM immediately before it executes any instance of
// the given opcode.
type BreakAtOp struct {
	EmptyHook
	Op OpCode
}

func (bp *BreakAtOp) PreStep(_ *VM, line *Line) error {
	if line.Op != bp.Op {
		return nil
	}
	return errors.Wrapf(ErrBreakpoint, "@ opcode %s", bp.Op.String())
}
