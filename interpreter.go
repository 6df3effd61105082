package evm

// VM is a single bytecode execution context: one stack, one memory, one
// storage map, run through a fetch/decode/dispatch loop. There is no
// CALL/CREATE and therefore no frame nesting.
//
// Stack, Memory and Storage persist across successive Execute calls on the
// same VM; pc and running reset at the start of every call.
type VM struct {
	stack   *Stack[Word]
	memory  Memory
	storage *Storage
	Hooks   Hooks

	code    []byte
	pc      int
	running bool
}

// NewVM returns a VM with an empty stack, memory and storage map.
func NewVM() *VM {
	return &VM{
		stack:   NewStack[Word](),
		storage: NewStorage(),
	}
}

// Execute runs bytecode from pc 0 until STOP, running out of bytes, or an
// error. pc and running are reset on entry; Stack/Memory/Storage are not,
// so successive Execute calls on the same VM compose. Any attached Hooks
// run immediately before and after each instruction, except that the
// pre-instruction hooks are skipped for the first instruction (see
// Continue); a hook error (such as ErrBreakpoint) halts execution and is
// returned to the caller.
func (vm *VM) Execute(bytecode []byte) error {
	vm.Load(bytecode)
	return vm.Continue()
}

// Load resets pc to 0 and arms the VM to single-step or continue through
// bytecode, without running any instruction yet. cmd/levm's "n" (single
// step) and "c" (continue) commands rely on this split.
func (vm *VM) Load(bytecode []byte) {
	vm.code = bytecode
	vm.pc = 0
	vm.running = len(bytecode) > 0
}

// Running reports whether the loaded program has neither hit STOP nor run
// past the end of its bytecode nor errored.
func (vm *VM) Running() bool { return vm.running && vm.pc < len(vm.code) }

// StepOnce executes exactly one instruction at the current pc, running
// Hooks around it. Used by cmd/levm's single-step command. The instruction
// it steps to always runs regardless of any attached breakpoint: a single
// step is never itself trapped, only Continue's later instructions are.
func (vm *VM) StepOnce() error {
	return vm.stepOnce(true)
}

// Continue repeatedly executes instructions until the program stops
// running or an error is returned. A breakpoint Hook's ErrBreakpoint does
// not clear running: the pc it fired at is left untouched, so a later
// Continue (or StepOnce) resumes there. The first instruction of each
// Continue call skips the pre-instruction hooks, otherwise resuming at a
// breakpoint's own pc would re-trap on the very next Continue.
func (vm *VM) Continue() error {
	skipPreHook := true
	for vm.Running() {
		if err := vm.stepOnce(skipPreHook); err != nil {
			return err
		}
		skipPreHook = false
	}
	vm.running = false
	return nil
}

// stepOnce executes the instruction at the current pc. skipPreHook bypasses
// the pre-instruction Hooks (and so any breakpoint) for this one step.
// Execution errors (as opposed to a Hook/breakpoint error) are terminal
// and clear running.
func (vm *VM) stepOnce(skipPreHook bool) error {
	if !vm.Running() {
		return nil
	}

	op := vm.code[vm.pc]
	line := &Line{PC: vm.pc, Op: OpCode(op)}

	if !skipPreHook {
		if err := vm.Hooks.preRunAll(vm, line); err != nil {
			return err
		}
	}

	if err := vm.step(op, vm.code); err != nil {
		vm.running = false
		return err
	}

	return vm.Hooks.postRunAll(vm, line)
}

// step decodes and dispatches a single instruction, advancing pc past the
// opcode byte (and, for PUSH, its immediate payload). Dispatch order:
// exact-match opcodes first (STOP, POP, SLOAD, SSTORE), then the
// arithmetic family, then the PUSH/DUP/SWAP families; anything left over
// is InvalidOpcode.
func (vm *VM) step(op byte, bytecode []byte) error {
	switch OpCode(op) {
	case STOP:
		vm.running = false
		vm.pc++
		return nil

	case POP:
		if _, err := vm.stack.Pop(); err != nil {
			return err
		}
		vm.pc++
		return nil

	case SLOAD:
		if err := handleSload(vm.storage, vm.stack); err != nil {
			return err
		}
		vm.pc++
		return nil

	case SSTORE:
		if err := handleSstore(vm.storage, vm.stack); err != nil {
			return err
		}
		vm.pc++
		return nil
	}

	switch {
	case IsArithmetic(op):
		if err := handleArithmetic(op, vm.stack); err != nil {
			return err
		}
		vm.pc++
		return nil

	case IsPush(op):
		vm.pc++ // past the opcode byte; handlePush advances past the payload
		return handlePush(op, vm.stack, bytecode, &vm.pc)

	case IsDup(op):
		if err := handleDup(op, vm.stack); err != nil {
			return err
		}
		vm.pc++
		return nil

	case IsSwap(op):
		if err := handleSwap(op, vm.stack); err != nil {
			return err
		}
		vm.pc++
		return nil
	}

	return &InvalidOpcodeError{Op: op}
}

// StackTop returns the value on top of the stack without popping it.
func (vm *VM) StackTop() (Word, error) {
	return vm.stack.Top()
}

// Stack exposes the VM's stack for CLI/test inspection.
func (vm *VM) Stack() *Stack[Word] { return vm.stack }

// Storage exposes the VM's storage map for CLI/test inspection.
func (vm *VM) Storage() *Storage { return vm.storage }

// Memory exposes the VM's memory for CLI/test inspection.
func (vm *VM) Memory() *Memory { return &vm.memory }

// PC returns the program counter at the point execution stopped.
func (vm *VM) PC() int { return vm.pc }

// Code returns the bytecode last passed to Load/Execute.
func (vm *VM) Code() []byte { return vm.code }
