package evm

import (
	"fmt"

	"github.com/ethereum/go-ethereum/core/vm"
)

// Sentinel errors for the failure conditions that carry no extra data.
var (
	// ErrStackOverflow is returned when a push would exceed the 1024-entry
	// stack bound.
	ErrStackOverflow = fmt.Errorf("stack overflow: maximum stack size is 1024")

	// ErrStackUnderflow is returned by pop/top/at/peek/swap when the stack
	// does not hold enough entries for the request.
	ErrStackUnderflow = fmt.Errorf("stack underflow")

	// ErrMemoryOutOfBounds is reserved for the memory opcodes (MLOAD/
	// MSTORE/MSTORE8) this core does not yet implement.
	ErrMemoryOutOfBounds = fmt.Errorf("memory access out of bounds")
)

// InvalidOpcodeError reports a byte that does not match any opcode this VM
// recognizes, either by exact match or by family predicate.
type InvalidOpcodeError struct {
	Op byte
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode: 0x%02x (%s)", e.Op, vm.OpCode(e.Op).String())
}

// InvalidPushError reports a PUSHn whose payload runs past the end of the
// bytecode.
type InvalidPushError struct {
	Op byte
	N  int
}

func (e *InvalidPushError) Error() string {
	return fmt.Sprintf("invalid push: %s needs %d payload byte(s) past end of bytecode", vm.OpCode(e.Op).String(), e.N)
}

// InvalidDupError reports a DUPk with fewer than k stack entries.
type InvalidDupError struct {
	K int
}

func (e *InvalidDupError) Error() string {
	return fmt.Sprintf("invalid dup: DUP%d requires at least %d stack entries", e.K, e.K)
}

// InvalidSwapError reports a SWAPk with at most k stack entries.
type InvalidSwapError struct {
	K int
}

func (e *InvalidSwapError) Error() string {
	return fmt.Sprintf("invalid swap: SWAP%d requires more than %d stack entries", e.K, e.K)
}

// InvalidHexError reports malformed input to DecodeHex.
type InvalidHexError struct {
	Message string
}

func (e *InvalidHexError) Error() string {
	return fmt.Sprintf("invalid hex string: %s", e.Message)
}
