package evm

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/core/vm"
)

// OpCode is a single bytecode instruction byte. Reusing go-ethereum's
// vm.OpCode gives this VM correct opcode names (vm.OpCode.String()) for
// free instead of hand-maintaining a byte-to-name table.
type OpCode = vm.OpCode

// Opcode byte constants for the subset this core implements, re-exported
// from go-ethereum/core/vm so call sites read like EVM mnemonics instead
// of a hand-rolled duplicate table.
const (
	STOP = vm.STOP

	ADD        = vm.ADD
	MUL        = vm.MUL
	SUB        = vm.SUB
	DIV        = vm.DIV
	SDIV       = vm.SDIV
	MOD        = vm.MOD
	SMOD       = vm.SMOD
	ADDMOD     = vm.ADDMOD
	MULMOD     = vm.MULMOD
	EXP        = vm.EXP
	SIGNEXTEND = vm.SIGNEXTEND

	LT     = vm.LT
	GT     = vm.GT
	SLT    = vm.SLT
	SGT    = vm.SGT
	EQ     = vm.EQ
	ISZERO = vm.ISZERO
	AND    = vm.AND
	OR     = vm.OR
	XOR    = vm.XOR
	NOT    = vm.NOT
	BYTE   = vm.BYTE
	SHL    = vm.SHL
	SHR    = vm.SHR
	SAR    = vm.SAR

	POP = vm.POP

	SLOAD  = vm.SLOAD
	SSTORE = vm.SSTORE

	DUP1  = vm.DUP1
	SWAP1 = vm.SWAP1
)

// PUSH0 (EIP-3855) is defined locally rather than as `vm.PUSH0`: the
// go-ethereum version this module otherwise pins (see go.mod) predates
// go-ethereum's Shanghai-hardfork work and does not export a PUSH0
// constant in core/vm. Every other opcode constant in this file is a
// real `vm.OpCode` value from that pinned version; only this one byte
// has no upstream source to alias, so it is declared directly against
// its EIP-3855 value instead.
const PUSH0 OpCode = 0x5F

// arithmeticOps is the set of opcodes the arithmetic handler accepts; every
// other byte reaching it is InvalidOpcode.
var arithmeticOps = mapset.NewSet(
	ADD, MUL, SUB, DIV, SDIV, MOD, SMOD, ADDMOD, MULMOD, EXP, SIGNEXTEND,
	LT, GT, SLT, SGT, EQ, ISZERO, AND, OR, XOR, NOT, BYTE, SHL, SHR, SAR,
)

// pushOps, dupOps and swapOps back IsPush/IsDup/IsSwap with explicit set
// membership instead of range comparisons, and double as the source of
// truth for SupportedOpcodes' CLI listing.
var (
	pushOps = func() mapset.Set[OpCode] {
		s := mapset.NewSet[OpCode](PUSH0)
		for op := vm.PUSH1; op <= vm.PUSH32; op++ {
			s.Add(op)
		}
		return s
	}()
	dupOps = func() mapset.Set[OpCode] {
		s := mapset.NewSet[OpCode]()
		for op := vm.DUP1; op <= vm.DUP16; op++ {
			s.Add(op)
		}
		return s
	}()
	swapOps = func() mapset.Set[OpCode] {
		s := mapset.NewSet[OpCode]()
		for op := vm.SWAP1; op <= vm.SWAP16; op++ {
			s.Add(op)
		}
		return s
	}()
)

// IsPush reports whether op is PUSH0..PUSH32.
func IsPush(op byte) bool { return pushOps.Contains(OpCode(op)) }

// IsDup reports whether op is DUP1..DUP16.
func IsDup(op byte) bool { return dupOps.Contains(OpCode(op)) }

// IsSwap reports whether op is SWAP1..SWAP16.
func IsSwap(op byte) bool { return swapOps.Contains(OpCode(op)) }

// IsArithmetic reports whether op is one of the arithmetic/bitwise/
// comparison family handled by handleArithmetic.
func IsArithmetic(op byte) bool { return arithmeticOps.Contains(OpCode(op)) }

// SupportedOpcodes returns the full set of opcodes this VM recognizes,
// exact-match and family members alike. Used by the CLI's `help opcodes`.
func SupportedOpcodes() mapset.Set[OpCode] {
	known := mapset.NewSet(STOP, POP, SLOAD, SSTORE)
	known = known.Union(arithmeticOps)
	known = known.Union(pushOps)
	known = known.Union(dupOps)
	known = known.Union(swapOps)
	return known
}
