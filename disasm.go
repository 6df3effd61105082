package evm

import (
	"fmt"
)

// Line is one disassembled instruction: its program counter, decoded
// opcode, and (for PUSH0..PUSH32) its immediate payload bytes.
type Line struct {
	PC   int
	Op   OpCode
	Data []byte
}

func (l *Line) String() string {
	if len(l.Data) == 0 {
		return fmt.Sprintf("%6d %s", l.PC, l.Op.String())
	}
	return fmt.Sprintf("%6d %s %s", l.PC, l.Op.String(), EncodeHex(l.Data))
}

// Asm is a disassembled instruction stream, indexed both by sequence
// position and by the program counter each instruction starts at. It only
// ever sees hand-written bytecode, never real deployed contracts, so
// there is no trailing Solidity metadata to strip.
type Asm struct {
	sequence []*Line
	byPC     map[int]*Line
}

// NewAsm returns an empty instruction stream.
func NewAsm() *Asm {
	return &Asm{byPC: map[int]*Line{}}
}

// LineCount returns the number of decoded instructions.
func (a *Asm) LineCount() int { return len(a.sequence) }

// AtRow returns the line at sequence position row.
func (a *Asm) AtRow(row int) *Line { return a.sequence[row] }

// LineAtPC returns the line starting at program counter pc.
func (a *Asm) LineAtPC(pc int) (*Line, error) {
	line, ok := a.byPC[pc]
	if !ok {
		return nil, fmt.Errorf("invalid pc: %d", pc)
	}
	return line, nil
}

// Disasm decodes code into a sequence of Lines. Unlike the interpreter,
// it does not execute PUSH immediates or validate DUP/SWAP stack depth;
// it only needs to know how many payload bytes each PUSH consumes to stay
// aligned. An opcode this core does not recognize stops disassembly at
// that point rather than erroring, so a partially-valid stream can still
// be inspected up to the bad byte.
func (a *Asm) Disasm(code []byte) error {
	a.sequence = nil
	a.byPC = map[int]*Line{}

	pc := 0
	for pc < len(code) {
		op := code[pc]

		size := 0
		if IsPush(op) {
			size = int(op - byte(PUSH0))
		} else if !IsArithmetic(op) && !IsDup(op) && !IsSwap(op) &&
			OpCode(op) != STOP && OpCode(op) != POP &&
			OpCode(op) != SLOAD && OpCode(op) != SSTORE {
			return nil
		}

		if pc+1+size > len(code) {
			return nil
		}

		line := &Line{
			PC:   pc,
			Op:   OpCode(op),
			Data: code[pc+1 : pc+1+size],
		}
		a.sequence = append(a.sequence, line)
		a.byPC[pc] = line

		pc += 1 + size
	}
	return nil
}
