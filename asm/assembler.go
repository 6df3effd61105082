// Package asm assembles line-based mnemonic source into the bytecode the
// interpreter executes, the inverse of evm.Asm's disassembler. One
// instruction per line, ";" comments, decimal or 0x-hex PUSH operands.
package asm

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/pkg/errors"

	evm "github.com/ethgo-labs/evmlite"
)

// Instruction is one assembled source line: a mnemonic (e.g. "push1",
// "add", "dup3") and, for PUSH0..PUSH32, its immediate operand.
type Instruction struct {
	Mnemonic string  `@Ident`
	Operand  *string `@(Number | Hex)?`
}

// Program is a full assembly source: one Instruction per line. Leading
// EOLs are consumed explicitly so blank or comment-only header lines
// (whose comment token is elided but whose newline is not) still parse.
type Program struct {
	Instructions []*Instruction `EOL* (@@ EOL*)*`
}

var asmLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Comment", Pattern: `;[^\n]*`},
	{Name: "Hex", Pattern: `0[xX][0-9a-fA-F]+`},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9]*`},
	{Name: "EOL", Pattern: `\n+`},
})

var parser = participle.MustBuild[Program](
	participle.Lexer(asmLexer),
	participle.Elide("Whitespace", "Comment"),
)

// Parse parses mnemonic source into a Program AST.
func Parse(source string) (*Program, error) {
	return parser.ParseString("", source)
}

// Assemble parses source and encodes it to bytecode. Each line is one
// mnemonic (case-insensitive), optionally followed by a single immediate
// operand for PUSH0..PUSH32 (decimal or 0x-prefixed hex, zero-padded on
// the left to that PUSH's width). DUP/SWAP/arithmetic/STOP/POP/SLOAD/
// SSTORE take no operand.
func Assemble(source string) ([]byte, error) {
	prog, err := Parse(source)
	if err != nil {
		return nil, errors.Wrap(err, "parse assembly")
	}

	var out []byte
	for i, instr := range prog.Instructions {
		bs, err := instr.encode()
		if err != nil {
			return nil, errors.Wrapf(err, "instruction %d", i+1)
		}
		out = append(out, bs...)
	}
	return out, nil
}

func (in *Instruction) encode() ([]byte, error) {
	name := strings.ToUpper(in.Mnemonic)

	// go-ethereum's StringToOp doesn't know "PUSH0" at the version this
	// module pins (PUSH0/EIP-3855 postdates it, see evm.PUSH0's doc
	// comment); special-case it here so it isn't misread as STOP.
	var op vm.OpCode
	if name == "PUSH0" {
		op = vm.OpCode(evm.PUSH0)
	} else {
		op = vm.StringToOp(name)
		if op == vm.STOP && name != "STOP" {
			return nil, errors.Errorf("unknown mnemonic %q", in.Mnemonic)
		}
	}

	if !evm.IsPush(byte(op)) {
		if in.Operand != nil {
			return nil, errors.Errorf("%s takes no operand", name)
		}
		return []byte{byte(op)}, nil
	}

	n := int(op - vm.OpCode(evm.PUSH0))
	if n == 0 {
		if in.Operand != nil {
			return nil, errors.New("push0 takes no operand")
		}
		return []byte{byte(op)}, nil
	}

	if in.Operand == nil {
		return nil, errors.Errorf("%s requires an operand", name)
	}

	val, err := parseOperand(*in.Operand)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, n)
	bs := val.Bytes()
	if len(bs) > n {
		return nil, errors.Errorf("operand overflows %s's %d byte(s)", name, n)
	}
	copy(payload[n-len(bs):], bs)

	return append([]byte{byte(op)}, payload...), nil
}

func parseOperand(s string) (*wordValue, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits := s[2:]
		if len(digits)%2 != 0 {
			digits = "0" + digits
		}
		b, err := evm.DecodeHex(digits)
		if err != nil {
			return nil, err
		}
		return &wordValue{bytes: trimLeadingZeros(b)}, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "parse decimal operand")
	}
	w := evm.WordFromUint64(n)
	bs := evm.WordToBigEndian(&w)
	return &wordValue{bytes: trimLeadingZeros(bs[:])}, nil
}

// wordValue is the minimal big-endian byte view Assemble needs; it avoids
// pulling uint256 into this package's public surface.
type wordValue struct {
	bytes []byte
}

func (w *wordValue) Bytes() []byte { return w.bytes }

func trimLeadingZeros(b []byte) []byte {
	i := 0
	for i < len(b)-1 && b[i] == 0 {
		i++
	}
	return b[i:]
}
