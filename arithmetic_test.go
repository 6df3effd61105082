package evm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func runArith(t *testing.T, op OpCode, operands ...uint64) *Stack[Word] {
	t.Helper()
	s := NewStack[Word]()
	for _, o := range operands {
		assert.NoError(t, s.Push(WordFromUint64(o)))
	}
	assert.NoError(t, handleArithmetic(byte(op), s))
	return s
}

func top(t *testing.T, s *Stack[Word]) *Word {
	t.Helper()
	v, err := s.Top()
	assert.NoError(t, err)
	return &v
}

func TestArithmeticAdd(t *testing.T) {
	s := runArith(t, ADD, 2, 1) // pushed 2 then 1: top=1(a), second=2(b)
	assert.Equal(t, uint64(3), top(t, s).Uint64())
}

func TestArithmeticAddWraps(t *testing.T) {
	s := NewStack[Word]()
	s.Push(MaxWord)
	s.Push(OneWord)
	assert.NoError(t, handleArithmetic(byte(ADD), s))
	assert.True(t, top(t, s).IsZero())
}

func TestArithmeticMul(t *testing.T) {
	s := runArith(t, MUL, 3, 4)
	assert.Equal(t, uint64(12), top(t, s).Uint64())
}

func TestArithmeticSub(t *testing.T) {
	s := runArith(t, SUB, 5, 10) // a=10(top), b=5 -> 10-5
	assert.Equal(t, uint64(5), top(t, s).Uint64())
}

func TestArithmeticDivByZero(t *testing.T) {
	// runArith pushes args bottom-first, so the first arg (0) ends up as
	// b (the second popped, the divisor) and the second arg (6) as a.
	s := runArith(t, DIV, 0, 6)
	assert.True(t, top(t, s).IsZero())
}

func TestArithmeticSdivDivByZero(t *testing.T) {
	s := runArith(t, SDIV, 0, 6)
	assert.True(t, top(t, s).IsZero())
}

func TestArithmeticModDivByZero(t *testing.T) {
	s := runArith(t, MOD, 0, 6)
	assert.True(t, top(t, s).IsZero())
}

func TestArithmeticSmodDivByZero(t *testing.T) {
	s := runArith(t, SMOD, 0, 6)
	assert.True(t, top(t, s).IsZero())
}

func TestArithmeticAddmodModZero(t *testing.T) {
	s := runArith(t, ADDMOD, 0, 1, 2)
	assert.True(t, top(t, s).IsZero())
}

func TestArithmeticMulmodModZero(t *testing.T) {
	s := runArith(t, MULMOD, 0, 1, 2)
	assert.True(t, top(t, s).IsZero())
}

func TestArithmeticAddmod(t *testing.T) {
	// pushed n=5, b=4, a=3 -> pop order a=3,b=4,n=5 -> (3+4) mod 5 = 2
	s := runArith(t, ADDMOD, 5, 4, 3)
	assert.Equal(t, uint64(2), top(t, s).Uint64())
}

func TestArithmeticMulmod(t *testing.T) {
	// pop order a=3, b=4, n=5 -> (3*4) mod 5 = 2
	s := runArith(t, MULMOD, 5, 4, 3)
	assert.Equal(t, uint64(2), top(t, s).Uint64())
}

func TestArithmeticExp(t *testing.T) {
	// pop order base=2(top), exp=10 -> 2^10 = 1024
	s := runArith(t, EXP, 10, 2)
	assert.Equal(t, uint64(1024), top(t, s).Uint64())
}

func TestArithmeticNotIsInvolution(t *testing.T) {
	s := NewStack[Word]()
	s.Push(WordFromUint64(0x1234))
	assert.NoError(t, handleArithmetic(byte(NOT), s))
	assert.NoError(t, handleArithmetic(byte(NOT), s))
	assert.Equal(t, uint64(0x1234), top(t, s).Uint64())
}

func TestArithmeticXorSelfIsZero(t *testing.T) {
	s := NewStack[Word]()
	a := WordFromUint64(0xabcd)
	s.Push(a)
	s.Push(a)
	assert.NoError(t, handleArithmetic(byte(XOR), s))
	assert.True(t, top(t, s).IsZero())
}

func TestArithmeticAndWithMaxIsIdentity(t *testing.T) {
	s := NewStack[Word]()
	a := WordFromUint64(0xabcd)
	s.Push(a)
	s.Push(MaxWord)
	assert.NoError(t, handleArithmetic(byte(AND), s))
	assert.Equal(t, uint64(0xabcd), top(t, s).Uint64())
}

func TestArithmeticOrWithZeroIsIdentity(t *testing.T) {
	s := NewStack[Word]()
	a := WordFromUint64(0xabcd)
	s.Push(a)
	s.Push(ZeroWord)
	assert.NoError(t, handleArithmetic(byte(OR), s))
	assert.Equal(t, uint64(0xabcd), top(t, s).Uint64())
}

func TestArithmeticXorExample(t *testing.T) {
	// PUSH1 0xff; PUSH1 0xf0; XOR -> 0x0f
	s := runArith(t, XOR, 0xff, 0xf0)
	assert.Equal(t, uint64(0x0f), top(t, s).Uint64())
}

func TestArithmeticIsZero(t *testing.T) {
	s := NewStack[Word]()
	s.Push(ZeroWord)
	assert.NoError(t, handleArithmetic(byte(ISZERO), s))
	assert.Equal(t, uint64(1), top(t, s).Uint64())
}

func TestArithmeticEq(t *testing.T) {
	s := runArith(t, EQ, 4, 4)
	assert.Equal(t, uint64(1), top(t, s).Uint64())
}

func TestArithmeticLtGt(t *testing.T) {
	s := runArith(t, LT, 5, 3) // a=3(top), b=5 -> 3<5
	assert.Equal(t, uint64(1), top(t, s).Uint64())

	s = runArith(t, GT, 3, 5) // a=5(top), b=3 -> 5>3
	assert.Equal(t, uint64(1), top(t, s).Uint64())
}

func TestArithmeticShiftsAtOrAbove256AreZero(t *testing.T) {
	s := NewStack[Word]()
	s.Push(WordFromUint64(1)) // value
	shift := BigEndianToWord([]byte{1, 0})
	s.Push(shift) // shift = 256
	assert.NoError(t, handleArithmetic(byte(SHL), s))
	assert.True(t, top(t, s).IsZero())

	s = NewStack[Word]()
	s.Push(WordFromUint64(1))
	s.Push(shift)
	assert.NoError(t, handleArithmetic(byte(SHR), s))
	assert.True(t, top(t, s).IsZero())
}

func TestArithmeticSarLargeShiftNegative(t *testing.T) {
	s := NewStack[Word]()
	s.Push(MaxWord) // value = -1, negative
	shift := BigEndianToWord([]byte{1, 0})
	s.Push(shift)
	assert.NoError(t, handleArithmetic(byte(SAR), s))
	assert.Equal(t, MaxWord, *top(t, s))
}

func TestArithmeticSarLargeShiftPositive(t *testing.T) {
	s := NewStack[Word]()
	s.Push(OneWord) // value = 1, non-negative
	shift := BigEndianToWord([]byte{1, 0})
	s.Push(shift)
	assert.NoError(t, handleArithmetic(byte(SAR), s))
	assert.True(t, top(t, s).IsZero())
}

func TestArithmeticByte(t *testing.T) {
	// BYTE(0, x) is the most significant byte of x
	s := NewStack[Word]()
	x := BigEndianToWord([]byte{0xab, 0xcd})
	s.Push(x)
	s.Push(ZeroWord) // i=0, most significant byte
	assert.NoError(t, handleArithmetic(byte(BYTE), s))
	assert.Equal(t, uint64(0), top(t, s).Uint64())

	s = NewStack[Word]()
	s.Push(x)
	s.Push(WordFromUint64(31)) // i=31, least significant byte
	assert.NoError(t, handleArithmetic(byte(BYTE), s))
	assert.Equal(t, uint64(0xcd), top(t, s).Uint64())
}

func TestArithmeticByteOutOfRangeIsZero(t *testing.T) {
	s := NewStack[Word]()
	s.Push(MaxWord)
	s.Push(WordFromUint64(32))
	assert.NoError(t, handleArithmetic(byte(BYTE), s))
	assert.True(t, top(t, s).IsZero())
}

func TestArithmeticSignextendIdentityWhenByteGE32(t *testing.T) {
	s := NewStack[Word]()
	x := WordFromUint64(0xff)
	s.Push(x)
	s.Push(WordFromUint64(32))
	assert.NoError(t, handleArithmetic(byte(SIGNEXTEND), s))
	assert.Equal(t, uint64(0xff), top(t, s).Uint64())
}

func TestArithmeticSignextendNegative(t *testing.T) {
	// sign-extend a single negative byte (0xff) from byte index 0
	s := NewStack[Word]()
	s.Push(WordFromUint64(0xff))
	s.Push(ZeroWord)
	assert.NoError(t, handleArithmetic(byte(SIGNEXTEND), s))
	assert.Equal(t, MaxWord, *top(t, s))
}

func TestArithmeticUnderflow(t *testing.T) {
	s := NewStack[Word]()
	err := handleArithmetic(byte(ADD), s)
	assert.ErrorIs(t, err, ErrStackUnderflow)
}

func TestArithmeticInvalidOpcode(t *testing.T) {
	s := NewStack[Word]()
	err := handleArithmetic(byte(STOP), s)
	var invalidOp *InvalidOpcodeError
	assert.ErrorAs(t, err, &invalidOp)
}

func TestArithmeticAddSubRoundTrip(t *testing.T) {
	s := NewStack[Word]()
	a := WordFromUint64(123456789)
	b := WordFromUint64(987654321)
	s.Push(b)
	s.Push(a)
	assert.NoError(t, handleArithmetic(byte(ADD), s)) // pushes a+b

	sum, err := s.Pop()
	assert.NoError(t, err)
	s.Push(b)
	s.Push(sum) // stack: [b, sum], top=sum -> SUB computes sum-b

	assert.NoError(t, handleArithmetic(byte(SUB), s))

	assert.Equal(t, a.Uint64(), top(t, s).Uint64())
}
