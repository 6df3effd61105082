package evm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPushRange(t *testing.T) {
	assert.True(t, IsPush(byte(PUSH0)))
	assert.True(t, IsPush(0x60))  // PUSH1
	assert.True(t, IsPush(0x7f))  // PUSH32
	assert.False(t, IsPush(0x80)) // DUP1
}

func TestIsDupRange(t *testing.T) {
	assert.True(t, IsDup(byte(DUP1)))
	assert.True(t, IsDup(0x8f))  // DUP16
	assert.False(t, IsDup(0x90)) // SWAP1
}

func TestIsSwapRange(t *testing.T) {
	assert.True(t, IsSwap(byte(SWAP1)))
	assert.True(t, IsSwap(0x9f))  // SWAP16
	assert.False(t, IsSwap(0xa0)) // outside range
}

func TestIsArithmetic(t *testing.T) {
	assert.True(t, IsArithmetic(byte(ADD)))
	assert.True(t, IsArithmetic(byte(SAR)))
	assert.False(t, IsArithmetic(byte(STOP)))
	assert.False(t, IsArithmetic(byte(PUSH0)))
}

func TestSupportedOpcodesIncludesAllFamilies(t *testing.T) {
	known := SupportedOpcodes()
	assert.True(t, known.Contains(STOP))
	assert.True(t, known.Contains(POP))
	assert.True(t, known.Contains(SLOAD))
	assert.True(t, known.Contains(SSTORE))
	assert.True(t, known.Contains(ADD))
	assert.True(t, known.Contains(PUSH0))
	assert.True(t, known.Contains(DUP1))
	assert.True(t, known.Contains(SWAP1))
	assert.False(t, known.Contains(OpCode(0xfe)))
}
