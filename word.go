package evm

import (
	"github.com/holiman/uint256"
)

// Word is the VM's native 256-bit operand. It wraps uint256.Int rather than
// hand-rolling limb arithmetic: Add/Sub/Mul/Div/SDiv/Mod/SMod/AddMod/MulMod/
// Exp/ExtendSign/Lsh/Rsh/SRsh/And/Or/Xor/Not/Byte already implement the exact
// wrap-around and signed two's-complement rules this VM needs.
type Word = uint256.Int

// ZeroWord, OneWord and MaxWord are the Word constants 0, 1 and all-ones
// (2^256 - 1).
var (
	ZeroWord = *uint256.NewInt(0)
	OneWord  = *uint256.NewInt(1)
	MaxWord  = *new(Word).SetAllOne()
)

// WordFromUint64 builds a Word from a small integer.
func WordFromUint64(v uint64) Word {
	return *uint256.NewInt(v)
}

// BigEndianToWord interprets up to 32 big-endian bytes as a Word. Longer
// inputs are truncated to their low 32 bytes, matching uint256.SetBytes.
func BigEndianToWord(b []byte) Word {
	var w Word
	w.SetBytes(b)
	return w
}

// WordToBigEndian serializes w as 32 big-endian bytes, most significant first.
func WordToBigEndian(w *Word) [32]byte {
	return w.Bytes32()
}

// IsNegative reports whether w's sign bit (bit 255) is set, i.e. whether w
// is negative under a two's-complement interpretation.
func IsNegative(w *Word) bool {
	return w.Sign() < 0
}

// WordBit tests bit i of w, 0 being the least significant. Bits at or
// above 256 read as zero.
func WordBit(w *Word, i uint) uint64 {
	if i > 255 {
		return 0
	}
	return (w[i/64] >> (i % 64)) & 1
}
