package evm

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/holiman/uint256"
)

// Memory is byte-addressed, auto-expanding working memory. It grows so its
// length is always a multiple of 32 bytes (the EVM word size) and covers
// whatever offset/size was last accessed; it never shrinks. No opcode in
// this core currently drives Memory (MLOAD/MSTORE/MSTORE8 are not
// implemented) but the subsystem exists so those opcodes have somewhere
// to land later, and the CLI's `mem` command exercises it.
type Memory struct {
	store []byte
}

// MarshalJSON renders memory as 32-byte hex chunks.
func (m *Memory) MarshalJSON() ([]byte, error) {
	var chunks []string
	for p := 0; p < len(m.store); p += 32 {
		end := p + 32
		if end > len(m.store) {
			end = len(m.store)
		}
		chunks = append(chunks, hex.EncodeToString(m.store[p:end]))
	}
	return json.MarshalIndent(chunks, "", "  ")
}

func (m *Memory) UnmarshalJSON(bs []byte) error {
	var chunks []string
	if err := json.Unmarshal(bs, &chunks); err != nil {
		return err
	}
	decoded, err := hex.DecodeString(strings.Join(chunks, ""))
	if err != nil {
		return err
	}
	m.store = decoded
	return nil
}

// expand grows the backing store, if needed, to the smallest multiple of
// 32 bytes that is >= offset+size.
func (m *Memory) expand(offset, size uint64) {
	need := offset + size
	if need <= uint64(len(m.store)) {
		return
	}
	rounded := ((need + 31) / 32) * 32
	m.store = append(m.store, make([]byte, rounded-uint64(len(m.store)))...)
}

// Write sets a single byte at offset, expanding memory first.
func (m *Memory) Write(offset uint64, value byte) {
	m.expand(offset, 1)
	m.store[offset] = value
}

// Read returns the byte at offset, expanding memory first (reads of
// untouched offsets return zero). Read is not a pure operation: it may
// grow the backing array on first touch.
func (m *Memory) Read(offset uint64) byte {
	m.expand(offset, 1)
	return m.store[offset]
}

// WriteBytes copies value into memory starting at offset, expanding first.
func (m *Memory) WriteBytes(offset uint64, value []byte) {
	if len(value) == 0 {
		return
	}
	m.expand(offset, uint64(len(value)))
	copy(m.store[offset:offset+uint64(len(value))], value)
}

// ReadBytes returns the n bytes starting at offset, expanding first. The
// result is always a fresh copy, so callers (the CLI's `mem` command,
// tests) never alias memory that a later write could mutate out from
// under them.
func (m *Memory) ReadBytes(offset, n uint64) []byte {
	if n == 0 {
		return nil
	}
	m.expand(offset, n)
	out := make([]byte, n)
	copy(out, m.store[offset:offset+n])
	return out
}

// Set32 writes the 32-byte big-endian encoding of val starting at offset,
// expanding first.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	m.expand(offset, 32)
	bs := val.Bytes32()
	copy(m.store[offset:offset+32], bs[:])
}

// Size returns the current length of the backing store, always a multiple
// of 32 after any access.
func (m *Memory) Size() uint64 {
	return uint64(len(m.store))
}

// Data returns the backing slice. Callers must treat it as read-only.
func (m *Memory) Data() []byte {
	return m.store
}
