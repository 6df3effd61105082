package evm

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// DecodeHex parses a hex-encoded bytecode string, tolerating an optional
// "0x"/"0X" prefix. Odd-length or non-hex input is InvalidHex.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	if len(s)%2 != 0 {
		return nil, &InvalidHexError{Message: "odd-length hex string"}
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(&InvalidHexError{Message: err.Error()}, "decode hex")
	}
	return b, nil
}

// EncodeHex renders b as a "0x"-prefixed hex string.
func EncodeHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}
