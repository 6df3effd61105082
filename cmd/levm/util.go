package main

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// toPrettyJSON renders v as indented JSON for the CLI's storage
// inspector, or "" if v isn't marshalable.
func toPrettyJSON(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return ""
	}
	return buf.String()
}

// parseAnyInt parses pc/offset/opcode arguments to the CLI's commands.
// A leading "0x"/"0X" forces hex; otherwise a plain decimal string parses
// as decimal, falling back to hex for bare hex digits ("ff", "1A") that
// fail as decimal.
func parseAnyInt(s string) (uint64, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseUint(s[2:], 16, 64)
	}
	if v, err := strconv.ParseUint(s, 10, 64); err == nil {
		return v, nil
	}
	return strconv.ParseUint(s, 16, 64)
}
