package guard

import (
	"fmt"
	"unicode/utf8"
)

// scanSmuggling looks for codepoints that make displayed text differ from
// executed text. A zero-width space inside "rm" defeats every pattern in
// the blocklist while the shell still sees the dangerous command, so these
// are rejected before rule evaluation rather than sanitized.
func scanSmuggling(command string) (string, bool) {
	for i := 0; i < len(command); {
		r, size := utf8.DecodeRuneInString(command[i:])
		if r == utf8.RuneError && size == 1 {
			return fmt.Sprintf("invalid UTF-8 byte 0x%02X at offset %d", command[i], i), true
		}
		if isZeroWidth(r) {
			return fmt.Sprintf("zero-width character U+%04X at offset %d", r, i), true
		}
		if isBidiControl(r) {
			return fmt.Sprintf("bidirectional control character U+%04X at offset %d", r, i), true
		}
		i += size
	}
	return "", false
}

func isZeroWidth(r rune) bool {
	switch r {
	case 0x200B, 0x200C, 0x200D, 0x2060, 0xFEFF:
		return true
	}
	return false
}

func isBidiControl(r rune) bool {
	return (r >= 0x202A && r <= 0x202E) || (r >= 0x2066 && r <= 0x2069)
}
