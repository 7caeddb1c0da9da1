package utils

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// RepairUTF8 undoes the common upstream mojibake where UTF-8 bytes were
// decoded as Latin-1 (e.g. "Ã©" instead of "é"). If every rune fits in
// Latin-1 and re-encoding those runes as Latin-1 bytes yields valid
// multi-byte UTF-8, the reinterpreted string is returned. Invalid input
// falls back to stripping undecodable bytes and NULs. Never errors.
func RepairUTF8(s string) string {
	if !utf8.ValidString(s) {
		return sanitize(s)
	}

	repaired, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		// Contains runes outside Latin-1; already genuine UTF-8.
		return sanitize(s)
	}

	// Only adopt the reinterpretation when it actually decodes to
	// multi-byte UTF-8; otherwise the original was plain text.
	if repaired != s && utf8.ValidString(repaired) && utf8.RuneCountInString(repaired) < len(repaired) {
		return sanitize(repaired)
	}

	return sanitize(s)
}

func sanitize(s string) string {
	s = strings.ToValidUTF8(s, "")
	return strings.ReplaceAll(s, "\x00", "")
}
