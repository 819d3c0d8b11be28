package anki

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"strings"
)

// fieldSeparator is the ASCII Unit Separator byte Anki uses to join note
// fields into the notes.flds column. Field content is not escaped; a 0x1F
// byte inside a field would corrupt the encoding, matching Anki's own
// behaviour.
const fieldSeparator = "\x1f"

// JoinFields encodes ordered field values into the notes.flds representation.
func JoinFields(values []string) string {
	return strings.Join(values, fieldSeparator)
}

// SplitFields decodes a notes.flds string into a map keyed by the given
// ordered field names. When the string has fewer segments than names, the
// remaining names map to the empty string.
func SplitFields(joined string, names []string) map[string]string {
	segments := strings.Split(joined, fieldSeparator)
	fields := make(map[string]string, len(names))
	for i, name := range names {
		if i < len(segments) {
			fields[name] = segments[i]
		} else {
			fields[name] = ""
		}
	}
	return fields
}

// Checksum computes the duplicate-detection checksum of a note's sort field:
// the first 8 hex characters of the SHA-1 digest of the UTF-8 text, parsed as
// hex and rendered in base 10. The digest, slice length and radix must match
// Anki's own algorithm bit-for-bit, otherwise the Anki application would
// mis-detect duplicates on import.
func Checksum(sortField string) string {
	digest := sha1.Sum([]byte(sortField))
	first8 := hex.EncodeToString(digest[:])[:8]
	n, _ := strconv.ParseUint(first8, 16, 64)
	return strconv.FormatUint(n, 10)
}
