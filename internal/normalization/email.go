package normalization

import (
	"strings"
)

// NormalizeEmail canonicalizes a raw contact email into the join key used to
// link per-platform records into one identity. An empty result means the
// record is unmatchable and must be excluded from resolution.
func NormalizeEmail(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
