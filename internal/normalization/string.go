package normalization

import "strings"

// Email lowercases and trims an address so lookups and the unique index
// agree on a single form.
func Email(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
