package core

const ellipsis = "..."

// Truncate shortens s to at most max runes, ending in "..." when shortened.
// Strings already within max are returned unchanged.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= len(ellipsis) {
		return string(r[:max])
	}
	return string(r[:max-len(ellipsis)]) + ellipsis
}
