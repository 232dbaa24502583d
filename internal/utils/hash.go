package utils

import "strconv"

// HashString returns a short, deterministic cache-key fragment for s.
// 32-bit rolling hash (h = h*31 + rune) truncated to int32, absolute value,
// base-36. Not cryptographic; collisions are acceptable for cache keys.
func HashString(s string) string {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 36)
}
