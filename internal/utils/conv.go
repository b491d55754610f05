package utils

import (
	"strconv"
)

// StringToUint converts a path parameter to uint, second value false when the
// input is not a non-negative integer.
func StringToUint(s string) (uint, bool) {
	i, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(i), true
}
