package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatViewCount renders a numeric string as a compact count: "1.5M",
// "2.0K" or the plain integer below a thousand. Anything that does not parse
// renders as "0".
func FormatViewCount(s string) string {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return "0"
	}

	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", n/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", n/1_000)
	default:
		return strconv.FormatInt(int64(n), 10)
	}
}

func FormatCount(n uint64) string {
	return FormatViewCount(strconv.FormatUint(n, 10))
}
