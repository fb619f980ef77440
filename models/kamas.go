package models

import (
	"strconv"
	"strings"
)

// FormatKamas renders an amount with thousands separators and the kama
// suffix, e.g. 1250000 -> "1 250 000 K".
func FormatKamas(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String() + " K"
	}
	return b.String() + " K"
}
