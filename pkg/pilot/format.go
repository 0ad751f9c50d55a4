package pilot

import (
	"strconv"
	"strings"
)

// formatGrouped renders x with thousands separators and the given
// number of decimals.
func formatGrouped(x float64, decimals int) string {
	s := strconv.FormatFloat(x, 'f', decimals, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	if len(intPart) > 3 {
		var sb strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			sb.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if sb.Len() > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(intPart[i : i+3])
		}
		intPart = sb.String()
	}

	out := intPart + frac
	if neg {
		out = "-" + out
	}
	return out
}

// FormatCurrency renders a dollar amount with no decimals: "$12,345".
func FormatCurrency(x float64) string {
	return "$" + formatGrouped(x, 0)
}

// FormatTons renders tonnage with one decimal: "1,234.5".
func FormatTons(x float64) string {
	return formatGrouped(x, 1)
}

// FormatPercent renders a percentage with no decimals: "85%".
func FormatPercent(x float64) string {
	return formatGrouped(x, 0) + "%"
}

// FormatCount renders a whole count: "1,234".
func FormatCount(x float64) string {
	return formatGrouped(x, 0)
}
