package report

// WrapFixed splits s into chunks of at most width runes. The split is
// purely positional with no word-boundary awareness; rejoining the
// chunks reconstructs s exactly. An empty string yields a single empty
// chunk so callers still emit a line for it. width < 1 returns s whole.
func WrapFixed(s string, width int) []string {
	if width < 1 {
		return []string{s}
	}
	runes := []rune(s)
	if len(runes) <= width {
		return []string{s}
	}
	lines := make([]string, 0, (len(runes)+width-1)/width)
	for start := 0; start < len(runes); start += width {
		end := start + width
		if end > len(runes) {
			end = len(runes)
		}
		lines = append(lines, string(runes[start:end]))
	}
	return lines
}
