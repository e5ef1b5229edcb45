package session

// NextMatch returns the first match index after current, wrapping to the
// first match. The matches slice is ordered row indices within the current
// visible-row list.
func NextMatch(matches []int, current int) (int, bool) {
	if len(matches) == 0 {
		return 0, false
	}
	for _, idx := range matches {
		if idx > current {
			return idx, true
		}
	}
	return matches[0], true
}

// PrevMatch returns the last match index before current, wrapping to the
// last match.
func PrevMatch(matches []int, current int) (int, bool) {
	if len(matches) == 0 {
		return 0, false
	}
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i] < current {
			return matches[i], true
		}
	}
	return matches[len(matches)-1], true
}
