package layout

import "regexp"

var numericRun = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?%?`)

// ReverseRTL reorders right-to-left text for a left-to-right drawing primitive.
// Runs are reversed in order, characters are reversed inside non-numeric runs and
// numbers keep their reading order. Applying it twice does not restore mixed text.
func ReverseRTL(s string) string {
	var runs []string
	last := 0
	for _, loc := range numericRun.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			runs = append(runs, reverseRunes(s[last:loc[0]]))
		}
		runs = append(runs, s[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(s) {
		runs = append(runs, reverseRunes(s[last:]))
	}

	out := make([]byte, 0, len(s))
	for i := len(runs) - 1; i >= 0; i-- {
		out = append(out, runs[i]...)
	}
	return string(out)
}

func reverseRunes(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
