package utils

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// KeyFragment upper-cases the alphanumeric characters of s and keeps at most n
// of them. An empty result falls back to the given default.
func KeyFragment(s string, n int, fallback string) string {
	var b strings.Builder
	for _, r := range s {
		if b.Len() >= n {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	if b.Len() == 0 {
		return fallback
	}
	return b.String()
}

// NextSequence returns prefix + "-" + the zero-padded successor of the trailing
// sequence found in last. An empty last starts the sequence at 1.
//
//	NextSequence("RFP-AB12CD-202405-007", "RFP-AB12CD-202405", 3) == "RFP-AB12CD-202405-008"
func NextSequence(last, prefix string, width int) (string, error) {
	next := 1
	if last != "" {
		if !strings.HasPrefix(last, prefix+"-") {
			return "", fmt.Errorf("identifier %q does not share prefix %q", last, prefix)
		}
		n, err := strconv.Atoi(strings.TrimPrefix(last, prefix+"-"))
		if err != nil {
			return "", fmt.Errorf("identifier %q has a malformed sequence: %w", last, err)
		}
		next = n + 1
	}
	return fmt.Sprintf("%s-%0*d", prefix, width, next), nil
}
