package messaging

import (
	"regexp"
	"strings"
)

var phoneDigitsRe = regexp.MustCompile(`\d+`)

// sanitizePhone strips everything but digits.
func sanitizePhone(value string) string {
	if value == "" {
		return ""
	}
	digits := phoneDigitsRe.FindAllString(value, -1)
	return strings.Join(digits, "")
}

// DigitCount returns the number of digits after stripping formatting.
func DigitCount(value string) int {
	return len(sanitizePhone(value))
}

// NormalizeE164 strips formatting and prefixes "+". Values that carry no
// digits normalize to the empty string.
func NormalizeE164(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	digits := sanitizePhone(value)
	if digits == "" {
		return ""
	}
	return "+" + digits
}
