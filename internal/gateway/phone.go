package gateway

import (
	"regexp"
	"strings"
	"unicode"
)

var tenDigits = regexp.MustCompile(`^\d{10}$`)

// NormalizePhone strips whitespace and a leading +91 country code and
// requires exactly ten digits to remain.
func NormalizePhone(raw string) (string, error) {
	phone := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	phone = strings.TrimPrefix(phone, "+91")

	if !tenDigits.MatchString(phone) {
		return "", ErrInvalidPhone
	}
	return phone, nil
}
