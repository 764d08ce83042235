package contact

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	rutNoise   = regexp.MustCompile(`[^0-9kK]`)
	phoneNoise = regexp.MustCompile(`\D`)
)

func cleanRUT(value string) string {
	return strings.ToUpper(rutNoise.ReplaceAllString(value, ""))
}

// ValidRUT reports whether value is a Chilean RUT with a correct check
// character. Separators are ignored.
func ValidRUT(value string) bool {
	cleaned := cleanRUT(value)
	if len(cleaned) < 2 {
		return false
	}
	body, dv := cleaned[:len(cleaned)-1], cleaned[len(cleaned)-1:]
	for _, r := range body {
		if r < '0' || r > '9' {
			return false
		}
	}
	return dv == rutCheckDigit(body)
}

// rutCheckDigit computes the modulo-11 check character for a digit string.
func rutCheckDigit(body string) string {
	sum, multiplier := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * multiplier
		if multiplier == 7 {
			multiplier = 2
		} else {
			multiplier++
		}
	}
	switch r := 11 - sum%11; r {
	case 11:
		return "0"
	case 10:
		return "K"
	default:
		return strconv.Itoa(r)
	}
}

// FormatRUT renders value the way it is shown while typing: thousands
// separated by dots and the check character after a dash. "123456785"
// becomes "12.345.678-5".
func FormatRUT(value string) string {
	cleaned := cleanRUT(value)
	if cleaned == "" {
		return ""
	}
	body, dv := cleaned[:len(cleaned)-1], cleaned[len(cleaned)-1:]
	if body == "" {
		return dv
	}
	var b strings.Builder
	for i := range len(body) {
		if i > 0 && (len(body)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(body[i])
	}
	return b.String() + "-" + dv
}

// FormatPhone renders a Chilean phone number as "+56 D DDDD DDDD". The
// country code is added when missing; extra digits are dropped.
func FormatPhone(value string) string {
	digits := phoneNoise.ReplaceAllString(value, "")
	if digits == "" {
		return ""
	}
	if !strings.HasPrefix(digits, "56") {
		digits = "56" + digits
	}
	rest := digits[2:]
	parts := []string{"+56"}
	for _, p := range []string{span(rest, 0, 1), span(rest, 1, 5), span(rest, 5, 9)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// span returns s[from:to] clamped to the string bounds.
func span(s string, from, to int) string {
	if from >= len(s) {
		return ""
	}
	return s[from:min(to, len(s))]
}
