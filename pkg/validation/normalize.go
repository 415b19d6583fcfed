package validation

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// PhoneLength is the number of digits in a complete Russian mobile number
const PhoneLength = 11

// SanitizeName keeps Cyrillic letters, spaces and hyphens and trims the result.
// Input is NFC-normalized first so that letters typed as base + combining mark
// (й, ё) survive the filter.
func SanitizeName(raw string) string {
	var b strings.Builder
	for _, r := range norm.NFC.String(raw) {
		if isNameRune(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func isNameRune(r rune) bool {
	if r == ' ' || r == '-' {
		return true
	}
	return unicode.IsLetter(r) && unicode.Is(unicode.Cyrillic, r)
}

// StripDigits removes everything but ASCII digits
func StripDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PhoneDigits canonicalizes a phone to at most 11 digits starting with 7.
// A leading 8 becomes 7; any other leading digit gets 7 prepended.
func PhoneDigits(raw string) string {
	digits := StripDigits(raw)
	if digits == "" {
		return ""
	}
	switch digits[0] {
	case '7':
	case '8':
		digits = "7" + digits[1:]
	default:
		digits = "7" + digits
	}
	if len(digits) > PhoneLength {
		digits = digits[:PhoneLength]
	}
	return digits
}

// NormalizePhone returns the display form +7 (XXX) XXX XX XX, built up as far as
// the available digits allow. No digits gives "".
func NormalizePhone(raw string) string {
	digits := PhoneDigits(raw)
	if digits == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("+7")
	groups := []struct {
		from, to int
		prefix   string
	}{
		{1, 4, " ("},
		{4, 7, ") "},
		{7, 9, " "},
		{9, 11, " "},
	}
	for _, g := range groups {
		if len(digits) <= g.from {
			break
		}
		to := g.to
		if len(digits) < to {
			to = len(digits)
		}
		b.WriteString(g.prefix)
		b.WriteString(digits[g.from:to])
	}
	return b.String()
}
