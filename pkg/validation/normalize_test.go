package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"digits and punctuation", "  Иван123!  ", "Иван"},
		{"double name with hyphen", "Анна-Мария", "Анна-Мария"},
		{"full name", "Пётр Ильич", "Пётр Ильич"},
		{"latin removed", "John Иван", "Иван"},
		{"only symbols", "123 !!", ""},
		{"decomposed short i", "Андре\u0438\u0306", "Андрей"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeName(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, SanitizeName(got), "sanitizing twice must not change the result")
		})
	}
}

func TestPhoneDigits(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"abc", ""},
		{"+7 (900) 123 45 67", "79001234567"},
		{"8 900 123-45-67", "79001234567"},
		{"9001234567", "79001234567"},
		{"7900123456789", "79001234567"},
		{"8", "7"},
		{"5", "75"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, PhoneDigits(tt.raw))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"()- ", ""},
		{"7", "+7"},
		{"8", "+7"},
		{"79", "+7 (9"},
		{"7900", "+7 (900"},
		{"79001", "+7 (900) 1"},
		{"7900123", "+7 (900) 123"},
		{"79001234", "+7 (900) 123 4"},
		{"790012345", "+7 (900) 123 45"},
		{"7900123456", "+7 (900) 123 45 6"},
		{"79001234567", "+7 (900) 123 45 67"},
		{"89001234567", "+7 (900) 123 45 67"},
		{"900 123 45 67", "+7 (900) 123 45 67"},
		{"+7 (900) 123 45 67 89", "+7 (900) 123 45 67"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.raw))
		})
	}
}

func TestNormalizePhone_FixedPoint(t *testing.T) {
	digits := "0123456789"
	for i := 0; i < 200; i++ {
		// deterministic spread of inputs of varying length and leading digit
		n := i%14 + 1
		var b strings.Builder
		for j := 0; j < n; j++ {
			b.WriteByte(digits[(i*7+j*3)%10])
		}
		raw := b.String()

		display := NormalizePhone(raw)
		assert.Equal(t, display, NormalizePhone(display), "input %q", raw)

		canonical := StripDigits(display)
		assert.True(t, strings.HasPrefix(canonical, "7"), "input %q", raw)
		assert.LessOrEqual(t, len(canonical), PhoneLength, "input %q", raw)
	}
}
