package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhoneFingerprint(t *testing.T) {
	a := PhoneFingerprint("79001234567")
	assert.Len(t, a, fingerprintLength)
	assert.Equal(t, a, PhoneFingerprint("79001234567"))
	assert.NotEqual(t, a, PhoneFingerprint("79001234568"))
	assert.NotContains(t, a, "9001234567")
	assert.Equal(t, "", PhoneFingerprint(""))
}
