package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// fingerprintLength is long enough to correlate log lines, short enough to be useless for lookup tables
const fingerprintLength = 12

// PhoneFingerprint returns a short SHA-256 prefix of a canonical phone so that
// logs can correlate submissions without carrying the number itself
func PhoneFingerprint(phone string) string {
	if phone == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(phone))
	return hex.EncodeToString(sum[:])[:fingerprintLength]
}
