// Package routing picks the contact phone shown to a visitor based on the
// traffic medium they arrived from.
package routing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrMissingDefault is returned when a rule by medium has no default phone
	ErrMissingDefault = errors.New("phone rule by medium needs a default phone")
	// ErrEmptyPhone is returned when a rule contains an empty phone
	ErrEmptyPhone = errors.New("phone rule has an empty phone")
)

type ruleKind int

const (
	kindNone ruleKind = iota
	kindDirect
	kindByMedium
)

// Rule is either a single phone (Direct) or a table keyed by utm_medium with a
// default (ByMedium). The zero Rule resolves to "".
type Rule struct {
	kind     ruleKind
	phone    string
	byMedium map[string]string
}

// Direct returns a rule that always resolves to phone
func Direct(phone string) (Rule, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return Rule{}, ErrEmptyPhone
	}
	return Rule{kind: kindDirect, phone: phone}, nil
}

// ByMedium returns a rule that looks the medium up in phones and falls back to def
func ByMedium(phones map[string]string, def string) (Rule, error) {
	def = strings.TrimSpace(def)
	if def == "" {
		return Rule{}, ErrMissingDefault
	}
	table := make(map[string]string, len(phones))
	for medium, phone := range phones {
		phone = strings.TrimSpace(phone)
		if phone == "" {
			return Rule{}, fmt.Errorf("medium %q: %w", medium, ErrEmptyPhone)
		}
		table[normalizeMedium(medium)] = phone
	}
	return Rule{kind: kindByMedium, phone: def, byMedium: table}, nil
}

// Resolve returns the phone for the given medium
func (r Rule) Resolve(medium string) string {
	switch r.kind {
	case kindDirect:
		return r.phone
	case kindByMedium:
		if phone, ok := r.byMedium[normalizeMedium(medium)]; ok {
			return phone
		}
		return r.phone
	case kindNone:
		return ""
	}
	return ""
}

// IsZero reports whether the rule was never configured
func (r Rule) IsZero() bool {
	return r.kind == kindNone
}

// Parse reads a rule from JSON: a string is a Direct rule, an object is a
// ByMedium table whose "default" key is mandatory.
func Parse(data []byte) (Rule, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Rule{}, errors.New("empty phone rule")
	}

	switch data[0] {
	case '"':
		var phone string
		if err := json.Unmarshal(data, &phone); err != nil {
			return Rule{}, fmt.Errorf("error parsing phone rule: %w", err)
		}
		return Direct(phone)
	case '{':
		var table map[string]string
		if err := json.Unmarshal(data, &table); err != nil {
			return Rule{}, fmt.Errorf("error parsing phone rule: %w", err)
		}
		def, ok := table["default"]
		if !ok {
			return Rule{}, ErrMissingDefault
		}
		delete(table, "default")
		return ByMedium(table, def)
	}
	return Rule{}, fmt.Errorf("phone rule must be a string or an object, got %s", data)
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Rule) UnmarshalJSON(data []byte) error {
	rule, err := Parse(data)
	if err != nil {
		return err
	}
	*r = rule
	return nil
}

// ParseSetting reads a rule from a configuration value. Values that are not
// JSON are taken as a plain phone.
func ParseSetting(value string) (Rule, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Rule{}, nil
	}
	if strings.HasPrefix(value, "{") || strings.HasPrefix(value, `"`) {
		return Parse([]byte(value))
	}
	return Direct(value)
}

// MediumFromQuery extracts utm_medium from a landing page query
func MediumFromQuery(q url.Values) string {
	return normalizeMedium(q.Get("utm_medium"))
}

func normalizeMedium(medium string) string {
	return strings.ToLower(strings.TrimSpace(medium))
}
