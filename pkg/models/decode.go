package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultForm is used when a submission does not name its form
const DefaultForm = "cta"

// ErrNotAnObject is returned when a request body is valid JSON but not an object
var ErrNotAnObject = errors.New("request body is not a JSON object")

// wireSubmission mirrors Submission but tolerates loosely typed browser payloads
type wireSubmission struct {
	Name    looseString  `json:"name"`
	Phone   looseString  `json:"phone"`
	Consent looseBool    `json:"consent"`
	Form    *looseString `json:"form"`
	Source  looseString  `json:"source"`
}

// DecodeSubmission parses a relay request body. The body must be a JSON object;
// individual fields are coerced rather than rejected.
func DecodeSubmission(body []byte) (Submission, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return Submission{}, fmt.Errorf("error parsing submission: %w", err)
	}
	if fields == nil {
		return Submission{}, ErrNotAnObject
	}

	var wire wireSubmission
	if err := json.Unmarshal(body, &wire); err != nil {
		return Submission{}, fmt.Errorf("error parsing submission: %w", err)
	}

	sub := Submission{
		Name:    string(wire.Name),
		Phone:   string(wire.Phone),
		Consent: bool(wire.Consent),
		Form:    DefaultForm,
		Source:  string(wire.Source),
	}
	if wire.Form != nil {
		sub.Form = string(*wire.Form)
	}
	return sub, nil
}

// looseString accepts strings, numbers and booleans. Anything else decodes to "".
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*s = ""
	case bytes.Equal(data, []byte("true")):
		*s = "1"
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		*s = looseString(data)
	default:
		*s = ""
	}
	return nil
}

// looseBool follows the usual form-checkbox conventions: true, any number equal
// to 1, "1", "true", "on" and "yes" are accepted, everything else is false.
type looseBool bool

func (b *looseBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')) {
		f, err := strconv.ParseFloat(string(data), 64)
		*b = looseBool(err == nil && f == 1)
		return nil
	}

	var raw looseString
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}
	*b = looseBool(ParseConsent(string(raw)))
	return nil
}

// ParseConsent reports whether a raw form value means "agreed"
func ParseConsent(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
