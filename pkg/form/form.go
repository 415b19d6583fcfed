// Package form models the state of the contact form independent of any UI toolkit.
package form

import (
	"sync"

	"cta-relay/pkg/validation"
)

// ConsentGroup keeps several checkboxes that stand for one agreement in sync
type ConsentGroup struct {
	mu      sync.Mutex
	checked []bool
}

// NewConsentGroup creates a group of n unchecked controls
func NewConsentGroup(n int) *ConsentGroup {
	return &ConsentGroup{checked: make([]bool, n)}
}

// Set changes control i and mirrors the new state onto every other control.
// Out of range indexes are ignored.
func (g *ConsentGroup) Set(i int, checked bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if i < 0 || i >= len(g.checked) {
		return
	}
	for j := range g.checked {
		g.checked[j] = checked
	}
}

// Checked reports whether control i is checked
func (g *ConsentGroup) Checked(i int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if i < 0 || i >= len(g.checked) {
		return false
	}
	return g.checked[i]
}

// Agreed reports the shared state of the group
func (g *ConsentGroup) Agreed() bool {
	return g.Checked(0)
}

// FocusTarget picks the field that should receive focus after a failed
// validation: the first invalid text field in form order, otherwise the
// consent control when it is invalid and visible. "" means nothing to focus.
func FocusTarget(res validation.Result, consentVisible bool) string {
	if res.Valid {
		return ""
	}
	for _, field := range validation.FieldOrder {
		if field == validation.FieldConsent {
			continue
		}
		if _, bad := res.Errors[field]; bad {
			return field
		}
	}
	if _, bad := res.Errors[validation.FieldConsent]; bad && consentVisible {
		return validation.FieldConsent
	}
	return ""
}
