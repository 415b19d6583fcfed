package models

// Submission is one contact request as received by the relay
type Submission struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Consent bool   `json:"consent"`
	Form    string `json:"form"`
	Source  string `json:"source"`
}

// IntakePayload is the minimal body forwarded to the intake service
type IntakePayload struct {
	Name  string `json:"name"`
	Phone string `json:"phone"` // 11 digits, no formatting
}

// RelayResult is the only shape ever returned to the caller of the relay
type RelayResult struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Details *string `json:"details,omitempty"`
}
