//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxContactNameLen    = 255
	maxContactEmailLen   = 255
	maxContactFieldLen   = 255
	maxContactMessageLen = 10000
)

// ContactStatus is the workflow status of a stored contact submission.
type ContactStatus string

const (
	ContactStatusNew        ContactStatus = "new"
	ContactStatusInProgress ContactStatus = "in_progress"
	ContactStatusCompleted  ContactStatus = "completed"
	ContactStatusArchived   ContactStatus = "archived"
)

// Valid reports whether s is a known contact status.
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusNew, ContactStatusInProgress, ContactStatusCompleted, ContactStatusArchived:
		return true
	default:
		return false
	}
}

// ParseContactStatus normalizes a status string and reports whether it is supported.
func ParseContactStatus(value string) (ContactStatus, bool) {
	s := ContactStatus(strings.ToLower(strings.TrimSpace(value)))
	if s.Valid() {
		return s, true
	}
	return "", false
}

// ContactSubmission is a contact-form payload as entered by a visitor.
// Optional fields are nil when absent.
type ContactSubmission struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Company *string `json:"company,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Service *string `json:"service,omitempty"`
	Message string  `json:"message"`
}

// Normalize trims every field and turns blank optional fields into nil.
func (c ContactSubmission) Normalize() ContactSubmission {
	return ContactSubmission{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Company: optionalString(c.Company),
		Phone:   optionalString(c.Phone),
		Service: optionalString(c.Service),
		Message: strings.TrimSpace(c.Message),
	}
}

// FieldError reports which submission field failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Field + " " + e.Reason }

// Validate checks required fields on a normalized submission.
// The returned error, when non-nil, is a *FieldError.
func (c ContactSubmission) Validate() error {
	if c.Name == "" {
		return &FieldError{Field: "name", Reason: "is required"}
	}
	if utf8.RuneCountInString(c.Name) > maxContactNameLen {
		return &FieldError{Field: "name", Reason: "exceeds 255 characters"}
	}
	if c.Email == "" {
		return &FieldError{Field: "email", Reason: "is required"}
	}
	if utf8.RuneCountInString(c.Email) > maxContactEmailLen || !strings.Contains(c.Email, "@") {
		return &FieldError{Field: "email", Reason: "is invalid"}
	}
	if c.Message == "" {
		return &FieldError{Field: "message", Reason: "is required"}
	}
	if utf8.RuneCountInString(c.Message) > maxContactMessageLen {
		return &FieldError{Field: "message", Reason: "exceeds 10000 characters"}
	}
	optional := []struct {
		name  string
		value *string
	}{{"company", c.Company}, {"phone", c.Phone}, {"service", c.Service}}
	for _, f := range optional {
		if f.value != nil && utf8.RuneCountInString(*f.value) > maxContactFieldLen {
			return &FieldError{Field: f.name, Reason: "exceeds 255 characters"}
		}
	}
	return nil
}

func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// Contact is a stored contact_submissions row.
type Contact struct {
	ID        string        `json:"id"         db:"id"`
	Name      string        `json:"name"       db:"name"`
	Email     string        `json:"email"      db:"email"`
	Company   *string       `json:"company"    db:"company"`
	Phone     *string       `json:"phone"      db:"phone"`
	Service   *string       `json:"service"    db:"service"`
	Message   string        `json:"message"    db:"message"`
	Status    ContactStatus `json:"status"     db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// PendingStatus is the only delivery status a locally queued submission carries.
const PendingStatus = "pending"

// PendingSubmission is a contact payload that failed immediate delivery and waits
// in client-local storage for a manual retry.
type PendingSubmission struct {
	ID string `json:"id,omitempty"`
	ContactSubmission
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

// PendingEnvelopeVersion is the current layout version of the persisted queue.
const PendingEnvelopeVersion = 1

// PendingEnvelope is the persisted form of the local queue.
type PendingEnvelope struct {
	Version int                 `json:"version"`
	Entries []PendingSubmission `json:"entries"`
}

// SubmitResult reports which persistence strategy delivered a submission.
type SubmitResult struct {
	Strategy string `json:"strategy"`
}

// RetryResult counts the outcome of a retry pass over the local queue.
type RetryResult struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// SubmitOutcome is the result of the submit-or-enqueue workflow.
type SubmitOutcome struct {
	Queued    bool   `json:"queued"`
	Strategy  string `json:"strategy,omitempty"`
	PendingID string `json:"pending_id,omitempty"`
}
