package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestContactSubmission_Normalize(t *testing.T) {
	in := ContactSubmission{
		Name:    "  Ada Lovelace ",
		Email:   " ada@example.com\n",
		Company: strPtr("   "),
		Phone:   strPtr(" 555-0100 "),
		Message: "\tHelp with a pentest  ",
	}

	got := in.Normalize()

	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Nil(t, got.Company)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "555-0100", *got.Phone)
	assert.Nil(t, got.Service)
	assert.Equal(t, "Help with a pentest", got.Message)
	// The receiver is untouched.
	assert.Equal(t, "   ", *in.Company)
}

func TestContactSubmission_Validate(t *testing.T) {
	valid := ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "hello"}

	tests := []struct {
		name      string
		mutate    func(c *ContactSubmission)
		wantField string
	}{
		{name: "valid", mutate: func(*ContactSubmission) {}},
		{name: "missing name", mutate: func(c *ContactSubmission) { c.Name = "" }, wantField: "name"},
		{name: "missing email", mutate: func(c *ContactSubmission) { c.Email = "" }, wantField: "email"},
		{name: "email without at", mutate: func(c *ContactSubmission) { c.Email = "ada.example.com" }, wantField: "email"},
		{name: "email at column limit", mutate: func(c *ContactSubmission) { c.Email = strings.Repeat("a", 243) + "@example.com" }},
		{name: "email over column limit", mutate: func(c *ContactSubmission) { c.Email = strings.Repeat("a", 244) + "@example.com" }, wantField: "email"},
		{name: "missing message", mutate: func(c *ContactSubmission) { c.Message = "" }, wantField: "message"},
		{name: "long message", mutate: func(c *ContactSubmission) { c.Message = strings.Repeat("x", 10001) }, wantField: "message"},
		{name: "long company", mutate: func(c *ContactSubmission) { c.Company = strPtr(strings.Repeat("c", 256)) }, wantField: "company"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var fe *FieldError
			require.True(t, errors.As(err, &fe), "expected *FieldError, got %T", err)
			assert.Equal(t, tt.wantField, fe.Field)
		})
	}
}

func TestParseContactStatus(t *testing.T) {
	s, ok := ParseContactStatus(" In_Progress ")
	assert.True(t, ok)
	assert.Equal(t, ContactStatusInProgress, s)

	_, ok = ParseContactStatus("deleted")
	assert.False(t, ok)
}
