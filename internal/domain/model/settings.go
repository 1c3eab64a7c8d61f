//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// SettingType says how a site setting's stored string is interpreted.
type SettingType string

const (
	SettingTypeString  SettingType = "string"
	SettingTypeNumber  SettingType = "number"
	SettingTypeBoolean SettingType = "boolean"
	SettingTypeJSON    SettingType = "json"
)

// SiteSetting is a site_settings row. Values are always stored as text.
type SiteSetting struct {
	ID          string      `json:"id"            db:"id"`
	Key         string      `json:"setting_key"   db:"setting_key"`
	Value       string      `json:"setting_value" db:"setting_value"`
	Type        SettingType `json:"setting_type"  db:"setting_type"`
	Description *string     `json:"description"   db:"description"`
	Category    string      `json:"category"      db:"category"`
	CreatedAt   time.Time   `json:"created_at"    db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"    db:"updated_at"`
}

// Typed converts the stored value by type. Booleans are true only for "true";
// numbers that do not parse and malformed JSON fall back to the raw string.
func (s SiteSetting) Typed() any {
	switch s.Type {
	case SettingTypeBoolean:
		return s.Value == "true"
	case SettingTypeNumber:
		if f, err := strconv.ParseFloat(s.Value, 64); err == nil {
			return f
		}
	case SettingTypeJSON:
		var v any
		if err := json.Unmarshal([]byte(s.Value), &v); err == nil {
			return v
		}
	}
	return s.Value
}

// NormalizeSettingValue canonicalizes raw for the given type. The error, when
// non-nil, is a *FieldError naming the setting key.
func NormalizeSettingValue(key string, typ SettingType, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch typ {
	case SettingTypeBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return "", &FieldError{Field: key, Reason: "must be true or false"}
		}
		return strconv.FormatBool(b), nil
	case SettingTypeNumber:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", &FieldError{Field: key, Reason: "must be a number"}
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case SettingTypeJSON:
		if !json.Valid([]byte(raw)) {
			return "", &FieldError{Field: key, Reason: "must be valid JSON"}
		}
	}
	return raw, nil
}

// Profile is a profiles row.
type Profile struct {
	ID        string    `json:"id"         db:"id"`
	FullName  *string   `json:"full_name"  db:"full_name"`
	AvatarURL *string   `json:"avatar_url" db:"avatar_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
