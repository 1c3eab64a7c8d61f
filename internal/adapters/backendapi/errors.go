package backendapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/oauth2"

	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
)

// Auth and data APIs disagree on error body shapes; these expressions cover both.
const (
	errorCodeExpr    = "error_code || code || error"
	errorMessageExpr = "msg || message || error_description || error"
)

// APIError is a decoded non-2xx backend response.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend status %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend status %d: %s", e.Status, e.Message)
}

// FromResponse converts a failed response into an application error.
func FromResponse(status int, body []byte) error {
	apiErr := ParseError(status, body)
	return classify(apiErr)
}

// ParseError extracts code and message from a JSON error body.
func ParseError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var doc any
	if err := json.Unmarshal(body, &doc); err == nil {
		apiErr.Code = searchString(errorCodeExpr, doc)
		apiErr.Message = searchString(errorMessageExpr, doc)
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

func searchString(expr string, doc any) string {
	v, err := jmespath.Search(expr, doc)
	if err != nil || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return ""
	}
}

// Postgres SQLSTATEs surfaced by the data API.
const (
	sqlStateUniqueViolation       = "23505"
	sqlStateCheckViolation        = "23514"
	sqlStateNotNullViolation      = "23502"
	sqlStateInvalidText           = "22P02"
	sqlStateInsufficientPrivilege = "42501"
)

func classify(e *APIError) error {
	code := strings.ToLower(e.Code)
	switch code {
	case "invalid_credentials", "invalid_grant":
		return apperrors.Wrap(e, apperrors.ErrCodeInvalidCredentials, e.Message)
	case "email_not_confirmed":
		return apperrors.Wrap(e, apperrors.ErrCodeEmailNotConfirmed, e.Message)
	case sqlStateUniqueViolation:
		return apperrors.Wrap(e, apperrors.ErrCodeConflict, e.Message)
	case sqlStateCheckViolation, sqlStateNotNullViolation, sqlStateInvalidText:
		return apperrors.Wrap(e, apperrors.ErrCodeValidation, e.Message)
	case sqlStateInsufficientPrivilege:
		return apperrors.Wrap(e, apperrors.ErrCodeForbidden, e.Message)
	}

	switch {
	case e.Status == http.StatusTooManyRequests || e.Status >= 500:
		return apperrors.Wrap(e, apperrors.ErrCodeUnavailable, e.Message)
	case e.Status == http.StatusUnauthorized:
		return apperrors.Wrap(e, apperrors.ErrCodeUnauthorized, e.Message)
	case e.Status == http.StatusForbidden:
		return apperrors.Wrap(e, apperrors.ErrCodeForbidden, e.Message)
	case e.Status == http.StatusNotFound:
		return apperrors.Wrap(e, apperrors.ErrCodeNotFound, e.Message)
	case e.Status == http.StatusConflict:
		return apperrors.Wrap(e, apperrors.ErrCodeConflict, e.Message)
	case e.Status >= 400 && e.Status < 500:
		return apperrors.Wrap(e, apperrors.ErrCodeValidation, e.Message)
	default:
		return apperrors.Wrap(e, apperrors.ErrCodeInternal, e.Message)
	}
}

// fromRetrieveError maps a failed token refresh issued by the oauth2 transport.
func fromRetrieveError(re *oauth2.RetrieveError) error {
	status := 0
	if re.Response != nil {
		status = re.Response.StatusCode
	}
	if status == 0 || status >= 500 || status == http.StatusTooManyRequests {
		return apperrors.Unavailable(re, "token refresh failed")
	}
	return apperrors.Wrap(re, apperrors.ErrCodeUnauthorized, "session expired; sign in again")
}
