package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err:  &AppError{Code: ErrCodeNotFound, Message: "contact not found"},
			want: "contact not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeUnavailable,
				Message: "backend unreachable",
				Cause:   errors.New("connection refused"),
			},
			want: "backend unreachable: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrCodeInternal, "wrapped error")

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(%v, cause) = false", err)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantCode ErrorCode
		wantMsg  string
	}{
		{name: "not found", err: NotFound("missing"), wantCode: ErrCodeNotFound, wantMsg: "missing"},
		{name: "conflict", err: Conflict("exists"), wantCode: ErrCodeConflict, wantMsg: "exists"},
		{name: "validation", err: Validation("bad"), wantCode: ErrCodeValidation, wantMsg: "bad"},
		{name: "timeout", err: Timeout("role check"), wantCode: ErrCodeTimeout, wantMsg: "role check timed out"},
		{name: "unauthorized", err: Unauthorized("no session"), wantCode: ErrCodeUnauthorized, wantMsg: "no session"},
		{name: "forbidden", err: Forbidden("admin only"), wantCode: ErrCodeForbidden, wantMsg: "admin only"},
		{name: "internal", err: Internalf("boom %s", "x"), wantCode: ErrCodeInternal, wantMsg: "boom x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMsg {
				t.Errorf("Message = %v, want %v", tt.err.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("email", "email is invalid")
	if err.Code != ErrCodeValidation || err.Field != "email" {
		t.Errorf("ValidationField() = %+v", err)
	}
	if GetField(fmt.Errorf("wrap: %w", err)) != "email" {
		t.Error("GetField should see through wrapping")
	}
}

func TestWrap_NilError(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "wrapped error"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
	if err := Unavailable(nil, "down"); err != nil {
		t.Errorf("Unavailable(nil) = %v, want nil", err)
	}
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name string
		is   func(error) bool
		hit  error
	}{
		{name: "not found", is: IsNotFound, hit: NotFound("x")},
		{name: "conflict", is: IsConflict, hit: Conflict("x")},
		{name: "validation", is: IsValidation, hit: ValidationField("name", "x")},
		{name: "timeout", is: IsTimeout, hit: ErrTimeout},
		{name: "unavailable", is: IsUnavailable, hit: Unavailable(errors.New("dial"), "x")},
		{name: "email not confirmed", is: IsEmailNotConfirmed, hit: New(ErrCodeEmailNotConfirmed, "x")},
		{name: "invalid credentials", is: IsInvalidCredentials, hit: New(ErrCodeInvalidCredentials, "x")},
		{name: "unauthorized", is: IsUnauthorized, hit: Unauthorized("x")},
		{name: "forbidden", is: IsForbidden, hit: Forbidden("x")},
		{name: "internal", is: IsInternal, hit: Internal("x")},
		{name: "canceled", is: IsCanceled, hit: New(ErrCodeCanceled, "x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.is(tt.hit) {
				t.Errorf("expected match for %v", tt.hit)
			}
			if !tt.is(fmt.Errorf("wrapped: %w", tt.hit)) {
				t.Error("expected match through wrapping")
			}
			if tt.is(errors.New("plain")) {
				t.Error("plain error should not match")
			}
			if tt.is(nil) {
				t.Error("nil should not match")
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(NotFound("x")); got != ErrCodeNotFound {
		t.Errorf("GetCode() = %v", got)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := Wrap(errors.New("dial tcp: refused"), ErrCodeUnavailable, "Backend unavailable")
	if got := UserMessage(err); got != "Backend unavailable" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
	if got := UserMessage(nil); got != "" {
		t.Errorf("UserMessage(nil) = %q", got)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "timeout", err: ErrTimeout, want: true},
		{name: "unavailable", err: Unavailable(errors.New("502"), "bad gateway"), want: true},
		{name: "deadline exceeded", err: fmt.Errorf("call: %w", context.DeadlineExceeded), want: true},
		{name: "net op error", err: &net.OpError{Op: "dial", Err: errors.New("refused")}, want: true},
		{name: "validation", err: Validation("name is required"), want: false},
		{name: "conflict", err: Conflict("dup"), want: false},
		{name: "forbidden", err: Forbidden("rls"), want: false},
		{name: "plain", err: errors.New("boom"), want: false},
		{name: "join with timeout", err: errors.Join(Internal("400"), ErrTimeout), want: true},
		{name: "join without transient", err: errors.Join(Internal("400"), Forbidden("rls")), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
