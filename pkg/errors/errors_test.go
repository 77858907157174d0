package errors

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "Visitor not found",
			},
			expected: "NOT_FOUND: Visitor not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeUpstream,
				Message: "Visitor search failed",
				Err:     errors.New("connection refused"),
			},
			expected: "UPSTREAM_ERROR: Visitor search failed (caused by: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Visitor", "42")

	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", err.HTTPStatus)
	}
	if err.Details["id"] != "42" || err.Details["resource"] != "Visitor" {
		t.Errorf("unexpected details: %v", err.Details)
	}
}

func TestUpstream(t *testing.T) {
	body := strings.Repeat("x", 1000)
	err := Upstream("Booking fetch failed", 503, body)

	if err.Code != CodeUpstream {
		t.Errorf("expected code %s, got %s", CodeUpstream, err.Code)
	}
	if err.HTTPStatus != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", err.HTTPStatus)
	}
	if err.Details["upstream_status"] != 503 {
		t.Errorf("expected upstream status 503, got %v", err.Details["upstream_status"])
	}
	excerpt, _ := err.Details["excerpt"].(string)
	if len(excerpt) != 400 {
		t.Errorf("expected excerpt bounded at 400 chars, got %d", len(excerpt))
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 400); got != "short" {
		t.Errorf("expected untouched string, got %q", got)
	}
	if got := Truncate(strings.Repeat("a", 500), 400); len(got) != 400 {
		t.Errorf("expected 400 chars, got %d", len(got))
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Coworker")
	if got := AsAppError(appErr); got != appErr {
		t.Error("expected the same AppError back")
	}

	plain := errors.New("boom")
	got := AsAppError(plain)
	if got.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, got.Code)
	}
	if !errors.Is(got, plain) {
		t.Error("expected the original error to be wrapped")
	}
}
