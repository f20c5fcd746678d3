package testutil

import (
	"errors"
	"testing"

	apperrors "gestor/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error
// code. The failure message carries the HTTP status so a 403 premium gate
// firing where a 404 scoping error was expected is obvious from the output.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Fatalf("expected error code %q, got %q (%d %s)",
			expectedCode, appErr.Code, appErr.StatusCode, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil. AppErrors are unwrapped
// so the failure shows the code rather than only the generic message.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err == nil {
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		t.Fatalf("unexpected error %s: %v", appErr.Code, err)
	}
	t.Fatalf("unexpected error: %v", err)
}
