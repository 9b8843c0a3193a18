package testutil

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "betmetric/internal/errors"
)

// AssertAppError fails unless err carries want's code and HTTP status.
// Custom messages and wrapped causes are ignored.
func AssertAppError(t *testing.T, err error, want *apperrors.AppError) {
	t.Helper()

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected %s, got %v", want.Code, err)
	}
	if appErr.Code != want.Code || appErr.StatusCode != want.StatusCode {
		t.Errorf("expected %s (%d), got %s (%d): %s",
			want.Code, want.StatusCode, appErr.Code, appErr.StatusCode, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertDecimal compares money by value, so "100" matches "100.00".
func AssertDecimal(t *testing.T, field string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected %s %s, got %s", field, want, got)
	}
}
