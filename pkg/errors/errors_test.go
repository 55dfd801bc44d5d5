package errors

import (
	stderrors "errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidBounds, "bounds must be non-decreasing"),
			want: "INVALID_BOUNDS: bounds must be non-decreasing",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeNetwork, stderrors.New("connection refused"), "fetch dataset"),
			want: "NETWORK_ERROR: fetch dataset: connection refused",
		},
		{
			name: "formatted message",
			err:  New(ErrCodeMissingColumn, "column %q not found", "Postcode"),
			want: `MISSING_COLUMN: column "Postcode" not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeEmptyTable, "no rows")
	if !Is(err, ErrCodeEmptyTable) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is() should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeEmptyTable) {
		t.Error("Is() should not match plain errors")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeFileNotFound, "missing dataset")
	outer := Wrap(ErrCodeInternal, inner, "load")

	// GetCode reports the outermost code.
	if got := GetCode(outer); got != ErrCodeInternal {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeInternal)
	}

	// Unwrap exposes the cause.
	if !stderrors.Is(outer, inner) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "labels and colors must have the same length")
	if got := UserMessage(err); got != "labels and colors must have the same length" {
		t.Errorf("UserMessage() = %q", got)
	}

	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
