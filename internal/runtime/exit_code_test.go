// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"testing"
)

func TestExitCode_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		code    ExitCode
		want    bool
		wantErr bool
	}{
		{"zero success", 0, true, false},
		{"one general error", 1, true, false},
		{"timeout", ExitTimeout, true, false},
		{"not found", ExitNotFound, true, false},
		{"max valid 255", 255, true, false},
		{"negative", -1, false, true},
		{"above 255", 256, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			isValid, errs := tt.code.IsValid()
			if isValid != tt.want {
				t.Errorf("ExitCode(%d).IsValid() = %v, want %v", tt.code, isValid, tt.want)
			}
			if tt.wantErr {
				if len(errs) == 0 {
					t.Fatalf("ExitCode(%d).IsValid() returned no errors, want error", tt.code)
				}
				if !errors.Is(errs[0], ErrInvalidExitCode) {
					t.Errorf("error should wrap ErrInvalidExitCode, got: %v", errs[0])
				}
				var exitErr *InvalidExitCodeError
				if !errors.As(errs[0], &exitErr) {
					t.Errorf("error should be *InvalidExitCodeError, got: %T", errs[0])
				} else if exitErr.Value != tt.code {
					t.Errorf("InvalidExitCodeError.Value = %d, want %d", exitErr.Value, tt.code)
				}
			} else if len(errs) > 0 {
				t.Errorf("ExitCode(%d).IsValid() returned unexpected errors: %v", tt.code, errs)
			}
		})
	}
}

func TestExitCode_IsSuccess(t *testing.T) {
	t.Parallel()

	if !ExitCode(0).IsSuccess() {
		t.Error("ExitCode(0).IsSuccess() = false")
	}
	if ExitCode(3).IsSuccess() {
		t.Error("ExitCode(3).IsSuccess() = true")
	}
}

func TestExitCode_String(t *testing.T) {
	t.Parallel()

	if got := ExitCode(42).String(); got != "42" {
		t.Errorf("ExitCode(42).String() = %q, want %q", got, "42")
	}
}

func TestExitCodeOf(t *testing.T) {
	t.Parallel()

	if got := exitCodeOf(nil); got != ExitSuccess {
		t.Errorf("exitCodeOf(nil) = %d", got)
	}
	if got := exitCodeOf(errors.New("boom")); got != ExitFailure {
		t.Errorf("exitCodeOf(non-exit error) = %d, want %d", got, ExitFailure)
	}
}
