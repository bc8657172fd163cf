package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "file too large",
			err:         fmt.Errorf("%w: limit is 10 bytes", ErrFileTooLarge),
			wantCode:    "FILE001",
			wantMessage: "File exceeds the maximum upload size",
		},
		{
			name:        "parse error",
			err:         fmt.Errorf("%w: line 3: bare quote", ErrParse),
			wantCode:    "FILE002",
			wantMessage: "File is not a valid CSV",
		},
		{
			name:        "encoding error wins over parse error",
			err:         ErrEncoding,
			wantCode:    "FILE003",
			wantMessage: "File contains invalid characters",
		},
		{
			name:        "no file",
			err:         ErrNoFile,
			wantCode:    "FILE004",
			wantMessage: "No file was selected",
		},
		{
			name:        "header only",
			err:         ErrNoDataRows,
			wantCode:    "FILE005",
			wantMessage: "The file has no contacts to import",
		},
		{
			name:        "import in progress",
			err:         ErrImportInProgress,
			wantCode:    "IMP001",
			wantMessage: "Another import is already running",
		},
		{
			name:        "batch error wins over driver text",
			err:         &BatchError{Err: errors.New("duplicate key value")},
			wantCode:    "IMP002",
			wantMessage: "Some contacts could not be saved",
		},
		{
			name:        "canceled context",
			err:         fmt.Errorf("read body: %w", context.Canceled),
			wantCode:    "REQ001",
			wantMessage: "Request was cancelled",
		},
		{
			name:        "deadline exceeded",
			err:         context.DeadlineExceeded,
			wantCode:    "REQ002",
			wantMessage: "Request timed out",
		},
		{
			name:        "duplicate key",
			err:         errors.New("ERROR: duplicate key value violates unique constraint"),
			wantCode:    "DB001",
			wantMessage: "A contact with this value already exists",
		},
		{
			name:        "connection refused",
			err:         errors.New("dial tcp: connection refused"),
			wantCode:    "DB004",
			wantMessage: "Unable to connect to database",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("DEADLOCK detected"),
			wantCode:    "DB007",
			wantMessage: "Database was busy with conflicting operations",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrImportInProgress)

	expected := "Another import is already running (Code: IMP001). Wait for it to finish and try again"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"known error is user facing", ErrEmptyFile, true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := errors.New("dial tcp: connection refused")
		userErr := NewUserError(techErr)

		if userErr.Error() != "Unable to connect to database" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}
		if !errors.Is(userErr, techErr) {
			t.Error("Unwrap() should return original error")
		}
	})
}
