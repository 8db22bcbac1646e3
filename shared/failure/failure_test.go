package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"nestling/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{
			name: "NotFound",
			err:  failure.NotFound("booking not found"),
			code: http.StatusNotFound,
		},
		{
			name: "Validation",
			err:  failure.Validation("child name is required"),
			code: http.StatusBadRequest,
		},
		{
			name: "Unavailable",
			err:  failure.Unavailable("no availability for requested time"),
			code: http.StatusConflict,
		},
		{
			name: "IllegalTransition",
			err:  failure.IllegalTransition("booking is cancelled"),
			code: http.StatusUnprocessableEntity,
		},
		{
			name: "InvalidToken",
			err:  failure.InvalidToken("invalid QR code"),
			code: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}
		})
	}
}

func TestGetCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("loading booking: %w", failure.NotFound("booking not found"))

	if got := failure.GetCode(err); got != http.StatusNotFound {
		t.Errorf("expected wrapped failure to keep code %d, got %d", http.StatusNotFound, got)
	}

	if !failure.IsCode(err, http.StatusNotFound) {
		t.Error("expected IsCode to match wrapped failure")
	}
}

func TestGetCode_PlainError(t *testing.T) {
	if got := failure.GetCode(errors.New("boom")); got != http.StatusInternalServerError {
		t.Errorf("expected plain error to map to 500, got %d", got)
	}
}
