package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"utabox/shared/failure"
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

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "InvalidPageParam",
			failure: failure.InvalidPageParam,
			code:    http.StatusBadRequest,
			message: "invalid page parameter",
		},
		{
			name:    "TenantNotFound",
			failure: failure.TenantNotFound,
			code:    http.StatusNotFound,
			message: "tenant not found",
		},
		{
			name:    "TenantInactive",
			failure: failure.TenantInactive,
			code:    http.StatusUnprocessableEntity,
			message: "tenant is inactive",
		},
		{
			name:    "RoomNotFound",
			failure: failure.RoomNotFound,
			code:    http.StatusNotFound,
			message: "room not found",
		},
		{
			name:    "InvalidInterval",
			failure: failure.InvalidInterval,
			code:    http.StatusBadRequest,
			message: "end time must be after start time",
		},
		{
			name:    "OutsideBusinessHours",
			failure: failure.OutsideBusinessHours,
			code:    http.StatusBadRequest,
			message: "requested time is outside business hours",
		},
		{
			name:    "TimeSlotConflict",
			failure: failure.TimeSlotConflict,
			code:    http.StatusConflict,
			message: "time slot conflicts with an existing booking",
		},
		{
			name:    "AlreadyCancelled",
			failure: failure.AlreadyCancelled,
			code:    http.StatusUnprocessableEntity,
			message: "booking is already cancelled",
		},
		{
			name:    "RoomLimitReached",
			failure: failure.RoomLimitReached,
			code:    http.StatusUnprocessableEntity,
			message: "tenant room limit reached",
		},
		{
			name:    "StorageUnavailable",
			failure: failure.StorageUnavailable,
			code:    http.StatusServiceUnavailable,
			message: "storage temporarily unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, tt.failure.Code)
			}
			if tt.failure.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, tt.failure.Message)
			}
		})
	}
}

func TestPredefinedFailures_ErrorsIs(t *testing.T) {
	wrapped := fmt.Errorf("failed to insert booking: %w", failure.TimeSlotConflict)

	if !errors.Is(wrapped, failure.TimeSlotConflict) {
		t.Error("expected wrapped error to match TimeSlotConflict")
	}

	if errors.Is(wrapped, failure.BookingNotFound) {
		t.Error("expected wrapped error not to match BookingNotFound")
	}
}

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "with error",
			input:    errors.New("validation failed"),
			expected: &failure.Failure{Code: http.StatusBadRequest, Message: "validation failed"},
		},
		{
			name:     "with nil error",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.BadRequest(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}
			} else {
				f, ok := result.(*failure.Failure)
				if !ok {
					t.Errorf("expected result to be *failure.Failure, got %T", result)
				} else {
					expectedF := tt.expected.(*failure.Failure)
					if f.Code != expectedF.Code || f.Message != expectedF.Message {
						t.Errorf("expected %+v, got %+v", expectedF, f)
					}
				}
			}
		})
	}
}

func TestBadRequestFromString(t *testing.T) {
	result := failure.BadRequestFromString("custom bad request")

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Errorf("expected result to be *failure.Failure, got %T", result)
	} else {
		if f.Code != http.StatusBadRequest {
			t.Errorf("expected code to be %d, got %d", http.StatusBadRequest, f.Code)
		}
		if f.Message != "custom bad request" {
			t.Errorf("expected message to be 'custom bad request', got %s", f.Message)
		}
	}
}

func TestConflict(t *testing.T) {
	result := failure.Conflict("tenant slug is already in use")

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Errorf("expected result to be *failure.Failure, got %T", result)
	} else {
		if f.Code != http.StatusConflict {
			t.Errorf("expected code to be %d, got %d", http.StatusConflict, f.Code)
		}
		if f.Message != "tenant slug is already in use" {
			t.Errorf("expected message to be 'tenant slug is already in use', got %s", f.Message)
		}
	}
}

func TestUnprocessable(t *testing.T) {
	result := failure.Unprocessable("booking window closed")

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Errorf("expected result to be *failure.Failure, got %T", result)
	} else if f.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected code to be %d, got %d", http.StatusUnprocessableEntity, f.Code)
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "predefined failure",
			input:    failure.TimeSlotConflict,
			expected: http.StatusConflict,
		},
		{
			name:     "wrapped failure",
			input:    fmt.Errorf("placement failed: %w", failure.OutsideBusinessHours),
			expected: http.StatusBadRequest,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	if !failure.IsRetryable(failure.StorageUnavailable) {
		t.Error("expected StorageUnavailable to be retryable")
	}

	if failure.IsRetryable(failure.TimeSlotConflict) {
		t.Error("expected TimeSlotConflict not to be retryable")
	}

	if failure.IsRetryable(nil) {
		t.Error("expected nil to not be retryable")
	}
}
