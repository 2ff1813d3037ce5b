package validator_test

import (
	"strings"
	"testing"

	"utabox/shared/validator"
)

type bookingWindow struct {
	OpenTime  string `json:"open_time"  validate:"required,clock"`
	CloseTime string `json:"close_time" validate:"required,clock"`
	StartTime string `json:"start_time" validate:"required,timestamp"`
}

func TestValidateStruct_Clock(t *testing.T) {
	tests := []struct {
		name        string
		data        bookingWindow
		expectError bool
	}{
		{
			name: "valid window",
			data: bookingWindow{
				OpenTime:  "09:00",
				CloseTime: "22:00",
				StartTime: "2026-09-07T10:00:00Z",
			},
			expectError: false,
		},
		{
			name: "clock with seconds",
			data: bookingWindow{
				OpenTime:  "09:00:00",
				CloseTime: "22:00",
				StartTime: "2026-09-07T10:00:00Z",
			},
			expectError: true,
		},
		{
			name: "hour out of range",
			data: bookingWindow{
				OpenTime:  "25:00",
				CloseTime: "22:00",
				StartTime: "2026-09-07T10:00:00Z",
			},
			expectError: true,
		},
		{
			name: "timestamp without zone",
			data: bookingWindow{
				OpenTime:  "09:00",
				CloseTime: "22:00",
				StartTime: "2026-09-07 10:00:00",
			},
			expectError: true,
		},
		{
			name: "timestamp with offset",
			data: bookingWindow{
				OpenTime:  "09:00",
				CloseTime: "22:00",
				StartTime: "2026-09-07T10:00:00+09:00",
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidate_FromReader(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		body := `{"open_time":"09:00","close_time":"22:00","start_time":"2026-09-07T10:00:00Z"}`

		var data bookingWindow
		if err := validator.Validate(strings.NewReader(body), &data); err != nil {
			t.Errorf("expected no error, got %v", err)
		}

		if data.OpenTime != "09:00" {
			t.Errorf("expected open_time to be decoded, got %s", data.OpenTime)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		var data bookingWindow
		if err := validator.Validate(strings.NewReader("{not json"), &data); err == nil {
			t.Error("expected decode error, got nil")
		}
	})
}

func TestValidateVar(t *testing.T) {
	if err := validator.ValidateVar("2026-09-07T10:00:00Z", "timestamp"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := validator.ValidateVar("not-a-time", "timestamp"); err == nil {
		t.Error("expected error, got nil")
	}

	if err := validator.ValidateVar("09:30", "clock"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}
