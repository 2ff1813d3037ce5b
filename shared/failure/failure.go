package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

// Scheduling failures. Handlers and clients branch on these, so each
// precondition gets its own value rather than a generic message.
var (
	TenantNotFound        = &Failure{Code: http.StatusNotFound, Message: "tenant not found"}
	TenantInactive        = &Failure{Code: http.StatusUnprocessableEntity, Message: "tenant is inactive"}
	RoomNotFound          = &Failure{Code: http.StatusNotFound, Message: "room not found"}
	RoomInactive          = &Failure{Code: http.StatusUnprocessableEntity, Message: "room is inactive"}
	BookingNotFound       = &Failure{Code: http.StatusNotFound, Message: "booking not found"}
	InvalidInterval       = &Failure{Code: http.StatusBadRequest, Message: "end time must be after start time"}
	IntervalInPast        = &Failure{Code: http.StatusBadRequest, Message: "start time must not be in the past"}
	OutsideBusinessHours  = &Failure{Code: http.StatusBadRequest, Message: "requested time is outside business hours"}
	TimeSlotConflict      = &Failure{Code: http.StatusConflict, Message: "time slot conflicts with an existing booking"}
	AlreadyCancelled      = &Failure{Code: http.StatusUnprocessableEntity, Message: "booking is already cancelled"}
	BookingCompleted      = &Failure{Code: http.StatusUnprocessableEntity, Message: "booking is already completed"}
	RoomHasActiveBookings = &Failure{Code: http.StatusUnprocessableEntity, Message: "room still has upcoming bookings"}
	RoomLimitReached      = &Failure{Code: http.StatusUnprocessableEntity, Message: "tenant room limit reached"}
	StorageUnavailable    = &Failure{Code: http.StatusServiceUnavailable, Message: "storage temporarily unavailable"}
)

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// Unprocessable returns a new Failure for requests that are well-formed but
// violate a domain rule.
func Unprocessable(message string) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Message: message,
	}
}

// Unavailable returns a new Failure for transient backing-store outages.
// Callers may retry these; every other failure class is final.
func Unavailable(message string) error {
	return &Failure{
		Code:    http.StatusServiceUnavailable,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsRetryable reports whether the error is a transient storage failure that
// the caller may retry.
func IsRetryable(err error) bool {
	return GetCode(err) == http.StatusServiceUnavailable
}
