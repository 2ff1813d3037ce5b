package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"utabox/internal/domains/booking/model"
	"utabox/shared"
	"utabox/shared/constant"
	gDto "utabox/shared/dto"
	gModel "utabox/shared/model"
	"utabox/shared/timezone"
)

type CreateBookingRequest struct {
	RoomID     string `json:"room_id"     validate:"required,uuid"`
	GuestName  string `json:"guest_name"  validate:"required,max=100"`
	GuestEmail string `json:"guest_email" validate:"omitempty,email"`
	GuestPhone string `json:"guest_phone" validate:"omitempty,max=30"`
	StartTime  string `json:"start_time"  validate:"required,timestamp"`
	EndTime    string `json:"end_time"    validate:"required,timestamp"`
	Confirmed  bool   `json:"confirmed"`
	Notes      string `json:"notes"       validate:"omitempty,max=500"`
}

func (c *CreateBookingRequest) Interval() (start, end time.Time, err error) {
	start, err = time.Parse(constant.DateFormat, c.StartTime)
	if err != nil {
		return start, end, err
	}

	end, err = time.Parse(constant.DateFormat, c.EndTime)

	return start, end, err
}

func (c *CreateBookingRequest) ToModel(tenantID, user string, start, end time.Time, price decimal.Decimal) model.Booking {
	status := constant.BookingStatusPending
	if c.Confirmed {
		status = constant.BookingStatusConfirmed
	}

	return model.Booking{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		RoomID:     c.RoomID,
		GuestName:  c.GuestName,
		GuestEmail: c.GuestEmail,
		GuestPhone: c.GuestPhone,
		StartTime:  start,
		EndTime:    end,
		Status:     status,
		Notes:      c.Notes,
		TotalPrice: price,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateBookingRequest changes guest details, the room, or the interval of an
// existing booking. Blank placement fields keep the current values.
type UpdateBookingRequest struct {
	GuestName  string `json:"guest_name"  validate:"omitempty,max=100"`
	GuestEmail string `json:"guest_email" validate:"omitempty,email"`
	GuestPhone string `json:"guest_phone" validate:"omitempty,max=30"`
	RoomID     string `json:"room_id"     validate:"omitempty,uuid"`
	StartTime  string `json:"start_time"  validate:"omitempty,timestamp"`
	EndTime    string `json:"end_time"    validate:"omitempty,timestamp"`
	Status     string `json:"status"      validate:"omitempty,oneof=pending confirmed completed"`
	Notes      string `json:"notes"       validate:"omitempty,max=500"`
}

// MoveBookingRequest relocates a booking to another room and/or interval.
// When TargetBookingID is set the move is a swap: this booking takes the New*
// fields and the target takes its TargetNew* fields, which default to the
// slot this booking vacates.
type MoveBookingRequest struct {
	NewRoomID    string `json:"new_room_id"    validate:"omitempty,uuid"`
	NewStartTime string `json:"new_start_time" validate:"omitempty,timestamp"`
	NewEndTime   string `json:"new_end_time"   validate:"omitempty,timestamp"`

	TargetBookingID    string `json:"target_booking_id"     validate:"omitempty,uuid"`
	TargetNewRoomID    string `json:"target_new_room_id"    validate:"omitempty,uuid"`
	TargetNewStartTime string `json:"target_new_start_time" validate:"omitempty,timestamp"`
	TargetNewEndTime   string `json:"target_new_end_time"   validate:"omitempty,timestamp"`
}

// ResizeBookingRequest changes a booking's interval while the room stays
// fixed. Either bound may move; a blank bound keeps the current time.
type ResizeBookingRequest struct {
	NewStartTime string `json:"new_start_time" validate:"omitempty,timestamp"`
	NewEndTime   string `json:"new_end_time"   validate:"required,timestamp"`
}

type BookingResponse struct {
	ID         string `json:"id"`
	RoomID     string `json:"room_id"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email,omitempty"`
	GuestPhone string `json:"guest_phone,omitempty"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Status     string `json:"status"`
	Notes      string `json:"notes,omitempty"`
	TotalPrice string `json:"total_price"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.GuestName = model.GuestName
	r.GuestEmail = model.GuestEmail
	r.GuestPhone = model.GuestPhone
	r.StartTime = timezone.Format(model.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(model.EndTime, constant.DateFormat)
	r.Status = model.Status
	r.Notes = model.Notes
	r.TotalPrice = model.TotalPrice.StringFixed(2)
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingEvent is the payload published to Kafka after a successful write.
type BookingEvent struct {
	Event      string `json:"event"`
	TenantID   string `json:"tenant_id"`
	BookingID  string `json:"booking_id"`
	RoomID     string `json:"room_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurred_at"`
}
