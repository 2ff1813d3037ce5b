package model

import (
	"time"

	"github.com/shopspring/decimal"

	"utabox/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID         = "id"
	FieldTenantID   = "tenant_id"
	FieldRoomID     = "room_id"
	FieldGuestName  = "guest_name"
	FieldGuestEmail = "guest_email"
	FieldGuestPhone = "guest_phone"
	FieldStartTime  = "start_time"
	FieldEndTime    = "end_time"
	FieldStatus     = "status"
	FieldNotes      = "notes"
	FieldTotalPrice = "total_price"
)

// Booking holds one reservation of a room for a half-open time interval
// [StartTime, EndTime). TotalPrice is computed from the room's hourly rate at
// write time and is never recomputed on later reads.
type Booking struct {
	ID         string          `db:"id"`
	TenantID   string          `db:"tenant_id"`
	RoomID     string          `db:"room_id"`
	GuestName  string          `db:"guest_name"`
	GuestEmail string          `db:"guest_email"`
	GuestPhone string          `db:"guest_phone"`
	StartTime  time.Time       `db:"start_time"`
	EndTime    time.Time       `db:"end_time"`
	Status     string          `db:"status"`
	Notes      string          `db:"notes"`
	TotalPrice decimal.Decimal `db:"total_price"`
	model.Metadata
}
