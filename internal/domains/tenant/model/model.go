package model

import "utabox/shared/model"

const (
	TableName  = "tenants"
	EntityName = "tenant"

	FieldID               = "id"
	FieldSlug             = "slug"
	FieldName             = "name"
	FieldActive           = "active"
	FieldTimezone         = "timezone"
	FieldCurrency         = "currency"
	FieldMaxRooms         = "max_rooms"
	FieldMaxBookingsMonth = "max_bookings_month"
)

type Tenant struct {
	ID               string `db:"id"`
	Slug             string `db:"slug"`
	Name             string `db:"name"`
	Active           bool   `db:"active"`
	Timezone         string `db:"timezone"`
	Currency         string `db:"currency"`
	MaxRooms         int    `db:"max_rooms"`
	MaxBookingsMonth int    `db:"max_bookings_month"`
	model.Metadata
}
