package model

import (
	"github.com/shopspring/decimal"

	"utabox/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldTenantID   = "tenant_id"
	FieldName       = "name"
	FieldCategory   = "category"
	FieldCapacity   = "capacity"
	FieldHourlyRate = "hourly_rate"
	FieldActive     = "active"
)

type Room struct {
	ID         string          `db:"id"`
	TenantID   string          `db:"tenant_id"`
	Name       string          `db:"name"`
	Category   string          `db:"category"`
	Capacity   int             `db:"capacity"`
	HourlyRate decimal.Decimal `db:"hourly_rate"`
	Active     bool            `db:"active"`
	model.Metadata
}
