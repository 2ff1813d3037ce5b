package model

import "utabox/shared/model"

const (
	TableName  = "business_hours"
	EntityName = "business_hours"

	FieldID        = "id"
	FieldTenantID  = "tenant_id"
	FieldWeekday   = "weekday"
	FieldClosed    = "closed"
	FieldOpenTime  = "open_time"
	FieldCloseTime = "close_time"
)

// BusinessHours is one weekday's opening window for a tenant. Weekday follows
// time.Weekday numbering (0 = Sunday). Open and close times are wall-clock
// "HH:MM" strings in the tenant's timezone; both are empty when Closed.
type BusinessHours struct {
	ID        string `db:"id"`
	TenantID  string `db:"tenant_id"`
	Weekday   int    `db:"weekday"`
	Closed    bool   `db:"closed"`
	OpenTime  string `db:"open_time"`
	CloseTime string `db:"close_time"`
	model.Metadata
}
