package dto

import (
	"github.com/google/uuid"

	"utabox/internal/domains/hours/model"
	gDto "utabox/shared/dto"
	gModel "utabox/shared/model"
	"utabox/shared/timezone"
)

type UpsertBusinessHoursRequest struct {
	Weekday   int    `json:"weekday"    validate:"gte=0,lte=6"`
	Closed    bool   `json:"closed"`
	OpenTime  string `json:"open_time"  validate:"required_unless=Closed true,omitempty,clock"`
	CloseTime string `json:"close_time" validate:"required_unless=Closed true,omitempty,clock"`
}

func (c *UpsertBusinessHoursRequest) ToModel(tenantID, user string) model.BusinessHours {
	openTime := c.OpenTime
	closeTime := c.CloseTime

	if c.Closed {
		openTime = ""
		closeTime = ""
	}

	return model.BusinessHours{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Weekday:   c.Weekday,
		Closed:    c.Closed,
		OpenTime:  openTime,
		CloseTime: closeTime,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type SetWeekRequest struct {
	Days []UpsertBusinessHoursRequest `json:"days" validate:"required,len=7,dive"`
}

type BusinessHoursResponse struct {
	Weekday   int    `json:"weekday"`
	Closed    bool   `json:"closed"`
	OpenTime  string `json:"open_time,omitempty"`
	CloseTime string `json:"close_time,omitempty"`
	gDto.Metadata
}

func (r *BusinessHoursResponse) FromModel(model model.BusinessHours) {
	r.Weekday = model.Weekday
	r.Closed = model.Closed
	r.OpenTime = model.OpenTime
	r.CloseTime = model.CloseTime
	r.Metadata.FromModel(model.Metadata)
}

type GetBusinessHoursResponse struct {
	Days []BusinessHoursResponse `json:"days"`
}

func (r *GetBusinessHoursResponse) FromModels(models []model.BusinessHours) {
	r.Days = make([]BusinessHoursResponse, len(models))
	for i, mod := range models {
		r.Days[i].FromModel(mod)
	}
}
