package dto

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"utabox/internal/domains/room/model"
	"utabox/shared"
	gDto "utabox/shared/dto"
	gModel "utabox/shared/model"
	"utabox/shared/timezone"
)

type CreateRoomRequest struct {
	Name       string `json:"name"        validate:"required,max=100"`
	Category   string `json:"category"    validate:"omitempty,max=50"`
	Capacity   int    `json:"capacity"    validate:"required,gte=1"`
	HourlyRate string `json:"hourly_rate" validate:"required"`
}

func (c *CreateRoomRequest) ToModel(tenantID, user string) (model.Room, error) {
	rate, err := decimal.NewFromString(c.HourlyRate)
	if err != nil {
		return model.Room{}, err
	}

	if rate.IsNegative() {
		return model.Room{}, errors.New("hourly rate must not be negative")
	}

	return model.Room{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		Name:       c.Name,
		Category:   c.Category,
		Capacity:   c.Capacity,
		HourlyRate: rate,
		Active:     true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateRoomRequest struct {
	Name       string `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Category   string `db:"category"    json:"category"    validate:"omitempty,max=50"`
	Capacity   int    `db:"capacity"    json:"capacity"    validate:"omitempty,gte=1"`
	HourlyRate string `db:"hourly_rate" json:"hourly_rate" validate:"omitempty"`
}

type RoomResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Capacity   int    `json:"capacity"`
	HourlyRate string `json:"hourly_rate"`
	Active     bool   `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Category = model.Category
	r.Capacity = model.Capacity
	r.HourlyRate = model.HourlyRate.StringFixed(2)
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
