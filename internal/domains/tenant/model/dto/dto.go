package dto

import (
	"github.com/google/uuid"

	"utabox/internal/domains/tenant/model"
	"utabox/shared"
	gDto "utabox/shared/dto"
	gModel "utabox/shared/model"
	"utabox/shared/timezone"
)

type CreateTenantRequest struct {
	Slug             string `json:"slug"               validate:"required,max=63,lowercase,excludesall= "`
	Name             string `json:"name"               validate:"required,max=100"`
	Timezone         string `json:"timezone"           validate:"required,max=64"`
	Currency         string `json:"currency"           validate:"required,len=3,uppercase"`
	MaxRooms         int    `json:"max_rooms"          validate:"omitempty,gte=1"`
	MaxBookingsMonth int    `json:"max_bookings_month" validate:"omitempty,gte=1"`
}

func (c *CreateTenantRequest) ToModel(user string) model.Tenant {
	return model.Tenant{
		ID:               uuid.NewString(),
		Slug:             c.Slug,
		Name:             c.Name,
		Active:           true,
		Timezone:         c.Timezone,
		Currency:         c.Currency,
		MaxRooms:         c.MaxRooms,
		MaxBookingsMonth: c.MaxBookingsMonth,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTenantRequest struct {
	Name             string `db:"name"               json:"name"               validate:"omitempty,max=100"`
	Timezone         string `db:"timezone"           json:"timezone"           validate:"omitempty,max=64"`
	Currency         string `db:"currency"           json:"currency"           validate:"omitempty,len=3,uppercase"`
	MaxRooms         int    `db:"max_rooms"          json:"max_rooms"          validate:"omitempty,gte=1"`
	MaxBookingsMonth int    `db:"max_bookings_month" json:"max_bookings_month" validate:"omitempty,gte=1"`
}

type TenantResponse struct {
	ID               string `json:"id"`
	Slug             string `json:"slug"`
	Name             string `json:"name"`
	Active           bool   `json:"active"`
	Timezone         string `json:"timezone"`
	Currency         string `json:"currency"`
	MaxRooms         int    `json:"max_rooms"`
	MaxBookingsMonth int    `json:"max_bookings_month"`
	gDto.Metadata
}

func (r *TenantResponse) FromModel(model model.Tenant) {
	r.ID = model.ID
	r.Slug = model.Slug
	r.Name = model.Name
	r.Active = model.Active
	r.Timezone = model.Timezone
	r.Currency = model.Currency
	r.MaxRooms = model.MaxRooms
	r.MaxBookingsMonth = model.MaxBookingsMonth
	r.Metadata.FromModel(model.Metadata)
}

type GetTenantsResponse struct {
	Tenants   []TenantResponse `json:"tenants"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetTenantsResponse) FromModels(models []model.Tenant, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tenants = make([]TenantResponse, len(models))
	for i, mod := range models {
		r.Tenants[i].FromModel(mod)
	}
}
