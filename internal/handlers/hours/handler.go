package hours

import (
	"net/http"
	"utabox/infras/otel"
	"utabox/internal/domains/hours/model/dto"
	"utabox/internal/domains/hours/service"
	"utabox/shared/constant"
	"utabox/shared/validator"
	"utabox/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.BusinessHours
	otel    otel.Otel
}

func New(service service.BusinessHours, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/business-hours", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBusinessHours)
		routerGroup.Put("/", handler.UpsertBusinessHours)
		routerGroup.Put("/week", handler.SetWeek)
	})
}

// GetBusinessHours retrieves the tenant's weekly calendar.
// @Summary Get business hours
// @Description Retrieve the tenant's opening windows for each weekday.
// @Tags BusinessHours
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetBusinessHoursResponse] "Weekly business hours"
// @Failure 500 {object} response.Error
// @Router /v1/business-hours [get]
// @Security BearerAuth
func (handler *Handler) GetBusinessHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBusinessHours")
	defer scope.End()

	hours, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get business hours")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Business hours retrieved successfully")

	response.WithJSON(w, http.StatusOK, hours)
}

// UpsertBusinessHours sets one weekday's opening window.
// @Summary Upsert business hours for a weekday
// @Description Set or replace the opening window for one weekday.
// @Tags BusinessHours
// @Accept json
// @Produce json
// @Param request body dto.UpsertBusinessHoursRequest true "Upsert Business Hours Request"
// @Success 200 {object} response.Message "Business hours saved successfully"
// @Failure 400 {object} response.Error
// @Router /v1/business-hours [put]
// @Security BearerAuth
func (handler *Handler) UpsertBusinessHours(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertBusinessHours")
	defer scope.End()

	req := dto.UpsertBusinessHoursRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Upsert(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upsert business hours")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Business hours saved successfully")

	response.WithMessage(writer, http.StatusOK, "Business hours saved successfully")
}

// SetWeek replaces the whole weekly calendar.
// @Summary Replace the weekly calendar
// @Description Replace all seven weekday windows in one call.
// @Tags BusinessHours
// @Accept json
// @Produce json
// @Param request body dto.SetWeekRequest true "Set Week Request"
// @Success 200 {object} response.Message "Business hours saved successfully"
// @Failure 400 {object} response.Error
// @Router /v1/business-hours/week [put]
// @Security BearerAuth
func (handler *Handler) SetWeek(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetWeek")
	defer scope.End()

	req := dto.SetWeekRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.SetWeek(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to replace business hours")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Business hours saved successfully")

	response.WithMessage(writer, http.StatusOK, "Business hours saved successfully")
}
