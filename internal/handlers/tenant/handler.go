package tenant

import (
	"net/http"
	"utabox/infras/otel"
	"utabox/internal/domains/tenant/model"
	"utabox/internal/domains/tenant/model/dto"
	"utabox/internal/domains/tenant/service"
	"utabox/shared"
	"utabox/shared/constant"
	gDto "utabox/shared/dto"
	"utabox/shared/validator"
	"utabox/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

// Handler exposes the tenant directory. These are platform-operator routes;
// they manage tenants rather than operate inside one.
type Handler struct {
	service service.Tenant
	otel    otel.Otel
}

func New(service service.Tenant, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tenants", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTenant)
		routerGroup.Get("/", handler.GetTenants)
		routerGroup.Get("/{id}", handler.GetTenantByID)
		routerGroup.Patch("/{id}", handler.UpdateTenant)
		routerGroup.Delete("/{id}", handler.DeactivateTenant)
	})
}

// CreateTenant registers a new tenant.
// @Summary Create a new tenant
// @Description Register a venue operator with its slug, timezone, and limits.
// @Tags Tenant
// @Accept json
// @Produce json
// @Param request body dto.CreateTenantRequest true "Create Tenant Request"
// @Success 201 {object} response.Message "Tenant created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/tenants [post]
// @Security BearerAuth
func (handler *Handler) CreateTenant(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTenant")
	defer scope.End()

	req := dto.CreateTenantRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create tenant")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Tenant created successfully")

	response.WithMessage(writer, http.StatusCreated, "Tenant created successfully")
}

// GetTenants retrieves all tenants based on query parameters.
// @Summary Get all tenants
// @Description Retrieve tenants with optional filtering and pagination.
// @Tags Tenant
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param active query boolean false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetTenantsResponse] "List of tenants"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tenants [get]
// @Security BearerAuth
func (handler *Handler) GetTenants(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTenants")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	tenants, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tenants")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tenants retrieved successfully")

	response.WithJSON(w, http.StatusOK, tenants)
}

// GetTenantByID retrieves a tenant by its ID.
// @Summary Get a tenant by ID
// @Description Retrieve a tenant by its unique identifier.
// @Tags Tenant
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} response.Data[dto.TenantResponse] "Tenant details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tenants/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetTenantByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTenantByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	tenant, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tenant by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tenant retrieved successfully")

	response.WithJSON(w, http.StatusOK, tenant)
}

// UpdateTenant updates an existing tenant.
// @Summary Update a tenant
// @Description Update a tenant's details and limits.
// @Tags Tenant
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Param request body dto.UpdateTenantRequest true "Update Tenant Request"
// @Success 200 {object} response.Message "Tenant updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/tenants/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTenant(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTenant")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateTenantRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update tenant")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Tenant updated successfully")

	response.WithMessage(writer, http.StatusOK, "Tenant updated successfully")
}

// DeactivateTenant suspends a tenant.
// @Summary Deactivate a tenant
// @Description Suspend a tenant. Its slug stops resolving and all writes are rejected.
// @Tags Tenant
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} response.Message "Tenant deactivated successfully"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/tenants/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeactivateTenant(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeactivateTenant")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Deactivate(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to deactivate tenant")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Tenant deactivated successfully")

	response.WithMessage(writer, http.StatusOK, "Tenant deactivated successfully")
}
