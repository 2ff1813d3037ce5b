package router

import (
	"utabox/internal/handlers/booking"
	"utabox/internal/handlers/hours"
	"utabox/internal/handlers/room"
	"utabox/internal/handlers/tenant"
	"utabox/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Tenant  tenant.Handler
	Room    room.Handler
	Hours   hours.Handler
	Booking booking.Handler
}

type Router struct {
	DomainHandlers   DomainHandlers
	TenantMiddleware middleware.Tenant
}

// SetupRoutes mounts the API under /v1. The tenant directory stays outside
// the tenant middleware; everything else only exists inside a resolved
// tenant scope.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Tenant.Router(routerGroup)

		routerGroup.Group(func(tenantGroup chi.Router) {
			tenantGroup.Use(r.TenantMiddleware.Resolve)

			r.DomainHandlers.Room.Router(tenantGroup)
			r.DomainHandlers.Hours.Router(tenantGroup)
			r.DomainHandlers.Booking.Router(tenantGroup)
		})
	})
}

func New(domainHandlers DomainHandlers, tenantMiddleware middleware.Tenant) Router {
	return Router{
		DomainHandlers:   domainHandlers,
		TenantMiddleware: tenantMiddleware,
	}
}
