package middleware

import (
	"context"
	"net/http"
	"strings"

	"utabox/config"
	"utabox/infras/jwt"
	"utabox/infras/otel"
	tenantService "utabox/internal/domains/tenant/service"
	"utabox/shared/constant"
	"utabox/shared/failure"
	"utabox/transport/http/response"

	"github.com/rs/zerolog/log"
)

// Tenant resolves the caller's tenant and stamps it on the request context.
// Every route behind it runs scoped to exactly one tenant; handlers and
// services never see a request without a resolved tenant ID.
type Tenant interface {
	Resolve(next http.Handler) http.Handler
}

type tenantMiddleware struct {
	jwtService jwt.JWT
	tenants    tenantService.Tenant
	cfg        *config.Config
	otel       otel.Otel
}

func NewTenantMiddleware(jwtService jwt.JWT, tenants tenantService.Tenant, cfg *config.Config, otel otel.Otel) Tenant {
	return &tenantMiddleware{
		jwtService: jwtService,
		tenants:    tenants,
		cfg:        cfg,
		otel:       otel,
	}
}

func (m *tenantMiddleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "tenant.middleware")
		defer scope.End()

		slug, userID, role, err := m.identify(request)
		if err != nil {
			scope.TraceError(err)
			log.Warn().Err(err).Msg("failed to identify tenant")

			response.WithError(writer, failure.Unauthorized(err.Error()))

			return
		}

		tenant, err := m.tenants.Resolve(ctx, slug)
		if err != nil {
			scope.TraceError(err)
			log.Warn().Err(err).Str("slug", slug).Msg("failed to resolve tenant")

			response.WithError(writer, err)

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyTenantID, tenant.ID)
		ctx = context.WithValue(ctx, constant.ContextKeyTenantSlug, slug)
		ctx = context.WithValue(ctx, constant.ContextKeyTenantTimezone, tenant.Timezone)
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, userID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, role)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// identify extracts the tenant slug and caller identity from the bearer
// token. In development the X-Tenant-Slug header works without a token so
// local tooling does not need to mint JWTs.
func (m *tenantMiddleware) identify(request *http.Request) (slug, userID, role string, err error) {
	header := request.Header.Get(constant.RequestHeaderAuthorization)

	if token, found := strings.CutPrefix(header, "Bearer "); found {
		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			return "", "", "", err
		}

		return claims.TenantSlug, claims.UserID, claims.Role, nil
	}

	if m.cfg.Server.Env == constant.ServerEnvDevelopment {
		if slug := request.Header.Get(constant.RequestHeaderTenantSlug); slug != "" {
			return slug, "", "", nil
		}
	}

	return "", "", "", jwt.ErrInvalidToken
}
