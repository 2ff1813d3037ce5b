//go:build wireinject
// +build wireinject

package di

import (
	"utabox/config"
	"utabox/infras/jwt"
	"utabox/infras/kafka"
	"utabox/infras/otel"
	"utabox/infras/postgres"
	"utabox/infras/redis"
	"utabox/shared/cache"
	"utabox/transport/http"
	"utabox/transport/http/middleware"
	"utabox/transport/http/router"

	bookingRepository "utabox/internal/domains/booking/repository"
	bookingService "utabox/internal/domains/booking/service"
	hoursRepository "utabox/internal/domains/hours/repository"
	hoursService "utabox/internal/domains/hours/service"
	roomRepository "utabox/internal/domains/room/repository"
	roomService "utabox/internal/domains/room/service"
	tenantRepository "utabox/internal/domains/tenant/repository"
	tenantService "utabox/internal/domains/tenant/service"

	bookingHandler "utabox/internal/handlers/booking"
	hoursHandler "utabox/internal/handlers/hours"
	roomHandler "utabox/internal/handlers/room"
	tenantHandler "utabox/internal/handlers/tenant"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewTenantMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var tenantDomain = wire.NewSet(
	tenantRepository.New,
	tenantService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var hoursDomain = wire.NewSet(
	hoursRepository.New,
	hoursService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	tenantDomain,
	roomDomain,
	hoursDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	tenantHandler.New,
	roomHandler.New,
	hoursHandler.New,
	bookingHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
