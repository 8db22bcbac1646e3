//go:build wireinject
// +build wireinject

package di

import (
	"nestling/config"
	"nestling/infras/kafka"
	"nestling/infras/otel"
	"nestling/infras/redis"
	"nestling/infras/s3"
	bookingHandler "nestling/internal/handlers/booking"
	"nestling/shared/cache"
	"nestling/shared/event"
	"nestling/shared/lock"
	"nestling/transport/http"
	"nestling/transport/http/middleware"
	"nestling/transport/http/router"

	bookingService "nestling/internal/domains/booking/service"
	franchiseService "nestling/internal/domains/franchise/service"
	sessionService "nestling/internal/domains/session/service"

	"github.com/google/wire"

	franchiseHandler "nestling/internal/handlers/franchise"
	sessionHandler "nestling/internal/handlers/session"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	ProvideConnection,
	otel.New,
	redis.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	event.NewPublisher,
	lock.NewKeyedMutex,
)

var franchiseDomain = wire.NewSet(
	ProvideFranchiseRepository,
	franchiseService.New,
)

var bookingDomain = wire.NewSet(
	ProvideBookingRepository,
	ProvidePaymentRepository,
	bookingService.New,
)

var sessionDomain = wire.NewSet(
	ProvideSessionRepository,
	sessionService.New,
)

var domains = wire.NewSet(
	franchiseDomain,
	bookingDomain,
	sessionDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	franchiseHandler.New,
	bookingHandler.New,
	sessionHandler.New,
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
