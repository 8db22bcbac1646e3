package router

import (
	"github.com/go-chi/chi/v5"

	"nestling/internal/handlers/booking"
	"nestling/internal/handlers/franchise"
	"nestling/internal/handlers/session"
)

type DomainHandlers struct {
	Franchise franchise.Handler
	Booking   booking.Handler
	Session   session.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Franchise.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Session.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
