package franchise

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"nestling/infras/otel"
	"nestling/internal/domains/franchise/service"
	"nestling/shared/constant"
	"nestling/transport/http/response"
)

type Handler struct {
	service service.Franchise
	otel    otel.Otel
}

func New(service service.Franchise, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/franchises", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetFranchises)
		routerGroup.Get("/{id}", handler.GetFranchiseByID)
	})
}

// GetFranchises lists every active franchise.
// @Summary List active franchises
// @Description Retrieve all franchises currently accepting bookings.
// @Tags Franchise
// @Produce json
// @Success 200 {object} response.Data[dto.GetFranchisesResponse] "List of franchises"
// @Failure 500 {object} response.Error
// @Router /v1/franchises [get]
func (handler *Handler) GetFranchises(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFranchises")
	defer scope.End()

	res, err := handler.service.GetAllActive(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get franchises")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetFranchiseByID retrieves a single franchise.
// @Summary Get franchise by ID
// @Description Retrieve a franchise by its identifier.
// @Tags Franchise
// @Produce json
// @Param id path string true "Franchise ID"
// @Success 200 {object} response.Data[dto.FranchiseResponse] "Franchise details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/franchises/{id} [get]
func (handler *Handler) GetFranchiseByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFranchiseByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get franchise")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
