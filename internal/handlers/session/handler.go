package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"nestling/infras/otel"
	"nestling/internal/domains/session/model/dto"
	"nestling/internal/domains/session/service"
	"nestling/shared/constant"
	"nestling/shared/validator"
	"nestling/transport/http/response"
)

type Handler struct {
	service service.Session
	otel    otel.Otel
}

func New(service service.Session, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/sessions", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.StartSession)
		routerGroup.Get("/", handler.GetActiveSessions)
		routerGroup.Get("/{id}", handler.GetSessionByID)
		routerGroup.Post("/{id}/checkin", handler.CheckIn)
		routerGroup.Post("/{id}/overtime", handler.ApplyOvertime)
		routerGroup.Post("/{id}/checkout", handler.CheckOut)
		routerGroup.Post("/{id}/complete", handler.Complete)
	})
}

// StartSession opens a session from a scanned booking QR token.
// @Summary Start a session
// @Description Resolve the QR token to a booking and open a STARTED session.
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.StartSessionRequest true "Start Session Request"
// @Success 201 {object} response.Data[dto.SessionResponse] "Session started"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions [post]
func (handler *Handler) StartSession(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartSession")
	defer scope.End()

	req := dto.StartSessionRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Start(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start session")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Session started: " + res.ID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetActiveSessions lists sessions still holding their booking's slot.
// @Summary List active sessions
// @Description Retrieve sessions in STARTED or CHECKED_IN state.
// @Tags Session
// @Produce json
// @Success 200 {object} response.Data[dto.GetSessionsResponse] "Active sessions"
// @Failure 500 {object} response.Error
// @Router /v1/sessions [get]
func (handler *Handler) GetActiveSessions(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveSessions")
	defer scope.End()

	res, err := handler.service.ListActive(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list active sessions")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetSessionByID retrieves a single session, with a payment QR for any
// outstanding charges.
// @Summary Get session by ID
// @Description Retrieve a session by its identifier.
// @Tags Session
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Data[dto.SessionResponse] "Session details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions/{id} [get]
func (handler *Handler) GetSessionByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSessionByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get session")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CheckIn records the child's arrival with the captured parent photo.
// @Summary Check in a child
// @Description Upload the parent photo and move the session to CHECKED_IN.
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.CheckInRequest true "Check In Request"
// @Success 200 {object} response.Data[dto.SessionResponse] "Child checked in"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions/{id}/checkin [post]
func (handler *Handler) CheckIn(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckIn")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.CheckInRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CheckIn(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check in")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// ApplyOvertime appends an overtime charge to the session.
// @Summary Apply an overtime charge
// @Description Charge overtime minutes at the flat per-minute rate.
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ApplyOvertimeRequest true "Apply Overtime Request"
// @Success 200 {object} response.Data[dto.SessionResponse] "Charge applied"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions/{id}/overtime [post]
func (handler *Handler) ApplyOvertime(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApplyOvertime")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.ApplyOvertimeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.ApplyOvertime(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to apply overtime charge")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CheckOut records the child's departure with staff notes.
// @Summary Check out a child
// @Description Record the departure and move the session to CHECKED_OUT.
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.CheckOutRequest false "Check Out Request"
// @Success 200 {object} response.Data[dto.SessionResponse] "Child checked out"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions/{id}/checkout [post]
func (handler *Handler) CheckOut(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckOut")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.CheckOutRequest{}

	if request.Body != nil && request.ContentLength > 0 {
		if err := validator.Validate(request.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(writer, err)

			return
		}
	}

	res, err := handler.service.CheckOut(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check out")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Complete closes the session and totals its charges.
// @Summary Complete a session
// @Description Move a CHECKED_OUT session to COMPLETED and total its charges.
// @Tags Session
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Data[dto.SessionResponse] "Session completed"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions/{id}/complete [post]
func (handler *Handler) Complete(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Complete")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Complete(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete session")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
