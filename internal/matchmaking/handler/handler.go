package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/edcalderon/hashpass.tech/internal/matchmaking/models"
	"github.com/edcalderon/hashpass.tech/internal/matchmaking/service/lifecycle"
	"github.com/edcalderon/hashpass.tech/internal/platform/metrics"
	"github.com/edcalderon/hashpass.tech/internal/platform/middleware"
	"github.com/edcalderon/hashpass.tech/internal/transport/http/shared"
	id "github.com/edcalderon/hashpass.tech/pkg/domain"
	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
	"github.com/edcalderon/hashpass.tech/pkg/requestcontext"
)

// LifecycleService defines the interface for meeting request operations.
type LifecycleService interface {
	Create(ctx context.Context, params lifecycle.CreateParams) (*models.MeetingRequest, error)
	Cancel(ctx context.Context, requestID id.RequestID, requesterID id.UserID) (*models.MeetingRequest, error)
	HasActiveRequest(ctx context.Context, requesterID id.UserID, speakerID id.SpeakerID) (*models.MeetingRequest, error)
	ListCancelled(ctx context.Context, requesterID id.UserID, speakerID id.SpeakerID) ([]*models.MeetingRequest, error)
	Overview(ctx context.Context, requesterID id.UserID, speakerID id.SpeakerID) (*models.Overview, error)
}

// QuotaService defines the interface for quota evaluation.
type QuotaService interface {
	Evaluate(ctx context.Context, userID id.UserID, speakerID id.SpeakerID, boostAmount int) (*models.QuotaState, error)
}

// Handler handles matchmaking endpoints.
type Handler struct {
	logger       *slog.Logger
	lifecycle    LifecycleService
	quota        QuotaService
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

// New creates a new matchmaking Handler.
func New(
	lifecycleSvc LifecycleService,
	quotaSvc QuotaService,
	logger *slog.Logger,
	m *metrics.Metrics,
	jwtValidator middleware.JWTValidator,
) *Handler {
	return &Handler{
		logger:       logger,
		lifecycle:    lifecycleSvc,
		quota:        quotaSvc,
		metrics:      m,
		jwtValidator: jwtValidator,
	}
}

// Register registers the matchmaking routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/matchmaking", func(mm chi.Router) {
		mm.Use(middleware.Recovery(h.logger))
		mm.Use(middleware.RequestID)
		mm.Use(middleware.RequestTime)
		mm.Use(middleware.Logger(h.logger))
		mm.Use(middleware.Timeout(30 * time.Second))
		mm.Use(middleware.ContentTypeJSON)
		mm.Use(middleware.Latency(h.metrics))
		mm.Use(middleware.RequireAuth(h.jwtValidator, h.logger))

		mm.Post("/requests", h.handleCreateRequest)
		mm.Delete("/requests/{id}", h.handleCancelRequest)
		mm.Get("/requests/active", h.handleActiveRequest)
		mm.Get("/requests/cancelled", h.handleCancelledRequests)
		mm.Get("/overview", h.handleOverview)
		mm.Get("/quota", h.handleQuota)
	})
}

// handleCreateRequest opens a meeting request for the authenticated user.
func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requesterID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}

	var req models.CreateMeetingRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid create request body",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	speakerID, err := id.ParseSpeakerID(req.SpeakerID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	params := lifecycle.CreateParams{
		RequesterID:    requesterID,
		SpeakerID:      speakerID,
		RequesterName:  req.RequesterName,
		SpeakerName:    req.SpeakerName,
		TicketType:     id.TicketType(req.TicketType),
		MeetingType:    req.MeetingType,
		Message:        req.Message,
		Intentions:     req.Intentions,
		BoostAmount:    req.BoostAmount,
		IdempotencyKey: req.IdempotencyKey,
	}

	request, err := h.lifecycle.Create(ctx, params)
	if err != nil {
		h.writeServiceError(w, r, "failed to create meeting request", err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, request)
}

// handleCancelRequest cancels a pending request owned by the caller. The
// spent quota slot is not restored; clients warn the user before calling.
func (h *Handler) handleCancelRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requesterID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}

	requestID, err := id.ParseRequestID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	cancelled, err := h.lifecycle.Cancel(ctx, requestID, requesterID)
	if err != nil {
		h.writeServiceError(w, r, "failed to cancel meeting request", err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, cancelled)
}

func (h *Handler) handleActiveRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requesterID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}

	speakerID, err := id.ParseSpeakerID(r.URL.Query().Get("speaker_id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	request, err := h.lifecycle.HasActiveRequest(ctx, requesterID, speakerID)
	if err != nil {
		h.writeServiceError(w, r, "failed to load active request", err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, models.ActiveRequestResponse{Request: request})
}

func (h *Handler) handleCancelledRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requesterID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}

	speakerID, err := id.ParseSpeakerID(r.URL.Query().Get("speaker_id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	requests, err := h.lifecycle.ListCancelled(ctx, requesterID, speakerID)
	if err != nil {
		h.writeServiceError(w, r, "failed to load cancelled requests", err)
		return
	}
	if requests == nil {
		requests = []*models.MeetingRequest{}
	}

	shared.WriteJSON(w, http.StatusOK, models.CancelledRequestsResponse{Requests: requests})
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requesterID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}

	speakerID, err := id.ParseSpeakerID(r.URL.Query().Get("speaker_id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	overview, err := h.lifecycle.Overview(ctx, requesterID, speakerID)
	if err != nil {
		h.writeServiceError(w, r, "failed to load overview", err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, overview)
}

// handleQuota evaluates quota fresh on every call; the response is never
// cacheable because other devices move the counter concurrently.
func (h *Handler) handleQuota(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requesterID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}

	speakerID, err := id.ParseSpeakerID(r.URL.Query().Get("speaker_id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	boost := 0
	if raw := r.URL.Query().Get("boost"); raw != "" {
		boost, err = parseBoost(raw)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
	}

	state, err := h.quota.Evaluate(ctx, requesterID, speakerID, boost)
	if err != nil {
		h.writeServiceError(w, r, "failed to evaluate quota", err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	shared.WriteJSON(w, http.StatusOK, models.NewQuotaResponse(state))
}

func (h *Handler) requireUser(w http.ResponseWriter, ctx context.Context) (id.UserID, bool) {
	userID := requestcontext.UserID(ctx)
	if userID.IsEmpty() {
		// Should never happen if RequireAuth middleware is configured correctly.
		h.logger.ErrorContext(ctx, "user id missing from context despite auth middleware",
			"request_id", middleware.GetRequestID(ctx),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return "", false
	}
	return userID, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, msg))
		return
	}
	h.logger.WarnContext(ctx, msg,
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	)
	shared.WriteError(w, err)
}

func parseBoost(raw string) (int, error) {
	boost, err := strconv.Atoi(raw)
	if err != nil || boost < 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "boost must be a non-negative integer")
	}
	return boost, nil
}
