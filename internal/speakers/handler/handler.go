package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/edcalderon/hashpass.tech/internal/platform/metrics"
	"github.com/edcalderon/hashpass.tech/internal/platform/middleware"
	"github.com/edcalderon/hashpass.tech/internal/speakers/models"
	"github.com/edcalderon/hashpass.tech/internal/transport/http/shared"
	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
)

// Resolver defines the interface for speaker resolution.
type Resolver interface {
	ResolveSpeaker(ctx context.Context, speakerID string) (*models.Speaker, error)
	ResolveSpeakerList(ctx context.Context) ([]*models.Speaker, error)
}

// ListResponse is the speakers listing payload.
type ListResponse struct {
	Speakers []*models.Speaker `json:"speakers"`
	Total    int               `json:"total"`
}

// Handler handles the speaker directory endpoints. Speaker data is public
// reference data, so no auth middleware is applied here.
type Handler struct {
	logger   *slog.Logger
	resolver Resolver
	metrics  *metrics.Metrics
}

// New creates a new speakers Handler.
func New(resolver Resolver, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		resolver: resolver,
		metrics:  m,
	}
}

// Register registers the speaker routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/speakers", func(sp chi.Router) {
		sp.Use(middleware.Recovery(h.logger))
		sp.Use(middleware.RequestID)
		sp.Use(middleware.Logger(h.logger))
		sp.Use(middleware.Timeout(15 * time.Second))
		sp.Use(middleware.Latency(h.metrics))

		sp.Get("/", h.handleList)
		sp.Get("/{id}", h.handleGet)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sortBy, err := models.ParseSortOption(r.URL.Query().Get("sort"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	speakers, err := h.resolver.ResolveSpeakerList(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to resolve speaker list",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load speakers"))
		return
	}

	speakers = models.Filter(speakers, r.URL.Query().Get("q"))
	models.Sort(speakers, sortBy)
	if speakers == nil {
		speakers = []*models.Speaker{}
	}

	shared.WriteJSON(w, http.StatusOK, ListResponse{Speakers: speakers, Total: len(speakers)})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	speaker, err := h.resolver.ResolveSpeaker(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) || dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to resolve speaker",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load speaker"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, speaker)
}
