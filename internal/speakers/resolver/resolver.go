// Package resolver resolves speaker records from the primary directory with a
// bounded timeout, falling back to the bundled static dataset when the primary
// is slow or unavailable. Missing presentational fields are derived
// deterministically from the record's name.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/edcalderon/hashpass.tech/internal/speakers/models"
	"github.com/edcalderon/hashpass.tech/internal/speakers/ports"
	"github.com/edcalderon/hashpass.tech/internal/speakers/static"
	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
	platformstrings "github.com/edcalderon/hashpass.tech/pkg/platform/strings"
)

// DefaultPrimaryTimeout bounds each primary directory call before the
// resolver gives up and serves the bundled dataset.
const DefaultPrimaryTimeout = 5 * time.Second

type Directory = ports.Directory

type Resolver struct {
	primary  Directory
	fallback *static.Catalog
	timeout  time.Duration
	logger   *slog.Logger
	tracer   trace.Tracer
}

type Option func(*Resolver)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithPrimaryTimeout overrides the bound on primary directory calls.
func WithPrimaryTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// New creates a Resolver. primary may be nil, in which case every resolution
// is served from the bundled dataset.
func New(primary Directory, fallback *static.Catalog, opts ...Option) (*Resolver, error) {
	if fallback == nil {
		return nil, fmt.Errorf("fallback catalog is required")
	}

	r := &Resolver{
		primary:  primary,
		fallback: fallback,
		timeout:  DefaultPrimaryTimeout,
		tracer:   otel.Tracer("speakers/resolver"),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// ResolveSpeaker returns the speaker record for speakerID, preferring the
// primary directory and falling back to the bundled dataset on timeout or
// transport failure. Placeholder fields are filled either way, so callers
// always receive a fully presentable record.
//
// Errors: CodeInvalidInput for an empty id; CodeNotFound only when the
// speaker is absent from both sources.
func (r *Resolver) ResolveSpeaker(ctx context.Context, speakerID string) (*models.Speaker, error) {
	if speakerID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "speaker id is required")
	}

	ctx, span := r.tracer.Start(ctx, "speakers.ResolveSpeaker",
		trace.WithAttributes(attribute.String("speaker_id", speakerID)))
	defer span.End()

	if r.primary != nil {
		primaryCtx, cancel := context.WithTimeout(ctx, r.timeout)
		speaker, err := r.primary.Get(primaryCtx, speakerID)
		cancel()
		switch {
		case err == nil:
			span.SetAttributes(attribute.String("source", "primary"))
			return fillPlaceholders(speaker), nil
		case dErrors.HasCode(err, dErrors.CodeNotFound):
			// Absent from the primary is authoritative only after the
			// fallback also misses; keep looking.
		default:
			r.logFallback(ctx, "speaker lookup fell back to bundled dataset", speakerID, err)
		}
	}

	speaker := r.fallback.Get(speakerID)
	if speaker == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "speaker not found")
	}
	span.SetAttributes(attribute.String("source", "fallback"))
	return fillPlaceholders(speaker), nil
}

// ResolveSpeakerList returns every known speaker, preferring the primary
// directory. Duplicate ids keep the first occurrence; records missing
// presentational fields are filled with derived placeholders.
func (r *Resolver) ResolveSpeakerList(ctx context.Context) ([]*models.Speaker, error) {
	ctx, span := r.tracer.Start(ctx, "speakers.ResolveSpeakerList")
	defer span.End()

	var speakers []*models.Speaker
	if r.primary != nil {
		primaryCtx, cancel := context.WithTimeout(ctx, r.timeout)
		listed, err := r.primary.List(primaryCtx)
		cancel()
		if err == nil && len(listed) > 0 {
			span.SetAttributes(attribute.String("source", "primary"))
			speakers = listed
		} else if err != nil {
			r.logFallback(ctx, "speaker list fell back to bundled dataset", "", err)
		}
	}
	if speakers == nil {
		span.SetAttributes(attribute.String("source", "fallback"))
		speakers = r.fallback.List()
	}

	speakers = platformstrings.DedupeByKey(speakers, func(s *models.Speaker) string {
		return s.ID
	})
	for _, s := range speakers {
		fillPlaceholders(s)
	}
	return speakers, nil
}

func (r *Resolver) logFallback(ctx context.Context, msg, speakerID string, err error) {
	if r.logger == nil {
		return
	}
	attrs := []any{"error", err.Error()}
	if speakerID != "" {
		attrs = append(attrs, "speaker_id", speakerID)
	}
	r.logger.WarnContext(ctx, msg, attrs...)
}
