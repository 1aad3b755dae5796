package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/edcalderon/hashpass.tech/internal/matchmaking/models"
	id "github.com/edcalderon/hashpass.tech/pkg/domain"
	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
)

// PostgresStore persists meeting requests in PostgreSQL.
//
// A partial unique index on (requester_id, speaker_id) WHERE status IN
// ('pending','approved') makes the store the final arbiter of the
// single-active-request invariant; races from other devices surface as
// CodeConflict here.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed request store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const requestColumns = `id, requester_id, speaker_id, requester_name, speaker_name,
	requester_ticket_type, meeting_type, status, message, note, boost_amount,
	idempotency_key, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, request *models.MeetingRequest) error {
	if request == nil {
		return dErrors.New(dErrors.CodeInternal, "meeting request is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meeting_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''), $13, $14)`,
		request.ID.String(),
		request.RequesterID.String(),
		request.SpeakerID.String(),
		request.RequesterName,
		request.SpeakerName,
		request.TicketType.String(),
		request.MeetingType,
		request.Status.String(),
		request.Message,
		request.Note,
		request.BoostAmount,
		request.IdempotencyKey,
		request.CreatedAt,
		request.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return dErrors.New(dErrors.CodeConflict, "an active meeting request to this speaker already exists")
		}
		return fmt.Errorf("create meeting request: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, requestID id.RequestID) (*models.MeetingRequest, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+requestColumns+`
		FROM meeting_requests
		WHERE id = $1`,
		requestID.String(),
	)
	request, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dErrors.New(dErrors.CodeNotFound, "meeting request not found")
		}
		return nil, fmt.Errorf("get meeting request: %w", err)
	}
	return request, nil
}

func (s *PostgresStore) FindActive(ctx context.Context, requesterID id.UserID, speakerID id.SpeakerID) (*models.MeetingRequest, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+requestColumns+`
		FROM meeting_requests
		WHERE requester_id = $1 AND speaker_id = $2 AND status IN ('pending', 'approved')
		LIMIT 1`,
		requesterID.String(),
		speakerID.String(),
	)
	request, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active meeting request: %w", err)
	}
	return request, nil
}

func (s *PostgresStore) FindByIdempotencyKey(ctx context.Context, requesterID id.UserID, key string) (*models.MeetingRequest, error) {
	if key == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT `+requestColumns+`
		FROM meeting_requests
		WHERE requester_id = $1 AND idempotency_key = $2
		LIMIT 1`,
		requesterID.String(),
		key,
	)
	request, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find meeting request by idempotency key: %w", err)
	}
	return request, nil
}

func (s *PostgresStore) ListCancelled(ctx context.Context, requesterID id.UserID, speakerID id.SpeakerID) ([]*models.MeetingRequest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+requestColumns+`
		FROM meeting_requests
		WHERE requester_id = $1 AND speaker_id = $2 AND status = 'cancelled'
		ORDER BY created_at DESC`,
		requesterID.String(),
		speakerID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list cancelled meeting requests: %w", err)
	}
	defer rows.Close()

	var out []*models.MeetingRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cancelled meeting request: %w", err)
		}
		out = append(out, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cancelled meeting requests: %w", err)
	}
	return out, nil
}

// Cancel matches strictly on (id, requester_id, status='pending'). When zero
// rows update, a follow-up read classifies the failure instead of retrying
// the mutation without the ownership filter; the old fallback update masked
// an authorization gap and is deliberately not replicated.
func (s *PostgresStore) Cancel(ctx context.Context, requestID id.RequestID, requesterID id.UserID, now time.Time) (*models.MeetingRequest, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE meeting_requests
		SET status = 'cancelled', updated_at = $3
		WHERE id = $1 AND requester_id = $2 AND status = 'pending'
		RETURNING `+requestColumns,
		requestID.String(),
		requesterID.String(),
		now,
	)
	request, err := scanRequest(row)
	if err == nil {
		return request, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cancel meeting request: %w", err)
	}

	existing, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if existing.RequesterID != requesterID {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "meeting request belongs to another requester")
	}
	return nil, dErrors.Newf(dErrors.CodeConflict, "meeting request is %s, only pending requests can be cancelled", existing.Status)
}

func (s *PostgresStore) CountConsumed(ctx context.Context, requesterID id.UserID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM meeting_requests WHERE requester_id = $1`,
		requesterID.String(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count consumed requests: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(row scanner) (*models.MeetingRequest, error) {
	var (
		request        models.MeetingRequest
		rawID          string
		rawRequester   string
		rawSpeaker     string
		rawTicketType  string
		rawStatus      string
		idempotencyKey sql.NullString
	)
	err := row.Scan(
		&rawID,
		&rawRequester,
		&rawSpeaker,
		&request.RequesterName,
		&request.SpeakerName,
		&rawTicketType,
		&request.MeetingType,
		&rawStatus,
		&request.Message,
		&request.Note,
		&request.BoostAmount,
		&idempotencyKey,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	status, err := models.ParseRequestStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	request.ID = id.RequestID(rawID)
	request.RequesterID = id.UserID(rawRequester)
	request.SpeakerID = id.SpeakerID(rawSpeaker)
	request.TicketType = id.TicketType(rawTicketType)
	request.Status = status
	request.IdempotencyKey = idempotencyKey.String
	return &request, nil
}
