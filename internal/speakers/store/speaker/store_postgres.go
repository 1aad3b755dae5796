package speaker

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lib/pq"

	"github.com/edcalderon/hashpass.tech/internal/speakers/models"
	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
)

const speakerColumns = "id, name, title, company, bio, image_url, linkedin, twitter, tags, availability"

// PostgresDirectory is the database-backed speaker directory. It is the
// primary source for the fallback resolver.
type PostgresDirectory struct {
	db *sql.DB
}

func NewPostgresDirectory(db *sql.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (d *PostgresDirectory) Get(ctx context.Context, speakerID string) (*models.Speaker, error) {
	row := d.db.QueryRowContext(ctx,
		"SELECT "+speakerColumns+" FROM speakers WHERE id = $1", speakerID)

	speaker, err := scanSpeaker(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, dErrors.New(dErrors.CodeNotFound, "speaker not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load speaker")
	}
	return speaker, nil
}

func (d *PostgresDirectory) List(ctx context.Context) ([]*models.Speaker, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT "+speakerColumns+" FROM speakers ORDER BY name")
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to list speakers")
	}
	defer rows.Close()

	var speakers []*models.Speaker
	for rows.Next() {
		speaker, err := scanSpeaker(rows)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to scan speaker")
		}
		speakers = append(speakers, speaker)
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to iterate speakers")
	}
	return speakers, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSpeaker(s scanner) (*models.Speaker, error) {
	var (
		speaker      models.Speaker
		availability []byte
	)
	err := s.Scan(
		&speaker.ID,
		&speaker.Name,
		&speaker.Title,
		&speaker.Company,
		&speaker.Bio,
		&speaker.ImageURL,
		&speaker.LinkedIn,
		&speaker.Twitter,
		pq.Array(&speaker.Tags),
		&availability,
	)
	if err != nil {
		return nil, err
	}
	if len(availability) > 0 {
		if err := json.Unmarshal(availability, &speaker.Availability); err != nil {
			return nil, err
		}
	}
	return &speaker, nil
}
