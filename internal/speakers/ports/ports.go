// Package ports defines the interfaces for the speaker directory module.
package ports

import (
	"context"

	"github.com/edcalderon/hashpass.tech/internal/speakers/models"
)

// Directory is a read-only source of speaker records.
//
// Implementations:
//   - Get returns CodeNotFound when the speaker does not exist, and
//     CodeUnavailable or CodeTimeout on transport failures.
//   - List returns every known record in no particular order.
type Directory interface {
	Get(ctx context.Context, speakerID string) (*models.Speaker, error)
	List(ctx context.Context) ([]*models.Speaker, error)
}
