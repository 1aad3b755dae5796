package speaker

import (
	"context"
	"sync"

	"github.com/edcalderon/hashpass.tech/internal/speakers/models"
	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
)

// InMemoryDirectory is an in-memory speaker directory, used in tests and when
// no database is configured.
type InMemoryDirectory struct {
	mu       sync.RWMutex
	speakers map[string]*models.Speaker
	order    []string
}

func NewInMemoryDirectory() *InMemoryDirectory {
	return &InMemoryDirectory{
		speakers: make(map[string]*models.Speaker),
	}
}

// Put inserts or replaces a record. New ids keep insertion order for List.
func (d *InMemoryDirectory) Put(speaker *models.Speaker) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.speakers[speaker.ID]; !exists {
		d.order = append(d.order, speaker.ID)
	}
	d.speakers[speaker.ID] = speaker.Clone()
}

func (d *InMemoryDirectory) Get(ctx context.Context, speakerID string) (*models.Speaker, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	speaker, ok := d.speakers[speakerID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "speaker not found")
	}
	return speaker.Clone(), nil
}

func (d *InMemoryDirectory) List(ctx context.Context) ([]*models.Speaker, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*models.Speaker, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.speakers[id].Clone())
	}
	return out, nil
}
