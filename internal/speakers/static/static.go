// Package static bundles the fallback speaker dataset shipped with the
// binary. It is the secondary source for the fallback resolver and must stay
// loadable without any network or database access.
package static

import (
	_ "embed"
	"encoding/json"

	"github.com/edcalderon/hashpass.tech/internal/speakers/models"
	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
	platformstrings "github.com/edcalderon/hashpass.tech/pkg/platform/strings"
)

//go:embed speakers.json
var speakersJSON []byte

// Catalog is an immutable, in-process speaker dataset.
type Catalog struct {
	byID  map[string]*models.Speaker
	order []*models.Speaker
}

// Load parses the embedded dataset. Duplicate ids keep the first occurrence.
//
// Errors: returns CodeInternal when the bundled JSON cannot be parsed, which
// indicates a broken build rather than a runtime condition.
func Load() (*Catalog, error) {
	var speakers []*models.Speaker
	if err := json.Unmarshal(speakersJSON, &speakers); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to parse bundled speaker dataset")
	}

	deduped := platformstrings.DedupeByKey(speakers, func(s *models.Speaker) string {
		return s.ID
	})

	catalog := &Catalog{
		byID:  make(map[string]*models.Speaker, len(deduped)),
		order: deduped,
	}
	for _, s := range deduped {
		catalog.byID[s.ID] = s
	}
	return catalog, nil
}

// Get returns the bundled record for the id, or nil when absent. The returned
// value is a copy; callers may mutate it freely.
func (c *Catalog) Get(speakerID string) *models.Speaker {
	return c.byID[speakerID].Clone()
}

// List returns copies of every bundled record in dataset order.
func (c *Catalog) List() []*models.Speaker {
	out := make([]*models.Speaker, len(c.order))
	for i, s := range c.order {
		out[i] = s.Clone()
	}
	return out
}

// Len returns the number of bundled records.
func (c *Catalog) Len() int {
	return len(c.order)
}
