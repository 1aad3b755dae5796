package models

import (
	"sort"
	"strings"

	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
)

// TimeWindow is a daily availability window in HH:MM local event time.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Availability maps lowercase weekday names to availability windows.
type Availability map[string]TimeWindow

// DefaultAvailability returns the standard weekday 09:00-17:00 schedule used
// when a speaker record carries no availability of its own.
func DefaultAvailability() Availability {
	window := TimeWindow{Start: "09:00", End: "17:00"}
	return Availability{
		"monday":    window,
		"tuesday":   window,
		"wednesday": window,
		"thursday":  window,
		"friday":    window,
	}
}

// Speaker is read-mostly reference data about an event speaker. Records are
// resolved through the fallback resolver and never mutated by this service.
type Speaker struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Title        string       `json:"title"`
	Company      string       `json:"company"`
	Bio          string       `json:"bio,omitempty"`
	ImageURL     string       `json:"image_url,omitempty"`
	LinkedIn     string       `json:"linkedin,omitempty"`
	Twitter      string       `json:"twitter,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
	Availability Availability `json:"availability,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate shared records.
func (s *Speaker) Clone() *Speaker {
	if s == nil {
		return nil
	}
	clone := *s
	if s.Tags != nil {
		clone.Tags = append([]string(nil), s.Tags...)
	}
	if s.Availability != nil {
		clone.Availability = make(Availability, len(s.Availability))
		for day, window := range s.Availability {
			clone.Availability[day] = window
		}
	}
	return &clone
}

// SortOption selects the list ordering for speaker listings.
type SortOption string

const (
	SortByName    SortOption = "name"
	SortByCompany SortOption = "company"
	SortByTitle   SortOption = "title"
)

// ParseSortOption constructs a SortOption from external input. An empty value
// defaults to name ordering.
//
// Errors: returns CodeBadRequest when the value is unsupported.
func ParseSortOption(s string) (SortOption, error) {
	switch SortOption(s) {
	case "":
		return SortByName, nil
	case SortByName, SortByCompany, SortByTitle:
		return SortOption(s), nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, "invalid sort option: must be 'name', 'company' or 'title'")
	}
}

// Filter returns the speakers whose name, title, company or bio contains the
// query, case-insensitively. An empty query keeps every speaker.
func Filter(speakers []*Speaker, query string) []*Speaker {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return speakers
	}
	filtered := make([]*Speaker, 0, len(speakers))
	for _, s := range speakers {
		if strings.Contains(strings.ToLower(s.Name), query) ||
			strings.Contains(strings.ToLower(s.Title), query) ||
			strings.Contains(strings.ToLower(s.Company), query) ||
			strings.Contains(strings.ToLower(s.Bio), query) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// Sort orders speakers in place by the given option, case-insensitively
// ascending. Ties fall back to name order so the output is stable across runs.
func Sort(speakers []*Speaker, by SortOption) {
	key := func(s *Speaker) string {
		switch by {
		case SortByCompany:
			return strings.ToLower(s.Company)
		case SortByTitle:
			return strings.ToLower(s.Title)
		default:
			return strings.ToLower(s.Name)
		}
	}
	sort.SliceStable(speakers, func(i, j int) bool {
		ki, kj := key(speakers[i]), key(speakers[j])
		if ki == kj {
			return strings.ToLower(speakers[i].Name) < strings.ToLower(speakers[j].Name)
		}
		return ki < kj
	})
}
