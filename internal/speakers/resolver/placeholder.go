package resolver

import (
	"fmt"
	"strings"

	"github.com/edcalderon/hashpass.tech/internal/speakers/models"
)

const placeholderImageBase = "https://blockchainsummit.la/wp-content/uploads/2025/09/foto-"

// defaultTags decorate records that carry no tags of their own.
var defaultTags = []string{"Blockchain", "FinTech", "Innovation"}

// slugify lowercases the name and collapses whitespace runs into single
// hyphens. It is a pure function so derived URLs are reproducible.
func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

func placeholderImageURL(name string) string {
	return placeholderImageBase + slugify(name) + ".png"
}

func placeholderLinkedIn(name string) string {
	return "https://linkedin.com/in/" + slugify(name)
}

func placeholderTwitter(name string) string {
	return "https://twitter.com/" + slugify(name)
}

func placeholderBio(title, company string) string {
	if company == "" {
		return fmt.Sprintf("Experienced professional in %s.", title)
	}
	return fmt.Sprintf("Experienced professional in %s at %s.", title, company)
}

// fillPlaceholders derives every missing presentational field from the fields
// the record does carry. The input is mutated and returned for chaining.
func fillPlaceholders(s *models.Speaker) *models.Speaker {
	if s == nil {
		return nil
	}
	if s.Bio == "" {
		s.Bio = placeholderBio(s.Title, s.Company)
	}
	if s.ImageURL == "" {
		s.ImageURL = placeholderImageURL(s.Name)
	}
	if s.LinkedIn == "" {
		s.LinkedIn = placeholderLinkedIn(s.Name)
	}
	if s.Twitter == "" {
		s.Twitter = placeholderTwitter(s.Name)
	}
	if len(s.Tags) == 0 {
		s.Tags = append([]string(nil), defaultTags...)
	}
	if len(s.Availability) == 0 {
		s.Availability = models.DefaultAvailability()
	}
	return s
}
