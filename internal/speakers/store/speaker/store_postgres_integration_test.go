//go:build integration

package speaker_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"

	"github.com/edcalderon/hashpass.tech/internal/speakers/models"
	"github.com/edcalderon/hashpass.tech/internal/speakers/store/speaker"
	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
	"github.com/edcalderon/hashpass.tech/pkg/testutil/containers"
)

type PostgresDirectorySuite struct {
	suite.Suite
	postgres  *containers.PostgresContainer
	directory *speaker.PostgresDirectory
}

func TestPostgresDirectorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresDirectorySuite))
}

func (s *PostgresDirectorySuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T(), "../../../../migrations")
	s.directory = speaker.NewPostgresDirectory(s.postgres.DB)
}

func (s *PostgresDirectorySuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateAll(context.Background()))
}

func (s *PostgresDirectorySuite) insert(sp *models.Speaker) {
	s.T().Helper()

	var availability []byte
	if sp.Availability != nil {
		encoded, err := json.Marshal(sp.Availability)
		s.Require().NoError(err)
		availability = encoded
	}

	_, err := s.postgres.DB.Exec(`
		INSERT INTO speakers (id, name, title, company, bio, image_url, linkedin, twitter, tags, availability)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		sp.ID, sp.Name, sp.Title, sp.Company, sp.Bio, sp.ImageURL,
		sp.LinkedIn, sp.Twitter, pq.Array(sp.Tags), availability,
	)
	s.Require().NoError(err)
}

func (s *PostgresDirectorySuite) TestGet() {
	s.insert(&models.Speaker{
		ID:      "spk-dana-kim",
		Name:    "Dana Kim",
		Title:   "Head of Payments",
		Company: "LatAm Rails",
		Tags:    []string{"Payments", "Stablecoins"},
		Availability: models.Availability{
			"monday": {{Start: "10:00", End: "12:00"}},
		},
	})

	got, err := s.directory.Get(context.Background(), "spk-dana-kim")
	s.Require().NoError(err)
	s.Equal("Dana Kim", got.Name)
	s.Equal([]string{"Payments", "Stablecoins"}, got.Tags)
	s.Require().Contains(got.Availability, "monday")
	s.Equal("10:00", got.Availability["monday"][0].Start)
}

func (s *PostgresDirectorySuite) TestGetMissingFieldsStayEmpty() {
	s.insert(&models.Speaker{ID: "spk-bare", Name: "Bare Speaker"})

	got, err := s.directory.Get(context.Background(), "spk-bare")
	s.Require().NoError(err)
	s.Empty(got.Bio)
	s.Empty(got.ImageURL)
	s.Nil(got.Availability)
}

func (s *PostgresDirectorySuite) TestGetUnknownSpeaker() {
	_, err := s.directory.Get(context.Background(), "spk-missing")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *PostgresDirectorySuite) TestListOrdersByName() {
	s.insert(&models.Speaker{ID: "spk-z", Name: "Zoe Alvarez"})
	s.insert(&models.Speaker{ID: "spk-a", Name: "Amara Diop"})

	speakers, err := s.directory.List(context.Background())
	s.Require().NoError(err)
	s.Require().Len(speakers, 2)
	s.Equal("Amara Diop", speakers[0].Name)
	s.Equal("Zoe Alvarez", speakers[1].Name)
}

func (s *PostgresDirectorySuite) TestListEmpty() {
	speakers, err := s.directory.List(context.Background())
	s.Require().NoError(err)
	s.Empty(speakers)
}
