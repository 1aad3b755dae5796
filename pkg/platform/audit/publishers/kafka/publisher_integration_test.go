//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	id "github.com/edcalderon/hashpass.tech/pkg/domain"
	"github.com/edcalderon/hashpass.tech/pkg/platform/audit"
	"github.com/edcalderon/hashpass.tech/pkg/platform/audit/publishers/kafka"
	"github.com/edcalderon/hashpass.tech/pkg/testutil/containers"
)

type PublisherSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
}

func TestPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupSuite() {
	s.redpanda = containers.NewRedpandaContainer(s.T())
}

func (s *PublisherSuite) consume(topic string, want int) []*kgo.Record {
	s.T().Helper()

	client, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer client.Close()

	deadline := time.Now().Add(15 * time.Second)
	var records []*kgo.Record
	for len(records) < want && time.Now().Before(deadline) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		fetches := client.PollFetches(ctx)
		cancel()
		fetches.EachRecord(func(r *kgo.Record) {
			records = append(records, r)
		})
	}
	s.Require().Len(records, want)
	return records
}

func (s *PublisherSuite) TestEmitRoundTrip() {
	ctx := context.Background()

	publisher, err := kafka.New(ctx, s.redpanda.Brokers, kafka.WithTopic("audit.roundtrip"))
	s.Require().NoError(err)
	defer publisher.Close(ctx)

	emitted := audit.Event{
		Timestamp: time.Now().UTC().Truncate(time.Millisecond),
		UserID:    id.UserID("user-42"),
		SpeakerID: id.SpeakerID("spk-elena-vargas"),
		RequestID: "req-abc",
		Action:    audit.ActionMeetingRequestCreated,
	}
	s.Require().NoError(publisher.Emit(ctx, emitted))

	records := s.consume("audit.roundtrip", 1)
	s.Equal("user-42", string(records[0].Key))

	var decoded audit.Event
	s.Require().NoError(json.Unmarshal(records[0].Value, &decoded))
	s.Equal(emitted.Action, decoded.Action)
	s.Equal(emitted.UserID, decoded.UserID)
	s.Equal(emitted.SpeakerID, decoded.SpeakerID)
	s.Equal(emitted.RequestID, decoded.RequestID)
}

func (s *PublisherSuite) TestEmitFillsZeroTimestamp() {
	ctx := context.Background()

	publisher, err := kafka.New(ctx, s.redpanda.Brokers, kafka.WithTopic("audit.timestamps"))
	s.Require().NoError(err)
	defer publisher.Close(ctx)

	s.Require().NoError(publisher.Emit(ctx, audit.Event{
		UserID: id.UserID("user-1"),
		Action: audit.ActionQuotaDenied,
		Reason: "No requests remaining",
	}))

	records := s.consume("audit.timestamps", 1)

	var decoded audit.Event
	s.Require().NoError(json.Unmarshal(records[0].Value, &decoded))
	s.False(decoded.Timestamp.IsZero())
	s.WithinDuration(time.Now(), decoded.Timestamp, time.Minute)
}

func (s *PublisherSuite) TestSameUserStaysOrdered() {
	ctx := context.Background()

	publisher, err := kafka.New(ctx, s.redpanda.Brokers, kafka.WithTopic("audit.ordering"))
	s.Require().NoError(err)
	defer publisher.Close(ctx)

	actions := []string{
		audit.ActionMeetingRequestCreated,
		audit.ActionMeetingRequestCancelled,
		audit.ActionDuplicateDenied,
	}
	for _, action := range actions {
		s.Require().NoError(publisher.Emit(ctx, audit.Event{
			UserID: id.UserID("user-ordered"),
			Action: action,
		}))
	}

	records := s.consume("audit.ordering", len(actions))
	for i, record := range records {
		var decoded audit.Event
		s.Require().NoError(json.Unmarshal(record.Value, &decoded))
		s.Equal(actions[i], decoded.Action)
	}
}

func (s *PublisherSuite) TestNewRequiresBrokers() {
	_, err := kafka.New(context.Background(), nil)
	s.Require().Error(err)
}
