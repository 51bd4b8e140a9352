// Package events publishes the outcome of checked submissions to downstream
// consumers such as the leaderboard.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
)

const (
	TypeSubmissionChecked = "submission.checked"
	DefaultTopic          = "worldtests.submissions"
	eventVersion          = "1"
)

// SubmissionChecked is emitted once per graded submission.
type SubmissionChecked struct {
	ID        string    `json:"id"`
	TestID    int64     `json:"test_id"`
	UserID    int64     `json:"user_id"`
	Correct   int       `json:"correct"`
	Total     int       `json:"total"`
	Score     float64   `json:"score"`
	CheckedAt time.Time `json:"checked_at"`
}

type Publisher interface {
	PublishSubmissionChecked(ctx context.Context, ev SubmissionChecked) error
	Close() error
}

// WatermillPublisher sends events through any watermill publisher.
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
	logger    *zap.Logger
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func NewKafkaPublisher(cfg KafkaConfig, logger *zap.Logger) (*WatermillPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka publisher: no brokers configured")
	}
	logger = orNop(logger)
	pub, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   cfg.Brokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, NewZapAdapter(logger))
	if err != nil {
		return nil, fmt.Errorf("create kafka publisher: %w", err)
	}
	return newWatermillPublisher(pub, cfg.Topic, logger), nil
}

// MemoryPublisher keeps events inside the process on a watermill go channel.
// Subscribe exposes the stream to in-process consumers and tests.
type MemoryPublisher struct {
	*WatermillPublisher
	channel *gochannel.GoChannel
}

func NewMemoryPublisher(topic string, logger *zap.Logger) *MemoryPublisher {
	logger = orNop(logger)
	ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, NewZapAdapter(logger))
	return &MemoryPublisher{
		WatermillPublisher: newWatermillPublisher(ch, topic, logger),
		channel:            ch,
	}
}

func (p *MemoryPublisher) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return p.channel.Subscribe(ctx, p.topic)
}

func newWatermillPublisher(pub message.Publisher, topic string, logger *zap.Logger) *WatermillPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &WatermillPublisher{publisher: pub, topic: topic, logger: logger}
}

func (p *WatermillPublisher) PublishSubmissionChecked(ctx context.Context, ev SubmissionChecked) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal submission event: %w", err)
	}

	msg := message.NewMessage(ev.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", TypeSubmissionChecked)
	msg.Metadata.Set("version", eventVersion)
	msg.Metadata.Set("test_id", strconv.FormatInt(ev.TestID, 10))
	msg.Metadata.Set("timestamp", ev.CheckedAt.UTC().Format(time.RFC3339))

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("publish submission event: %w", err)
	}

	p.logger.Debug("published submission event",
		zap.String("event_id", ev.ID),
		zap.String("topic", p.topic),
		zap.Int64("test_id", ev.TestID))
	return nil
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}

// NopPublisher drops every event. It is used when publishing is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishSubmissionChecked(context.Context, SubmissionChecked) error { return nil }
func (NopPublisher) Close() error                                                     { return nil }

func Decode(msg *message.Message) (SubmissionChecked, error) {
	var ev SubmissionChecked
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		return SubmissionChecked{}, fmt.Errorf("decode submission event: %w", err)
	}
	return ev, nil
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
