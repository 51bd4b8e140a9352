package app

import (
	"go.uber.org/zap"

	"worldtests/internal/events"
)

// NewPublisher picks the submission event publisher from configuration.
func NewPublisher(cfg Config, logger *zap.Logger) (events.Publisher, error) {
	if !cfg.EventsEnabled {
		logger.Info("event publishing disabled")
		return events.NopPublisher{}, nil
	}

	switch cfg.EventsPublisher {
	case "kafka":
		logger.Info("creating kafka event publisher",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.EventsTopic))
		return events.NewKafkaPublisher(events.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.EventsTopic,
		}, logger)
	case "memory":
		logger.Info("using in-process event publisher", zap.String("topic", cfg.EventsTopic))
		return events.NewMemoryPublisher(cfg.EventsTopic, logger), nil
	default:
		logger.Warn("unknown event publisher, falling back to in-process", zap.String("publisher", cfg.EventsPublisher))
		return events.NewMemoryPublisher(cfg.EventsTopic, logger), nil
	}
}
