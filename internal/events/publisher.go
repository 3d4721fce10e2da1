package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Lucasteisouza/shopper-ride/internal/domain"
	"github.com/Lucasteisouza/shopper-ride/internal/service"
)

// Event types emitted on the ride lifecycle topic.
const (
	TypeRideConfirmed = "ride.confirmed"
	TypeRideCompleted = "ride.completed"
)

// rideEvent is the wire format of a lifecycle event.
type rideEvent struct {
	Type        string    `json:"type"`
	RideID      string    `json:"ride_id"`
	CustomerID  string    `json:"customer_id"`
	DriverID    string    `json:"driver_id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	DistanceKm  float64   `json:"distance_km"`
	Value       float64   `json:"value"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher emits ride lifecycle events to Kafka. Publishing is best-effort:
// errors are returned for the caller to log, never to abort the workflow.
type Publisher struct {
	writer *kafka.Writer
}

// Ensure Publisher satisfies the workflow's port.
var _ service.EventPublisher = (*Publisher)(nil)

// NewPublisher creates a Kafka publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	})
	return &Publisher{writer: w}
}

// RideConfirmed publishes a ride.confirmed event.
func (p *Publisher) RideConfirmed(ctx context.Context, ride *domain.Ride) error {
	return p.publish(ctx, TypeRideConfirmed, ride)
}

// RideCompleted publishes a ride.completed event.
func (p *Publisher) RideCompleted(ctx context.Context, ride *domain.Ride) error {
	return p.publish(ctx, TypeRideCompleted, ride)
}

func (p *Publisher) publish(ctx context.Context, eventType string, ride *domain.Ride) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	payload, err := json.Marshal(rideEvent{
		Type:        eventType,
		RideID:      ride.ID,
		CustomerID:  ride.CustomerID,
		DriverID:    ride.DriverID,
		Origin:      ride.Origin,
		Destination: ride.Destination,
		DistanceKm:  ride.DistanceKm,
		Value:       ride.Value,
		Status:      string(ride.Status),
		OccurredAt:  time.Now(),
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ride.ID),
		Value: payload,
	})
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// LoggingPublisher is a fallback used when Kafka is not configured; it logs
// the events it would have published.
type LoggingPublisher struct {
	logger *zap.Logger
}

var _ service.EventPublisher = (*LoggingPublisher)(nil)

// NewLoggingPublisher creates a log-only publisher.
func NewLoggingPublisher(logger *zap.Logger) *LoggingPublisher {
	return &LoggingPublisher{logger: logger}
}

func (p *LoggingPublisher) RideConfirmed(ctx context.Context, ride *domain.Ride) error {
	p.logger.Info("event", zap.String("type", TypeRideConfirmed), zap.String("ride_id", ride.ID))
	return nil
}

func (p *LoggingPublisher) RideCompleted(ctx context.Context, ride *domain.Ride) error {
	p.logger.Info("event", zap.String("type", TypeRideCompleted), zap.String("ride_id", ride.ID))
	return nil
}
