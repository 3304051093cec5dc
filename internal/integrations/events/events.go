// Package events публикация событий жизненного цикла записи в kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// ErrPublish возвращается при ошибке публикации события
var ErrPublish = errors.New("events: failed to publish")

// Type тип события
type Type string

const (
	BookingCreated       Type = "booking.created"
	BookingMoved         Type = "booking.moved"
	BookingCancelled     Type = "booking.cancelled"
	BookingStatusChanged Type = "booking.status_changed"
)

// BookingEvent событие по записи
type BookingEvent struct {
	EventID      string    `json:"event_id"`
	Type         Type      `json:"type"`
	BookingID    int64     `json:"booking_id"`
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	TeamMemberID *int64    `json:"team_member_id,omitempty"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// NewBookingEvent создает событие по текущему состоянию записи
func NewBookingEvent(eventType Type, b *domain.Booking, now time.Time) BookingEvent {
	return BookingEvent{
		EventID:      uuid.NewString(),
		Type:         eventType,
		BookingID:    b.ID,
		Date:         b.Date.Format(domain.DateFormat),
		StartTime:    b.StartTime.String(),
		TeamMemberID: b.TeamMemberID,
		Status:       string(b.Status),
		OccurredAt:   now.UTC(),
	}
}

// writer подмножество kafka.Writer
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// publishBatchTimeout одно событие на запрос, ждать наполнения батча не нужно
const publishBatchTimeout = 10 * time.Millisecond

// Publisher пишет события в один топик, ключ сообщения - ID записи
type Publisher struct {
	writer writer
}

// NewPublisher создает publisher поверх kafka.Writer
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			BatchTimeout:           publishBatchTimeout,
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish публикует событие
func (p *Publisher) Publish(ctx context.Context, event BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, event.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.BookingID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s booking=%d: %v", ErrPublish, event.Type, event.BookingID, err)
	}
	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// Nop publisher для отключённой kafka
type Nop struct{}

func (Nop) Publish(context.Context, BookingEvent) error { return nil }
