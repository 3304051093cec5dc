package notify

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/integrations/events"
	"github.com/m04kA/SMC-ClinicBooking/internal/integrations/mailer"
)

// EventPublisher публикует события по записям
type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

// MailSender отправляет письма
type MailSender interface {
	Send(ctx context.Context, email mailer.Email) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
