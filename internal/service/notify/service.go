// Package notify оповещения после фиксации изменений записи.
// Оповещения отправляются в фоне, ошибки логируются и не возвращаются вызывающему.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/integrations/events"
	"github.com/m04kA/SMC-ClinicBooking/internal/integrations/mailer"
)

// DefaultTimeout ограничение на одно оповещение (событие + письмо)
const DefaultTimeout = 30 * time.Second

// Service рассылает событие в kafka и письмо клиенту
// mail может быть nil, если почта отключена
type Service struct {
	publisher EventPublisher
	mail      MailSender
	clock     TimeProvider
	logger    Logger
	timeout   time.Duration
	wg        sync.WaitGroup
}

func NewService(publisher EventPublisher, mail MailSender, logger Logger) *Service {
	return &Service{
		publisher: publisher,
		mail:      mail,
		clock:     realClock{},
		logger:    logger,
		timeout:   DefaultTimeout,
	}
}

// WithTimeout задает ограничение на одно оповещение
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Wait дожидается отправки запущенных оповещений (graceful shutdown, тесты)
func (s *Service) Wait() {
	s.wg.Wait()
}

// BookingCreated оповещает о новой записи
func (s *Service) BookingCreated(ctx context.Context, b *domain.Booking) {
	s.dispatch(ctx, events.BookingCreated, b, func(b *domain.Booking) (mailer.Email, error) {
		return mailer.BookingConfirmation(b)
	})
}

// BookingMoved оповещает о переносе записи
func (s *Service) BookingMoved(ctx context.Context, b *domain.Booking) {
	s.dispatch(ctx, events.BookingMoved, b, func(b *domain.Booking) (mailer.Email, error) {
		return mailer.BookingMoved(b), nil
	})
}

// BookingCancelled оповещает об отмене записи
func (s *Service) BookingCancelled(ctx context.Context, b *domain.Booking) {
	s.dispatch(ctx, events.BookingCancelled, b, func(b *domain.Booking) (mailer.Email, error) {
		return mailer.BookingCancelled(b), nil
	})
}

// BookingStatusChanged публикует смену статуса, письмо не отправляется
func (s *Service) BookingStatusChanged(ctx context.Context, b *domain.Booking) {
	s.dispatch(ctx, events.BookingStatusChanged, b, nil)
}

// dispatch запускает оповещение в фоне на копии записи
// Контекст отвязан от запроса: отключение клиента не отменяет оповещение
func (s *Service) dispatch(ctx context.Context, t events.Type, b *domain.Booking, render func(*domain.Booking) (mailer.Email, error)) {
	booking := *b
	now := s.clock.Now()
	bgCtx := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(bgCtx, s.timeout)
		defer cancel()

		s.publish(ctx, t, &booking, now)

		if render == nil {
			return
		}
		email, err := render(&booking)
		if err != nil {
			s.logger.Warn("Notify: failed to render %s email for booking id=%d: %v", t, booking.ID, err)
			return
		}
		s.send(ctx, &booking, email)
	}()
}

func (s *Service) publish(ctx context.Context, t events.Type, b *domain.Booking, now time.Time) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewBookingEvent(t, b, now)); err != nil {
		s.logger.Warn("Notify: failed to publish %s for booking id=%d: %v", t, b.ID, err)
	}
}

func (s *Service) send(ctx context.Context, b *domain.Booking, email mailer.Email) {
	if s.mail == nil || email.To == "" {
		return
	}
	if err := s.mail.Send(ctx, email); err != nil {
		s.logger.Warn("Notify: failed to email booking id=%d: %v", b.ID, err)
		return
	}
	s.logger.Info("Notify: email '%s' sent for booking id=%d", email.Subject, b.ID)
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
