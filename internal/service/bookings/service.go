package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/bookings/models"
)

// Service сервис администрирования бронирований
type Service struct {
	bookingRepo BookingRepository
	notifier    Notifier
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// ListByDate получает записи за дату
// Без специалиста возвращаются записи всей клиники
func (s *Service) ListByDate(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("ListByDate: fetching bookings for date=%s", req.Date.Format(domain.DateFormat))
	if req.TeamMemberID != nil {
		logMsg += fmt.Sprintf(", team_member=%d", *req.TeamMemberID)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info("%s", logMsg)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("ListByDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDate: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Отменённая запись сразу освобождает слот
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var cancelled *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.get(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.Cancel(txCtx, bookingID, req.CancellationReason); err != nil {
			return s.mapRepoError("Cancel", bookingID, err)
		}

		cancelled, err = s.get(txCtx, "Cancel", bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	s.notifier.BookingCancelled(ctx, cancelled)

	return models.FromDomainBooking(cancelled), nil
}

// UpdateStatus обновляет статус бронирования
// Завершённые и отменённые записи не меняются, статус cancelled выставляется через отмену
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	status, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	var updated *domain.Booking
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.get(txCtx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}

		if booking.IsTerminal() {
			s.logger.Warn("UpdateStatus: booking id=%d is %s", bookingID, booking.Status)
			return fmt.Errorf("%w: current status %s", ErrCannotChangeStatus, booking.Status)
		}

		if status == domain.StatusCancelled {
			err = s.bookingRepo.Cancel(txCtx, bookingID, nil)
		} else {
			err = s.bookingRepo.UpdateStatus(txCtx, bookingID, status)
		}
		if err != nil {
			return s.mapRepoError("UpdateStatus", bookingID, err)
		}

		updated, err = s.get(txCtx, "UpdateStatus", bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: booking id=%d is now %s", bookingID, updated.Status)
	if updated.Status == domain.StatusCancelled {
		s.notifier.BookingCancelled(ctx, updated)
	} else {
		s.notifier.BookingStatusChanged(ctx, updated)
	}

	return models.FromDomainBooking(updated), nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	return booking, nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d not found", op, id)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
