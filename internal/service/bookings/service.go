package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/magiclook/ML-BookingService/internal/domain"
	bookingRepo "github.com/magiclook/ML-BookingService/internal/infra/storage/booking"
	"github.com/magiclook/ML-BookingService/internal/integrations/notifyservice"
	"github.com/magiclook/ML-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с существующими бронированиями:
// чтение, отмена с расчетом возврата, отметка о возврате вещи
type Service struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	notifyClient NotifyClient
	refundPolicy domain.RefundPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	notifyClient NotifyClient,
	refundPolicy domain.RefundPolicy,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		notifyClient: notifyClient,
		refundPolicy: refundPolicy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking, s.timeProvider.Now()), nil
}

// GetUserBookings получает историю бронирований пользователя, новые первыми
// Чистое чтение: отображаемые состояния вычисляются на лету и не пишутся
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d", req.UserID)

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings, s.timeProvider.Now()), nil
}

// Cancel отменяет бронирование и возвращает расчет возврата денег
// Разрешено только владельцу и только пока использование не началось
// Отмена немедленно освобождает интервал экземпляра для новых броней
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.RefundQuoteResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	now := s.timeProvider.Now()
	if !booking.CanBeCancelled(now) {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, state=%s", bookingID, booking.CurrentState(now))
		return nil, ErrCannotCancel
	}

	quote := s.refundPolicy.Quote(booking.TotalPrice, booking.PickupDate, now)

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d, refund %d%% (%.2f)",
		bookingID, quote.Percent, quote.Amount)

	_ = s.notifyClient.SendWithGracefulDegradation(ctx, &notifyservice.Notification{
		UserID:    booking.UserID,
		Event:     notifyservice.EventBookingCancelled,
		BookingID: booking.ID,
		Message:   fmt.Sprintf("Booking cancelled: %s, refund %d%%", booking.ItemName, quote.Percent),
	})

	return &models.RefundQuoteResponse{
		BookingID: bookingID,
		Percent:   quote.Percent,
		Amount:    quote.Amount,
	}, nil
}

// MarkReturned отмечает возврат вещи (операция персонала)
// После возврата карточка товара снова помечается доступной
func (s *Service) MarkReturned(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("MarkReturned: marking booking id=%d as returned", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("MarkReturned: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("MarkReturned: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: MarkReturned - repository error: %v", ErrInternal, err)
	}

	if booking.Status != domain.StatusConfirmed {
		s.logger.Warn("MarkReturned: booking id=%d has status=%s, cannot mark returned", bookingID, booking.Status)
		return nil, ErrCannotReturn
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusReturned); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("MarkReturned: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: MarkReturned - repository error: %v", ErrInternal, err)
	}

	// Подсказка доступности не авторитетна, её рассинхронизация не ломает
	// проверку интервалов, поэтому ошибка здесь только логируется
	if err := s.catalogRepo.UpdateItemAvailabilityHint(ctx, booking.ItemID, true, nil); err != nil {
		s.logger.Error("MarkReturned: failed to refresh availability hint for item=%d: %v", booking.ItemID, err)
	}

	_ = s.notifyClient.SendWithGracefulDegradation(ctx, &notifyservice.Notification{
		UserID:    booking.UserID,
		Event:     notifyservice.EventBookingReturned,
		BookingID: booking.ID,
		Message:   fmt.Sprintf("Return registered: %s", booking.ItemName),
	})

	booking.Status = domain.StatusReturned
	s.logger.Info("MarkReturned: successfully marked booking id=%d as returned", bookingID)
	return models.FromDomainBooking(booking, s.timeProvider.Now()), nil
}
