package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/magiclook/ML-BookingService/internal/domain"
	catalogRepo "github.com/magiclook/ML-BookingService/internal/infra/storage/catalog"
	"github.com/magiclook/ML-BookingService/internal/integrations/notifyservice"
	"github.com/magiclook/ML-BookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
// Резервирование экземпляра выполняется в сериализуемой транзакции:
// из двух конкурентных попыток занять пересекающиеся даты на одном
// экземпляре выигрывает ровно одна
type UseCase struct {
	bookingRepo    BookingRepository
	catalogRepo    CatalogRepository
	notifyClient   NotifyClient
	txManager      TransactionManager
	schedulePolicy domain.SchedulePolicy
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	notifyClient NotifyClient,
	txManager TransactionManager,
	schedulePolicy domain.SchedulePolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		catalogRepo:    catalogRepo,
		notifyClient:   notifyClient,
		txManager:      txManager,
		schedulePolicy: schedulePolicy,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, item=%d, start=%s, end=%s",
		req.UserID, req.ItemID,
		req.StartUseDate.Format(domain.DateFormat), req.EndUseDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация дат относительно текущего времени
	now := uc.timeProvider.Now()
	if err := validateDates(req.StartUseDate, req.EndUseDate, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем товар
	item, err := uc.catalogRepo.GetItemByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrItemNotFound) {
			uc.logger.Warn("CreateBooking: item id=%d not found", req.ItemID)
			return nil, ErrItemNotFound
		}
		uc.logger.Error("CreateBooking: failed to get item id=%d: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to get item: %v", ErrInternal, err)
	}

	// 4. Получаем пригодные экземпляры: состояние AVAILABLE, нужный размер,
	// порядок по id, чтобы распределение было детерминировано
	units, err := uc.catalogRepo.ListBookableUnits(ctx, req.ItemID, req.Size)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list units for item id=%d: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to list units: %v", ErrInternal, err)
	}
	if len(units) == 0 {
		uc.logger.Warn("CreateBooking: no eligible units for item=%d size=%v", req.ItemID, req.Size)
		return nil, ErrNoEligibleUnits
	}

	// 5. Выводим вехи бронирования и цену
	use, err := domain.NewInterval(req.StartUseDate, req.EndUseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	pickupDate, returnDate := uc.schedulePolicy.Schedule(use)
	blocked := uc.schedulePolicy.BlockedWindow(use)
	totalDays := use.DurationDays()
	totalPrice := domain.RentalPrice(item.PriceRent, totalDays)

	var result *domain.Booking

	// 6. Резервирование: проверка занятости и запись в одной
	// сериализуемой транзакции; при откате фантомных броней не остается
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		prune := pruneWindow(blocked, uc.schedulePolicy)

		// 6.1. Перебираем кандидатов по порядку, первый свободный выигрывает
		var reserved *domain.ItemUnit
		for _, unit := range units {
			existing, err := uc.bookingRepo.GetActiveByUnit(txCtx, unit.ID, &prune)
			if err != nil {
				// Конфликт сериализации возвращаем как есть, он разрешается
				// после транзакции как занятость, а не как внутренняя ошибка
				if txmanager.IsSerializationFailure(err) {
					return err
				}
				uc.logger.Error("CreateBooking: failed to get bookings for unit=%d: %v", unit.ID, err)
				return fmt.Errorf("%w: failed to get unit bookings: %v", ErrInternal, err)
			}

			if !hasConflict(existing, blocked, uc.schedulePolicy) {
				reserved = unit
				break
			}
		}

		if reserved == nil {
			return errUnitConflict
		}

		uc.logger.Info("CreateBooking: reserving unit=%d of item=%d for %s", reserved.ID, item.ID, blocked)

		// 6.2. Создаем бронирование с денормализацией данных товара
		booking := &domain.Booking{
			UserID:       req.UserID,
			ItemID:       item.ID,
			UnitID:       reserved.ID,
			PickupDate:   pickupDate,
			StartUseDate: use.Start,
			EndUseDate:   use.End,
			ReturnDate:   returnDate,
			TotalDays:    totalDays,
			TotalPrice:   totalPrice,
			Status:       domain.StatusConfirmed,
			ItemName:     item.Name,
			UnitSize:     reserved.Size,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if txmanager.IsSerializationFailure(err) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 6.3. Обновляем подсказку доступности на карточке товара,
		// если занят последний пригодный экземпляр
		if len(units) == 1 {
			nextAvailable := blocked.End.AddDate(0, 0, 1)
			if err := uc.catalogRepo.UpdateItemAvailabilityHint(txCtx, item.ID, false, &nextAvailable); err != nil {
				if txmanager.IsSerializationFailure(err) {
					return err
				}
				uc.logger.Error("CreateBooking: failed to update availability hint for item=%d: %v", item.ID, err)
				return fmt.Errorf("%w: failed to update availability hint: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		// Конкурент успел занять пересекающийся интервал: либо все кандидаты
		// оказались заняты под FOR UPDATE, либо транзакция не сериализовалась
		if errors.Is(err, errUnitConflict) || txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: item=%d not available for %s..%s: %v",
				req.ItemID, use.Start.Format(domain.DateFormat), use.End.Format(domain.DateFormat), err)
			return nil, ErrItemNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d (unit=%d, price=%.2f)",
		result.ID, result.UnitID, result.TotalPrice)

	// 7. Уведомление пользователя; недоступность сервиса уведомлений
	// бронирование не отменяет
	_ = uc.notifyClient.SendWithGracefulDegradation(ctx, &notifyservice.Notification{
		UserID:    result.UserID,
		Event:     notifyservice.EventBookingCreated,
		BookingID: result.ID,
		Message: fmt.Sprintf("Booking confirmed: %s (%s), pickup %s, return %s",
			result.ItemName, result.UnitSize,
			result.PickupDate.Format(domain.DateFormat), result.ReturnDate.Format(domain.DateFormat)),
	})

	return &Response{
		ID:           result.ID,
		UserID:       result.UserID,
		ItemID:       result.ItemID,
		UnitID:       result.UnitID,
		PickupDate:   result.PickupDate,
		StartUseDate: result.StartUseDate,
		EndUseDate:   result.EndUseDate,
		ReturnDate:   result.ReturnDate,
		TotalDays:    result.TotalDays,
		TotalPrice:   result.TotalPrice,
		Status:       string(result.Status),
		ItemName:     result.ItemName,
		UnitSize:     result.UnitSize,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}
