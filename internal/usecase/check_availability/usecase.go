package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/magiclook/ML-BookingService/internal/domain"
	catalogRepo "github.com/magiclook/ML-BookingService/internal/infra/storage/catalog"
)

// UseCase use case для проверки доступности товара на интервал дат
// Чистое чтение: ничего не резервирует и не блокирует, результат
// может устареть к моменту создания брони, эту гонку разрешает
// атомарное резервирование в create_booking
type UseCase struct {
	bookingRepo    BookingRepository
	catalogRepo    CatalogRepository
	schedulePolicy domain.SchedulePolicy
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	schedulePolicy domain.SchedulePolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		catalogRepo:    catalogRepo,
		schedulePolicy: schedulePolicy,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: item=%d, start=%s, end=%s",
		req.ItemID, req.StartUseDate.Format(domain.DateFormat), req.EndUseDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование товара
	if _, err := uc.catalogRepo.GetItemByID(ctx, req.ItemID); err != nil {
		if errors.Is(err, catalogRepo.ErrItemNotFound) {
			uc.logger.Warn("CheckAvailability: item id=%d not found", req.ItemID)
			return nil, ErrItemNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get item id=%d: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to get item: %v", ErrInternal, err)
	}

	// 3. Получаем пригодные экземпляры
	units, err := uc.catalogRepo.ListBookableUnits(ctx, req.ItemID, req.Size)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to list units for item id=%d: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to list units: %v", ErrInternal, err)
	}

	// 4. Считаем экземпляры, свободные на полное блокируемое окно
	use, err := domain.NewInterval(req.StartUseDate, req.EndUseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	blocked := uc.schedulePolicy.BlockedWindow(use)
	slack := uc.schedulePolicy.PickupLeadDays + uc.schedulePolicy.ReturnSlackDays + uc.schedulePolicy.LaundryDays
	prune := blocked.Extend(slack, slack)

	freeUnits := 0
	for _, unit := range units {
		existing, err := uc.bookingRepo.GetActiveByUnit(ctx, unit.ID, &prune)
		if err != nil {
			uc.logger.Error("CheckAvailability: failed to get bookings for unit=%d: %v", unit.ID, err)
			return nil, fmt.Errorf("%w: failed to get unit bookings: %v", ErrInternal, err)
		}

		if !overlapsAny(existing, blocked, uc.schedulePolicy) {
			freeUnits++
		}
	}

	availability := domain.ItemAvailability{
		Available:  freeUnits > 0,
		FreeUnits:  freeUnits,
		TotalUnits: len(units),
	}

	uc.logger.Info("CheckAvailability: item=%d available=%t (%d/%d units free)",
		req.ItemID, availability.Available, availability.FreeUnits, availability.TotalUnits)

	return &Response{
		ItemID:       req.ItemID,
		StartUseDate: use.Start,
		EndUseDate:   use.End,
		Available:    availability.Available,
		FreeUnits:    availability.FreeUnits,
		TotalUnits:   availability.TotalUnits,
	}, nil
}

// overlapsAny проверяет пересечение блокируемых окон существующих броней
// с запрошенным окном
func overlapsAny(existing []*domain.Booking, blocked domain.Interval, policy domain.SchedulePolicy) bool {
	for _, b := range existing {
		if !b.IsActive() {
			continue
		}
		if policy.BlockedWindow(b.UseInterval()).Overlaps(blocked) {
			return true
		}
	}
	return false
}
