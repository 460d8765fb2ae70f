package create_booking

import (
	"context"
	"time"

	"github.com/magiclook/ML-BookingService/internal/domain"
	"github.com/magiclook/ML-BookingService/internal/integrations/notifyservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByUnit(ctx context.Context, unitID int64, around *domain.Interval) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetItemByID(ctx context.Context, id int64) (*domain.Item, error)
	ListBookableUnits(ctx context.Context, itemID int64, size *string) ([]*domain.ItemUnit, error)
	UpdateItemAvailabilityHint(ctx context.Context, itemID int64, available bool, nextAvailable *time.Time) error
}

// NotifyClient интерфейс клиента сервиса уведомлений
type NotifyClient interface {
	SendWithGracefulDegradation(ctx context.Context, n *notifyservice.Notification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
