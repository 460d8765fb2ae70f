package bookings

import (
	"context"
	"time"

	"github.com/magiclook/ML-BookingService/internal/domain"
	"github.com/magiclook/ML-BookingService/internal/integrations/notifyservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	UpdateItemAvailabilityHint(ctx context.Context, itemID int64, available bool, nextAvailable *time.Time) error
}

// NotifyClient интерфейс клиента сервиса уведомлений
type NotifyClient interface {
	SendWithGracefulDegradation(ctx context.Context, n *notifyservice.Notification) error
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
