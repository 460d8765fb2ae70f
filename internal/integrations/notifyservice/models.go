package notifyservice

// EventType тип события бронирования
type EventType string

const (
	EventBookingCreated   EventType = "booking_created"
	EventBookingCancelled EventType = "booking_cancelled"
	EventBookingReturned  EventType = "booking_returned"
)

// Notification событие, отправляемое в сервис уведомлений
type Notification struct {
	UserID    int64     `json:"user_id"`
	Event     EventType `json:"event"`
	BookingID int64     `json:"booking_id"`
	Message   string    `json:"message"`
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
