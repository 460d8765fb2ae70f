package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/magiclook/ML-BookingService/internal/api/handlers"
	"github.com/magiclook/ML-BookingService/internal/domain"
	checkAvailability "github.com/magiclook/ML-BookingService/internal/usecase/check_availability"
)

const (
	msgInvalidItemID     = "некорректный ID товара"
	msgInvalidDateFormat = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDates      = "отсутствуют параметры startDate и endDate"
	msgItemNotFound      = "товар не найден"
	msgInvalidDate       = "некорректные даты запроса"
	msgInvalidInput      = "некорректные данные запроса"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/items/{itemId}/availability?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD&size=M
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем itemId из URL
	vars := mux.Vars(r)
	itemIDStr := vars["itemId"]

	itemID, err := strconv.ParseInt(itemIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /items/{itemId}/availability - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	// Даты интервала из query параметров
	query := r.URL.Query()
	startDateStr := query.Get("startDate")
	endDateStr := query.Get("endDate")
	if startDateStr == "" || endDateStr == "" {
		h.logger.Warn("GET /items/{itemId}/availability - Missing dates: item_id=%d", itemID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, startDateStr)
	if err != nil {
		h.logger.Warn("GET /items/{itemId}/availability - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	endDate, err := time.Parse(domain.DateFormat, endDateStr)
	if err != nil {
		h.logger.Warn("GET /items/{itemId}/availability - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	// Размер экземпляра (опционально)
	var sizePtr *string
	if size := query.Get("size"); size != "" {
		sizePtr = &size
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		ItemID:       itemID,
		StartUseDate: startDate,
		EndUseDate:   endDate,
		Size:         sizePtr,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrItemNotFound):
			h.logger.Warn("GET /items/{itemId}/availability - Item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidDate):
			h.logger.Warn("GET /items/{itemId}/availability - Invalid dates: item_id=%d", itemID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /items/{itemId}/availability - Invalid input: item_id=%d", itemID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /items/{itemId}/availability - Failed to check availability: item_id=%d, error=%v",
				itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /items/{itemId}/availability - Availability checked: item_id=%d, available=%t, free=%d/%d",
		itemID, result.Available, result.FreeUnits, result.TotalUnits)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
