package get_price

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/magiclook/ML-BookingService/internal/api/handlers"
	"github.com/magiclook/ML-BookingService/internal/service/catalog"
)

const (
	msgInvalidItemID = "некорректный ID товара"
	msgInvalidDays   = "некорректное число дней аренды"
	msgItemNotFound  = "товар не найден"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/items/{itemId}/price?days=3
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем itemId из URL
	vars := mux.Vars(r)
	itemIDStr := vars["itemId"]

	itemID, err := strconv.ParseInt(itemIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /items/{itemId}/price - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil {
		h.logger.Warn("GET /items/{itemId}/price - Invalid days parameter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDays)
		return
	}

	quote, err := h.service.CalculatePrice(r.Context(), itemID, days)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrItemNotFound):
			h.logger.Warn("GET /items/{itemId}/price - Item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("GET /items/{itemId}/price - Invalid days: item_id=%d, days=%d", itemID, days)
			handlers.RespondBadRequest(w, msgInvalidDays)

		default:
			h.logger.Error("GET /items/{itemId}/price - Failed to calculate price: item_id=%d, error=%v",
				itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /items/{itemId}/price - Price calculated: item_id=%d, days=%d, total=%.2f",
		itemID, days, quote.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, quote)
}
