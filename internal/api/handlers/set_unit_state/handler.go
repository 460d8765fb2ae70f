package set_unit_state

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/magiclook/ML-BookingService/internal/api/handlers"
	"github.com/magiclook/ML-BookingService/internal/domain"
	"github.com/magiclook/ML-BookingService/internal/service/catalog"
)

const (
	msgInvalidUnitID      = "некорректный ID экземпляра"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidState       = "некорректное состояние экземпляра"
	msgUnitNotFound       = "экземпляр не найден"
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

// Handle PATCH /api/v1/units/{unitId}/state
// Операция персонала: вывод экземпляра в обслуживание и возврат в оборот
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем unitId из URL
	vars := mux.Vars(r)
	unitIDStr := vars["unitId"]

	unitID, err := strconv.ParseInt(unitIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /units/{id}/state - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	// Декодируем body
	var req SetUnitStateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /units/{id}/state - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	unit, err := h.service.SetUnitState(r.Context(), unitID, domain.UnitState(req.State))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrUnitNotFound):
			h.logger.Warn("PATCH /units/{id}/state - Unit not found: unit_id=%d", unitID)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PATCH /units/{id}/state - Invalid state: unit_id=%d, state=%s", unitID, req.State)
			handlers.RespondBadRequest(w, msgInvalidState)

		default:
			h.logger.Error("PATCH /units/{id}/state - Failed to set unit state: unit_id=%d, error=%v",
				unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /units/{id}/state - Unit state updated: unit_id=%d, state=%s", unitID, unit.State)
	handlers.RespondJSON(w, http.StatusOK, FromDomainUnit(unit))
}
