package get_port_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/EVCharge-BookingService/internal/api/handlers"
	"github.com/m04kA/EVCharge-BookingService/internal/domain"
	getPortAvailability "github.com/m04kA/EVCharge-BookingService/internal/usecase/get_port_availability"
)

const (
	msgInvalidPortID = "некорректный ID порта"
	msgMissingDate   = "отсутствует параметр date"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPortNotFound  = "порт не найден"
)

type Handler struct {
	useCase GetPortAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetPortAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/ports/{portId}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем portId из URL
	vars := mux.Vars(r)
	portIDStr := vars["portId"]

	portID, err := strconv.ParseInt(portIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /ports/{id}/availability - Invalid port ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPortID)
		return
	}

	// Извлекаем дату из query-параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /ports/{id}/availability - Missing date parameter: port_id=%d", portID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, dateStr, time.Local)
	if err != nil {
		h.logger.Warn("GET /ports/{id}/availability - Invalid date: port_id=%d, date=%s", portID, dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &getPortAvailability.Request{
		PortID: portID,
		Date:   date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getPortAvailability.ErrPortNotFound):
			h.logger.Warn("GET /ports/{id}/availability - Port not found: port_id=%d", portID)
			handlers.RespondNotFound(w, msgPortNotFound)

		case errors.Is(err, getPortAvailability.ErrInvalidInput):
			h.logger.Warn("GET /ports/{id}/availability - Invalid input: port_id=%d, error=%v", portID, err)
			handlers.RespondBadRequest(w, msgInvalidPortID)

		default:
			h.logger.Error("GET /ports/{id}/availability - Failed to get availability: port_id=%d, error=%v", portID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /ports/{id}/availability - Availability retrieved: port_id=%d, date=%s, free=%d",
		portID, dateStr, len(result.FreeSlots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
