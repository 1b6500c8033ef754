package list_stations

import (
	"net/http"

	"github.com/m04kA/EVCharge-BookingService/internal/api/handlers"
)

type Handler struct {
	service StationService
	logger  Logger
}

func NewHandler(service StationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stations, err := h.service.ListActiveStations(r.Context())
	if err != nil {
		h.logger.Error("GET /stations - Failed to list stations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /stations - Stations retrieved: count=%d", len(stations.Stations))
	handlers.RespondJSON(w, http.StatusOK, stations)
}
