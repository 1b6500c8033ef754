package stations

import (
	"context"
	"fmt"

	"github.com/m04kA/EVCharge-BookingService/internal/service/stations/models"
)

// Service сервис для работы со станциями
type Service struct {
	stationRepo StationRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса станций
func NewService(stationRepo StationRepository, logger Logger) *Service {
	return &Service{
		stationRepo: stationRepo,
		logger:      logger,
	}
}

// ListActiveStations получает список активных станций с их активными портами.
// Неактивные станции и порты не попадают в выдачу
func (s *Service) ListActiveStations(ctx context.Context) (*models.StationListResponse, error) {
	s.logger.Info("ListActiveStations: fetching active stations")

	stations, err := s.stationRepo.ListActiveStationsWithPorts(ctx)
	if err != nil {
		s.logger.Error("ListActiveStations: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActiveStations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListActiveStations: successfully fetched %d stations", len(stations))
	return models.FromDomainStationList(stations), nil
}
