package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/EVCharge-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/EVCharge-BookingService/internal/infra/storage/booking"
	authClient "github.com/m04kA/EVCharge-BookingService/internal/integrations/authservice"
	"github.com/m04kA/EVCharge-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	authClient  AuthServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	authClient AuthServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		authClient:  authClient,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.enrichUserNames(ctx, booking)

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// ListBookings получает список бронирований с опциональной фильтрацией
// по пользователю и статусу, отсортированный по времени создания (сначала новые)
func (s *Service) ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListBookings: fetching bookings, user=%v, status=%v", req.UserID, req.Status)

	filter := domain.BookingsFilter{
		UserID: req.UserID,
	}

	// Конвертируем статус из строки в domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
	}

	s.enrichUserNames(ctx, bookings...)

	s.logger.Info("ListBookings: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, userID int64, status *string) (*models.BookingListResponse, error) {
	return s.ListBookings(ctx, &models.ListBookingsRequest{
		UserID: &userID,
		Status: status,
	})
}

// UpdateStatus переводит бронирование из Pending в Accepted или Rejected.
// Переход выполняется условным обновлением: строка меняется только если
// статус всё ещё Pending, поэтому из конкурентных рассмотрений выигрывает
// ровно одно, остальные получают ErrBookingNotPending.
// Принятые и отклонённые бронирования неизменяемы - повторное рассмотрение
// невозможно
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	// Валидируем и конвертируем статус: допустимы только Accepted и Rejected
	newStatus, err := models.ToDomainReviewStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: status must be Accepted or Rejected", ErrInvalidStatus)
	}

	// Валидируем комментарий администратора
	if req.AdminNotes != nil && len(*req.AdminNotes) > domain.MaxAdminNotesLength {
		s.logger.Warn("UpdateStatus: admin notes too long for booking id=%d", bookingID)
		return nil, fmt.Errorf("%w: admin notes must not exceed %d characters", ErrInvalidInput, domain.MaxAdminNotesLength)
	}

	err = s.bookingRepo.UpdateStatusIfPending(ctx, bookingID, newStatus, req.AdminNotes)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotPending) {
			// Ноль затронутых строк: либо бронирования нет, либо оно уже
			// рассмотрено. Различаем случаи повторным чтением
			return nil, s.resolveNotPending(ctx, bookingID)
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to reload booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - reload booking: %v", ErrInternal, err)
	}

	s.enrichUserNames(ctx, booking)

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(booking), nil
}

// resolveNotPending различает отсутствующее бронирование и бронирование,
// уже покинувшее статус Pending
func (s *Service) resolveNotPending(ctx context.Context, bookingID int64) error {
	_, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: failed to resolve booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - resolve booking: %v", ErrInternal, err)
	}

	s.logger.Warn("UpdateStatus: booking id=%d is no longer pending", bookingID)
	return ErrBookingNotPending
}

// enrichUserNames заполняет имена пользователей через AuthService.
// Данные для отображения: ошибка обращения к AuthService не прерывает
// запрос, имя остаётся пустым
func (s *Service) enrichUserNames(ctx context.Context, bookings ...*domain.Booking) {
	cache := make(map[int64]*authClient.User, len(bookings))

	for _, booking := range bookings {
		user, ok := cache[booking.UserID]
		if !ok {
			var err error
			user, err = s.authClient.GetUser(ctx, booking.UserID)
			if err != nil {
				s.logger.Warn("enrichUserNames: failed to get user id=%d: %v", booking.UserID, err)
				cache[booking.UserID] = nil
				continue
			}
			cache[booking.UserID] = user
		}

		if user != nil {
			name := user.Name
			booking.UserName = &name
		}
	}
}
