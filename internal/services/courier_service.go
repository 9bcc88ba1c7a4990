package services

import (
	"context"
	"fmt"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/repositories/interfaces"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/logger"
)

type CourierService interface {
	ListCouriers(ctx context.Context) ([]*models.Courier, error)
	ListActiveCouriers(ctx context.Context) ([]*models.Courier, error)
	GetCourier(ctx context.Context, name string) (*models.Courier, error)
	UpsertCourier(ctx context.Context, courier *models.Courier) error
	SetCourierActive(ctx context.Context, name string, active bool) error
}

type courierService struct {
	courierRepo interfaces.CourierRepository
	logger      *logger.Logger
}

func NewCourierService(courierRepo interfaces.CourierRepository, logger *logger.Logger) CourierService {
	return &courierService{
		courierRepo: courierRepo,
		logger:      logger,
	}
}

func (s *courierService) ListCouriers(ctx context.Context) ([]*models.Courier, error) {
	return s.courierRepo.List(ctx)
}

func (s *courierService) ListActiveCouriers(ctx context.Context) ([]*models.Courier, error) {
	return s.courierRepo.ListActive(ctx)
}

// GetCourier accepts the canonical code or any known display-name spelling.
func (s *courierService) GetCourier(ctx context.Context, name string) (*models.Courier, error) {
	code, ok := models.CourierFromName(name)
	if !ok {
		return nil, models.NewInvalidRequestError("courier", fmt.Sprintf("unknown courier %q", name))
	}

	return s.courierRepo.GetByCode(ctx, code)
}

func (s *courierService) UpsertCourier(ctx context.Context, courier *models.Courier) error {
	if !courier.Code.IsValid() {
		return models.NewInvalidRequestError("code", fmt.Sprintf("unknown courier code %q", courier.Code))
	}
	for _, mode := range courier.SupportedModes {
		if !mode.IsValid() {
			return models.NewInvalidRequestError("supported_modes", fmt.Sprintf("unknown service mode %q", mode))
		}
	}

	if courier.Name == "" {
		courier.Name = courier.Code.DisplayName()
	}
	if len(courier.SupportedModes) == 0 {
		courier.SupportedModes = models.AllServiceModes
	}

	if err := s.courierRepo.Upsert(ctx, courier); err != nil {
		return fmt.Errorf("failed to upsert courier: %w", err)
	}

	s.logger.WithCourier(string(courier.Code)).Info("Courier configuration updated")
	return nil
}

func (s *courierService) SetCourierActive(ctx context.Context, name string, active bool) error {
	code, ok := models.CourierFromName(name)
	if !ok {
		return models.NewInvalidRequestError("courier", fmt.Sprintf("unknown courier %q", name))
	}

	if err := s.courierRepo.SetActive(ctx, code, active); err != nil {
		return err
	}

	s.logger.WithCourier(string(code)).
		WithField("active", active).
		Info("Courier active flag changed")

	return nil
}
