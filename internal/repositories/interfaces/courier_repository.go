package interfaces

import (
	"context"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
)

type CourierRepository interface {
	List(ctx context.Context) ([]*models.Courier, error)
	ListActive(ctx context.Context) ([]*models.Courier, error)
	GetByCode(ctx context.Context, code models.CourierCode) (*models.Courier, error)
	Upsert(ctx context.Context, courier *models.Courier) error
	SetActive(ctx context.Context, code models.CourierCode, active bool) error
}
