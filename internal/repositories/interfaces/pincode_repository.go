package interfaces

import (
	"context"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
)

type PincodeRepository interface {
	// GetByPincode returns (nil, nil) when the pincode is not in the
	// directory; errors signal store failures only.
	GetByPincode(ctx context.Context, pincode string) (*models.PincodeRecord, error)
	Upsert(ctx context.Context, record *models.PincodeRecord) error
	BulkUpsert(ctx context.Context, records []*models.PincodeRecord) (int, error)
	Count(ctx context.Context) (int64, error)
}
