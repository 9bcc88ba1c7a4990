package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/utils"
)

// TariffFilter narrows admin rate card listings.
type TariffFilter struct {
	Courier  string
	Mode     string
	Zone     string
	Scope    string
	SellerID string
}

type TariffRepository interface {
	// Snapshot loading
	ListGlobal(ctx context.Context) ([]*models.TariffRow, error)
	ListOverrides(ctx context.Context) ([]*models.TariffRow, error)

	// Admin operations
	List(ctx context.Context, filter *TariffFilter, params *utils.PaginationParams) ([]*models.TariffRow, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.TariffRow, error)
	Upsert(ctx context.Context, row *models.TariffRow) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
