package services

import (
	"context"
	"fmt"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/repositories/interfaces"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/utils"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/logger"
)

type PincodeService interface {
	// Lookup returns (nil, nil) for a pincode absent from the directory.
	Lookup(ctx context.Context, pincode string) (*models.PincodeRecord, error)
	Import(ctx context.Context, records []*models.PincodeRecord) (int, error)
	Count(ctx context.Context) (int64, error)
}

type pincodeService struct {
	pincodeRepo interfaces.PincodeRepository
	logger      *logger.Logger
}

func NewPincodeService(pincodeRepo interfaces.PincodeRepository, logger *logger.Logger) PincodeService {
	return &pincodeService{
		pincodeRepo: pincodeRepo,
		logger:      logger,
	}
}

func (s *pincodeService) Lookup(ctx context.Context, pincode string) (*models.PincodeRecord, error) {
	if !utils.IsValidPincode(pincode) {
		return nil, models.NewInvalidRequestError("pincode", "pincode must be six digits and must not start with zero")
	}

	return s.pincodeRepo.GetByPincode(ctx, pincode)
}

// Import bulk-loads directory rows, skipping entries that fail validation.
// It returns the number of rows written.
func (s *pincodeService) Import(ctx context.Context, records []*models.PincodeRecord) (int, error) {
	valid := make([]*models.PincodeRecord, 0, len(records))
	skipped := 0

	for _, record := range records {
		if !utils.IsValidPincode(record.Pincode) || record.State == "" || record.City == "" {
			skipped++
			continue
		}
		valid = append(valid, record)
	}

	if len(valid) == 0 {
		return 0, models.NewInvalidRequestError("records", "no valid pincode records to import")
	}

	written, err := s.pincodeRepo.BulkUpsert(ctx, valid)
	if err != nil {
		return 0, fmt.Errorf("failed to import pincode records: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"written": written,
		"skipped": skipped,
	}).Info("Pincode directory import finished")

	return written, nil
}

func (s *pincodeService) Count(ctx context.Context) (int64, error) {
	return s.pincodeRepo.Count(ctx)
}
