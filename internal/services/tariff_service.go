package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/repositories/interfaces"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/utils"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/logger"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/metrics"
)

type TariffService interface {
	// Snapshot resolution
	Resolve(courier models.CourierCode, mode models.ServiceMode, zone models.Zone, slabKG float64, sellerID string) (*models.EffectiveTariff, bool)
	Capture() (TariffResolver, bool)
	RefreshNow(ctx context.Context) error
	Start(ctx context.Context)
	Stop()
	SnapshotInfo() SnapshotInfo

	// Rate card administration
	ListRateCards(ctx context.Context, filter *interfaces.TariffFilter, params *utils.PaginationParams) ([]*models.TariffRow, int64, error)
	GetRateCard(ctx context.Context, id string) (*models.TariffRow, error)
	UpsertRateCard(ctx context.Context, row *models.TariffRow) error
	DeleteRateCard(ctx context.Context, id string) error
}

// TariffResolver answers lookups against one immutable rate card view. A
// request captures a resolver once so its several lookups can never observe
// a refresh landing mid-computation.
type TariffResolver interface {
	Resolve(courier models.CourierCode, mode models.ServiceMode, zone models.Zone, slabKG float64, sellerID string) (*models.EffectiveTariff, bool)
}

// SnapshotInfo describes the rate card snapshot currently serving lookups.
type SnapshotInfo struct {
	GlobalRows   int       `json:"global_rows"`
	OverrideRows int       `json:"override_rows"`
	LoadedAt     time.Time `json:"loaded_at"`
}

// tariffSnapshot is an immutable view of the full rate card. Lookups read
// whichever snapshot was current when they started; refreshes swap in a new
// one atomically and never mutate a published snapshot.
type tariffSnapshot struct {
	global    map[models.TariffKey]*models.TariffRow
	overrides map[string]map[models.TariffKey]*models.TariffRow
	loadedAt  time.Time
}

type tariffService struct {
	tariffRepo interfaces.TariffRepository
	logger     *logger.Logger
	metrics    *metrics.Metrics
	interval   time.Duration

	snapshot atomic.Pointer[tariffSnapshot]
	stop     chan struct{}
	stopOnce sync.Once
}

func NewTariffService(tariffRepo interfaces.TariffRepository, logger *logger.Logger, metrics *metrics.Metrics, refreshInterval time.Duration) TariffService {
	return &tariffService{
		tariffRepo: tariffRepo,
		logger:     logger,
		metrics:    metrics,
		interval:   refreshInterval,
		stop:       make(chan struct{}),
	}
}

// Resolve returns the tariff row applied for one rate card cell. A seller
// override fully replaces the global row for the same key; there is no
// field-level merge. A missing cell returns ok=false and is not an error.
func (s *tariffService) Resolve(courier models.CourierCode, mode models.ServiceMode, zone models.Zone, slabKG float64, sellerID string) (*models.EffectiveTariff, bool) {
	snapshot := s.snapshot.Load()
	if snapshot == nil {
		return nil, false
	}
	return snapshot.Resolve(courier, mode, zone, slabKG, sellerID)
}

// Capture pins the snapshot current right now. ok is false only when no
// snapshot has ever loaded, which means the rate card store has been
// unreachable since boot.
func (s *tariffService) Capture() (TariffResolver, bool) {
	snapshot := s.snapshot.Load()
	if snapshot == nil {
		return nil, false
	}
	return snapshot, true
}

func (s *tariffSnapshot) Resolve(courier models.CourierCode, mode models.ServiceMode, zone models.Zone, slabKG float64, sellerID string) (*models.EffectiveTariff, bool) {
	key := models.TariffKey{Courier: courier, Mode: mode, Zone: zone, SlabKG: slabKG}

	if sellerID != "" {
		if row, ok := s.overrides[sellerID][key]; ok {
			return &models.EffectiveTariff{Row: row, IsOverride: true}, true
		}
	}

	if row, ok := s.global[key]; ok {
		return &models.EffectiveTariff{Row: row}, true
	}

	return nil, false
}

func (s *tariffService) RefreshNow(ctx context.Context) error {
	started := time.Now()

	globalRows, err := s.tariffRepo.ListGlobal(ctx)
	if err != nil {
		s.metrics.RecordTariffRefresh("failure", time.Since(started), 0, 0)
		return fmt.Errorf("%w: %v", models.ErrTariffStoreUnavailable, err)
	}

	overrideRows, err := s.tariffRepo.ListOverrides(ctx)
	if err != nil {
		s.metrics.RecordTariffRefresh("failure", time.Since(started), 0, 0)
		return fmt.Errorf("%w: %v", models.ErrTariffStoreUnavailable, err)
	}

	s.snapshot.Store(buildSnapshot(globalRows, overrideRows))

	duration := time.Since(started)
	s.metrics.RecordTariffRefresh("success", duration, len(globalRows), len(overrideRows))
	s.logger.LogTariffRefresh(len(globalRows), len(overrideRows), duration)

	return nil
}

func buildSnapshot(globalRows, overrideRows []*models.TariffRow) *tariffSnapshot {
	snapshot := &tariffSnapshot{
		global:    make(map[models.TariffKey]*models.TariffRow, len(globalRows)),
		overrides: make(map[string]map[models.TariffKey]*models.TariffRow),
		loadedAt:  time.Now(),
	}

	for _, row := range globalRows {
		snapshot.global[row.Key()] = row
	}

	for _, row := range overrideRows {
		if row.SellerID == "" {
			continue
		}
		seller := snapshot.overrides[row.SellerID]
		if seller == nil {
			seller = make(map[models.TariffKey]*models.TariffRow)
			snapshot.overrides[row.SellerID] = seller
		}
		seller[row.Key()] = row
	}

	return snapshot
}

// Start launches the periodic snapshot refresh. The loop ends when ctx is
// cancelled or Stop is called.
func (s *tariffService) Start(ctx context.Context) {
	if s.interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case <-ticker.C:
				if err := s.RefreshNow(ctx); err != nil {
					s.logger.WithError(err).Error("Tariff snapshot refresh failed")
				}
			}
		}
	}()
}

func (s *tariffService) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *tariffService) SnapshotInfo() SnapshotInfo {
	snapshot := s.snapshot.Load()
	if snapshot == nil {
		return SnapshotInfo{}
	}

	overrides := 0
	for _, rows := range snapshot.overrides {
		overrides += len(rows)
	}

	return SnapshotInfo{
		GlobalRows:   len(snapshot.global),
		OverrideRows: overrides,
		LoadedAt:     snapshot.loadedAt,
	}
}

func (s *tariffService) ListRateCards(ctx context.Context, filter *interfaces.TariffFilter, params *utils.PaginationParams) ([]*models.TariffRow, int64, error) {
	return s.tariffRepo.List(ctx, filter, params)
}

func (s *tariffService) GetRateCard(ctx context.Context, id string) (*models.TariffRow, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NewInvalidRequestError("id", "invalid rate card id")
	}

	return s.tariffRepo.GetByID(ctx, objectID)
}

func (s *tariffService) UpsertRateCard(ctx context.Context, row *models.TariffRow) error {
	if err := s.tariffRepo.Upsert(ctx, row); err != nil {
		return fmt.Errorf("failed to upsert rate card: %w", err)
	}

	// Changed rows become visible on the next snapshot swap.
	if err := s.RefreshNow(ctx); err != nil {
		s.logger.WithError(err).Error("Tariff snapshot refresh after upsert failed")
	}

	return nil
}

func (s *tariffService) DeleteRateCard(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NewInvalidRequestError("id", "invalid rate card id")
	}

	if err := s.tariffRepo.Delete(ctx, objectID); err != nil {
		return err
	}

	if err := s.RefreshNow(ctx); err != nil {
		s.logger.WithError(err).Error("Tariff snapshot refresh after delete failed")
	}

	return nil
}
