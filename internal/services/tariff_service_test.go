package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/repositories/interfaces"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/utils"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/metrics"
)

func TestTariffService_SellerOverrideReplacesGlobal(t *testing.T) {
	repo := &fakeTariffRepo{
		global:    []*models.TariffRow{globalRow(models.CourierDelhivery, models.ModeSurface, models.ZoneRestOfIndia, 1.0, 50)},
		overrides: []*models.TariffRow{sellerRow("seller-42", models.CourierDelhivery, models.ModeSurface, models.ZoneRestOfIndia, 1.0, 30)},
	}
	svc := newTestTariffService(repo)

	if err := svc.RefreshNow(context.Background()); err != nil {
		t.Fatalf("RefreshNow() error = %v", err)
	}

	tariff, ok := svc.Resolve(models.CourierDelhivery, models.ModeSurface, models.ZoneRestOfIndia, 1.0, "seller-42")
	if !ok {
		t.Fatal("Resolve() found no row for the overridden seller")
	}
	if tariff.Row.BaseRate != 30 {
		t.Errorf("override base rate = %v, want 30", tariff.Row.BaseRate)
	}
	if !tariff.IsOverride {
		t.Error("Resolve() did not flag the seller override")
	}

	tariff, ok = svc.Resolve(models.CourierDelhivery, models.ModeSurface, models.ZoneRestOfIndia, 1.0, "seller-7")
	if !ok {
		t.Fatal("Resolve() found no row for a seller without overrides")
	}
	if tariff.Row.BaseRate != 50 {
		t.Errorf("global base rate = %v, want 50", tariff.Row.BaseRate)
	}
	if tariff.IsOverride {
		t.Error("Resolve() flagged the global row as an override")
	}

	tariff, ok = svc.Resolve(models.CourierDelhivery, models.ModeSurface, models.ZoneRestOfIndia, 1.0, "")
	if !ok || tariff.Row.BaseRate != 50 {
		t.Error("Resolve() did not serve the global row to anonymous callers")
	}
}

func TestTariffService_ResolveMissingCell(t *testing.T) {
	repo := &fakeTariffRepo{
		global: []*models.TariffRow{globalRow(models.CourierDelhivery, models.ModeSurface, models.ZoneRestOfIndia, 1.0, 50)},
	}
	svc := newTestTariffService(repo)

	// No snapshot loaded yet.
	if _, ok := svc.Resolve(models.CourierDelhivery, models.ModeSurface, models.ZoneRestOfIndia, 1.0, ""); ok {
		t.Error("Resolve() served a row before any snapshot was loaded")
	}

	if err := svc.RefreshNow(context.Background()); err != nil {
		t.Fatalf("RefreshNow() error = %v", err)
	}

	if _, ok := svc.Resolve(models.CourierDelhivery, models.ModeSurface, models.ZoneWithinCity, 1.0, ""); ok {
		t.Error("Resolve() served a row for an unconfigured zone")
	}
	if _, ok := svc.Resolve(models.CourierBlueDart, models.ModeSurface, models.ZoneRestOfIndia, 1.0, ""); ok {
		t.Error("Resolve() served a row for an unconfigured courier")
	}
}

func TestTariffService_RefreshFailureKeepsLastSnapshot(t *testing.T) {
	repo := &fakeTariffRepo{
		global: []*models.TariffRow{globalRow(models.CourierDelhivery, models.ModeSurface, models.ZoneRestOfIndia, 1.0, 50)},
	}
	svc := newTestTariffService(repo)

	if err := svc.RefreshNow(context.Background()); err != nil {
		t.Fatalf("RefreshNow() error = %v", err)
	}

	repo.setErr(errors.New("primary down"))

	err := svc.RefreshNow(context.Background())
	if err == nil {
		t.Fatal("RefreshNow() expected an error when the store is down")
	}
	if !models.IsInfrastructure(err) {
		t.Errorf("RefreshNow() error %v is not classified as infrastructure", err)
	}

	// The last good snapshot keeps serving.
	tariff, ok := svc.Resolve(models.CourierDelhivery, models.ModeSurface, models.ZoneRestOfIndia, 1.0, "")
	if !ok || tariff.Row.BaseRate != 50 {
		t.Fatal("Resolve() lost the last good snapshot after a failed refresh")
	}

	// Recovery swaps in fresh rows.
	repo.setErr(nil)
	repo.setGlobal(globalRow(models.CourierDelhivery, models.ModeSurface, models.ZoneRestOfIndia, 1.0, 60))

	if err := svc.RefreshNow(context.Background()); err != nil {
		t.Fatalf("RefreshNow() after recovery error = %v", err)
	}
	tariff, ok = svc.Resolve(models.CourierDelhivery, models.ModeSurface, models.ZoneRestOfIndia, 1.0, "")
	if !ok || tariff.Row.BaseRate != 60 {
		t.Fatal("Resolve() did not pick up the recovered snapshot")
	}
}

func TestTariffService_ConcurrentResolveDuringRefresh(t *testing.T) {
	repo := &fakeTariffRepo{
		global: []*models.TariffRow{globalRow(models.CourierDelhivery, models.ModeSurface, models.ZoneRestOfIndia, 1.0, 50)},
	}
	svc := newTestTariffService(repo)

	if err := svc.RefreshNow(context.Background()); err != nil {
		t.Fatalf("RefreshNow() error = %v", err)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				tariff, ok := svc.Resolve(models.CourierDelhivery, models.ModeSurface, models.ZoneRestOfIndia, 1.0, "")
				if !ok {
					t.Error("Resolve() lost the snapshot mid-refresh")
					return
				}
				if rate := tariff.Row.BaseRate; rate != 50 && rate != 60 {
					t.Errorf("Resolve() observed a torn snapshot, base rate = %v", rate)
					return
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		rate := 50.0
		if i%2 == 1 {
			rate = 60.0
		}
		repo.setGlobal(globalRow(models.CourierDelhivery, models.ModeSurface, models.ZoneRestOfIndia, 1.0, rate))
		if err := svc.RefreshNow(context.Background()); err != nil {
			t.Fatalf("RefreshNow() error = %v", err)
		}
	}

	close(done)
	wg.Wait()
}

func TestTariffService_SnapshotInfo(t *testing.T) {
	repo := &fakeTariffRepo{
		global: []*models.TariffRow{
			globalRow(models.CourierDelhivery, models.ModeSurface, models.ZoneRestOfIndia, 1.0, 50),
			globalRow(models.CourierBlueDart, models.ModeSurface, models.ZoneRestOfIndia, 1.0, 55),
		},
		overrides: []*models.TariffRow{
			sellerRow("seller-42", models.CourierDelhivery, models.ModeSurface, models.ZoneRestOfIndia, 1.0, 30),
			// A seller row without a seller id cannot be keyed and is dropped.
			sellerRow("", models.CourierBlueDart, models.ModeSurface, models.ZoneRestOfIndia, 1.0, 31),
		},
	}
	svc := newTestTariffService(repo)

	if info := svc.SnapshotInfo(); info.GlobalRows != 0 || !info.LoadedAt.IsZero() {
		t.Errorf("SnapshotInfo() before refresh = %+v, want zero value", info)
	}

	if err := svc.RefreshNow(context.Background()); err != nil {
		t.Fatalf("RefreshNow() error = %v", err)
	}

	info := svc.SnapshotInfo()
	if info.GlobalRows != 2 {
		t.Errorf("SnapshotInfo() global rows = %d, want 2", info.GlobalRows)
	}
	if info.OverrideRows != 1 {
		t.Errorf("SnapshotInfo() override rows = %d, want 1", info.OverrideRows)
	}
	if info.LoadedAt.IsZero() {
		t.Error("SnapshotInfo() loaded at is zero")
	}
}

func TestTariffService_UpsertRefreshesSnapshot(t *testing.T) {
	repo := &fakeTariffRepo{}
	svc := newTestTariffService(repo)

	row := globalRow(models.CourierXpressbees, models.ModeAir, models.ZoneMetro, 0.5, 42)
	if err := svc.UpsertRateCard(context.Background(), row); err != nil {
		t.Fatalf("UpsertRateCard() error = %v", err)
	}

	tariff, ok := svc.Resolve(models.CourierXpressbees, models.ModeAir, models.ZoneMetro, 0.5, "")
	if !ok {
		t.Fatal("Resolve() does not see the upserted row")
	}
	if tariff.Row.BaseRate != 42 {
		t.Errorf("base rate = %v, want 42", tariff.Row.BaseRate)
	}
}

func TestTariffService_RateCardIDValidation(t *testing.T) {
	svc := newTestTariffService(&fakeTariffRepo{})

	if _, err := svc.GetRateCard(context.Background(), "not-an-id"); !models.IsInvalidRequest(err) {
		t.Errorf("GetRateCard() error = %v, want invalid request", err)
	}
	if err := svc.DeleteRateCard(context.Background(), "not-an-id"); !models.IsInvalidRequest(err) {
		t.Errorf("DeleteRateCard() error = %v, want invalid request", err)
	}
}

// Helpers.

func newTestTariffService(repo interfaces.TariffRepository) TariffService {
	return NewTariffService(repo, newTestLogger(), metrics.NewMetrics(), 0)
}

func globalRow(courier models.CourierCode, mode models.ServiceMode, zone models.Zone, slabKG, baseRate float64) *models.TariffRow {
	return &models.TariffRow{
		ID:             primitive.NewObjectID(),
		Courier:        courier,
		Mode:           mode,
		Zone:           zone,
		SlabKG:         slabKG,
		Scope:          models.TariffScopeGlobal,
		BaseRate:       baseRate,
		AdditionalRate: 10,
	}
}

func sellerRow(sellerID string, courier models.CourierCode, mode models.ServiceMode, zone models.Zone, slabKG, baseRate float64) *models.TariffRow {
	row := globalRow(courier, mode, zone, slabKG, baseRate)
	row.Scope = models.TariffScopeSeller
	row.SellerID = sellerID
	return row
}

// fakeTariffRepo is an in-memory TariffRepository.
type fakeTariffRepo struct {
	mu        sync.Mutex
	global    []*models.TariffRow
	overrides []*models.TariffRow
	err       error
}

func (f *fakeTariffRepo) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeTariffRepo) setGlobal(rows ...*models.TariffRow) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.global = rows
}

func (f *fakeTariffRepo) ListGlobal(_ context.Context) ([]*models.TariffRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]*models.TariffRow(nil), f.global...), nil
}

func (f *fakeTariffRepo) ListOverrides(_ context.Context) ([]*models.TariffRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]*models.TariffRow(nil), f.overrides...), nil
}

func (f *fakeTariffRepo) List(_ context.Context, _ *interfaces.TariffFilter, _ *utils.PaginationParams) ([]*models.TariffRow, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, 0, f.err
	}
	rows := append([]*models.TariffRow(nil), f.global...)
	rows = append(rows, f.overrides...)
	return rows, int64(len(rows)), nil
}

func (f *fakeTariffRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.TariffRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, row := range append(append([]*models.TariffRow(nil), f.global...), f.overrides...) {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, errors.New("rate card not found")
}

func (f *fakeTariffRepo) Upsert(_ context.Context, row *models.TariffRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if row.Scope == models.TariffScopeSeller {
		f.overrides = append(f.overrides, row)
	} else {
		f.global = append(f.global, row)
	}
	return nil
}

func (f *fakeTariffRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	keep := f.global[:0]
	for _, row := range f.global {
		if row.ID != id {
			keep = append(keep, row)
		}
	}
	f.global = keep
	return nil
}
