package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
)

func TestCourierService_GetCourierResolvesNames(t *testing.T) {
	repo := newFakeCourierRepo(testCourier(models.CourierBlueDart, models.AllServiceModes, true))
	svc := NewCourierService(repo, newTestLogger())

	for _, name := range []string{"BLUEDART", "bluedart", "Blue Dart", "blue-dart"} {
		courier, err := svc.GetCourier(context.Background(), name)
		if err != nil {
			t.Fatalf("GetCourier(%q) error = %v", name, err)
		}
		if courier.Code != models.CourierBlueDart {
			t.Errorf("GetCourier(%q) = %s, want %s", name, courier.Code, models.CourierBlueDart)
		}
	}

	_, err := svc.GetCourier(context.Background(), "speedpost")
	if !models.IsInvalidRequest(err) {
		t.Errorf("GetCourier(speedpost) error = %v, want invalid request", err)
	}
}

func TestCourierService_UpsertCourierDefaults(t *testing.T) {
	repo := newFakeCourierRepo()
	svc := NewCourierService(repo, newTestLogger())

	if err := svc.UpsertCourier(context.Background(), &models.Courier{Code: models.CourierDTDC}); err != nil {
		t.Fatalf("UpsertCourier() error = %v", err)
	}

	stored, err := repo.GetByCode(context.Background(), models.CourierDTDC)
	if err != nil {
		t.Fatalf("GetByCode() error = %v", err)
	}
	if stored.Name != "DTDC" {
		t.Errorf("name defaulted to %q, want DTDC", stored.Name)
	}
	if len(stored.SupportedModes) != len(models.AllServiceModes) {
		t.Errorf("modes defaulted to %v, want all modes", stored.SupportedModes)
	}
}

func TestCourierService_UpsertCourierValidation(t *testing.T) {
	svc := NewCourierService(newFakeCourierRepo(), newTestLogger())

	tests := []struct {
		name      string
		courier   *models.Courier
		wantField string
	}{
		{"unknown code", &models.Courier{Code: "SPEEDPOST"}, "code"},
		{"unknown mode", &models.Courier{Code: models.CourierDTDC, SupportedModes: []models.ServiceMode{"rail"}}, "supported_modes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.UpsertCourier(context.Background(), tt.courier)
			var invalid *models.InvalidRequestError
			if !errors.As(err, &invalid) {
				t.Fatalf("UpsertCourier() error = %v, want InvalidRequestError", err)
			}
			if invalid.Field != tt.wantField {
				t.Errorf("UpsertCourier() rejected field %q, want %q", invalid.Field, tt.wantField)
			}
		})
	}
}

func TestCourierService_SetCourierActive(t *testing.T) {
	repo := newFakeCourierRepo(testCourier(models.CourierEcomExpress, models.AllServiceModes, false))
	svc := NewCourierService(repo, newTestLogger())

	if err := svc.SetCourierActive(context.Background(), "Ecom Express", false); err != nil {
		t.Fatalf("SetCourierActive() error = %v", err)
	}

	stored, err := repo.GetByCode(context.Background(), models.CourierEcomExpress)
	if err != nil {
		t.Fatalf("GetByCode() error = %v", err)
	}
	if stored.IsActive {
		t.Error("courier still active after deactivation")
	}

	if err := svc.SetCourierActive(context.Background(), "speedpost", true); !models.IsInvalidRequest(err) {
		t.Errorf("SetCourierActive(speedpost) error = %v, want invalid request", err)
	}
}

// fakeCourierRepo is an in-memory CourierRepository.
type fakeCourierRepo struct {
	mu       sync.Mutex
	couriers map[models.CourierCode]*models.Courier
	err      error
}

func newFakeCourierRepo(couriers ...*models.Courier) *fakeCourierRepo {
	repo := &fakeCourierRepo{couriers: make(map[models.CourierCode]*models.Courier)}
	for _, courier := range couriers {
		repo.couriers[courier.Code] = courier
	}
	return repo
}

func (f *fakeCourierRepo) List(_ context.Context) ([]*models.Courier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	couriers := make([]*models.Courier, 0, len(f.couriers))
	for _, courier := range f.couriers {
		couriers = append(couriers, courier)
	}
	sort.Slice(couriers, func(i, j int) bool { return couriers[i].Code < couriers[j].Code })
	return couriers, nil
}

func (f *fakeCourierRepo) ListActive(ctx context.Context) ([]*models.Courier, error) {
	all, err := f.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]*models.Courier, 0, len(all))
	for _, courier := range all {
		if courier.IsActive {
			active = append(active, courier)
		}
	}
	return active, nil
}

func (f *fakeCourierRepo) GetByCode(_ context.Context, code models.CourierCode) (*models.Courier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	courier, ok := f.couriers[code]
	if !ok {
		return nil, errors.New("courier not found")
	}
	return courier, nil
}

func (f *fakeCourierRepo) Upsert(_ context.Context, courier *models.Courier) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.couriers[courier.Code] = courier
	return nil
}

func (f *fakeCourierRepo) SetActive(_ context.Context, code models.CourierCode, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	courier, ok := f.couriers[code]
	if !ok {
		return errors.New("courier not found")
	}
	courier.IsActive = active
	return nil
}
