package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/config"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/logger"
)

func TestZoneService_Classify(t *testing.T) {
	repo := &fakePincodeRepo{records: testPincodeDirectory()}
	svc := NewZoneService(newTestConfig(), repo, newTestLogger())

	tests := []struct {
		name     string
		pickup   string
		delivery string
		wantZone models.Zone
		wantRule string
	}{
		{"same district and state is within city", "400001", "400050", models.ZoneWithinCity, "within_city"},
		{"same state beats metro to metro", "400001", "411001", models.ZoneWithinState, "within_state"},
		{"metro pair across states", "400001", "560001", models.ZoneMetro, "metro_to_metro"},
		{"special destination beats every other relationship", "400001", "190001", models.ZoneSpecial, "special_destination"},
		{"special destination beats within city", "190001", "190001", models.ZoneSpecial, "special_destination"},
		{"unrelated lane falls through to rest of india", "302001", "682001", models.ZoneRestOfIndia, "rest_of_india"},
		{"empty districts never match within city", "800001", "800002", models.ZoneWithinState, "within_state"},
		{"same region prices as rest of india when tier disabled", "302001", "226001", models.ZoneRestOfIndia, "rest_of_india"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Classify(context.Background(), tt.pickup, tt.delivery)
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if got.Zone != tt.wantZone {
				t.Errorf("Classify() zone = %s, want %s", got.Zone, tt.wantZone)
			}
			if got.Rule != tt.wantRule {
				t.Errorf("Classify() rule = %s, want %s", got.Rule, tt.wantRule)
			}
			if got.Defaulted {
				t.Error("Classify() flagged a fully resolved lane as defaulted")
			}
		})
	}
}

func TestZoneService_RegionTierEnabled(t *testing.T) {
	cfg := newTestConfig()
	cfg.Engine.EnableRegionTier = true

	repo := &fakePincodeRepo{records: testPincodeDirectory()}
	svc := NewZoneService(cfg, repo, newTestLogger())

	// Jaipur and Lucknow share the north region but nothing closer.
	got, err := svc.Classify(context.Background(), "302001", "226001")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if got.Zone != models.ZoneWithinRegion {
		t.Errorf("Classify() zone = %s, want %s", got.Zone, models.ZoneWithinRegion)
	}
	if got.Rule != "within_region" {
		t.Errorf("Classify() rule = %s, want within_region", got.Rule)
	}

	// Cross-region lanes still fall through.
	got, err = svc.Classify(context.Background(), "302001", "682001")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if got.Zone != models.ZoneRestOfIndia {
		t.Errorf("Classify() zone = %s, want %s", got.Zone, models.ZoneRestOfIndia)
	}
}

func TestZoneService_UnknownPincodeDefaults(t *testing.T) {
	repo := &fakePincodeRepo{records: testPincodeDirectory()}
	svc := NewZoneService(newTestConfig(), repo, newTestLogger())

	got, err := svc.Classify(context.Background(), "400001", "999999")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if got.Zone != models.ZoneRestOfIndia {
		t.Errorf("Classify() zone = %s, want %s", got.Zone, models.ZoneRestOfIndia)
	}
	if !got.Defaulted {
		t.Error("Classify() did not flag the defaulted lane")
	}
	if got.Rule != "default" {
		t.Errorf("Classify() rule = %s, want default", got.Rule)
	}
}

func TestZoneService_StoreErrorIsInfrastructure(t *testing.T) {
	repo := &fakePincodeRepo{err: errors.New("connection reset")}
	svc := NewZoneService(newTestConfig(), repo, newTestLogger())

	_, err := svc.Classify(context.Background(), "400001", "560001")
	if err == nil {
		t.Fatal("Classify() expected an error when the directory store is down")
	}
	if !models.IsInfrastructure(err) {
		t.Errorf("Classify() error %v is not classified as infrastructure", err)
	}
}

func TestZoneService_Deterministic(t *testing.T) {
	repo := &fakePincodeRepo{records: testPincodeDirectory()}
	svc := NewZoneService(newTestConfig(), repo, newTestLogger())

	for i := 0; i < 25; i++ {
		got, err := svc.Classify(context.Background(), "400001", "560001")
		if err != nil {
			t.Fatalf("Classify() error = %v", err)
		}
		if got.Zone != models.ZoneMetro || got.Rule != "metro_to_metro" {
			t.Fatalf("Classify() run %d = %s/%s, want metro_to_metro", i, got.Zone, got.Rule)
		}
	}
}

// Helpers shared across the service tests.

func newTestConfig() *config.Config {
	return &config.Config{
		Engine: &config.EngineConfig{
			GSTRate:           0.18,
			WeightSlabsKG:     []float64{0.5, 1.0, 2.0, 3.0, 5.0, 10.0},
			VolumetricDivisor: 5000,
			ProbeTimeout:      200 * time.Millisecond,
			ProbeCacheTTL:     time.Minute,
			MaxWeightKG:       100,
			MaxDimensionCM:    300,
		},
	}
}

func newTestLogger() *logger.Logger {
	l, _ := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stderr"})
	return l
}

func testPincodeDirectory() map[string]*models.PincodeRecord {
	return map[string]*models.PincodeRecord{
		"400001": {Pincode: "400001", City: "Mumbai", District: "Mumbai", State: "Maharashtra"},
		"400050": {Pincode: "400050", City: "Mumbai", District: "Mumbai", State: "Maharashtra"},
		"411001": {Pincode: "411001", City: "Pune", District: "Pune", State: "Maharashtra"},
		"560001": {Pincode: "560001", City: "Bengaluru", District: "Bengaluru Urban", State: "Karnataka"},
		"302001": {Pincode: "302001", City: "Jaipur", District: "Jaipur", State: "Rajasthan"},
		"226001": {Pincode: "226001", City: "Lucknow", District: "Lucknow", State: "Uttar Pradesh"},
		"190001": {Pincode: "190001", City: "Srinagar", District: "Srinagar", State: "Jammu and Kashmir"},
		"682001": {Pincode: "682001", City: "Kochi", District: "Ernakulam", State: "Kerala"},
		"800001": {Pincode: "800001", City: "Patna", State: "Bihar"},
		"800002": {Pincode: "800002", City: "Patna", State: "Bihar"},
	}
}

// fakePincodeRepo is an in-memory PincodeRepository.
type fakePincodeRepo struct {
	records map[string]*models.PincodeRecord
	err     error
}

func (f *fakePincodeRepo) GetByPincode(_ context.Context, pincode string) (*models.PincodeRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records[pincode], nil
}

func (f *fakePincodeRepo) Upsert(_ context.Context, record *models.PincodeRecord) error {
	if f.err != nil {
		return f.err
	}
	if f.records == nil {
		f.records = make(map[string]*models.PincodeRecord)
	}
	f.records[record.Pincode] = record
	return nil
}

func (f *fakePincodeRepo) BulkUpsert(_ context.Context, records []*models.PincodeRecord) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.records == nil {
		f.records = make(map[string]*models.PincodeRecord)
	}
	for _, record := range records {
		f.records[record.Pincode] = record
	}
	return len(records), nil
}

func (f *fakePincodeRepo) Count(_ context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.records)), nil
}
