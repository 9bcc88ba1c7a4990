package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/metrics"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/partners"
)

func TestRateService_ComputeRates(t *testing.T) {
	couriers := []*models.Courier{
		testCourier(models.CourierDelhivery, []models.ServiceMode{models.ModeSurface}, true),
		testCourier(models.CourierBlueDart, []models.ServiceMode{models.ModeSurface}, true),
	}
	global := []*models.TariffRow{
		globalRow(models.CourierDelhivery, models.ModeSurface, models.ZoneWithinCity, 1.0, 50),
		globalRow(models.CourierBlueDart, models.ModeSurface, models.ZoneWithinCity, 1.0, 45),
	}
	svc := newTestRateService(t, nil, couriers, global, nil,
		&fakeAdapter{code: "DELHIVERY"},
		&fakeAdapter{code: "BLUEDART"},
	)

	request := &models.ShipmentRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "400050",
		WeightKG:        0.6,
		Dimensions:      models.Dimensions{LengthCM: 10, WidthCM: 10, HeightCM: 10},
		PaymentMode:     models.PaymentPrepaid,
		Modes:           []models.ServiceMode{models.ModeSurface},
	}

	result, err := svc.ComputeRates(context.Background(), request)
	if err != nil {
		t.Fatalf("ComputeRates() error = %v", err)
	}

	if len(result.Quotes) != 2 {
		t.Fatalf("ComputeRates() returned %d quotes, want 2", len(result.Quotes))
	}

	// Cheapest first: Blue Dart at 45*1.18 beats Delhivery at 50*1.18.
	if result.Quotes[0].Courier != models.CourierBlueDart || result.Quotes[0].Breakdown.Total != 53.1 {
		t.Errorf("first quote = %s at %v, want BLUEDART at 53.1", result.Quotes[0].Courier, result.Quotes[0].Breakdown.Total)
	}
	if result.Quotes[1].Courier != models.CourierDelhivery || result.Quotes[1].Breakdown.Total != 59 {
		t.Errorf("second quote = %s at %v, want DELHIVERY at 59", result.Quotes[1].Courier, result.Quotes[1].Breakdown.Total)
	}

	for _, quote := range result.Quotes {
		if quote.Zone != models.ZoneWithinCity {
			t.Errorf("quote zone = %s, want %s", quote.Zone, models.ZoneWithinCity)
		}
		if quote.ChargeableWeightKG != 0.6 {
			t.Errorf("quote chargeable weight = %v, want 0.6", quote.ChargeableWeightKG)
		}
		if quote.SlabKG != 1.0 {
			t.Errorf("quote slab = %v, want 1.0", quote.SlabKG)
		}
	}

	if result.Summary.TotalQuotes != 2 {
		t.Errorf("summary total = %d, want 2", result.Summary.TotalQuotes)
	}
	if result.Summary.CheapestAmount != 53.1 {
		t.Errorf("summary cheapest amount = %v, want 53.1", result.Summary.CheapestAmount)
	}
	if result.Summary.Cheapest == nil || result.Summary.Cheapest.Courier != models.CourierBlueDart {
		t.Error("summary cheapest is not the Blue Dart quote")
	}
	if len(result.ByMode[models.ModeSurface]) != 2 {
		t.Errorf("by-mode surface count = %d, want 2", len(result.ByMode[models.ModeSurface]))
	}

	diag := result.Diagnostics
	if diag.Zone != models.ZoneWithinCity || diag.ZoneDefaulted {
		t.Errorf("diagnostics zone = %s defaulted=%v, want within_city without default", diag.Zone, diag.ZoneDefaulted)
	}
	if diag.VolumetricWeightKG != 0.5 {
		t.Errorf("diagnostics volumetric = %v, want 0.5", diag.VolumetricWeightKG)
	}
	if diag.ChargeableWeightKG != 0.6 {
		t.Errorf("diagnostics chargeable = %v, want 0.6", diag.ChargeableWeightKG)
	}
	if diag.CouriersChecked != 2 {
		t.Errorf("diagnostics couriers checked = %d, want 2", diag.CouriersChecked)
	}
	if len(diag.Serviceability) != 2 {
		t.Errorf("diagnostics carry %d probe results, want 2", len(diag.Serviceability))
	}
	if len(diag.Excluded) != 0 {
		t.Errorf("diagnostics carry %d exclusions, want 0", len(diag.Excluded))
	}
}

func TestRateService_GroupsAndSummarizesByMode(t *testing.T) {
	couriers := []*models.Courier{
		testCourier(models.CourierDelhivery, models.AllServiceModes, true),
	}
	surface := globalRow(models.CourierDelhivery, models.ModeSurface, models.ZoneWithinCity, 1.0, 50)
	surface.EstimatedDays = 4
	air := globalRow(models.CourierDelhivery, models.ModeAir, models.ZoneWithinCity, 1.0, 90)
	air.EstimatedDays = 2

	svc := newTestRateService(t, nil, couriers, []*models.TariffRow{surface, air}, nil,
		&fakeAdapter{code: "DELHIVERY"},
	)

	request := &models.ShipmentRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "400050",
		WeightKG:        0.6,
		Dimensions:      models.Dimensions{LengthCM: 10, WidthCM: 10, HeightCM: 10},
		PaymentMode:     models.PaymentPrepaid,
	}

	result, err := svc.ComputeRates(context.Background(), request)
	if err != nil {
		t.Fatalf("ComputeRates() error = %v", err)
	}

	if len(result.Quotes) != 2 {
		t.Fatalf("ComputeRates() returned %d quotes, want 2", len(result.Quotes))
	}
	if result.Quotes[0].Mode != models.ModeSurface {
		t.Errorf("first quote mode = %s, want the cheaper surface option", result.Quotes[0].Mode)
	}

	if result.Summary.CountByMode[models.ModeSurface] != 1 || result.Summary.CountByMode[models.ModeAir] != 1 {
		t.Errorf("count by mode = %v, want one quote per mode", result.Summary.CountByMode)
	}
	if cheapestAir := result.Summary.CheapestByMode[models.ModeAir]; cheapestAir == nil || cheapestAir.Breakdown.Total != 106.2 {
		t.Errorf("cheapest air = %+v, want total 106.2", cheapestAir)
	}
	if result.Summary.Fastest == nil || result.Summary.Fastest.Mode != models.ModeAir {
		t.Fatal("summary fastest is not the two-day air quote")
	}
	if result.Summary.FastestLabel != "2-day delivery by Delhivery Air" {
		t.Errorf("fastest label = %q", result.Summary.FastestLabel)
	}
}

func TestRateService_EqualTotalsOrderByCourierName(t *testing.T) {
	couriers := []*models.Courier{
		testCourier(models.CourierDelhivery, []models.ServiceMode{models.ModeSurface}, true),
		testCourier(models.CourierBlueDart, []models.ServiceMode{models.ModeSurface}, true),
	}
	global := []*models.TariffRow{
		globalRow(models.CourierDelhivery, models.ModeSurface, models.ZoneWithinCity, 1.0, 50),
		globalRow(models.CourierBlueDart, models.ModeSurface, models.ZoneWithinCity, 1.0, 50),
	}
	svc := newTestRateService(t, nil, couriers, global, nil,
		&fakeAdapter{code: "DELHIVERY"},
		&fakeAdapter{code: "BLUEDART"},
	)

	request := &models.ShipmentRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "400050",
		WeightKG:        1.0,
		PaymentMode:     models.PaymentPrepaid,
		Modes:           []models.ServiceMode{models.ModeSurface},
	}

	result, err := svc.ComputeRates(context.Background(), request)
	if err != nil {
		t.Fatalf("ComputeRates() error = %v", err)
	}
	if len(result.Quotes) != 2 {
		t.Fatalf("ComputeRates() returned %d quotes, want 2", len(result.Quotes))
	}
	if result.Quotes[0].CourierName != "Blue Dart" {
		t.Errorf("first quote = %q, want Blue Dart on the name tiebreak", result.Quotes[0].CourierName)
	}
}

func TestRateService_SlowPartnerBecomesDiagnostic(t *testing.T) {
	slowCourier := testCourier(models.CourierDTDC, []models.ServiceMode{models.ModeSurface}, true)
	slowCourier.ProbeTimeoutMS = 50

	couriers := []*models.Courier{
		testCourier(models.CourierDelhivery, []models.ServiceMode{models.ModeSurface}, true),
		testCourier(models.CourierBlueDart, []models.ServiceMode{models.ModeSurface}, true),
		slowCourier,
	}
	global := []*models.TariffRow{
		globalRow(models.CourierDelhivery, models.ModeSurface, models.ZoneWithinCity, 1.0, 50),
		globalRow(models.CourierBlueDart, models.ModeSurface, models.ZoneWithinCity, 1.0, 45),
		globalRow(models.CourierDTDC, models.ModeSurface, models.ZoneWithinCity, 1.0, 40),
	}
	svc := newTestRateService(t, nil, couriers, global, nil,
		&fakeAdapter{code: "DELHIVERY"},
		&fakeAdapter{code: "BLUEDART"},
		&fakeAdapter{code: "DTDC", block: true},
	)

	request := &models.ShipmentRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "400050",
		WeightKG:        1.0,
		PaymentMode:     models.PaymentPrepaid,
		Modes:           []models.ServiceMode{models.ModeSurface},
	}

	result, err := svc.ComputeRates(context.Background(), request)
	if err != nil {
		t.Fatalf("ComputeRates() error = %v", err)
	}

	if len(result.Quotes) != 2 {
		t.Fatalf("ComputeRates() returned %d quotes, want 2 surviving the timeout", len(result.Quotes))
	}
	for _, quote := range result.Quotes {
		if quote.Courier == models.CourierDTDC {
			t.Error("timed out courier still produced a quote")
		}
	}

	if len(result.Diagnostics.Excluded) != 1 {
		t.Fatalf("diagnostics carry %d exclusions, want 1", len(result.Diagnostics.Excluded))
	}
	exclusion := result.Diagnostics.Excluded[0]
	if exclusion.Courier != models.CourierDTDC || exclusion.Reason != models.ReasonProbeTimeout {
		t.Errorf("exclusion = %+v, want DTDC probe timeout", exclusion)
	}
	if len(result.Diagnostics.Serviceability) != 3 {
		t.Errorf("diagnostics carry %d probe results, want 3", len(result.Diagnostics.Serviceability))
	}
}

func TestRateService_NoTariffIsEmptyResultNotError(t *testing.T) {
	couriers := []*models.Courier{
		testCourier(models.CourierDelhivery, []models.ServiceMode{models.ModeSurface}, true),
	}
	svc := newTestRateService(t, nil, couriers, nil, nil,
		&fakeAdapter{code: "DELHIVERY"},
	)

	request := &models.ShipmentRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "400050",
		WeightKG:        1.0,
		PaymentMode:     models.PaymentPrepaid,
		Modes:           []models.ServiceMode{models.ModeSurface},
	}

	result, err := svc.ComputeRates(context.Background(), request)
	if err != nil {
		t.Fatalf("ComputeRates() error = %v, want empty result without error", err)
	}

	if len(result.Quotes) != 0 {
		t.Fatalf("ComputeRates() returned %d quotes, want 0", len(result.Quotes))
	}
	if result.Summary.TotalQuotes != 0 || result.Summary.Cheapest != nil {
		t.Errorf("summary = %+v, want empty", result.Summary)
	}
	if len(result.Diagnostics.Excluded) != 1 {
		t.Fatalf("diagnostics carry %d exclusions, want 1", len(result.Diagnostics.Excluded))
	}
	if reason := result.Diagnostics.Excluded[0].Reason; reason != models.ReasonNoTariff {
		t.Errorf("exclusion reason = %q, want %q", reason, models.ReasonNoTariff)
	}
}

func TestRateService_SellerOverridePricesTheQuote(t *testing.T) {
	couriers := []*models.Courier{
		testCourier(models.CourierDelhivery, []models.ServiceMode{models.ModeSurface}, true),
	}
	global := []*models.TariffRow{
		globalRow(models.CourierDelhivery, models.ModeSurface, models.ZoneWithinCity, 1.0, 50),
	}
	overrides := []*models.TariffRow{
		sellerRow("seller-42", models.CourierDelhivery, models.ModeSurface, models.ZoneWithinCity, 1.0, 30),
	}
	svc := newTestRateService(t, nil, couriers, global, overrides,
		&fakeAdapter{code: "DELHIVERY"},
	)

	request := &models.ShipmentRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "400050",
		WeightKG:        1.0,
		PaymentMode:     models.PaymentPrepaid,
		Modes:           []models.ServiceMode{models.ModeSurface},
		SellerID:        "seller-42",
	}

	result, err := svc.ComputeRates(context.Background(), request)
	if err != nil {
		t.Fatalf("ComputeRates() error = %v", err)
	}
	if len(result.Quotes) != 1 {
		t.Fatalf("ComputeRates() returned %d quotes, want 1", len(result.Quotes))
	}
	if total := result.Quotes[0].Breakdown.Total; total != 35.4 {
		t.Errorf("override total = %v, want 35.4", total)
	}
	if !result.Quotes[0].IsOverride {
		t.Error("quote does not carry the override flag")
	}

	// The same lane without a seller prices on the global card.
	request.SellerID = ""
	result, err = svc.ComputeRates(context.Background(), request)
	if err != nil {
		t.Fatalf("ComputeRates() error = %v", err)
	}
	if total := result.Quotes[0].Breakdown.Total; total != 59 {
		t.Errorf("global total = %v, want 59", total)
	}
	if result.Quotes[0].IsOverride {
		t.Error("global quote carries the override flag")
	}
}

func TestRateService_UnknownPincodeDefaultsToRestOfIndia(t *testing.T) {
	couriers := []*models.Courier{
		testCourier(models.CourierDelhivery, []models.ServiceMode{models.ModeSurface}, true),
	}
	global := []*models.TariffRow{
		globalRow(models.CourierDelhivery, models.ModeSurface, models.ZoneRestOfIndia, 1.0, 80),
	}
	svc := newTestRateService(t, nil, couriers, global, nil,
		&fakeAdapter{code: "DELHIVERY"},
	)

	request := &models.ShipmentRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "999999",
		WeightKG:        1.0,
		PaymentMode:     models.PaymentPrepaid,
		Modes:           []models.ServiceMode{models.ModeSurface},
	}

	result, err := svc.ComputeRates(context.Background(), request)
	if err != nil {
		t.Fatalf("ComputeRates() error = %v", err)
	}
	if !result.Diagnostics.ZoneDefaulted {
		t.Error("diagnostics do not flag the defaulted zone")
	}
	if result.Diagnostics.Zone != models.ZoneRestOfIndia {
		t.Errorf("diagnostics zone = %s, want %s", result.Diagnostics.Zone, models.ZoneRestOfIndia)
	}
	if len(result.Quotes) != 1 {
		t.Fatalf("ComputeRates() returned %d quotes, want 1 on the default zone", len(result.Quotes))
	}
}

func TestRateService_InvalidRequestRejected(t *testing.T) {
	svc := newTestRateService(t, nil, nil, nil, nil)

	request := &models.ShipmentRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "400050",
		WeightKG:        0,
		PaymentMode:     models.PaymentPrepaid,
	}

	if _, err := svc.ComputeRates(context.Background(), request); !models.IsInvalidRequest(err) {
		t.Errorf("ComputeRates() error = %v, want invalid request", err)
	}
}

func TestRateService_TariffStoreDownSinceBoot(t *testing.T) {
	cfg := newTestConfig()
	log := newTestLogger()
	m := metrics.NewMetrics()

	// Refresh has never succeeded, so no snapshot exists to price against.
	tariffService := NewTariffService(&fakeTariffRepo{err: errors.New("connection refused")}, log, m, 0)

	couriers := []*models.Courier{
		testCourier(models.CourierDelhivery, []models.ServiceMode{models.ModeSurface}, true),
	}
	svc := NewRateService(
		NewZoneService(cfg, &fakePincodeRepo{records: testPincodeDirectory()}, log),
		NewWeightService(cfg),
		tariffService,
		NewPricingService(cfg),
		NewServiceabilityService(cfg, testRegistry(t, &fakeAdapter{code: "DELHIVERY"}), nil, log, m),
		newFakeCourierRepo(couriers...),
		log,
		m,
	)

	request := &models.ShipmentRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "400050",
		WeightKG:        1.0,
		PaymentMode:     models.PaymentPrepaid,
		Modes:           []models.ServiceMode{models.ModeSurface},
	}

	_, err := svc.ComputeRates(context.Background(), request)
	if err == nil {
		t.Fatal("ComputeRates() returned a result with no rate card snapshot loaded")
	}
	if !errors.Is(err, models.ErrTariffStoreUnavailable) {
		t.Errorf("ComputeRates() error = %v, want %v", err, models.ErrTariffStoreUnavailable)
	}
	if !models.IsInfrastructure(err) {
		t.Errorf("ComputeRates() error %v is not classified as infrastructure", err)
	}
}

// pinnedTariffService answers Capture from a fixed resolver while its direct
// lookup path reads newer rows, mimicking a refresh landing mid-request.
type pinnedTariffService struct {
	TariffService
	resolver TariffResolver
}

func (p *pinnedTariffService) Capture() (TariffResolver, bool) {
	return p.resolver, true
}

func TestRateService_RequestPinsOneSnapshot(t *testing.T) {
	cfg := newTestConfig()
	log := newTestLogger()
	m := metrics.NewMetrics()

	before := NewTariffService(&fakeTariffRepo{global: []*models.TariffRow{
		globalRow(models.CourierDelhivery, models.ModeSurface, models.ZoneWithinCity, 1.0, 50),
	}}, log, m, 0)
	if err := before.RefreshNow(context.Background()); err != nil {
		t.Fatalf("RefreshNow() error = %v", err)
	}
	resolver, ok := before.Capture()
	if !ok {
		t.Fatal("Capture() found no snapshot")
	}

	after := NewTariffService(&fakeTariffRepo{global: []*models.TariffRow{
		globalRow(models.CourierDelhivery, models.ModeSurface, models.ZoneWithinCity, 1.0, 70),
	}}, log, m, 0)
	if err := after.RefreshNow(context.Background()); err != nil {
		t.Fatalf("RefreshNow() error = %v", err)
	}

	couriers := []*models.Courier{
		testCourier(models.CourierDelhivery, []models.ServiceMode{models.ModeSurface}, true),
	}
	svc := NewRateService(
		NewZoneService(cfg, &fakePincodeRepo{records: testPincodeDirectory()}, log),
		NewWeightService(cfg),
		&pinnedTariffService{TariffService: after, resolver: resolver},
		NewPricingService(cfg),
		NewServiceabilityService(cfg, testRegistry(t, &fakeAdapter{code: "DELHIVERY"}), nil, log, m),
		newFakeCourierRepo(couriers...),
		log,
		m,
	)

	request := &models.ShipmentRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "400050",
		WeightKG:        1.0,
		PaymentMode:     models.PaymentPrepaid,
		Modes:           []models.ServiceMode{models.ModeSurface},
	}

	result, err := svc.ComputeRates(context.Background(), request)
	if err != nil {
		t.Fatalf("ComputeRates() error = %v", err)
	}
	if len(result.Quotes) != 1 {
		t.Fatalf("ComputeRates() returned %d quotes, want 1", len(result.Quotes))
	}
	// Every cell prices on the snapshot captured at the start of the
	// request: 50*1.18, not the 70-rupee row loaded afterwards.
	if total := result.Quotes[0].Breakdown.Total; total != 59 {
		t.Errorf("total = %v, want 59 from the captured snapshot", total)
	}
}

func TestRateService_DirectoryOutageSurfaces(t *testing.T) {
	pincodeRepo := &fakePincodeRepo{err: errors.New("connection reset")}
	svc := newTestRateService(t, pincodeRepo, nil, nil, nil)

	request := &models.ShipmentRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "400050",
		WeightKG:        1.0,
		PaymentMode:     models.PaymentPrepaid,
	}

	_, err := svc.ComputeRates(context.Background(), request)
	if err == nil {
		t.Fatal("ComputeRates() expected an error when the directory store is down")
	}
	if !models.IsInfrastructure(err) {
		t.Errorf("ComputeRates() error %v is not classified as infrastructure", err)
	}
}

func TestRateService_InactiveCouriersAreSkipped(t *testing.T) {
	inactive := testCourier(models.CourierBlueDart, []models.ServiceMode{models.ModeSurface}, true)
	inactive.IsActive = false

	couriers := []*models.Courier{
		testCourier(models.CourierDelhivery, []models.ServiceMode{models.ModeSurface}, true),
		inactive,
	}
	global := []*models.TariffRow{
		globalRow(models.CourierDelhivery, models.ModeSurface, models.ZoneWithinCity, 1.0, 50),
		globalRow(models.CourierBlueDart, models.ModeSurface, models.ZoneWithinCity, 1.0, 45),
	}
	svc := newTestRateService(t, nil, couriers, global, nil,
		&fakeAdapter{code: "DELHIVERY"},
		&fakeAdapter{code: "BLUEDART"},
	)

	request := &models.ShipmentRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "400050",
		WeightKG:        1.0,
		PaymentMode:     models.PaymentPrepaid,
		Modes:           []models.ServiceMode{models.ModeSurface},
	}

	result, err := svc.ComputeRates(context.Background(), request)
	if err != nil {
		t.Fatalf("ComputeRates() error = %v", err)
	}
	if result.Diagnostics.CouriersChecked != 1 {
		t.Errorf("couriers checked = %d, want 1", result.Diagnostics.CouriersChecked)
	}
	if len(result.Quotes) != 1 || result.Quotes[0].Courier != models.CourierDelhivery {
		t.Errorf("quotes = %+v, want only the active courier", result.Quotes)
	}
}

func TestRateService_CODPricesEndToEnd(t *testing.T) {
	couriers := []*models.Courier{
		testCourier(models.CourierDelhivery, []models.ServiceMode{models.ModeSurface}, true),
	}
	row := globalRow(models.CourierDelhivery, models.ModeSurface, models.ZoneWithinCity, 1.0, 100)
	row.CODFlatFee = 25
	row.CODPercent = 2

	svc := newTestRateService(t, nil, couriers, []*models.TariffRow{row}, nil,
		&fakeAdapter{code: "DELHIVERY"},
	)

	request := &models.ShipmentRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "400050",
		WeightKG:        1.0,
		PaymentMode:     models.PaymentCOD,
		Modes:           []models.ServiceMode{models.ModeSurface},
	}

	result, err := svc.ComputeRates(context.Background(), request)
	if err != nil {
		t.Fatalf("ComputeRates() error = %v", err)
	}
	if len(result.Quotes) != 1 {
		t.Fatalf("ComputeRates() returned %d quotes, want 1", len(result.Quotes))
	}

	breakdown := result.Quotes[0].Breakdown
	if breakdown.COD != 27 {
		t.Errorf("cod = %v, want 27", breakdown.COD)
	}
	if breakdown.Tax != 22.86 {
		t.Errorf("tax = %v, want 22.86", breakdown.Tax)
	}
	if breakdown.Total != 149.86 {
		t.Errorf("total = %v, want 149.86", breakdown.Total)
	}
}

func TestRateService_CheckLane(t *testing.T) {
	couriers := []*models.Courier{
		testCourier(models.CourierDelhivery, models.AllServiceModes, true),
	}
	svc := newTestRateService(t, nil, couriers, nil, nil,
		&fakeAdapter{code: "DELHIVERY"},
	)

	// An unscoped lane checks every service mode.
	lane := &ProbeLane{PickupPincode: "400001", DeliveryPincode: "400050"}
	results, classification, err := svc.CheckLane(context.Background(), lane)
	if err != nil {
		t.Fatalf("CheckLane() error = %v", err)
	}
	if len(results) != 2 {
		t.Errorf("CheckLane() returned %d results, want one per mode", len(results))
	}
	if classification.Zone != models.ZoneWithinCity {
		t.Errorf("CheckLane() zone = %s, want %s", classification.Zone, models.ZoneWithinCity)
	}
}

// newTestRateService wires a full aggregation stack on in-memory stores. A nil
// pincodeRepo gets the stock directory.
func newTestRateService(t *testing.T, pincodeRepo *fakePincodeRepo, couriers []*models.Courier, global, overrides []*models.TariffRow, adapters ...partners.Adapter) RateService {
	t.Helper()

	cfg := newTestConfig()
	log := newTestLogger()
	m := metrics.NewMetrics()

	if pincodeRepo == nil {
		pincodeRepo = &fakePincodeRepo{records: testPincodeDirectory()}
	}

	tariffService := NewTariffService(&fakeTariffRepo{global: global, overrides: overrides}, log, m, 0)
	if err := tariffService.RefreshNow(context.Background()); err != nil {
		t.Fatalf("RefreshNow() error = %v", err)
	}

	return NewRateService(
		NewZoneService(cfg, pincodeRepo, log),
		NewWeightService(cfg),
		tariffService,
		NewPricingService(cfg),
		NewServiceabilityService(cfg, testRegistry(t, adapters...), nil, log, m),
		newFakeCourierRepo(couriers...),
		log,
		m,
	)
}
