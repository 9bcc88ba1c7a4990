package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/repositories/interfaces"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/logger"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/metrics"
)

type RateService interface {
	// ComputeRates runs the full aggregation for one shipment. An empty quote
	// list with populated diagnostics is a normal outcome, not an error.
	ComputeRates(ctx context.Context, request *models.ShipmentRequest) (*models.AggregatedResult, error)

	// CheckLane probes serviceability for a lane without pricing it.
	CheckLane(ctx context.Context, lane *ProbeLane) ([]models.ServiceabilityResult, *ZoneClassification, error)
}

// priceKey joins probe results with priced pairs.
type priceKey struct {
	courier models.CourierCode
	mode    models.ServiceMode
}

type rateService struct {
	zoneService    ZoneService
	weightService  WeightService
	tariffService  TariffService
	pricingService PricingService
	prober         ServiceabilityService
	courierRepo    interfaces.CourierRepository
	logger         *logger.Logger
	metrics        *metrics.Metrics
}

func NewRateService(
	zoneService ZoneService,
	weightService WeightService,
	tariffService TariffService,
	pricingService PricingService,
	prober ServiceabilityService,
	courierRepo interfaces.CourierRepository,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) RateService {
	return &rateService{
		zoneService:    zoneService,
		weightService:  weightService,
		tariffService:  tariffService,
		pricingService: pricingService,
		prober:         prober,
		courierRepo:    courierRepo,
		logger:         logger,
		metrics:        metrics,
	}
}

func (s *rateService) ComputeRates(ctx context.Context, request *models.ShipmentRequest) (*models.AggregatedResult, error) {
	started := time.Now()

	log := s.logger
	if request.SellerID != "" {
		log = log.WithSellerID(request.SellerID)
	}
	log.LogRateRequest(request.PickupPincode, request.DeliveryPincode, request.WeightKG, string(request.PaymentMode))

	weights, err := s.weightService.Resolve(request)
	if err != nil {
		s.metrics.RecordRateRequest("invalid", 0)
		return nil, err
	}

	// Every tariff lookup in this request reads the one snapshot captured
	// here, so a refresh landing mid-computation cannot price couriers
	// against mixed rate cards. No snapshot at all means the store has been
	// unreachable since boot, which is an outage, not an empty rate card.
	tariffs, ok := s.tariffService.Capture()
	if !ok {
		s.metrics.RecordRateRequest("error", 0)
		return nil, fmt.Errorf("%w: no rate card snapshot loaded", models.ErrTariffStoreUnavailable)
	}

	classification, err := s.zoneService.Classify(ctx, request.PickupPincode, request.DeliveryPincode)
	if err != nil {
		s.metrics.RecordRateRequest("error", 0)
		return nil, err
	}

	couriers, err := s.courierRepo.ListActive(ctx)
	if err != nil {
		s.metrics.RecordRateRequest("error", 0)
		return nil, fmt.Errorf("failed to load courier roster: %w", err)
	}

	modes := request.RequestedModes()
	lane := &ProbeLane{
		PickupPincode:   request.PickupPincode,
		DeliveryPincode: request.DeliveryPincode,
		Modes:           modes,
		CODRequired:     request.PaymentMode == models.PaymentCOD,
	}

	// Serviceability probing and tariff pricing are independent; run them
	// side by side and join on (courier, mode) afterwards.
	var (
		probeResults []models.ServiceabilityResult
		priced       map[priceKey]*PriceComputation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		probeResults = s.prober.ProbeAll(gctx, couriers, lane)
		return nil
	})
	g.Go(func() error {
		priced = s.priceAllPairs(tariffs, couriers, modes, classification.Zone, weights, request)
		return nil
	})
	_ = g.Wait()

	result := s.join(couriers, probeResults, priced, classification, weights)

	outcome := "quoted"
	if len(result.Quotes) == 0 {
		outcome = "empty"
	}
	s.metrics.RecordRateRequest(outcome, len(result.Quotes))
	log.LogRateResult(string(classification.Zone), len(result.Quotes), len(result.Diagnostics.Excluded), time.Since(started))

	return result, nil
}

func (s *rateService) CheckLane(ctx context.Context, lane *ProbeLane) ([]models.ServiceabilityResult, *ZoneClassification, error) {
	classification, err := s.zoneService.Classify(ctx, lane.PickupPincode, lane.DeliveryPincode)
	if err != nil {
		return nil, nil, err
	}

	couriers, err := s.courierRepo.ListActive(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load courier roster: %w", err)
	}

	if len(lane.Modes) == 0 {
		lane.Modes = models.AllServiceModes
	}

	return s.prober.ProbeAll(ctx, couriers, lane), classification, nil
}

// priceAllPairs resolves and prices every (courier, mode) cell against the
// captured tariff snapshot. Cells without a configured row are skipped, not
// failed.
func (s *rateService) priceAllPairs(tariffs TariffResolver, couriers []*models.Courier, modes []models.ServiceMode, zone models.Zone, weights *WeightResolution, request *models.ShipmentRequest) map[priceKey]*PriceComputation {
	priced := make(map[priceKey]*PriceComputation, len(couriers)*len(modes))

	for _, courier := range couriers {
		for _, mode := range modes {
			tariff, ok := tariffs.Resolve(courier.Code, mode, zone, weights.SlabKG, request.SellerID)
			if !ok {
				continue
			}
			priced[priceKey{courier: courier.Code, mode: mode}] = s.pricingService.Price(tariff, weights, zone, request.PaymentMode)
		}
	}

	return priced
}

func (s *rateService) join(couriers []*models.Courier, probeResults []models.ServiceabilityResult, priced map[priceKey]*PriceComputation, classification *ZoneClassification, weights *WeightResolution) *models.AggregatedResult {
	names := make(map[models.CourierCode]string, len(couriers))
	for _, courier := range couriers {
		names[courier.Code] = courier.Name
	}

	quotes := make([]models.RateQuote, 0, len(probeResults))
	excluded := make([]models.ExclusionEntry, 0)

	for _, probe := range probeResults {
		name := names[probe.Courier]
		if name == "" {
			name = probe.Courier.DisplayName()
		}

		if !probe.Serviceable {
			excluded = append(excluded, models.ExclusionEntry{
				Courier:     probe.Courier,
				CourierName: name,
				Mode:        probe.Mode,
				Reason:      probe.Reason,
			})
			continue
		}

		computation, ok := priced[priceKey{courier: probe.Courier, mode: probe.Mode}]
		if !ok {
			excluded = append(excluded, models.ExclusionEntry{
				Courier:     probe.Courier,
				CourierName: name,
				Mode:        probe.Mode,
				Reason:      models.ReasonNoTariff,
			})
			continue
		}

		quotes = append(quotes, models.RateQuote{
			Courier:            probe.Courier,
			CourierName:        name,
			Mode:               probe.Mode,
			Zone:               classification.Zone,
			ChargeableWeightKG: computation.BilledWeightKG,
			SlabKG:             computation.SlabKG,
			ExtraUnits:         computation.ExtraUnits,
			IsOverride:         computation.IsOverride,
			EstimatedDays:      computation.EstimatedDays,
			Breakdown:          computation.Breakdown(),
		})
	}

	sortQuotes(quotes)

	byMode := make(map[models.ServiceMode][]models.RateQuote)
	for _, quote := range quotes {
		byMode[quote.Mode] = append(byMode[quote.Mode], quote)
	}

	return &models.AggregatedResult{
		Quotes:  quotes,
		ByMode:  byMode,
		Summary: buildSummary(quotes, byMode),
		Diagnostics: models.Diagnostics{
			Zone:               classification.Zone,
			ZoneDefaulted:      classification.Defaulted,
			VolumetricWeightKG: weights.VolumetricKG,
			ChargeableWeightKG: weights.ChargeableKG,
			CouriersChecked:    len(couriers),
			Serviceability:     probeResults,
			Excluded:           excluded,
		},
	}
}

// sortQuotes orders by exposed total ascending, then courier name, then mode
// so equal-priced quotes always render in the same order.
func sortQuotes(quotes []models.RateQuote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		if quotes[i].Breakdown.Total != quotes[j].Breakdown.Total {
			return quotes[i].Breakdown.Total < quotes[j].Breakdown.Total
		}
		if quotes[i].CourierName != quotes[j].CourierName {
			return quotes[i].CourierName < quotes[j].CourierName
		}
		return quotes[i].Mode < quotes[j].Mode
	})
}

func buildSummary(quotes []models.RateQuote, byMode map[models.ServiceMode][]models.RateQuote) models.Summary {
	summary := models.Summary{
		TotalQuotes: len(quotes),
		CountByMode: make(map[models.ServiceMode]int, len(byMode)),
	}

	for mode, modeQuotes := range byMode {
		summary.CountByMode[mode] = len(modeQuotes)
	}

	if len(quotes) == 0 {
		return summary
	}

	cheapest := quotes[0]
	summary.Cheapest = &cheapest
	summary.CheapestAmount = cheapest.Breakdown.Total

	summary.CheapestByMode = make(map[models.ServiceMode]*models.RateQuote, len(byMode))
	for mode, modeQuotes := range byMode {
		first := modeQuotes[0]
		summary.CheapestByMode[mode] = &first
	}

	fastest := quotes[0]
	for _, quote := range quotes[1:] {
		if quote.EstimatedDays > 0 && (fastest.EstimatedDays <= 0 || quote.EstimatedDays < fastest.EstimatedDays) {
			fastest = quote
		}
	}
	if fastest.EstimatedDays > 0 {
		copied := fastest
		summary.Fastest = &copied
		summary.FastestLabel = fmt.Sprintf("%d-day delivery by %s %s", copied.EstimatedDays, copied.CourierName, copied.Mode.DisplayName())
	}

	return summary
}
