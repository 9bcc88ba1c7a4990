package services

import (
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/config"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/utils"
)

type PricingService interface {
	Price(tariff *models.EffectiveTariff, weights *WeightResolution, zone models.Zone, paymentMode models.PaymentMode) *PriceComputation
}

// PriceComputation keeps every amount at full float precision. Amounts are
// rounded exactly once, when Breakdown builds the exposed response.
type PriceComputation struct {
	BilledWeightKG float64
	SlabKG         float64
	ExtraUnits     int
	Base           float64
	Additional     float64
	COD            float64
	Subtotal       float64
	Tax            float64
	Total          float64
	EstimatedDays  int
	IsOverride     bool
}

func (p *PriceComputation) Breakdown() models.PriceBreakdown {
	return models.PriceBreakdown{
		Base:             utils.Round2(p.Base),
		AdditionalWeight: utils.Round2(p.Additional),
		COD:              utils.Round2(p.COD),
		Tax:              utils.Round2(p.Tax),
		Total:            utils.Round2(p.Total),
	}
}

// deliveryDaysByZone is the fallback surface estimate for rate card rows that
// carry no estimate of their own.
var deliveryDaysByZone = map[models.Zone]int{
	models.ZoneWithinCity:   2,
	models.ZoneWithinState:  3,
	models.ZoneWithinRegion: 4,
	models.ZoneMetro:        3,
	models.ZoneRestOfIndia:  5,
	models.ZoneSpecial:      7,
}

type pricingService struct {
	gstRate float64
}

func NewPricingService(config *config.Config) PricingService {
	return &pricingService{gstRate: config.Engine.GSTRate}
}

func (s *pricingService) Price(tariff *models.EffectiveTariff, weights *WeightResolution, zone models.Zone, paymentMode models.PaymentMode) *PriceComputation {
	row := tariff.Row

	// A per-row minimum billable weight raises the billed weight, never the
	// slab the row was selected for.
	billed := weights.ChargeableKG
	if row.MinimumBillableKG > billed {
		billed = row.MinimumBillableKG
	}

	extraUnits := utils.HalfKGUnits(billed - row.SlabKG)

	base := row.BaseRate
	additional := float64(extraUnits) * row.AdditionalRate

	var cod float64
	if paymentMode == models.PaymentCOD {
		cod = row.CODFlatFee + row.CODPercent/100*(base+additional)
	}

	subtotal := base + additional + cod
	tax := subtotal * s.gstRate

	return &PriceComputation{
		BilledWeightKG: billed,
		SlabKG:         row.SlabKG,
		ExtraUnits:     extraUnits,
		Base:           base,
		Additional:     additional,
		COD:            cod,
		Subtotal:       subtotal,
		Tax:            tax,
		Total:          subtotal + tax,
		EstimatedDays:  s.estimatedDays(row, zone),
		IsOverride:     tariff.IsOverride,
	}
}

func (s *pricingService) estimatedDays(row *models.TariffRow, zone models.Zone) int {
	if row.EstimatedDays > 0 {
		return row.EstimatedDays
	}

	days := deliveryDaysByZone[zone]
	if days == 0 {
		days = 5
	}
	if row.Mode == models.ModeAir {
		days -= 2
		if days < 1 {
			days = 1
		}
	}

	return days
}
