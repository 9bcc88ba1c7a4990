package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/config"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/utils"
)

type WeightService interface {
	Resolve(request *models.ShipmentRequest) (*WeightResolution, error)
}

// WeightResolution carries the billable-weight answer for one shipment.
// ChargeableKG is the raw max of actual and volumetric weight; any per-row
// minimum billable weight is applied later, during pricing.
type WeightResolution struct {
	ActualKG     float64 `json:"actual_kg"`
	VolumetricKG float64 `json:"volumetric_kg"`
	ChargeableKG float64 `json:"chargeable_kg"`
	SlabKG       float64 `json:"slab_kg"`
	ExtraUnits   int     `json:"extra_units"`
}

type weightService struct {
	slabs             []float64
	volumetricDivisor float64
	maxWeightKG       float64
	maxDimensionCM    float64
}

func NewWeightService(config *config.Config) WeightService {
	slabs := make([]float64, len(config.Engine.WeightSlabsKG))
	copy(slabs, config.Engine.WeightSlabsKG)
	sort.Float64s(slabs)

	return &weightService{
		slabs:             slabs,
		volumetricDivisor: config.Engine.VolumetricDivisor,
		maxWeightKG:       config.Engine.MaxWeightKG,
		maxDimensionCM:    config.Engine.MaxDimensionCM,
	}
}

func (s *weightService) Resolve(request *models.ShipmentRequest) (*WeightResolution, error) {
	if request.WeightKG <= 0 {
		return nil, models.NewInvalidRequestError("weight_kg", "weight must be greater than zero")
	}
	if request.WeightKG > s.maxWeightKG {
		return nil, models.NewInvalidRequestError("weight_kg", fmt.Sprintf("weight must not exceed %.0f kg", s.maxWeightKG))
	}
	if err := s.validateDimensions(request.Dimensions); err != nil {
		return nil, err
	}

	volumetric := s.volumetricWeight(request.Dimensions)
	chargeable := math.Max(request.WeightKG, volumetric)
	slab, extraUnits := s.pickSlab(chargeable)

	return &WeightResolution{
		ActualKG:     request.WeightKG,
		VolumetricKG: volumetric,
		ChargeableKG: chargeable,
		SlabKG:       slab,
		ExtraUnits:   extraUnits,
	}, nil
}

func (s *weightService) validateDimensions(d models.Dimensions) error {
	for _, dim := range []struct {
		field string
		value float64
	}{
		{"length_cm", d.LengthCM},
		{"width_cm", d.WidthCM},
		{"height_cm", d.HeightCM},
	} {
		if dim.value < 0 {
			return models.NewInvalidRequestError(dim.field, "dimension must not be negative")
		}
		if dim.value > s.maxDimensionCM {
			return models.NewInvalidRequestError(dim.field, fmt.Sprintf("dimension must not exceed %.0f cm", s.maxDimensionCM))
		}
	}
	return nil
}

// volumetricWeight converts declared dimensions to billable kilograms,
// rounded up to the next half kilogram.
func (s *weightService) volumetricWeight(d models.Dimensions) float64 {
	if d.IsZero() {
		return 0
	}
	raw := d.LengthCM * d.WidthCM * d.HeightCM / s.volumetricDivisor
	return utils.CeilToHalfKG(raw)
}

// pickSlab returns the smallest configured slab covering the chargeable
// weight. Weights beyond the largest slab bill as the largest slab plus
// half-kilogram units.
func (s *weightService) pickSlab(chargeableKG float64) (float64, int) {
	for _, slab := range s.slabs {
		if chargeableKG <= slab {
			return slab, 0
		}
	}

	largest := s.slabs[len(s.slabs)-1]
	return largest, utils.HalfKGUnits(chargeableKG - largest)
}
