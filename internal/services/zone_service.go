package services

import (
	"context"
	"fmt"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/config"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/repositories/interfaces"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/logger"
)

type ZoneService interface {
	Classify(ctx context.Context, pickupPincode, deliveryPincode string) (*ZoneClassification, error)
}

// ZoneClassification is the outcome of classifying one lane. Defaulted is set
// when either pincode was missing from the directory and the lane fell back
// to rest-of-India pricing.
type ZoneClassification struct {
	Zone        models.Zone           `json:"zone"`
	Rule        string                `json:"rule"`
	Defaulted   bool                  `json:"defaulted,omitempty"`
	Origin      *models.PincodeRecord `json:"origin,omitempty"`
	Destination *models.PincodeRecord `json:"destination,omitempty"`
}

// zoneRule is one row of the classification decision table. The first rule
// whose predicate matches decides the zone.
type zoneRule struct {
	name    string
	zone    models.Zone
	matches func(origin, destination *models.PincodeRecord) bool
}

type zoneService struct {
	pincodeRepo interfaces.PincodeRepository
	logger      *logger.Logger
	rules       []zoneRule
}

func NewZoneService(config *config.Config, pincodeRepo interfaces.PincodeRepository, logger *logger.Logger) ZoneService {
	return &zoneService{
		pincodeRepo: pincodeRepo,
		logger:      logger,
		rules:       buildZoneRules(config.Engine.EnableRegionTier),
	}
}

// buildZoneRules assembles the ordered decision table. A special-zone
// destination outranks every geographic relationship, so it always comes
// first.
func buildZoneRules(regionTier bool) []zoneRule {
	rules := []zoneRule{
		{
			name: "special_destination",
			zone: models.ZoneSpecial,
			matches: func(_, destination *models.PincodeRecord) bool {
				return models.IsSpecialZoneState(destination.State)
			},
		},
		{
			name: "within_city",
			zone: models.ZoneWithinCity,
			matches: func(origin, destination *models.PincodeRecord) bool {
				if origin.NormalizedState() != destination.NormalizedState() {
					return false
				}
				district := origin.NormalizedDistrict()
				return district != "" && district == destination.NormalizedDistrict()
			},
		},
		{
			name: "within_state",
			zone: models.ZoneWithinState,
			matches: func(origin, destination *models.PincodeRecord) bool {
				return origin.NormalizedState() == destination.NormalizedState()
			},
		},
		{
			name: "metro_to_metro",
			zone: models.ZoneMetro,
			matches: func(origin, destination *models.PincodeRecord) bool {
				return models.IsMetroCity(origin.City) && models.IsMetroCity(destination.City)
			},
		},
	}

	if regionTier {
		rules = append(rules, zoneRule{
			name: "within_region",
			zone: models.ZoneWithinRegion,
			matches: func(origin, destination *models.PincodeRecord) bool {
				region := origin.MacroRegion()
				return region != "" && region == destination.MacroRegion()
			},
		})
	}

	return rules
}

func (s *zoneService) Classify(ctx context.Context, pickupPincode, deliveryPincode string) (*ZoneClassification, error) {
	origin, err := s.pincodeRepo.GetByPincode(ctx, pickupPincode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPincodeStoreUnavailable, err)
	}

	destination, err := s.pincodeRepo.GetByPincode(ctx, deliveryPincode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPincodeStoreUnavailable, err)
	}

	// Unknown pincodes price as rest of India instead of failing the request.
	if origin == nil || destination == nil {
		s.logger.WithFields(map[string]interface{}{
			"pickup_pincode":   pickupPincode,
			"delivery_pincode": deliveryPincode,
		}).Warn("Pincode missing from directory, defaulting zone")

		return &ZoneClassification{
			Zone:        models.ZoneRestOfIndia,
			Rule:        "default",
			Defaulted:   true,
			Origin:      origin,
			Destination: destination,
		}, nil
	}

	for _, rule := range s.rules {
		if rule.matches(origin, destination) {
			return &ZoneClassification{
				Zone:        rule.zone,
				Rule:        rule.name,
				Origin:      origin,
				Destination: destination,
			}, nil
		}
	}

	return &ZoneClassification{
		Zone:        models.ZoneRestOfIndia,
		Rule:        "rest_of_india",
		Origin:      origin,
		Destination: destination,
	}, nil
}
