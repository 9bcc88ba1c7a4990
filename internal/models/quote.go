package models

// Exclusion reasons recorded in the aggregation diagnostics.
const (
	ReasonNotServiceable   = "not serviceable"
	ReasonProbeTimeout     = "probe timeout"
	ReasonProbeError       = "probe error"
	ReasonNoTariff         = "no tariff configured"
	ReasonCODNotSupported  = "cod not supported"
	ReasonModeNotSupported = "mode not supported"
)

// PriceBreakdown is the externally exposed price split, rounded to two
// decimal places.
type PriceBreakdown struct {
	Base             float64 `json:"base"`
	AdditionalWeight float64 `json:"additional_weight"`
	COD              float64 `json:"cod"`
	Tax              float64 `json:"tax"`
	Total            float64 `json:"total"`
}

// RateQuote is one priced, serviceable shipping option.
type RateQuote struct {
	Courier            CourierCode    `json:"courier"`
	CourierName        string         `json:"courier_name"`
	Mode               ServiceMode    `json:"mode"`
	Zone               Zone           `json:"zone"`
	ChargeableWeightKG float64        `json:"chargeable_weight_kg"`
	SlabKG             float64        `json:"slab_kg"`
	ExtraUnits         int            `json:"extra_units,omitempty"`
	IsOverride         bool           `json:"is_override"`
	EstimatedDays      int            `json:"estimated_days,omitempty"`
	Breakdown          PriceBreakdown `json:"breakdown"`
}

// ServiceabilityResult is one courier's answer for one lane and mode.
type ServiceabilityResult struct {
	Courier     CourierCode `json:"courier"`
	Mode        ServiceMode `json:"mode"`
	Serviceable bool        `json:"serviceable"`
	Reason      string      `json:"reason,omitempty"`
	LatencyMS   int64       `json:"latency_ms"`
}

// ExclusionEntry explains why a checked courier produced no quote.
type ExclusionEntry struct {
	Courier     CourierCode `json:"courier"`
	CourierName string      `json:"courier_name"`
	Mode        ServiceMode `json:"mode"`
	Reason      string      `json:"reason"`
}

// Diagnostics carries the degraded-data flags and the full exclusion picture
// for one aggregation request.
type Diagnostics struct {
	Zone               Zone                   `json:"zone"`
	ZoneDefaulted      bool                   `json:"zone_defaulted,omitempty"`
	VolumetricWeightKG float64                `json:"volumetric_weight_kg"`
	ChargeableWeightKG float64                `json:"chargeable_weight_kg"`
	CouriersChecked    int                    `json:"couriers_checked"`
	Serviceability     []ServiceabilityResult `json:"serviceability,omitempty"`
	Excluded           []ExclusionEntry       `json:"excluded,omitempty"`
}

// Summary aggregates the quote list for display.
type Summary struct {
	TotalQuotes    int                        `json:"total_quotes"`
	CountByMode    map[ServiceMode]int        `json:"count_by_mode"`
	CheapestAmount float64                    `json:"cheapest_amount,omitempty"`
	Cheapest       *RateQuote                 `json:"cheapest,omitempty"`
	CheapestByMode map[ServiceMode]*RateQuote `json:"cheapest_by_mode,omitempty"`
	Fastest        *RateQuote                 `json:"fastest,omitempty"`
	FastestLabel   string                     `json:"fastest_label,omitempty"`
}

// AggregatedResult is the full outcome of one rate computation. An empty
// Quotes list with populated Diagnostics is a normal outcome, not an error.
type AggregatedResult struct {
	Quotes      []RateQuote                 `json:"quotes"`
	ByMode      map[ServiceMode][]RateQuote `json:"by_mode"`
	Summary     Summary                     `json:"summary"`
	Diagnostics Diagnostics                 `json:"diagnostics"`
}
