package config

import "time"

type EngineConfig struct {
	GSTRate               float64       `yaml:"gst_rate"`
	WeightSlabsKG         []float64     `yaml:"weight_slabs_kg"`
	VolumetricDivisor     float64       `yaml:"volumetric_divisor"`
	ProbeTimeout          time.Duration `yaml:"probe_timeout"`
	ProbeCacheTTL         time.Duration `yaml:"probe_cache_ttl"`
	TariffRefreshInterval time.Duration `yaml:"tariff_refresh_interval"`
	PincodeCacheTTL       time.Duration `yaml:"pincode_cache_ttl"`
	EnableRegionTier      bool          `yaml:"enable_region_tier"`
	MaxWeightKG           float64       `yaml:"max_weight_kg"`
	MaxDimensionCM        float64       `yaml:"max_dimension_cm"`
}

func loadEngineConfig() *EngineConfig {
	return &EngineConfig{
		GSTRate:               getEnvAsFloat64("ENGINE_GST_RATE", 0.18),
		WeightSlabsKG:         getEnvAsFloatSlice("ENGINE_WEIGHT_SLABS_KG", []float64{0.5, 1.0, 2.0, 3.0, 5.0, 10.0}),
		VolumetricDivisor:     getEnvAsFloat64("ENGINE_VOLUMETRIC_DIVISOR", 5000),
		ProbeTimeout:          getEnvAsDuration("ENGINE_PROBE_TIMEOUT", 3*time.Second),
		ProbeCacheTTL:         getEnvAsDuration("ENGINE_PROBE_CACHE_TTL", 5*time.Minute),
		TariffRefreshInterval: getEnvAsDuration("ENGINE_TARIFF_REFRESH_INTERVAL", 10*time.Minute),
		PincodeCacheTTL:       getEnvAsDuration("ENGINE_PINCODE_CACHE_TTL", 24*time.Hour),
		EnableRegionTier:      getEnvAsBool("ENGINE_ENABLE_REGION_TIER", false),
		MaxWeightKG:           getEnvAsFloat64("ENGINE_MAX_WEIGHT_KG", 100),
		MaxDimensionCM:        getEnvAsFloat64("ENGINE_MAX_DIMENSION_CM", 300),
	}
}
