package config

import "time"

type CouriersConfig struct {
	Delhivery   *CourierAPIConfig `yaml:"delhivery"`
	BlueDart    *CourierAPIConfig `yaml:"bluedart"`
	DTDC        *CourierAPIConfig `yaml:"dtdc"`
	Xpressbees  *CourierAPIConfig `yaml:"xpressbees"`
	EcomExpress *CourierAPIConfig `yaml:"ecom_express"`
}

type CourierAPIConfig struct {
	BaseURL           string        `yaml:"base_url"`
	APIKey            string        `yaml:"api_key"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

func loadCouriersConfig() *CouriersConfig {
	return &CouriersConfig{
		Delhivery: &CourierAPIConfig{
			BaseURL:           getEnv("DELHIVERY_BASE_URL", "https://track.delhivery.com"),
			APIKey:            getEnv("DELHIVERY_API_KEY", ""),
			Timeout:           getEnvAsDuration("DELHIVERY_TIMEOUT", 3*time.Second),
			RequestsPerSecond: getEnvAsFloat64("DELHIVERY_RPS", 10),
		},
		BlueDart: &CourierAPIConfig{
			BaseURL:           getEnv("BLUEDART_BASE_URL", "https://apigateway.bluedart.com"),
			APIKey:            getEnv("BLUEDART_API_KEY", ""),
			Timeout:           getEnvAsDuration("BLUEDART_TIMEOUT", 3*time.Second),
			RequestsPerSecond: getEnvAsFloat64("BLUEDART_RPS", 10),
		},
		DTDC: &CourierAPIConfig{
			BaseURL:           getEnv("DTDC_BASE_URL", "https://blktracksvc.dtdc.com"),
			APIKey:            getEnv("DTDC_API_KEY", ""),
			Timeout:           getEnvAsDuration("DTDC_TIMEOUT", 3*time.Second),
			RequestsPerSecond: getEnvAsFloat64("DTDC_RPS", 10),
		},
		Xpressbees: &CourierAPIConfig{
			BaseURL:           getEnv("XPRESSBEES_BASE_URL", "https://shipment.xpressbees.com"),
			APIKey:            getEnv("XPRESSBEES_API_KEY", ""),
			Timeout:           getEnvAsDuration("XPRESSBEES_TIMEOUT", 3*time.Second),
			RequestsPerSecond: getEnvAsFloat64("XPRESSBEES_RPS", 10),
		},
		EcomExpress: &CourierAPIConfig{
			BaseURL:           getEnv("ECOM_EXPRESS_BASE_URL", "https://api.ecomexpress.in"),
			APIKey:            getEnv("ECOM_EXPRESS_API_KEY", ""),
			Timeout:           getEnvAsDuration("ECOM_EXPRESS_TIMEOUT", 3*time.Second),
			RequestsPerSecond: getEnvAsFloat64("ECOM_EXPRESS_RPS", 10),
		},
	}
}
