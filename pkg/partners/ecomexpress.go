package partners

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

type EcomExpressAdapter struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

func NewEcomExpressAdapter(config AdapterConfig) *EcomExpressAdapter {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 3 * time.Second
	}

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.ecomexpress.in"
	}

	return &EcomExpressAdapter{
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), int(rps)),
	}
}

func (e *EcomExpressAdapter) Code() string {
	return "ECOM_EXPRESS"
}

func (e *EcomExpressAdapter) CheckServiceability(ctx context.Context, request *ServiceabilityRequest) (*ServiceabilityResponse, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to acquire rate limit: %w", err)
	}

	apiURL := fmt.Sprintf("%s/apiv2/pincodes/?pincode=%s", e.baseURL, url.QueryEscape(request.DeliveryPincode))

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-Key", e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Ecom Express API error: %s", string(body))
	}

	var ecomResp struct {
		Pincodes []struct {
			Pincode int  `json:"pincode"`
			Active  bool `json:"active"`
			COD     bool `json:"cod"`
			Pickup  bool `json:"pickup"`
		} `json:"pincodes"`
	}

	err = json.Unmarshal(body, &ecomResp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(ecomResp.Pincodes) == 0 || !ecomResp.Pincodes[0].Active {
		return &ServiceabilityResponse{
			Serviceable: false,
			Reason:      "pincode not covered",
		}, nil
	}

	entry := ecomResp.Pincodes[0]
	if request.CODRequired && !entry.COD {
		return &ServiceabilityResponse{
			Serviceable: false,
			CODAllowed:  false,
			Reason:      "cod not available",
		}, nil
	}

	return &ServiceabilityResponse{
		Serviceable: true,
		CODAllowed:  entry.COD,
	}, nil
}
