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

type DelhiveryAdapter struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

func NewDelhiveryAdapter(config AdapterConfig) *DelhiveryAdapter {
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
		baseURL = "https://track.delhivery.com"
	}

	return &DelhiveryAdapter{
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), int(rps)),
	}
}

func (d *DelhiveryAdapter) Code() string {
	return "DELHIVERY"
}

func (d *DelhiveryAdapter) CheckServiceability(ctx context.Context, request *ServiceabilityRequest) (*ServiceabilityResponse, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to acquire rate limit: %w", err)
	}

	apiURL := fmt.Sprintf("%s/c/api/pin-codes/json/?token=%s&filter_codes=%s",
		d.baseURL, url.QueryEscape(d.apiKey), url.QueryEscape(request.DeliveryPincode))

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Delhivery API error: %s", string(body))
	}

	var delhiveryResp struct {
		DeliveryCodes []struct {
			PostalCode struct {
				Pin     int    `json:"pin"`
				COD     string `json:"cod"`
				PrePaid string `json:"pre_paid"`
			} `json:"postal_code"`
		} `json:"delivery_codes"`
	}

	err = json.Unmarshal(body, &delhiveryResp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(delhiveryResp.DeliveryCodes) == 0 {
		return &ServiceabilityResponse{
			Serviceable: false,
			Reason:      "pincode not covered",
		}, nil
	}

	postal := delhiveryResp.DeliveryCodes[0].PostalCode
	codAllowed := postal.COD == "Y"

	if request.CODRequired && !codAllowed {
		return &ServiceabilityResponse{
			Serviceable: false,
			CODAllowed:  false,
			Reason:      "cod not available",
		}, nil
	}

	return &ServiceabilityResponse{
		Serviceable: true,
		CODAllowed:  codAllowed,
	}, nil
}
