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

type XpressbeesAdapter struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

func NewXpressbeesAdapter(config AdapterConfig) *XpressbeesAdapter {
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
		baseURL = "https://shipment.xpressbees.com"
	}

	return &XpressbeesAdapter{
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), int(rps)),
	}
}

func (x *XpressbeesAdapter) Code() string {
	return "XPRESSBEES"
}

func (x *XpressbeesAdapter) CheckServiceability(ctx context.Context, request *ServiceabilityRequest) (*ServiceabilityResponse, error) {
	if err := x.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to acquire rate limit: %w", err)
	}

	paymentType := "prepaid"
	if request.CODRequired {
		paymentType = "cod"
	}

	query := url.Values{}
	query.Set("origin", request.PickupPincode)
	query.Set("destination", request.DeliveryPincode)
	query.Set("payment_type", paymentType)

	apiURL := fmt.Sprintf("%s/api/courier/serviceability?%s", x.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+x.apiKey)

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Xpressbees API error: %s", string(body))
	}

	var xbResp struct {
		Status bool   `json:"status"`
		Remark string `json:"remark"`
		Data   []struct {
			Serviceable bool `json:"serviceable"`
			COD         bool `json:"cod"`
		} `json:"data"`
	}

	err = json.Unmarshal(body, &xbResp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !xbResp.Status || len(xbResp.Data) == 0 {
		reason := xbResp.Remark
		if reason == "" {
			reason = "pincode not covered"
		}
		return &ServiceabilityResponse{
			Serviceable: false,
			Reason:      reason,
		}, nil
	}

	entry := xbResp.Data[0]
	if !entry.Serviceable {
		return &ServiceabilityResponse{
			Serviceable: false,
			Reason:      "pincode not covered",
		}, nil
	}

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
