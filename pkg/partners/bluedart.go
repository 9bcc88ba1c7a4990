package partners

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

type BlueDartAdapter struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

func NewBlueDartAdapter(config AdapterConfig) *BlueDartAdapter {
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
		baseURL = "https://apigateway.bluedart.com"
	}

	return &BlueDartAdapter{
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), int(rps)),
	}
}

func (b *BlueDartAdapter) Code() string {
	return "BLUEDART"
}

func (b *BlueDartAdapter) CheckServiceability(ctx context.Context, request *ServiceabilityRequest) (*ServiceabilityResponse, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to acquire rate limit: %w", err)
	}

	payload, err := json.Marshal(map[string]string{
		"pinCode": request.DeliveryPincode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	apiURL := fmt.Sprintf("%s/in/transportation/finder/v1/GetServicesforPincode", b.baseURL)

	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("JWTToken", b.apiKey)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("BlueDart API error: %s", string(body))
	}

	var bluedartResp struct {
		GetServicesforPincodeResult struct {
			ApexInbound   string `json:"ApexInbound"`
			GroundInbound string `json:"GroundInbound"`
			CODInbound    string `json:"CODInbound"`
			ErrorMessage  string `json:"ErrorMessage"`
		} `json:"GetServicesforPincodeResult"`
	}

	err = json.Unmarshal(body, &bluedartResp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	result := bluedartResp.GetServicesforPincodeResult
	if result.ErrorMessage != "" {
		return &ServiceabilityResponse{
			Serviceable: false,
			Reason:      result.ErrorMessage,
		}, nil
	}

	serviceable := result.GroundInbound == "Yes"
	if request.Mode == "air" {
		serviceable = result.ApexInbound == "Yes"
	}

	if !serviceable {
		return &ServiceabilityResponse{
			Serviceable: false,
			Reason:      "pincode not covered",
		}, nil
	}

	codAllowed := result.CODInbound == "Yes"
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
