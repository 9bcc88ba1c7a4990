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

type DTDCAdapter struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

func NewDTDCAdapter(config AdapterConfig) *DTDCAdapter {
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
		baseURL = "https://blktracksvc.dtdc.com"
	}

	return &DTDCAdapter{
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), int(rps)),
	}
}

func (d *DTDCAdapter) Code() string {
	return "DTDC"
}

func (d *DTDCAdapter) CheckServiceability(ctx context.Context, request *ServiceabilityRequest) (*ServiceabilityResponse, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to acquire rate limit: %w", err)
	}

	payload, err := json.Marshal(map[string]string{
		"orgPincode": request.PickupPincode,
		"desPincode": request.DeliveryPincode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	apiURL := fmt.Sprintf("%s/dtdc-api/rest/JSONCnTrk/getPincodeDetails", d.baseURL)

	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", d.apiKey)

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
		return nil, fmt.Errorf("DTDC API error: %s", string(body))
	}

	var dtdcResp struct {
		ZipcodeResp []struct {
			ServFlag string `json:"SERV_FLAG"`
			CODFlag  string `json:"COD_FLAG"`
			Reason   string `json:"REASON"`
		} `json:"ZIPCODE_RESP"`
	}

	err = json.Unmarshal(body, &dtdcResp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(dtdcResp.ZipcodeResp) == 0 {
		return &ServiceabilityResponse{
			Serviceable: false,
			Reason:      "pincode not covered",
		}, nil
	}

	entry := dtdcResp.ZipcodeResp[0]
	if entry.ServFlag != "Y" {
		reason := entry.Reason
		if reason == "" {
			reason = "pincode not covered"
		}
		return &ServiceabilityResponse{
			Serviceable: false,
			Reason:      reason,
		}, nil
	}

	codAllowed := entry.CODFlag == "Y"
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
