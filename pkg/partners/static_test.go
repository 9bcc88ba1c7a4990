package partners

import (
	"context"
	"testing"
)

func TestStaticAdapterCheckServiceability(t *testing.T) {
	adapter := NewStaticAdapter("DELHIVERY", []string{"surface"}, true, []string{"590001"})

	tests := []struct {
		name            string
		request         *ServiceabilityRequest
		wantServiceable bool
		wantReason      string
	}{
		{
			name:            "covered lane",
			request:         &ServiceabilityRequest{PickupPincode: "400001", DeliveryPincode: "560001", Mode: "surface"},
			wantServiceable: true,
		},
		{
			name:            "pincode outside coverage",
			request:         &ServiceabilityRequest{PickupPincode: "400001", DeliveryPincode: "960001", Mode: "surface"},
			wantServiceable: false,
			wantReason:      "pincode outside coverage",
		},
		{
			name:            "deny listed delivery pincode",
			request:         &ServiceabilityRequest{PickupPincode: "400001", DeliveryPincode: "590001", Mode: "surface"},
			wantServiceable: false,
			wantReason:      "pincode not covered",
		},
		{
			name:            "unsupported mode",
			request:         &ServiceabilityRequest{PickupPincode: "400001", DeliveryPincode: "560001", Mode: "air"},
			wantServiceable: false,
			wantReason:      "mode not supported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response, err := adapter.CheckServiceability(context.Background(), tt.request)
			if err != nil {
				t.Fatalf("CheckServiceability() error = %v", err)
			}
			if response.Serviceable != tt.wantServiceable {
				t.Errorf("serviceable = %v, want %v", response.Serviceable, tt.wantServiceable)
			}
			if response.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", response.Reason, tt.wantReason)
			}
		})
	}
}

func TestStaticAdapterEmptyModesAcceptAll(t *testing.T) {
	adapter := NewStaticAdapter("BLUEDART", nil, true, nil)

	for _, mode := range []string{"surface", "air"} {
		response, err := adapter.CheckServiceability(context.Background(), &ServiceabilityRequest{
			PickupPincode:   "400001",
			DeliveryPincode: "560001",
			Mode:            mode,
		})
		if err != nil {
			t.Fatalf("CheckServiceability(%s) error = %v", mode, err)
		}
		if !response.Serviceable {
			t.Errorf("mode %s not serviceable, reason %q", mode, response.Reason)
		}
	}
}

func TestStaticAdapterCOD(t *testing.T) {
	noCOD := NewStaticAdapter("ECOM_EXPRESS", nil, false, nil)

	response, err := noCOD.CheckServiceability(context.Background(), &ServiceabilityRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "560001",
		Mode:            "surface",
		CODRequired:     true,
	})
	if err != nil {
		t.Fatalf("CheckServiceability() error = %v", err)
	}
	if response.Serviceable || response.CODAllowed {
		t.Errorf("response = %+v, want cod refusal", response)
	}

	// Without the COD requirement the lane is still serviceable, prepaid only.
	response, err = noCOD.CheckServiceability(context.Background(), &ServiceabilityRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "560001",
		Mode:            "surface",
	})
	if err != nil {
		t.Fatalf("CheckServiceability() error = %v", err)
	}
	if !response.Serviceable || response.CODAllowed {
		t.Errorf("response = %+v, want serviceable without cod", response)
	}
}

func TestStaticAdapterHonorsContext(t *testing.T) {
	adapter := NewStaticAdapter("DTDC", nil, true, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := adapter.CheckServiceability(ctx, &ServiceabilityRequest{
		PickupPincode:   "400001",
		DeliveryPincode: "560001",
		Mode:            "surface",
	}); err == nil {
		t.Error("CheckServiceability() ignored the cancelled context")
	}
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(NewStaticAdapter("DELHIVERY", nil, true, nil)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := registry.Register(NewStaticAdapter("BLUEDART", nil, true, nil)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := registry.Register(NewStaticAdapter("DELHIVERY", nil, true, nil)); err == nil {
		t.Error("Register() accepted a duplicate courier code")
	}

	if _, ok := registry.Get("BLUEDART"); !ok {
		t.Error("Get(BLUEDART) found nothing")
	}
	if _, ok := registry.Get("DTDC"); ok {
		t.Error("Get(DTDC) found an unregistered adapter")
	}

	codes := registry.Codes()
	if len(codes) != 2 || codes[0] != "BLUEDART" || codes[1] != "DELHIVERY" {
		t.Errorf("Codes() = %v, want sorted [BLUEDART DELHIVERY]", codes)
	}
}
