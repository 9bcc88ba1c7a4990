package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TariffScope string

const (
	TariffScopeGlobal TariffScope = "global"
	TariffScopeSeller TariffScope = "seller"
)

// TariffRow is one rate-card entry keyed by (courier, mode, zone, slab).
// Seller-scoped rows fully replace the global row for the same key; there is
// no field-level merge.
type TariffRow struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Courier  CourierCode        `json:"courier" bson:"courier" validate:"required,courier_code"`
	Mode     ServiceMode        `json:"mode" bson:"mode" validate:"required,service_mode"`
	Zone     Zone               `json:"zone" bson:"zone" validate:"required,zone"`
	SlabKG   float64            `json:"slab_kg" bson:"slab_kg" validate:"required,gt=0"`
	Scope    TariffScope        `json:"scope" bson:"scope" validate:"required"`
	SellerID string             `json:"seller_id,omitempty" bson:"seller_id,omitempty"`

	BaseRate          float64 `json:"base_rate" bson:"base_rate" validate:"gte=0"`
	AdditionalRate    float64 `json:"additional_rate" bson:"additional_rate" validate:"gte=0"`
	CODFlatFee        float64 `json:"cod_flat_fee" bson:"cod_flat_fee" validate:"gte=0"`
	CODPercent        float64 `json:"cod_percent" bson:"cod_percent" validate:"gte=0"`
	MinimumBillableKG float64 `json:"minimum_billable_kg" bson:"minimum_billable_kg" validate:"gte=0"`
	EstimatedDays     int     `json:"estimated_days,omitempty" bson:"estimated_days,omitempty" validate:"gte=0"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// TariffKey identifies a rate-card cell independent of scope.
type TariffKey struct {
	Courier CourierCode
	Mode    ServiceMode
	Zone    Zone
	SlabKG  float64
}

func (k TariffKey) String() string {
	return fmt.Sprintf("%s/%s/%s/%.1f", k.Courier, k.Mode, k.Zone, k.SlabKG)
}

func (r *TariffRow) Key() TariffKey {
	return TariffKey{Courier: r.Courier, Mode: r.Mode, Zone: r.Zone, SlabKG: r.SlabKG}
}

// EffectiveTariff is the row actually applied for one seller and key after
// override resolution.
type EffectiveTariff struct {
	Row        *TariffRow `json:"row"`
	IsOverride bool       `json:"is_override"`
}
