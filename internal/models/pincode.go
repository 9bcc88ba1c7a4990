package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PincodeRecord is immutable postal reference data keyed by pincode.
type PincodeRecord struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Pincode  string             `json:"pincode" bson:"pincode" validate:"required,pincode"`
	City     string             `json:"city" bson:"city" validate:"required"`
	District string             `json:"district" bson:"district"`
	State    string             `json:"state" bson:"state" validate:"required"`
	Region   string             `json:"region" bson:"region"`
	IsMetro  bool               `json:"is_metro" bson:"is_metro"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (p *PincodeRecord) NormalizedState() string {
	return NormalizePlace(p.State)
}

func (p *PincodeRecord) NormalizedCity() string {
	return NormalizePlace(p.City)
}

func (p *PincodeRecord) NormalizedDistrict() string {
	return NormalizePlace(p.District)
}

// MacroRegion prefers the record's own region column and falls back to the
// state-to-region table.
func (p *PincodeRecord) MacroRegion() string {
	if p.Region != "" {
		return NormalizePlace(p.Region)
	}
	return RegionOf(p.State)
}
