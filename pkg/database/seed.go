package database

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Seed loads demo couriers, pincodes and global rate cards. Safe to run
// repeatedly; every write is an upsert on the natural key.
func Seed(ctx context.Context, db *mongo.Database) error {
	if err := seedCouriers(ctx, db); err != nil {
		return fmt.Errorf("failed to seed couriers: %w", err)
	}
	if err := seedPincodes(ctx, db); err != nil {
		return fmt.Errorf("failed to seed pincodes: %w", err)
	}
	if err := seedRateCards(ctx, db); err != nil {
		return fmt.Errorf("failed to seed rate cards: %w", err)
	}
	return nil
}

func seedCouriers(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	couriers := []bson.M{
		{"code": "DELHIVERY", "name": "Delhivery", "is_active": true, "supports_cod": true, "supported_modes": []string{"surface", "air"}, "probe_timeout_ms": 3000},
		{"code": "BLUEDART", "name": "Blue Dart", "is_active": true, "supports_cod": true, "supported_modes": []string{"surface", "air"}, "probe_timeout_ms": 3000},
		{"code": "DTDC", "name": "DTDC", "is_active": true, "supports_cod": true, "supported_modes": []string{"surface"}, "probe_timeout_ms": 3000},
		{"code": "XPRESSBEES", "name": "Xpressbees", "is_active": true, "supports_cod": true, "supported_modes": []string{"surface", "air"}, "probe_timeout_ms": 3000},
		{"code": "ECOM_EXPRESS", "name": "Ecom Express", "is_active": true, "supports_cod": false, "supported_modes": []string{"surface"}, "probe_timeout_ms": 3000},
	}

	collection := db.Collection("couriers")
	for _, courier := range couriers {
		courier["updated_at"] = time.Now()
		update := bson.M{
			"$set":         courier,
			"$setOnInsert": bson.M{"created_at": time.Now()},
		}
		_, err := collection.UpdateOne(
			ctx,
			bson.M{"code": courier["code"]},
			update,
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}

	log.Printf("Seeded %d couriers", len(couriers))
	return nil
}

func seedPincodes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pincodes := []bson.M{
		{"pincode": "110001", "city": "New Delhi", "district": "New Delhi", "state": "Delhi", "region": "north", "is_metro": true},
		{"pincode": "110092", "city": "Delhi", "district": "East Delhi", "state": "Delhi", "region": "north", "is_metro": true},
		{"pincode": "400001", "city": "Mumbai", "district": "Mumbai", "state": "Maharashtra", "region": "west", "is_metro": true},
		{"pincode": "400050", "city": "Mumbai", "district": "Mumbai Suburban", "state": "Maharashtra", "region": "west", "is_metro": true},
		{"pincode": "411001", "city": "Pune", "district": "Pune", "state": "Maharashtra", "region": "west", "is_metro": true},
		{"pincode": "560001", "city": "Bengaluru", "district": "Bengaluru Urban", "state": "Karnataka", "region": "south", "is_metro": true},
		{"pincode": "560103", "city": "Bengaluru", "district": "Bengaluru Urban", "state": "Karnataka", "region": "south", "is_metro": true},
		{"pincode": "600001", "city": "Chennai", "district": "Chennai", "state": "Tamil Nadu", "region": "south", "is_metro": true},
		{"pincode": "700001", "city": "Kolkata", "district": "Kolkata", "state": "West Bengal", "region": "east", "is_metro": true},
		{"pincode": "500001", "city": "Hyderabad", "district": "Hyderabad", "state": "Telangana", "region": "south", "is_metro": true},
		{"pincode": "380001", "city": "Ahmedabad", "district": "Ahmedabad", "state": "Gujarat", "region": "west", "is_metro": true},
		{"pincode": "302001", "city": "Jaipur", "district": "Jaipur", "state": "Rajasthan", "region": "north", "is_metro": false},
		{"pincode": "226001", "city": "Lucknow", "district": "Lucknow", "state": "Uttar Pradesh", "region": "north", "is_metro": false},
		{"pincode": "781001", "city": "Guwahati", "district": "Kamrup Metropolitan", "state": "Assam", "region": "northeast", "is_metro": false},
		{"pincode": "793001", "city": "Shillong", "district": "East Khasi Hills", "state": "Meghalaya", "region": "northeast", "is_metro": false},
		{"pincode": "190001", "city": "Srinagar", "district": "Srinagar", "state": "Jammu and Kashmir", "region": "north", "is_metro": false},
		{"pincode": "171001", "city": "Shimla", "district": "Shimla", "state": "Himachal Pradesh", "region": "north", "is_metro": false},
		{"pincode": "744101", "city": "Port Blair", "district": "South Andaman", "state": "Andaman and Nicobar Islands", "region": "east", "is_metro": false},
		{"pincode": "682001", "city": "Kochi", "district": "Ernakulam", "state": "Kerala", "region": "south", "is_metro": false},
		{"pincode": "751001", "city": "Bhubaneswar", "district": "Khordha", "state": "Odisha", "region": "east", "is_metro": false},
	}

	collection := db.Collection("pincodes")
	for _, pincode := range pincodes {
		pincode["updated_at"] = time.Now()
		update := bson.M{
			"$set":         pincode,
			"$setOnInsert": bson.M{"created_at": time.Now()},
		}
		_, err := collection.UpdateOne(
			ctx,
			bson.M{"pincode": pincode["pincode"]},
			update,
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}

	log.Printf("Seeded %d pincodes", len(pincodes))
	return nil
}

func seedRateCards(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	baseByCourier := map[string]float64{
		"DELHIVERY":    32,
		"BLUEDART":     45,
		"DTDC":         28,
		"XPRESSBEES":   30,
		"ECOM_EXPRESS": 27,
	}

	multiplierByZone := map[string]float64{
		"within_city":    1.0,
		"within_state":   1.2,
		"within_region":  1.35,
		"metro_to_metro": 1.5,
		"rest_of_india":  1.8,
		"special":        2.2,
	}

	surfaceDaysByZone := map[string]int{
		"within_city":    2,
		"within_state":   3,
		"within_region":  4,
		"metro_to_metro": 3,
		"rest_of_india":  5,
		"special":        7,
	}

	modesByCourier := map[string][]string{
		"DELHIVERY":    {"surface", "air"},
		"BLUEDART":     {"surface", "air"},
		"DTDC":         {"surface"},
		"XPRESSBEES":   {"surface", "air"},
		"ECOM_EXPRESS": {"surface"},
	}

	slabs := []float64{0.5, 1.0, 2.0, 5.0}

	collection := db.Collection("rate_cards")
	count := 0
	for courier, base := range baseByCourier {
		for _, mode := range modesByCourier[courier] {
			modeFactor := 1.0
			if mode == "air" {
				modeFactor = 1.6
			}
			for zone, multiplier := range multiplierByZone {
				days := surfaceDaysByZone[zone]
				if mode == "air" {
					days = maxInt(1, days-2)
				}
				for i, slab := range slabs {
					slabFactor := 1.0 + 0.55*float64(i)
					rate := math.Round(base * multiplier * modeFactor * slabFactor)
					additional := math.Round(base * multiplier * modeFactor * 0.4)

					card := bson.M{
						"courier":             courier,
						"mode":                mode,
						"zone":                zone,
						"slab_kg":             slab,
						"scope":               "global",
						"seller_id":           "",
						"base_rate":           rate,
						"additional_rate":     additional,
						"cod_flat_fee":        25.0,
						"cod_percent":         2.0,
						"minimum_billable_kg": 0.0,
						"estimated_days":      days,
						"updated_at":          time.Now(),
					}

					filter := bson.M{
						"courier":   courier,
						"mode":      mode,
						"zone":      zone,
						"slab_kg":   slab,
						"scope":     "global",
						"seller_id": "",
					}
					update := bson.M{
						"$set":         card,
						"$setOnInsert": bson.M{"created_at": time.Now()},
					}
					_, err := collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
					if err != nil {
						return err
					}
					count++
				}
			}
		}
	}

	log.Printf("Seeded %d rate cards", count)
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
