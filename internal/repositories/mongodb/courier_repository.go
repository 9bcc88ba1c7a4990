package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/repositories/interfaces"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/utils"
)

const courierRosterCacheTTL = 5 * time.Minute

type courierRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewCourierRepository(db *mongo.Database, cache CacheService) interfaces.CourierRepository {
	return &courierRepository{
		collection: db.Collection("couriers"),
		cache:      cache,
	}
}

func (r *courierRepository) List(ctx context.Context) ([]*models.Courier, error) {
	return r.findCouriers(ctx, bson.M{})
}

func (r *courierRepository) ListActive(ctx context.Context) ([]*models.Courier, error) {
	// Try cache first
	cacheKey := utils.CacheCourierPrefix + "active_roster"
	if r.cache != nil {
		var couriers []*models.Courier
		if err := r.cache.Get(ctx, cacheKey, &couriers); err == nil {
			return couriers, nil
		}
	}

	couriers, err := r.findCouriers(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}

	// Cache the result
	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, couriers, courierRosterCacheTTL)
	}

	return couriers, nil
}

func (r *courierRepository) GetByCode(ctx context.Context, code models.CourierCode) (*models.Courier, error) {
	var courier models.Courier
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&courier)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("courier not found")
		}
		return nil, fmt.Errorf("failed to get courier: %w", err)
	}

	return &courier, nil
}

func (r *courierRepository) Upsert(ctx context.Context, courier *models.Courier) error {
	courier.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"code":             courier.Code,
			"name":             courier.Name,
			"is_active":        courier.IsActive,
			"supports_cod":     courier.SupportsCOD,
			"supported_modes":  courier.SupportedModes,
			"probe_timeout_ms": courier.ProbeTimeoutMS,
			"updated_at":       courier.UpdatedAt,
		},
		"$setOnInsert": bson.M{"created_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"code": courier.Code},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert courier: %w", err)
	}

	if result.UpsertedID != nil {
		if id, ok := result.UpsertedID.(primitive.ObjectID); ok {
			courier.ID = id
		}
	}

	r.invalidateRoster(ctx)
	return nil
}

func (r *courierRepository) SetActive(ctx context.Context, code models.CourierCode, active bool) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"code": code},
		bson.M{"$set": bson.M{"is_active": active, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update courier status: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("courier not found")
	}

	r.invalidateRoster(ctx)
	return nil
}

// Helper methods
func (r *courierRepository) findCouriers(ctx context.Context, filter bson.M) ([]*models.Courier, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find couriers: %w", err)
	}
	defer cursor.Close(ctx)

	var couriers []*models.Courier
	for cursor.Next(ctx) {
		var courier models.Courier
		if err := cursor.Decode(&courier); err != nil {
			return nil, fmt.Errorf("failed to decode courier: %w", err)
		}
		couriers = append(couriers, &courier)
	}

	return couriers, nil
}

func (r *courierRepository) invalidateRoster(ctx context.Context) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheCourierPrefix+"active_roster")
	}
}
