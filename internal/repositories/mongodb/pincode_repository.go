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

const pincodeCacheTTL = 24 * time.Hour

type pincodeRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewPincodeRepository(db *mongo.Database, cache CacheService) interfaces.PincodeRepository {
	return &pincodeRepository{
		collection: db.Collection("pincodes"),
		cache:      cache,
	}
}

func (r *pincodeRepository) GetByPincode(ctx context.Context, pincode string) (*models.PincodeRecord, error) {
	// Try cache first
	cacheKey := fmt.Sprintf("%s%s", utils.CachePincodePrefix, pincode)
	if r.cache != nil {
		var record models.PincodeRecord
		if err := r.cache.Get(ctx, cacheKey, &record); err == nil {
			return &record, nil
		}
	}

	var record models.PincodeRecord
	err := r.collection.FindOne(ctx, bson.M{"pincode": pincode}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pincode: %w", err)
	}

	// Cache the result
	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, &record, pincodeCacheTTL)
	}

	return &record, nil
}

func (r *pincodeRepository) Upsert(ctx context.Context, record *models.PincodeRecord) error {
	record.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"pincode":    record.Pincode,
			"city":       record.City,
			"district":   record.District,
			"state":      record.State,
			"region":     record.Region,
			"is_metro":   record.IsMetro,
			"updated_at": record.UpdatedAt,
		},
		"$setOnInsert": bson.M{"created_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"pincode": record.Pincode},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert pincode: %w", err)
	}

	if result.UpsertedID != nil {
		if id, ok := result.UpsertedID.(primitive.ObjectID); ok {
			record.ID = id
		}
	}

	// Invalidate cache
	if r.cache != nil {
		cacheKey := fmt.Sprintf("%s%s", utils.CachePincodePrefix, record.Pincode)
		r.cache.Delete(ctx, cacheKey)
	}

	return nil
}

func (r *pincodeRepository) BulkUpsert(ctx context.Context, records []*models.PincodeRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	writes := make([]mongo.WriteModel, 0, len(records))
	now := time.Now()
	for _, record := range records {
		update := bson.M{
			"$set": bson.M{
				"pincode":    record.Pincode,
				"city":       record.City,
				"district":   record.District,
				"state":      record.State,
				"region":     record.Region,
				"is_metro":   record.IsMetro,
				"updated_at": now,
			},
			"$setOnInsert": bson.M{"created_at": now},
		}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"pincode": record.Pincode}).
			SetUpdate(update).
			SetUpsert(true))
	}

	result, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("failed to bulk upsert pincodes: %w", err)
	}

	// Directory imports run to tens of thousands of rows; dropping the whole
	// pincode keyspace beats issuing one DEL per record.
	if r.cache != nil {
		r.cache.DeletePattern(ctx, utils.CachePincodePrefix+"*")
	}

	return int(result.UpsertedCount + result.MatchedCount), nil
}

func (r *pincodeRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count pincodes: %w", err)
	}
	return count, nil
}
