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

type tariffRepository struct {
	collection *mongo.Collection
}

func NewTariffRepository(db *mongo.Database) interfaces.TariffRepository {
	return &tariffRepository{
		collection: db.Collection("rate_cards"),
	}
}

// Snapshot loading
func (r *tariffRepository) ListGlobal(ctx context.Context) ([]*models.TariffRow, error) {
	return r.findRows(ctx, bson.M{"scope": models.TariffScopeGlobal})
}

func (r *tariffRepository) ListOverrides(ctx context.Context) ([]*models.TariffRow, error) {
	return r.findRows(ctx, bson.M{"scope": models.TariffScopeSeller})
}

// Admin operations
func (r *tariffRepository) List(ctx context.Context, filter *interfaces.TariffFilter, params *utils.PaginationParams) ([]*models.TariffRow, int64, error) {
	query := bson.M{}
	if filter != nil {
		if filter.Courier != "" {
			query["courier"] = filter.Courier
		}
		if filter.Mode != "" {
			query["mode"] = filter.Mode
		}
		if filter.Zone != "" {
			query["zone"] = filter.Zone
		}
		if filter.Scope != "" {
			query["scope"] = filter.Scope
		}
		if filter.SellerID != "" {
			query["seller_id"] = filter.SellerID
		}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count rate cards: %w", err)
	}

	opts := params.GetSortOptions()
	if params.Sort == "created_at" || params.Sort == "" {
		opts.SetSort(bson.D{{Key: "updated_at", Value: -1}})
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find rate cards: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []*models.TariffRow
	for cursor.Next(ctx) {
		var row models.TariffRow
		if err := cursor.Decode(&row); err != nil {
			return nil, 0, fmt.Errorf("failed to decode rate card: %w", err)
		}
		rows = append(rows, &row)
	}

	return rows, total, nil
}

func (r *tariffRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TariffRow, error) {
	var row models.TariffRow
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&row)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("rate card not found")
		}
		return nil, fmt.Errorf("failed to get rate card: %w", err)
	}

	return &row, nil
}

func (r *tariffRepository) Upsert(ctx context.Context, row *models.TariffRow) error {
	row.UpdatedAt = time.Now()

	filter := bson.M{
		"courier":   row.Courier,
		"mode":      row.Mode,
		"zone":      row.Zone,
		"slab_kg":   row.SlabKG,
		"scope":     row.Scope,
		"seller_id": row.SellerID,
	}

	update := bson.M{
		"$set": bson.M{
			"courier":             row.Courier,
			"mode":                row.Mode,
			"zone":                row.Zone,
			"slab_kg":             row.SlabKG,
			"scope":               row.Scope,
			"seller_id":           row.SellerID,
			"base_rate":           row.BaseRate,
			"additional_rate":     row.AdditionalRate,
			"cod_flat_fee":        row.CODFlatFee,
			"cod_percent":         row.CODPercent,
			"minimum_billable_kg": row.MinimumBillableKG,
			"estimated_days":      row.EstimatedDays,
			"updated_at":          row.UpdatedAt,
		},
		"$setOnInsert": bson.M{"created_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert rate card: %w", err)
	}

	if result.UpsertedID != nil {
		if id, ok := result.UpsertedID.(primitive.ObjectID); ok {
			row.ID = id
		}
	}

	return nil
}

func (r *tariffRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete rate card: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("rate card not found")
	}

	return nil
}

// Helper methods
func (r *tariffRepository) findRows(ctx context.Context, filter bson.M) ([]*models.TariffRow, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find rate cards: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []*models.TariffRow
	for cursor.Next(ctx) {
		var row models.TariffRow
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode rate card: %w", err)
		}
		rows = append(rows, &row)
	}

	return rows, nil
}
