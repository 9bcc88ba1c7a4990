package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Migration struct {
	Version     int
	Description string
	Up          func(context.Context, *mongo.Database) error
	Down        func(context.Context, *mongo.Database) error
}

type Migrator struct {
	db         *mongo.Database
	migrations []Migration
}

func NewMigrator(db *mongo.Database) *Migrator {
	return &Migrator{
		db:         db,
		migrations: getMigrations(),
	}
}

func (m *Migrator) Up(ctx context.Context) error {
	if err := m.createMigrationsCollection(ctx); err != nil {
		return err
	}

	currentVersion, err := m.getCurrentVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if migration.Version > currentVersion {
			log.Printf("Running migration %d: %s", migration.Version, migration.Description)

			if err := migration.Up(ctx, m.db); err != nil {
				return fmt.Errorf("migration %d failed: %w", migration.Version, err)
			}

			if err := m.updateVersion(ctx, migration.Version); err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}

			log.Printf("Migration %d completed successfully", migration.Version)
		}
	}

	return nil
}

func (m *Migrator) Down(ctx context.Context, targetVersion int) error {
	currentVersion, err := m.getCurrentVersion(ctx)
	if err != nil {
		return err
	}

	for i := len(m.migrations) - 1; i >= 0; i-- {
		migration := m.migrations[i]
		if migration.Version <= currentVersion && migration.Version > targetVersion {
			log.Printf("Reverting migration %d: %s", migration.Version, migration.Description)

			if err := migration.Down(ctx, m.db); err != nil {
				return fmt.Errorf("migration %d rollback failed: %w", migration.Version, err)
			}

			previousVersion := targetVersion
			if i > 0 {
				previousVersion = m.migrations[i-1].Version
			}

			if err := m.updateVersion(ctx, previousVersion); err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}

			log.Printf("Migration %d reverted successfully", migration.Version)
		}
	}

	return nil
}

func (m *Migrator) createMigrationsCollection(ctx context.Context) error {
	collections, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return err
	}

	for _, name := range collections {
		if name == "migrations" {
			return nil
		}
	}

	return m.db.CreateCollection(ctx, "migrations")
}

func (m *Migrator) getCurrentVersion(ctx context.Context) (int, error) {
	var result struct {
		Version int `bson:"version"`
	}

	err := m.db.Collection("migrations").FindOne(ctx, bson.D{}).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, err
	}

	return result.Version, nil
}

func (m *Migrator) updateVersion(ctx context.Context, version int) error {
	_, err := m.db.Collection("migrations").ReplaceOne(
		ctx,
		bson.D{},
		bson.D{{Key: "version", Value: version}, {Key: "updated_at", Value: time.Now()}},
		options.Replace().SetUpsert(true),
	)

	return err
}

func getMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create pincodes collection with indexes",
			Up:          createPincodesIndexes,
			Down: func(ctx context.Context, db *mongo.Database) error {
				return db.Collection("pincodes").Drop(ctx)
			},
		},
		{
			Version:     2,
			Description: "Create couriers collection with indexes",
			Up:          createCouriersIndexes,
			Down: func(ctx context.Context, db *mongo.Database) error {
				return db.Collection("couriers").Drop(ctx)
			},
		},
		{
			Version:     3,
			Description: "Create rate_cards collection with indexes",
			Up:          createRateCardsIndexes,
			Down: func(ctx context.Context, db *mongo.Database) error {
				return db.Collection("rate_cards").Drop(ctx)
			},
		},
	}
}

func createPincodesIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "pincode", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "state", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "state", Value: 1}, {Key: "district", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "is_metro", Value: 1}},
		},
	}

	_, err := db.Collection("pincodes").Indexes().CreateMany(ctx, indexes)
	return err
}

func createCouriersIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "is_active", Value: 1}},
		},
	}

	_, err := db.Collection("couriers").Indexes().CreateMany(ctx, indexes)
	return err
}

func createRateCardsIndexes(ctx context.Context, db *mongo.Database) error {
	// One row per cell and scope. The unique index is what makes an upsert
	// of the same (courier, mode, zone, slab, scope, seller) a replace.
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "courier", Value: 1},
				{Key: "mode", Value: 1},
				{Key: "zone", Value: 1},
				{Key: "slab_kg", Value: 1},
				{Key: "scope", Value: 1},
				{Key: "seller_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "scope", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "seller_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "updated_at", Value: -1}},
		},
	}

	_, err := db.Collection("rate_cards").Indexes().CreateMany(ctx, indexes)
	return err
}
