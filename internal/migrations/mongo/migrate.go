package mongo

import (
	"context"
	"fmt"

	"carve/internal/availability/repository"
	"carve/internal/migrations/mongo/validators"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RunMigration sets up the token record collection: schema validator plus
// the TTL index that expires booking metadata.
func RunMigration(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)

	if err := ensureCollection(ctx, db, repository.TokenRecordCollection, validators.TokenRecordValidator); err != nil {
		return err
	}

	if err := ensureTTLIndex(ctx, db.Collection(repository.TokenRecordCollection)); err != nil {
		return err
	}

	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	if len(names) == 0 {
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
		return nil
	}

	// Collection exists: refresh the validator in place.
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return fmt.Errorf("failed to update validator for %s: %w", name, err)
	}
	return nil
}

// ensureTTLIndex creates the expiry index. expireAfterSeconds of 0 makes
// Mongo delete each document at its own expires_at value, so the TTL itself
// stays configurable per record.
func ensureTTLIndex(ctx context.Context, coll *mongo.Collection) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_at_ttl"),
	}
	if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("failed to create TTL index: %w", err)
	}
	return nil
}
