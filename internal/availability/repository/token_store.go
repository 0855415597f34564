package repository

import (
	"context"
	"errors"
	"time"

	availerrors "carve/internal/availability/errors"
	"carve/pkg/config"
	"carve/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const TokenRecordCollection = "Token_records"

// TokenStore persists per-slice booking metadata under the slice's token,
// with a fixed expiration. Mongo's TTL monitor removes expired records.
type TokenStore interface {
	SetWithExpire(ctx context.Context, record *model.TokenRecord, ttl time.Duration) error
	Get(ctx context.Context, token string) (*model.TokenRecord, error)
}

type mongoTokenStore struct {
	collection *mongo.Collection
}

func NewMongoTokenStore(cfg *config.Config) TokenStore {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTokenStore{
		collection: db.Collection(TokenRecordCollection),
	}
}

// SetWithExpire upserts: repeating a search reissues identical tokens for
// identical slices, and the fresh write extends the expiration.
func (s *mongoTokenStore) SetWithExpire(ctx context.Context, record *model.TokenRecord, ttl time.Duration) error {
	now := time.Now()
	record.CreatedAt = now
	record.ExpiresAt = now.Add(ttl)

	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": record.Token}, record, opts)
	return err
}

func (s *mongoTokenStore) Get(ctx context.Context, token string) (*model.TokenRecord, error) {
	var record model.TokenRecord
	err := s.collection.FindOne(ctx, bson.M{"_id": token}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, availerrors.ErrRecordNotFound
		}
		return nil, err
	}

	// The TTL monitor runs periodically; treat records past their expiry as
	// already gone.
	if time.Now().After(record.ExpiresAt) {
		return nil, availerrors.ErrRecordNotFound
	}

	return &record, nil
}
