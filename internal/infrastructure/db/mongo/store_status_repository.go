package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
)

const (
	storeStatusCollection = "store_status"
	// storeStatusID is the fixed key of the singleton document.
	storeStatusID = "store"
)

type StoreStatusRepository struct {
	coll *mongo.Collection
}

func NewStoreStatusRepository(db *mongo.Database) *StoreStatusRepository {
	return &StoreStatusRepository{coll: db.Collection(storeStatusCollection)}
}

type storeStatusDoc struct {
	ID        string    `bson:"_id"`
	Status    string    `bson:"status"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d storeStatusDoc) toDomain() (*domain.StoreStatus, error) {
	state := domain.StoreState(d.Status)
	if !state.Valid() {
		return nil, fmt.Errorf("store status: stored value %q is invalid", d.Status)
	}
	return &domain.StoreStatus{Status: state, UpdatedAt: d.UpdatedAt.UTC()}, nil
}

// GetOrInit returns the singleton, inserting initial atomically when absent.
func (r *StoreStatusRepository) GetOrInit(ctx context.Context, initial domain.StoreStatus) (*domain.StoreStatus, error) {
	update := bson.M{"$setOnInsert": bson.M{
		"status":    string(initial.Status),
		"updatedAt": initial.UpdatedAt,
	}}
	return r.upsert(ctx, update)
}

func (r *StoreStatusRepository) Set(ctx context.Context, status domain.StoreStatus) (*domain.StoreStatus, error) {
	update := bson.M{"$set": bson.M{
		"status":    string(status.Status),
		"updatedAt": status.UpdatedAt,
	}}
	return r.upsert(ctx, update)
}

func (r *StoreStatusRepository) upsert(ctx context.Context, update bson.M) (*domain.StoreStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc storeStatusDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": storeStatusID}, update, opts).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent first write inserted the document; the retry matches it.
		err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": storeStatusID}, update, opts).Decode(&doc)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("store status: upsert returned no document")
		}
		return nil, fmt.Errorf("store status: %w", err)
	}
	return doc.toDomain()
}
