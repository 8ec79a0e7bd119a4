package documentRepo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoStore struct {
	db *mongo.Database
}

// NewMongoStore returns a Store backed by MongoDB. Document ids live in _id so the
// primary key index rejects duplicates.
func NewMongoStore(db *mongo.Database) Store {
	return &mongoStore{db: db}
}

func (s *mongoStore) Create(ctx context.Context, collection, id string, doc Document) error {
	record := bson.M{}
	for k, v := range doc {
		record[k] = v
	}
	record["_id"] = id

	_, err := s.db.Collection(collection).InsertOne(ctx, record)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("mongo create %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *mongoStore) Read(ctx context.Context, collection, id string) (Document, error) {
	var record bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo read %s/%s: %w", collection, id, err)
	}
	delete(record, "_id")
	return Document(record), nil
}

func (s *mongoStore) Update(ctx context.Context, collection, id string, partial Document) error {
	if len(partial) == 0 {
		return nil
	}
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(partial)})
	if err != nil {
		return fmt.Errorf("mongo update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}
