package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maestrokit/maestro/internal/library"
)

const artistCollection = "artists"

// MongoStore persists artist aggregates as documents of an "artists"
// collection, one document per aggregate with the albums and songs embedded.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates an artist store over the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(artistCollection)}
}

// FindAll returns every artist ordered by name.
func (s *MongoStore) FindAll(ctx context.Context, order library.SortOrder) ([]library.Artist, error) {
	direction := -1
	if order == library.NameAscending {
		direction = 1
	}
	cursor, err := s.coll.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "name", Value: direction}}))
	if err != nil {
		return nil, fmt.Errorf("querying artists: %w", err)
	}
	defer cursor.Close(ctx)

	var artists []library.Artist
	if err := cursor.All(ctx, &artists); err != nil {
		return nil, fmt.Errorf("decoding artists: %w", err)
	}
	return artists, nil
}

// FindByID returns the artist under id, or (nil, nil) when absent.
func (s *MongoStore) FindByID(ctx context.Context, id string) (*library.Artist, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// FindByName returns the first artist with the given name, or (nil, nil).
func (s *MongoStore) FindByName(ctx context.Context, name string) (*library.Artist, error) {
	return s.findOne(ctx, bson.M{"name": name})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*library.Artist, error) {
	var artist library.Artist
	err := s.coll.FindOne(ctx, filter).Decode(&artist)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying artist: %w", err)
	}
	return &artist, nil
}

// Save replaces the whole aggregate document, inserting it when absent.
func (s *MongoStore) Save(ctx context.Context, artist *library.Artist) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": artist.ID}, artist,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("saving artist %s: %w", artist.ID, err)
	}
	return nil
}

// DeleteByID removes the artist document under id.
func (s *MongoStore) DeleteByID(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("deleting artist %s: %w", id, err)
	}
	return nil
}
