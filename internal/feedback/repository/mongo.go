package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/feedbackwall/feedback-service/internal/feedback"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionSource yields the feedback collection, connecting on demand.
// *database.Provider satisfies it.
type CollectionSource interface {
	Collection(ctx context.Context) (*mongo.Collection, error)
}

// StaticCollection adapts an already-open collection to CollectionSource.
type StaticCollection struct {
	Col *mongo.Collection
}

func (s StaticCollection) Collection(context.Context) (*mongo.Collection, error) {
	return s.Col, nil
}

// mongoDoc is the stored document shape.
type mongoDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Feedback  string             `bson:"feedback"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *mongoDoc) record() *feedback.Record {
	return &feedback.Record{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Feedback:  d.Feedback,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// listSort orders newest first; ObjectIDs grow with insertion so _id breaks
// ties between records sharing a millisecond.
var listSort = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// MongoRepo implements Repository on a MongoDB collection.
type MongoRepo struct {
	src CollectionSource
	now func() time.Time
}

func NewMongoRepo(src CollectionSource) *MongoRepo {
	return &MongoRepo{src: src, now: func() time.Time { return time.Now().UTC() }}
}

// EnsureIndexes creates the descending createdAt index used by List.
func (m *MongoRepo) EnsureIndexes(ctx context.Context) error {
	col, err := m.collection(ctx)
	if err != nil {
		return err
	}
	idx := mongo.IndexModel{Keys: listSort, Options: options.Index().SetName("createdAt_desc")}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// collection marks source failures with feedback.ErrStoreUnavailable.
func (m *MongoRepo) collection(ctx context.Context) (*mongo.Collection, error) {
	col, err := m.src.Collection(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", feedback.ErrStoreUnavailable, err)
	}
	return col, nil
}

func (m *MongoRepo) Create(ctx context.Context, rec *feedback.Record) error {
	col, err := m.collection(ctx)
	if err != nil {
		return err
	}
	// BSON dates carry millisecond precision
	now := m.now().Truncate(time.Millisecond)
	doc := mongoDoc{
		ID:        primitive.NewObjectID(),
		Name:      rec.Name,
		Feedback:  rec.Feedback,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := col.InsertOne(ctx, doc); err != nil {
		return err
	}
	rec.ID = doc.ID.Hex()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	return nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*feedback.Record, error) {
	col, err := m.collection(ctx)
	if err != nil {
		return nil, err
	}
	cur, err := col.Find(ctx, bson.M{}, options.Find().SetSort(listSort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*feedback.Record{}
	for cur.Next(ctx) {
		var d mongoDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.record())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Ping checks the collection's client can reach the server.
func (m *MongoRepo) Ping(ctx context.Context) error {
	col, err := m.collection(ctx)
	if err != nil {
		return err
	}
	return col.Database().Client().Ping(ctx, nil)
}
