package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"equisim/internal/model"
)

// RecommendationRepo handles MongoDB operations for engine runs
type RecommendationRepo interface {
	Create(ctx context.Context, rec *model.Recommendation) error
	GetLatest(ctx context.Context, sessionCode, participantID string) (*model.Recommendation, error)
	GetBySession(ctx context.Context, sessionCode string) ([]*model.Recommendation, error)
}

type recommendationRepo struct {
	collection *mongo.Collection
}

// NewRecommendationRepo creates a new recommendation repository
func NewRecommendationRepo(db *mongo.Database) RecommendationRepo {
	return &recommendationRepo{
		collection: db.Collection("recommendations"),
	}
}

func (r *recommendationRepo) Create(ctx context.Context, rec *model.Recommendation) error {
	rec.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, rec)
	return err
}

// GetLatest returns the newest run for a participant, or the newest
// community run when participantID is empty.
func (r *recommendationRepo) GetLatest(ctx context.Context, sessionCode, participantID string) (*model.Recommendation, error) {
	filter := bson.M{"sessionCode": sessionCode}
	if participantID == "" {
		filter["participantId"] = bson.M{"$exists": false}
	} else {
		filter["participantId"] = participantID
	}

	opts := options.FindOne().SetSort(bson.M{"createdAt": -1})
	var rec model.Recommendation
	err := r.collection.FindOne(ctx, filter, opts).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recommendationRepo) GetBySession(ctx context.Context, sessionCode string) ([]*model.Recommendation, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"sessionCode": sessionCode}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recs []*model.Recommendation
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}
