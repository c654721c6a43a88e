package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"equisim/internal/model"
)

// QuestionRepo handles MongoDB operations for value questions. Questions are
// written once when a session is created and never updated afterwards.
type QuestionRepo interface {
	CreateMany(ctx context.Context, questions []model.ValueQuestion) error
	GetBySession(ctx context.Context, sessionCode string) ([]model.ValueQuestion, error)
}

type questionRepo struct {
	collection *mongo.Collection
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection("value_questions"),
	}
}

func (r *questionRepo) CreateMany(ctx context.Context, questions []model.ValueQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	docs := make([]interface{}, len(questions))
	for i, q := range questions {
		docs[i] = q
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *questionRepo) GetBySession(ctx context.Context, sessionCode string) ([]model.ValueQuestion, error) {
	opts := options.Find().SetSort(bson.M{"sortOrder": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"sessionCode": sessionCode}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []model.ValueQuestion
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
