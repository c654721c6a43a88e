package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"equisim/internal/model"
)

// ResponseRepo handles MongoDB operations for value answers and the
// per-respondent survey records the community aggregation runs over.
type ResponseRepo interface {
	UpsertValueResponse(ctx context.Context, response *model.ValueResponse) error
	GetValueResponses(ctx context.Context, sessionCode, participantID string) ([]model.ValueResponse, error)
	UpsertSurveyResponse(ctx context.Context, response *model.SurveyResponse) error
	GetSurveyResponses(ctx context.Context, sessionCode string) ([]model.SurveyResponse, error)
}

type responseRepo struct {
	valueResponses  *mongo.Collection
	surveyResponses *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		valueResponses:  db.Collection("value_responses"),
		surveyResponses: db.Collection("survey_responses"),
	}
}

// UpsertValueResponse keeps one response per question per participant;
// resubmitting replaces the earlier answer.
func (r *responseRepo) UpsertValueResponse(ctx context.Context, response *model.ValueResponse) error {
	response.SubmittedAt = time.Now()
	filter := bson.M{
		"sessionCode":   response.SessionCode,
		"participantId": response.ParticipantID,
		"questionId":    response.QuestionID,
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.valueResponses.ReplaceOne(ctx, filter, response, opts)
	return err
}

func (r *responseRepo) GetValueResponses(ctx context.Context, sessionCode, participantID string) ([]model.ValueResponse, error) {
	cursor, err := r.valueResponses.Find(ctx, bson.M{
		"sessionCode":   sessionCode,
		"participantId": participantID,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []model.ValueResponse
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) UpsertSurveyResponse(ctx context.Context, response *model.SurveyResponse) error {
	response.SubmittedAt = time.Now()
	filter := bson.M{
		"sessionCode":   response.SessionCode,
		"participantId": response.ParticipantID,
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.surveyResponses.ReplaceOne(ctx, filter, response, opts)
	return err
}

func (r *responseRepo) GetSurveyResponses(ctx context.Context, sessionCode string) ([]model.SurveyResponse, error) {
	opts := options.Find().SetSort(bson.M{"submittedAt": 1})
	cursor, err := r.surveyResponses.Find(ctx, bson.M{"sessionCode": sessionCode}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []model.SurveyResponse
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}
