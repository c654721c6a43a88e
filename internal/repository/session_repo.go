package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"equisim/internal/model"
)

// SessionRepo handles MongoDB operations for deliberation sessions
type SessionRepo interface {
	Create(ctx context.Context, session *model.Session) error
	GetByCode(ctx context.Context, code string) (*model.Session, error)
	GetByHostID(ctx context.Context, hostID string) ([]*model.Session, error)
	SetStatus(ctx context.Context, code string, status model.SessionStatus) error
	AddParticipant(ctx context.Context, participant *model.Participant) error
	GetParticipants(ctx context.Context, code string) ([]*model.Participant, error)
}

type sessionRepo struct {
	sessions     *mongo.Collection
	participants *mongo.Collection
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(db *mongo.Database) SessionRepo {
	return &sessionRepo{
		sessions:     db.Collection("sessions"),
		participants: db.Collection("participants"),
	}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.Session) error {
	session.CreatedAt = time.Now()
	_, err := r.sessions.InsertOne(ctx, session)
	return err
}

func (r *sessionRepo) GetByCode(ctx context.Context, code string) (*model.Session, error) {
	var session model.Session
	err := r.sessions.FindOne(ctx, bson.M{"code": code}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) GetByHostID(ctx context.Context, hostID string) ([]*model.Session, error) {
	cursor, err := r.sessions.Find(ctx, bson.M{"hostId": hostID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []*model.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepo) SetStatus(ctx context.Context, code string, status model.SessionStatus) error {
	_, err := r.sessions.UpdateOne(ctx, bson.M{"code": code}, bson.M{"$set": bson.M{"status": status}})
	return err
}

func (r *sessionRepo) AddParticipant(ctx context.Context, participant *model.Participant) error {
	participant.JoinedAt = time.Now()
	_, err := r.participants.InsertOne(ctx, participant)
	return err
}

func (r *sessionRepo) GetParticipants(ctx context.Context, code string) ([]*model.Participant, error) {
	cursor, err := r.participants.Find(ctx, bson.M{"sessionCode": code})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var participants []*model.Participant
	if err := cursor.All(ctx, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}
