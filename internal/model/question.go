package model

import "time"

// QuestionType defines the answer scale of a value question
type QuestionType string

const (
	QuestionTypeLikert QuestionType = "likert" // 1-5 agreement scale
	QuestionTypeBinary QuestionType = "binary" // 0/1 yes-no
)

// ValueQuestion is a single elicitation question shown to participants.
// Questions are generated once per session and never change afterwards.
type ValueQuestion struct {
	ID                    string       `json:"id" bson:"_id"`
	SessionCode           string       `json:"sessionCode" bson:"sessionCode"`
	QuestionType          QuestionType `json:"questionType" bson:"questionType"`
	Prompt                string       `json:"prompt" bson:"prompt"`
	MapsTo                Objective    `json:"mapsTo" bson:"mapsTo"`
	WeightMultiplier      float64      `json:"weightMultiplier" bson:"weightMultiplier"`
	RelatedGroupAttribute string       `json:"relatedGroupAttribute,omitempty" bson:"relatedGroupAttribute,omitempty"`
	SortOrder             int          `json:"sortOrder" bson:"sortOrder"`
}

// NeutralAnswer is the display-time default for likert questions a
// participant never answered. Inference skips unanswered questions
// entirely; this constant is only for consumers that need a value.
const NeutralAnswer = 3

// ValueResponse is one participant's answer to one value question.
type ValueResponse struct {
	QuestionID    string    `json:"questionId" bson:"questionId"`
	SessionCode   string    `json:"sessionCode" bson:"sessionCode"`
	ParticipantID string    `json:"participantId" bson:"participantId"`
	Answer        int       `json:"answer" bson:"answer"` // 1-5 likert, 0/1 binary
	SubmittedAt   time.Time `json:"submittedAt" bson:"submittedAt"`
}
