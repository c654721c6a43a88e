package main

import (
	"context"
	"equisim/internal/model"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// seededResponse is one canned respondent for the demo session.
type seededResponse struct {
	lean      float64
	scenario  string
	principle string
}

// Three scenario clusters with distinct leans, spread over two hours so the
// drift timeline has something to show.
var cannedResponses = []seededResponse{
	{lean: 80, scenario: "triage", principle: "utilitarian"},
	{lean: 75, scenario: "triage", principle: "utilitarian"},
	{lean: 70, scenario: "triage", principle: "prioritarian"},
	{lean: 65, scenario: "triage", principle: "utilitarian"},
	{lean: 45, scenario: "lending", principle: "egalitarian"},
	{lean: 40, scenario: "lending", principle: "egalitarian"},
	{lean: 35, scenario: "lending", principle: "prioritarian"},
	{lean: 30, scenario: "lending", principle: "egalitarian"},
	{lean: 25, scenario: "lending", principle: "egalitarian"},
	{lean: 15, scenario: "admissions", principle: "egalitarian"},
	{lean: 15, scenario: "admissions", principle: "prioritarian"},
	{lean: 10, scenario: "admissions", principle: "egalitarian"},
}

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database("equisim")

	// Host ID observed in logs
	hostID := "host_4f21ac09"
	sessionCode := "DEMO42"

	rate := 0.62
	session := model.Session{
		Code:       sessionCode,
		HostID:     hostID,
		Title:      "Lending Policy Deliberation",
		DomainHint: model.DomainLending,
		Asymmetry: &model.GroupAsymmetry{
			Attribute: "region",
			Groups: []model.GroupStat{
				{Name: "Urban", Count: 900, OutcomeRate: &rate},
				{Name: "Rural", Count: 300},
			},
		},
		Status:    model.SessionOpen,
		CreatedAt: time.Now(),
	}

	sessions := db.Collection("sessions")
	if _, err := sessions.InsertOne(ctx, session); err != nil {
		log.Fatalf("Failed to insert session: %v", err)
	}
	fmt.Printf("Seeded session %s\n", sessionCode)

	questions := []model.ValueQuestion{
		{
			QuestionType:     model.QuestionTypeLikert,
			Prompt:           "The system should make as few mistakes as possible, even if some groups are affected more than others.",
			MapsTo:           model.ObjectiveAccuracy,
			WeightMultiplier: 1.2,
		},
		{
			QuestionType:          model.QuestionTypeLikert,
			Prompt:                "Outcomes should be as even as possible across population groups, even at some cost to overall performance.",
			MapsTo:                model.ObjectiveFairness,
			WeightMultiplier:      1.4,
			RelatedGroupAttribute: "region",
		},
		{
			QuestionType:     model.QuestionTypeLikert,
			Prompt:           "The system should behave predictably when conditions shift from what it was built on.",
			MapsTo:           model.ObjectiveRobustness,
			WeightMultiplier: 1.0,
		},
		{
			QuestionType:          model.QuestionTypeBinary,
			Prompt:                "If two groups get different error rates, the system should be corrected even if total errors go up.",
			MapsTo:                model.ObjectiveFairness,
			WeightMultiplier:      1.1,
			RelatedGroupAttribute: "region",
		},
		{
			QuestionType:     model.QuestionTypeBinary,
			Prompt:           "A system that degrades unpredictably under unusual inputs is unacceptable, whatever its average performance.",
			MapsTo:           model.ObjectiveRobustness,
			WeightMultiplier: 0.9,
		},
	}

	questionDocs := make([]interface{}, 0, len(questions))
	for i := range questions {
		questions[i].ID = uuid.New().String()
		questions[i].SessionCode = sessionCode
		questions[i].SortOrder = i
		questionDocs = append(questionDocs, questions[i])
	}
	if _, err := db.Collection("value_questions").InsertMany(ctx, questionDocs); err != nil {
		log.Fatalf("Failed to insert questions: %v", err)
	}
	fmt.Printf("Seeded %d value questions\n", len(questions))

	base := time.Now().Add(-2 * time.Hour)
	surveyDocs := make([]interface{}, 0, len(cannedResponses))
	for i, c := range cannedResponses {
		surveyDocs = append(surveyDocs, model.SurveyResponse{
			ID:                 uuid.New().String(),
			SessionCode:        sessionCode,
			ParticipantID:      fmt.Sprintf("p_seed%04d", i),
			AccuracyVsFairness: c.lean,
			Scenario:           c.scenario,
			Principle:          c.principle,
			SubmittedAt:        base.Add(time.Duration(i) * 10 * time.Minute),
		})
	}
	if _, err := db.Collection("survey_responses").InsertMany(ctx, surveyDocs); err != nil {
		log.Fatalf("Failed to insert survey responses: %v", err)
	}
	fmt.Printf("Seeded %d survey responses\n", len(cannedResponses))

	fmt.Println("Done")
}
