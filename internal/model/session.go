package model

import "time"

type SessionStatus string

const (
	SessionOpen   SessionStatus = "open"
	SessionClosed SessionStatus = "closed"
)

// Session is one deliberation round: a host opens it, participants join with
// the code and answer the session's value questions, then the host runs the
// community simulation.
type Session struct {
	Code       string          `json:"code" bson:"code"`
	HostID     string          `json:"hostId" bson:"hostId"`
	Title      string          `json:"title" bson:"title"`
	DomainHint DomainHint      `json:"domainHint" bson:"domainHint"`
	Asymmetry  *GroupAsymmetry `json:"asymmetry,omitempty" bson:"asymmetry,omitempty"`
	Status     SessionStatus   `json:"status" bson:"status"`
	CreatedAt  time.Time       `json:"createdAt" bson:"createdAt"`
}

// Participant is one joined respondent in a session.
type Participant struct {
	ID          string    `json:"id" bson:"_id"`
	SessionCode string    `json:"sessionCode" bson:"sessionCode"`
	Nickname    string    `json:"nickname" bson:"nickname"`
	JoinedAt    time.Time `json:"joinedAt" bson:"joinedAt"`
}
