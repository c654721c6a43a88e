package model

import "github.com/golang-jwt/jwt/v5"

// HostClaims are the JWT claims for a host token
type HostClaims struct {
	HostID string `json:"hostId"`
	jwt.RegisteredClaims
}

// ParticipantClaims are the JWT claims for a participant token
type ParticipantClaims struct {
	ParticipantID string `json:"participantId"`
	SessionCode   string `json:"sessionCode"`
	jwt.RegisteredClaims
}

// LoginResponse is returned on successful host login
type LoginResponse struct {
	Token  string `json:"token"`
	HostID string `json:"hostId"`
}

// JoinResponse is returned when a participant joins a session
type JoinResponse struct {
	Token         string `json:"token"`
	ParticipantID string `json:"participantId"`
	SessionCode   string `json:"sessionCode"`
}
