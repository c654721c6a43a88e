package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToHost(sessionCode string, msgType string, payload interface{})
	BroadcastToParticipant(sessionCode, participantID string, msgType string, payload interface{})
	BroadcastToAllParticipants(sessionCode string, msgType string, payload interface{})
}
