package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Host message types
const (
	MsgSessionOpened       MessageType = "session_opened"
	MsgSessionClosed       MessageType = "session_closed"
	MsgParticipantJoined   MessageType = "participant_joined"
	MsgParticipantLeft     MessageType = "participant_left"
	MsgSimulationCompleted MessageType = "simulation_completed"
)

// Participant message types
const (
	MsgWeightsUpdated  MessageType = "weights_updated"
	MsgInsightsUpdated MessageType = "insights_updated"
	MsgError           MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections for sessions
type Hub struct {
	// Session -> connections
	hostConns        map[string]*Connection
	participantConns map[string]map[string]*Connection // sessionCode -> participantID -> conn

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	SessionCode   string
	ParticipantID string // Empty for host connections
	IsHost        bool
	Send          chan []byte
	Hub           *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	SessionCode   string
	ToHost        bool
	ToParticipant string // Empty means all participants, specific ID means one participant
	Message       *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		hostConns:        make(map[string]*Connection),
		participantConns: make(map[string]map[string]*Connection),
		register:         make(chan *Connection),
		unregister:       make(chan *Connection),
		broadcast:        make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if conn.IsHost {
				h.hostConns[conn.SessionCode] = conn
				log.Printf("Host connected to session %s", conn.SessionCode)
			} else {
				if h.participantConns[conn.SessionCode] == nil {
					h.participantConns[conn.SessionCode] = make(map[string]*Connection)
				}
				h.participantConns[conn.SessionCode][conn.ParticipantID] = conn
				log.Printf("Participant %s connected to session %s", conn.ParticipantID, conn.SessionCode)

				// Notify host
				h.notifyHostParticipantJoined(conn.SessionCode, conn.ParticipantID)
			}
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conn.IsHost {
				if existing, ok := h.hostConns[conn.SessionCode]; ok && existing == conn {
					delete(h.hostConns, conn.SessionCode)
					close(conn.Send)
					log.Printf("Host disconnected from session %s", conn.SessionCode)
				}
			} else {
				if participants, ok := h.participantConns[conn.SessionCode]; ok {
					if existing, ok := participants[conn.ParticipantID]; ok && existing == conn {
						delete(participants, conn.ParticipantID)
						close(conn.Send)
						log.Printf("Participant %s disconnected from session %s", conn.ParticipantID, conn.SessionCode)

						// Notify host
						h.notifyHostParticipantLeft(conn.SessionCode, conn.ParticipantID)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)

			if msg.ToHost {
				if conn, ok := h.hostConns[msg.SessionCode]; ok {
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
					}
				}
			} else if msg.ToParticipant != "" {
				// Send to specific participant
				if participants, ok := h.participantConns[msg.SessionCode]; ok {
					if conn, ok := participants[msg.ToParticipant]; ok {
						select {
						case conn.Send <- data:
						default:
						}
					}
				}
			} else {
				// Broadcast to all participants
				if participants, ok := h.participantConns[msg.SessionCode]; ok {
					for _, conn := range participants {
						select {
						case conn.Send <- data:
						default:
						}
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToHost sends a message to the session host (implements service.Broadcaster)
func (h *Hub) BroadcastToHost(sessionCode string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		SessionCode: sessionCode,
		ToHost:      true,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// BroadcastToParticipant sends a message to a specific participant (implements service.Broadcaster)
func (h *Hub) BroadcastToParticipant(sessionCode, participantID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		SessionCode:   sessionCode,
		ToParticipant: participantID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// BroadcastToAllParticipants sends a message to all participants in a session (implements service.Broadcaster)
func (h *Hub) BroadcastToAllParticipants(sessionCode string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		SessionCode:   sessionCode,
		ToParticipant: "", // Empty means all
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

func (h *Hub) notifyHostParticipantJoined(sessionCode, participantID string) {
	if conn, ok := h.hostConns[sessionCode]; ok {
		data, _ := json.Marshal(&Message{
			Type:    MsgParticipantJoined,
			Payload: json.RawMessage(`{"participantId":"` + participantID + `"}`),
		})
		select {
		case conn.Send <- data:
		default:
		}
	}
}

func (h *Hub) notifyHostParticipantLeft(sessionCode, participantID string) {
	if conn, ok := h.hostConns[sessionCode]; ok {
		data, _ := json.Marshal(&Message{
			Type:    MsgParticipantLeft,
			Payload: json.RawMessage(`{"participantId":"` + participantID + `"}`),
		})
		select {
		case conn.Send <- data:
		default:
		}
	}
}
