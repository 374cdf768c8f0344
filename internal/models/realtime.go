package models

import "time"

// Inbound frame types accepted on the websocket.
const (
	FrameChat = "chat"
	FramePing = "ping"
)

// Outbound frame types written to the websocket.
const (
	FrameConnected   = "connected"
	FrameMessage     = "message"
	FrameOnlineUsers = "online_users"
	FramePong        = "pong"
)

// InboundFrame is a structured frame received from a client. Frames that
// fail to parse as JSON are treated as raw chat text instead.
type InboundFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ConnectedFrame acknowledges a successful websocket registration.
type ConnectedFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	ChatID  string `json:"chat_id"`
}

// MessageFrame is the in-flight envelope for one delivered message. It is
// built immediately before the delivery attempt and not retained after it.
type MessageFrame struct {
	Type        string    `json:"type"`
	Data        *Message  `json:"data"`
	SenderID    string    `json:"sender_id"`
	ReceiverID  string    `json:"receiver_id"`
	MessageText string    `json:"message_text"`
	Timestamp   time.Time `json:"timestamp"`
}

// OnlineUsersFrame is the presence snapshot fanned out to every connected
// user whenever registry membership changes. It is recomputed fresh on
// every broadcast, never cached.
type OnlineUsersFrame struct {
	Type  string   `json:"type"`
	Users []string `json:"users"`
	Count int      `json:"count"`
}

// PongFrame answers an application-level ping.
type PongFrame struct {
	Type string `json:"type"`
}
