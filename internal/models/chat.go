package models

import (
	"time"

	"gorm.io/gorm"
)

// Chat represents a 1-on-1 conversation between two users.
// ChatID is the symmetric pairing key (see ChatID helper); User1ID and
// User2ID hold the canonical ids with the lexicographically smaller one
// first, so either participant resolves to the same row.
type Chat struct {
	// ChatID is the unique identifier of the conversation ("<min>_<max>").
	ChatID string `gorm:"primaryKey" json:"chat_id"`
	// User1ID is the lexicographically smaller participant id.
	User1ID string `gorm:"type:text;not null" json:"user1_id"`
	// User2ID is the lexicographically larger participant id.
	User2ID string `gorm:"type:text;not null" json:"user2_id"`
	// LastMessageAt is touched on every persisted message and orders
	// the chat list, most recent first.
	LastMessageAt time.Time `json:"last_message_at"`
}

// Message represents a saved chat message in the PostgreSQL database.
// The embedded gorm.Model provides ID, CreatedAt, UpdatedAt, and DeletedAt,
// which serve as the message ID and timestamps.
type Message struct {
	gorm.Model

	// ChatID is the symmetric pairing key of the conversation.
	ChatID string `gorm:"type:text;not null;index:idx_chat_msg" json:"chat_id"`
	// SenderID is the canonical id of the user who sent the message.
	SenderID string `gorm:"type:text;not null;index:idx_chat_msg" json:"sender_id"`
	// ReceiverID is the canonical id of the addressed counterpart.
	ReceiverID string `gorm:"type:text;not null" json:"receiver_id"`
	// MessageText is the plain-text message content.
	MessageText string `gorm:"type:text;not null" json:"message_text"`
}
