package storage

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"chatrelay/backend/internal/models"
)

// Storage is the persistence collaborator consumed by the chat core and
// the HTTP read path.
type Storage interface {
	SaveMessage(senderID, receiverID, text string) (*models.Message, error)
	GetChatMessages(chatID string, limit int) ([]models.Message, error)
	GetUserChats(userID string) ([]models.Chat, error)

	PublishMessage(chatID string, msg models.Message) error

	SetUserOnline(userID string) error
	SetUserOffline(userID string) error
}

const onlineUsersKey = "online_users"

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// SaveMessage persists one message: the chat row is created if absent
// (participants stored in lexicographic order), its last-activity
// timestamp is touched, and the message record is inserted. The inserted
// record, with its generated ID and timestamps, is returned.
func (s *Service) SaveMessage(senderID, receiverID, text string) (*models.Message, error) {
	senderID = models.CanonicalID(senderID)
	receiverID = models.CanonicalID(receiverID)
	chatID := models.ChatID(senderID, receiverID)

	user1, user2 := senderID, receiverID
	if user1 > user2 {
		user1, user2 = user2, user1
	}

	chat := models.Chat{
		ChatID:        chatID,
		User1ID:       user1,
		User2ID:       user2,
		LastMessageAt: time.Now(),
	}
	if err := s.DB.Where("chat_id = ?", chatID).FirstOrCreate(&chat).Error; err != nil {
		log.Printf("ERROR: Failed to upsert chat %s: %v", chatID, err)
		return nil, err
	}

	if err := s.DB.Model(&models.Chat{}).
		Where("chat_id = ?", chatID).
		Update("last_message_at", time.Now()).Error; err != nil {
		log.Printf("ERROR: Failed to touch chat %s: %v", chatID, err)
		return nil, err
	}

	msg := models.Message{
		ChatID:      chatID,
		SenderID:    senderID,
		ReceiverID:  receiverID,
		MessageText: text,
	}
	if err := s.DB.Create(&msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message for chat %s: %v", chatID, err)
		return nil, err
	}

	return &msg, nil
}

// GetChatMessages returns up to limit messages for a chat, oldest first.
func (s *Service) GetChatMessages(chatID string, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.Where("chat_id = ?", chatID).
		Order("created_at asc").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		log.Printf("ERROR: Failed to get messages for chat %s: %v", chatID, err)
		return nil, err
	}
	return messages, nil
}

// GetUserChats returns every chat the user participates in, most recent
// activity first.
func (s *Service) GetUserChats(userID string) ([]models.Chat, error) {
	userID = models.CanonicalID(userID)

	var chats []models.Chat
	err := s.DB.Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("last_message_at desc").
		Find(&chats).Error
	if err != nil {
		log.Printf("ERROR: Failed to get chats for user %s: %v", userID, err)
		return nil, err
	}
	return chats, nil
}

// PublishMessage publishes a persisted message to the Redis event channel
// for the chat, for external consumers (analytics, moderation).
func (s *Service) PublishMessage(chatID string, msg models.Message) error {
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.Redis.Publish(s.Ctx, "chat:"+chatID, string(msgBytes)).Err()
}

// SetUserOnline mirrors the in-process presence registry into Redis so
// other services can read the online set without hitting this process.
func (s *Service) SetUserOnline(userID string) error {
	return s.Redis.SAdd(s.Ctx, onlineUsersKey, models.CanonicalID(userID)).Err()
}

// SetUserOffline removes the user from the mirrored online set.
func (s *Service) SetUserOffline(userID string) error {
	return s.Redis.SRem(s.Ctx, onlineUsersKey, models.CanonicalID(userID)).Err()
}
