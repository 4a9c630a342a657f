package models

import "time"

type Conversation struct {
	ID           uint                      `gorm:"primaryKey" json:"id"`
	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID" json:"participants,omitempty"`
	Messages     []Message                 `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
	CreatedAt    time.Time                 `json:"created_at"`
}

type ConversationParticipant struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ConversationID uint `gorm:"not null;uniqueIndex:idx_conversation_user" json:"conversation_id"`
	UserID         uint `gorm:"not null;uniqueIndex:idx_conversation_user" json:"user_id"`
	User           User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint      `gorm:"not null" json:"sender_id"`
	Sender         User      `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Body           string    `gorm:"type:text;not null" json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}
