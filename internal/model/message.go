package model

import "time"

// Message belongs to exactly one conversation. Sender and receiver are
// always the two participants of the parent conversation; IsRead only ever
// transitions false -> true.
type Message struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ConversationID uint      `json:"conversation_id" gorm:"not null;index"`
	SenderID       uint      `json:"sender_id" gorm:"not null;index"`
	ReceiverID     uint      `json:"receiver_id" gorm:"not null;index"`
	Content        string    `json:"content" gorm:"type:text;not null"`
	IsRead         bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`

	// Relations
	Conversation Conversation `json:"-" gorm:"foreignKey:ConversationID"`
	Sender       User         `json:"-" gorm:"foreignKey:SenderID"`
	Receiver     User         `json:"-" gorm:"foreignKey:ReceiverID"`
}

// MessageView is a message annotated with display names for API responses.
type MessageView struct {
	Message
	SenderName   string `json:"sender_name"`
	ReceiverName string `json:"receiver_name"`
}

// ConversationView is one row of a user's inbox: the thread, the other
// participant, the most recent message and a live unread count.
type ConversationView struct {
	Conversation
	OtherUser   User         `json:"other_user"`
	LastMessage *MessageView `json:"last_message,omitempty"`
	UnreadCount int64        `json:"unread_count"`
}
