package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Conversation is the single thread between an unordered pair of users.
// PairKey is the normalized "min:max" of the two user ids; its unique index
// is what prevents two first-messages racing into duplicate threads.
type Conversation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	User1ID   uint      `json:"user1_id" gorm:"not null;index"`
	User2ID   uint      `json:"user2_id" gorm:"not null;index"`
	PairKey   string    `json:"-" gorm:"size:64;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"index"`

	// Relations
	User1    User      `json:"-" gorm:"foreignKey:User1ID"`
	User2    User      `json:"-" gorm:"foreignKey:User2ID"`
	Messages []Message `json:"-" gorm:"foreignKey:ConversationID"`
}

// PairKeyFor normalizes an unordered user pair into the stored key, so
// (A,B) and (B,A) always address the same conversation.
func PairKeyFor(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// BeforeCreate fills PairKey from the participant ids.
func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.PairKey == "" {
		c.PairKey = PairKeyFor(c.User1ID, c.User2ID)
	}
	return nil
}

// OtherParticipant returns the participant that is not userID.
func (c *Conversation) OtherParticipant(userID uint) uint {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// Involves reports whether userID is one of the two participants.
func (c *Conversation) Involves(userID uint) bool {
	return c.User1ID == userID || c.User2ID == userID
}
