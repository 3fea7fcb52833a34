package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"roomlink/internal/model"
)

// MessageRepository defines message persistence operations.
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	FindByID(ctx context.Context, id uint) (*model.Message, error)
	// ListByConversation returns messages in created_at ASC, id ASC order.
	// afterID > 0 returns only messages with id > afterID; limit <= 0 means
	// no limit.
	ListByConversation(ctx context.Context, conversationID uint, afterID uint, limit int) ([]model.Message, error)
	// LastByConversation returns the newest message of a conversation,
	// created_at ties broken by highest id.
	LastByConversation(ctx context.Context, conversationID uint) (*model.Message, error)
	CountUnread(ctx context.Context, conversationID, receiverID uint) (int64, error)
	MarkRead(ctx context.Context, id uint) error
}

type messageRepository struct {
	base
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *gorm.DB, timeout time.Duration) MessageRepository {
	return &messageRepository{base{db: db, timeout: timeout}}
}

// Create creates a new message row.
func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	return r.db.WithContext(ctx).Create(message).Error
}

// FindByID finds a message by ID.
func (r *messageRepository) FindByID(ctx context.Context, id uint) (*model.Message, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	var message model.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListByConversation returns the conversation history oldest first. The id
// tie-break keeps the order stable for clients doing incremental fetches.
func (r *messageRepository) ListByConversation(ctx context.Context, conversationID uint, afterID uint, limit int) ([]model.Message, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	q := r.db.WithContext(ctx).Where("conversation_id = ?", conversationID)
	if afterID > 0 {
		q = q.Where("id > ?", afterID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var messages []model.Message
	if err := q.Order("created_at ASC").Order("id ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// LastByConversation returns the most recent message of a conversation.
func (r *messageRepository) LastByConversation(ctx context.Context, conversationID uint) (*model.Message, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	var message model.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").Order("id DESC").
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// CountUnread counts unread messages addressed to receiverID in a
// conversation. The count is always derived live from message rows; there is
// no stored counter to drift from it.
func (r *messageRepository) CountUnread(ctx context.Context, conversationID, receiverID uint) (int64, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = ?", conversationID, receiverID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips is_read to true. Updating an already-read row is a no-op at
// the SQL level, which is what makes the endpoint idempotent.
func (r *messageRepository) MarkRead(ctx context.Context, id uint) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	return r.db.WithContext(ctx).Model(&model.Message{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}
