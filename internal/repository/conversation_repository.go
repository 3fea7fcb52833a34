package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"roomlink/internal/model"
)

// ConversationRepository defines conversation persistence operations.
type ConversationRepository interface {
	Create(ctx context.Context, conversation *model.Conversation) error
	FindByID(ctx context.Context, id uint) (*model.Conversation, error)
	FindByPairKey(ctx context.Context, pairKey string) (*model.Conversation, error)
	Touch(ctx context.Context, id uint, at time.Time) error
	ListByUser(ctx context.Context, userID uint) ([]model.Conversation, error)
	// WithTransaction runs fn with conversation and message repositories bound
	// to one database transaction, so a message insert and its conversation
	// touch commit or roll back together.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, convRepo ConversationRepository, msgRepo MessageRepository) error) error
}

type conversationRepository struct {
	base
}

// NewConversationRepository creates a new conversation repository.
func NewConversationRepository(db *gorm.DB, timeout time.Duration) ConversationRepository {
	return &conversationRepository{base{db: db, timeout: timeout}}
}

// Create inserts a conversation row. A concurrent insert for the same pair
// fails the unique index on pair_key; callers detect that and re-read.
func (r *conversationRepository) Create(ctx context.Context, conversation *model.Conversation) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	return r.db.WithContext(ctx).Create(conversation).Error
}

// FindByID finds a conversation by ID.
func (r *conversationRepository) FindByID(ctx context.Context, id uint) (*model.Conversation, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	var conversation model.Conversation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

// FindByPairKey finds the conversation for a normalized user pair.
func (r *conversationRepository) FindByPairKey(ctx context.Context, pairKey string) (*model.Conversation, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	var conversation model.Conversation
	if err := r.db.WithContext(ctx).Where("pair_key = ?", pairKey).First(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

// Touch bumps updated_at so the thread sorts to the top of the inbox.
func (r *conversationRepository) Touch(ctx context.Context, id uint, at time.Time) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	return r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", at).Error
}

// ListByUser lists every conversation the user participates in, most
// recently active first.
func (r *conversationRepository) ListByUser(ctx context.Context, userID uint) ([]model.Conversation, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	var conversations []model.Conversation
	if err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&conversations).Error; err != nil {
		return nil, err
	}
	return conversations, nil
}

// WithTransaction executes fn within a database transaction.
func (r *conversationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, convRepo ConversationRepository, msgRepo MessageRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txConv := &conversationRepository{base{db: tx, timeout: r.timeout}}
		txMsg := &messageRepository{base{db: tx, timeout: r.timeout}}
		return fn(ctx, txConv, txMsg)
	})
}
