package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "roomlink/internal/errors"
	"roomlink/internal/model"
	"roomlink/internal/repository"
)

// MessageNotifier receives best-effort notifications about new messages.
// The websocket hub implements it; a nil notifier disables delivery.
type MessageNotifier interface {
	NotifyNewMessage(receiverID uint, message *model.MessageView)
}

// MessagingService owns the conversation/message core: one thread per
// unordered user pair, transactional sends, live unread counts.
type MessagingService interface {
	ResolveConversation(ctx context.Context, senderID, receiverID uint) (*model.Conversation, error)
	SendMessage(ctx context.Context, senderID, receiverID uint, content string) (*model.MessageView, error)
	ListConversations(ctx context.Context, userID uint) ([]model.ConversationView, error)
	History(ctx context.Context, conversationID, callerID, afterID uint, limit int) ([]model.MessageView, error)
	MarkRead(ctx context.Context, messageID uint) (*model.Message, error)
}

type messagingService struct {
	userRepo repository.UserRepository
	convRepo repository.ConversationRepository
	msgRepo  repository.MessageRepository
	notifier MessageNotifier
}

// NewMessagingService creates a new messaging service.
func NewMessagingService(
	userRepo repository.UserRepository,
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	notifier MessageNotifier,
) MessagingService {
	return &messagingService{
		userRepo: userRepo,
		convRepo: convRepo,
		msgRepo:  msgRepo,
		notifier: notifier,
	}
}

// ResolveConversation returns the single conversation between two users,
// creating it if absent. The pair key makes lookups order-independent, and
// the unique index on it settles concurrent first-message races: the loser
// of the insert re-reads the winner's row.
func (s *messagingService) ResolveConversation(ctx context.Context, senderID, receiverID uint) (*model.Conversation, error) {
	if _, err := s.requireUser(ctx, senderID); err != nil {
		return nil, err
	}
	if _, err := s.requireUser(ctx, receiverID); err != nil {
		return nil, err
	}

	conversation, err := s.resolve(ctx, s.convRepo, senderID, receiverID)
	if apperrors.IsDuplicateKey(err) {
		// lost the create race; the winner has committed by now
		return s.convRepo.FindByPairKey(ctx, model.PairKeyFor(senderID, receiverID))
	}
	return conversation, err
}

// resolve is the lookup-or-create step, usable against a transaction-scoped
// repository. Participants are assumed to exist. A duplicate-key error means
// another writer created the pair first; it is returned as-is because the
// winner's row is not visible to a snapshot taken before its commit — the
// caller must re-read or retry outside the current transaction.
func (s *messagingService) resolve(ctx context.Context, convRepo repository.ConversationRepository, senderID, receiverID uint) (*model.Conversation, error) {
	pairKey := model.PairKeyFor(senderID, receiverID)

	conversation, err := convRepo.FindByPairKey(ctx, pairKey)
	if err == nil {
		if err := convRepo.Touch(ctx, conversation.ID, time.Now()); err != nil {
			return nil, fmt.Errorf("touch conversation: %w", err)
		}
		return conversation, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("find conversation: %w", err)
	}

	conversation = &model.Conversation{
		User1ID: senderID,
		User2ID: receiverID,
		PairKey: pairKey,
	}
	if err := convRepo.Create(ctx, conversation); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conversation, nil
}

// SendMessage appends a message to the pair's conversation. Resolution,
// insert and the updated_at touch run in one transaction so no partial state
// is ever visible.
func (s *messagingService) SendMessage(ctx context.Context, senderID, receiverID uint, content string) (*model.MessageView, error) {
	content = strings.TrimSpace(content)
	if content == "" || senderID == 0 || receiverID == 0 {
		return nil, apperrors.ErrValidation
	}

	sender, err := s.requireUser(ctx, senderID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.requireUser(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	message := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		IsRead:     false,
	}

	send := func(ctx context.Context, convRepo repository.ConversationRepository, msgRepo repository.MessageRepository) error {
		conversation, err := s.resolve(ctx, convRepo, senderID, receiverID)
		if err != nil {
			return err
		}
		message.ConversationID = conversation.ID
		return msgRepo.Create(ctx, message)
	}

	err = s.convRepo.WithTransaction(ctx, send)
	if apperrors.IsDuplicateKey(err) {
		// lost the conversation-create race. The first transaction's snapshot
		// predates the winner's commit, so retry in a fresh one where the
		// lookup sees the committed row.
		err = s.convRepo.WithTransaction(ctx, send)
	}
	if err != nil {
		return nil, err
	}

	view := &model.MessageView{
		Message:      *message,
		SenderName:   sender.Name,
		ReceiverName: receiver.Name,
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(receiverID, view)
	}
	return view, nil
}

// ListConversations builds the inbox view: every thread the user is part of,
// most recently active first, with the other participant's profile, the last
// message and the live unread count.
func (s *messagingService) ListConversations(ctx context.Context, userID uint) ([]model.ConversationView, error) {
	self, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	conversations, err := s.convRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	otherIDs := make([]uint, 0, len(conversations))
	for _, conv := range conversations {
		otherIDs = append(otherIDs, conv.OtherParticipant(userID))
	}
	others, err := s.userRepo.FindByIDs(ctx, otherIDs)
	if err != nil {
		return nil, fmt.Errorf("load participants: %w", err)
	}
	byID := make(map[uint]model.User, len(others)+1)
	for _, u := range others {
		byID[u.ID] = u
	}
	byID[self.ID] = *self

	views := make([]model.ConversationView, 0, len(conversations))
	for _, conv := range conversations {
		view := model.ConversationView{
			Conversation: conv,
			OtherUser:    byID[conv.OtherParticipant(userID)],
		}

		last, err := s.msgRepo.LastByConversation(ctx, conv.ID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("last message: %w", err)
		}
		if last != nil {
			view.LastMessage = &model.MessageView{
				Message:      *last,
				SenderName:   byID[last.SenderID].Name,
				ReceiverName: byID[last.ReceiverID].Name,
			}
		}

		unread, err := s.msgRepo.CountUnread(ctx, conv.ID, userID)
		if err != nil {
			return nil, fmt.Errorf("count unread: %w", err)
		}
		view.UnreadCount = unread

		views = append(views, view)
	}
	return views, nil
}

// History returns a conversation's messages oldest first, annotated with
// display names. Only the two participants may read a thread. afterID/limit
// give cursor pagination; afterID=0, limit<=0 returns everything.
func (s *messagingService) History(ctx context.Context, conversationID, callerID, afterID uint, limit int) ([]model.MessageView, error) {
	conversation, err := s.convRepo.FindByID(ctx, conversationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	if !conversation.Involves(callerID) {
		return nil, apperrors.ErrForbidden
	}

	participants, err := s.userRepo.FindByIDs(ctx, []uint{conversation.User1ID, conversation.User2ID})
	if err != nil {
		return nil, fmt.Errorf("load participants: %w", err)
	}
	names := make(map[uint]string, 2)
	for _, u := range participants {
		names[u.ID] = u.Name
	}

	messages, err := s.msgRepo.ListByConversation(ctx, conversationID, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	views := make([]model.MessageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, model.MessageView{
			Message:      m,
			SenderName:   names[m.SenderID],
			ReceiverName: names[m.ReceiverID],
		})
	}
	return views, nil
}

// MarkRead sets is_read on a message. Re-invoking on an already-read message
// is a no-op success.
func (s *messagingService) MarkRead(ctx context.Context, messageID uint) (*model.Message, error) {
	message, err := s.msgRepo.FindByID(ctx, messageID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, fmt.Errorf("find message: %w", err)
	}

	if message.IsRead {
		return message, nil
	}

	if err := s.msgRepo.MarkRead(ctx, messageID); err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}
	message.IsRead = true
	return message, nil
}

func (s *messagingService) requireUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return user, nil
}
