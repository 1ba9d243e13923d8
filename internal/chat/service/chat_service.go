package service

import (
	"context"
	"fmt"
	"time"

	"stemchat/internal/chat/repository"
	"stemchat/internal/common"
	"stemchat/internal/dbmysql"
)

// Notifier is told about every stored message so online participants can be
// pushed the new row. The realtime hub implements it.
type Notifier interface {
	MessageCreated(msg *dbmysql.Message)
}

// ChatService defines the interface exposed to the handler layer
type ChatService interface {
	StartConversation(ctx context.Context, creatorID uint64, participantIDs []uint64) (*dbmysql.Conversation, error)
	SendMessage(ctx context.Context, senderID, recipientID, conversationID uint64, content string) (*dbmysql.Message, error)
	History(ctx context.Context, conversationID uint64) ([]*dbmysql.Message, error)
	Participants(ctx context.Context, conversationID uint64) ([]*dbmysql.Account, error)
	MarkRead(ctx context.Context, messageID uint64) error
}

type chatService struct {
	repo     repository.ChatRepository
	notifier Notifier
}

// NewChatService constructs the service. notifier may be nil in tests.
func NewChatService(repo repository.ChatRepository, notifier Notifier) ChatService {
	return &chatService{repo: repo, notifier: notifier}
}

// StartConversation creates a conversation between the creator and the given
// participants. The creator is always part of the participant set.
func (s *chatService) StartConversation(ctx context.Context, creatorID uint64, participantIDs []uint64) (*dbmysql.Conversation, error) {
	if creatorID == 0 {
		return nil, fmt.Errorf("creator required: %w", common.ErrInvalidArgument)
	}

	seen := map[uint64]bool{creatorID: true}
	participants := []*dbmysql.Account{{AccountID: creatorID}}
	for _, id := range participantIDs {
		if id == 0 {
			return nil, fmt.Errorf("participant id must be positive: %w", common.ErrInvalidArgument)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		participants = append(participants, &dbmysql.Account{AccountID: id})
	}

	if len(participants) < 2 {
		return nil, fmt.Errorf("a conversation needs at least one other participant: %w", common.ErrInvalidArgument)
	}

	conv := &dbmysql.Conversation{
		CreatorID:    creatorID,
		Participants: participants,
	}

	if err := s.repo.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}

	return conv, nil
}

// SendMessage stores a new unread message with a server-assigned UTC
// timestamp, then notifies the realtime transport.
func (s *chatService) SendMessage(ctx context.Context, senderID, recipientID, conversationID uint64, content string) (*dbmysql.Message, error) {
	if senderID == 0 {
		return nil, fmt.Errorf("sender required: %w", common.ErrInvalidArgument)
	}
	if recipientID == 0 {
		return nil, fmt.Errorf("recipient required: %w", common.ErrInvalidArgument)
	}
	if err := common.ValidateContent(content); err != nil {
		return nil, err
	}

	if _, err := s.repo.ConversationByID(ctx, conversationID); err != nil {
		return nil, err
	}

	participants, err := s.repo.Participants(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	members := make(map[uint64]bool, len(participants))
	for _, p := range participants {
		members[p.AccountID] = true
	}
	if !members[senderID] {
		return nil, fmt.Errorf("sender is not a participant of the conversation: %w", common.ErrInvalidArgument)
	}
	if !members[recipientID] {
		return nil, fmt.Errorf("recipient is not a participant of the conversation: %w", common.ErrInvalidArgument)
	}

	msg := &dbmysql.Message{
		SenderID:       senderID,
		RecipientID:    recipientID,
		ConversationID: conversationID,
		Content:        content,
		Timestamp:      time.Now().UTC(),
		IsRead:         false,
	}

	if err := s.repo.SaveMessage(ctx, msg); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.MessageCreated(msg)
	}

	return msg, nil
}

// History returns the conversation's messages oldest first.
func (s *chatService) History(ctx context.Context, conversationID uint64) ([]*dbmysql.Message, error) {
	if conversationID == 0 {
		return nil, fmt.Errorf("conversation id required: %w", common.ErrInvalidArgument)
	}

	if _, err := s.repo.ConversationByID(ctx, conversationID); err != nil {
		return nil, err
	}

	return s.repo.Messages(ctx, conversationID)
}

func (s *chatService) Participants(ctx context.Context, conversationID uint64) ([]*dbmysql.Account, error) {
	if conversationID == 0 {
		return nil, fmt.Errorf("conversation id required: %w", common.ErrInvalidArgument)
	}

	if _, err := s.repo.ConversationByID(ctx, conversationID); err != nil {
		return nil, err
	}

	return s.repo.Participants(ctx, conversationID)
}

// MarkRead flips the message's read receipt. The transition is one-way and
// calling it on an already-read message is a no-op.
func (s *chatService) MarkRead(ctx context.Context, messageID uint64) error {
	msg, err := s.repo.MessageByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.IsRead {
		return nil
	}

	return s.repo.MarkRead(ctx, messageID)
}
