package repository

import (
	"context"

	"gorm.io/gorm"

	"stemchat/internal/common"
	"stemchat/internal/dbmysql"
)

// ChatRepository covers conversation and message access. Returned errors are
// translated to the common kinds.
type ChatRepository interface {
	CreateConversation(ctx context.Context, conv *dbmysql.Conversation) error
	ConversationByID(ctx context.Context, conversationID uint64) (*dbmysql.Conversation, error)
	Participants(ctx context.Context, conversationID uint64) ([]*dbmysql.Account, error)
	Messages(ctx context.Context, conversationID uint64) ([]*dbmysql.Message, error)
	SaveMessage(ctx context.Context, msg *dbmysql.Message) error
	MessageByID(ctx context.Context, messageID uint64) (*dbmysql.Message, error)
	MarkRead(ctx context.Context, messageID uint64) error
}

type chatRepo struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepo{db: db}
}

// CreateConversation inserts the conversation row plus its join rows. The
// participant accounts themselves are never upserted, so a reference to a
// missing account fails on the join table's foreign key.
func (r *chatRepo) CreateConversation(ctx context.Context, conv *dbmysql.Conversation) error {
	err := r.db.WithContext(ctx).Omit("Participants.*").Create(conv).Error
	return common.TranslateDBError(err)
}

func (r *chatRepo) ConversationByID(ctx context.Context, conversationID uint64) (*dbmysql.Conversation, error) {
	var conv dbmysql.Conversation
	err := r.db.WithContext(ctx).Where("conversation_id = ?", conversationID).First(&conv).Error
	if err != nil {
		return nil, common.TranslateDBError(err)
	}

	return &conv, nil
}

func (r *chatRepo) Participants(ctx context.Context, conversationID uint64) ([]*dbmysql.Account, error) {
	conv := dbmysql.Conversation{ConversationID: conversationID}
	var accounts []*dbmysql.Account
	err := r.db.WithContext(ctx).Model(&conv).Association("Participants").Find(&accounts)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}

	return accounts, nil
}

// Messages returns the conversation's messages oldest first. The index on
// timestamp serves the sort; message_id breaks ties between equal timestamps.
func (r *chatRepo) Messages(ctx context.Context, conversationID uint64) ([]*dbmysql.Message, error) {
	var messages []*dbmysql.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("timestamp ASC, message_id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, common.TranslateDBError(err)
	}

	return messages, nil
}

func (r *chatRepo) SaveMessage(ctx context.Context, msg *dbmysql.Message) error {
	return common.TranslateDBError(r.db.WithContext(ctx).Create(msg).Error)
}

func (r *chatRepo) MessageByID(ctx context.Context, messageID uint64) (*dbmysql.Message, error) {
	var msg dbmysql.Message
	err := r.db.WithContext(ctx).Where("message_id = ?", messageID).First(&msg).Error
	if err != nil {
		return nil, common.TranslateDBError(err)
	}

	return &msg, nil
}

func (r *chatRepo) MarkRead(ctx context.Context, messageID uint64) error {
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Message{}).
		Where("message_id = ?", messageID).
		Update("is_read", true).Error
	return common.TranslateDBError(err)
}
