package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stemchat/internal/common"
	"stemchat/internal/dbmysql"
)

type fakeChatService struct {
	startFn        func(ctx context.Context, creatorID uint64, participantIDs []uint64) (*dbmysql.Conversation, error)
	sendFn         func(ctx context.Context, senderID, recipientID, conversationID uint64, content string) (*dbmysql.Message, error)
	historyFn      func(ctx context.Context, conversationID uint64) ([]*dbmysql.Message, error)
	participantsFn func(ctx context.Context, conversationID uint64) ([]*dbmysql.Account, error)
	markReadFn     func(ctx context.Context, messageID uint64) error
}

func (f *fakeChatService) StartConversation(ctx context.Context, creatorID uint64, participantIDs []uint64) (*dbmysql.Conversation, error) {
	return f.startFn(ctx, creatorID, participantIDs)
}

func (f *fakeChatService) SendMessage(ctx context.Context, senderID, recipientID, conversationID uint64, content string) (*dbmysql.Message, error) {
	return f.sendFn(ctx, senderID, recipientID, conversationID, content)
}

func (f *fakeChatService) History(ctx context.Context, conversationID uint64) ([]*dbmysql.Message, error) {
	return f.historyFn(ctx, conversationID)
}

func (f *fakeChatService) Participants(ctx context.Context, conversationID uint64) ([]*dbmysql.Account, error) {
	return f.participantsFn(ctx, conversationID)
}

func (f *fakeChatService) MarkRead(ctx context.Context, messageID uint64) error {
	return f.markReadFn(ctx, messageID)
}

func authenticated(req *http.Request, accountID uint64, handle string) *http.Request {
	ctx := common.ContextWithAccount(req.Context(), &dbmysql.Account{AccountID: accountID, Handle: handle})
	return req.WithContext(ctx)
}

func TestChatHandler_SendMessage(t *testing.T) {
	svc := &fakeChatService{
		sendFn: func(_ context.Context, senderID, recipientID, conversationID uint64, content string) (*dbmysql.Message, error) {
			// The sender is taken from the session, never from the body.
			assert.Equal(t, uint64(1), senderID)
			return &dbmysql.Message{
				MessageID:      100,
				SenderID:       senderID,
				RecipientID:    recipientID,
				ConversationID: conversationID,
				Content:        content,
			}, nil
		},
	}
	h := NewChatHandler(svc)

	body, _ := json.Marshal(sendMessageRequest{RecipientID: 2, ConversationID: 10, Content: "hi"})
	req := httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.SendMessage(rec, authenticated(req, 1, "alice"))

	require.Equal(t, http.StatusCreated, rec.Code)
	var msg dbmysql.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, uint64(100), msg.MessageID)
	assert.Equal(t, "hi", msg.Content)
}

func TestChatHandler_SendMessage_InvalidRecipient(t *testing.T) {
	svc := &fakeChatService{
		sendFn: func(_ context.Context, _, _, _ uint64, _ string) (*dbmysql.Message, error) {
			return nil, common.ErrInvalidArgument
		},
	}
	h := NewChatHandler(svc)

	body, _ := json.Marshal(sendMessageRequest{RecipientID: 3, ConversationID: 10, Content: "hi"})
	req := httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.SendMessage(rec, authenticated(req, 1, "alice"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatHandler_History(t *testing.T) {
	svc := &fakeChatService{
		historyFn: func(_ context.Context, conversationID uint64) ([]*dbmysql.Message, error) {
			assert.Equal(t, uint64(10), conversationID)
			return []*dbmysql.Message{{MessageID: 100, Content: "hi"}}, nil
		},
	}
	h := NewChatHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/conversations/10/messages", nil)
	req = mux.SetURLVars(req, map[string]string{"conversationID": "10"})
	rec := httptest.NewRecorder()

	h.History(rec, authenticated(req, 1, "alice"))

	require.Equal(t, http.StatusOK, rec.Code)
	var messages []dbmysql.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, "hi", messages[0].Content)
}

func TestChatHandler_History_BadConversationID(t *testing.T) {
	h := NewChatHandler(&fakeChatService{})

	req := httptest.NewRequest(http.MethodGet, "/api/conversations/abc/messages", nil)
	req = mux.SetURLVars(req, map[string]string{"conversationID": "abc"})
	rec := httptest.NewRecorder()

	h.History(rec, authenticated(req, 1, "alice"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatHandler_MarkRead_UnknownMessage(t *testing.T) {
	svc := &fakeChatService{
		markReadFn: func(_ context.Context, messageID uint64) error {
			return common.ErrNotFound
		},
	}
	h := NewChatHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/messages/404/read", nil)
	req = mux.SetURLVars(req, map[string]string{"messageID": "404"})
	rec := httptest.NewRecorder()

	h.MarkRead(rec, authenticated(req, 1, "alice"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
