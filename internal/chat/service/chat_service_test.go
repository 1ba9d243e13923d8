package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stemchat/internal/chat/mocks"
	"stemchat/internal/common"
	"stemchat/internal/dbmysql"
)

// recordingNotifier captures what the service would push over the socket.
type recordingNotifier struct {
	created []*dbmysql.Message
}

func (n *recordingNotifier) MessageCreated(msg *dbmysql.Message) {
	n.created = append(n.created, msg)
}

func TestChatService_StartConversation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockChatRepository(ctrl)
	svc := NewChatService(mockRepo, nil)
	ctx := context.Background()

	t.Run("creator is always a participant", func(t *testing.T) {
		mockRepo.EXPECT().CreateConversation(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, conv *dbmysql.Conversation) error {
				require.Len(t, conv.Participants, 2)
				assert.Equal(t, uint64(1), conv.Participants[0].AccountID)
				assert.Equal(t, uint64(2), conv.Participants[1].AccountID)
				conv.ConversationID = 10
				return nil
			})

		conv, err := svc.StartConversation(ctx, 1, []uint64{2})
		require.NoError(t, err)
		assert.Equal(t, uint64(10), conv.ConversationID)
		assert.Equal(t, uint64(1), conv.CreatorID)
	})

	t.Run("duplicate participant ids are collapsed", func(t *testing.T) {
		mockRepo.EXPECT().CreateConversation(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, conv *dbmysql.Conversation) error {
				assert.Len(t, conv.Participants, 2)
				return nil
			})

		_, err := svc.StartConversation(ctx, 1, []uint64{2, 2, 1})
		require.NoError(t, err)
	})

	t.Run("needs another participant", func(t *testing.T) {
		_, err := svc.StartConversation(ctx, 1, nil)
		assert.True(t, errors.Is(err, common.ErrInvalidArgument))
	})

	t.Run("missing account surfaces as not found", func(t *testing.T) {
		mockRepo.EXPECT().CreateConversation(ctx, gomock.Any()).Return(common.ErrNotFound)

		_, err := svc.StartConversation(ctx, 1, []uint64{999})
		assert.True(t, errors.Is(err, common.ErrNotFound))
	})
}

func TestChatService_SendMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockChatRepository(ctrl)
	notifier := &recordingNotifier{}
	svc := NewChatService(mockRepo, notifier)
	ctx := context.Background()

	conv := &dbmysql.Conversation{ConversationID: 10, CreatorID: 1}
	participants := []*dbmysql.Account{
		{AccountID: 1, Handle: "alice"},
		{AccountID: 2, Handle: "bob"},
	}

	t.Run("stores unread message with server timestamp and notifies", func(t *testing.T) {
		mockRepo.EXPECT().ConversationByID(ctx, uint64(10)).Return(conv, nil)
		mockRepo.EXPECT().Participants(ctx, uint64(10)).Return(participants, nil)
		mockRepo.EXPECT().SaveMessage(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, msg *dbmysql.Message) error {
				assert.False(t, msg.IsRead)
				assert.WithinDuration(t, time.Now().UTC(), msg.Timestamp, time.Second)
				msg.MessageID = 100
				return nil
			})

		msg, err := svc.SendMessage(ctx, 1, 2, 10, "hi")
		require.NoError(t, err)
		assert.Equal(t, uint64(100), msg.MessageID)
		assert.Equal(t, "hi", msg.Content)

		require.Len(t, notifier.created, 1)
		assert.Equal(t, uint64(100), notifier.created[0].MessageID)
	})

	t.Run("sender must be a participant", func(t *testing.T) {
		mockRepo.EXPECT().ConversationByID(ctx, uint64(10)).Return(conv, nil)
		mockRepo.EXPECT().Participants(ctx, uint64(10)).Return(participants, nil)

		_, err := svc.SendMessage(ctx, 3, 2, 10, "hi")
		assert.True(t, errors.Is(err, common.ErrInvalidArgument))
	})

	t.Run("recipient must be a participant", func(t *testing.T) {
		mockRepo.EXPECT().ConversationByID(ctx, uint64(10)).Return(conv, nil)
		mockRepo.EXPECT().Participants(ctx, uint64(10)).Return(participants, nil)

		_, err := svc.SendMessage(ctx, 1, 3, 10, "hi")
		assert.True(t, errors.Is(err, common.ErrInvalidArgument))
	})

	t.Run("unknown conversation", func(t *testing.T) {
		mockRepo.EXPECT().ConversationByID(ctx, uint64(77)).Return(nil, common.ErrNotFound)

		_, err := svc.SendMessage(ctx, 1, 2, 77, "hi")
		assert.True(t, errors.Is(err, common.ErrNotFound))
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := svc.SendMessage(ctx, 1, 2, 10, "")
		assert.True(t, errors.Is(err, common.ErrInvalidArgument))
	})
}

// Mirrors the end-to-end exchange: alice and bob share a conversation, alice
// sends "hi", history holds exactly that unread message and the participant
// set is {alice, bob}.
func TestChatService_ConversationScenario(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockChatRepository(ctrl)
	svc := NewChatService(mockRepo, nil)
	ctx := context.Background()

	alice := &dbmysql.Account{AccountID: 1, Handle: "alice", Email: "a@x.com"}
	bob := &dbmysql.Account{AccountID: 2, Handle: "bob", Email: "b@x.com"}
	conv := &dbmysql.Conversation{ConversationID: 10, CreatorID: alice.AccountID}

	mockRepo.EXPECT().ConversationByID(ctx, uint64(10)).Return(conv, nil).Times(3)
	mockRepo.EXPECT().Participants(ctx, uint64(10)).
		Return([]*dbmysql.Account{alice, bob}, nil).Times(2)

	var stored *dbmysql.Message
	mockRepo.EXPECT().SaveMessage(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, msg *dbmysql.Message) error {
			msg.MessageID = 100
			stored = msg
			return nil
		})

	sent, err := svc.SendMessage(ctx, alice.AccountID, bob.AccountID, 10, "hi")
	require.NoError(t, err)

	mockRepo.EXPECT().Messages(ctx, uint64(10)).Return([]*dbmysql.Message{stored}, nil)

	history, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "hi", history[0].Content)
	assert.False(t, history[0].IsRead)
	assert.Equal(t, sent.MessageID, history[0].MessageID)

	got, err := svc.Participants(ctx, 10)
	require.NoError(t, err)
	handles := []string{got[0].Handle, got[1].Handle}
	assert.ElementsMatch(t, []string{"alice", "bob"}, handles)
}

func TestChatService_MarkRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockChatRepository(ctrl)
	svc := NewChatService(mockRepo, nil)
	ctx := context.Background()

	t.Run("flips unread to read", func(t *testing.T) {
		mockRepo.EXPECT().MessageByID(ctx, uint64(100)).
			Return(&dbmysql.Message{MessageID: 100, IsRead: false}, nil)
		mockRepo.EXPECT().MarkRead(ctx, uint64(100)).Return(nil)

		require.NoError(t, svc.MarkRead(ctx, 100))
	})

	t.Run("idempotent on an already-read message", func(t *testing.T) {
		mockRepo.EXPECT().MessageByID(ctx, uint64(100)).
			Return(&dbmysql.Message{MessageID: 100, IsRead: true}, nil)

		// No MarkRead call expected.
		require.NoError(t, svc.MarkRead(ctx, 100))
	})

	t.Run("unknown message", func(t *testing.T) {
		mockRepo.EXPECT().MessageByID(ctx, uint64(404)).Return(nil, common.ErrNotFound)

		err := svc.MarkRead(ctx, 404)
		assert.True(t, errors.Is(err, common.ErrNotFound))
	})
}
