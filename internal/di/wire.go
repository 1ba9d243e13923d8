//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"stemchat/internal/account"
	chathandler "stemchat/internal/chat/handler"
	"stemchat/internal/chat/repository"
	"stemchat/internal/chat/service"
	"stemchat/internal/common"
	"stemchat/internal/dbmongo"
	"stemchat/internal/realtime"
)

// Declarations only — wire generates the real bodies in wire_gen.go.

func InitializeAccountHandler(db *gorm.DB, tokens *common.TokenManager, avatars *dbmongo.AvatarStorage) *account.Handler {
	wire.Build(
		account.NewAccountRepository,
		account.NewAccountService,
		account.NewHandler,
	)
	return &account.Handler{}
}

func InitializeResolver(db *gorm.DB) *account.Resolver {
	wire.Build(
		account.NewAccountRepository,
		account.NewResolver,
	)
	return &account.Resolver{}
}

func InitializeChatHandler(db *gorm.DB, hub *realtime.Hub) *chathandler.ChatHandler {
	wire.Build(
		repository.NewChatRepository,
		service.NewChatService,
		chathandler.NewChatHandler,
		wire.Bind(new(service.Notifier), new(*realtime.Hub)),
	)
	return &chathandler.ChatHandler{}
}
