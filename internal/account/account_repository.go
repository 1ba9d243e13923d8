package account

import (
	"context"

	"gorm.io/gorm"

	"stemchat/internal/common"
	"stemchat/internal/dbmysql"
)

// AccountRepository covers the row-level access the service layer needs.
// Every method returns errors already translated to the common kinds.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *dbmysql.Account) error
	AccountByID(ctx context.Context, accountID uint64) (*dbmysql.Account, error)
	AccountByHandle(ctx context.Context, handle string) (*dbmysql.Account, error)
	AccountByEmail(ctx context.Context, email string) (*dbmysql.Account, error)
	UpdateAccount(ctx context.Context, account *dbmysql.Account) error

	HandleExists(ctx context.Context, handle string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateAccount(ctx context.Context, account *dbmysql.Account) error {
	// The unique indexes on handle and email are the real guard; a racing
	// duplicate insert comes back as ErrConstraintViolation.
	return common.TranslateDBError(r.db.WithContext(ctx).Create(account).Error)
}

func (r *accountRepository) AccountByID(ctx context.Context, accountID uint64) (*dbmysql.Account, error) {
	var account dbmysql.Account
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&account).Error
	if err != nil {
		return nil, common.TranslateDBError(err)
	}

	return &account, nil
}

func (r *accountRepository) AccountByHandle(ctx context.Context, handle string) (*dbmysql.Account, error) {
	var account dbmysql.Account
	err := r.db.WithContext(ctx).Where("handle = ?", handle).First(&account).Error
	if err != nil {
		return nil, common.TranslateDBError(err)
	}

	return &account, nil
}

func (r *accountRepository) AccountByEmail(ctx context.Context, email string) (*dbmysql.Account, error) {
	var account dbmysql.Account
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	if err != nil {
		return nil, common.TranslateDBError(err)
	}

	return &account, nil
}

func (r *accountRepository) UpdateAccount(ctx context.Context, account *dbmysql.Account) error {
	return common.TranslateDBError(r.db.WithContext(ctx).Save(account).Error)
}

func (r *accountRepository) HandleExists(ctx context.Context, handle string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Account{}).Where("handle = ?", handle).Count(&count).Error
	return count > 0, common.TranslateDBError(err)
}

func (r *accountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Account{}).Where("email = ?", email).Count(&count).Error
	return count > 0, common.TranslateDBError(err)
}
