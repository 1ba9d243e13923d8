package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stemchat/internal/common"
	"stemchat/internal/dbmysql"
)

type AccountService interface {
	Register(ctx context.Context, handle, email, password string) (*dbmysql.Account, string, error)
	Login(ctx context.Context, handle, password string) (*dbmysql.Account, string, error)
	Profile(ctx context.Context, accountID uint64) (*dbmysql.Account, error)
	UpdateProfile(ctx context.Context, accountID uint64, email, bio string) error
	ChangePassword(ctx context.Context, accountID uint64, current, next string) error
	SetAvatar(ctx context.Context, accountID uint64, avatarPath string) error
}

type accountService struct {
	repo   AccountRepository
	tokens *common.TokenManager
}

func NewAccountService(repo AccountRepository, tokens *common.TokenManager) AccountService {
	return &accountService{repo: repo, tokens: tokens}
}

func (s *accountService) Register(ctx context.Context, handle, email, password string) (*dbmysql.Account, string, error) {
	handle = strings.TrimSpace(handle)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := common.ValidateHandle(handle); err != nil {
		return nil, "", err
	}
	if err := common.ValidateEmail(email); err != nil {
		return nil, "", err
	}
	if err := common.ValidatePassword(password); err != nil {
		return nil, "", err
	}

	exists, err := s.repo.HandleExists(ctx, handle)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", fmt.Errorf("handle already exists: %w", common.ErrConstraintViolation)
	}

	exists, err = s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", fmt.Errorf("email already exists: %w", common.ErrConstraintViolation)
	}

	// The plaintext is hashed once and discarded; only the digest is stored.
	digest, err := common.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	account := &dbmysql.Account{
		Handle:           handle,
		Email:            email,
		CredentialDigest: digest,
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(account.AccountID, account.Handle)
	if err != nil {
		return nil, "", err
	}

	return account, token, nil
}

func (s *accountService) Login(ctx context.Context, handle, password string) (*dbmysql.Account, string, error) {
	if handle == "" || password == "" {
		return nil, "", fmt.Errorf("handle and password required: %w", common.ErrInvalidArgument)
	}

	account, err := s.repo.AccountByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", errors.New("invalid handle or password")
		}
		return nil, "", err
	}

	if !common.CheckPassword(password, account.CredentialDigest) {
		return nil, "", errors.New("invalid handle or password")
	}

	token, err := s.tokens.Generate(account.AccountID, account.Handle)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

func (s *accountService) Profile(ctx context.Context, accountID uint64) (*dbmysql.Account, error) {
	return s.repo.AccountByID(ctx, accountID)
}

func (s *accountService) UpdateProfile(ctx context.Context, accountID uint64, email, bio string) error {
	account, err := s.repo.AccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	if email != "" {
		email = strings.ToLower(strings.TrimSpace(email))
		if err := common.ValidateEmail(email); err != nil {
			return err
		}
		account.Email = email
	}

	if bio != "" {
		if err := common.ValidateBio(bio); err != nil {
			return err
		}
		account.Bio = bio
	}

	return s.repo.UpdateAccount(ctx, account)
}

func (s *accountService) ChangePassword(ctx context.Context, accountID uint64, current, next string) error {
	account, err := s.repo.AccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	if !common.CheckPassword(current, account.CredentialDigest) {
		return fmt.Errorf("current password does not match: %w", common.ErrInvalidArgument)
	}

	if err := common.ValidatePassword(next); err != nil {
		return err
	}

	// Overwrites the prior digest; older sessions stay valid until expiry.
	digest, err := common.HashPassword(next)
	if err != nil {
		return err
	}
	account.CredentialDigest = digest

	return s.repo.UpdateAccount(ctx, account)
}

func (s *accountService) SetAvatar(ctx context.Context, accountID uint64, avatarPath string) error {
	if avatarPath == "" {
		return fmt.Errorf("avatar path required: %w", common.ErrInvalidArgument)
	}

	account, err := s.repo.AccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	account.AvatarPath = avatarPath
	return s.repo.UpdateAccount(ctx, account)
}
