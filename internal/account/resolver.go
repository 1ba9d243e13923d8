package account

import (
	"context"
	"fmt"
	"strconv"

	"stemchat/internal/common"
	"stemchat/internal/dbmysql"
)

// Resolver resolves the opaque identifier carried by a session back to an
// Account row. It is the only integration point the auth middleware holds.
type Resolver struct {
	repo AccountRepository
}

func NewResolver(repo AccountRepository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve parses id as a positive integer and loads the matching account.
// Non-numeric input is ErrInvalidArgument, not a silent miss; an id that was
// never assigned comes back as ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, id string) (*dbmysql.Account, error) {
	accountID, err := strconv.ParseUint(id, 10, 64)
	if err != nil || accountID == 0 {
		return nil, fmt.Errorf("account id %q is not a positive integer: %w", id, common.ErrInvalidArgument)
	}

	return r.repo.AccountByID(ctx, accountID)
}
