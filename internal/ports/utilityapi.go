package ports

import (
	"context"

	"github.com/bnema/utilityapi-cli/internal/domain"
)

// AccountsAPI is the part of the accounts endpoint the provisioning workflow
// depends on.
type AccountsAPI interface {
	Add(ctx context.Context, options domain.AccountOptions) (domain.Account, error)
	Get(ctx context.Context, uid domain.AccountUID) (domain.Account, error)
}

type ServicesAPI interface {
	Get(ctx context.Context, uid domain.ServiceUID) (domain.Service, error)
	ListForAccount(ctx context.Context, accountUID domain.AccountUID) ([]domain.Service, error)
	Modify(ctx context.Context, uid domain.ServiceUID, options domain.ServiceOptions) (domain.Service, error)
	Bills(ctx context.Context, uid domain.ServiceUID) ([]domain.Bill, error)
}
