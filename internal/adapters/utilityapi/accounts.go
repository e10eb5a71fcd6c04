package utilityapi

import (
	"context"

	"github.com/bnema/utilityapi-cli/internal/domain"
)

const accountsPath = "accounts"

type Accounts struct {
	endpoint[domain.AccountUID, domain.Account, domain.AccountOptions]
}

func NewAccounts(conn *Connection) *Accounts {
	return &Accounts{endpoint: endpoint[domain.AccountUID, domain.Account, domain.AccountOptions]{conn: conn, base: accountsPath}}
}

func (a *Accounts) AddRequirements(ctx context.Context) (domain.AddRequirements, error) {
	var out domain.AddRequirements
	if err := a.conn.getJSON(ctx, "accounts.add_requirements", resourcePath(accountsPath, "add"), nil, &out); err != nil {
		return domain.AddRequirements{}, err
	}
	return out, nil
}

func (a *Accounts) Add(ctx context.Context, options domain.AccountOptions) (domain.Account, error) {
	var out domain.Account
	if err := a.conn.postJSON(ctx, "accounts.add", resourcePath(accountsPath, "add"), options, &out); err != nil {
		return domain.Account{}, err
	}
	return out, nil
}

// AuthFile downloads the signed authorization archive of an account.
func (a *Accounts) AuthFile(ctx context.Context, uid domain.AccountUID) ([]byte, error) {
	return a.conn.getRaw(ctx, "accounts.auth_file", resourcePath(accountsPath, string(uid), "auth.zip"))
}

// DeleteCode fetches the confirmation code Delete must echo back.
func (a *Accounts) DeleteCode(ctx context.Context, uid domain.AccountUID) (string, error) {
	var out confirmation
	if err := a.conn.getJSON(ctx, "accounts.delete_code", resourcePath(accountsPath, string(uid), "delete"), nil, &out); err != nil {
		return "", err
	}
	return string(out.Code), nil
}

// Delete removes the account together with its services, bills and
// intervals.
func (a *Accounts) Delete(ctx context.Context, uid domain.AccountUID, code string) (domain.DeleteResult, error) {
	var out domain.DeleteResult
	if err := a.conn.postJSON(ctx, "accounts.delete", resourcePath(accountsPath, string(uid), "delete"), confirmation{Code: domain.ConfirmationCode(code)}, &out); err != nil {
		return domain.DeleteResult{}, err
	}
	return out, nil
}

type confirmation struct {
	Code domain.ConfirmationCode `json:"code"`
}
