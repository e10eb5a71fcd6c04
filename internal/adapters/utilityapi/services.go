package utilityapi

import (
	"context"
	"net/url"

	"github.com/bnema/utilityapi-cli/internal/domain"
)

const servicesPath = "services"

type Services struct {
	endpoint[domain.ServiceUID, domain.Service, domain.ServiceOptions]
}

func NewServices(conn *Connection) *Services {
	return &Services{endpoint: endpoint[domain.ServiceUID, domain.Service, domain.ServiceOptions]{conn: conn, base: servicesPath}}
}

// ListForAccount lists the services of one account. The server answers 500
// for an unknown account.
func (s *Services) ListForAccount(ctx context.Context, accountUID domain.AccountUID) ([]domain.Service, error) {
	var out []domain.Service
	query := url.Values{"accounts": []string{string(accountUID)}}
	if err := s.conn.getJSON(ctx, "services.list_for_account", servicesPath, query, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Service{}
	}
	return out, nil
}

func (s *Services) Bills(ctx context.Context, uid domain.ServiceUID) ([]domain.Bill, error) {
	var out []domain.Bill
	if err := s.conn.getJSON(ctx, "services.bills", resourcePath(servicesPath, string(uid), "bills"), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Bill{}
	}
	return out, nil
}

func (s *Services) BillsArchive(ctx context.Context, uid domain.ServiceUID) ([]byte, error) {
	return s.conn.getRaw(ctx, "services.bills_archive", resourcePath(servicesPath, string(uid), "bills.zip"))
}

// BillRaw downloads one original bill document by file name.
func (s *Services) BillRaw(ctx context.Context, uid domain.ServiceUID, filename string) ([]byte, error) {
	return s.conn.getRaw(ctx, "services.bill_raw", resourcePath(servicesPath, string(uid), "bills", filename))
}

func (s *Services) Intervals(ctx context.Context, uid domain.ServiceUID) ([]domain.Interval, error) {
	var out []domain.Interval
	if err := s.conn.getJSON(ctx, "services.intervals", resourcePath(servicesPath, string(uid), "intervals"), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Interval{}
	}
	return out, nil
}

func (s *Services) ResetCode(ctx context.Context, uid domain.ServiceUID) (string, error) {
	var out confirmation
	if err := s.conn.getJSON(ctx, "services.reset_code", resourcePath(servicesPath, string(uid), "reset"), nil, &out); err != nil {
		return "", err
	}
	return string(out.Code), nil
}

// Reset drops the collected data of a service and starts collection again.
func (s *Services) Reset(ctx context.Context, uid domain.ServiceUID, code string) (domain.ResetResult, error) {
	var out domain.ResetResult
	if err := s.conn.postJSON(ctx, "services.reset", resourcePath(servicesPath, string(uid), "reset"), confirmation{Code: domain.ConfirmationCode(code)}, &out); err != nil {
		return domain.ResetResult{}, err
	}
	return out, nil
}
