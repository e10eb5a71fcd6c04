package application

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/utilityapi-cli/internal/domain"
	"github.com/bnema/utilityapi-cli/internal/ports/mocks"
)

var provisionOptions = domain.AccountOptions{
	Utility:  "DEMO",
	AuthType: domain.AuthTypeOwner,
	RealName: "Jane Doe",
}

func accountWith(logType domain.LogType) domain.Account {
	return domain.Account{UID: "42", Utility: "DEMO", AuthType: domain.AuthTypeOwner, Auth: "Jane Doe", Latest: domain.Log{Type: logType}}
}

func serviceWith(logType domain.LogType) domain.Service {
	return domain.Service{UID: "7", AccountUID: "42", Latest: domain.Log{Type: logType}}
}

type provisionerFixture struct {
	accounts    *mocks.MockAccountsAPI
	services    *mocks.MockServicesAPI
	clock       *mocks.MockClock
	provisioner *Provisioner
	sleeps      int
}

func newProvisionerFixture(t *testing.T) *provisionerFixture {
	t.Helper()

	f := &provisionerFixture{
		accounts: mocks.NewMockAccountsAPI(t),
		services: mocks.NewMockServicesAPI(t),
		clock:    mocks.NewMockClock(t),
	}
	f.provisioner = NewProvisioner(f.accounts, f.services, f.clock, nil)
	f.provisioner.sleep = func(ctx context.Context, d time.Duration) error {
		f.sleeps++
		assert.Equal(t, DefaultPollDelay, d)
		return ctx.Err()
	}
	return f
}

func TestCreateAccountPollsUntilUpdatedAndActivatesService(t *testing.T) {
	f := newProvisionerFixture(t)
	now := time.Date(2015, 6, 1, 12, 0, 0, 0, time.UTC)
	bills := []domain.Bill{{ServiceUID: "7", Total: 12.5}}

	f.accounts.EXPECT().Add(mockAnyContext(), provisionOptions).Return(accountWith(domain.LogPending), nil).Once()
	f.accounts.EXPECT().Get(mockAnyContext(), domain.AccountUID("42")).Return(accountWith(domain.LogPending), nil).Twice()
	f.accounts.EXPECT().Get(mockAnyContext(), domain.AccountUID("42")).Return(accountWith(domain.LogUpdated), nil).Once()
	f.services.EXPECT().ListForAccount(mockAnyContext(), domain.AccountUID("42")).Return([]domain.Service{serviceWith(domain.LogUpdated)}, nil).Once()
	f.clock.EXPECT().Now().Return(now).Once()
	f.services.EXPECT().Modify(mockAnyContext(), domain.ServiceUID("7"), domain.ServiceOptions{
		ActiveUntil: domain.DeadlineAt(now.Add(365 * 24 * time.Hour)),
	}).Return(serviceWith(domain.LogPending), nil).Once()
	f.services.EXPECT().Get(mockAnyContext(), domain.ServiceUID("7")).Return(serviceWith(domain.LogPending), nil).Once()
	f.services.EXPECT().Get(mockAnyContext(), domain.ServiceUID("7")).Return(serviceWith(domain.LogUpdated), nil).Once()
	f.services.EXPECT().Bills(mockAnyContext(), domain.ServiceUID("7")).Return(bills, nil).Once()

	result, err := f.provisioner.CreateAccount(context.Background(), provisionOptions, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, accountWith(domain.LogUpdated), result.Account)
	assert.Equal(t, serviceWith(domain.LogUpdated), result.Service)
	assert.Equal(t, bills, result.Bills)
	assert.Equal(t, 5, f.sleeps)
}

func TestCreateAccountUsesExplicitDeadlineWithoutReadingClock(t *testing.T) {
	f := newProvisionerFixture(t)
	deadline := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	f.accounts.EXPECT().Add(mockAnyContext(), provisionOptions).Return(accountWith(domain.LogPending), nil).Once()
	f.accounts.EXPECT().Get(mockAnyContext(), domain.AccountUID("42")).Return(accountWith(domain.LogUpdated), nil).Once()
	f.services.EXPECT().ListForAccount(mockAnyContext(), domain.AccountUID("42")).Return([]domain.Service{serviceWith(domain.LogUpdated)}, nil).Once()
	f.services.EXPECT().Modify(mockAnyContext(), domain.ServiceUID("7"), mock.MatchedBy(func(options domain.ServiceOptions) bool {
		return options.ActiveUntil.Time().Equal(deadline) && options.UpdateData == nil
	})).Return(serviceWith(domain.LogPending), nil).Once()
	f.services.EXPECT().Get(mockAnyContext(), domain.ServiceUID("7")).Return(serviceWith(domain.LogUpdated), nil).Once()
	f.services.EXPECT().Bills(mockAnyContext(), domain.ServiceUID("7")).Return([]domain.Bill{}, nil).Once()

	result, err := f.provisioner.CreateAccount(context.Background(), provisionOptions, deadline)
	require.NoError(t, err)
	assert.Empty(t, result.Bills)
	assert.Equal(t, 2, f.sleeps)
}

func TestCreateAccountFailsWhenAccountEndsInError(t *testing.T) {
	f := newProvisionerFixture(t)

	f.accounts.EXPECT().Add(mockAnyContext(), provisionOptions).Return(accountWith(domain.LogPending), nil).Once()
	f.accounts.EXPECT().Get(mockAnyContext(), domain.AccountUID("42")).Return(accountWith(domain.LogError), nil).Once()

	_, err := f.provisioner.CreateAccount(context.Background(), provisionOptions, time.Time{})
	require.Error(t, err)

	var stateErr *domain.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.ErrorIs(t, err, domain.ErrUnexpectedState)
	assert.ErrorIs(t, err, domain.ErrAPI)
	assert.NotErrorIs(t, err, domain.ErrBadRequest)
	assert.Zero(t, domain.StatusCode(err))
	assert.Contains(t, err.Error(), "account status did not become updated")
}

func TestCreateAccountRequiresExactlyOneService(t *testing.T) {
	tests := []struct {
		name     string
		services []domain.Service
		want     string
	}{
		{name: "none", services: []domain.Service{}, want: "0 services for account, expected 1"},
		{name: "two", services: []domain.Service{serviceWith(domain.LogUpdated), serviceWith(domain.LogUpdated)}, want: "2 services for account, expected 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProvisionerFixture(t)

			f.accounts.EXPECT().Add(mockAnyContext(), provisionOptions).Return(accountWith(domain.LogPending), nil).Once()
			f.accounts.EXPECT().Get(mockAnyContext(), domain.AccountUID("42")).Return(accountWith(domain.LogUpdated), nil).Once()
			f.services.EXPECT().ListForAccount(mockAnyContext(), domain.AccountUID("42")).Return(tt.services, nil).Once()

			_, err := f.provisioner.CreateAccount(context.Background(), provisionOptions, time.Time{})
			assert.ErrorIs(t, err, domain.ErrUnexpectedState)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestCreateAccountFailsWhenServiceEndsInError(t *testing.T) {
	f := newProvisionerFixture(t)
	deadline := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	f.accounts.EXPECT().Add(mockAnyContext(), provisionOptions).Return(accountWith(domain.LogPending), nil).Once()
	f.accounts.EXPECT().Get(mockAnyContext(), domain.AccountUID("42")).Return(accountWith(domain.LogUpdated), nil).Once()
	f.services.EXPECT().ListForAccount(mockAnyContext(), domain.AccountUID("42")).Return([]domain.Service{serviceWith(domain.LogUpdated)}, nil).Once()
	f.services.EXPECT().Modify(mockAnyContext(), domain.ServiceUID("7"), mock.Anything).Return(serviceWith(domain.LogPending), nil).Once()
	f.services.EXPECT().Get(mockAnyContext(), domain.ServiceUID("7")).Return(serviceWith(domain.LogError), nil).Once()

	_, err := f.provisioner.CreateAccount(context.Background(), provisionOptions, deadline)
	assert.ErrorIs(t, err, domain.ErrUnexpectedState)
	assert.ErrorContains(t, err, "service status did not become updated")
}

func TestCreateAccountPropagatesHTTPErrors(t *testing.T) {
	f := newProvisionerFixture(t)
	badRequest := &domain.HTTPError{StatusCode: http.StatusBadRequest, Method: http.MethodPost, Path: "accounts/add"}

	f.accounts.EXPECT().Add(mockAnyContext(), domain.AccountOptions{}).Return(domain.Account{}, badRequest).Once()

	_, err := f.provisioner.CreateAccount(context.Background(), domain.AccountOptions{}, time.Time{})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.NotErrorIs(t, err, domain.ErrUnexpectedState)
	assert.Equal(t, http.StatusBadRequest, domain.StatusCode(err))
	assert.Zero(t, f.sleeps)
}

func TestCreateAccountPropagatesPollingErrors(t *testing.T) {
	f := newProvisionerFixture(t)
	notFound := &domain.HTTPError{StatusCode: http.StatusNotFound, Method: http.MethodGet, Path: "accounts/42"}

	f.accounts.EXPECT().Add(mockAnyContext(), provisionOptions).Return(accountWith(domain.LogPending), nil).Once()
	f.accounts.EXPECT().Get(mockAnyContext(), domain.AccountUID("42")).Return(domain.Account{}, notFound).Once()

	_, err := f.provisioner.CreateAccount(context.Background(), provisionOptions, time.Time{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateAccountStopsPollingWhenContextIsCancelled(t *testing.T) {
	accounts := mocks.NewMockAccountsAPI(t)
	services := mocks.NewMockServicesAPI(t)
	provisioner := NewProvisioner(accounts, services, nil, nil).WithPollDelay(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	accounts.EXPECT().Add(mockAnyContext(), provisionOptions).RunAndReturn(func(context.Context, domain.AccountOptions) (domain.Account, error) {
		cancel()
		return accountWith(domain.LogPending), nil
	}).Once()

	done := make(chan error, 1)
	go func() {
		_, err := provisioner.CreateAccount(ctx, provisionOptions, time.Time{})
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorContains(t, err, "wait for account")
	case <-time.After(time.Second):
		t.Fatal("provisioning did not stop after cancellation")
	}
}

func TestCreateAccountLogsEachPoll(t *testing.T) {
	f := newProvisionerFixture(t)
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	f.provisioner.logger = logger
	deadline := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	f.accounts.EXPECT().Add(mockAnyContext(), provisionOptions).Return(accountWith(domain.LogPending), nil).Once()
	f.accounts.EXPECT().Get(mockAnyContext(), domain.AccountUID("42")).Return(accountWith(domain.LogUpdated), nil).Once()
	f.services.EXPECT().ListForAccount(mockAnyContext(), domain.AccountUID("42")).Return([]domain.Service{serviceWith(domain.LogUpdated)}, nil).Once()
	f.services.EXPECT().Modify(mockAnyContext(), domain.ServiceUID("7"), mock.Anything).Return(serviceWith(domain.LogPending), nil).Once()
	f.services.EXPECT().Get(mockAnyContext(), domain.ServiceUID("7")).Return(serviceWith(domain.LogUpdated), nil).Once()
	f.services.EXPECT().Bills(mockAnyContext(), domain.ServiceUID("7")).Return([]domain.Bill{}, nil).Once()

	_, err := f.provisioner.CreateAccount(context.Background(), provisionOptions, deadline)
	require.NoError(t, err)

	var polls []string
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.DebugLevel {
			polls = append(polls, entry.Message)
			assert.Equal(t, domain.AccountUID("42"), entry.Data["account_uid"])
		}
	}
	assert.Equal(t, []string{"polled account", "polled service"}, polls)
}

func TestSleepContext(t *testing.T) {
	t.Parallel()

	require.NoError(t, sleepContext(context.Background(), time.Millisecond))
	require.NoError(t, sleepContext(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, 0), context.Canceled)
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}

func TestWithPollDelayClampsNegativeValues(t *testing.T) {
	t.Parallel()

	provisioner := NewProvisioner(nil, nil, nil, nil).WithPollDelay(-time.Second)
	assert.Zero(t, provisioner.pollDelay)
}

func mockAnyContext() interface{} {
	return mock.MatchedBy(func(context.Context) bool { return true })
}
