package application

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bnema/utilityapi-cli/internal/domain"
	"github.com/bnema/utilityapi-cli/internal/ports"
)

const (
	DefaultPollDelay    = time.Second
	DefaultActivePeriod = 365 * 24 * time.Hour
)

type ProvisionResult struct {
	Account domain.Account `json:"account"`
	Service domain.Service `json:"service"`
	Bills   []domain.Bill  `json:"bills"`
}

// Provisioner creates an account, waits for the server to process it,
// activates its service and collects the bills.
type Provisioner struct {
	accounts  ports.AccountsAPI
	services  ports.ServicesAPI
	clock     ports.Clock
	logger    logrus.FieldLogger
	pollDelay time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewProvisioner(accounts ports.AccountsAPI, services ports.ServicesAPI, clock ports.Clock, logger logrus.FieldLogger) *Provisioner {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	return &Provisioner{
		accounts:  accounts,
		services:  services,
		clock:     clock,
		logger:    logger,
		pollDelay: DefaultPollDelay,
		sleep:     sleepContext,
	}
}

// WithPollDelay sets the pause before each status re-fetch. Negative values
// are treated as zero.
func (p *Provisioner) WithPollDelay(delay time.Duration) *Provisioner {
	if delay < 0 {
		delay = 0
	}
	p.pollDelay = delay
	return p
}

// CreateAccount runs the whole provisioning sequence. A zero activeUntil
// keeps the service active for DefaultActivePeriod from now. The call lasts
// as long as the server takes to process the account; only ctx bounds it.
func (p *Provisioner) CreateAccount(ctx context.Context, options domain.AccountOptions, activeUntil time.Time) (ProvisionResult, error) {
	log := p.logger.WithField("utility", options.Utility)

	added, err := p.accounts.Add(ctx, options)
	if err != nil {
		return ProvisionResult{}, fmt.Errorf("add account: %w", err)
	}
	log = log.WithField("account_uid", added.UID)
	log.Info("account added, waiting for processing")

	account, err := p.waitForAccount(ctx, log, added.UID)
	if err != nil {
		return ProvisionResult{}, err
	}

	services, err := p.services.ListForAccount(ctx, account.UID)
	if err != nil {
		return ProvisionResult{}, fmt.Errorf("list services for account: %w", err)
	}
	if len(services) != 1 {
		return ProvisionResult{}, &domain.StateError{
			Resource: "account",
			UID:      string(account.UID),
			Detail:   fmt.Sprintf("%d services for account, expected 1", len(services)),
		}
	}
	serviceUID := services[0].UID
	log = log.WithField("service_uid", serviceUID)

	if activeUntil.IsZero() {
		activeUntil = p.clock.Now().Add(DefaultActivePeriod)
	}
	if _, err := p.services.Modify(ctx, serviceUID, domain.ServiceOptions{ActiveUntil: domain.DeadlineAt(activeUntil)}); err != nil {
		return ProvisionResult{}, fmt.Errorf("activate service: %w", err)
	}
	log.WithField("active_until", activeUntil).Info("service activation requested")

	service, err := p.waitForService(ctx, log, serviceUID)
	if err != nil {
		return ProvisionResult{}, err
	}

	bills, err := p.services.Bills(ctx, service.UID)
	if err != nil {
		return ProvisionResult{}, fmt.Errorf("get service bills: %w", err)
	}
	log.WithField("bills", len(bills)).Info("account provisioned")

	return ProvisionResult{Account: account, Service: service, Bills: bills}, nil
}

func (p *Provisioner) waitForAccount(ctx context.Context, log logrus.FieldLogger, uid domain.AccountUID) (domain.Account, error) {
	var account domain.Account
	for attempt := 1; ; attempt++ {
		if err := p.sleep(ctx, p.pollDelay); err != nil {
			return domain.Account{}, fmt.Errorf("wait for account: %w", err)
		}

		var err error
		account, err = p.accounts.Get(ctx, uid)
		if err != nil {
			return domain.Account{}, fmt.Errorf("get account: %w", err)
		}
		log.WithFields(logrus.Fields{"attempt": attempt, "status": account.Latest.Type}).Debug("polled account")
		if !account.Latest.Pending() {
			break
		}
	}

	if !account.Latest.Updated() {
		return domain.Account{}, &domain.StateError{
			Resource: "account",
			UID:      string(uid),
			Detail:   "account status did not become updated",
		}
	}
	return account, nil
}

func (p *Provisioner) waitForService(ctx context.Context, log logrus.FieldLogger, uid domain.ServiceUID) (domain.Service, error) {
	var service domain.Service
	for attempt := 1; ; attempt++ {
		if err := p.sleep(ctx, p.pollDelay); err != nil {
			return domain.Service{}, fmt.Errorf("wait for service: %w", err)
		}

		var err error
		service, err = p.services.Get(ctx, uid)
		if err != nil {
			return domain.Service{}, fmt.Errorf("get service: %w", err)
		}
		log.WithFields(logrus.Fields{"attempt": attempt, "status": service.Latest.Type}).Debug("polled service")
		if !service.Latest.Pending() {
			break
		}
	}

	if !service.Latest.Updated() {
		return domain.Service{}, &domain.StateError{
			Resource: "service",
			UID:      string(uid),
			Detail:   "service status did not become updated",
		}
	}
	return service, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
