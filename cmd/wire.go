package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	tomlrepo "github.com/bnema/utilityapi-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/utilityapi-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/utilityapi-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/utilityapi-cli/internal/adapters/secrets/pass"
	"github.com/bnema/utilityapi-cli/internal/adapters/utilityapi"
	"github.com/bnema/utilityapi-cli/internal/application"
	"github.com/bnema/utilityapi-cli/internal/config"
	"github.com/bnema/utilityapi-cli/internal/domain"
	"github.com/bnema/utilityapi-cli/internal/logging"
	"github.com/bnema/utilityapi-cli/internal/ports"
)

var errNoCredentials = errors.New("no access token: set UAPI_TOKEN or run 'uapi profile set'")

type app struct {
	v           *viper.Viper
	configPath  string
	asJSON      bool
	dumpMetrics bool

	cfg      config.Config
	logger   *logrus.Logger
	profiles *application.ProfileService
	registry *prometheus.Registry
	metrics  *utilityapi.Metrics
	now      func() time.Time

	api       *utilityapi.Client
	pollDelay time.Duration
}

func newApp() *app {
	return &app{v: viper.New(), now: time.Now}
}

// init runs once flags are parsed so --config and --profile reach viper.
func (a *app) init(cmd *cobra.Command) error {
	if a.configPath != "" {
		a.v.SetConfigFile(a.configPath)
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("wire logger: %w", err)
	}
	a.logger = logger

	repo, err := tomlrepo.NewProfileRepository(a.v)
	if err != nil {
		return fmt.Errorf("wire profile repository: %w", err)
	}

	store, err := newTokenStore(cfg.SecretsBackend)
	if err != nil {
		return fmt.Errorf("wire token store: %w", err)
	}
	a.profiles = application.NewProfileService(repo, store, ports.SystemClock{})

	a.registry = prometheus.NewRegistry()
	a.metrics, err = utilityapi.NewMetrics(a.registry)
	if err != nil {
		return err
	}

	return nil
}

func newTokenStore(backend string) (ports.SecretStore, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	root := filepath.Join(dir, "secrets")

	switch backend {
	case config.SecretsPass:
		return passstore.NewStore(), nil
	case config.SecretsFile:
		return filestore.NewStore(root), nil
	default:
		return chainstore.NewTokenStore(root)
	}
}

// client connects lazily; profile commands never need a token.
func (a *app) client(ctx context.Context) (*utilityapi.Client, error) {
	if a.api != nil {
		return a.api, nil
	}

	baseURL, token, pollDelay, err := a.resolveTarget(ctx)
	if err != nil {
		return nil, err
	}

	api, err := utilityapi.NewClient(utilityapi.Config{
		BaseURL:        baseURL,
		AccessToken:    token,
		RequestTimeout: a.cfg.RequestTimeout,
		RateLimit:      a.cfg.RateLimit,
		RateBurst:      a.cfg.RateBurst,
		Logger:         a.logger,
		Metrics:        a.metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("wire utilityapi client: %w", err)
	}

	a.api = api
	a.pollDelay = pollDelay
	return api, nil
}

// resolveTarget applies the token precedence: UAPI_TOKEN (or token in the
// config file) wins over the profile secret. The profile, when one is
// selected or exists under the default name, still supplies the base URL.
func (a *app) resolveTarget(ctx context.Context) (string, string, time.Duration, error) {
	baseURL, token, pollDelay := a.cfg.BaseURL, a.cfg.Token, a.cfg.PollDelay

	name := domain.ProfileName(a.cfg.Profile)
	explicit := name != ""
	if !explicit {
		if token != "" {
			return baseURL, token, pollDelay, nil
		}
		name = domain.DefaultProfileName
	}

	profile, err := a.profiles.Get(ctx, name)
	if err != nil {
		if !explicit && errors.Is(err, domain.ErrProfileNotFound) {
			return "", "", 0, errNoCredentials
		}
		return "", "", 0, err
	}

	baseURL = profile.BaseURL
	if profile.PollDelay > 0 {
		pollDelay = profile.PollDelay
	}
	if token == "" {
		token, err = a.profiles.Token(ctx, profile)
		if err != nil {
			return "", "", 0, err
		}
	}

	return baseURL, token, pollDelay, nil
}

func (a *app) provisioner(ctx context.Context) (*application.Provisioner, error) {
	api, err := a.client(ctx)
	if err != nil {
		return nil, err
	}

	return application.NewProvisioner(api.Accounts, api.Services, ports.SystemClock{}, a.logger).
		WithPollDelay(a.pollDelay), nil
}

func (a *app) writeMetrics(w io.Writer) error {
	if a.registry == nil {
		return nil
	}

	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}
