package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/utilityapi-cli/internal/adapters/render/status"
	"github.com/bnema/utilityapi-cli/internal/adapters/utilityapi"
	"github.com/bnema/utilityapi-cli/internal/async"
	"github.com/bnema/utilityapi-cli/internal/domain"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage utility accounts",
	}

	cmd.AddCommand(
		newAccountListCmd(app),
		newAccountGetCmd(app),
		newAccountShowCmd(app),
		newAccountAddRequirementsCmd(app),
		newAccountModifyRequirementsCmd(app),
		newAccountAddCmd(app),
		newAccountModifyCmd(app),
		newAccountDeleteCmd(app),
		newAccountAuthFileCmd(app),
	)

	return cmd
}

func newAccountListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := app.client(cmd.Context())
			if err != nil {
				return err
			}

			accounts, err := api.Accounts.List(cmd.Context())
			if err != nil {
				return err
			}

			return writeOutput(cmd, app, accounts, statusadapter.Document{Accounts: accounts})
		},
	}
}

func newAccountGetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get UID",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := app.client(cmd.Context())
			if err != nil {
				return err
			}

			account, err := api.Accounts.Get(cmd.Context(), domain.AccountUID(args[0]))
			if err != nil {
				return err
			}

			return writeOutput(cmd, app, account, statusadapter.Document{Accounts: []domain.Account{account}})
		},
	}
}

type accountOverview struct {
	Account  domain.Account   `json:"account"`
	Services []domain.Service `json:"services"`
}

func newAccountShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show UID",
		Short: "Show an account together with its services",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := app.client(cmd.Context())
			if err != nil {
				return err
			}

			overview, err := loadAccountOverview(cmd.Context(), api, domain.AccountUID(args[0]))
			if err != nil {
				return err
			}

			return writeOutput(cmd, app, overview, statusadapter.Document{
				Accounts: []domain.Account{overview.Account},
				Services: overview.Services,
			})
		},
	}
}

// loadAccountOverview fetches the account and its services concurrently.
func loadAccountOverview(ctx context.Context, api *utilityapi.Client, uid domain.AccountUID) (accountOverview, error) {
	accountTask, err := async.New[*utilityapi.Accounts, domain.Account](api.Accounts, nil).
		Go(func(accounts *utilityapi.Accounts) (domain.Account, error) {
			return accounts.Get(ctx, uid)
		})
	if err != nil {
		return accountOverview{}, err
	}

	servicesTask, err := async.New[*utilityapi.Services, []domain.Service](api.Services, nil).
		Go(func(services *utilityapi.Services) ([]domain.Service, error) {
			return services.ListForAccount(ctx, uid)
		})
	if err != nil {
		return accountOverview{}, err
	}

	account, err := accountTask.Await(ctx)
	if err != nil {
		return accountOverview{}, fmt.Errorf("get account: %w", err)
	}
	services, err := servicesTask.Await(ctx)
	if err != nil {
		return accountOverview{}, fmt.Errorf("list services for account: %w", err)
	}

	return accountOverview{Account: account, Services: services}, nil
}

func newAccountAddRequirementsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add-requirements",
		Short: "Show what an account add request must contain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := app.client(cmd.Context())
			if err != nil {
				return err
			}

			requirements, err := api.Accounts.AddRequirements(cmd.Context())
			if err != nil {
				return err
			}

			return writeOutput(cmd, app, requirements, statusadapter.Document{Requirements: &requirements})
		},
	}
}

func newAccountModifyRequirementsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "modify-requirements UID",
		Short: "Show what an account modify request may contain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := app.client(cmd.Context())
			if err != nil {
				return err
			}

			requirements, err := api.Accounts.ModifyRequirements(cmd.Context(), domain.AccountUID(args[0]))
			if err != nil {
				return err
			}

			return writeOutput(cmd, app, requirements, modifyRequirementsDocument(requirements))
		},
	}
}

func newAccountAddCmd(app *app) *cobra.Command {
	var options domain.AccountOptions

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := app.client(cmd.Context())
			if err != nil {
				return err
			}

			account, err := api.Accounts.Add(cmd.Context(), options)
			if err != nil {
				return err
			}

			return writeOutput(cmd, app, account, statusadapter.Document{Accounts: []domain.Account{account}})
		},
	}

	bindAccountOptionFlags(cmd, &options)
	_ = cmd.MarkFlagRequired("utility")
	_ = cmd.MarkFlagRequired("auth-type")
	_ = cmd.MarkFlagRequired("real-name")

	return cmd
}

func newAccountModifyCmd(app *app) *cobra.Command {
	var options domain.AccountOptions

	cmd := &cobra.Command{
		Use:   "modify UID",
		Short: "Modify an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := app.client(cmd.Context())
			if err != nil {
				return err
			}

			account, err := api.Accounts.Modify(cmd.Context(), domain.AccountUID(args[0]), options)
			if err != nil {
				return err
			}

			return writeOutput(cmd, app, account, statusadapter.Document{Accounts: []domain.Account{account}})
		},
	}

	bindAccountOptionFlags(cmd, &options)

	return cmd
}

func bindAccountOptionFlags(cmd *cobra.Command, options *domain.AccountOptions) {
	flags := cmd.Flags()
	flags.StringVar(&options.Utility, "utility", "", "utility identifier, e.g. PG&E")
	flags.Var(newAuthTypeValue(&options.AuthType), "auth-type", "authorization type: owner or 3rdparty")
	flags.StringVar(&options.RealName, "real-name", "", "customer name, used as the owner signature")
	flags.StringVar(&options.ThirdPartyFile, "third-party-file", "", "URL of the signed authorization form (3rdparty)")
	flags.StringVar(&options.UtilityUsername, "username", "", "utility website username")
	flags.StringVar(&options.UtilityPassword, "password", "", "utility website password")
}

func newAccountDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete UID",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := app.client(cmd.Context())
			if err != nil {
				return err
			}

			uid := domain.AccountUID(args[0])
			code, err := api.Accounts.DeleteCode(cmd.Context(), uid)
			if err != nil {
				return fmt.Errorf("get delete code: %w", err)
			}

			result, err := api.Accounts.Delete(cmd.Context(), uid, code)
			if err != nil {
				return err
			}

			if app.asJSON {
				return writeOutput(cmd, app, result, statusadapter.Document{})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "account %s deleted\n", uid)
			return err
		},
	}
}

func newAccountAuthFileCmd(app *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "auth-file UID",
		Short: "Download the authorization documents of an account (zip)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := app.client(cmd.Context())
			if err != nil {
				return err
			}

			data, err := api.Accounts.AuthFile(cmd.Context(), domain.AccountUID(args[0]))
			if err != nil {
				return err
			}

			return writeFile(cmd, out, data)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file, - for stdout")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func modifyRequirementsDocument(requirements domain.ModifyRequirements) statusadapter.Document {
	doc := statusadapter.Document{
		Requirements: &domain.AddRequirements{
			Help:    requirements.Help,
			Docs:    requirements.Docs,
			Options: requirements.Options,
		},
	}
	switch object := requirements.Object().(type) {
	case *domain.Account:
		doc.Accounts = []domain.Account{*object}
	case *domain.Service:
		doc.Services = []domain.Service{*object}
	}
	return doc
}

type authTypeValue struct {
	target *domain.AuthType
}

func newAuthTypeValue(target *domain.AuthType) *authTypeValue {
	return &authTypeValue{target: target}
}

func (v *authTypeValue) String() string {
	if v.target == nil {
		return ""
	}
	return string(*v.target)
}

func (v *authTypeValue) Set(raw string) error {
	switch domain.AuthType(raw) {
	case domain.AuthTypeOwner, domain.AuthTypeThirdParty:
		*v.target = domain.AuthType(raw)
		return nil
	default:
		return fmt.Errorf("must be %s or %s", domain.AuthTypeOwner, domain.AuthTypeThirdParty)
	}
}

func (v *authTypeValue) Type() string {
	return "authType"
}
