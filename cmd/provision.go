package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/utilityapi-cli/internal/adapters/render/status"
	"github.com/bnema/utilityapi-cli/internal/application"
	"github.com/bnema/utilityapi-cli/internal/async"
	"github.com/bnema/utilityapi-cli/internal/domain"
)

func newProvisionCmd(app *app) *cobra.Command {
	var (
		options     domain.AccountOptions
		activeUntil string
	)

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Add an account, activate its service and fetch its bills",
		Long:  "Add an account, wait until the utility login is verified, activate its single service until --active-until (default one year from now), wait for data collection and print the bills.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var deadline time.Time
			if activeUntil != "" {
				parsed, err := time.Parse(time.RFC3339, activeUntil)
				if err != nil {
					return fmt.Errorf("parse --active-until: %w", err)
				}
				deadline = parsed
			}

			provisioner, err := app.provisioner(cmd.Context())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			task, err := async.New[*application.Provisioner, application.ProvisionResult](provisioner, nil).
				Go(func(p *application.Provisioner) (application.ProvisionResult, error) {
					return p.CreateAccount(ctx, options, deadline)
				})
			if err != nil {
				return err
			}

			if !app.asJSON {
				if err := runTaskSpinner(ctx, cmd.ErrOrStderr(), "Provisioning account...", task.Done()); err != nil {
					return err
				}
			}

			result, err := task.Await(ctx)
			if err != nil {
				return err
			}

			return writeOutput(cmd, app, result, statusadapter.Document{
				Title:    fmt.Sprintf("Provisioned account %s", result.Account.UID),
				Accounts: []domain.Account{result.Account},
				Services: []domain.Service{result.Service},
				Bills:    result.Bills,
			})
		},
	}

	bindAccountOptionFlags(cmd, &options)
	cmd.Flags().StringVar(&activeUntil, "active-until", "", "collect data until this RFC 3339 time (default one year from now)")
	_ = cmd.MarkFlagRequired("utility")
	_ = cmd.MarkFlagRequired("auth-type")
	_ = cmd.MarkFlagRequired("real-name")

	return cmd
}
