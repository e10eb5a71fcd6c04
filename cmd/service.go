package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/utilityapi-cli/internal/adapters/render/status"
	"github.com/bnema/utilityapi-cli/internal/domain"
)

func newServiceCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage services, bills and intervals",
	}

	cmd.AddCommand(
		newServiceListCmd(app),
		newServiceGetCmd(app),
		newServiceModifyRequirementsCmd(app),
		newServiceModifyCmd(app),
		newServiceBillsCmd(app),
		newServiceBillRawCmd(app),
		newServiceBillsArchiveCmd(app),
		newServiceIntervalsCmd(app),
		newServiceResetCmd(app),
	)

	return cmd
}

func newServiceListCmd(app *app) *cobra.Command {
	var accountUID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List services, optionally only those of one account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := app.client(cmd.Context())
			if err != nil {
				return err
			}

			var services []domain.Service
			if accountUID != "" {
				services, err = api.Services.ListForAccount(cmd.Context(), domain.AccountUID(accountUID))
			} else {
				services, err = api.Services.List(cmd.Context())
			}
			if err != nil {
				return err
			}

			return writeOutput(cmd, app, services, statusadapter.Document{Services: services})
		},
	}

	cmd.Flags().StringVar(&accountUID, "account", "", "only list services of this account")

	return cmd
}

func newServiceGetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get UID",
		Short: "Show one service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := app.client(cmd.Context())
			if err != nil {
				return err
			}

			service, err := api.Services.Get(cmd.Context(), domain.ServiceUID(args[0]))
			if err != nil {
				return err
			}

			return writeOutput(cmd, app, service, statusadapter.Document{Services: []domain.Service{service}})
		},
	}
}

func newServiceModifyRequirementsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "modify-requirements UID",
		Short: "Show what a service modify request may contain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := app.client(cmd.Context())
			if err != nil {
				return err
			}

			requirements, err := api.Services.ModifyRequirements(cmd.Context(), domain.ServiceUID(args[0]))
			if err != nil {
				return err
			}

			return writeOutput(cmd, app, requirements, modifyRequirementsDocument(requirements))
		},
	}
}

func newServiceModifyCmd(app *app) *cobra.Command {
	var (
		activeUntil string
		updateData  bool
	)

	cmd := &cobra.Command{
		Use:   "modify UID",
		Short: "Modify a service, e.g. activate data collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var options domain.ServiceOptions
			if activeUntil != "" {
				deadline, err := domain.ParseDeadline(activeUntil)
				if err != nil {
					return err
				}
				options.ActiveUntil = deadline
			}
			if cmd.Flags().Changed("update-data") {
				options.UpdateData = &updateData
			}

			api, err := app.client(cmd.Context())
			if err != nil {
				return err
			}

			service, err := api.Services.Modify(cmd.Context(), domain.ServiceUID(args[0]), options)
			if err != nil {
				return err
			}

			return writeOutput(cmd, app, service, statusadapter.Document{Services: []domain.Service{service}})
		},
	}

	cmd.Flags().StringVar(&activeUntil, "active-until", "", "collect data until this RFC 3339 time, or \"now\" to stop")
	cmd.Flags().BoolVar(&updateData, "update-data", false, "ask the server to refresh the data")

	return cmd
}

func newServiceBillsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bills UID",
		Short: "List the bills of a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := app.client(cmd.Context())
			if err != nil {
				return err
			}

			bills, err := api.Services.Bills(cmd.Context(), domain.ServiceUID(args[0]))
			if err != nil {
				return err
			}

			return writeOutput(cmd, app, bills, statusadapter.Document{Bills: bills})
		},
	}
}

func newServiceBillRawCmd(app *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "bill-raw UID FILENAME",
		Short: "Download one raw bill file of a service",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := app.client(cmd.Context())
			if err != nil {
				return err
			}

			data, err := api.Services.BillRaw(cmd.Context(), domain.ServiceUID(args[0]), args[1])
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

func newServiceBillsArchiveCmd(app *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "bills-archive UID",
		Short: "Download all raw bill files of a service (zip)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := app.client(cmd.Context())
			if err != nil {
				return err
			}

			data, err := api.Services.BillsArchive(cmd.Context(), domain.ServiceUID(args[0]))
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

func newServiceIntervalsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "intervals UID",
		Short: "List the usage intervals of a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := app.client(cmd.Context())
			if err != nil {
				return err
			}

			intervals, err := api.Services.Intervals(cmd.Context(), domain.ServiceUID(args[0]))
			if err != nil {
				return err
			}

			return writeOutput(cmd, app, intervals, statusadapter.Document{Intervals: intervals})
		},
	}
}

func newServiceResetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset UID",
		Short: "Drop the collected data of a service and collect it again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := app.client(cmd.Context())
			if err != nil {
				return err
			}

			uid := domain.ServiceUID(args[0])
			code, err := api.Services.ResetCode(cmd.Context(), uid)
			if err != nil {
				return fmt.Errorf("get reset code: %w", err)
			}

			result, err := api.Services.Reset(cmd.Context(), uid, code)
			if err != nil {
				return err
			}

			if app.asJSON {
				return writeOutput(cmd, app, result, statusadapter.Document{})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "service %s reset\n", uid)
			return err
		},
	}
}
