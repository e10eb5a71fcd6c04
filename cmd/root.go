package cmd

import (
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app := newApp()

	rootCmd := &cobra.Command{
		Use:           "uapi",
		Short:         "UtilityAPI CLI (uapi): manage accounts, services and bills",
		Long:          "uapi talks to the UtilityAPI REST API: it adds and inspects utility accounts, activates their services, downloads bills and intervals, and runs the full provisioning workflow from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if !app.dumpMetrics {
				return nil
			}
			return app.writeMetrics(cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "config file (default $HOME/.config/uapi/config.toml)")
	flags.String("profile", "", "profile to use (default: UAPI_TOKEN, then the \"default\" profile)")
	flags.BoolVar(&app.asJSON, "json", false, "print JSON instead of formatted text")
	flags.BoolVar(&app.dumpMetrics, "metrics", false, "print request metrics to stderr after the command")
	_ = app.v.BindPFlag("profile", flags.Lookup("profile"))

	rootCmd.AddCommand(
		newVersionCmd(),
		newProfileCmd(app),
		newAccountCmd(app),
		newServiceCmd(app),
		newProvisionCmd(app),
	)

	return rootCmd
}
