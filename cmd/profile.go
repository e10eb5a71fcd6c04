package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/utilityapi-cli/internal/adapters/render/status"
	"github.com/bnema/utilityapi-cli/internal/config"
	"github.com/bnema/utilityapi-cli/internal/domain"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage API profiles and their access tokens",
	}

	cmd.AddCommand(
		newProfileSetCmd(app),
		newProfileRemoveCmd(app),
		newProfileListCmd(app),
	)

	return cmd
}

func newProfileSetCmd(app *app) *cobra.Command {
	var (
		name      string
		baseURL   string
		token     string
		pollDelay time.Duration
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or update a profile",
		Long:  "Create or update a profile. The token goes to pass (or the file store) and never into profiles.toml. Omit --token to keep the stored one.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile := domain.Profile{
				Name:      domain.ProfileName(name),
				BaseURL:   baseURL,
				PollDelay: pollDelay,
			}
			if err := app.profiles.SetProfile(cmd.Context(), profile, token); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "profile %s saved\n", name)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", string(domain.DefaultProfileName), "profile name")
	cmd.Flags().StringVar(&baseURL, "base-url", config.DefaultBaseURL, "API base URL")
	cmd.Flags().StringVar(&token, "token", "", "API access token")
	cmd.Flags().DurationVar(&pollDelay, "poll-delay", 0, "delay between status polls while provisioning (0 uses the configured default)")

	return cmd
}

func newProfileRemoveCmd(app *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a profile and its stored token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.profiles.RemoveProfile(cmd.Context(), domain.ProfileName(name)); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "profile %s removed\n", name)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "profile name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProfileListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := app.profiles.ListProfiles(cmd.Context())
			if err != nil {
				return err
			}
			if profiles == nil {
				profiles = []domain.Profile{}
			}

			return writeOutput(cmd, app, profiles, statusadapter.Document{Profiles: profiles})
		},
	}
}
