package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/utilityapi-cli/internal/adapters/render/status"
)

// writeOutput prints value as indented JSON with --json and the rendered
// document otherwise.
func writeOutput(cmd *cobra.Command, app *app, value any, doc statusadapter.Document) error {
	if app.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	}

	rendered, err := statusadapter.Render(doc, statusadapter.RenderOptions{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render output: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

// writeFile writes downloaded content to path, or to stdout for "-".
func writeFile(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	_, err := fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d bytes to %s\n", len(data), path)
	return err
}
