package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"unimate/internal/config"
)

// NewEnvCommand prints whether the backend settings are present.
func NewEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "env",
		Short:        "Report MISSING/SET for the backend settings",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return printDiagnostics(cmd.OutOrStdout(), cfg.Diagnostics())
		},
	}
}

func printDiagnostics(w io.Writer, diagnostics map[string]string) error {
	keys := make([]string, 0, len(diagnostics))
	for k := range diagnostics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, diagnostics[k]); err != nil {
			return err
		}
	}
	return nil
}
