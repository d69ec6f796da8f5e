package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command of the uniMate service.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unimate",
		Short: "uniMate student housing backend",
		Long:  "HTTP backend of the uniMate student housing marketplace: guarded pages, contracts, conversations and lookups.",
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewEnvCommand())

	return cmd
}
