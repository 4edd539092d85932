package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func NewVersionCommand(root *RootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the version, build date, and git commit of sysmon.",
		// Version needs no configuration or logger.
		PersistentPreRunE:  func(cmd *cobra.Command, args []string) error { return nil },
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(root.out)
		},
	}

	return cmd
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "sysmon version %s\n", cliVersion)
	fmt.Fprintf(w, "  Commit: %s\n", cliGitCommit)
	fmt.Fprintf(w, "  Built:  %s\n", cliBuildDate)
}
