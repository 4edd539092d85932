package cli

import (
	"fmt"

	"github.com/prabalesh/sysmon/internal/format"
	"github.com/spf13/cobra"
)

func NewInfoCommand(root *RootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show system identity",
		Long:  "Print the OS, node name, kernel release and version, machine and processor.",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := root.newSampler().Identity(cmd.Context())
			if err != nil {
				return fmt.Errorf("read system identity: %w", err)
			}
			fmt.Fprintln(root.out, format.SystemBlock(id))
			return nil
		},
	}

	return cmd
}
