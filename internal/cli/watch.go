package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/prabalesh/sysmon/internal/format"
	"github.com/prabalesh/sysmon/internal/monitor"
	"github.com/spf13/cobra"
)

func NewWatchCommand(root *RootCommand) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print metrics as plain text every interval",
		Long: `Print the CPU, memory, network and power blocks after every sample,
for terminals or logs where the full-screen view is not wanted.`,
		Example: `  sysmon watch
  sysmon watch --count 5 --interval 2s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), root.newMonitor(), root.out, count)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Stop after this many samples (0 = until interrupted)")

	return cmd
}

func runWatch(ctx context.Context, mon *monitor.Monitor, w io.Writer, count int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- mon.Run(ctx) }()

	for printed := 0; count == 0 || printed < count; printed++ {
		select {
		case <-ctx.Done():
			return <-errCh
		case err := <-errCh:
			return err
		case s := <-mon.Updates():
			printState(w, s)
		}
	}

	cancel()
	return <-errCh
}

func printState(w io.Writer, s monitor.State) {
	snap := s.Snapshot
	blocks := []string{
		format.CPUBlock(snap.CPU),
		format.MemoryBlock(snap.Memory),
		format.NetworkBlock(snap.Network),
		format.PowerBlock(snap.Battery),
		fmt.Sprintf("Connections: %d", len(snap.Connections)),
	}

	fmt.Fprintf(w, "--- %s ---\n", s.UpdatedAt.Format("15:04:05"))
	fmt.Fprintln(w, strings.Join(blocks, "\n\n"))
	if s.Err != nil {
		fmt.Fprintf(w, "\nWarning: %v\n", s.Err)
	}
	fmt.Fprintln(w)
}
