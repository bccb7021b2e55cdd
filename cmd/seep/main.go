// seep: clipboard synchronization across machines over WebSocket.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.klb.dev/seep/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "seep",
		Short: "Clipboard synchronization over WebSocket",
		Long: `seep keeps the system clipboard synchronized across machines.

Run "seep relay" on one always-reachable host; every other machine runs
"seep connect --addr ws://that-host:5120". Anything copied on one machine —
text or an image — lands on the clipboard of all the others. Give the relay
--sync to let its own clipboard take part too, which also covers the
two-machine case with no third box.

Config file search order (first found wins):
  /etc/seep/seep.toml
  $HOME/.config/seep/seep.toml
  path supplied via --config

All flags can be set via SEEP_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newRelayCmd(),
		newConnectCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("seep %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
func resolveLogging(interactive bool, formatStr, levelStr string) {
	format := logging.ParseFormat(formatStr)
	level := logging.ParseLevel(levelStr)
	if levelStr == "" {
		if interactive {
			level = logging.ParseLevel("debug")
		} else {
			level = logging.ParseLevel("info")
		}
	}
	logging.Setup(format, level)
}
