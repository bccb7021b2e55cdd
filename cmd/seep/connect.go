package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/seep/internal/clipboard"
	"go.klb.dev/seep/internal/peer"
)

func newConnectCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect to a relay and sync the local clipboard",
		Long: `Connects to a seep relay and keeps the local system clipboard in sync
with every other connected peer. The clipboard is polled every two seconds;
on disconnect or a refused connection the client retries every 60 seconds,
forever.

Config file search order:
  /etc/seep/seep.toml
  $HOME/.config/seep/seep.toml
  path supplied via --config

Precedence (lowest → highest): defaults → config file → SEEP_* env vars → flags`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runConnect(v) },
	}

	f := cmd.Flags()
	f.String("addr", "", "relay address, e.g. ws://hub.example.net:5120 (required)")
	f.String("source", defaultSource(), "source identifier announced to the relay")
	f.Bool("no-notify", false, "disable desktop notifications for received images")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runConnect(v *viper.Viper) error {
	setupLogging(v)

	addr := v.GetString("addr")
	if addr == "" {
		return fmt.Errorf("--addr is required (e.g. ws://hub.example.net:5120)")
	}

	source := v.GetString("source")
	slog.Info("seep client starting", "version", Version, "addr", addr, "source", source)

	backend := clipboard.New()
	defer backend.Close()

	c := &peer.Client{
		Addr:    addr,
		Backend: backend,
		Notify:  notifier(v),
		Source:  source,
	}
	c.Run(context.Background())
	return nil
}
