package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/seep/internal/clipboard"
	"go.klb.dev/seep/internal/notify"
	"go.klb.dev/seep/internal/relay"
)

func newRelayCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Run the clipboard relay (star center)",
		Long: `Starts the seep relay. Every message received from one connected peer is
rebroadcast to all the others; the relay itself never interprets clipboard
payloads unless --sync is given, in which case the relay host's own
clipboard joins the sync.

Config file search order:
  /etc/seep/seep.toml
  $HOME/.config/seep/seep.toml
  path supplied via --config

Precedence (lowest → highest): defaults → config file → SEEP_* env vars → flags`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runRelay(v) },
	}

	f := cmd.Flags()
	f.String("addr", "0.0.0.0:5120", "listen address")
	f.Bool("sync", false, "also sync this host's clipboard")
	f.String("source", defaultSource(), "source identifier for this host's clipboard peer (with --sync)")
	f.Bool("no-notify", false, "disable desktop notifications for received images (with --sync)")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runRelay(v *viper.Viper) error {
	setupLogging(v)

	addr := v.GetString("addr")
	withLocal := v.GetBool("sync")
	source := v.GetString("source")

	slog.Info("seep relay starting",
		"version", Version,
		"addr", addr,
		"local_clip", withLocal,
		"source", source,
	)

	srv := relay.NewServer()

	if withLocal {
		backend := clipboard.New()
		defer backend.Close()
		go relay.RunLocal(context.Background(), srv.Registry(), source, backend, notifier(v))
	}

	return srv.ListenAndServe(addr)
}

// notifier returns the desktop notification hook, or nil when disabled.
func notifier(v *viper.Viper) func(string) {
	if v.GetBool("no-notify") {
		return nil
	}
	return func(msg string) { notify.Notify("seep", msg) }
}
