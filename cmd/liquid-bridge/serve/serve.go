package serve

import (
	"context"
	"os"

	"github.com/creachadair/jrpc2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/liquid-bridge/pkg/bridge"
	"github.com/walteh/liquid-bridge/pkg/rpc"
	"github.com/walteh/liquid-bridge/pkg/settings"
)

type Handler struct {
	fs       afero.Fs
	language string
}

func NewServeCommand(fs afero.Fs) *cobra.Command {
	me := &Handler{fs: fs}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve classification and configuration as json-rpc over stdio",
		Args:  cobra.NoArgs,
	}

	cmd.Flags().StringVar(&me.language, "language", bridge.SettingsKey, "lsp settings entry to read")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	ext := bridge.NewExtension(settings.NewFileSource(me.fs)).WithSettingsKey(me.language)

	opts := &jrpc2.ServerOptions{
		RPCLog: &rpc.RPCLogger{},
	}

	if err := rpc.NewServer(ext, nil).Serve(ctx, os.Stdin, os.Stdout, opts); err != nil {
		return errors.Errorf("error running bridge server: %w", err)
	}

	return nil
}
