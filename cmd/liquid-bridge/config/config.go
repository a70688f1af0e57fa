package config

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/liquid-bridge/pkg/bridge"
	"github.com/walteh/liquid-bridge/pkg/settings"
)

type Handler struct {
	fs       afero.Fs
	worktree string
	language string
}

func NewConfigCommand(fs afero.Fs) *cobra.Command {
	me := &Handler{fs: fs}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "print the configuration payloads sent to the language server",
	}

	cmd.PersistentFlags().StringVar(&me.worktree, "worktree", ".", "worktree root to read settings from")
	cmd.PersistentFlags().StringVar(&me.language, "language", bridge.SettingsKey, "lsp settings entry to read")

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "print initializationOptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return me.Init(cmd.Context(), cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "workspace [section]",
		Short: "print the workspace/configuration answer, optionally one section of it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := ""
			if len(args) == 1 {
				section = args[0]
			}
			return me.Workspace(cmd.Context(), cmd.OutOrStdout(), section)
		},
	})

	return cmd
}

func (me *Handler) extension() (*bridge.Extension, bridge.Worktree, error) {
	root, err := filepath.Abs(me.worktree)
	if err != nil {
		return nil, nil, errors.Errorf("resolving worktree %s: %w", me.worktree, err)
	}
	ext := bridge.NewExtension(settings.NewFileSource(me.fs)).WithSettingsKey(me.language)
	return ext, bridge.NewLocalWorktree(root), nil
}

func (me *Handler) Init(ctx context.Context, out io.Writer) error {
	ext, wt, err := me.extension()
	if err != nil {
		return err
	}
	return write(out, ext.InitializationOptions(ctx, wt))
}

func (me *Handler) Workspace(ctx context.Context, out io.Writer, section string) error {
	ext, wt, err := me.extension()
	if err != nil {
		return err
	}

	value, ok := ext.WorkspaceConfiguration(ctx, wt).Section(section)
	if !ok {
		return errors.Errorf("unknown configuration section %q", section)
	}
	return write(out, value)
}

func write(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Errorf("encoding payload: %w", err)
	}
	return nil
}
