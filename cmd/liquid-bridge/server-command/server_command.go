package server_command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

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
	json     bool

	// newWorktree is replaced in tests
	newWorktree func(root string) bridge.Worktree
}

func NewServerCommandCommand(fs afero.Fs) *cobra.Command {
	return newCommand(fs, func(root string) bridge.Worktree {
		return bridge.NewLocalWorktree(root)
	})
}

func newCommand(fs afero.Fs, newWorktree func(root string) bridge.Worktree) *cobra.Command {
	me := &Handler{fs: fs, newWorktree: newWorktree}

	cmd := &cobra.Command{
		Use:   "command",
		Short: "print the command that starts the " + bridge.LanguageServerName + " language server",
		Args:  cobra.NoArgs,
	}

	cmd.Flags().StringVar(&me.worktree, "worktree", ".", "worktree root to resolve the command for")
	cmd.Flags().StringVar(&me.language, "language", bridge.SettingsKey, "lsp settings entry to read")
	cmd.Flags().BoolVar(&me.json, "json", false, "print the command as json, including env")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), cmd.OutOrStdout())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, out io.Writer) error {
	root, err := filepath.Abs(me.worktree)
	if err != nil {
		return errors.Errorf("resolving worktree %s: %w", me.worktree, err)
	}

	ext := bridge.NewExtension(settings.NewFileSource(me.fs)).WithSettingsKey(me.language)

	command, err := ext.LanguageServerCommand(ctx, me.newWorktree(root))
	if err != nil {
		return errors.Errorf("resolving language server command: %w", err)
	}

	if me.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(command); err != nil {
			return errors.Errorf("encoding command: %w", err)
		}
		return nil
	}

	fmt.Fprintln(out, strings.Join(append([]string{command.Path}, command.Args...), " "))
	return nil
}
