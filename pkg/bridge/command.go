package bridge

import (
	"context"
	"os"
	"os/exec"
	"sort"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/liquid-bridge/pkg/settings"
)

// ErrServerNotFound is returned when neither settings nor PATH provide a
// language server binary.
var ErrServerNotFound = errors.Base("language server binary not found")

// Worktree is the editor project a request runs in.
type Worktree interface {
	Root() string
	// Which looks a binary up on the worktree's PATH.
	Which(name string) (string, bool)
	// ShellEnv is the worktree's shell environment as KEY=VALUE pairs.
	ShellEnv() []string
}

// Command launches the external language server.
type Command struct {
	Path string   `json:"path"`
	Args []string `json:"args"`
	Env  []string `json:"env,omitempty"`
}

// LanguageServerCommand prefers a binary configured in settings, then the
// Shopify CLI on PATH.
func (me *Extension) LanguageServerCommand(ctx context.Context, wt Worktree) (*Command, error) {
	logger := zerolog.Ctx(ctx)
	snap := me.snapshot(ctx, wt)

	var binary settings.BinarySettings
	if snap.Binary != nil {
		binary = *snap.Binary
	}

	cmd := &Command{Env: append([]string{}, wt.ShellEnv()...)}

	switch {
	case binary.Path != "":
		cmd.Path = binary.Path
	default:
		path, ok := wt.Which(ServerBinary)
		if !ok {
			return nil, errors.WithDetails(ErrServerNotFound, "binary", ServerBinary, "worktree", wt.Root())
		}
		cmd.Path = path
	}

	if binary.Arguments != nil {
		cmd.Args = append([]string{}, binary.Arguments...)
	} else {
		cmd.Args = append([]string{}, ServerArguments...)
	}

	keys := make([]string, 0, len(binary.Env))
	for k := range binary.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd.Env = append(cmd.Env, k+"="+binary.Env[k])
	}

	logger.Debug().Str("path", cmd.Path).Strs("args", cmd.Args).Msg("resolved language server command")

	return cmd, nil
}

// LocalWorktree is a Worktree on the local file system using this process's
// environment.
type LocalWorktree struct {
	root string
}

func NewLocalWorktree(root string) *LocalWorktree {
	return &LocalWorktree{root: root}
}

func (me *LocalWorktree) Root() string {
	return me.root
}

func (me *LocalWorktree) Which(name string) (string, bool) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	return path, true
}

func (me *LocalWorktree) ShellEnv() []string {
	return os.Environ()
}
