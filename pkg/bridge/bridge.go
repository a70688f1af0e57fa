/*
Package bridge is the extension façade. It runs the two pipelines the editor
asks for, and nothing else:

	classification                     configuration
	--------------                     -------------
	syntax.Node                        Worktree
	    |                                  |
	    | Preorder                         | settings.Snapshot
	    v                                  v
	[]syntax.Visit                   *settings.LanguageSettings
	    |          \                    |                 \
	semtok.Match  region.Extract   ResolveInitialization  ResolveWorkspaceConfiguration
	    |              |                |                  |
	 tokens      folds, outline   initializationOptions  workspace/configuration

The pipelines share no state; every call works on its own input snapshot and
an Extension is safe for concurrent use.
*/
package bridge

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/walteh/liquid-bridge/pkg/region"
	"github.com/walteh/liquid-bridge/pkg/semtok"
	"github.com/walteh/liquid-bridge/pkg/settings"
	"github.com/walteh/liquid-bridge/pkg/syntax"
)

type Extension struct {
	source settings.Source
	key    string
}

func NewExtension(source settings.Source) *Extension {
	return &Extension{source: source, key: SettingsKey}
}

// WithSettingsKey returns a copy that reads the lsp.<key> settings entry
// instead of lsp.liquid.
func (me *Extension) WithSettingsKey(key string) *Extension {
	cp := *me
	cp.key = key
	return &cp
}

// Classification is everything the editor renders from one parse.
type Classification struct {
	Tokens  []semtok.Token `json:"tokens"`
	Folds   []region.Fold  `json:"folds"`
	Outline []region.Entry `json:"outline"`
}

// Classify walks the tree in document order and collects tokens, folds and
// outline entries. Access nodes in the receiver role of another access are
// matched through the outer chain, so each identifier is tagged once.
func (me *Extension) Classify(ctx context.Context, root *syntax.Node) *Classification {
	logger := zerolog.Ctx(ctx)

	visits := syntax.Preorder(root)
	tokens := make([]semtok.Token, 0, len(visits)/2)
	unrecognized := 0

	for i, v := range visits {
		if v.Node.Kind == syntax.KindUnrecognized {
			unrecognized++
		}
		if semtok.IsChainReceiver(v.Node, syntax.ParentNode(visits, i), v.Role) {
			continue
		}
		tokens = append(tokens, semtok.Match(v.Node)...)
	}

	folds, outline := region.Extract(visits)

	logger.Debug().
		Int("nodes", len(visits)).
		Int("unrecognized", unrecognized).
		Int("tokens", len(tokens)).
		Int("folds", len(folds)).
		Int("outline", len(outline)).
		Msg("classified syntax tree")

	return &Classification{
		Tokens:  tokens,
		Folds:   nonNil(folds),
		Outline: nonNil(outline),
	}
}

// InitializationOptions is handed to the server once per session start.
func (me *Extension) InitializationOptions(ctx context.Context, wt Worktree) settings.InitializationPayload {
	return settings.ResolveInitialization(me.snapshot(ctx, wt))
}

// WorkspaceConfiguration answers every workspace/configuration request.
func (me *Extension) WorkspaceConfiguration(ctx context.Context, wt Worktree) settings.WorkspaceConfigurationPayload {
	return settings.ResolveWorkspaceConfiguration(me.snapshot(ctx, wt))
}

func (me *Extension) snapshot(ctx context.Context, wt Worktree) *settings.LanguageSettings {
	return settings.Snapshot(ctx, me.source, wt.Root(), me.key)
}

func nonNil[T any](x []T) []T {
	if x == nil {
		return []T{}
	}
	return x
}
