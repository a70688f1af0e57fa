package rpc

import (
	"context"

	"github.com/walteh/liquid-bridge/pkg/bridge"
	"github.com/walteh/liquid-bridge/pkg/position"
	"github.com/walteh/liquid-bridge/pkg/region"
	"github.com/walteh/liquid-bridge/pkg/semtok"
	"github.com/walteh/liquid-bridge/pkg/settings"
	"github.com/walteh/liquid-bridge/pkg/syntax"
)

type ClassifyParams struct {
	Tree *syntax.Node `json:"tree"`
	// Text is the source the tree was parsed from. When present the result
	// also carries line-based views.
	Text string `json:"text,omitempty"`
}

type FoldingRange struct {
	StartLine      int    `json:"startLine"`
	StartCharacter int    `json:"startCharacter"`
	EndLine        int    `json:"endLine"`
	EndCharacter   int    `json:"endCharacter"`
	Kind           string `json:"kind,omitempty"`
}

type ClassifyResult struct {
	*bridge.Classification
	Symbols        []*region.Symbol `json:"symbols"`
	SemanticTokens []uint32         `json:"semanticTokens,omitempty"`
	FoldingRanges  []FoldingRange   `json:"foldingRanges,omitempty"`
}

type WorktreeParams struct {
	Worktree string `json:"worktree"`
}

type ConfigurationItem struct {
	ScopeURI string `json:"scopeUri,omitempty"`
	Section  string `json:"section,omitempty"`
}

type ConfigurationParams struct {
	Worktree string              `json:"worktree"`
	Items    []ConfigurationItem `json:"items"`
}

func (me *Server) Classify(ctx context.Context, params *ClassifyParams) (*ClassifyResult, error) {
	if params.Tree == nil {
		return nil, newInvalidParams("classify requires a tree")
	}

	result := &ClassifyResult{Classification: me.ext.Classify(ctx, params.Tree)}
	result.Symbols = region.Tree(result.Outline)
	if result.Symbols == nil {
		result.Symbols = []*region.Symbol{}
	}

	if params.Text != "" {
		result.SemanticTokens = semtok.Encode(result.Tokens, params.Text)

		idx := position.NewIndex(params.Text)
		result.FoldingRanges = make([]FoldingRange, 0, len(result.Folds))
		for _, f := range result.Folds {
			r := idx.Range(f.Range.Start, f.Range.End)
			fr := FoldingRange{
				StartLine:      r.Start.Line,
				StartCharacter: r.Start.Character,
				EndLine:        r.End.Line,
				EndCharacter:   r.End.Character,
				Kind:           "region",
			}
			if f.Kind == syntax.KindComment {
				fr.Kind = "comment"
			}
			result.FoldingRanges = append(result.FoldingRanges, fr)
		}
	}

	return result, nil
}

func (me *Server) InitializationOptions(ctx context.Context, params *WorktreeParams) (settings.InitializationPayload, error) {
	return me.ext.InitializationOptions(ctx, me.worktrees(params.Worktree)), nil
}

// WorkspaceConfiguration answers one value per requested item; unknown
// sections answer null as workspace/configuration requires.
func (me *Server) WorkspaceConfiguration(ctx context.Context, params *ConfigurationParams) ([]any, error) {
	payload := me.ext.WorkspaceConfiguration(ctx, me.worktrees(params.Worktree))

	if len(params.Items) == 0 {
		whole, _ := payload.Section("")
		return []any{whole}, nil
	}

	out := make([]any, len(params.Items))
	for i, item := range params.Items {
		if value, ok := payload.Section(item.Section); ok {
			out[i] = value
		}
	}
	return out, nil
}

func (me *Server) LanguageServerCommand(ctx context.Context, params *WorktreeParams) (*bridge.Command, error) {
	return me.ext.LanguageServerCommand(ctx, me.worktrees(params.Worktree))
}
