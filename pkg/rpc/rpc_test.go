package rpc_test

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/liquid-bridge/pkg/bridge"
	"github.com/walteh/liquid-bridge/pkg/rpc"
	"github.com/walteh/liquid-bridge/pkg/settings"
)

type staticWorktree string

func (me staticWorktree) Root() string { return string(me) }

func (me staticWorktree) Which(name string) (string, bool) {
	if name == "shopify" {
		return "/usr/local/bin/shopify", true
	}
	return "", false
}

func (me staticWorktree) ShellEnv() []string { return nil }

func newClient(t *testing.T, files map[string]string) *jrpc2.Client {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}

	server := rpc.NewServer(
		bridge.NewExtension(settings.NewFileSource(fs)),
		func(root string) bridge.Worktree { return staticWorktree(root) },
	)

	cch, sch := channel.Direct()
	srv := server.NewInstance(context.Background(), nil).Start(sch)
	cli := jrpc2.NewClient(cch, nil)

	t.Cleanup(func() {
		cli.Close()
		srv.Stop()
	})

	return cli
}

// {% for x in (1..3) %}{% capture y %}{{ x }}{% endcapture %}{% endfor %}
const classifyRequest = `{
	"text": "{% for x in (1..3) %}\n{% capture y %}{{ x }}{% endcapture %}\n{% endfor %}",
	"tree": {"type": "program", "start": 0, "end": 73, "children": [
		{"node": {"type": "for_loop_statement", "start": 0, "end": 73, "children": [
			{"field": "item", "node": {"type": "identifier", "start": 7, "end": 8, "text": "x"}},
			{"field": "iterator", "node": {"type": "range", "start": 12, "end": 18, "children": [
				{"node": {"type": "(", "anonymous": true, "start": 12, "end": 13}},
				{"field": "start", "node": {"type": "number", "start": 13, "end": 14, "text": "1"}},
				{"node": {"type": "..", "anonymous": true, "start": 14, "end": 16}},
				{"field": "end", "node": {"type": "number", "start": 16, "end": 17, "text": "3"}},
				{"node": {"type": ")", "anonymous": true, "start": 17, "end": 18}}
			]}},
			{"node": {"type": "capture_statement", "start": 22, "end": 60, "children": [
				{"field": "variable", "node": {"type": "identifier", "start": 33, "end": 34, "text": "y"}}
			]}}
		]}}
	]}
}`

func TestClassify(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cli := newClient(t, nil)

	var result struct {
		Tokens []struct {
			Tag  string `json:"tag"`
			Text string `json:"text"`
		} `json:"tokens"`
		Folds   []json.RawMessage `json:"folds"`
		Symbols []struct {
			Name     string `json:"name"`
			Children []struct {
				Name string `json:"name"`
			} `json:"children"`
		} `json:"symbols"`
		SemanticTokens []uint32           `json:"semanticTokens"`
		FoldingRanges  []rpc.FoldingRange `json:"foldingRanges"`
	}
	err := cli.CallResult(ctx, rpc.MethodClassify, json.RawMessage(classifyRequest), &result)
	require.NoError(t, err, "classify call")

	require.Len(t, result.Tokens, 5)
	assert.Equal(t, "variable.parameter", result.Tokens[0].Tag)
	assert.Equal(t, "x", result.Tokens[0].Text)
	assert.Equal(t, "punctuation.bracket", result.Tokens[1].Tag)
	assert.Equal(t, "operator", result.Tokens[2].Tag)
	assert.Equal(t, "punctuation.bracket", result.Tokens[3].Tag)
	assert.Equal(t, "variable.definition", result.Tokens[4].Tag)

	assert.Len(t, result.Folds, 2)
	require.Len(t, result.Symbols, 1)
	assert.Equal(t, "x", result.Symbols[0].Name)
	require.Len(t, result.Symbols[0].Children, 1)
	assert.Equal(t, "y", result.Symbols[0].Children[0].Name)

	// x, .., y; brackets have no semantic token type
	assert.Len(t, result.SemanticTokens, 15)

	assert.Equal(t, []rpc.FoldingRange{
		{StartLine: 0, StartCharacter: 0, EndLine: 2, EndCharacter: 12, Kind: "region"},
		{StartLine: 1, StartCharacter: 0, EndLine: 1, EndCharacter: 38, Kind: "region"},
	}, result.FoldingRanges)
}

func TestClassifyWithoutTree(t *testing.T) {
	cli := newClient(t, nil)

	_, err := cli.Call(context.Background(), rpc.MethodClassify, map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a tree")
}

func TestConfiguration(t *testing.T) {
	ctx := context.Background()
	cli := newClient(t, map[string]string{
		"/theme/.zed/settings.json": `{"lsp": {"liquid": {
			"initialization_options": {"bar": 2},
			"settings": {"foo": 1}
		}}}`,
	})

	var init map[string]any
	require.NoError(t, cli.CallResult(ctx, rpc.MethodInitializationOptions, rpc.WorktreeParams{Worktree: "/theme"}, &init))
	assert.Equal(t, map[string]any{"bar": float64(2)}, init)

	var whole []map[string]any
	require.NoError(t, cli.CallResult(ctx, rpc.MethodWorkspaceConfiguration, rpc.ConfigurationParams{Worktree: "/theme"}, &whole))
	require.Len(t, whole, 1)
	assert.Equal(t, map[string]any{
		"themeCheck": map[string]any{"checkOnOpen": true, "checkOnChange": true, "checkOnSave": true},
		"liquid":     map[string]any{"foo": float64(1)},
	}, whole[0])

	var items []any
	require.NoError(t, cli.CallResult(ctx, rpc.MethodWorkspaceConfiguration, rpc.ConfigurationParams{
		Worktree: "/theme",
		Items: []rpc.ConfigurationItem{
			{Section: "themeCheck.checkOnChange"},
			{Section: "liquid"},
			{Section: "missing"},
		},
	}, &items))
	assert.Equal(t, []any{true, map[string]any{"foo": float64(1)}, nil}, items)

	var empty map[string]any
	require.NoError(t, cli.CallResult(ctx, rpc.MethodInitializationOptions, rpc.WorktreeParams{Worktree: "/elsewhere"}, &empty))
	assert.Equal(t, map[string]any{}, empty)
}

func TestLanguageServerCommand(t *testing.T) {
	cli := newClient(t, nil)

	var cmd bridge.Command
	require.NoError(t, cli.CallResult(context.Background(), rpc.MethodLanguageServerCommand, rpc.WorktreeParams{Worktree: "/theme"}, &cmd))
	assert.Equal(t, "/usr/local/bin/shopify", cmd.Path)
	assert.Equal(t, []string{"theme", "language-server"}, cmd.Args)
}

func TestServeOverPipes(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	serverReader, clientWriter := io.Pipe()
	clientReader, serverWriter := io.Pipe()

	server := rpc.NewServer(bridge.NewExtension(nil), func(root string) bridge.Worktree { return staticWorktree(root) })

	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx, serverReader, serverWriter, nil)
	}()

	cli := jrpc2.NewClient(channel.LSP(clientReader, clientWriter), nil)

	var init map[string]any
	require.NoError(t, cli.CallResult(ctx, rpc.MethodInitializationOptions, rpc.WorktreeParams{Worktree: "/theme"}, &init))
	assert.Empty(t, init)

	require.NoError(t, cli.Close())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("server did not stop after the client closed")
	}
}
