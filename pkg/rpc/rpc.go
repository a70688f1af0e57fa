/*
Package rpc serves the extension façade over JSON-RPC 2.0 so an editor plugin
(or any other host) can drive classification and configuration out of process.

	editor plugin                         rpc.Server
	      |   Content-Length framed          |
	      | -------- liquid/classify ------> | bridge.Classify
	      | -- liquid/initializationOptions->| bridge.InitializationOptions
	      | ---- workspace/configuration --> | bridge.WorkspaceConfiguration
	      | - liquid/languageServerCommand ->| bridge.LanguageServerCommand
*/
package rpc

import (
	"context"
	"io"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/creachadair/jrpc2/handler"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/liquid-bridge/pkg/bridge"
)

const (
	MethodClassify               = "liquid/classify"
	MethodInitializationOptions  = "liquid/initializationOptions"
	MethodWorkspaceConfiguration = "workspace/configuration"
	MethodLanguageServerCommand  = "liquid/languageServerCommand"
)

// WorktreeFunc builds the worktree for a request's worktree root.
type WorktreeFunc func(root string) bridge.Worktree

type Server struct {
	id        string
	ext       *bridge.Extension
	worktrees WorktreeFunc
}

func NewServer(ext *bridge.Extension, worktrees WorktreeFunc) *Server {
	if worktrees == nil {
		worktrees = func(root string) bridge.Worktree {
			return bridge.NewLocalWorktree(root)
		}
	}
	return &Server{
		id:        xid.New().String(),
		ext:       ext,
		worktrees: worktrees,
	}
}

func (me *Server) Methods() handler.Map {
	return handler.Map{
		MethodClassify:               createHandler(me.Classify),
		MethodInitializationOptions:  createHandler(me.InitializationOptions),
		MethodWorkspaceConfiguration: createHandler(me.WorkspaceConfiguration),
		MethodLanguageServerCommand:  createHandler(me.LanguageServerCommand),
	}
}

// NewInstance builds a jrpc2 server whose handlers log through ctx's logger.
func (me *Server) NewInstance(ctx context.Context, opts *jrpc2.ServerOptions) *jrpc2.Server {
	if opts == nil {
		opts = &jrpc2.ServerOptions{}
	}
	base := zerolog.Ctx(ctx).With().Str("server_id", me.id).Logger().WithContext(ctx)
	opts.NewContext = func() context.Context {
		return base
	}
	return jrpc2.NewServer(me.Methods(), opts)
}

// Serve runs the server over r/w with LSP header framing until the peer
// disconnects.
func (me *Server) Serve(ctx context.Context, r io.Reader, w io.WriteCloser, opts *jrpc2.ServerOptions) error {
	srv := me.NewInstance(ctx, opts).Start(channel.LSP(r, w))

	zerolog.Ctx(ctx).Info().Str("server_id", me.id).Msg("serving liquid bridge")

	if err := srv.Wait(); err != nil && !isDisconnect(err) {
		return errors.Errorf("serving json-rpc: %w", err)
	}
	return nil
}

func isDisconnect(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) || channel.IsErrClosing(err)
}

// RPCLogger logs every request and response at debug level.
type RPCLogger struct{}

func (me *RPCLogger) LogRequest(ctx context.Context, req *jrpc2.Request) {
	zerolog.Ctx(ctx).Debug().Str("rpc_params", req.ParamString()).Str("rpc_id", req.ID()).Str("rpc_method", req.Method()).Msg("client request")
}

func (me *RPCLogger) LogResponse(ctx context.Context, res *jrpc2.Response) {
	zerolog.Ctx(ctx).Debug().Str("rpc_result", res.ResultString()).Str("rpc_id", res.ID()).Msg("server response")
}

func applyRequestToZerolog(ctx context.Context, req *jrpc2.Request) context.Context {
	return zerolog.Ctx(ctx).With().Str("rpc_method", req.Method()).Str("rpc_id", req.ID()).Logger().WithContext(ctx)
}

func newParseError(err error) *jrpc2.Error {
	return &jrpc2.Error{
		Code:    -32700, // Parse error
		Message: err.Error(),
	}
}

func newInvalidParams(msg string) *jrpc2.Error {
	return &jrpc2.Error{
		Code:    -32602, // Invalid params
		Message: msg,
	}
}

func createHandler[T any, O any](method func(ctx context.Context, params *T) (O, error)) func(context.Context, *jrpc2.Request) (any, error) {
	return func(ctx context.Context, r *jrpc2.Request) (any, error) {
		ctx = applyRequestToZerolog(ctx, r)
		var params T
		if err := r.UnmarshalParams(&params); err != nil {
			return nil, newParseError(err)
		}

		result, err := method(ctx, &params)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Msg("request failed")
			return nil, err
		}
		return result, nil
	}
}
