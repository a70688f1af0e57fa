/*
Package settings turns one snapshot of a worktree's language settings into the
two documents the Liquid language server expects.

	                 +---------------------+
	                 |  LanguageSettings   |  (immutable snapshot)
	                 +---------------------+
	                    |               |
	initialization_options         settings
	                    |               |
	                    v               v
	  ResolveInitialization   ResolveWorkspaceConfiguration
	                    |               |
	                    v               v
	        { ...verbatim... }   { "themeCheck": {...}, "liquid": {...} }

The two resolvers are independent pure functions. Neither mutates the snapshot
and each returns its own copy, so the payloads never share maps.
*/
package settings

import (
	"context"

	"github.com/rs/zerolog"
)

// Document is untyped settings data as decoded from JSON, YAML or HCL.
type Document = map[string]any

// BinarySettings overrides how the language server is launched.
type BinarySettings struct {
	Path      string            `json:"path,omitempty" yaml:"path,omitempty"`
	Arguments []string          `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Env       map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
}

// LanguageSettings is the per-language block of a worktree's settings.
type LanguageSettings struct {
	InitializationOptions Document        `json:"initialization_options,omitempty" yaml:"initialization_options,omitempty"`
	Settings              Document        `json:"settings,omitempty" yaml:"settings,omitempty"`
	Binary                *BinarySettings `json:"binary,omitempty" yaml:"binary,omitempty"`
}

// Source resolves the settings for one language in one worktree. A nil
// result with a nil error means the worktree has no such settings.
type Source interface {
	LanguageSettings(ctx context.Context, worktree string, language string) (*LanguageSettings, error)
}

// Snapshot asks src for settings. Lookup failures are logged and treated as
// no settings, so a broken settings file only costs configuration, not the
// session.
func Snapshot(ctx context.Context, src Source, worktree string, language string) *LanguageSettings {
	logger := zerolog.Ctx(ctx).With().Str("worktree", worktree).Str("language", language).Logger()

	if src == nil {
		return &LanguageSettings{}
	}

	found, err := src.LanguageSettings(ctx, worktree, language)
	if err != nil {
		logger.Warn().Err(err).Msg("resolving language settings failed, continuing with defaults")
		return &LanguageSettings{}
	}
	if found == nil {
		logger.Debug().Msg("no language settings found")
		return &LanguageSettings{}
	}

	logger.Debug().
		Bool("has_initialization_options", found.InitializationOptions != nil).
		Bool("has_settings", found.Settings != nil).
		Bool("has_binary", found.Binary != nil).
		Msg("resolved language settings")

	return found
}
