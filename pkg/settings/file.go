package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/tailscale/hujson"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// DefaultCandidates are the worktree-relative settings files FileSource reads,
// in order. The first file holding the requested language wins.
var DefaultCandidates = []string{
	".zed/settings.json",
	".zed/settings.yaml",
	".zed/settings.yml",
	".liquid-bridge.hcl",
}

// settingsFile is the part of an editor settings file this module reads:
//
//	{"lsp": {"liquid": {"initialization_options": {...}, "settings": {...}}}}
type settingsFile struct {
	LSP map[string]*LanguageSettings `json:"lsp" yaml:"lsp"`
}

// FileSource reads language settings from files inside a worktree.
type FileSource struct {
	fs         afero.Fs
	candidates []string
}

func NewFileSource(fs afero.Fs, candidates ...string) *FileSource {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	return &FileSource{fs: fs, candidates: candidates}
}

// LanguageSettings implements Source. Missing files are skipped; files that
// exist but cannot be decoded are reported together once no candidate holds
// the language.
func (me *FileSource) LanguageSettings(ctx context.Context, worktree string, language string) (*LanguageSettings, error) {
	logger := zerolog.Ctx(ctx)
	var errs error

	for _, candidate := range me.candidates {
		path := filepath.Join(worktree, candidate)

		exists, err := afero.Exists(me.fs, path)
		if err != nil {
			errs = multierr.Append(errs, errors.Errorf("checking %s: %w", path, err))
			continue
		}
		if !exists {
			continue
		}

		data, err := afero.ReadFile(me.fs, path)
		if err != nil {
			errs = multierr.Append(errs, errors.Errorf("reading %s: %w", path, err))
			continue
		}

		file, err := decodeSettingsFile(path, data)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		if found, ok := file.LSP[language]; ok && found != nil {
			logger.Debug().Str("path", path).Msg("language settings loaded")
			return found, nil
		}
	}

	if errs != nil {
		return nil, errs
	}
	return nil, nil
}

func decodeSettingsFile(path string, data []byte) (*settingsFile, error) {
	switch {
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		var file settingsFile
		if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&file); err != nil {
			return nil, errors.Errorf("parsing YAML %s: %w", path, err)
		}
		return &file, nil
	case strings.HasSuffix(path, ".hcl"):
		return decodeHCL(path, data)
	default:
		// editor settings are JSON with comments and trailing commas
		std, err := hujson.Standardize(data)
		if err != nil {
			return nil, errors.Errorf("parsing JSON %s: %w", path, err)
		}
		var file settingsFile
		if err := json.Unmarshal(std, &file); err != nil {
			return nil, errors.Errorf("decoding JSON %s: %w", path, err)
		}
		return &file, nil
	}
}
