package settings

import (
	"strings"
)

// InitializationPayload is sent once per server session as initializationOptions.
type InitializationPayload Document

// ThemeCheckOptions controls when the server re-runs theme checks.
type ThemeCheckOptions struct {
	CheckOnOpen   bool `json:"checkOnOpen"`
	CheckOnChange bool `json:"checkOnChange"`
	CheckOnSave   bool `json:"checkOnSave"`
}

// DefaultThemeCheckOptions are fixed; user settings do not override them.
func DefaultThemeCheckOptions() ThemeCheckOptions {
	return ThemeCheckOptions{
		CheckOnOpen:   true,
		CheckOnChange: true,
		CheckOnSave:   true,
	}
}

const (
	SectionThemeCheck = "themeCheck"
	SectionLiquid     = "liquid"
)

// WorkspaceConfigurationPayload answers workspace/configuration requests.
type WorkspaceConfigurationPayload struct {
	ThemeCheck ThemeCheckOptions `json:"themeCheck"`
	Liquid     Document          `json:"liquid"`
}

// ResolveInitialization returns a copy of initialization_options, or an empty
// document.
func ResolveInitialization(s *LanguageSettings) InitializationPayload {
	if s == nil || s.InitializationOptions == nil {
		return InitializationPayload{}
	}
	return InitializationPayload(copyDocument(s.InitializationOptions))
}

// ResolveWorkspaceConfiguration returns the theme check defaults next to a copy
// of settings, or an empty document under the liquid key.
func ResolveWorkspaceConfiguration(s *LanguageSettings) WorkspaceConfigurationPayload {
	payload := WorkspaceConfigurationPayload{
		ThemeCheck: DefaultThemeCheckOptions(),
		Liquid:     Document{},
	}
	if s != nil && s.Settings != nil {
		payload.Liquid = copyDocument(s.Settings)
	}
	return payload
}

// Document renders the payload as plain nested maps.
func (me WorkspaceConfigurationPayload) Document() Document {
	return Document{
		SectionThemeCheck: Document{
			"checkOnOpen":   me.ThemeCheck.CheckOnOpen,
			"checkOnChange": me.ThemeCheck.CheckOnChange,
			"checkOnSave":   me.ThemeCheck.CheckOnSave,
		},
		SectionLiquid: copyDocument(me.Liquid),
	}
}

// Section resolves a workspace/configuration item section such as
// "themeCheck", "liquid" or "liquid.format.enabled". The empty section is the
// whole document.
func (me WorkspaceConfigurationPayload) Section(section string) (any, bool) {
	var current any = me.Document()
	if section == "" {
		return current, true
	}

	for _, key := range strings.Split(section, ".") {
		doc, ok := current.(Document)
		if !ok {
			return nil, false
		}
		current, ok = doc[key]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

func copyDocument(d Document) Document {
	if d == nil {
		return Document{}
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		return copyDocument(vv)
	case []any:
		out := make([]any, len(vv))
		for i, item := range vv {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
