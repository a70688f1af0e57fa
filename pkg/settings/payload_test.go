package settings_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/liquid-bridge/pkg/settings"
)

func TestResolveInitialization(t *testing.T) {
	tests := []struct {
		name     string
		snapshot *settings.LanguageSettings
		expected settings.InitializationPayload
	}{
		{
			name:     "test_verbatim_options",
			snapshot: &settings.LanguageSettings{InitializationOptions: settings.Document{"bar": 2}},
			expected: settings.InitializationPayload{"bar": 2},
		},
		{
			name:     "test_absent_options",
			snapshot: &settings.LanguageSettings{Settings: settings.Document{"foo": 1}},
			expected: settings.InitializationPayload{},
		},
		{
			name:     "test_nil_snapshot",
			snapshot: nil,
			expected: settings.InitializationPayload{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := settings.ResolveInitialization(tt.snapshot)
			require.NotNil(t, got, "payload should never be nil")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveWorkspaceConfiguration(t *testing.T) {
	defaults := settings.ThemeCheckOptions{CheckOnOpen: true, CheckOnChange: true, CheckOnSave: true}

	empty := settings.ResolveWorkspaceConfiguration(&settings.LanguageSettings{})
	assert.Equal(t, defaults, empty.ThemeCheck)
	assert.Equal(t, settings.Document{}, empty.Liquid)

	withSettings := settings.ResolveWorkspaceConfiguration(&settings.LanguageSettings{
		Settings:              settings.Document{"foo": 1},
		InitializationOptions: settings.Document{"bar": 2},
	})
	assert.Equal(t, defaults, withSettings.ThemeCheck)
	assert.Equal(t, settings.Document{"foo": 1}, withSettings.Liquid)
}

func TestWorkspaceConfigurationJSON(t *testing.T) {
	payload := settings.ResolveWorkspaceConfiguration(&settings.LanguageSettings{
		Settings: settings.Document{"foo": 1},
	})

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"themeCheck": {"checkOnOpen": true, "checkOnChange": true, "checkOnSave": true},
		"liquid": {"foo": 1}
	}`, string(raw))

	raw, err = json.Marshal(settings.ResolveWorkspaceConfiguration(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"themeCheck": {"checkOnOpen": true, "checkOnChange": true, "checkOnSave": true},
		"liquid": {}
	}`, string(raw))

	raw, err = json.Marshal(settings.ResolveInitialization(nil))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(raw), "absent initialization options encode as an empty object, not null")
}

func TestPayloadsDoNotAliasSnapshot(t *testing.T) {
	shared := settings.Document{"nested": settings.Document{"value": 1}, "list": []any{"a"}}
	snapshot := &settings.LanguageSettings{InitializationOptions: shared, Settings: shared}

	initPayload := settings.ResolveInitialization(snapshot)
	workspace := settings.ResolveWorkspaceConfiguration(snapshot)

	initPayload["nested"].(settings.Document)["value"] = 99
	workspace.Liquid["list"].([]any)[0] = "changed"

	assert.Equal(t, 1, shared["nested"].(settings.Document)["value"])
	assert.Equal(t, "a", shared["list"].([]any)[0])
	assert.Equal(t, 1, workspace.Liquid["nested"].(settings.Document)["value"])
}

func TestSection(t *testing.T) {
	payload := settings.ResolveWorkspaceConfiguration(&settings.LanguageSettings{
		Settings: settings.Document{"format": settings.Document{"enabled": false}},
	})

	tests := []struct {
		name     string
		section  string
		expected any
		found    bool
	}{
		{
			name:    "test_theme_check",
			section: "themeCheck",
			expected: settings.Document{
				"checkOnOpen": true, "checkOnChange": true, "checkOnSave": true,
			},
			found: true,
		},
		{
			name:     "test_theme_check_flag",
			section:  "themeCheck.checkOnSave",
			expected: true,
			found:    true,
		},
		{
			name:     "test_nested_liquid_setting",
			section:  "liquid.format.enabled",
			expected: false,
			found:    true,
		},
		{
			name:    "test_unknown_section",
			section: "liquid.nothing",
			found:   false,
		},
		{
			name:    "test_path_through_scalar",
			section: "themeCheck.checkOnSave.deeper",
			found:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := payload.Section(tt.section)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, got)
			}
		})
	}

	whole, ok := payload.Section("")
	require.True(t, ok)
	assert.Contains(t, whole.(settings.Document), "themeCheck")
	assert.Contains(t, whole.(settings.Document), "liquid")
}
