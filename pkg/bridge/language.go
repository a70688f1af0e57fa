package bridge

// Static language wiring, the equivalent of an extension manifest.
const (
	// LanguageName is the grammar's language name inside the editor.
	LanguageName = "Liquid"

	// LanguageServerName identifies the external server in editor settings.
	LanguageServerName = "shopify-theme-ls"

	// SettingsKey selects the per-language block in worktree settings.
	SettingsKey = "liquid"

	// ServerBinary is looked up on the worktree PATH when settings name no binary.
	ServerBinary = "shopify"
)

// ServerArguments start the language server through the Shopify CLI.
var ServerArguments = []string{"theme", "language-server"}

// LanguageIDs maps editor language names to the language identifiers the
// server expects in textDocument items.
var LanguageIDs = map[string]string{
	LanguageName: "liquid",
}
