package domain

// QuickAction is a predefined canned prompt exposed as a one-click button.
// The set is static: defined at build time (or from config) and never
// mutated at runtime.
type QuickAction struct {
	Label          string `yaml:"label"`
	Emoji          string `yaml:"emoji"`
	PromptTemplate string `yaml:"prompt"`
}

// DefaultQuickActions mirrors the backend coordinator's canned follow-ups.
func DefaultQuickActions() []QuickAction {
	return []QuickAction{
		{Label: "Create dashboard", Emoji: "📊", PromptTemplate: "Create a CPU usage dashboard"},
		{Label: "Show errors", Emoji: "🔍", PromptTemplate: "Show dashboard errors"},
		{Label: "Set up alerts", Emoji: "🔔", PromptTemplate: "Set up alerts for error rates"},
	}
}
