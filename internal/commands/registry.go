package commands

import (
	"fmt"
	"regexp"
	"strings"

	domain "github.com/aria-assistant/cli/internal/domain"
)

// CommandPattern binds one intent to its compiled matcher. Patterns are
// case-insensitive and whole-string anchored unless the expression itself is
// prefix-based (the bare-URL intent). Immutable after registration.
type CommandPattern struct {
	Intent  domain.Intent
	matcher *regexp.Regexp
}

// Registry holds the ordered intent-pattern table. Registration order is the
// precedence contract: classification evaluates patterns in the order they
// were registered and the first match wins. The registry is built once at
// startup and read-only afterwards, so it is shared across goroutines
// without locking.
type Registry struct {
	patterns []CommandPattern
	byIntent map[domain.Intent]int
}

// NewRegistry creates an empty pattern registry.
func NewRegistry() *Registry {
	return &Registry{
		byIntent: make(map[domain.Intent]int),
	}
}

// Register appends a pattern to the end of the ordered table. The expression
// is compiled case-insensitively. Registering the same intent twice is
// rejected with an error rather than overwriting, so table construction
// mistakes surface at startup instead of silently reordering precedence.
func (r *Registry) Register(intent domain.Intent, expr string) error {
	if _, exists := r.byIntent[intent]; exists {
		return fmt.Errorf("pattern for intent %q already registered", intent)
	}

	matcher, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return fmt.Errorf("invalid pattern for intent %q: %w", intent, err)
	}

	r.byIntent[intent] = len(r.patterns)
	r.patterns = append(r.patterns, CommandPattern{Intent: intent, matcher: matcher})
	return nil
}

// Len returns the number of registered patterns.
func (r *Registry) Len() int {
	return len(r.patterns)
}

// Intents returns the registered intents in registration order.
func (r *Registry) Intents() []domain.Intent {
	intents := make([]domain.Intent, 0, len(r.patterns))
	for _, p := range r.patterns {
		intents = append(intents, p.Intent)
	}
	return intents
}

// Normalize applies the input normalization the classifier uses: surrounding
// whitespace is trimmed and the text is lowercased.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Classify matches input text against the registered patterns in
// registration order and returns the first match with its captured groups as
// params. Empty input after normalization yields IntentEmpty; no match
// yields IntentUnknown. Classification is a pure function of the input and
// the fixed table: no side effects, fully deterministic, and it never fails.
func (r *Registry) Classify(text string) domain.ParsedCommand {
	normalized := Normalize(text)
	if normalized == "" {
		return domain.ParsedCommand{Intent: domain.IntentEmpty}
	}

	for _, p := range r.patterns {
		groups := p.matcher.FindStringSubmatch(normalized)
		if groups == nil {
			continue
		}

		var params []string
		if len(groups) > 1 {
			params = groups[1:]
		}
		return domain.ParsedCommand{Intent: p.Intent, Params: params}
	}

	return domain.ParsedCommand{Intent: domain.IntentUnknown}
}

// DefaultRegistry builds the canonical intent table. Order is significant
// and deliberate: open_app precedes open_file and search_files precedes
// web_search, so "open file X" resolves to open_app and "search X" to
// search_files. First-match-wins over this exact order is the documented
// precedence contract.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	table := []struct {
		intent domain.Intent
		expr   string
	}{
		{domain.IntentOpenApp, `^open\s+(.+)$`},
		{domain.IntentCloseApp, `^close\s+(.+)$`},
		{domain.IntentSystemControl, `^(shutdown|restart|reboot|lock|logout)$`},
		{domain.IntentVolume, `^volume\s+(up|down|mute|unmute)$`},
		{domain.IntentOpenFile, `^open\s+file\s+(.+)$`},
		{domain.IntentCreateFile, `^create\s+file\s+(.+)$`},
		{domain.IntentDeleteFile, `^delete\s+file\s+(.+)$`},
		{domain.IntentSearchFiles, `^search\s+(.+)$`},
		{domain.IntentWebSearch, `^search\s+(.+)$`},
		{domain.IntentOpenWebsite, `^open\s+website\s+(.+)$`},
		{domain.IntentOpenURL, `^(https?://\S+)`},
		{domain.IntentTime, `^time$`},
		{domain.IntentDate, `^date$`},
		{domain.IntentCPUUsage, `^cpu\s+usage$`},
		{domain.IntentMemoryUsage, `^memory\s+usage$`},
		{domain.IntentDiskUsage, `^disk\s+usage$`},
		{domain.IntentSystemInfo, `^system\s+info$`},
		{domain.IntentWeather, `^weather$`},
		{domain.IntentHelp, `^(help|\?)$`},
		{domain.IntentVersion, `^version$`},
	}

	for _, entry := range table {
		if err := r.Register(entry.intent, entry.expr); err != nil {
			// The canonical table is static; a failure here is a programming
			// error in this file.
			panic(err)
		}
	}

	return r
}
