package domain

import "time"

// Intent identifies what kind of command was recognized. The set is closed:
// the classifier only ever produces values declared here.
type Intent string

const (
	IntentOpenApp       Intent = "open_app"
	IntentCloseApp      Intent = "close_app"
	IntentSystemControl Intent = "system_control"
	IntentVolume        Intent = "volume"
	IntentOpenFile      Intent = "open_file"
	IntentCreateFile    Intent = "create_file"
	IntentDeleteFile    Intent = "delete_file"
	IntentSearchFiles   Intent = "search_files"
	IntentWebSearch     Intent = "web_search"
	IntentOpenWebsite   Intent = "open_website"
	IntentOpenURL       Intent = "open_url"
	IntentTime          Intent = "time"
	IntentDate          Intent = "date"
	IntentCPUUsage      Intent = "cpu_usage"
	IntentMemoryUsage   Intent = "memory_usage"
	IntentDiskUsage     Intent = "disk_usage"
	IntentSystemInfo    Intent = "system_info"
	IntentWeather       Intent = "weather"
	IntentHelp          Intent = "help"
	IntentVersion       Intent = "version"

	// IntentEmpty is produced for input that is empty after normalization.
	// It is distinct from IntentUnknown so callers can report it differently.
	IntentEmpty Intent = "empty"

	// IntentUnknown is produced when no registered pattern matches.
	IntentUnknown Intent = "unknown"
)

// ParsedCommand is the classifier's output for one submitted text. Params
// holds the pattern's captured groups in capture order; it is empty for
// patterns without captures. Produced fresh per input and never mutated.
type ParsedCommand struct {
	Intent Intent
	Params []string
}

// Recognized reports whether the command maps to an executable intent.
func (p ParsedCommand) Recognized() bool {
	return p.Intent != IntentUnknown && p.Intent != IntentEmpty
}

// Param returns the capture at index i, or the empty string when the pattern
// captured fewer groups. Handlers use this instead of indexing directly.
func (p ParsedCommand) Param(i int) string {
	if i < 0 || i >= len(p.Params) {
		return ""
	}
	return p.Params[i]
}

// ExecutionResult is the success outcome of one command execution.
type ExecutionResult struct {
	Message string
}

// CommandCompletedEvent is delivered on the dispatcher's completion channel,
// exactly once per successfully executed submission.
type CommandCompletedEvent struct {
	UnitID    string
	Intent    Intent
	Message   string
	Timestamp time.Time
}

// CommandFailedEvent is delivered on the dispatcher's failure channel,
// exactly once per failed submission. Suggestions is non-empty only for
// unrecognized commands that hit the suggestion table.
type CommandFailedEvent struct {
	UnitID      string
	Intent      Intent
	Message     string
	Suggestions []string
	Timestamp   time.Time
}

// VersionInfo describes the running binary.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}
