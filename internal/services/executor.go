package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	config "github.com/aria-assistant/cli/config"
	domain "github.com/aria-assistant/cli/internal/domain"
	logger "github.com/aria-assistant/cli/internal/logger"
)

// TaskExecutor maps each recognized intent to its handler and performs the
// side effect. Handlers share only the read-only alias table and
// configuration snapshot, so an executor is safe for concurrent use.
type TaskExecutor struct {
	cfg     *config.Config
	apps    *AliasTable
	runner  CommandRunner
	opener  URLOpener
	procs   ProcessManager
	sysinfo SystemInfoProvider
	clock   Clock
	home    string
	version domain.VersionInfo
}

// NewTaskExecutor creates an executor wired to the real system: os/exec
// launching, the platform URL opener, and gopsutil-backed process and system
// queries.
func NewTaskExecutor(cfg *config.Config, version domain.VersionInfo) *TaskExecutor {
	runner := NewExecRunner()
	return &TaskExecutor{
		cfg:     cfg,
		apps:    NewAliasTable(cfg.Apps.Aliases),
		runner:  runner,
		opener:  NewDesktopOpener(runner),
		procs:   NewPsutilProcessManager(),
		sysinfo: NewPsutilSystemInfo(),
		clock:   nil,
		home:    userHome(),
		version: version,
	}
}

// Execute runs the handler for a parsed command and returns exactly one of a
// result or an error. Any panic inside a handler is caught here and
// converted to an internal-fault error; handlers never crash the dispatcher.
func (e *TaskExecutor) Execute(ctx context.Context, parsed domain.ParsedCommand) (result domain.ExecutionResult, cmdErr *domain.CommandError) {
	defer func() {
		if r := recover(); r != nil {
			logger.L(ctx).Error("handler panicked",
				zap.String("intent", string(parsed.Intent)), zap.Any("panic", r))
			result = domain.ExecutionResult{}
			cmdErr = domain.NewCommandError(domain.ErrInternalFault, "internal error executing command: %v", r)
		}
	}()

	logger.L(ctx).Debug("executing command",
		zap.String("intent", string(parsed.Intent)), zap.Strings("params", parsed.Params))

	switch parsed.Intent {
	case domain.IntentOpenApp:
		return e.handleOpenApp(ctx, parsed.Param(0))
	case domain.IntentCloseApp:
		return e.handleCloseApp(ctx, parsed.Param(0))
	case domain.IntentSystemControl:
		return e.handleSystemControl(ctx, parsed.Param(0))
	case domain.IntentVolume:
		return e.handleVolume(ctx, parsed.Param(0))
	case domain.IntentOpenFile:
		return e.handleOpenFile(ctx, parsed.Param(0))
	case domain.IntentCreateFile:
		return e.handleCreateFile(parsed.Param(0))
	case domain.IntentDeleteFile:
		return e.handleDeleteFile(parsed.Param(0))
	case domain.IntentSearchFiles:
		return e.handleSearchFiles(parsed.Param(0))
	case domain.IntentWebSearch:
		return e.handleWebSearch(ctx, parsed.Param(0))
	case domain.IntentOpenWebsite:
		return e.handleOpenWebsite(ctx, parsed.Param(0))
	case domain.IntentOpenURL:
		return e.handleOpenWebsite(ctx, parsed.Param(0))
	case domain.IntentTime:
		return e.handleTime()
	case domain.IntentDate:
		return e.handleDate()
	case domain.IntentCPUUsage:
		return e.handleCPUUsage(ctx)
	case domain.IntentMemoryUsage:
		return e.handleMemoryUsage(ctx)
	case domain.IntentDiskUsage:
		return e.handleDiskUsage(ctx)
	case domain.IntentSystemInfo:
		return e.handleSystemInfo(ctx)
	case domain.IntentWeather:
		return e.handleWeather()
	case domain.IntentHelp:
		return e.handleHelp()
	case domain.IntentVersion:
		return e.handleVersion()
	default:
		return fail(domain.ErrInternalFault, "no handler for intent %q", parsed.Intent)
	}
}

func succeed(format string, args ...any) (domain.ExecutionResult, *domain.CommandError) {
	return domain.ExecutionResult{Message: fmt.Sprintf(format, args...)}, nil
}

func fail(kind domain.ErrorKind, format string, args ...any) (domain.ExecutionResult, *domain.CommandError) {
	return domain.ExecutionResult{}, domain.NewCommandError(kind, format, args...)
}

func (e *TaskExecutor) handleOpenApp(ctx context.Context, appName string) (domain.ExecutionResult, *domain.CommandError) {
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return fail(domain.ErrTargetNotFound, "Please specify an application name")
	}

	if command, ok := e.apps.Resolve(appName); ok {
		if err := e.runner.Launch(command); err != nil {
			return fail(domain.ErrExternalOperationFailed, "Failed to open %s: %v", appName, err)
		}
		return succeed("Opening %s...", appName)
	}

	// Not a known alias; probe the path for an executable of the literal
	// name before giving up.
	if _, err := e.runner.LookPath(appName); err == nil {
		if err := e.runner.Launch(appName); err != nil {
			return fail(domain.ErrExternalOperationFailed, "Failed to open %s: %v", appName, err)
		}
		return succeed("Opening %s...", appName)
	}

	return fail(domain.ErrTargetNotFound, "Application '%s' not found. Available apps: %s",
		appName, strings.Join(e.apps.Sample(aliasSampleSize), ", "))
}

func (e *TaskExecutor) handleCloseApp(ctx context.Context, appName string) (domain.ExecutionResult, *domain.CommandError) {
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return fail(domain.ErrTargetNotFound, "Please specify an application name")
	}

	target := appName
	if command, ok := e.apps.Resolve(appName); ok {
		target = command
	}

	_, found, err := e.procs.TerminateByName(ctx, target)
	if err != nil {
		return fail(domain.ErrExternalOperationFailed, "Failed to close %s: %v", appName, err)
	}
	if !found {
		return fail(domain.ErrTargetNotFound, "Application '%s' is not running", appName)
	}

	return succeed("Closed %s", appName)
}

func (e *TaskExecutor) handleSystemControl(ctx context.Context, action string) (domain.ExecutionResult, *domain.CommandError) {
	switch action {
	case "shutdown":
		if e.cfg.Commands.ConfirmDangerous {
			return fail(domain.ErrConfirmationRequired,
				"Shutdown requires confirmation (commands.confirm_dangerous is enabled). No action was taken.")
		}
		if err := e.runner.Run(ctx, "shutdown", "now"); err != nil {
			return fail(domain.ErrExternalOperationFailed, "Failed to execute shutdown: %v", err)
		}
		return succeed("Shutting down system...")

	case "restart", "reboot":
		if e.cfg.Commands.ConfirmDangerous {
			return fail(domain.ErrConfirmationRequired,
				"Restart requires confirmation (commands.confirm_dangerous is enabled). No action was taken.")
		}
		if err := e.runner.Run(ctx, "reboot"); err != nil {
			return fail(domain.ErrExternalOperationFailed, "Failed to execute restart: %v", err)
		}
		return succeed("Restarting system...")

	case "lock":
		if err := e.runner.Run(ctx, "gnome-screensaver-command", "-l"); err != nil {
			return fail(domain.ErrExternalOperationFailed, "Failed to lock screen: %v", err)
		}
		return succeed("Screen locked")

	case "logout":
		if err := e.runner.Run(ctx, "gnome-session-quit", "--logout"); err != nil {
			return fail(domain.ErrExternalOperationFailed, "Failed to log out: %v", err)
		}
		return succeed("Logging out...")

	default:
		return fail(domain.ErrInternalFault, "unknown system control action: %s", action)
	}
}

func (e *TaskExecutor) handleVolume(ctx context.Context, direction string) (domain.ExecutionResult, *domain.CommandError) {
	var arg, message string
	switch direction {
	case "up":
		arg, message = "5%+", "Volume increased"
	case "down":
		arg, message = "5%-", "Volume decreased"
	case "mute":
		arg, message = "mute", "Volume muted"
	case "unmute":
		arg, message = "unmute", "Volume unmuted"
	default:
		return fail(domain.ErrInternalFault, "unknown volume direction: %s", direction)
	}

	if err := e.runner.Run(ctx, "amixer", "sset", "Master", arg); err != nil {
		return fail(domain.ErrExternalOperationFailed, "Failed to control volume: %v", err)
	}
	return succeed("%s", message)
}

func (e *TaskExecutor) handleOpenFile(ctx context.Context, rawPath string) (domain.ExecutionResult, *domain.CommandError) {
	path := CleanPath(rawPath, e.home)
	if path == "" {
		return fail(domain.ErrTargetNotFound, "Please specify a file path")
	}

	if _, err := os.Stat(path); err != nil {
		return fail(domain.ErrTargetNotFound, "File not found: %s", path)
	}

	if err := e.opener.Open(ctx, path); err != nil {
		return fail(domain.ErrExternalOperationFailed, "Failed to open file: %v", err)
	}
	return succeed("Opening %s", path)
}

func (e *TaskExecutor) handleCreateFile(rawName string) (domain.ExecutionResult, *domain.CommandError) {
	name := CleanPath(rawName, e.home)
	if name == "" {
		return fail(domain.ErrTargetNotFound, "Please specify a filename")
	}

	// A bare filename lands in the home directory.
	path := name
	if filepath.Dir(name) == "." {
		path = filepath.Join(e.home, name)
	}

	if _, err := os.Stat(path); err == nil {
		return fail(domain.ErrExternalOperationFailed, "File already exists: %s", path)
	}

	if err := os.WriteFile(path, nil, 0644); err != nil {
		return fail(domain.ErrExternalOperationFailed, "Failed to create file: %v", err)
	}
	return succeed("Created file: %s", path)
}

func (e *TaskExecutor) handleDeleteFile(rawPath string) (domain.ExecutionResult, *domain.CommandError) {
	path := CleanPath(rawPath, e.home)
	if path == "" {
		return fail(domain.ErrTargetNotFound, "Please specify a file path")
	}

	if _, err := os.Stat(path); err != nil {
		return fail(domain.ErrTargetNotFound, "File not found: %s", path)
	}

	if e.cfg.Commands.ConfirmDangerous {
		return fail(domain.ErrConfirmationRequired,
			"File deletion requires confirmation (commands.confirm_dangerous is enabled). No action was taken.")
	}

	if err := os.Remove(path); err != nil {
		return fail(domain.ErrExternalOperationFailed, "Failed to delete file: %v", err)
	}
	return succeed("Deleted file: %s", path)
}

func (e *TaskExecutor) handleSearchFiles(rawPattern string) (domain.ExecutionResult, *domain.CommandError) {
	pattern := CleanPath(rawPattern, e.home)
	if pattern == "" {
		return fail(domain.ErrTargetNotFound, "Please specify a search pattern")
	}

	matches, err := SearchFiles(e.home, pattern)
	if err != nil {
		return fail(domain.ErrExternalOperationFailed, "Failed to search files: %v", err)
	}

	if len(matches) == 0 {
		return succeed("No files found matching: %s", pattern)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d files:\n", len(matches))
	for _, match := range matches {
		fmt.Fprintf(&sb, "  %s\n", match)
	}
	return succeed("%s", sb.String())
}

func (e *TaskExecutor) handleWebSearch(ctx context.Context, query string) (domain.ExecutionResult, *domain.CommandError) {
	query = strings.TrimSpace(query)
	if query == "" {
		return fail(domain.ErrTargetNotFound, "Please specify a search query")
	}

	if err := e.opener.Open(ctx, BuildSearchURL(query)); err != nil {
		return fail(domain.ErrExternalOperationFailed, "Failed to perform web search: %v", err)
	}
	return succeed("Searching for: %s", query)
}

func (e *TaskExecutor) handleOpenWebsite(ctx context.Context, raw string) (domain.ExecutionResult, *domain.CommandError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fail(domain.ErrTargetNotFound, "Please specify a website URL")
	}

	target := NormalizeURL(raw)
	if err := e.opener.Open(ctx, target); err != nil {
		return fail(domain.ErrExternalOperationFailed, "Failed to open website: %v", err)
	}
	return succeed("Opening website: %s", target)
}

func (e *TaskExecutor) handleTime() (domain.ExecutionResult, *domain.CommandError) {
	return succeed("Current time: %s", e.now().Format("03:04:05 PM"))
}

func (e *TaskExecutor) handleDate() (domain.ExecutionResult, *domain.CommandError) {
	return succeed("Today's date: %s", e.now().Format("Monday, January 02, 2006"))
}

func (e *TaskExecutor) handleCPUUsage(ctx context.Context) (domain.ExecutionResult, *domain.CommandError) {
	percent, cores, err := e.sysinfo.CPUUsage(ctx)
	if err != nil {
		return fail(domain.ErrExternalOperationFailed, "Error getting CPU usage: %v", err)
	}
	return succeed("CPU Usage: %.1f%% (%d cores)", percent, cores)
}

func (e *TaskExecutor) handleMemoryUsage(ctx context.Context) (domain.ExecutionResult, *domain.CommandError) {
	usedGB, totalGB, percent, err := e.sysinfo.MemoryUsage(ctx)
	if err != nil {
		return fail(domain.ErrExternalOperationFailed, "Error getting memory usage: %v", err)
	}
	return succeed("Memory Usage: %.1fGB / %.1fGB (%.1f%%)", usedGB, totalGB, percent)
}

func (e *TaskExecutor) handleDiskUsage(ctx context.Context) (domain.ExecutionResult, *domain.CommandError) {
	usedGB, totalGB, percent, err := e.sysinfo.DiskUsage(ctx)
	if err != nil {
		return fail(domain.ErrExternalOperationFailed, "Error getting disk usage: %v", err)
	}
	return succeed("Disk Usage: %.1fGB / %.1fGB (%.1f%%)", usedGB, totalGB, percent)
}

func (e *TaskExecutor) handleSystemInfo(ctx context.Context) (domain.ExecutionResult, *domain.CommandError) {
	info, err := e.sysinfo.SystemInfo(ctx)
	if err != nil {
		return fail(domain.ErrExternalOperationFailed, "Error getting system info: %v", err)
	}
	return succeed("%s", info)
}

func (e *TaskExecutor) handleWeather() (domain.ExecutionResult, *domain.CommandError) {
	return succeed("Weather feature not yet implemented. Requires API integration.")
}

func (e *TaskExecutor) handleHelp() (domain.ExecutionResult, *domain.CommandError) {
	return succeed("%s", helpText)
}

func (e *TaskExecutor) handleVersion() (domain.ExecutionResult, *domain.CommandError) {
	return succeed("Aria Assistant v%s (%s, built %s)", e.version.Version, e.version.Commit, e.version.Date)
}

func (e *TaskExecutor) now() time.Time {
	if e.clock != nil {
		return e.clock()
	}
	return time.Now()
}

const helpText = `Available Commands:
  open <app>           - Launch application (firefox, terminal, etc.)
  close <app>          - Close running application
  shutdown             - Shutdown system
  restart              - Restart system
  lock                 - Lock screen
  volume up/down/mute  - Control volume
  open file <path>     - Open file with default app
  create file <name>   - Create new file
  delete file <path>   - Delete file
  search <pattern>     - Search files by name
  open website <url>   - Open website
  time                 - Show current time
  date                 - Show current date
  cpu usage            - Show CPU usage
  memory usage         - Show memory usage
  disk usage           - Show disk usage
  system info          - Show system information
  weather              - Show weather (not implemented)
  help                 - Show this help
  version              - Show application version`
