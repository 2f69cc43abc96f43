package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/aria-assistant/cli/config"
	domain "github.com/aria-assistant/cli/internal/domain"
	logger "github.com/aria-assistant/cli/internal/logger"
)

func TestExecutor_OpenApp(t *testing.T) {
	t.Run("known alias launches mapped command", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())

		result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentOpenApp, "firefox"))

		require.Nil(t, cmdErr)
		assert.Equal(t, "Opening firefox...", result.Message)
		require.Len(t, fx.runner.launches, 1)
		assert.Equal(t, []string{"firefox"}, fx.runner.launches[0])
	})

	t.Run("multiword alias resolves to launch command", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())

		result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentOpenApp, "visual studio code"))

		require.Nil(t, cmdErr)
		assert.Equal(t, "Opening visual studio code...", result.Message)
		require.Len(t, fx.runner.launches, 1)
		assert.Equal(t, []string{"code"}, fx.runner.launches[0])
	})

	t.Run("unknown name falls back to path probe", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())
		fx.runner.pathProbe["htop"] = true

		result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentOpenApp, "htop"))

		require.Nil(t, cmdErr)
		assert.Equal(t, "Opening htop...", result.Message)
		require.Len(t, fx.runner.launches, 1)
		assert.Equal(t, []string{"htop"}, fx.runner.launches[0])
	})

	t.Run("total miss lists a bounded alias sample", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())

		_, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentOpenApp, "nonexistent"))

		require.NotNil(t, cmdErr)
		assert.Equal(t, domain.ErrTargetNotFound, cmdErr.Kind)
		assert.Contains(t, cmdErr.Message, "Application 'nonexistent' not found")
		assert.Contains(t, cmdErr.Message, "Available apps:")
		assert.Empty(t, fx.runner.launches)
	})

	t.Run("config aliases extend the builtin table", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Apps.Aliases = map[string]string{"editor": "nvim"}
		fx := newTestExecutor(t, cfg)

		result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentOpenApp, "editor"))

		require.Nil(t, cmdErr)
		assert.Equal(t, "Opening editor...", result.Message)
		assert.Equal(t, []string{"nvim"}, fx.runner.launches[0])
	})

	t.Run("launch failure reports external operation error", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())
		fx.runner.launchErr = errors.New("fork failed")

		_, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentOpenApp, "firefox"))

		require.NotNil(t, cmdErr)
		assert.Equal(t, domain.ErrExternalOperationFailed, cmdErr.Kind)
		assert.Contains(t, cmdErr.Message, "Failed to open firefox")
	})
}

func TestExecutor_CloseApp(t *testing.T) {
	t.Run("terminates first matching process", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())
		fx.procs.running["firefox"] = "firefox"

		result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentCloseApp, "firefox"))

		require.Nil(t, cmdErr)
		assert.Equal(t, "Closed firefox", result.Message)
	})

	t.Run("alias resolves to process name before matching", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())
		fx.procs.running["google-chrome"] = "google-chrome"

		result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentCloseApp, "chrome"))

		require.Nil(t, cmdErr)
		assert.Equal(t, "Closed chrome", result.Message)
		assert.Equal(t, "google-chrome", fx.procs.lastTarget)
	})

	t.Run("not running reports target not found", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())

		_, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentCloseApp, "firefox"))

		require.NotNil(t, cmdErr)
		assert.Equal(t, domain.ErrTargetNotFound, cmdErr.Kind)
		assert.Contains(t, cmdErr.Message, "is not running")
	})

	t.Run("enumeration failure reports external operation error", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())
		fx.procs.err = errors.New("permission denied")

		_, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentCloseApp, "firefox"))

		require.NotNil(t, cmdErr)
		assert.Equal(t, domain.ErrExternalOperationFailed, cmdErr.Kind)
	})
}

func TestExecutor_SystemControl_ConfirmationGate(t *testing.T) {
	for _, action := range []string{"shutdown", "restart", "reboot"} {
		t.Run(action+" blocked when confirmation required", func(t *testing.T) {
			cfg := config.DefaultConfig() // confirm_dangerous defaults to true
			fx := newTestExecutor(t, cfg)

			_, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentSystemControl, action))

			require.NotNil(t, cmdErr)
			assert.Equal(t, domain.ErrConfirmationRequired, cmdErr.Kind)
			assert.Contains(t, cmdErr.Message, "No action was taken")
			assert.Empty(t, fx.runner.runs, "gate must prevent the side effect entirely")
		})
	}

	t.Run("shutdown proceeds when gate disabled", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Commands.ConfirmDangerous = false
		fx := newTestExecutor(t, cfg)

		result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentSystemControl, "shutdown"))

		require.Nil(t, cmdErr)
		assert.Equal(t, "Shutting down system...", result.Message)
		require.Len(t, fx.runner.runs, 1)
		assert.Equal(t, []string{"shutdown", "now"}, fx.runner.runs[0])
	})

	t.Run("lock is not gated", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())

		result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentSystemControl, "lock"))

		require.Nil(t, cmdErr)
		assert.Equal(t, "Screen locked", result.Message)
		require.Len(t, fx.runner.runs, 1)
		assert.Equal(t, "gnome-screensaver-command", fx.runner.runs[0][0])
	})
}

func TestExecutor_Volume(t *testing.T) {
	tests := []struct {
		direction string
		arg       string
		message   string
	}{
		{"up", "5%+", "Volume increased"},
		{"down", "5%-", "Volume decreased"},
		{"mute", "mute", "Volume muted"},
		{"unmute", "unmute", "Volume unmuted"},
	}

	for _, tt := range tests {
		t.Run(tt.direction, func(t *testing.T) {
			fx := newTestExecutor(t, config.DefaultConfig())

			result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentVolume, tt.direction))

			require.Nil(t, cmdErr)
			assert.Equal(t, tt.message, result.Message)
			require.Len(t, fx.runner.runs, 1)
			assert.Equal(t, []string{"amixer", "sset", "Master", tt.arg}, fx.runner.runs[0])
		})
	}
}

func TestExecutor_Web(t *testing.T) {
	t.Run("web search encodes the query", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())

		result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentWebSearch, "cute cats"))

		require.Nil(t, cmdErr)
		assert.Equal(t, "Searching for: cute cats", result.Message)
		require.Len(t, fx.opener.opened, 1)
		assert.Equal(t, "https://www.google.com/search?q=cute+cats", fx.opener.opened[0])
	})

	t.Run("open website adds default scheme", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())

		result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentOpenWebsite, "example.com"))

		require.Nil(t, cmdErr)
		assert.Equal(t, "Opening website: https://example.com", result.Message)
		assert.Equal(t, []string{"https://example.com"}, fx.opener.opened)
	})

	t.Run("bare url is opened unchanged", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())

		result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentOpenURL, "http://example.com/page"))

		require.Nil(t, cmdErr)
		assert.Equal(t, "Opening website: http://example.com/page", result.Message)
		assert.Equal(t, []string{"http://example.com/page"}, fx.opener.opened)
	})

	t.Run("opener failure reports external operation error", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())
		fx.opener.openErr = errors.New("no desktop session")

		_, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentWebSearch, "anything"))

		require.NotNil(t, cmdErr)
		assert.Equal(t, domain.ErrExternalOperationFailed, cmdErr.Kind)
	})
}

func TestExecutor_InformationalQueries(t *testing.T) {
	t.Run("time uses a well-formed clock reading", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())

		result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentTime))

		require.Nil(t, cmdErr)
		assert.Equal(t, "Current time: 03:04:05 PM", result.Message)
	})

	t.Run("date spells out the weekday", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())

		result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentDate))

		require.Nil(t, cmdErr)
		assert.Equal(t, "Today's date: Tuesday, November 10, 2009", result.Message)
	})

	t.Run("cpu usage formats percent and cores", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())
		fx.sysinfo.cpuPercent = 12.34
		fx.sysinfo.cores = 8

		result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentCPUUsage))

		require.Nil(t, cmdErr)
		assert.Equal(t, "CPU Usage: 12.3% (8 cores)", result.Message)
	})

	t.Run("memory usage formats gigabytes", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())
		fx.sysinfo.memUsed = 3.5
		fx.sysinfo.memTotal = 15.6
		fx.sysinfo.memPercent = 22.4

		result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentMemoryUsage))

		require.Nil(t, cmdErr)
		assert.Equal(t, "Memory Usage: 3.5GB / 15.6GB (22.4%)", result.Message)
	})

	t.Run("disk usage formats gigabytes", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())
		fx.sysinfo.diskUsed = 120.2
		fx.sysinfo.diskTotal = 512.0
		fx.sysinfo.diskPct = 23.5

		result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentDiskUsage))

		require.Nil(t, cmdErr)
		assert.Equal(t, "Disk Usage: 120.2GB / 512.0GB (23.5%)", result.Message)
	})

	t.Run("collection failure reports external operation error", func(t *testing.T) {
		fx := newTestExecutor(t, config.DefaultConfig())
		fx.sysinfo.err = errors.New("proc unavailable")

		_, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentMemoryUsage))

		require.NotNil(t, cmdErr)
		assert.Equal(t, domain.ErrExternalOperationFailed, cmdErr.Kind)
	})
}

func TestExecutor_Stubs(t *testing.T) {
	fx := newTestExecutor(t, config.DefaultConfig())

	t.Run("weather", func(t *testing.T) {
		result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentWeather))
		require.Nil(t, cmdErr)
		assert.Contains(t, result.Message, "not yet implemented")
	})

	t.Run("help", func(t *testing.T) {
		result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentHelp, "help"))
		require.Nil(t, cmdErr)
		assert.Contains(t, result.Message, "Available Commands:")
		assert.Contains(t, result.Message, "open <app>")
	})

	t.Run("version", func(t *testing.T) {
		result, cmdErr := fx.executor.Execute(context.Background(), parsed(domain.IntentVersion))
		require.Nil(t, cmdErr)
		assert.Contains(t, result.Message, "0.1.0")
	})
}

func TestExecutor_PanicRecovery(t *testing.T) {
	fx := newTestExecutor(t, config.DefaultConfig())
	fx.sysinfo.panicWith = "boom"

	ctx, logs := logger.TestContext()
	result, cmdErr := fx.executor.Execute(ctx, parsed(domain.IntentSystemInfo))

	require.NotNil(t, cmdErr)
	assert.Equal(t, domain.ErrInternalFault, cmdErr.Kind)
	assert.Contains(t, cmdErr.Message, "boom")
	assert.Empty(t, result.Message)

	require.Equal(t, 1, logs.FilterMessage("handler panicked").Len())
}
