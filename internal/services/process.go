package services

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"

	logger "github.com/aria-assistant/cli/internal/logger"
)

// PsutilProcessManager terminates processes via gopsutil enumeration.
type PsutilProcessManager struct{}

// NewPsutilProcessManager creates a process manager backed by gopsutil.
func NewPsutilProcessManager() *PsutilProcessManager {
	return &PsutilProcessManager{}
}

// TerminateByName walks the process table and terminates the first process
// whose name contains target (case-insensitive). Processes that disappear or
// deny access mid-walk are skipped. When several processes match, which one
// is terminated depends on enumeration order; that ambiguity is part of the
// contract, not something to paper over.
func (m *PsutilProcessManager) TerminateByName(ctx context.Context, target string) (string, bool, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return "", false, err
	}

	needle := strings.ToLower(target)
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if !strings.Contains(strings.ToLower(name), needle) {
			continue
		}
		if err := p.TerminateWithContext(ctx); err != nil {
			logger.L(ctx).Debug("terminate failed, skipping process",
				zap.Int32("pid", p.Pid), zap.String("name", name), zap.Error(err))
			continue
		}
		return name, true, nil
	}

	return "", false, nil
}
