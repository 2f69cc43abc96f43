package services

import (
	"context"
	"time"
)

// CommandRunner abstracts subprocess execution so handlers can be exercised
// in tests without touching the system.
type CommandRunner interface {
	// Launch starts a program detached from the assistant's lifetime, with
	// stdout/stderr discarded. Used for application launches.
	Launch(name string, args ...string) error

	// Run executes a program and waits for it to finish. Used for short
	// system utilities (amixer, screen lock).
	Run(ctx context.Context, name string, args ...string) error

	// LookPath probes whether an executable of the literal name exists on
	// the system path.
	LookPath(name string) (string, error)
}

// URLOpener hands a URL to the desktop's default handler. The executor only
// builds well-formed URLs; rendering belongs to the desktop.
type URLOpener interface {
	Open(ctx context.Context, url string) error
}

// ProcessManager enumerates and terminates running processes.
type ProcessManager interface {
	// TerminateByName terminates the first running process whose name
	// contains target as a substring, returning the matched name. The choice
	// among ties is whatever enumeration order the platform yields; this is
	// best-effort by contract. found is false when nothing matched.
	TerminateByName(ctx context.Context, target string) (name string, found bool, err error)
}

// SystemInfoProvider collects the read-only system statistics behind the
// informational intents.
type SystemInfoProvider interface {
	CPUUsage(ctx context.Context) (percent float64, cores int, err error)
	MemoryUsage(ctx context.Context) (usedGB, totalGB, percent float64, err error)
	DiskUsage(ctx context.Context) (usedGB, totalGB, percent float64, err error)
	SystemInfo(ctx context.Context) (string, error)
}

// Clock supplies the current time; injectable for the time/date handlers.
type Clock func() time.Time
