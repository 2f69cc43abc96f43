package services

import (
	"context"
	"errors"
	"testing"
	"time"

	config "github.com/aria-assistant/cli/config"
	domain "github.com/aria-assistant/cli/internal/domain"
)

// fakeRunner records subprocess invocations instead of performing them.
type fakeRunner struct {
	launches  [][]string
	runs      [][]string
	pathProbe map[string]bool
	launchErr error
	runErr    error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{pathProbe: make(map[string]bool)}
}

func (r *fakeRunner) Launch(name string, args ...string) error {
	r.launches = append(r.launches, append([]string{name}, args...))
	return r.launchErr
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	r.runs = append(r.runs, append([]string{name}, args...))
	return r.runErr
}

func (r *fakeRunner) LookPath(name string) (string, error) {
	if r.pathProbe[name] {
		return "/usr/bin/" + name, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

// fakeOpener records opened URLs and file paths.
type fakeOpener struct {
	opened  []string
	openErr error
}

func (o *fakeOpener) Open(ctx context.Context, url string) error {
	o.opened = append(o.opened, url)
	return o.openErr
}

// fakeProcs simulates process termination.
type fakeProcs struct {
	running    map[string]string // substring -> full process name
	lastTarget string
	err        error
}

func (p *fakeProcs) TerminateByName(ctx context.Context, target string) (string, bool, error) {
	p.lastTarget = target
	if p.err != nil {
		return "", false, p.err
	}
	if name, ok := p.running[target]; ok {
		return name, true, nil
	}
	return "", false, nil
}

// fakeSysinfo returns canned statistics.
type fakeSysinfo struct {
	cpuPercent float64
	cores      int
	memUsed    float64
	memTotal   float64
	memPercent float64
	diskUsed   float64
	diskTotal  float64
	diskPct    float64
	info       string
	err        error
	panicWith  any
}

func (s *fakeSysinfo) CPUUsage(ctx context.Context) (float64, int, error) {
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	return s.cpuPercent, s.cores, s.err
}

func (s *fakeSysinfo) MemoryUsage(ctx context.Context) (float64, float64, float64, error) {
	return s.memUsed, s.memTotal, s.memPercent, s.err
}

func (s *fakeSysinfo) DiskUsage(ctx context.Context) (float64, float64, float64, error) {
	return s.diskUsed, s.diskTotal, s.diskPct, s.err
}

func (s *fakeSysinfo) SystemInfo(ctx context.Context) (string, error) {
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	return s.info, s.err
}

// testClock is 03:04:05 PM on a Tuesday.
var testClock = func() time.Time {
	return time.Date(2009, time.November, 10, 15, 4, 5, 0, time.UTC)
}

type executorFixture struct {
	executor *TaskExecutor
	runner   *fakeRunner
	opener   *fakeOpener
	procs    *fakeProcs
	sysinfo  *fakeSysinfo
	home     string
}

func newTestExecutor(t *testing.T, cfg *config.Config) *executorFixture {
	t.Helper()

	runner := newFakeRunner()
	opener := &fakeOpener{}
	procs := &fakeProcs{running: make(map[string]string)}
	sysinfo := &fakeSysinfo{}
	home := t.TempDir()

	executor := &TaskExecutor{
		cfg:     cfg,
		apps:    NewAliasTable(cfg.Apps.Aliases),
		runner:  runner,
		opener:  opener,
		procs:   procs,
		sysinfo: sysinfo,
		clock:   testClock,
		home:    home,
		version: domain.VersionInfo{Version: "0.1.0", Commit: "abc1234", Date: "2024-01-01"},
	}

	return &executorFixture{
		executor: executor,
		runner:   runner,
		opener:   opener,
		procs:    procs,
		sysinfo:  sysinfo,
		home:     home,
	}
}

func parsed(intent domain.Intent, params ...string) domain.ParsedCommand {
	return domain.ParsedCommand{Intent: intent, Params: params}
}
