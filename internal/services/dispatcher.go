package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	config "github.com/aria-assistant/cli/config"
	commands "github.com/aria-assistant/cli/internal/commands"
	domain "github.com/aria-assistant/cli/internal/domain"
	logger "github.com/aria-assistant/cli/internal/logger"
)

// UnitStatus represents the lifecycle state of one in-flight command.
type UnitStatus string

const (
	UnitStatusSubmitted UnitStatus = "submitted"
	UnitStatusRunning   UnitStatus = "running"
	UnitStatusCompleted UnitStatus = "completed"
	UnitStatusFailed    UnitStatus = "failed"
)

// DefaultShutdownGrace is how long Shutdown waits for in-flight units to
// finish cooperatively before force-releasing them.
const DefaultShutdownGrace = time.Second

// eventBuffer sizes the outbound event channels so handler goroutines do not
// block on a momentarily slow consumer. Sends never block: once the buffer
// is full, further events are dropped with a warning rather than stalling
// Submit or a handler goroutine.
const eventBuffer = 100

// CommandUnit represents one in-flight command execution. It is owned by the
// dispatcher from creation until its terminal event is emitted.
type CommandUnit struct {
	ID             string
	Text           string
	Intent         domain.Intent
	Status         UnitStatus
	StartTime      time.Time
	CompletionTime *time.Time
	Result         string
	Error          string

	cancelCtx  context.Context
	cancelFunc context.CancelFunc
	done       chan struct{}
}

// Executor runs one recognized command and reports exactly one outcome.
type Executor interface {
	Execute(ctx context.Context, parsed domain.ParsedCommand) (domain.ExecutionResult, *domain.CommandError)
}

// Dispatcher classifies submitted text and runs each recognized command on
// its own goroutine, tracking in-flight units for shutdown. Outcomes are
// delivered on two buffered event channels, at most once per submission:
// exactly once for a draining consumer, dropped once the buffer fills.
// There is no bound on concurrent units and no ordering guarantee between
// them; callers needing order must serialize their own submissions.
type Dispatcher struct {
	cfg      *config.Config
	registry *commands.Registry
	executor Executor

	mutex  sync.Mutex
	units  map[string]*CommandUnit
	closed bool

	completed chan domain.CommandCompletedEvent
	failed    chan domain.CommandFailedEvent

	gracePeriod time.Duration

	// executionTimeout mirrors commands.execution_timeout. It is an advisory
	// hint for handler-level enforcement; the dispatcher itself applies no
	// per-command timeout.
	executionTimeout time.Duration
}

// NewDispatcher creates a dispatcher over the given pattern registry and
// executor.
func NewDispatcher(cfg *config.Config, registry *commands.Registry, executor Executor) *Dispatcher {
	return &Dispatcher{
		cfg:              cfg,
		registry:         registry,
		executor:         executor,
		units:            make(map[string]*CommandUnit),
		completed:        make(chan domain.CommandCompletedEvent, eventBuffer),
		failed:           make(chan domain.CommandFailedEvent, eventBuffer),
		gracePeriod:      DefaultShutdownGrace,
		executionTimeout: time.Duration(cfg.Commands.ExecutionTimeout) * time.Second,
	}
}

// Completions is the outbound channel for successful command results.
func (d *Dispatcher) Completions() <-chan domain.CommandCompletedEvent {
	return d.completed
}

// Failures is the outbound channel for failed command results.
func (d *Dispatcher) Failures() <-chan domain.CommandFailedEvent {
	return d.failed
}

// ActiveUnits returns the number of in-flight units.
func (d *Dispatcher) ActiveUnits() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return len(d.units)
}

// Submit classifies text and, for a recognized intent, spawns a goroutine
// running the executor. It never blocks the caller. Empty and unrecognized
// input produce an immediate failure event without spawning a unit; for
// those the returned unit is nil.
func (d *Dispatcher) Submit(ctx context.Context, text string) *CommandUnit {
	parsed := d.registry.Classify(text)

	switch parsed.Intent {
	case domain.IntentEmpty:
		d.emitFailed(domain.CommandFailedEvent{
			UnitID:    uuid.NewString(),
			Intent:    domain.IntentEmpty,
			Message:   "Empty command",
			Timestamp: time.Now(),
		})
		return nil

	case domain.IntentUnknown:
		normalized := commands.Normalize(text)
		suggestions := commands.Suggest(normalized)
		message := "Unknown command '" + normalized + "'. Type 'help' for available commands."
		if len(suggestions) > 0 {
			message = "Unknown command '" + normalized + "'. Did you mean:\n" + strings.Join(suggestions, "\n")
		}
		d.emitFailed(domain.CommandFailedEvent{
			UnitID:      uuid.NewString(),
			Intent:      domain.IntentUnknown,
			Message:     message,
			Suggestions: suggestions,
			Timestamp:   time.Now(),
		})
		return nil
	}

	// The unit's context outlives the caller's: submission is fire-and-
	// forget, and only Shutdown cancels in-flight units.
	unitCtx, cancelFunc := context.WithCancel(context.WithoutCancel(ctx))
	unit := &CommandUnit{
		ID:         uuid.NewString(),
		Text:       commands.Normalize(text),
		Intent:     parsed.Intent,
		Status:     UnitStatusSubmitted,
		StartTime:  time.Now(),
		cancelCtx:  unitCtx,
		cancelFunc: cancelFunc,
		done:       make(chan struct{}),
	}

	d.mutex.Lock()
	if d.closed {
		d.mutex.Unlock()
		cancelFunc()
		return nil
	}
	d.units[unit.ID] = unit
	d.mutex.Unlock()

	logger.L(ctx).Debug("command unit spawned",
		zap.String("unit_id", unit.ID), zap.String("intent", string(parsed.Intent)))

	go d.run(unit, parsed)
	return unit
}

// run executes one unit and emits its terminal event.
func (d *Dispatcher) run(unit *CommandUnit, parsed domain.ParsedCommand) {
	defer close(unit.done)
	defer unit.cancelFunc()

	d.mutex.Lock()
	unit.Status = UnitStatusRunning
	d.mutex.Unlock()

	result, cmdErr := d.executor.Execute(unit.cancelCtx, parsed)
	if cmdErr != nil {
		d.finish(unit, UnitStatusFailed, "", cmdErr)
		return
	}
	d.finish(unit, UnitStatusCompleted, result.Message, nil)
}

// finish records the terminal state, releases the unit from the live set,
// and emits its event. After Shutdown the event is dropped so no signals are
// delivered for pre-shutdown submissions.
func (d *Dispatcher) finish(unit *CommandUnit, status UnitStatus, message string, cmdErr *domain.CommandError) {
	now := time.Now()

	d.mutex.Lock()
	unit.Status = status
	unit.CompletionTime = &now
	if cmdErr != nil {
		unit.Error = cmdErr.Message
	} else {
		unit.Result = message
	}
	delete(d.units, unit.ID)
	deliver := !d.closed
	d.mutex.Unlock()

	if !deliver {
		return
	}

	if cmdErr != nil {
		d.emitFailed(domain.CommandFailedEvent{
			UnitID:      unit.ID,
			Intent:      unit.Intent,
			Message:     cmdErr.Message,
			Suggestions: cmdErr.Suggestions,
			Timestamp:   now,
		})
		return
	}

	event := domain.CommandCompletedEvent{
		UnitID:    unit.ID,
		Intent:    unit.Intent,
		Message:   message,
		Timestamp: now,
	}
	select {
	case d.completed <- event:
	default:
		logger.L(context.Background()).Warn("completion event dropped, channel full",
			zap.String("unit_id", event.UnitID), zap.String("intent", string(event.Intent)))
	}
}

func (d *Dispatcher) emitFailed(event domain.CommandFailedEvent) {
	d.mutex.Lock()
	closed := d.closed
	d.mutex.Unlock()
	if closed {
		return
	}
	select {
	case d.failed <- event:
	default:
		logger.L(context.Background()).Warn("failure event dropped, channel full",
			zap.String("unit_id", event.UnitID), zap.String("intent", string(event.Intent)))
	}
}

// Shutdown cancels every in-flight unit, waits up to the grace period for
// cooperative termination, then force-releases stragglers. Afterwards the
// live set is empty and no further events are delivered.
func (d *Dispatcher) Shutdown(ctx context.Context) {
	d.mutex.Lock()
	outstanding := make([]*CommandUnit, 0, len(d.units))
	for _, unit := range d.units {
		outstanding = append(outstanding, unit)
	}
	d.mutex.Unlock()

	for _, unit := range outstanding {
		unit.cancelFunc()
	}

	// The deadline is absolute and shared across units: time.Until goes
	// negative once the grace period elapses, so later waits fire
	// immediately instead of re-arming the full period per straggler.
	deadline := time.Now().Add(d.gracePeriod)
	for _, unit := range outstanding {
		select {
		case <-unit.done:
		case <-time.After(time.Until(deadline)):
			logger.L(ctx).Warn("command unit did not stop within grace period",
				zap.String("unit_id", unit.ID), zap.String("intent", string(unit.Intent)))
		case <-ctx.Done():
		}
	}

	d.mutex.Lock()
	d.closed = true
	for id := range d.units {
		delete(d.units, id)
	}
	d.mutex.Unlock()

	logger.L(ctx).Debug("dispatcher shut down", zap.Int("outstanding", len(outstanding)))
}
