package engine

import (
	"context"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/kballard/go-shellquote"

	"github.com/Paintersrp/devrun/internal/metrics"
	"github.com/Paintersrp/devrun/internal/runtime"
)

// DefaultGracePeriod is how long the supervisor waits after a shutdown
// trigger before exiting, giving children a moment to terminate.
const DefaultGracePeriod = 100 * time.Millisecond

// Option customises a Supervisor.
type Option func(*Supervisor)

// WithClock replaces the clock used for the grace period timers.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Supervisor) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithGracePeriod sets the delay between a shutdown trigger and exit.
func WithGracePeriod(d time.Duration) Option {
	return func(s *Supervisor) {
		if d >= 0 {
			s.grace = d
		}
	}
}

// WithReporter sets the destination for diagnostic lines.
func WithReporter(r Reporter) Option {
	return func(s *Supervisor) {
		if r != nil {
			s.report = r
		}
	}
}

// WithLaunchEnv resolves task commands against env instead of the current
// process environment.
func WithLaunchEnv(env LaunchEnv) Option {
	return func(s *Supervisor) {
		s.resolve = func(task string) runtime.StartSpec {
			return ResolveCommand(task, env)
		}
	}
}

// child is the supervisor's record of one spawned task.
type child struct {
	index      int
	task       string
	spec       runtime.StartSpec
	inst       runtime.Instance
	exited     bool
	terminated bool
}

type pendingExit struct {
	code  int
	timer clockwork.Timer
}

// Supervisor runs a fixed list of tasks as child processes and tears them all
// down as soon as any one of them exits, fails to start, or the supervisor is
// asked to stop.
//
// All state is owned by the goroutine executing Run. Child waiters only post
// events; Handle applies them one at a time.
type Supervisor struct {
	tasks   []string
	runtime runtime.Runtime
	resolve func(task string) runtime.StartSpec
	clock   clockwork.Clock
	grace   time.Duration
	report  Reporter

	events chan Event
	done   chan struct{}

	children     []*child
	shuttingDown bool
	exits        []pendingExit
}

// New constructs a supervisor for tasks, launched through rt in list order.
func New(rt runtime.Runtime, tasks []string, opts ...Option) *Supervisor {
	s := &Supervisor{
		tasks:   append([]string(nil), tasks...),
		runtime: rt,
		clock:   clockwork.NewRealClock(),
		grace:   DefaultGracePeriod,
		report:  NewWriterReporter(os.Stderr, false),
		events:  make(chan Event, len(tasks)),
		done:    make(chan struct{}),
	}
	WithLaunchEnv(LaunchEnvFromOS(DefaultPackageManager))(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run starts every task and supervises them until the first scheduled exit
// fires, returning the consolidated exit code. Each value received on
// signals, and cancellation of ctx, requests a clean shutdown. Run must only
// be called once.
func (s *Supervisor) Run(ctx context.Context, signals <-chan os.Signal) int {
	defer close(s.done)
	defer s.stopTimers()

	s.startAll(ctx)

	ctxDone := ctx.Done()
	for {
		var exitC <-chan time.Time
		if len(s.exits) > 0 {
			exitC = s.exits[0].timer.Chan()
		}

		select {
		case evt := <-s.events:
			s.Handle(evt)
		case sig, ok := <-signals:
			if !ok {
				signals = nil
				continue
			}
			s.Handle(signalReceived(sig))
		case <-ctxDone:
			ctxDone = nil
			s.Handle(signalReceived(nil))
		case <-exitC:
			code := s.exits[0].code
			s.report.Debugf("exiting with code %d", code)
			return code
		}
	}
}

// Handle applies a single event to the supervisor state.
func (s *Supervisor) Handle(evt Event) {
	switch evt.Type {
	case EventTypeChildExited:
		s.markExited(evt.Index)
		code := evt.Status.ExitCode()
		metrics.ObserveTaskExit(evt.Task, code)
		if s.shuttingDown {
			s.report.Debugf("%s stopped (%s)", evt.Task, evt.Status)
			return
		}
		s.report.Debugf("%s exited (%s)", evt.Task, evt.Status)
		s.shutdown(code, ReasonChildExit)
	case EventTypeChildFailed:
		s.report.Errorf("Failed to run %s: %v", evt.Task, evt.Err)
		s.markExited(evt.Index)
		metrics.IncrementSpawnFailure(evt.Task)
		if !s.shuttingDown {
			s.shutdown(1, ReasonSpawnFailed)
		}
	case EventTypeSignalReceived:
		if evt.Signal != nil {
			s.report.Debugf("received %v, shutting down", evt.Signal)
		}
		s.shutdown(0, ReasonSignal)
	}
}

// ShuttingDown reports whether the shutdown sequence has begun.
func (s *Supervisor) ShuttingDown() bool {
	return s.shuttingDown
}

// PendingExit returns the exit code of the earliest scheduled exit.
func (s *Supervisor) PendingExit() (int, bool) {
	if len(s.exits) == 0 {
		return 0, false
	}
	return s.exits[0].code, true
}

func (s *Supervisor) startAll(ctx context.Context) {
	for i, task := range s.tasks {
		if s.shuttingDown {
			return
		}
		s.start(ctx, i, task)
	}
}

func (s *Supervisor) start(ctx context.Context, index int, task string) {
	spec := s.resolve(task)
	c := &child{index: index, task: task, spec: spec}
	s.children = append(s.children, c)

	inst, err := s.runtime.Start(ctx, spec)
	if err != nil {
		// Reported through the loop like any other child event so every
		// task is launched before the failure triggers shutdown.
		s.post(childFailed(index, task, err))
		return
	}
	c.inst = inst
	metrics.SetTaskRunning(task, true)
	s.report.Debugf("started %s (pid %d): %s", task, inst.Pid(), shellquote.Join(spec.Argv()...))

	go s.wait(index, task, inst)
}

func (s *Supervisor) wait(index int, task string, inst runtime.Instance) {
	status, err := inst.Wait()
	if err != nil {
		s.post(childFailed(index, task, err))
		return
	}
	s.post(childExited(index, task, status))
}

func (s *Supervisor) post(evt Event) {
	select {
	case s.events <- evt:
	case <-s.done:
	}
}

func (s *Supervisor) markExited(index int) {
	if index < 0 || index >= len(s.children) {
		return
	}
	c := s.children[index]
	if !c.exited {
		c.exited = true
		metrics.SetTaskRunning(c.task, false)
	}
}

// shutdown terminates every live child on its first invocation. Every
// invocation schedules its own exit after the grace period.
func (s *Supervisor) shutdown(code int, reason string) {
	if !s.shuttingDown {
		s.shuttingDown = true
		metrics.ObserveShutdown(reason)
		for _, c := range s.children {
			if c.exited || c.terminated || c.inst == nil {
				continue
			}
			c.terminated = true
			if err := c.inst.Terminate(); err != nil {
				s.report.Debugf("terminate %s: %v", c.task, err)
			}
		}
	}

	s.exits = append(s.exits, pendingExit{code: code, timer: s.clock.NewTimer(s.grace)})
}

func (s *Supervisor) stopTimers() {
	for _, exit := range s.exits {
		exit.timer.Stop()
	}
}
