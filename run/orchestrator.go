/*
 * orchestrator.go, part of gopackmol.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package run

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	packmol "github.com/rmera/gopackmol"
	"go.uber.org/zap"
)

const (
	chunkSize       = 4096
	stderrTail      = 16 * 1024
	defaultDrainFor = 2 * time.Second
)

// Config tells the Orchestrator what to run. Executable has no default:
// it must be given by the caller (see the config package).
type Config struct {
	Executable string
	Args       []string
	WorkDir    string        //working directory of the solver, current one if empty
	TempDir    string        //where input files are written, os.TempDir() if empty
	KeepInput  bool          //do not remove the input file after the run
	Timeout    time.Duration //kill the solver after this long, 0 for no limit
	DrainFor   time.Duration //how long to wait for output after the process exits
}

func (c Config) drainFor() time.Duration {
	if c.DrainFor > 0 {
		return c.DrainFor
	}
	return defaultDrainFor
}

// Option modifies an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. The default logs nothing.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMetrics makes the Orchestrator record its runs in m.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// Orchestrator launches and follows one solver process at a time.
type Orchestrator struct {
	cfg     Config
	log     *zap.Logger
	metrics *Metrics

	//only the goroutine that owns the current transition writes it.
	state atomic.Int32

	mu   sync.Mutex //guards cur, subs and the cancelled and ended flags of cur
	cur  *runRecord
	subs map[int]Subscriber
	next int

	deliver sync.Mutex //serializes subscriber calls
}

type runRecord struct {
	handle    Handle
	cmd       *exec.Cmd
	ctx       context.Context
	cancel    context.CancelFunc
	cancelled bool //Cancel was accepted
	ended     bool //the outcome of the run is decided
	stderr    *tailBuffer
	done      chan struct{}
}

// New returns an idle Orchestrator for the solver described by cfg.
func New(cfg Config, opts ...Option) *Orchestrator {
	o := &Orchestrator{cfg: cfg, log: zap.NewNop(), subs: make(map[int]Subscriber)}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current state. It can be called at any time from any goroutine.
func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

// Subscribe registers s to receive the events of every later run. The returned
// function removes the subscription.
func (o *Orchestrator) Subscribe(s Subscriber) (unsubscribe func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	id := o.next
	o.next++
	o.subs[id] = s
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.subs, id)
	}
}

func (o *Orchestrator) subscribers() []Subscriber {
	o.mu.Lock()
	defer o.mu.Unlock()
	ret := make([]Subscriber, 0, len(o.subs))
	for i := 0; i < o.next; i++ {
		if s, ok := o.subs[i]; ok {
			ret = append(ret, s)
		}
	}
	return ret
}

// claim moves the orchestrator to Launching, unless it is busy.
func (o *Orchestrator) claim() bool {
	for {
		s := o.State()
		if s.Busy() {
			return false
		}
		if o.state.CompareAndSwap(int32(s), int32(Launching)) {
			return true
		}
	}
}

// Launch writes text to a new input file and starts the solver with that file as
// its standard input. It returns as soon as the process is running. The run is
// bound to ctx: if ctx ends, the solver is killed and the run is Aborted.
// Launch fails with packmol.BusyError if a run is in progress, with
// packmol.ProcessIOError if the input can't be written, and with
// packmol.ProcessLaunchError if the solver can't be started.
func (o *Orchestrator) Launch(ctx context.Context, text string) (*Handle, error) {
	const caller = "Orchestrator.Launch"
	if !o.claim() {
		return nil, packmol.NewError(packmol.BusyError, caller, "state is %s", o.State())
	}
	if ctx == nil {
		ctx = context.Background()
	}
	runID := uuid.NewString()
	inpath, err := o.writeInput(runID, text)
	if err != nil {
		o.state.Store(int32(Idle))
		return nil, packmol.WrapError(packmol.ProcessIOError, caller, err, "writing input for run %s", runID)
	}
	r, stdout, err := o.start(ctx, runID, inpath)
	if err != nil {
		os.Remove(inpath)
		o.state.Store(int32(Idle))
		o.log.Error("solver launch failed", zap.String("run", runID), zap.String("executable", o.cfg.Executable), zap.Error(err))
		return nil, packmol.WrapError(packmol.ProcessLaunchError, caller, err, "%s", o.cfg.Executable)
	}
	o.mu.Lock()
	o.cur = r
	o.mu.Unlock()
	o.state.Store(int32(Running))
	o.metrics.started()
	o.log.Info("solver started", zap.String("run", runID), zap.Int("pid", r.handle.PID), zap.String("input", inpath))
	go o.dispatch(r, stdout)
	h := r.handle
	return &h, nil
}

func (o *Orchestrator) writeInput(runID, text string) (string, error) {
	dir := o.cfg.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, "packmol-"+runID+".inp")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", err
	}
	if _, err = io.WriteString(f, text); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err = f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// start spawns the solver. The returned file is the read end of its standard output.
func (o *Orchestrator) start(ctx context.Context, runID, inpath string) (*runRecord, *os.File, error) {
	var cancel context.CancelFunc
	if o.cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	in, err := os.Open(inpath)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	defer in.Close()
	pr, pw, err := os.Pipe()
	if err != nil {
		cancel()
		return nil, nil, err
	}
	defer pw.Close() //the child keeps its own copy
	r := &runRecord{ctx: ctx, cancel: cancel, stderr: newTailBuffer(stderrTail), done: make(chan struct{})}
	r.cmd = exec.CommandContext(ctx, o.cfg.Executable, o.cfg.Args...)
	r.cmd.Dir = o.cfg.WorkDir
	r.cmd.Stdin = in
	r.cmd.Stdout = pw
	r.cmd.Stderr = r.stderr
	r.cmd.WaitDelay = o.cfg.drainFor()
	if err := r.cmd.Start(); err != nil {
		cancel()
		pr.Close()
		return nil, nil, err
	}
	r.handle = Handle{RunID: runID, InputPath: inpath, PID: r.cmd.Process.Pid, Started: time.Now()}
	return r, pr, nil
}

// readChunks sends what it reads from r to out, in order, and closes out at the end.
func readChunks(r io.Reader, out chan<- []byte) {
	defer close(out)
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			out <- chunk
		}
		if err != nil {
			return
		}
	}
}

// dispatch is the only goroutine that delivers events for the run r. It moves the
// state to Completed or Aborted.
func (o *Orchestrator) dispatch(r *runRecord, stdout *os.File) {
	chunks := make(chan []byte, 16)
	go readChunks(stdout, chunks)
	exited := make(chan error, 1)
	go func() { exited <- r.cmd.Wait() }()

	var waitErr error
	var gotExit bool
	var drain <-chan time.Time
	for chunks != nil || !gotExit {
		select {
		case c, ok := <-chunks:
			if !ok {
				chunks = nil
				continue
			}
			o.metrics.output(len(c))
			o.deliverChunk(c)
		case waitErr = <-exited:
			gotExit = true
			exited = nil
			//something that outlived the solver may hold the pipe open.
			drain = time.After(o.cfg.drainFor())
		case <-drain:
			stdout.Close()
			drain = nil
		}
	}
	stdout.Close()

	c := Completion{RunID: r.handle.RunID, ExitCode: -1, Duration: time.Since(r.handle.Started)}
	if ps := r.cmd.ProcessState; ps != nil {
		c.ExitCode = ps.ExitCode()
	}
	//after this, Cancel refuses the run, so an accepted Cancel always aborts it.
	o.mu.Lock()
	r.ended = true
	cancelled := r.cancelled
	o.mu.Unlock()
	var exitErr *exec.ExitError
	switch {
	case cancelled || (waitErr != nil && r.ctx.Err() != nil):
		c.Aborted = true
		if c.Err = context.Cause(r.ctx); c.Err == nil {
			c.Err = context.Canceled
		}
	case errors.As(waitErr, &exitErr):
		c.Err = packmol.WrapError(packmol.ExitError, "Orchestrator.dispatch", waitErr, "run %s", c.RunID)
	case waitErr != nil:
		c.Err = packmol.WrapError(packmol.ProcessIOError, "Orchestrator.dispatch", waitErr, "run %s", c.RunID)
	}
	r.cancel()
	if !o.cfg.KeepInput {
		os.Remove(r.handle.InputPath)
	}
	o.logCompletion(r, c)
	o.metrics.finished(c)

	final := Completed
	if c.Aborted {
		final = Aborted
	}
	o.deliver.Lock()
	o.state.Store(int32(final))
	for _, s := range o.subscribers() {
		s.Completion(c)
	}
	o.deliver.Unlock()
	close(r.done)
}

func (o *Orchestrator) deliverChunk(c []byte) {
	o.deliver.Lock()
	defer o.deliver.Unlock()
	subs := o.subscribers()
	for i, s := range subs {
		if i < len(subs)-1 {
			s.OutputChunk(append([]byte(nil), c...))
			continue
		}
		s.OutputChunk(c)
	}
}

func (o *Orchestrator) logCompletion(r *runRecord, c Completion) {
	fields := []zap.Field{zap.String("run", c.RunID), zap.Int("pid", r.handle.PID), zap.Int("exit_code", c.ExitCode), zap.Duration("duration", c.Duration)}
	switch {
	case c.Aborted:
		o.log.Info("solver aborted", fields...)
	case c.Err != nil:
		o.log.Warn("solver failed", append(fields, zap.Error(c.Err), zap.String("stderr", r.stderr.String()))...)
	default:
		o.log.Info("solver finished", fields...)
	}
}

// Cancel kills the running solver. The run then ends as Aborted, after the output
// produced so far has been delivered, even if the solver had already exited.
// Cancel returns false, and does nothing, if no solver is running or the run
// was already cancelled.
func (o *Orchestrator) Cancel() bool {
	if o.State() != Running {
		return false
	}
	o.mu.Lock()
	r := o.cur
	if r == nil || r.cancelled || r.ended {
		o.mu.Unlock()
		return false
	}
	r.cancelled = true
	o.mu.Unlock()
	o.log.Info("cancelling solver", zap.String("run", r.handle.RunID), zap.Int("pid", r.handle.PID))
	r.cancel()
	return true
}

// Wait blocks until the current run, if any, has delivered its Completion, or
// until ctx ends. It returns the final state.
func (o *Orchestrator) Wait(ctx context.Context) (State, error) {
	o.mu.Lock()
	r := o.cur
	o.mu.Unlock()
	if r == nil {
		return o.State(), nil
	}
	select {
	case <-r.done:
		return o.State(), nil
	case <-ctx.Done():
		return o.State(), ctx.Err()
	}
}
