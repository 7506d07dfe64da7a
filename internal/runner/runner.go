// Package runner spawns the wrapped command and streams its combined output
// line by line.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"kamalx/pkg/logging"

	"github.com/charmbracelet/x/ansi"
)

const subsystem = "Runner"

const (
	DefaultCommand       = "kamal"
	DefaultShutdownGrace = 2 * time.Second
	DefaultLineBuffer    = 1024

	maxLineSize = 1024 * 1024
)

// drainTimeout bounds how long output is read after the process exited.
// Background children that inherited the output can keep it open forever.
var drainTimeout = time.Second

var (
	ErrAlreadyStarted = errors.New("runner already started")
	ErrNotStarted     = errors.New("runner not started")
)

// Config describes the command to run.
type Config struct {
	Command string
	Args    []string
	Dir     string
	// Env is appended to the current environment.
	Env []string

	// UsePTY runs the command on a pseudo terminal of PTYRows×PTYCols.
	// Escape sequences are stripped from its output.
	UsePTY  bool
	PTYRows uint16
	PTYCols uint16

	// ShutdownGrace is the time between the interrupt sent by Stop and the
	// kill that follows when the process is still running.
	ShutdownGrace time.Duration

	LineBuffer   int
	BufferPolicy BufferAction
}

// Exit describes how the process ended. Code is -1 when it could not be
// started or was terminated by a signal; Err then says why.
type Exit struct {
	Code int
	Err  error
}

// Success reports whether the process exited with status 0.
func (e Exit) Success() bool {
	return e.Code == 0 && e.Err == nil
}

// Runner runs one command once.
type Runner struct {
	cfg Config
	buf *LineBuffer

	mu        sync.Mutex
	cmd       *exec.Cmd
	killTimer *time.Timer

	started  atomic.Bool
	stopping atomic.Bool

	done        chan Exit
	exited      chan struct{}
	abandon     chan struct{}
	abandonOnce sync.Once
}

// New creates a runner for cfg. Zero values take the package defaults.
func New(cfg Config) *Runner {
	if cfg.Command == "" {
		cfg.Command = DefaultCommand
	}
	if cfg.ShutdownGrace <= 0 {
		cfg.ShutdownGrace = DefaultShutdownGrace
	}
	if cfg.LineBuffer <= 0 {
		cfg.LineBuffer = DefaultLineBuffer
	}
	if cfg.PTYRows == 0 {
		cfg.PTYRows = 24
	}
	if cfg.PTYCols == 0 {
		cfg.PTYCols = 80
	}

	abandon := make(chan struct{})
	return &Runner{
		cfg:     cfg,
		buf:     NewLineBuffer(cfg.LineBuffer, cfg.BufferPolicy, abandon),
		done:    make(chan Exit, 1),
		exited:  make(chan struct{}),
		abandon: abandon,
	}
}

// Start spawns the command. Cancelling ctx stops it gracefully.
//
// A failure to start is returned and also delivered on Done, so consumers
// that only watch the channels see it too.
func (r *Runner) Start(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	cmd := exec.Command(r.cfg.Command, r.cfg.Args...)
	cmd.Dir = r.cfg.Dir
	if len(r.cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), r.cfg.Env...)
	}

	var out io.ReadCloser
	var err error
	if r.cfg.UsePTY {
		out, err = startPTY(cmd, r.cfg.PTYRows, r.cfg.PTYCols)
	} else {
		out, err = startPipe(cmd)
	}
	if err != nil {
		err = fmt.Errorf("failed to start %s: %w", r.cfg.Command, err)
		logging.Error(subsystem, err, "Command did not start")
		r.buf.Close()
		close(r.exited)
		r.done <- Exit{Code: -1, Err: err}
		close(r.done)
		return err
	}

	r.mu.Lock()
	r.cmd = cmd
	r.mu.Unlock()
	logging.Info(subsystem, "Started %s (pid %d, pty %t)", cmd.String(), cmd.Process.Pid, r.cfg.UsePTY)

	readDone := make(chan struct{})
	go r.read(out, readDone)
	go r.wait(out, readDone)
	go func() {
		select {
		case <-ctx.Done():
			if err := r.Stop(); err != nil {
				logging.Warn(subsystem, "Stop on cancel failed: %v", err)
			}
		case <-r.exited:
		}
	}()
	return nil
}

// Lines delivers output lines in arrival order. It is closed once the output
// is exhausted, before the exit is delivered on Done.
func (r *Runner) Lines() <-chan string {
	return r.buf.Channel()
}

// Done delivers the exit of the process exactly once and is then closed.
func (r *Runner) Done() <-chan Exit {
	return r.done
}

// Stop interrupts the process group and kills it when it is still running
// after the shutdown grace period. Repeated calls are no-ops.
func (r *Runner) Stop() error {
	if !r.started.Load() {
		return ErrNotStarted
	}
	if r.Exited() {
		return nil
	}
	if !r.stopping.CompareAndSwap(false, true) {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd == nil {
		return ErrNotStarted
	}

	logging.Info(subsystem, "Interrupting pid %d, kill in %s", r.cmd.Process.Pid, r.cfg.ShutdownGrace)
	if err := interrupt(r.cmd); err != nil {
		logging.Warn(subsystem, "Interrupt failed, killing: %v", err)
		return kill(r.cmd)
	}

	r.killTimer = time.AfterFunc(r.cfg.ShutdownGrace, func() {
		if r.Exited() {
			return
		}
		logging.Warn(subsystem, "Process still running after %s, killing", r.cfg.ShutdownGrace)
		if err := r.Kill(); err != nil {
			logging.Error(subsystem, err, "Kill failed")
		}
	})
	return nil
}

// Kill terminates the process group immediately.
func (r *Runner) Kill() error {
	r.mu.Lock()
	cmd := r.cmd
	r.mu.Unlock()
	if cmd == nil {
		return ErrNotStarted
	}
	if r.Exited() {
		return nil
	}
	return kill(cmd)
}

// Stopping reports whether Stop was called.
func (r *Runner) Stopping() bool {
	return r.stopping.Load()
}

// Exited reports whether the process is gone.
func (r *Runner) Exited() bool {
	select {
	case <-r.exited:
		return true
	default:
		return false
	}
}

// WaitExited blocks until the process is gone or timeout elapses and reports
// whether it exited.
func (r *Runner) WaitExited(timeout time.Duration) bool {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-r.exited:
		return true
	case <-t.C:
		return false
	}
}

// Abandon tells the runner that nobody reads Lines anymore. Blocked sends
// give up so the process can be reaped.
func (r *Runner) Abandon() {
	r.abandonOnce.Do(func() { close(r.abandon) })
}

// Stats returns the line buffer metrics.
func (r *Runner) Stats() BufferStats {
	return r.buf.Stats()
}

// read is the only producer of the line buffer.
func (r *Runner) read(out io.Reader, readDone chan<- struct{}) {
	defer close(readDone)
	defer r.buf.Close()

	scanner := bufio.NewScanner(out)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(scanLines)

	for scanner.Scan() {
		line := scanner.Text()
		if r.cfg.UsePTY {
			line = ansi.Strip(line)
		}
		if !r.buf.Send(line) {
			logging.Debug(subsystem, "Dropped line (%s)", r.cfg.BufferPolicy)
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			logging.Warn(subsystem, "Line longer than %d bytes, discarding remaining output", maxLineSize)
			_, _ = io.Copy(io.Discard, out)
			return
		}
		// A pty reports EIO once the child side is gone.
		logging.Debug(subsystem, "Output closed: %v", err)
	}
}

func (r *Runner) wait(out io.Closer, readDone <-chan struct{}) {
	err := r.cmd.Wait()
	close(r.exited)

	r.mu.Lock()
	if r.killTimer != nil {
		r.killTimer.Stop()
	}
	r.mu.Unlock()

	select {
	case <-readDone:
	case <-time.After(drainTimeout):
		logging.Debug(subsystem, "Output still open %s after exit, closing", drainTimeout)
		out.Close()
		<-readDone
	}
	out.Close()

	exit := exitFromWait(err)
	logging.Info(subsystem, "Process exited with code %d", exit.Code)
	r.done <- exit
	close(r.done)
}

func exitFromWait(err error) Exit {
	if err == nil {
		return Exit{}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code >= 0 {
			return Exit{Code: code}
		}
		return Exit{Code: -1, Err: exitErr}
	}
	return Exit{Code: -1, Err: err}
}
