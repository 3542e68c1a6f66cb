package applescript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/localtoolkit/localtoolkit/internal/logging"
)

const (
	// DefaultTimeout bounds script execution when the caller does not ask
	// for anything else.
	DefaultTimeout = 30 * time.Second

	// errorMarker is the in-band failure channel used by the automation
	// scripts: output starting with this prefix is a script-level error
	// even when osascript exits 0.
	errorMarker = "ERROR:"

	// killGrace is how long Wait may linger after the kill signal before
	// the pipes are abandoned.
	killGrace = 2 * time.Second
)

// ExecResult captures everything about one osascript run. Process-level and
// script-level failures land in Err and Success; they are never surfaced as
// Go panics or returned errors from Execute.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Elapsed  time.Duration
	Success  bool

	// Err classifies the failure when Success is false: *TimeoutError or
	// *ProcessError.
	Err error
}

// Runner executes AppleScript source through the system interpreter. The
// zero value is not usable; call NewRunner. A Runner holds no per-call state
// and is safe for concurrent use.
type Runner struct {
	path string
	args []string

	// Timeout is what callers pass when they have no more specific bound of
	// their own. NewRunner sets it to DefaultTimeout; configuration may
	// override it.
	Timeout time.Duration
}

// NewRunner returns a Runner that invokes osascript -e.
func NewRunner() *Runner {
	return &Runner{path: "osascript", args: []string{"-e"}, Timeout: DefaultTimeout}
}

// newRunnerCommand is used by tests to swap the interpreter (e.g. /bin/sh -c)
// so execution semantics can be exercised without osascript.
func newRunnerCommand(path string, args ...string) *Runner {
	return &Runner{path: path, args: args, Timeout: DefaultTimeout}
}

// Execute injects params into code and runs it, waiting at most timeout.
// Pre-spawn failures (empty code, bad timeout, injection, blocked patterns)
// return a nil result and an error. Once a process has been spawned the call
// always returns an ExecResult and a nil error.
func (r *Runner) Execute(ctx context.Context, code string, params map[string]Value, timeout time.Duration) (*ExecResult, error) {
	if strings.TrimSpace(code) == "" {
		return nil, errors.New("script code must not be empty")
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", timeout)
	}
	if err := checkSecurity(code); err != nil {
		return nil, err
	}

	script, err := Inject(code, params)
	if err != nil {
		return nil, err
	}

	return r.run(ctx, script, timeout), nil
}

func (r *Runner) run(ctx context.Context, script string, timeout time.Duration) *ExecResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	argv := append(append([]string{}, r.args...), script)
	cmd := exec.CommandContext(ctx, r.path, argv...)

	// Run the interpreter in its own process group so that a timeout kill
	// takes down anything the script spawned, not just osascript itself.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = killGrace

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	res := &ExecResult{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Elapsed: time.Since(start),
	}

	if ctx.Err() == context.DeadlineExceeded {
		res.ExitCode = -1
		res.Err = &TimeoutError{Timeout: timeout}
		logging.Debug("applescript", "killed after timeout %s", timeout)
		return res
	}

	if runErr != nil {
		res.ExitCode = -1
		if cmd.ProcessState != nil {
			res.ExitCode = cmd.ProcessState.ExitCode()
		}
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = runErr.Error()
		}
		res.Err = &ProcessError{Message: msg, ExitCode: res.ExitCode}
		return res
	}

	res.ExitCode = 0

	// Scripts report application-level failures in-band on stdout (or,
	// rarely, stderr) rather than through the exit status.
	for _, out := range []string{strings.TrimSpace(res.Stdout), strings.TrimSpace(res.Stderr)} {
		if strings.HasPrefix(out, errorMarker) {
			msg := strings.TrimSpace(strings.TrimPrefix(out, errorMarker))
			res.Err = &ProcessError{Message: msg}
			return res
		}
	}

	res.Success = true
	return res
}
