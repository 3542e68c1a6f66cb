package applescript

import (
	"context"
	"errors"
	"testing"
	"time"
)

// shRunner executes the "script" through /bin/sh so the process lifecycle can
// be exercised on any platform.
func shRunner() *Runner {
	return newRunnerCommand("/bin/sh", "-c")
}

func TestExecuteSuccess(t *testing.T) {
	res, err := shRunner().Execute(context.Background(), "echo hello", nil, DefaultTimeout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if got := res.Stdout; got != "hello\n" {
		t.Errorf("stdout = %q", got)
	}
	if res.ExitCode != 0 {
		t.Errorf("exit code = %d", res.ExitCode)
	}
	if res.Elapsed <= 0 {
		t.Error("elapsed not recorded")
	}
}

func TestExecuteInjectedParams(t *testing.T) {
	res, err := shRunner().Execute(context.Background(), "echo $msg", map[string]Value{
		"msg": String(`round "trip"`),
	}, DefaultTimeout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got err %v", res.Err)
	}
	// sh strips the outer quotes and the backslash escapes.
	if got := res.Stdout; got != "round \"trip\"\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestExecuteTimeoutKillsProcessGroup(t *testing.T) {
	start := time.Now()
	res, err := shRunner().Execute(context.Background(), "sleep 10", nil, 300*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success {
		t.Fatal("expected failure")
	}
	var te *TimeoutError
	if !errors.As(res.Err, &te) {
		t.Fatalf("err = %v, want *TimeoutError", res.Err)
	}
	if te.Timeout != 300*time.Millisecond {
		t.Errorf("timeout = %s", te.Timeout)
	}
	// The call must come back promptly after the deadline, not after the
	// sleep would have finished.
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("execute blocked for %s", elapsed)
	}
}

func TestExecuteErrorMarker(t *testing.T) {
	res, err := shRunner().Execute(context.Background(), `echo "ERROR: Mailbox not found"`, nil, DefaultTimeout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success {
		t.Fatal("expected in-band error to fail the run")
	}
	var pe *ProcessError
	if !errors.As(res.Err, &pe) {
		t.Fatalf("err = %v, want *ProcessError", res.Err)
	}
	if pe.Message != "Mailbox not found" {
		t.Errorf("message = %q", pe.Message)
	}
	if res.ExitCode != 0 {
		t.Errorf("exit code = %d", res.ExitCode)
	}
}

func TestExecuteNonzeroExit(t *testing.T) {
	res, err := shRunner().Execute(context.Background(), `echo oops >&2; exit 3`, nil, DefaultTimeout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success {
		t.Fatal("expected failure")
	}
	var pe *ProcessError
	if !errors.As(res.Err, &pe) {
		t.Fatalf("err = %v, want *ProcessError", res.Err)
	}
	if pe.ExitCode != 3 {
		t.Errorf("exit code = %d", pe.ExitCode)
	}
	if pe.Message != "oops" {
		t.Errorf("message = %q", pe.Message)
	}
}

func TestExecutePreSpawnErrors(t *testing.T) {
	r := shRunner()
	ctx := context.Background()

	if _, err := r.Execute(ctx, "   ", nil, DefaultTimeout); err == nil {
		t.Error("empty code should be rejected")
	}
	if _, err := r.Execute(ctx, "echo hi", nil, 0); err == nil {
		t.Error("non-positive timeout should be rejected")
	}

	_, err := r.Execute(ctx, "do shell script with administrator privileges", nil, DefaultTimeout)
	var se *SecurityError
	if !errors.As(err, &se) {
		t.Errorf("err = %v, want *SecurityError", err)
	}
}

func TestCheckSecurityPatterns(t *testing.T) {
	blocked := []string{
		`do shell script "rm -rf /tmp/x"`,
		`do shell script "sudo ls"`,
		`tell application "System Events" to delete file "x"`,
	}
	for _, code := range blocked {
		if err := checkSecurity(code); err == nil {
			t.Errorf("expected %q to be blocked", code)
		}
	}
	if err := checkSecurity(`tell application "Notes" to get every note`); err != nil {
		t.Errorf("benign script blocked: %v", err)
	}
}
