package proc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestHelperProcess is re-executed by the tests below as a stand-in child.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("PROC_WANT_HELPER") != "1" {
		return
	}
	switch os.Getenv("PROC_HELPER_MODE") {
	case "fail":
		fmt.Fprint(os.Stderr, "part not found")
		os.Exit(3)
	case "sleep":
		time.Sleep(10 * time.Second)
	default:
		fmt.Fprint(os.Stdout, "ok")
	}
	os.Exit(0)
}

func helperRunner(mode string) ExecRunner {
	return ExecRunner{Env: append(os.Environ(), "PROC_WANT_HELPER=1", "PROC_HELPER_MODE="+mode)}
}

func TestExecRunnerSuccess(t *testing.T) {
	res, err := helperRunner("ok").Run(context.Background(), os.Args[0], "-test.run=TestHelperProcess")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ExitCode != 0 || res.Stdout != "ok" {
		t.Errorf("Result = %+v", res)
	}
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	res, err := helperRunner("fail").Run(context.Background(), os.Args[0], "-test.run=TestHelperProcess")
	if err != nil {
		t.Fatalf("non-zero exit must not be an error: %v", err)
	}
	if res.ExitCode != 3 || res.Stderr != "part not found" {
		t.Errorf("Result = %+v", res)
	}
}

func TestExecRunnerMissingExecutable(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), filepath.Join(t.TempDir(), "no-such-tool"))
	if err == nil {
		t.Fatal("expected an error for a missing executable")
	}
}

func TestExecRunnerContextDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := helperRunner("sleep").Run(ctx, os.Args[0], "-test.run=TestHelperProcess")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
}
