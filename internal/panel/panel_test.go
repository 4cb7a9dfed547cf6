package panel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/converter"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/proc"
)

type fakeImporter struct {
	calls []string
	err   error
	panic any
}

func (f *fakeImporter) Import(ctx context.Context, partID string) (converter.Request, error) {
	f.calls = append(f.calls, partID)
	if f.panic != nil {
		panic(f.panic)
	}
	return converter.Request{PartID: partID}, f.err
}

// scriptedRunner simulates the converter process.
type scriptedRunner struct {
	res   proc.Result
	calls int
}

func (s *scriptedRunner) Run(context.Context, string, ...string) (proc.Result, error) {
	s.calls++
	return s.res, nil
}

// hangingRunner blocks until its context ends, like a stuck converter.
type hangingRunner struct{}

func (hangingRunner) Run(ctx context.Context, name string, _ ...string) (proc.Result, error) {
	<-ctx.Done()
	return proc.Result{}, fmt.Errorf("proc: %s: %w", name, ctx.Err())
}

type found string

func (f found) Resolve(context.Context) (string, error) { return string(f), nil }

func TestSubmitWithSimulatedConverter(t *testing.T) {
	tests := []struct {
		name      string
		res       proc.Result
		wantKind  Kind
		wantTitle string
		wantText  string
	}{
		{
			name:      "zero exit",
			res:       proc.Result{ExitCode: 0},
			wantKind:  KindSuccess,
			wantTitle: "Success",
			wantText:  "C12345",
		},
		{
			name:      "non-zero exit",
			res:       proc.Result{ExitCode: 2, Stderr: "[ERROR] Failed to fetch data from EasyEDA API for part C12345"},
			wantKind:  KindProcess,
			wantTitle: "Import Error",
			wantText:  "Failed to fetch data from EasyEDA API for part C12345",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &scriptedRunner{res: tt.res}
			im := &converter.Importer{Resolver: found("/bin/easyeda2kicad"), Runner: runner, LibraryDir: t.TempDir()}

			n := New(im, nil).Submit(context.Background(), "  C12345\n")
			if n.Kind != tt.wantKind || n.Title != tt.wantTitle {
				t.Errorf("Submit() = %+v", n)
			}
			if !strings.Contains(n.Message, tt.wantText) {
				t.Errorf("message %q does not contain %q", n.Message, tt.wantText)
			}
			if runner.calls != 1 {
				t.Errorf("converter ran %d times, want 1", runner.calls)
			}
		})
	}
}

func TestSubmitBlankInputSpawnsNothing(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		im := &fakeImporter{}
		n := New(im, nil).Submit(context.Background(), input)
		if n.Kind != KindInvalidInput || n.Level != LevelError {
			t.Errorf("Submit(%q) = %+v", input, n)
		}
		if len(im.calls) != 0 {
			t.Errorf("Submit(%q) invoked the importer", input)
		}
	}
}

func TestSubmitReportsResolutionFailure(t *testing.T) {
	n := New(&fakeImporter{err: converter.ErrNotFound}, nil).Submit(context.Background(), "C1")
	if n.Kind != KindResolve || !strings.Contains(n.Message, "command not found") {
		t.Errorf("Submit() = %+v", n)
	}
}

func TestSubmitContainsUnexpectedFailures(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		err := errors.New("converter: run /bin/easyeda2kicad: permission denied")
		n := New(&fakeImporter{err: err}, nil).Submit(context.Background(), "C1")
		if n.Kind != KindUnexpected || !strings.HasPrefix(n.Message, "Unexpected error: ") {
			t.Errorf("Submit() = %+v", n)
		}
	})

	t.Run("panic", func(t *testing.T) {
		core, logs := observer.New(zapcore.ErrorLevel)
		n := New(&fakeImporter{panic: "boom"}, zap.New(core)).Submit(context.Background(), "C1")
		if n.Kind != KindUnexpected || !strings.Contains(n.Message, "boom") {
			t.Errorf("Submit() = %+v", n)
		}
		if logs.FilterMessage("import panicked").Len() != 1 {
			t.Error("panic was not logged")
		}
	})
}

func TestSubmitReportsExpiredRunAsUnexpected(t *testing.T) {
	im := &converter.Importer{Resolver: found("/bin/easyeda2kicad"), Runner: hangingRunner{}, LibraryDir: t.TempDir(), Timeout: 10 * time.Millisecond}

	_, err := im.Import(context.Background(), "C1")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Import err = %v, want deadline exceeded", err)
	}
	if got := KindOf(err); got != KindUnexpected {
		t.Errorf("KindOf(expired run) = %v, want %v", got, KindUnexpected)
	}

	n := New(im, nil).Submit(context.Background(), "C1")
	if n.Kind != KindUnexpected || !strings.HasPrefix(n.Message, "Unexpected error: ") {
		t.Errorf("Submit() = %+v", n)
	}
}

func TestSubmitWarnsOnUnusualPartNumber(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	im := &fakeImporter{}
	n := New(im, zap.New(core)).Submit(context.Background(), "lm358")
	if n.Kind != KindSuccess || len(im.calls) != 1 {
		t.Fatalf("unusual ids must still be submitted: %+v", n)
	}
	if logs.FilterMessage("part number does not look like an LCSC id").Len() != 1 {
		t.Error("expected a warning")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindSuccess},
		{ErrEmptyPartID, KindInvalidInput},
		{converter.ErrNotFound, KindResolve},
		{&converter.ExitError{Code: 1}, KindProcess},
		{errors.New("disk full"), KindUnexpected},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
