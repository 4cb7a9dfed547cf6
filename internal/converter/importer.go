package converter

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/metrics"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/proc"
)

// ExecutableResolver finds the converter executable.
type ExecutableResolver interface {
	Resolve(ctx context.Context) (string, error)
}

// Importer runs one synchronous conversion per call.
type Importer struct {
	Resolver   ExecutableResolver
	Runner     proc.Runner
	LibraryDir string
	// Timeout bounds a converter run; zero waits for the process to exit.
	Timeout time.Duration
	Log     *zap.Logger
}

// Import resolves the converter and runs it for partID. The returned error
// is ErrNotFound, *ExitError, or a wrapped process start failure.
func (im *Importer) Import(ctx context.Context, partID string) (Request, error) {
	log := im.Log
	if log == nil {
		log = zap.NewNop()
	}

	exe, err := im.Resolver.Resolve(ctx)
	if err != nil {
		return Request{PartID: partID}, err
	}

	req := NewRequest(partID, exe, im.LibraryDir)
	log = log.With(zap.String("request", req.ID), zap.String("part", partID))

	if err := os.MkdirAll(im.LibraryDir, 0o755); err != nil {
		return req, fmt.Errorf("converter: create library directory: %w", err)
	}

	if im.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, im.Timeout)
		defer cancel()
	}

	log.Info("running converter", zap.String("command", req.String()))
	start := time.Now()
	res, err := im.Runner.Run(ctx, req.Executable, req.Args()...)
	metrics.ImportDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return req, fmt.Errorf("converter: run %s: %w", req.Executable, err)
	}
	if res.ExitCode != 0 {
		log.Warn("converter failed", zap.Int("exit", res.ExitCode), zap.String("stderr", res.Stderr))
		return req, &ExitError{Code: res.ExitCode, Stderr: strings.TrimSpace(res.Stderr)}
	}

	log.Info("converter finished", zap.Duration("elapsed", time.Since(start)))
	return req, nil
}
