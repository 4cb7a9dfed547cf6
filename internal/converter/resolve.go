package converter

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/proc"
)

// ErrNotFound means no candidate location held the converter executable.
var ErrNotFound = errors.New("converter: easyeda2kicad executable not found")

// Resolver finds the converter executable. Candidates are tried in order:
// the configured override, pipx virtual environments, well-known install
// locations, then PATH. The first existing file wins.
type Resolver struct {
	Override string
	Home     string
	GOOS     string
	Runner   proc.Runner
	LookPath func(file string) (string, error)
	Stat     func(name string) (os.FileInfo, error)
	ReadDir  func(name string) ([]os.DirEntry, error)
	Log      *zap.Logger
}

// NewResolver returns a resolver for the current user and platform.
func NewResolver(override string, runner proc.Runner, log *zap.Logger) *Resolver {
	home, _ := os.UserHomeDir()
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		Override: override,
		Home:     home,
		GOOS:     runtime.GOOS,
		Runner:   runner,
		LookPath: exec.LookPath,
		Stat:     os.Stat,
		ReadDir:  os.ReadDir,
		Log:      log,
	}
}

// Resolve returns the path of the converter executable.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	if r.Override != "" {
		if r.isFile(r.Override) {
			return r.Override, nil
		}
		r.Log.Warn("configured converter does not exist, searching", zap.String("path", r.Override))
	}

	for _, candidate := range r.pipxCandidates(ctx) {
		if r.isFile(candidate) {
			r.Log.Debug("converter found in pipx environment", zap.String("path", candidate))
			return candidate, nil
		}
	}

	for _, candidate := range r.fallbackCandidates() {
		if r.isFile(candidate) {
			r.Log.Debug("converter found at fallback location", zap.String("path", candidate))
			return candidate, nil
		}
	}

	if r.LookPath != nil {
		if path, err := r.LookPath(r.exeName()); err == nil {
			return path, nil
		}
	}
	return "", ErrNotFound
}

func (r *Resolver) exeName() string {
	if r.GOOS == "windows" {
		return ExecutableName + ".exe"
	}
	return ExecutableName
}

func (r *Resolver) binDir() string {
	if r.GOOS == "windows" {
		return "Scripts"
	}
	return "bin"
}

// pipxCandidates asks pipx where it keeps virtual environments and returns
// the executable inside every environment whose name mentions the converter.
func (r *Resolver) pipxCandidates(ctx context.Context) []string {
	if r.Runner == nil || r.ReadDir == nil {
		return nil
	}
	res, err := r.Runner.Run(ctx, "pipx", "environment", "--value", "PIPX_LOCAL_VENVS")
	if err != nil || res.ExitCode != 0 {
		r.Log.Debug("pipx environment unavailable", zap.Error(err), zap.Int("exit", res.ExitCode))
		return nil
	}
	venvs := strings.TrimSpace(res.Stdout)
	if venvs == "" {
		return nil
	}
	entries, err := r.ReadDir(venvs)
	if err != nil {
		return nil
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() && strings.Contains(strings.ToLower(entry.Name()), ExecutableName) {
			candidates = append(candidates, filepath.Join(venvs, entry.Name(), r.binDir(), r.exeName()))
		}
	}
	return candidates
}

func (r *Resolver) fallbackCandidates() []string {
	if r.Home == "" {
		return nil
	}
	exe := r.exeName()
	candidates := []string{
		filepath.Join(r.Home, ".local", "bin", exe),
		filepath.Join(r.Home, ".local", "pipx", "venvs", ExecutableName, r.binDir(), exe),
	}
	if r.GOOS == "windows" {
		candidates = append(candidates, filepath.Join(r.Home, "pipx", "venvs", ExecutableName, r.binDir(), exe))
	}
	return candidates
}

func (r *Resolver) isFile(path string) bool {
	info, err := r.Stat(path)
	return err == nil && !info.IsDir()
}
