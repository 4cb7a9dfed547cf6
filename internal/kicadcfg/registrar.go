package kicadcfg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/converter"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/pkg/kicad/libtable"
)

// SymbolEntry is the sym-lib-table record for the converter's symbol library.
var SymbolEntry = libtable.Entry{
	Name:  converter.LibraryName,
	Type:  "KiCad",
	URI:   "${" + EnvVar + "}/" + converter.LibraryName + ".kicad_sym",
	Descr: "EasyEDA2KiCAD Symbol Library",
}

// FootprintEntry is the fp-lib-table record for the footprint folder.
var FootprintEntry = libtable.Entry{
	Name:  converter.LibraryName,
	Type:  "KiCad",
	URI:   "${" + EnvVar + "}/" + converter.LibraryName + ".pretty",
	Descr: "EasyEDA2KiCAD Footprint Library",
}

// Lines containing these markers belong to the companion's libraries.
const (
	symbolMarker    = converter.LibraryName + ".kicad_sym"
	footprintMarker = converter.LibraryName + ".pretty"
)

type tableEdit struct {
	file   string
	entry  libtable.Entry
	marker string
}

var tableEdits = []tableEdit{
	{libtable.SymbolTableFile, SymbolEntry, symbolMarker},
	{libtable.FootprintTableFile, FootprintEntry, footprintMarker},
}

// Registrar patches KiCad's configuration.
type Registrar struct {
	Env Env
	// ConfigDir, when set, replaces configuration directory discovery.
	ConfigDir string
	// LibraryDir is the value given to EASYEDA2KICAD.
	LibraryDir string
	Log        *zap.Logger
}

func (r *Registrar) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

// Register creates the library directories, points EASYEDA2KICAD at them and
// adds the library entries to both tables. Running it again changes nothing.
// The returned error is ErrConfigNotFound, a *CorruptConfigError, or the
// joined failures of individual steps.
func (r *Registrar) Register() (*Report, error) {
	log := r.logger()
	report := &Report{}

	for _, dir := range []string{
		r.LibraryDir,
		filepath.Join(r.LibraryDir, converter.LibraryName+".pretty"),
		filepath.Join(r.LibraryDir, converter.LibraryName+".3dshapes"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return report, fmt.Errorf("kicadcfg: create library directory: %w", err)
		}
	}
	report.add(r.LibraryDir, Unchanged, "library directories present")

	path, err := FindConfigFile(r.Env, r.ConfigDir)
	if err != nil {
		return report, err
	}

	cfg, err := loadCommonConfig(path)
	if err != nil {
		return report, err
	}
	vars, err := cfg.vars()
	if err != nil {
		return report, err
	}
	if current, ok := vars[EnvVar].(string); ok && current == r.LibraryDir {
		report.add(path, Unchanged, EnvVar+" already set")
	} else {
		vars[EnvVar] = r.LibraryDir
		if err := cfg.save(); err != nil {
			report.fail(path, fmt.Errorf("kicadcfg: write %s: %w", path, err))
			return report, report.Err()
		}
		report.add(path, Changed, EnvVar+" = "+r.LibraryDir)
		log.Info("path variable configured", zap.String("file", path), zap.String("value", r.LibraryDir))
	}

	dir := filepath.Dir(path)
	for _, edit := range tableEdits {
		r.insertEntry(report, filepath.Join(dir, edit.file), edit.entry)
	}
	return report, report.Err()
}

func (r *Registrar) insertEntry(report *Report, path string, entry libtable.Entry) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		report.add(path, Skipped, "table not found")
		return
	}
	if err != nil {
		report.fail(path, err)
		return
	}

	updated, changed, err := libtable.Insert(string(raw), entry)
	if err != nil {
		report.fail(path, fmt.Errorf("kicadcfg: %s: %w", path, err))
		return
	}
	if !changed {
		report.add(path, Unchanged, "library "+entry.Name+" already listed")
		return
	}
	if err := writeKeepingMode(path, updated); err != nil {
		report.fail(path, err)
		return
	}
	report.add(path, Changed, "added library "+entry.Name)
	r.logger().Info("library table updated", zap.String("file", path), zap.String("library", entry.Name))
}

// Deregister removes EASYEDA2KICAD and the library lines from every KiCad
// configuration directory. The library directory itself is kept.
func (r *Registrar) Deregister() (*Report, error) {
	dirs := ConfigDirs(r.Env, r.ConfigDir)
	if len(dirs) == 0 {
		return &Report{}, ErrConfigNotFound
	}

	report := &Report{}
	for _, dir := range dirs {
		r.deregisterDir(report, dir)
	}
	return report, report.Err()
}

func (r *Registrar) deregisterDir(report *Report, dir string) {
	log := r.logger()

	path := filepath.Join(dir, CommonConfigFile)
	switch cfg, err := loadCommonConfig(path); {
	case errors.Is(err, fs.ErrNotExist):
		report.add(path, Skipped, "not found")
	case err != nil:
		report.fail(path, err)
	default:
		vars := cfg.existingVars()
		if _, ok := vars[EnvVar]; !ok {
			report.add(path, Unchanged, EnvVar+" not set")
			break
		}
		delete(vars, EnvVar)
		if err := cfg.save(); err != nil {
			report.fail(path, err)
			break
		}
		report.add(path, Changed, "removed "+EnvVar)
		log.Info("path variable removed", zap.String("file", path))
	}

	for _, edit := range tableEdits {
		path := filepath.Join(dir, edit.file)
		raw, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			report.add(path, Skipped, "table not found")
			continue
		}
		if err != nil {
			report.fail(path, err)
			continue
		}

		kept, removed := libtable.RemoveLines(string(raw), edit.marker)
		if len(removed) == 0 {
			report.add(path, Unchanged, "no "+edit.marker+" entries")
			continue
		}
		if err := writeKeepingMode(path, kept); err != nil {
			report.fail(path, err)
			continue
		}
		for _, line := range removed {
			report.add(path, Changed, "removed library "+libtable.Describe(line))
		}
		log.Info("library table cleaned", zap.String("file", path), zap.Int("lines", len(removed)))
	}
}

func writeKeepingMode(path, content string) error {
	perm := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return os.WriteFile(path, []byte(content), perm)
}
