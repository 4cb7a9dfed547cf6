// Package kicadcfg registers the companion's library directory with KiCad:
// an environment variable in kicad_common.json plus one entry in each global
// library table. Deregistration undoes both.
package kicadcfg

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
)

const (
	// EnvVar is the KiCad path variable pointing at the library directory.
	EnvVar = "EASYEDA2KICAD"
	// CommonConfigFile holds KiCad's environment variables.
	CommonConfigFile = "kicad_common.json"
)

// ErrConfigNotFound reports that no kicad_common.json exists yet, which
// happens until KiCad has been started and its path settings saved once.
var ErrConfigNotFound = errors.New("kicadcfg: KiCad configuration file not found")

// Guidance is the remediation shown with ErrConfigNotFound.
const Guidance = `Please open KiCad, go to Preferences → Configure Paths, click OK, then rerun this command.
If you have already launched KiCad, ensure your config is located in:
   → Linux: ~/.config/kicad/
   → macOS: ~/Library/Preferences/kicad/
   → Windows: %APPDATA%\kicad\`

// Env carries the parts of the process environment that decide where KiCad
// keeps its configuration.
type Env struct {
	GOOS    string
	Home    string
	AppData string
}

// CurrentEnv describes the running process.
func CurrentEnv() (Env, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Env{}, err
	}
	return Env{GOOS: runtime.GOOS, Home: home, AppData: os.Getenv("APPDATA")}, nil
}

// BaseDirs lists the KiCad configuration roots to search, most likely first.
func (e Env) BaseDirs() []string {
	var dirs []string
	if e.GOOS == "windows" {
		if e.AppData != "" {
			dirs = append(dirs, filepath.Join(e.AppData, "kicad"))
		}
	} else {
		dirs = append(dirs, filepath.Join(e.Home, ".config", "kicad"))
	}
	return append(dirs, filepath.Join(e.Home, "Library", "Preferences", "kicad"))
}

// VersionDirs returns the subdirectories of base whose names start with a
// digit ("7.0", "8.0", "10.0"), highest major version first.
func VersionDirs(base string) ([]string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, err
	}

	type version struct {
		name  string
		major int
	}
	var versions []version
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || name == "" || name[0] < '0' || name[0] > '9' {
			continue
		}
		versions = append(versions, version{name: name, major: leadingNumber(name)})
	}
	sort.Slice(versions, func(i, j int) bool {
		if versions[i].major != versions[j].major {
			return versions[i].major > versions[j].major
		}
		return versions[i].name > versions[j].name
	})

	dirs := make([]string, len(versions))
	for i, v := range versions {
		dirs[i] = filepath.Join(base, v.name)
	}
	return dirs, nil
}

func leadingNumber(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}

// FindConfigFile locates kicad_common.json. An override directory is used
// as is. Otherwise each base is searched: the highest version directory
// holding the file wins, then the base itself.
func FindConfigFile(env Env, override string) (string, error) {
	if override != "" {
		path := filepath.Join(override, CommonConfigFile)
		if fileExists(path) {
			return path, nil
		}
		return "", ErrConfigNotFound
	}

	for _, base := range env.BaseDirs() {
		versions, _ := VersionDirs(base)
		for _, dir := range versions {
			path := filepath.Join(dir, CommonConfigFile)
			if fileExists(path) {
				return path, nil
			}
		}
		path := filepath.Join(base, CommonConfigFile)
		if fileExists(path) {
			return path, nil
		}
	}
	return "", ErrConfigNotFound
}

// ConfigDirs lists every directory holding KiCad configuration, so that
// deregistration cleans all installed versions.
func ConfigDirs(env Env, override string) []string {
	if override != "" {
		return []string{override}
	}

	var dirs []string
	for _, base := range env.BaseDirs() {
		versions, _ := VersionDirs(base)
		dirs = append(dirs, versions...)
		if fileExists(filepath.Join(base, CommonConfigFile)) {
			dirs = append(dirs, base)
		}
	}
	return dirs
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
