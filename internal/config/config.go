// Package config loads arcc.toml, the per-project configuration file: the
// call-arena size, default parallel flag, artifact output path, and
// max-diagnostics cutoff. Of these, cmd/arcc currently applies only the
// artifact output path; the other values are decoded and defaulted but not
// read by the lowering pipeline. It follows the same
// DecodeFile+IsDefined pattern the teacher repo uses for its own
// manifest (distinguishing "section absent" from "section present but
// empty" matters for applying defaults correctly).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrLowerSectionMissing indicates [lower] is absent from arcc.toml.
var ErrLowerSectionMissing = errors.New("missing [lower]")

// Lower holds the lowering core's configurable knobs.
type Lower struct {
	// CallArenaSize is decoded from call_arena_size (200 when unset). The
	// lowering core does not read it: every emitted Call carries
	// ir.DefaultCallArenaSize.
	CallArenaSize int `toml:"call_arena_size"`
	// DefaultParallel is decoded from default_parallel. The driver does not
	// read it: CodeInfo.IsParallel comes from each TemplateInstance.
	DefaultParallel bool `toml:"default_parallel"`
}

// Output holds where the lowering pipeline writes its artifact.
type Output struct {
	// ArtifactPath is where the .irpack is written; relative to the
	// project root if not absolute.
	ArtifactPath string `toml:"artifact_path"`
}

// Diagnostics holds limits on diagnostic reporting.
type Diagnostics struct {
	// MaxDiagnostics is decoded from max_diagnostics (100 when the section
	// is absent). No command currently reads it.
	MaxDiagnostics int `toml:"max_diagnostics"`
}

// Config is the decoded contents of arcc.toml.
type Config struct {
	Lower       Lower       `toml:"lower"`
	Output      Output      `toml:"output"`
	Diagnostics Diagnostics `toml:"diagnostics"`

	// root is the directory arcc.toml was found in, used to resolve
	// relative paths in Output.
	root string
}

// Defaults returns a Config with the knobs the rest of the pipeline
// assumes when no arcc.toml is present at all.
func Defaults() Config {
	return Config{
		Lower:       Lower{CallArenaSize: 200},
		Output:      Output{ArtifactPath: "build/out.irpack"},
		Diagnostics: Diagnostics{MaxDiagnostics: 100},
	}
}

// FindConfig walks up from startDir looking for arcc.toml, the same
// upward-search shape used to locate a project manifest.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "arcc.toml")
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses arcc.toml at path, filling any section absent from the
// file with the matching Defaults() value rather than leaving it zeroed.
func Load(path string) (Config, error) {
	cfg := Defaults()
	cfg.root = filepath.Dir(path)

	var decoded Config
	meta, err := toml.DecodeFile(path, &decoded)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if meta.IsDefined("lower") {
		cfg.Lower = decoded.Lower
		if cfg.Lower.CallArenaSize == 0 {
			cfg.Lower.CallArenaSize = 200
		}
	}
	if meta.IsDefined("output") {
		cfg.Output = decoded.Output
	}
	if meta.IsDefined("diagnostics") {
		cfg.Diagnostics = decoded.Diagnostics
	}
	return cfg, nil
}

// LoadProject finds and loads arcc.toml starting at startDir, returning
// Defaults() with root=startDir when no manifest exists (a project
// without arcc.toml is valid; it just gets every default).
func LoadProject(startDir string) (Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		cfg := Defaults()
		abs, err := filepath.Abs(startDir)
		if err != nil {
			return Config{}, err
		}
		cfg.root = abs
		return cfg, nil
	}
	return Load(path)
}

// ArtifactPath resolves Output.ArtifactPath against the config's root
// directory.
func (c Config) ArtifactPath() string {
	p := strings.TrimSpace(c.Output.ArtifactPath)
	if p == "" {
		p = Defaults().Output.ArtifactPath
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.root, p)
}
