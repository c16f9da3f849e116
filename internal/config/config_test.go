package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFillsMissingSectionsFromDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arcc.toml")
	if err := os.WriteFile(path, []byte(`
[lower]
default_parallel = true
`), 0o644); err != nil {
		t.Fatalf("write arcc.toml: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Lower.DefaultParallel {
		t.Fatalf("expected DefaultParallel=true")
	}
	if cfg.Lower.CallArenaSize != 200 {
		t.Fatalf("CallArenaSize = %d, want default 200", cfg.Lower.CallArenaSize)
	}
	if cfg.Output.ArtifactPath != Defaults().Output.ArtifactPath {
		t.Fatalf("expected [output] to fall back to defaults, got %+v", cfg.Output)
	}
}

func TestLoadHonorsExplicitArenaSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arcc.toml")
	if err := os.WriteFile(path, []byte(`
[lower]
call_arena_size = 512
`), 0o644); err != nil {
		t.Fatalf("write arcc.toml: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Lower.CallArenaSize != 512 {
		t.Fatalf("CallArenaSize = %d, want 512", cfg.Lower.CallArenaSize)
	}
}

func TestFindConfigWalksUpward(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "arcc.toml"), []byte("[lower]\n"), 0o644); err != nil {
		t.Fatalf("write arcc.toml: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := FindConfig(nested)
	if err != nil || !ok {
		t.Fatalf("FindConfig: path=%q ok=%v err=%v", path, ok, err)
	}
	want, _ := filepath.Abs(filepath.Join(root, "arcc.toml"))
	if path != want {
		t.Fatalf("FindConfig path = %q, want %q", path, want)
	}
}

func TestLoadProjectWithoutManifestReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if cfg.Lower.CallArenaSize != Defaults().Lower.CallArenaSize {
		t.Fatalf("expected default CallArenaSize without a manifest")
	}
}

func TestArtifactPathResolvesRelativeToRoot(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	got := cfg.ArtifactPath()
	want := filepath.Join(dir, "build/out.irpack")
	if got != want {
		t.Fatalf("ArtifactPath() = %q, want %q", got, want)
	}
}
