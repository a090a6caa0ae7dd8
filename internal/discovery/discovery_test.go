package discovery

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"depviz/internal/config"
	"depviz/internal/errors"
	"depviz/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
	})
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestModuleNameFromPath(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"app.py", "app"},
		{"pkg/util.py", "pkg.util"},
		{"pkg/sub/__init__.py", "pkg.sub"},
		{"pkg/__init__.py", "pkg"},
		{"__init__.py", ""},
		{"a/b/c.pyw", "a.b.c"},
	}
	for _, tt := range tests {
		if got := ModuleNameFromPath(tt.rel); got != tt.want {
			t.Errorf("ModuleNameFromPath(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}

func TestScan(t *testing.T) {
	t.Run("discovers modules and skips excluded dirs", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "app.py", "")
		writeFile(t, root, "pkg/__init__.py", "")
		writeFile(t, root, "pkg/util.py", "")
		writeFile(t, root, ".venv/lib/junk.py", "")
		writeFile(t, root, "__pycache__/app.cpython-312.pyc", "")
		writeFile(t, root, "notes.txt", "")

		s := NewScanner(root, config.DefaultConfig().Discovery, testLogger())
		modules, diags, err := s.Scan()
		if err != nil {
			t.Fatalf("Scan() error: %v", err)
		}
		if len(diags) != 0 {
			t.Errorf("got %d diagnostics, want 0: %v", len(diags), diags)
		}
		for _, name := range []string{"app", "pkg", "pkg.util"} {
			if !modules.Contains(name) {
				t.Errorf("missing module %q", name)
			}
		}
		if modules.Len() != 3 {
			t.Errorf("Len() = %d, want 3", modules.Len())
		}
	})

	t.Run("root initializer contributes no module", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "__init__.py", "")
		writeFile(t, root, "app.py", "")

		s := NewScanner(root, config.DefaultConfig().Discovery, testLogger())
		modules, _, err := s.Scan()
		if err != nil {
			t.Fatalf("Scan() error: %v", err)
		}
		if modules.Len() != 1 || !modules.Contains("app") {
			t.Errorf("modules = %v, want only app", modules.Names())
		}
	})

	t.Run("missing root is fatal", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "nope")
		s := NewScanner(root, config.DefaultConfig().Discovery, testLogger())
		_, _, err := s.Scan()
		if err == nil {
			t.Fatal("Scan() succeeded on missing root")
		}
		var ae *errors.AnalyzerError
		if !stderrors.As(err, &ae) {
			t.Fatalf("error = %v, want *errors.AnalyzerError", err)
		}
		if ae.Code != errors.RootMissing {
			t.Errorf("code = %s, want %s", ae.Code, errors.RootMissing)
		}
		if ae.Details != root {
			t.Errorf("Details = %q, want the offending root %q", ae.Details, root)
		}
		if !errors.IsFatal(ae.Code) {
			t.Errorf("IsFatal(%s) = false, want true", ae.Code)
		}
	})

	t.Run("name collision keeps last file and reports diagnostic", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "pkg.py", "")
		writeFile(t, root, "pkg/__init__.py", "")

		s := NewScanner(root, config.DefaultConfig().Discovery, testLogger())
		modules, diags, err := s.Scan()
		if err != nil {
			t.Fatalf("Scan() error: %v", err)
		}
		if modules.Len() != 1 {
			t.Fatalf("Len() = %d, want 1", modules.Len())
		}
		if len(diags) != 1 || diags[0].Code != errors.NameCollision {
			t.Fatalf("diags = %v, want one NAME_COLLISION", diags)
		}
		// the walk descends into pkg/ before reaching pkg.py, so the flat
		// file is discovered last and wins
		if got := modules.Get("pkg").Path; got != "pkg.py" {
			t.Errorf("pkg path = %q, want pkg.py", got)
		}
	})

	t.Run("oversized files are skipped", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "big.py", "# padding padding padding\n")
		writeFile(t, root, "small.py", "")

		cfg := config.DefaultConfig().Discovery
		cfg.MaxFileSizeBytes = 10
		s := NewScanner(root, cfg, testLogger())
		modules, _, err := s.Scan()
		if err != nil {
			t.Fatalf("Scan() error: %v", err)
		}
		if modules.Contains("big") {
			t.Error("oversized file was not skipped")
		}
		if !modules.Contains("small") {
			t.Error("small file missing")
		}
	})

	t.Run("file limit truncates discovery", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "a.py", "")
		writeFile(t, root, "b.py", "")
		writeFile(t, root, "c.py", "")

		cfg := config.DefaultConfig().Discovery
		cfg.MaxFiles = 2
		s := NewScanner(root, cfg, testLogger())
		modules, _, err := s.Scan()
		if err != nil {
			t.Fatalf("Scan() error: %v", err)
		}
		if modules.Len() != 2 {
			t.Errorf("Len() = %d, want 2", modules.Len())
		}
	})
}
