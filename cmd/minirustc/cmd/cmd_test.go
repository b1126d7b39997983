package cmd

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/birukG09/MiniRust-Compiler/internal/diag"
	"github.com/birukG09/MiniRust-Compiler/internal/token"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read captured stdout: %v", err)
	}
	return string(out)
}

func TestEmitJSONPlain(t *testing.T) {
	queryPath, patchOps = "", nil
	out := captureStdout(t, func() {
		if err := emitJSON(map[string]any{"success": true}); err != nil {
			t.Fatalf("emitJSON error: %v", err)
		}
	})
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, out)
	}
	if decoded["success"] != true {
		t.Errorf("got %v, want success=true", decoded)
	}
}

func TestEmitJSONWithPatchAndQuery(t *testing.T) {
	defer func() { queryPath, patchOps = "", nil }()
	patchOps = []string{"stage=ir"}
	queryPath = "stage"

	out := captureStdout(t, func() {
		if err := emitJSON(map[string]any{"success": true}); err != nil {
			t.Fatalf("emitJSON error: %v", err)
		}
	})
	if strings.TrimSpace(out) != "ir" {
		t.Errorf("got %q, want %q", strings.TrimSpace(out), "ir")
	}
}

func TestEmitJSONInvalidPatch(t *testing.T) {
	defer func() { queryPath, patchOps = "", nil }()
	patchOps = []string{"no-equals-sign"}
	queryPath = ""

	err := emitJSON(map[string]any{"success": true})
	if err == nil {
		t.Fatal("expected an error for a malformed --patch operand")
	}
}

func TestFormatTokenDefaultOmitsTypeAndPos(t *testing.T) {
	defer func() { lexShowType, lexShowPos = false, false }()
	lexShowType, lexShowPos = false, false
	tok := token.Token{Kind: token.IDENTIFIER, Lexeme: "x", Line: 1, Column: 5}
	got := formatToken(tok)
	if got != "\"x\"\n" {
		t.Errorf("got %q, want %q", got, "\"x\"\n")
	}
}

func TestFormatTokenShowTypeAndPos(t *testing.T) {
	defer func() { lexShowType, lexShowPos = false, false }()
	lexShowType, lexShowPos = true, true
	tok := token.Token{Kind: token.IDENTIFIER, Lexeme: "x", Line: 1, Column: 5}
	got := formatToken(tok)
	if !strings.Contains(got, "IDENTIFIER") || !strings.Contains(got, "@1:5") || !strings.Contains(got, `"x"`) {
		t.Errorf("got %q, want it to contain kind, lexeme, and position", got)
	}
}

func TestLoadConfigDefaultsWithoutConfigFlag(t *testing.T) {
	defer func() { configPath = "" }()
	configPath = ""
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != defaultConfig {
		t.Errorf("got %+v, want defaults %+v", cfg, defaultConfig)
	}
}

func TestLoadConfigFromYAMLFile(t *testing.T) {
	defer func() { configPath = "" }()
	f, err := os.CreateTemp(t.TempDir(), "minirustc-config-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp config: %v", err)
	}
	if _, err := f.WriteString("checkOwnership: false\noptimize: true\ncolor: false\n"); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	f.Close()

	configPath = f.Name()
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CheckOwnership || !cfg.Optimize || cfg.Color {
		t.Errorf("got %+v, want {false true false}", cfg)
	}
}

func TestLoadConfigMissingFileErrors(t *testing.T) {
	defer func() { configPath = "" }()
	configPath = "/nonexistent/minirustc-config.yaml"
	if _, err := loadConfig(); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestReadSourcePrefersEvalExpression(t *testing.T) {
	source, label, err := readSource("fn main() {}", []string{"ignored.rs"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != "fn main() {}" || label != "<eval>" {
		t.Errorf("got (%q, %q), want (%q, %q)", source, label, "fn main() {}", "<eval>")
	}
}

func TestReadSourceFromFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "minirustc-src-*.rs")
	if err != nil {
		t.Fatalf("failed to create temp source: %v", err)
	}
	if _, err := f.WriteString("fn main() {}"); err != nil {
		t.Fatalf("failed to write temp source: %v", err)
	}
	f.Close()

	source, label, err := readSource("", []string{f.Name()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != "fn main() {}" || label != f.Name() {
		t.Errorf("got (%q, %q), want (%q, %q)", source, label, "fn main() {}", f.Name())
	}
}

func TestReadSourceMissingFileErrors(t *testing.T) {
	if _, _, err := readSource("", []string{"/nonexistent/source.rs"}); err == nil {
		t.Error("expected an error for a missing source file")
	}
}

func TestReportDiagnosticsNoneFound(t *testing.T) {
	out := captureStdout(t, func() {
		if err := reportDiagnostics(nil, "", false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
	if strings.TrimSpace(out) != "no diagnostics" {
		t.Errorf("got %q, want %q", strings.TrimSpace(out), "no diagnostics")
	}
}

func TestReportDiagnosticsFatalReturnsError(t *testing.T) {
	fatal := diag.New(diag.SemanticError, "Undefined variable: 'x'", 1, 1)
	err := captureStdoutAndErr(t, func() error {
		return reportDiagnostics([]diag.Diagnostic{fatal}, "", false)
	})
	if err == nil {
		t.Error("expected an error when a fatal diagnostic is present")
	}
}

func captureStdoutAndErr(t *testing.T, fn func() error) error {
	t.Helper()
	var got error
	captureStdout(t, func() { got = fn() })
	return got
}
