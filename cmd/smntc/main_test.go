package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_NoArgs(t *testing.T) {
	code, _, stderr := runCLI(t, "")
	if code != 2 {
		t.Errorf("exit = %d, want 2", code)
	}
	if !strings.Contains(stderr, "usage:") {
		t.Errorf("stderr missing usage: %q", stderr)
	}
}

func TestRun_Tokens(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "tokens")
	if code != 0 {
		t.Fatalf("exit = %d, want 0", code)
	}
	for _, want := range []string{"surface", "topographic", "chaotic", "shockwave", "segments=512", "arctic"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("tokens output missing %q", want)
		}
	}
}

func TestRun_Presets(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "presets")
	if code != 0 {
		t.Fatalf("exit = %d, want 0", code)
	}
	for _, want := range []string{"hero", "ambient", "arctic-only", "only arctic"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("presets output missing %q", want)
		}
	}
}

func TestRun_ResolveStdin(t *testing.T) {
	code, stdout, stderr := runCLI(t, `{"surface":"fluid","vibe":"chaotic","fidelity":"ultra"}`, "resolve", "-")
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, stderr)
	}
	for _, want := range []string{"segments", "512", "5", "0.4", "0.05"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("resolve output missing %q", want)
		}
	}
}

func TestRun_ResolveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte(`{"palette":"arctic"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	code, _, stderr := runCLI(t, "", "resolve", "-preset", "arctic-only", path)
	if code != 0 {
		t.Errorf("exit = %d, stderr = %q", code, stderr)
	}
}

func TestRun_ResolveErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		code  int
		want  string
	}{
		{"unknown token", `{"vibe":"chatoic"}`, []string{"resolve", "-"}, 1, `did you mean "chaotic"`},
		{"rejected by preset", `{"palette":"neon"}`, []string{"resolve", "-preset", "arctic-only", "-"}, 1, "does not allow"},
		{"unknown preset", `{}`, []string{"resolve", "-preset", "nope", "-"}, 1, "unknown preset"},
		{"unknown field", `{"colour":"red"}`, []string{"resolve", "-"}, 1, "unknown field"},
		{"missing file arg", ``, []string{"resolve"}, 2, "resolve takes one file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.stdin, tt.args...)
			if code != tt.code {
				t.Errorf("exit = %d, want %d", code, tt.code)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want substring %q", stderr, tt.want)
			}
		})
	}
}

func TestRun_Spring(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "spring", "0", "10")
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stdout, "settled at 10 ") {
		t.Errorf("spring output = %q, want settle at 10", stdout)
	}
}

func TestRun_SpringBadArgs(t *testing.T) {
	code, _, _ := runCLI(t, "", "spring", "x", "1")
	if code != 2 {
		t.Errorf("exit = %d, want 2", code)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, stderr := runCLI(t, "", "frobnicate")
	if code != 1 {
		t.Errorf("exit = %d, want 1", code)
	}
	if !strings.Contains(stderr, "unknown command") {
		t.Errorf("stderr = %q", stderr)
	}
}
