// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleJSON = `{"a":1,"b":[2,3]}`

// runCLI executes the root command with args, reading stdin, and returns
// what the command wrote to its output.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	c := New(io.Discard, LogDebug)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPrint(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		want  string
	}{
		{"Default", sampleJSON, nil, `
▾ root: Object (2)
    a: 1
  ▸ b: Array (2)
`},
		{"All", sampleJSON, []string{"--all"}, `
▾ root: Object (2)
    a: 1
  ▾ b: Array (2)
      [0]: 2
      [1]: 3
`},
		{"DepthZero", sampleJSON, []string{"--depth", "0"}, `
▸ root: Object (2)
`},
		{"Expand", sampleJSON, []string{"--depth", "0", "--expand", "$.b"}, `
▾ root: Object (2)
    a: 1
  ▾ b: Array (2)
      [0]: 2
      [1]: 3
`},
		{"Indent", sampleJSON, []string{"--indent", "4"}, `
▾ root: Object (2)
      a: 1
    ▸ b: Array (2)
`},
		{"Select", sampleJSON, []string{"--select", "b"}, `
▾ root: Array (2)
    [0]: 2
    [1]: 3
`},
		{"JWCC", `{"a":1, /* note */ "b":[2,3,],}`, []string{"--jwcc"}, `
▾ root: Object (2)
    a: 1
  ▸ b: Array (2)
`},
		{"SelectJWCC", "{\"b\": [2, 3], // note\n}", []string{"--jwcc", "--select", "b"}, `
▾ root: Array (2)
    [0]: 2
    [1]: 3
`},
		{"Scalar", `"hello"`, nil, `
  root: "hello"
`},
		{"Empty", "  \n", nil, `
Empty JSON string
`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			args := append([]string{"print", "--color", "never"}, test.args...)
			got, err := runCLI(t, test.input, args...)
			if err != nil {
				t.Fatalf("print: unexpected error: %v", err)
			}
			if diff := cmp.Diff(strings.TrimPrefix(test.want, "\n"), got); diff != "" {
				t.Errorf("Output (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestPrintFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	if err := os.WriteFile(path, []byte(`[true]`), 0600); err != nil {
		t.Fatal(err)
	}
	got, err := runCLI(t, "", "print", "--color", "never", path)
	if err != nil {
		t.Fatalf("print: unexpected error: %v", err)
	}
	if want := "▾ root: Array (1)\n    [0]: true\n"; got != want {
		t.Errorf("Output: got %q, want %q", got, want)
	}
}

func TestPrintConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("indent: 1\nexpand_depth: -1\ncolor: never\n"), 0600); err != nil {
		t.Fatal(err)
	}
	got, err := runCLI(t, `{"x":[null]}`, "--config", path, "print")
	if err != nil {
		t.Fatalf("print: unexpected error: %v", err)
	}
	want := "▾ root: Object (1)\n ▾ x: Array (1)\n    [0]: null\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Output (-want, +got):\n%s", diff)
	}
}

func TestPrintErrors(t *testing.T) {
	t.Run("Malformed", func(t *testing.T) {
		got, err := runCLI(t, `{bad`, "print", "--color", "never")
		if !errors.Is(err, ErrInputRejected) {
			t.Errorf("print: got error %v, want %v", err, ErrInputRejected)
		}
		if !strings.HasPrefix(got, "Invalid JSON: ") {
			t.Errorf("Output: got %q, want invalid JSON message", got)
		}
	})
	t.Run("SelectMalformed", func(t *testing.T) {
		for _, input := range []string{`{"a":{"b":1}, oops`, `{"a":[1,2] "x"`} {
			got, err := runCLI(t, input, "print", "--all", "--color", "never", "--select", "a")
			if !errors.Is(err, ErrInputRejected) {
				t.Errorf("print %q: got error %v, want %v", input, err, ErrInputRejected)
			}
			if !strings.HasPrefix(got, "Invalid JSON: ") {
				t.Errorf("Output %q: got %q, want invalid JSON message", input, got)
			}
		}
	})
	t.Run("SelectEmpty", func(t *testing.T) {
		got, err := runCLI(t, "  \n", "print", "--color", "never", "--select", "a")
		if err != nil {
			t.Errorf("print: unexpected error: %v", err)
		}
		if got != "Empty JSON string\n" {
			t.Errorf("Output: got %q, want empty notice", got)
		}
	})
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"BadColor", []string{"--color", "plaid"}, "invalid --color"},
		{"BadExpand", []string{"--expand", "$[?(@.a)]"}, "--expand"},
		{"NoSelection", []string{"--select", "nonesuch"}, "no matching value"},
		{"NoFile", []string{"/does/not/exist.json"}, "read input"},
		{"ExtraArgs", []string{"a", "b"}, "accepts at most 1 arg"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := runCLI(t, sampleJSON, append([]string{"print"}, test.args...)...)
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Errorf("print: got error %v, want %q", err, test.want)
			}
		})
	}
}

func TestConfigError(t *testing.T) {
	_, err := runCLI(t, sampleJSON, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "print")
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Errorf("print: got error %v, want config error", err)
	}
}

func TestHTML(t *testing.T) {
	t.Run("Fragment", func(t *testing.T) {
		got, err := runCLI(t, sampleJSON, "html")
		if err != nil {
			t.Fatalf("html: unexpected error: %v", err)
		}
		if n := strings.Count(got, `<div class="json-node"`); n != 3 {
			t.Errorf("Output has %d nodes, want 3:\n%s", n, got)
		}
		if strings.Contains(got, "<html") {
			t.Errorf("Output is a page, want a fragment:\n%s", got)
		}
	})
	t.Run("Page", func(t *testing.T) {
		got, err := runCLI(t, sampleJSON, "html", "--page", "--title", "Sample", "--all")
		if err != nil {
			t.Fatalf("html: unexpected error: %v", err)
		}
		for _, want := range []string{"<!DOCTYPE html>", "<title>Sample</title>", `class="json-tree-viewer"`} {
			if !strings.Contains(got, want) {
				t.Errorf("Output is missing %q:\n%s", want, got)
			}
		}
		if n := strings.Count(got, `<div class="json-node"`); n != 5 {
			t.Errorf("Output has %d nodes, want 5", n)
		}
	})
	t.Run("OutputFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.html")
		got, err := runCLI(t, sampleJSON, "html", "-o", path)
		if err != nil {
			t.Fatalf("html: unexpected error: %v", err)
		}
		if got != "" {
			t.Errorf("Stdout: got %q, want empty", got)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Read output: %v", err)
		}
		if !strings.Contains(string(data), `<span class="json-key">root</span>`) {
			t.Errorf("Output file is missing the root node:\n%s", data)
		}
	})
	t.Run("Empty", func(t *testing.T) {
		got, err := runCLI(t, "", "html")
		if err != nil {
			t.Fatalf("html: unexpected error: %v", err)
		}
		if want := `<div class="text-muted">Empty JSON string</div>` + "\n"; got != want {
			t.Errorf("Output: got %q, want %q", got, want)
		}
	})
	t.Run("Malformed", func(t *testing.T) {
		got, err := runCLI(t, "[1,", "html")
		if !errors.Is(err, ErrInputRejected) {
			t.Errorf("html: got error %v, want %v", err, ErrInputRejected)
		}
		if !strings.HasPrefix(got, `<div class="text-danger">Invalid JSON: `) {
			t.Errorf("Output: got %q, want invalid JSON message", got)
		}
	})
}
