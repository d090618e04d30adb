package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"schedgantt/internal/chart"
	"schedgantt/internal/trace"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	// keep tests away from a schedgantt.yml in the working directory
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yml")}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

const trace1 = "Time slot 0\nCPU 0: Dispatched process 1\nTime slot 3\nCPU 0: Put process 1 to run queue\n"

func TestCSVFromStdin(t *testing.T) {
	out, _, err := execute(t, trace1, "--mode", "csv")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	want := "core,pid,start,end,duration\n0,1,0,3,3\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestPNGToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	traceFile := filepath.Join(t.TempDir(), "trace.txt")
	if err := os.WriteFile(traceFile, []byte(trace1), 0o644); err != nil {
		t.Fatalf("write trace: %v", err)
	}

	_, stderr, err := execute(t, "", "-o", path, "-v", traceFile)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read chart: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatalf("expected a png file")
	}
	if !strings.Contains(stderr, "Dispatch") || !strings.Contains(stderr, "wrote "+path) {
		t.Fatalf("expected verbose diagnostics, got:\n%s", stderr)
	}
}

func TestMalformedTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	_, _, err := execute(t, "Time slot 1\nCPU 0: Processed 1 has finished\n", "-o", path)
	if !errors.Is(err, trace.ErrMalformedTrace) {
		t.Fatalf("expected ErrMalformedTrace, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("no chart must be written for a malformed trace")
	}
}

func TestEmptyTracePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	_, _, err := execute(t, "", "-o", path)
	if !errors.Is(err, chart.ErrEmptyChart) {
		t.Fatalf("expected ErrEmptyChart, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("partial chart left behind")
	}
}

func TestCoresFlag(t *testing.T) {
	_, _, err := execute(t, "CPU 5: Dispatched process 1\n", "--mode", "table", "--cores", "8")
	if err != nil {
		t.Fatalf("expected nil error with 8 cores, got %v", err)
	}
	_, _, err = execute(t, "CPU 5: Dispatched process 1\n", "--mode", "table")
	if !errors.Is(err, trace.ErrMalformedTrace) {
		t.Fatalf("expected ErrMalformedTrace with 4 cores, got %v", err)
	}
	if _, _, err := execute(t, "", "--cores", "0"); err == nil {
		t.Fatalf("expected error for zero cores")
	}
}

func TestConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "schedgantt.yml")
	if err := os.WriteFile(cfgPath, []byte("mode: csv\ncores: 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(trace1))
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"-c", cfgPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "core,pid") {
		t.Fatalf("expected csv output, got %q", stdout.String())
	}
}

func TestUnknownMode(t *testing.T) {
	if _, _, err := execute(t, trace1, "--mode", "svg"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
