package updater

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

type fakeRunner struct {
	out   []byte
	err   error
	calls int
	name  string
	args  []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls++
	f.name = name
	f.args = args
	return f.out, f.err
}

func TestCommandSource_RawVersion(t *testing.T) {
	runner := &fakeRunner{out: []byte(sampleLocal)}
	src := NewCommandSource("nvim", "--version", runner)

	text, err := src.RawVersion(context.Background())
	if err != nil {
		t.Fatalf("RawVersion failed: %v", err)
	}
	if text != sampleLocal {
		t.Errorf("output mismatch")
	}
	if runner.name != "nvim" || len(runner.args) != 1 || runner.args[0] != "--version" {
		t.Errorf("ran %s %v, want nvim [--version]", runner.name, runner.args)
	}
}

func TestCommandSource_InvocationError(t *testing.T) {
	src := NewCommandSource("nvim", "--version", &fakeRunner{err: exec.ErrNotFound})
	_, err := src.RawVersion(context.Background())
	if !errors.Is(err, ErrProcessInvocation) {
		t.Fatalf("expected ErrProcessInvocation, got %v", err)
	}
	if errors.Is(err, ErrTextDecoding) {
		t.Error("invocation error must not be reported as a decoding error")
	}
}

func TestCommandSource_DecodingError(t *testing.T) {
	src := NewCommandSource("nvim", "--version", &fakeRunner{out: []byte{0xc3, 0x28}})
	_, err := src.RawVersion(context.Background())
	if !errors.Is(err, ErrTextDecoding) {
		t.Fatalf("expected ErrTextDecoding, got %v", err)
	}
	if errors.Is(err, ErrProcessInvocation) {
		t.Error("decoding error must not be reported as an invocation error")
	}
}

func TestExecRunner_MissingBinary(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	src := NewCommandSource(missing, "--version", nil)
	_, err := src.RawVersion(context.Background())
	if !errors.Is(err, ErrProcessInvocation) {
		t.Fatalf("expected ErrProcessInvocation, got %v", err)
	}
}

func TestExecRunner_Script(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script test")
	}
	bin := filepath.Join(t.TempDir(), "nvim")
	script := "#!/bin/sh\necho 'NVIM v0.9.0-dev-1-gabc123def'\n"
	if err := os.WriteFile(bin, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	text, err := NewCommandSource(bin, "--version", nil).RawVersion(context.Background())
	if err != nil {
		t.Fatalf("RawVersion failed: %v", err)
	}
	if text != "NVIM v0.9.0-dev-1-gabc123def\n" {
		t.Errorf("output = %q", text)
	}
}
