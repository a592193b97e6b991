package executor

import (
	"context"
	"os/exec"
	"strings"
	"testing"
)

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

func TestExecute(t *testing.T) {
	requireTool(t, "echo")

	out, err := New().Execute(context.Background(), "echo", "hello", "lecture")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "hello lecture" {
		t.Errorf("Execute() = %q", out)
	}
}

func TestExecuteInDir(t *testing.T) {
	requireTool(t, "pwd")
	dir := t.TempDir()

	out, err := New().ExecuteInDir(context.Background(), dir, "pwd")
	if err != nil {
		t.Fatalf("ExecuteInDir() error = %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), strings.TrimPrefix(dir, "/private")) {
		t.Errorf("ExecuteInDir() ran in %q, want %q", out, dir)
	}
}

func TestExecuteFailureIncludesStderr(t *testing.T) {
	requireTool(t, "sh")

	_, err := New().Execute(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error should carry stderr, got %v", err)
	}
}
