package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWatcherReportsSettledFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{dir}, func(p string) bool { return strings.HasSuffix(p, ".png") })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.Settle = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan string, 4)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func(p string) { got <- p }) }()

	for _, name := range []string{"notes.txt", ".partial.png", "scan.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	select {
	case p := <-got:
		if p != filepath.Join(dir, "scan.png") {
			t.Fatalf("got %s", p)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no event for scan.png")
	}

	select {
	case p := <-got:
		t.Fatalf("unexpected extra path %s", p)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}

func TestNewRejectsMissingDir(t *testing.T) {
	if _, err := New([]string{filepath.Join(t.TempDir(), "missing")}, nil); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
