package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
)

var orderModel = filepath.Join("..", "..", "pkg", "model", "testdata", "OrderModel.uml")

func TestRunVerbose(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantDebug bool
	}{
		{"default level", []string{"dot", orderModel}, false},
		{"short flag", []string{"-v", "dot", orderModel}, true},
		{"long flag after command", []string{"dot", orderModel, "--verbose"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", t.TempDir())
			var stdout, stderr bytes.Buffer
			if err := run(context.Background(), tt.args, &stdout, &stderr); err != nil {
				t.Fatalf("run: %v", err)
			}
			if !strings.HasPrefix(stdout.String(), "graph ") {
				t.Errorf("stdout should hold the DOT document, got %q", stdout.String())
			}

			logs := stderr.String()
			gotDebug := strings.Contains(logs, "DEBU") && strings.Contains(logs, "generated")
			if gotDebug != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v; stderr:\n%s", gotDebug, tt.wantDebug, logs)
			}
		})
	}
}

func TestRunVerboseMissingModel(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	missing := filepath.Join(t.TempDir(), "Gone.uml")

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-v", "dot", missing}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("missing model should print nothing, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "model not found") {
		t.Errorf("expected debug line for missing model, stderr:\n%s", stderr.String())
	}
}
