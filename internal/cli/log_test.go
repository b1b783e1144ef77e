package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// executeLogged runs the root command of c with args, returning stdout and
// the CLI logger's output.
func executeLogged(t *testing.T, c *CLI, logs *bytes.Buffer, args ...string) (string, string) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return out.String(), logs.String()
}

func TestDotOutputLogsProgress(t *testing.T) {
	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	dest := filepath.Join(t.TempDir(), "order.dot")

	out, logged := executeLogged(t, c, &logs, "dot", orderModel, "-o", dest)

	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if !strings.Contains(out, dest) {
		t.Errorf("stdout should name the written file, got %q", out)
	}
	// 15:04:05.00 INFO Generated DOT (3ms)
	line := regexp.MustCompile(`(?m)^\d{2}:\d{2}:\d{2}\.\d{2} INFO Generated DOT \(\S+s\)$`)
	if !line.MatchString(logged) {
		t.Errorf("progress line missing from log:\n%s", logged)
	}
	if strings.Contains(logged, "DEBU") {
		t.Errorf("debug lines logged at info level:\n%s", logged)
	}
}

func TestDotStdoutKeepsLogQuiet(t *testing.T) {
	var logs bytes.Buffer
	c := New(&logs, LogInfo)

	out, logged := executeLogged(t, c, &logs, "dot", orderModel)

	if !strings.HasPrefix(out, "graph OrderModel {") {
		t.Errorf("stdout should hold the document, got %q", out)
	}
	if logged != "" {
		t.Errorf("nothing should be logged when printing to stdout, got:\n%s", logged)
	}
}

func TestSetLogLevelReachesGenerator(t *testing.T) {
	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.SetLogLevel(LogDebug)

	_, logged := executeLogged(t, c, &logs, "dot", orderModel)

	for _, want := range []string{"DEBU", "modelviewer: generated", "location=", "elements="} {
		if !strings.Contains(logged, want) {
			t.Errorf("log missing %q:\n%s", want, logged)
		}
	}
}

func TestPreRunAttachesLogger(t *testing.T) {
	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()

	var got *log.Logger
	root.AddCommand(&cobra.Command{
		Use: "whoami",
		RunE: func(cmd *cobra.Command, args []string) error {
			got = loggerFromContext(cmd.Context())
			newProgress(got).done("Checked")
			return nil
		},
	})
	root.SetArgs([]string{"whoami"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if got != c.Logger {
		t.Error("commands should log through the CLI logger")
	}
	if !strings.Contains(logs.String(), "INFO Checked (") {
		t.Errorf("progress should reach the CLI writer, got:\n%s", logs.String())
	}
}

func TestLoggerFromContextOutsideCommand(t *testing.T) {
	if l := loggerFromContext(context.Background()); l != log.Default() {
		t.Error("a bare context should fall back to the default logger")
	}
}
