package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/modelviewer/pkg/buildinfo"
	"github.com/matzehuels/modelviewer/pkg/export"
)

var orderModel = filepath.Join("..", "..", "pkg", "model", "testdata", "OrderModel.uml")

// execute runs the root command with args and returns everything written to
// stdout and stderr.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"dot", "render", "serve", "inspect", "summary", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.Version != buildinfo.Version {
		t.Errorf("Version = %q, want %q", root.Version, buildinfo.Version)
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "modelviewer version "+buildinfo.Version) {
		t.Errorf("--version output = %q", out)
	}
}

func TestMissingConfigFile(t *testing.T) {
	if _, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), "dot", orderModel); err == nil {
		t.Error("expected error for explicit missing config")
	}
}

func TestDotCommand(t *testing.T) {
	out, err := execute(t, "dot", orderModel)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "graph OrderModel {\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestDotCommandToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.dot")
	out, err := execute(t, "dot", orderModel, "-o", path)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "graph OrderModel {") {
		t.Errorf("file content = %q", data)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output should name the file: %q", out)
	}
}

func TestDotCommandMissingModel(t *testing.T) {
	out, err := execute(t, "dot", filepath.Join(t.TempDir(), "gone.uml"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "graph") {
		t.Errorf("missing model should produce no document: %q", out)
	}
	if !strings.Contains(out, "not found") {
		t.Errorf("expected a warning, got %q", out)
	}
}

func TestRenderCommandDOTFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "order.dot")
	if _, err := execute(t, "render", orderModel, "-o", path, "--no-cache"); err != nil {
		t.Fatal(err)
	}
	rendered, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	direct, err := execute(t, "dot", orderModel)
	if err != nil {
		t.Fatal(err)
	}
	if string(rendered) != direct {
		t.Error("dot export should equal the generated document")
	}
}

func TestRenderCommandMissingModelWritesEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.svg")
	if _, err := execute(t, "render", filepath.Join(dir, "gone.uml"), "-o", path, "--no-cache"); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Errorf("size = %d, want 0", info.Size())
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"no output", []string{"render", orderModel}},
		{"bad format", []string{"render", orderModel, "-o", filepath.Join(dir, "x.out"), "-f", "bmp"}},
		{"bad engine", []string{"render", orderModel, "-o", filepath.Join(dir, "x.svg"), "--engine", "spring"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestResolveFormat(t *testing.T) {
	c := New(io.Discard, LogInfo)
	tests := []struct {
		flag, output string
		want         export.Format
	}{
		{"svg", "out.png", export.FormatSVG},
		{"", "out.jpg", export.FormatJPG},
		{"", "out.unknown", export.FormatPNG},
	}
	for _, tt := range tests {
		got, err := c.resolveFormat(tt.flag, tt.output)
		if err != nil {
			t.Fatalf("resolveFormat(%q, %q): %v", tt.flag, tt.output, err)
		}
		if got != tt.want {
			t.Errorf("resolveFormat(%q, %q) = %q, want %q", tt.flag, tt.output, got, tt.want)
		}
	}
}

func TestInspectPlain(t *testing.T) {
	out, err := execute(t, "inspect", orderModel)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"OrderModel (6 elements)", "Shop", "Order", "Customer", "Decimal"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryRaw(t *testing.T) {
	out, err := execute(t, "summary", orderModel, "--raw")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"# OrderModel",
		"**Elements:** 6",
		"| Class | 2 |",
		"| ownedAttribute | 2 |",
		"- **Shop** _Model_",
		"  - **Order** _Class_",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestCompletion(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "modelviewer") {
		t.Error("completion script should mention the binary")
	}
}
