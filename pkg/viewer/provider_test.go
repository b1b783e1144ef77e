package viewer

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/modelviewer/pkg/export"
)

type fakeGenerator struct {
	dot   []byte
	err   error
	calls []string
}

func (f *fakeGenerator) GenerateDOT(_ context.Context, location string) ([]byte, error) {
	f.calls = append(f.calls, location)
	return f.dot, f.err
}

type fileCall struct {
	dot    []byte
	path   string
	format export.Format
}

type fakeBridge struct {
	imageCalls int
	lastSize   image.Point
	fileCalls  []fileCall
}

func (f *fakeBridge) RenderImage(_ context.Context, dot []byte, size image.Point) (image.Image, error) {
	f.imageCalls++
	f.lastSize = size
	return image.NewRGBA(image.Rect(0, 0, 40, 30)), nil
}

func (f *fakeBridge) RenderFile(_ context.Context, dot []byte, path string, format export.Format) error {
	f.fileCalls = append(f.fileCalls, fileCall{dot, path, format})
	return nil
}

func TestLoadImageEmptyInput(t *testing.T) {
	gen, bridge := &fakeGenerator{dot: []byte("graph x {}")}, &fakeBridge{}
	p := NewContentProvider(gen, bridge)

	img, err := p.LoadImage(context.Background(), image.Pt(100, 100), "")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1, 1), img.Bounds())
	assert.Empty(t, gen.calls, "no load for empty input")
	assert.Zero(t, bridge.imageCalls)
}

func TestLoadImageAbsentModel(t *testing.T) {
	gen, bridge := &fakeGenerator{}, &fakeBridge{}
	img, err := NewContentProvider(gen, bridge).LoadImage(context.Background(), image.Pt(10, 10), "gone.uml")
	require.NoError(t, err)
	assert.True(t, export.IsPlaceholder(img))
	assert.Equal(t, []string{"gone.uml"}, gen.calls)
	assert.Zero(t, bridge.imageCalls)
}

func TestLoadImage(t *testing.T) {
	gen, bridge := &fakeGenerator{dot: []byte("graph x {}")}, &fakeBridge{}
	img, err := NewContentProvider(gen, bridge).LoadImage(context.Background(), image.Pt(640, 480), "x.uml")
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 1, bridge.imageCalls)
	assert.Equal(t, image.Pt(640, 480), bridge.lastSize)
}

func TestLoadImageRenderError(t *testing.T) {
	boom := errors.New("boom")
	gen, bridge := &fakeGenerator{err: boom}, &fakeBridge{}
	img, err := NewContentProvider(gen, bridge).LoadImage(context.Background(), image.Point{}, "x.uml")
	assert.Nil(t, img)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, bridge.imageCalls)
}

func TestSaveImageAbsentModelPassesEmptyDOT(t *testing.T) {
	gen, bridge := &fakeGenerator{}, &fakeBridge{}
	err := NewContentProvider(gen, bridge).SaveImage(context.Background(), image.Pt(1, 1), "gone.uml", "out.png", export.FormatPNG)
	require.NoError(t, err)

	require.Len(t, bridge.fileCalls, 1, "bridge is called even without content")
	call := bridge.fileCalls[0]
	assert.NotNil(t, call.dot)
	assert.Empty(t, call.dot)
	assert.Equal(t, "out.png", call.path)
	assert.Equal(t, export.FormatPNG, call.format)
}

func TestSaveImageRenderError(t *testing.T) {
	gen, bridge := &fakeGenerator{err: errors.New("malformed")}, &fakeBridge{}
	err := NewContentProvider(gen, bridge).SaveImage(context.Background(), image.Point{}, "x.uml", "out.svg", export.FormatSVG)
	assert.Error(t, err)
	assert.Empty(t, bridge.fileCalls)
}

func TestSaveImageWithGraphviz(t *testing.T) {
	dir := t.TempDir()
	gen := NewGenerator(WithLogger(log.New(&strings.Builder{})))
	p := NewContentProvider(gen, export.NewGraphvizBridge())
	ctx := context.Background()

	out := filepath.Join(dir, "OrderModel.svg")
	require.NoError(t, p.SaveImage(ctx, image.Pt(800, 600), "../model/testdata/OrderModel.uml", out, export.FormatSVG))
	svg, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "Order")

	missing := filepath.Join(dir, "Missing.png")
	require.NoError(t, p.SaveImage(ctx, image.Pt(800, 600), filepath.Join(dir, "Missing.uml"), missing, export.FormatPNG))
	info, err := os.Stat(missing)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	img, err := p.LoadImage(ctx, image.Pt(200, 200), "../model/testdata/OrderModel.uml")
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), 200)
	assert.LessOrEqual(t, img.Bounds().Dy(), 200)
	assert.False(t, export.IsPlaceholder(img))
}
