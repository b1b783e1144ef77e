package export

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Placeholder returns the 1×1 transparent image shown when there is nothing
// to render.
func Placeholder() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 1, 1))
}

// IsPlaceholder reports whether img has the placeholder's dimensions.
func IsPlaceholder(img image.Image) bool {
	return img.Bounds().Dx() == 1 && img.Bounds().Dy() == 1
}

// Fit scales img down, preserving its aspect ratio, so that it fits within
// size. Non-positive components of size are unbounded. Images are never
// enlarged.
func Fit(img image.Image, size image.Point) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return img
	}

	scale := 1.0
	if size.X > 0 && size.X < w {
		scale = float64(size.X) / float64(w)
	}
	if size.Y > 0 && size.Y < h {
		scale = min(scale, float64(size.Y)/float64(h))
	}
	if scale >= 1 {
		return img
	}

	dw := max(1, int(float64(w)*scale+0.5))
	dh := max(1, int(float64(h)*scale+0.5))
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
