// Package render turns an image's PersonSet into an annotated overlay
// bitmap: a stroked circle per labeled keypoint in its catalog color,
// tagged with the catalog short label and the person index ("CH-0").
// It is the non-interactive half of the rendering boundary; widget
// wiring stays outside the module.
package render

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/golflab/poselabel/pkg/keypoint"
	"github.com/golflab/poselabel/pkg/label"
)

// Config holds overlay drawing parameters.
type Config struct {
	// Radius is the keypoint circle radius in pixels.
	Radius int
	// StrokeWidth is the circle stroke width in pixels.
	StrokeWidth int
	// Quality is the JPEG/WebP encode quality (1-100).
	Quality int
	// Lossless enables lossless WebP encoding.
	Lossless bool
}

// DefaultConfig returns the drawing defaults.
func DefaultConfig() Config {
	return Config{
		Radius:      10,
		StrokeWidth: 3,
		Quality:     92,
	}
}

// Renderer draws annotation overlays.
type Renderer struct {
	config Config
}

// New creates a renderer with default configuration.
func New() *Renderer {
	return &Renderer{config: DefaultConfig()}
}

// NewWithConfig creates a renderer with custom configuration.
func NewWithConfig(config Config) *Renderer {
	return &Renderer{config: config}
}

// LoadImage loads an image from path. The bmp decoder is registered so
// every working-list extension decodes.
func (r *Renderer) LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return img, nil
}

// Annotate draws every labeled keypoint of every person in the set
// over a copy of img and returns the overlay. The input image is not
// modified.
func (r *Renderer) Annotate(img image.Image, persons *label.PersonSet) *image.NRGBA {
	canvas := imaging.Clone(img)
	for i, person := range persons.Persons() {
		for _, item := range person.Items() {
			ci, ok := keypoint.CatalogIndex(item.Name)
			if !ok {
				continue
			}
			entry := keypoint.Catalog[ci]
			drawCircle(canvas, item.Pos.X, item.Pos.Y, r.config.Radius, r.config.StrokeWidth, entry.Color)
			tag := fmt.Sprintf("%s-%d", entry.Short, i)
			drawText(canvas, item.Pos.X+r.config.Radius, item.Pos.Y+r.config.Radius/2, tag, entry.Color)
		}
	}
	return canvas
}

// SaveImage writes an overlay to path in the given format (png, jpg or
// webp).
func (r *Renderer) SaveImage(img image.Image, path, format string) error {
	switch strings.ToLower(format) {
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		opts := &webp.Options{Lossless: r.config.Lossless, Quality: float32(r.config.Quality)}
		return webp.Encode(f, img, opts)
	case "png":
		return imaging.Save(img, path)
	default: // jpg/jpeg
		return imaging.Save(img, path, imaging.JPEGQuality(r.config.Quality))
	}
}

// drawCircle strokes a circle of the given radius centered at (cx, cy).
// Pixels outside the canvas are skipped, so out-of-image keypoints
// degrade to partial circles instead of faulting.
func drawCircle(img *image.NRGBA, cx, cy, radius, strokeWidth int, col color.NRGBA) {
	outer := radius + (strokeWidth+1)/2
	inner := radius - strokeWidth/2
	bounds := img.Bounds()
	for dy := -outer; dy <= outer; dy++ {
		for dx := -outer; dx <= outer; dx++ {
			d2 := dx*dx + dy*dy
			if d2 > outer*outer || d2 < inner*inner {
				continue
			}
			x, y := cx+dx, cy+dy
			if image.Pt(x, y).In(bounds) {
				img.SetNRGBA(x, y, col)
			}
		}
	}
}

// drawText renders tag at (x, y) using the built-in 7x13 face.
func drawText(img *image.NRGBA, x, y int, tag string, col color.NRGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(tag)
}
