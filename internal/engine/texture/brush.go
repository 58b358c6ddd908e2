// Package texture loads brush textures and samples them as intensity maps.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/chewxy/math32"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"

	"github.com/Faultbox/midgard-sculpt/pkg/math"
)

// Source is anything that can be sampled in texture space.
type Source interface {
	Sample2D(u, v float32) float32
}

// Brush is a grayscale intensity map in [0, 1], row-major, top row first.
type Brush struct {
	W, H int
	Pix  []float32
}

// Load reads and decodes a brush texture file.
func Load(path string) (*Brush, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	b, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return b, nil
}

// TGA has no magic number, so it is tried last.
var (
	magicPNG  = []byte("\x89PNG\r\n\x1a\n")
	magicJPEG = []byte{0xff, 0xd8}
	magicBMP  = []byte("BM")
)

// Decode decodes a PNG, JPEG, BMP or TGA image.
func Decode(r io.Reader) (*Brush, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var img image.Image
	rd := bytes.NewReader(raw)
	switch {
	case bytes.HasPrefix(raw, magicPNG):
		img, err = png.Decode(rd)
	case bytes.HasPrefix(raw, magicJPEG):
		img, err = jpeg.Decode(rd)
	case bytes.HasPrefix(raw, magicBMP):
		img, err = bmp.Decode(rd)
	default:
		img, err = tga.Decode(rd)
	}
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

// FromImage converts an image to intensity: luminance scaled by alpha.
func FromImage(img image.Image) *Brush {
	bounds := img.Bounds()
	b := &Brush{W: bounds.Dx(), H: bounds.Dy()}
	b.Pix = make([]float32, b.W*b.H)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			lum := (299*float32(c.R) + 587*float32(c.G) + 114*float32(c.B)) / (1000 * 255)
			b.Pix[(y-bounds.Min.Y)*b.W+(x-bounds.Min.X)] = lum * float32(c.A) / 255
		}
	}
	return b
}

// Bake renders src over [0,1)^2 into a size x size buffer.
func Bake(src Source, size int) *Brush {
	b := &Brush{W: size, H: size, Pix: make([]float32, size*size)}
	for y := range size {
		v := (float32(y) + 0.5) / float32(size)
		for x := range size {
			u := (float32(x) + 0.5) / float32(size)
			b.Pix[y*size+x] = min(max(src.Sample2D(u, v), 0), 1)
		}
	}
	return b
}

// Sample2D performs bilinear filtering with UV wrapping.
// Texel centers sit at (i+0.5)/W so a baked buffer reproduces its source.
func (b *Brush) Sample2D(u, v float32) float32 {
	if b == nil || b.W == 0 || b.H == 0 {
		return 1
	}

	// Wrap UVs
	u -= math32.Floor(u)
	v -= math32.Floor(v)

	fx := u*float32(b.W) - 0.5
	fy := v*float32(b.H) - 0.5
	x0f := math32.Floor(fx)
	y0f := math32.Floor(fy)
	dx := fx - x0f
	dy := fy - y0f
	x0 := wrap(int(x0f), b.W)
	y0 := wrap(int(y0f), b.H)
	x1 := (x0 + 1) % b.W
	y1 := (y0 + 1) % b.H

	p00 := b.Pix[y0*b.W+x0]
	p10 := b.Pix[y0*b.W+x1]
	p01 := b.Pix[y1*b.W+x0]
	p11 := b.Pix[y1*b.W+x1]

	return p00*(1-dx)*(1-dy) + p10*dx*(1-dy) + p01*(1-dx)*dy + p11*dx*dy
}

// Sample3D samples a point by projecting it onto the XY plane, one
// texture repeat per unit. Z is ignored.
func (b *Brush) Sample3D(p math.Vec3) float32 {
	return b.Sample2D(p.X, p.Y)
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
