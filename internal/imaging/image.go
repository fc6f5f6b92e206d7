package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrInvalidImage marks malformed or empty pixel buffers.
var ErrInvalidImage = errors.New("invalid image")

// Image is a decoded 8-bit image with interleaved channels, stored row-major
// (height x width x channels). Channels is 1 (gray), 2 (gray+alpha), 3 (RGB)
// or 4 (RGBA, non-premultiplied).
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// Validate checks that the buffer is non-empty and consistent with its
// declared dimensions.
func (im Image) Validate() error {
	if im.Width <= 0 || im.Height <= 0 {
		return fmt.Errorf("%w: zero-area image %dx%d", ErrInvalidImage, im.Width, im.Height)
	}
	if im.Channels < 1 || im.Channels > 4 {
		return fmt.Errorf("%w: unsupported channel count %d", ErrInvalidImage, im.Channels)
	}
	if want := im.Width * im.Height * im.Channels; len(im.Pix) != want {
		return fmt.Errorf("%w: pixel buffer has %d bytes, want %d", ErrInvalidImage, len(im.Pix), want)
	}
	return nil
}

// FromImage copies a decoded standard library image into an Image.
// Grayscale sources keep one channel, opaque color models (JPEG's YCbCr,
// CMYK) produce three, everything else produces RGBA.
func FromImage(src image.Image) Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	switch s := src.(type) {
	case *image.Gray:
		out := Image{Width: w, Height: h, Channels: 1, Pix: make([]uint8, w*h)}
		for y := 0; y < h; y++ {
			off := s.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*w:(y+1)*w], s.Pix[off:off+w])
		}
		return out
	case *image.Gray16:
		out := Image{Width: w, Height: h, Channels: 1, Pix: make([]uint8, w*h)}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Pix[y*w+x] = uint8(s.Gray16At(b.Min.X+x, b.Min.Y+y).Y >> 8)
			}
		}
		return out
	case *image.YCbCr, *image.CMYK:
		out := Image{Width: w, Height: h, Channels: 3, Pix: make([]uint8, w*h*3)}
		i := 0
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.RGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
				out.Pix[i], out.Pix[i+1], out.Pix[i+2] = c.R, c.G, c.B
				i += 3
			}
		}
		return out
	}
	out := Image{Width: w, Height: h, Channels: 4, Pix: make([]uint8, w*h*4)}
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = c.R, c.G, c.B, c.A
			i += 4
		}
	}
	return out
}

// Crop returns the part of im inside the rectangle (x, y, width, height),
// clipped to the image bounds. An empty intersection is an ErrInvalidImage.
func Crop(im Image, x, y, width, height int) (Image, error) {
	if err := im.Validate(); err != nil {
		return Image{}, err
	}
	r := image.Rect(x, y, x+width, y+height).Intersect(image.Rect(0, 0, im.Width, im.Height))
	if r.Empty() {
		return Image{}, fmt.Errorf("%w: empty crop region (%d,%d %dx%d)", ErrInvalidImage, x, y, width, height)
	}
	out := Image{Width: r.Dx(), Height: r.Dy(), Channels: im.Channels}
	out.Pix = make([]uint8, out.Width*out.Height*out.Channels)
	rowLen := out.Width * im.Channels
	for row := 0; row < out.Height; row++ {
		src := ((r.Min.Y+row)*im.Width + r.Min.X) * im.Channels
		copy(out.Pix[row*rowLen:(row+1)*rowLen], im.Pix[src:src+rowLen])
	}
	return out, nil
}
