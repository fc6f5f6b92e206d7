package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/nfnt/resize"
)

// ErrUnsupportedShape is returned when a target shape cannot be produced.
var ErrUnsupportedShape = errors.New("unsupported target shape")

// Normalize converts im into a tensor of exactly target's shape with every
// value in [0, 1].
func Normalize(im Image, target Shape) (Tensor, error) {
	if err := im.Validate(); err != nil {
		return Tensor{}, err
	}
	if target.Height <= 0 || target.Width <= 0 {
		return Tensor{}, fmt.Errorf("%w: %s", ErrUnsupportedShape, target)
	}
	src, err := adaptChannels(im, target.Channels)
	if err != nil {
		return Tensor{}, err
	}
	if im.Width != target.Width || im.Height != target.Height {
		src = resize.Resize(uint(target.Width), uint(target.Height), src, resize.Bilinear)
	}
	return scale(src, target)
}

// adaptChannels maps im onto a gray (1) or RGB (3) working image. Alpha is
// dropped, gray is replicated and color is reduced to BT.601 luma.
func adaptChannels(im Image, channels int) (image.Image, error) {
	rect := image.Rect(0, 0, im.Width, im.Height)
	n := im.Width * im.Height
	c := im.Channels
	switch channels {
	case 1:
		if c == 1 {
			return &image.Gray{Pix: im.Pix, Stride: im.Width, Rect: rect}, nil
		}
		g := image.NewGray(rect)
		for i := 0; i < n; i++ {
			px := im.Pix[i*c : i*c+c]
			if c <= 2 {
				g.Pix[i] = px[0]
				continue
			}
			g.Pix[i] = luma(px[0], px[1], px[2])
		}
		return g, nil
	case 3:
		rgba := image.NewRGBA(rect)
		for i := 0; i < n; i++ {
			px := im.Pix[i*c : i*c+c]
			d := rgba.Pix[i*4 : i*4+4]
			if c <= 2 {
				d[0], d[1], d[2] = px[0], px[0], px[0]
			} else {
				d[0], d[1], d[2] = px[0], px[1], px[2]
			}
			d[3] = 0xff
		}
		return rgba, nil
	}
	return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedShape, channels)
}

func luma(r, g, b uint8) uint8 {
	return uint8((299*uint32(r) + 587*uint32(g) + 114*uint32(b) + 500) / 1000)
}

func scale(src image.Image, target Shape) (Tensor, error) {
	b := src.Bounds()
	if b.Dx() != target.Width || b.Dy() != target.Height {
		return Tensor{}, fmt.Errorf("%w: resized to %dx%d, want %dx%d", ErrUnsupportedShape, b.Dx(), b.Dy(), target.Width, target.Height)
	}
	out := Tensor{Shape: target, Data: make([]float32, target.Size())}
	i := 0
	switch s := src.(type) {
	case *image.Gray:
		for y := 0; y < target.Height; y++ {
			off := s.PixOffset(b.Min.X, b.Min.Y+y)
			for x := 0; x < target.Width; x++ {
				out.Data[i] = float32(s.Pix[off+x]) / 255.0
				i++
			}
		}
	case *image.RGBA:
		for y := 0; y < target.Height; y++ {
			off := s.PixOffset(b.Min.X, b.Min.Y+y)
			for x := 0; x < target.Width; x++ {
				p := s.Pix[off+x*4 : off+x*4+3]
				out.Data[i] = float32(p[0]) / 255.0
				out.Data[i+1] = float32(p[1]) / 255.0
				out.Data[i+2] = float32(p[2]) / 255.0
				i += 3
			}
		}
	default:
		return Tensor{}, fmt.Errorf("%w: unexpected working image %T", ErrUnsupportedShape, src)
	}
	return out, nil
}
