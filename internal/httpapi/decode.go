package httpapi

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"gestured/internal/common/fsutil"
	"gestured/internal/imaging"
	"gestured/pkg/types"
)

var errImageRootUnset = errors.New("path predictions are disabled")

// decodeBase64Image accepts plain base64 (padded or raw) or a data URL.
func decodeBase64Image(s string) (imaging.Image, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return imaging.Image{}, fmt.Errorf("%w: image is required", imaging.ErrInvalidImage)
	}
	if strings.HasPrefix(s, "data:") {
		i := strings.IndexByte(s, ',')
		if i < 0 || !strings.Contains(s[:i], ";base64") {
			return imaging.Image{}, fmt.Errorf("%w: malformed data URL", imaging.ErrInvalidImage)
		}
		s = s[i+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	}
	if err != nil {
		return imaging.Image{}, fmt.Errorf("%w: base64: %v", imaging.ErrInvalidImage, err)
	}
	return decodeImage(bytes.NewReader(raw))
}

// decodeImage decodes any registered container format into a pixel buffer.
// The header is read first and images over maxImagePixels are rejected
// before any raster is allocated.
func decodeImage(r io.Reader) (imaging.Image, error) {
	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return imaging.Image{}, fmt.Errorf("%w: %v", imaging.ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return imaging.Image{}, fmt.Errorf("%w: empty image %dx%d", imaging.ErrInvalidImage, cfg.Width, cfg.Height)
	}
	if px := int64(cfg.Width) * int64(cfg.Height); px > maxImagePixels {
		return imaging.Image{}, fmt.Errorf("%w: %dx%d exceeds the %d pixel limit",
			imaging.ErrInvalidImage, cfg.Width, cfg.Height, maxImagePixels)
	}
	img, _, err := image.Decode(io.MultiReader(&head, r))
	if err != nil {
		return imaging.Image{}, fmt.Errorf("%w: %v", imaging.ErrInvalidImage, err)
	}
	out := imaging.FromImage(img)
	if err := out.Validate(); err != nil {
		return imaging.Image{}, err
	}
	return out, nil
}

// openUnderRoot resolves p inside the configured image root and decodes it.
// Errors wrapping fsutil.ErrOutsideRoot or os.ErrNotExist let the caller
// choose 403 and 404.
func openUnderRoot(p string) (imaging.Image, error) {
	if imageRoot == "" {
		return imaging.Image{}, errImageRootUnset
	}
	abs, err := fsutil.ResolveUnder(imageRoot, p)
	if err != nil {
		return imaging.Image{}, err
	}
	if !fsutil.IsRegularFile(abs) {
		return imaging.Image{}, fmt.Errorf("%s: %w", p, os.ErrNotExist)
	}
	f, err := os.Open(abs)
	if err != nil {
		return imaging.Image{}, err
	}
	defer f.Close()
	return decodeImage(f)
}

// applyCrop crops im when the request carries a region.
func applyCrop(im imaging.Image, c *types.Region) (imaging.Image, error) {
	if c == nil {
		return im, nil
	}
	return imaging.Crop(im, c.X, c.Y, c.Width, c.Height)
}

// resolveThreshold validates an optional per-request threshold.
func resolveThreshold(v *float64, def float64) (float64, error) {
	if v == nil {
		return def, nil
	}
	if *v < 0 || *v > 1 {
		return 0, fmt.Errorf("confidence_threshold %v outside [0,1]", *v)
	}
	return *v, nil
}
