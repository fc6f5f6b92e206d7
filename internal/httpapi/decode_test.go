package httpapi

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"strings"
	"testing"

	"gestured/internal/imaging"
)

func TestDecodeBase64Image_Encodings(t *testing.T) {
	std := pngBase64(t, 3, 2)
	raw := strings.TrimRight(std, "=")
	for name, in := range map[string]string{
		"std":      std,
		"raw":      raw,
		"data url": "data:image/png;base64," + std,
		"padded":   "  " + std + "\n",
	} {
		im, err := decodeBase64Image(in)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if im.Width != 3 || im.Height != 2 || im.Channels != 4 {
			t.Fatalf("%s: image=%dx%dx%d", name, im.Width, im.Height, im.Channels)
		}
	}
}

func TestDecodeBase64Image_Rejects(t *testing.T) {
	for _, in := range []string{
		"",
		"data:image/png,abc",
		"!!!",
		base64.StdEncoding.EncodeToString([]byte("GIF89a-truncated")),
	} {
		if _, err := decodeBase64Image(in); !errors.Is(err, imaging.ErrInvalidImage) {
			t.Fatalf("%q: err=%v", in, err)
		}
	}
}

// pngHeader returns a PNG signature and IHDR chunk claiming w x h gray
// pixels, with no image data behind it.
func pngHeader(w, h uint32) []byte {
	var ihdr bytes.Buffer
	ihdr.WriteString("IHDR")
	binary.Write(&ihdr, binary.BigEndian, w)
	binary.Write(&ihdr, binary.BigEndian, h)
	ihdr.Write([]byte{8, 0, 0, 0, 0})
	var out bytes.Buffer
	out.WriteString("\x89PNG\r\n\x1a\n")
	binary.Write(&out, binary.BigEndian, uint32(ihdr.Len()-4))
	out.Write(ihdr.Bytes())
	binary.Write(&out, binary.BigEndian, crc32.ChecksumIEEE(ihdr.Bytes()))
	return out.Bytes()
}

func TestDecodeImage_PixelBudget(t *testing.T) {
	huge := base64.StdEncoding.EncodeToString(pngHeader(20000, 20000))
	_, err := decodeBase64Image(huge)
	if !errors.Is(err, imaging.ErrInvalidImage) || !strings.Contains(err.Error(), "pixel limit") {
		t.Fatalf("oversized header: err=%v", err)
	}

	SetMaxImagePixels(100)
	defer SetMaxImagePixels(0)
	if _, err := decodeBase64Image(pngBase64(t, 20, 20)); !errors.Is(err, imaging.ErrInvalidImage) {
		t.Fatalf("20x20 over a 100 pixel budget: err=%v", err)
	}
	im, err := decodeBase64Image(pngBase64(t, 10, 10))
	if err != nil || im.Width != 10 || im.Height != 10 {
		t.Fatalf("10x10 within budget: im=%dx%d err=%v", im.Width, im.Height, err)
	}
}

func TestResolveThreshold(t *testing.T) {
	if v, err := resolveThreshold(nil, 0.5); err != nil || v != 0.5 {
		t.Fatalf("default: %v %v", v, err)
	}
	zero := 0.0
	if v, err := resolveThreshold(&zero, 0.5); err != nil || v != 0 {
		t.Fatalf("explicit zero: %v %v", v, err)
	}
	neg := -0.1
	if _, err := resolveThreshold(&neg, 0.5); err == nil {
		t.Fatalf("expected range error")
	}
}
