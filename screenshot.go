package sapling

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

var shotEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// Screenshot queues a labeled capture of the screen at the end of the next
// Draw. Files land in ScreenshotDir as <time>_<seq>_<label>.png.
func (h *EbitenHost) Screenshot(label string) {
	h.screenshotQueue = append(h.screenshotQueue, label)
}

// flushScreenshots encodes the screen once and writes one file per queued
// label.
func (h *EbitenHost) flushScreenshots(screen *ebiten.Image) {
	if len(h.screenshotQueue) == 0 {
		return
	}
	labels := h.screenshotQueue
	h.screenshotQueue = h.screenshotQueue[:0]

	data, err := encodePNG(screenNRGBA(screen))
	if err != nil {
		h.logf("screenshot: %v", err)
		return
	}
	if err := os.MkdirAll(h.ScreenshotDir, 0o755); err != nil {
		h.logf("screenshot: mkdir %s: %v", h.ScreenshotDir, err)
		return
	}
	stamp := time.Now().Format("20060102_150405")
	for _, label := range labels {
		h.shots++
		path := screenshotPath(h.ScreenshotDir, stamp, h.shots, label)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			h.logf("screenshot: %v", err)
		}
	}
}

// logf reports through the engine's debug log when one is attached.
func (h *EbitenHost) logf(format string, args ...any) {
	if h.engine != nil && h.engine.cfg.Debug {
		h.engine.debugf(format, args...)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[sapling] "+format+"\n", args...)
}

func screenshotPath(dir, stamp string, seq int, label string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%03d_%s.png", stamp, seq, sanitizeLabel(label)))
}

// screenNRGBA reads the screen back as straight-alpha pixels.
func screenNRGBA(screen *ebiten.Image) *image.NRGBA {
	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	return unpremultiply(pixels, b.Dx(), b.Dy())
}

func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, pixels)
	for px := range slices.Chunk(img.Pix, 4) {
		if len(px) < 4 {
			break
		}
		a := int(px[3])
		if a == 0 || a == 255 {
			continue
		}
		for i := range 3 {
			px[i] = uint8(min(int(px[i])*255/a, 255))
		}
	}
	return img
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := shotEncoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeLabel keeps letters, digits, '-' and '.', replaces anything else
// with '_', and names an empty label "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
