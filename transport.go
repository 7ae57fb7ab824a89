package sapling

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	// Decoders for ebitenutil.NewImageFromReader.
	_ "image/jpeg"
	_ "image/png"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// FileTransport loads assets from a file system. Images may be PNG or JPEG;
// audio must be WAV and is decoded fully into memory.
type FileTransport struct {
	FS fs.FS
}

// NewFileTransport returns a transport reading paths relative to dir.
func NewFileTransport(dir string) FileTransport {
	return FileTransport{FS: os.DirFS(dir)}
}

// LoadImage decodes src into an ebiten image.
func (t FileTransport) LoadImage(ctx context.Context, src string) (*ebiten.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := t.FS.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", src, err)
	}
	defer f.Close()

	img, _, err := ebitenutil.NewImageFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", src, err)
	}
	return img, nil
}

// LoadAudio decodes the WAV file src into a Sound.
func (t FileTransport) LoadAudio(ctx context.Context, src string) (*Sound, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := t.FS.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open audio %s: %w", src, err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode audio %s: %w", src, err)
	}
	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read audio %s: %w", src, err)
	}
	return NewSound(buf), nil
}
