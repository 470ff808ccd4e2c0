package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/ashuwhy/framevault/codec"
	"github.com/ashuwhy/framevault/packet"
)

// pngDirSink writes each pushed frame as a lossless PNG file in dir,
// standing in for the external video muxer described in the codec's scope:
// "given N frame pixel buffers in order, it returns them in order with
// bit-exact RGB values preserved." PNG is lossless, so it satisfies that
// contract directly without a real video container.
type pngDirSink struct {
	dir   string
	count int
}

func newPNGDirSink(dir string) (*pngDirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating frame directory: %w", err)
	}
	return &pngDirSink{dir: dir}, nil
}

func (s *pngDirSink) Push(rgba []byte) error {
	img := image.NewRGBA(image.Rect(0, 0, packet.Width, packet.Height))
	copy(img.Pix, rgba)
	f, err := os.Create(filepath.Join(s.dir, frameFilename(s.count)))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}
	s.count++
	return nil
}

func (s *pngDirSink) Close() error { return nil }

// pngDirSource reads frame PNG files back in order, standing in for an
// external demuxer.
type pngDirSource struct {
	dir string
	pos int
}

func newPNGDirSource(dir string) *pngDirSource {
	return &pngDirSource{dir: dir}
}

func (s *pngDirSource) Next() ([]byte, bool, error) {
	path := filepath.Join(s.dir, frameFilename(s.pos))
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, false, fmt.Errorf("decoding %s: %w", path, err)
	}
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = toRGBA(img)
	}
	s.pos++
	return rgba.Pix, true, nil
}

func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x, y, color.RGBAModel.Convert(img.At(x, y)))
		}
	}
	return out
}

func frameFilename(n int) string {
	return fmt.Sprintf("frame-%06d.png", n)
}

var (
	_ codec.FrameSink   = (*pngDirSink)(nil)
	_ codec.FrameSource = (*pngDirSource)(nil)
)
