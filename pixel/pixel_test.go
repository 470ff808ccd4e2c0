package pixel

import (
	"bytes"
	"testing"

	"github.com/ashuwhy/framevault/packet"
)

func TestRoundTrip(t *testing.T) {
	raw := make([]byte, packet.FrameBytes)
	for i := range raw {
		raw[i] = byte(i)
	}
	rgba := ToRGBA(raw)
	if len(rgba) != PixelBytes {
		t.Fatalf("len(rgba) = %d, want %d", len(rgba), PixelBytes)
	}
	got := FromRGBA(rgba)
	if !bytes.Equal(got, raw) {
		t.Error("FromRGBA(ToRGBA(raw)) != raw")
	}
}

func TestAlphaIsOpaque(t *testing.T) {
	rgba := ToRGBA(make([]byte, packet.FrameBytes))
	for i := 3; i < len(rgba); i += 4 {
		if rgba[i] != 255 {
			t.Fatalf("alpha byte at %d = %d, want 255", i, rgba[i])
		}
	}
}

func TestShortInputTreatedAsZero(t *testing.T) {
	rgba := ToRGBA([]byte{1, 2, 3})
	if rgba[0] != 1 || rgba[1] != 2 || rgba[2] != 3 {
		t.Fatal("first pixel did not reflect short input")
	}
	if rgba[4] != 0 || rgba[5] != 0 || rgba[6] != 0 {
		t.Fatal("bytes past end of short input were not treated as zero")
	}
}
