// Package pixel converts a flat FrameBytes-length byte buffer to an RGBA
// pixel buffer suitable for handing to an external frame sink, and back.
//
// Only the RGB channels carry data; alpha is always fully opaque on encode
// and discarded on decode. This matches what a lossless RGB video or image
// path preserves most reliably — see the pixel-mapping rationale in the
// codec's design notes.
package pixel

import "github.com/ashuwhy/framevault/packet"

// PixelBytes is the length of one fully-opaque RGBA pixel buffer.
const PixelBytes = packet.Width * packet.Height * 4

// ToRGBA packs raw (up to packet.FrameBytes bytes, RGB triplets) into an
// RGBA buffer of length PixelBytes, setting alpha to 255 throughout. Bytes
// beyond len(raw) are treated as zero.
func ToRGBA(raw []byte) []byte {
	rgba := make([]byte, PixelBytes)
	n := packet.Width * packet.Height
	for i := 0; i < n; i++ {
		var r, g, b byte
		if j := 3 * i; j < len(raw) {
			r = raw[j]
		}
		if j := 3*i + 1; j < len(raw) {
			g = raw[j]
		}
		if j := 3*i + 2; j < len(raw) {
			b = raw[j]
		}
		o := 4 * i
		rgba[o] = r
		rgba[o+1] = g
		rgba[o+2] = b
		rgba[o+3] = 255
	}
	return rgba
}

// FromRGBA is the inverse of ToRGBA: it discards the alpha channel and
// returns a packet.FrameBytes-length buffer of RGB triplets.
func FromRGBA(rgba []byte) []byte {
	n := packet.Width * packet.Height
	raw := make([]byte, packet.FrameBytes)
	for i := 0; i < n; i++ {
		o := 4 * i
		if o+2 >= len(rgba) {
			break
		}
		j := 3 * i
		raw[j] = rgba[o]
		raw[j+1] = rgba[o+1]
		raw[j+2] = rgba[o+2]
	}
	return raw
}
