// Package packet encodes and decodes a single fixed-size framed packet to
// and from a flat byte buffer — the unit that becomes one video frame.
//
// The header layout mirrors the teacher mux's frame header (frame.go's
// frameHeader / encodeFrameHeader / decodeFrameHeader): a small
// binary.LittleEndian struct written and read field-by-field into a
// caller-supplied buffer, with no reflection or external encoding package
// involved.
package packet

import (
	"encoding/binary"

	"github.com/ashuwhy/framevault/checksum"
)

// Magic identifies a valid framevault packet.
const Magic = 0xDB02

// Flag bits for Header.Flags.
const (
	FlagEncrypted = 1 << 0 // set only on the metadata frame
	FlagRepair    = 1 << 1 // set only on repair frames
)

// Frame geometry.
const (
	Width      = 1920
	Height     = 1080
	bytesPerPx = 3

	// FrameBytes is the capacity of one serialized packet / frame.
	FrameBytes = Width * Height * bytesPerPx

	// HeaderSize is the size, in bytes, of a packet header.
	HeaderSize = 2 + 1 + 4 + 4 + 4 + 4

	// MaxPayload is the largest payload a single packet can carry.
	MaxPayload = FrameBytes - HeaderSize
)

// Header is the 19-byte fixed packet header described in the data model.
type Header struct {
	Flags         uint8
	PacketIndex   uint32
	TotalPackets  uint32
	PayloadLength uint32
	Checksum      uint32
}

// Encode writes a full FrameBytes-length packet for the given index, total,
// payload, and flags into a freshly allocated buffer. payload must not
// exceed MaxPayload.
func Encode(index, total uint32, payload []byte, flags uint8) []byte {
	if len(payload) > MaxPayload {
		panic("packet: payload exceeds MaxPayload")
	}
	buf := make([]byte, FrameBytes)
	binary.LittleEndian.PutUint16(buf[0:2], Magic)
	buf[2] = flags
	binary.LittleEndian.PutUint32(buf[3:7], index)
	binary.LittleEndian.PutUint32(buf[7:11], total)
	binary.LittleEndian.PutUint32(buf[11:15], uint32(len(payload)))
	binary.LittleEndian.PutUint32(buf[15:19], checksum.CRC32(payload))
	copy(buf[HeaderSize:], payload)
	// the remainder of buf is already zero from make([]byte, ...)
	return buf
}

// Decode parses raw into a Header and the payload slice it claims. It
// returns ok=false when raw is too short to hold a header or the magic does
// not match — callers should treat that as "not a codec frame" rather than
// an error. Decode does not verify the checksum; call Verify separately so
// the caller can classify a CRC-failed packet as "absent but present" for
// the fountain layer rather than as unparseable.
func Decode(raw []byte) (h Header, payload []byte, ok bool) {
	if len(raw) < HeaderSize {
		return Header{}, nil, false
	}
	if binary.LittleEndian.Uint16(raw[0:2]) != Magic {
		return Header{}, nil, false
	}
	h.Flags = raw[2]
	h.PacketIndex = binary.LittleEndian.Uint32(raw[3:7])
	h.TotalPackets = binary.LittleEndian.Uint32(raw[7:11])
	h.PayloadLength = binary.LittleEndian.Uint32(raw[11:15])
	h.Checksum = binary.LittleEndian.Uint32(raw[15:19])

	end := HeaderSize + int(h.PayloadLength)
	if end > len(raw) {
		return Header{}, nil, false
	}
	return h, raw[HeaderSize:end], true
}

// Verify reports whether payload's CRC32 matches want.
func Verify(payload []byte, want uint32) bool {
	return checksum.Verify(payload, want)
}
