// Package metadata encodes and decodes the frame-0 descriptor: filename,
// original plaintext size, media type, and whether the payload is
// encrypted.
package metadata

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrMalformed indicates a frame-0 payload shorter than its declared
// lengths, or containing a non-UTF-8 string.
var ErrMalformed = errors.New("metadata: malformed payload")

// Metadata is the frame-0 descriptor.
type Metadata struct {
	Filename  string
	OrigSize  uint32
	MimeType  string
	Encrypted bool
}

// Encode serializes m as:
//
//	u32 nameLen | name | u32 origSize | u32 mimeLen | mime | u8 encryptedFlag
func Encode(m Metadata) []byte {
	name := []byte(m.Filename)
	mime := []byte(m.MimeType)
	buf := make([]byte, 4+len(name)+4+4+len(mime)+1)

	off := 0
	binary.LittleEndian.PutUint32(buf[off:], uint32(len(name)))
	off += 4
	off += copy(buf[off:], name)
	binary.LittleEndian.PutUint32(buf[off:], m.OrigSize)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], uint32(len(mime)))
	off += 4
	off += copy(buf[off:], mime)
	if m.Encrypted {
		buf[off] = 1
	}
	return buf
}

// Decode is the inverse of Encode.
func Decode(buf []byte) (Metadata, error) {
	var m Metadata

	off, nameLen, err := readLengthPrefixed(buf, 0)
	if err != nil {
		return Metadata{}, err
	}
	m.Filename = string(buf[off : off+int(nameLen)])
	if !utf8.Valid([]byte(m.Filename)) {
		return Metadata{}, fmt.Errorf("%w: filename is not valid UTF-8", ErrMalformed)
	}
	off += int(nameLen)

	if off+4 > len(buf) {
		return Metadata{}, fmt.Errorf("%w: truncated before origSize", ErrMalformed)
	}
	m.OrigSize = binary.LittleEndian.Uint32(buf[off:])
	off += 4

	off, mimeLen, err := readLengthPrefixed(buf, off)
	if err != nil {
		return Metadata{}, err
	}
	m.MimeType = string(buf[off : off+int(mimeLen)])
	if !utf8.Valid([]byte(m.MimeType)) {
		return Metadata{}, fmt.Errorf("%w: mime type is not valid UTF-8", ErrMalformed)
	}
	off += int(mimeLen)

	if off+1 > len(buf) {
		return Metadata{}, fmt.Errorf("%w: truncated before encrypted flag", ErrMalformed)
	}
	m.Encrypted = buf[off] != 0

	return m, nil
}

// readLengthPrefixed reads a u32 length at buf[at:] and returns the offset
// just past the length field, the length itself, and an error if buf is too
// short to hold either the length field or the string it describes.
func readLengthPrefixed(buf []byte, at int) (off int, length uint32, err error) {
	if at+4 > len(buf) {
		return 0, 0, fmt.Errorf("%w: truncated length prefix", ErrMalformed)
	}
	length = binary.LittleEndian.Uint32(buf[at:])
	off = at + 4
	if off+int(length) > len(buf) {
		return 0, 0, fmt.Errorf("%w: declared length %d exceeds remaining buffer", ErrMalformed, length)
	}
	return off, length, nil
}
