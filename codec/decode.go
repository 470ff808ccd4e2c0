package codec

import (
	"fmt"

	gocipher "github.com/ashuwhy/framevault/cipher"
	"github.com/ashuwhy/framevault/fountain"
	"github.com/ashuwhy/framevault/internal/logx"
	"github.com/ashuwhy/framevault/metadata"
	"github.com/ashuwhy/framevault/packet"
	"github.com/ashuwhy/framevault/pixel"
)

// Output is the reassembled file Decode returns.
type Output struct {
	Name  string
	Bytes []byte
}

type frameRecord struct {
	header  packet.Header
	payload []byte
}

// Decode collects frames from source, classifies them, runs fountain
// recovery for any missing sources, and reassembles the original bytes.
//
// Frames are placed by their header's PacketIndex rather than by arrival
// order: each packet already carries its absolute position in the stream,
// so a lost frame simply leaves a gap at a known index instead of
// desynchronizing every index after it. This sidesteps the ordinal-gap
// ambiguity the design notes flag around counting missing frames.
func Decode(source FrameSource, opts Options) (Output, error) {
	records := make(map[uint32]frameRecord)
	sawMagicValid := false

	for {
		rgba, ok, err := source.Next()
		if err != nil {
			return Output{}, fmt.Errorf("codec: reading frame: %w", err)
		}
		if !ok {
			break
		}
		raw := pixel.FromRGBA(rgba)
		h, payload, ok := packet.Decode(raw)
		if !ok {
			continue // bad magic: not a codec frame, silently skipped
		}
		sawMagicValid = true
		if !packet.Verify(payload, h.Checksum) {
			continue // CRC failure: treat as absent, not an error
		}
		records[h.PacketIndex] = frameRecord{header: h, payload: payload}
	}

	if !sawMagicValid {
		return Output{}, ErrNoFrames
	}

	meta0, ok := records[0]
	if !ok {
		return Output{}, ErrMetadataLost
	}
	meta, err := metadata.Decode(meta0.payload)
	if err != nil {
		return Output{}, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}

	if meta.Encrypted && opts.Password == "" {
		return Output{}, ErrPasswordRequired
	}

	total := meta0.header.TotalPackets
	expectedLen := int(meta.OrigSize)
	if meta.Encrypted {
		expectedLen += gocipher.Overhead
	}
	sourceCount := (expectedLen + packet.MaxPayload - 1) / packet.MaxPayload
	if sourceCount < 1 {
		sourceCount = 1
	}
	repairCount := int(total) - 1 - sourceCount
	if repairCount < 0 {
		repairCount = 0
	}

	logx.L().Debug("codec: decode plan", "total", total, "sources", sourceCount, "repairs", repairCount, "encrypted", meta.Encrypted)

	slots := make([]fountain.Slot, sourceCount)
	for i := 0; i < sourceCount; i++ {
		rec, ok := records[uint32(1+i)]
		if !ok {
			continue
		}
		slots[i] = fountain.Slot{Data: zeroPad(rec.payload, packet.MaxPayload), Present: true}
	}

	var repairs []fountain.Repair
	for r := 0; r < repairCount; r++ {
		rec, ok := records[uint32(1+sourceCount+r)]
		if !ok {
			continue
		}
		if rec.header.Flags&packet.FlagRepair == 0 {
			logx.L().Warn("codec: frame at repair slot missing repair flag", "packetIndex", rec.header.PacketIndex)
		}
		indices := fountain.SourceIndices(uint32(r), uint32(sourceCount))
		repairs = append(repairs, fountain.Repair{
			Index:   uint32(r),
			Indices: indices,
			Data:    zeroPad(rec.payload, packet.MaxPayload),
		})
	}

	fountain.Recover(slots, repairs)

	for i, s := range slots {
		if !s.Present {
			return Output{}, &UnrecoverableLossError{Index: i}
		}
	}

	reassembled := make([]byte, 0, sourceCount*packet.MaxPayload)
	for _, s := range slots {
		reassembled = append(reassembled, s.Data...)
	}
	if expectedLen > len(reassembled) {
		return Output{}, &UnrecoverableLossError{Index: sourceCount - 1}
	}
	reassembled = reassembled[:expectedLen]

	plaintext := reassembled
	if meta.Encrypted {
		plaintext, err = gocipher.Decrypt(reassembled, opts.Password)
		if err != nil {
			return Output{}, err
		}
	}

	return Output{Name: meta.Filename, Bytes: plaintext}, nil
}

func zeroPad(b []byte, size int) []byte {
	if len(b) >= size {
		return b[:size]
	}
	buf := make([]byte, size)
	copy(buf, b)
	return buf
}
