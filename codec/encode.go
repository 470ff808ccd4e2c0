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

// Input is the user's file as handed to Encode.
type Input struct {
	Name  string
	Bytes []byte
	Mime  string
}

// Options configures Encode and Decode. An empty Password means no
// encryption on encode, and "no password supplied" on decode.
type Options struct {
	Password string
}

// Encode runs the full encode pipeline: optional encryption, chunking,
// fountain-code repair generation, and per-packet pixel rendering, pushing
// each rendered frame to sink in order.
func Encode(in Input, opts Options, sink FrameSink) error {
	if len(in.Bytes) == 0 {
		return ErrEmptyInput
	}

	payload := in.Bytes
	encrypted := opts.Password != ""
	if encrypted {
		envelope, err := gocipher.Encrypt(in.Bytes, opts.Password)
		if err != nil {
			return fmt.Errorf("codec: encrypting input: %w", err)
		}
		payload = envelope
	}

	sources := chunk(payload, packet.MaxPayload)
	n := len(sources)
	repairs := fountain.GenerateRepairs(sources)
	m := len(repairs)
	total := uint32(1 + n + m)

	logx.L().Debug("codec: encode plan", "sources", n, "repairs", m, "total", total, "encrypted", encrypted)

	metaFlags := uint8(0)
	if encrypted {
		metaFlags = packet.FlagEncrypted
	}
	metaPayload := metadata.Encode(metadata.Metadata{
		Filename:  in.Name,
		OrigSize:  uint32(len(in.Bytes)),
		MimeType:  in.Mime,
		Encrypted: encrypted,
	})
	if err := pushPacket(sink, 0, total, metaPayload, metaFlags); err != nil {
		return err
	}

	remaining := len(payload)
	for i, src := range sources {
		n := packet.MaxPayload
		if remaining < n {
			n = remaining
		}
		remaining -= n
		if err := pushPacket(sink, uint32(1+i), total, src[:n], 0); err != nil {
			return err
		}
	}

	for _, rep := range repairs {
		idx := uint32(1 + n + int(rep.Index))
		if err := pushPacket(sink, idx, total, rep.Data, packet.FlagRepair); err != nil {
			return err
		}
	}

	return sink.Close()
}

func pushPacket(sink FrameSink, index, total uint32, payload []byte, flags uint8) error {
	raw := packet.Encode(index, total, payload, flags)
	rgba := pixel.ToRGBA(raw)
	if err := sink.Push(rgba); err != nil {
		return fmt.Errorf("codec: pushing frame %d: %w", index, err)
	}
	return nil
}

// chunk splits payload into zero-padded chunks of length size. At least one
// chunk is always returned.
func chunk(payload []byte, size int) [][]byte {
	count := (len(payload) + size - 1) / size
	if count == 0 {
		count = 1
	}
	chunks := make([][]byte, count)
	for i := range chunks {
		buf := make([]byte, size)
		start := i * size
		end := start + size
		if end > len(payload) {
			end = len(payload)
		}
		if start < end {
			copy(buf, payload[start:end])
		}
		chunks[i] = buf
	}
	return chunks
}
