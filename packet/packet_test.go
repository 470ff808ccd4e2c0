package packet

import (
	"bytes"
	"testing"

	"github.com/ashuwhy/framevault/checksum"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payload := []byte("a packet's worth of payload data")
	raw := Encode(3, 10, payload, FlagRepair)

	if len(raw) != FrameBytes {
		t.Fatalf("len(raw) = %d, want %d", len(raw), FrameBytes)
	}

	h, got, ok := Decode(raw)
	if !ok {
		t.Fatal("Decode() ok = false, want true")
	}
	if h.PacketIndex != 3 || h.TotalPackets != 10 {
		t.Errorf("header index/total = %d/%d, want 3/10", h.PacketIndex, h.TotalPackets)
	}
	if h.PayloadLength != uint32(len(payload)) {
		t.Errorf("PayloadLength = %d, want %d", h.PayloadLength, len(payload))
	}
	if h.Checksum != checksum.CRC32(payload) {
		t.Errorf("Checksum = %#08x, want %#08x", h.Checksum, checksum.CRC32(payload))
	}
	if h.Flags != FlagRepair {
		t.Errorf("Flags = %#x, want FlagRepair", h.Flags)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload = %q, want %q", got, payload)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	raw := Encode(0, 1, []byte("x"), 0)
	raw[0] ^= 0xFF
	if _, _, ok := Decode(raw); ok {
		t.Error("Decode() accepted a packet with corrupted magic")
	}
}

func TestDecodeRejectsShortBuffer(t *testing.T) {
	if _, _, ok := Decode(make([]byte, 5)); ok {
		t.Error("Decode() accepted a buffer shorter than HeaderSize")
	}
}

func TestVerify(t *testing.T) {
	payload := []byte("payload")
	raw := Encode(0, 1, payload, 0)
	h, got, ok := Decode(raw)
	if !ok {
		t.Fatal("Decode failed")
	}
	if !Verify(got, h.Checksum) {
		t.Error("Verify() = false for an untampered packet")
	}
	got[0] ^= 1
	if Verify(got, h.Checksum) {
		t.Error("Verify() = true for a tampered payload")
	}
}

func TestEncodePadsToFrameBytes(t *testing.T) {
	raw := Encode(0, 1, []byte("short"), 0)
	for i := HeaderSize + 5; i < len(raw); i++ {
		if raw[i] != 0 {
			t.Fatalf("byte %d = %d, want 0 padding", i, raw[i])
		}
	}
}
