package metadata

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []Metadata{
		{Filename: "a.bin", OrigSize: 256, MimeType: "application/octet-stream", Encrypted: false},
		{Filename: "notes.txt", OrigSize: 0, MimeType: "text/plain", Encrypted: true},
		{Filename: "", OrigSize: 11, MimeType: "", Encrypted: true},
		{Filename: "unicode-名前.png", OrigSize: 1 << 20, MimeType: "image/png", Encrypted: false},
	}
	for _, want := range tests {
		buf := Encode(want)
		got, err := Decode(buf)
		if err != nil {
			t.Fatalf("Decode(%+v): %v", want, err)
		}
		if got != want {
			t.Errorf("round trip = %+v, want %+v", got, want)
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	buf := Encode(Metadata{Filename: "a.bin", OrigSize: 1, MimeType: "text/plain"})
	for n := 0; n < len(buf); n++ {
		if _, err := Decode(buf[:n]); err == nil {
			t.Errorf("Decode(buf[:%d]) succeeded on truncated input, want error", n)
		}
	}
}

func TestDecodeBadLengthPrefix(t *testing.T) {
	buf := Encode(Metadata{Filename: "a.bin", OrigSize: 1, MimeType: "text/plain"})
	buf[0] = 0xFF // claim a 0xFFFFFFFF-byte name that doesn't exist
	buf[1] = 0xFF
	buf[2] = 0xFF
	buf[3] = 0xFF
	if _, err := Decode(buf); err == nil {
		t.Error("Decode() succeeded with an oversized length prefix, want error")
	}
}
