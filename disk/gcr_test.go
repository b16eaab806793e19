package disk_test

import (
	"testing"

	"github.com/retrosys/c64core/disk"
)

func TestGCRRoundTrip(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 1; b++ { // vary first byte fully, keep others fixed for speed
			in := [4]uint8{uint8(a), 0x55, 0xaa, uint8(255 - a)}
			enc := disk.EncodeGCR(in)
			out, err := disk.DecodeGCR(enc)
			if err != nil {
				t.Fatalf("unexpected decode error for %v: %v", in, err)
			}
			if out != in {
				t.Fatalf("round trip mismatch: in=%v out=%v", in, out)
			}
		}
	}
}

func TestDecodeGCRRejectsInvalidCode(t *testing.T) {
	_, err := disk.DecodeGCR([5]uint8{0x00, 0x00, 0x00, 0x00, 0x00})
	if err == nil {
		t.Fatalf("expected error decoding all-zero GCR bytes")
	}
}

func TestLoadD64RejectsBadSize(t *testing.T) {
	_, err := disk.LoadD64(make([]byte, 123))
	if err != disk.ErrBadD64Size {
		t.Fatalf("expected ErrBadD64Size, got %v", err)
	}
}

func TestLoadD64ProducesExpectedTrackCount(t *testing.T) {
	raw := make([]byte, 174848)
	m, err := disk.LoadD64(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Length(2*18) == 0 {
		t.Fatalf("expected track 18 (directory track) to be populated")
	}
	if m.Length(2*35+1) != 0 {
		t.Fatalf("expected no data beyond track 35 for a 35-track image")
	}
}

func TestWriteProtectDropsWrites(t *testing.T) {
	m := disk.NewBlank()
	m.WriteProtect = true
	before := m.ReadBit(2, 0)
	m.WriteBit(2, 0, before^1)
	if m.ReadBit(2, 0) != before {
		t.Fatalf("write-protected disk should silently drop writes")
	}
	if m.Modified {
		t.Fatalf("write-protected disk should not be marked modified")
	}
}
