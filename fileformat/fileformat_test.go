package fileformat_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/retrosys/c64core/fileformat"
)

func TestLoadPRGSplitsLoadAddressFromPayload(t *testing.T) {
	raw := []byte{0x01, 0x08, 0xaa, 0xbb, 0xcc}
	prg, err := fileformat.LoadPRG(raw)
	if err != nil {
		t.Fatalf("LoadPRG: %v", err)
	}
	if prg.LoadAddress != 0x0801 {
		t.Fatalf("expected load address 0x0801, got %#04x", prg.LoadAddress)
	}
	if !bytes.Equal(prg.Data, []byte{0xaa, 0xbb, 0xcc}) {
		t.Fatalf("unexpected payload: %v", prg.Data)
	}
}

func TestLoadP00RejectsBadSignature(t *testing.T) {
	raw := make([]byte, 28)
	copy(raw, "NOTP00")
	_, err := fileformat.LoadP00(raw)
	if err != fileformat.ErrBadP00Signature {
		t.Fatalf("expected ErrBadP00Signature, got %v", err)
	}
}

func TestLoadP00ParsesNameAndPayload(t *testing.T) {
	raw := make([]byte, 26)
	copy(raw, "C64File")
	copy(raw[8:24], "MY PROGRAM")
	raw = append(raw, 0x00, 0x10, 0x42)
	p, err := fileformat.LoadP00(raw)
	if err != nil {
		t.Fatalf("LoadP00: %v", err)
	}
	if p.Name != "MY PROGRAM" {
		t.Fatalf("expected name %q, got %q", "MY PROGRAM", p.Name)
	}
	if p.Program.LoadAddress != 0x1000 {
		t.Fatalf("expected load address 0x1000, got %#04x", p.Program.LoadAddress)
	}
	if !bytes.Equal(p.Program.Data, []byte{0x42}) {
		t.Fatalf("unexpected payload: %v", p.Program.Data)
	}
}

func buildT64(entries [][3]interface{}) []byte {
	// entries: {name string, loadAddr uint16, data []byte}
	header := make([]byte, 64)
	copy(header, "C64 tape image file")
	binary.LittleEndian.PutUint16(header[34:36], 1) // max entries
	binary.LittleEndian.PutUint16(header[36:38], uint16(len(entries)))
	copy(header[40:], "test tape")

	dir := make([]byte, 0, len(entries)*32)
	payload := make([]byte, 0)
	dataOffset := 64 + len(entries)*32
	for _, e := range entries {
		name := e[0].(string)
		loadAddr := e[1].(uint16)
		data := e[2].([]byte)

		entry := make([]byte, 32)
		entry[0] = 1 // normal tape entry
		binary.LittleEndian.PutUint16(entry[2:4], loadAddr)
		binary.LittleEndian.PutUint16(entry[4:6], loadAddr+uint16(len(data)))
		binary.LittleEndian.PutUint32(entry[8:12], uint32(dataOffset+len(payload)))
		copy(entry[16:32], name)
		for i := len(name); i < 16; i++ {
			entry[16+i] = ' '
		}
		dir = append(dir, entry...)
		payload = append(payload, data...)
	}

	out := append(header, dir...)
	out = append(out, payload...)
	return out
}

func TestLoadT64ParsesEntriesAndPayload(t *testing.T) {
	raw := buildT64([][3]interface{}{
		{"HELLO", uint16(0xc000), []byte{1, 2, 3, 4}},
	})
	archive, err := fileformat.LoadT64(raw)
	if err != nil {
		t.Fatalf("LoadT64: %v", err)
	}
	if archive.Description != "test tape" {
		t.Fatalf("unexpected description: %q", archive.Description)
	}
	if len(archive.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(archive.Entries))
	}
	e := archive.Entries[0]
	if e.Name != "HELLO" {
		t.Fatalf("expected name HELLO, got %q", e.Name)
	}
	if e.Program.LoadAddress != 0xc000 {
		t.Fatalf("expected load address 0xc000, got %#04x", e.Program.LoadAddress)
	}
	if !bytes.Equal(e.Program.Data, []byte{1, 2, 3, 4}) {
		t.Fatalf("unexpected payload: %v", e.Program.Data)
	}
}

func buildG64(trackData map[int][]byte) []byte {
	numHalftracks := 84
	header := make([]byte, 12)
	copy(header, "GCR-1541")
	header[8] = 0 // version
	header[9] = byte(numHalftracks)
	binary.LittleEndian.PutUint16(header[10:12], 7928)

	offsetTable := make([]byte, numHalftracks*4)
	speedTable := make([]byte, numHalftracks*4)

	body := make([]byte, 0)
	bodyBase := 12 + len(offsetTable) + len(speedTable)
	for ht := 1; ht <= numHalftracks; ht++ {
		data, ok := trackData[ht]
		if !ok {
			continue
		}
		offset := bodyBase + len(body)
		binary.LittleEndian.PutUint32(offsetTable[(ht-1)*4:(ht-1)*4+4], uint32(offset))
		lenBuf := make([]byte, 2)
		binary.LittleEndian.PutUint16(lenBuf, uint16(len(data)))
		body = append(body, lenBuf...)
		body = append(body, data...)
	}

	out := append(header, offsetTable...)
	out = append(out, speedTable...)
	out = append(out, body...)
	return out
}

func TestLoadG64ExpandsBytesToBits(t *testing.T) {
	raw := buildG64(map[int][]byte{2: {0xa5}}) // 1010_0101
	media, err := fileformat.LoadG64(raw)
	if err != nil {
		t.Fatalf("LoadG64: %v", err)
	}
	if media.Length(2) != 8 {
		t.Fatalf("expected 8 bits on halftrack 2, got %d", media.Length(2))
	}
	want := []byte{1, 0, 1, 0, 0, 1, 0, 1}
	for i, w := range want {
		if media.ReadBit(2, i) != w {
			t.Fatalf("bit %d: expected %d, got %d", i, w, media.ReadBit(2, i))
		}
	}
}

func buildCRT(exrom, game byte, loROM, hiROM []byte) []byte {
	header := make([]byte, 0x40)
	copy(header, "C64 CARTRIDGE   ")
	binary.BigEndian.PutUint32(header[0x10:0x14], 0x40)
	binary.BigEndian.PutUint16(header[0x14:0x16], 1)
	binary.BigEndian.PutUint16(header[0x16:0x18], 0)
	header[0x18] = exrom
	header[0x19] = game
	copy(header[0x20:0x40], "TEST CART")

	buildChip := func(loadAddr uint16, data []byte) []byte {
		chip := make([]byte, chipHeaderSizeForTest+len(data))
		copy(chip, "CHIP")
		binary.BigEndian.PutUint32(chip[4:8], uint32(len(chip)))
		binary.BigEndian.PutUint16(chip[8:10], 0)  // chip type
		binary.BigEndian.PutUint16(chip[10:12], 0) // bank number
		binary.BigEndian.PutUint16(chip[12:14], loadAddr)
		binary.BigEndian.PutUint16(chip[14:16], uint16(len(data)))
		copy(chip[16:], data)
		return chip
	}

	out := append([]byte(nil), header...)
	if loROM != nil {
		out = append(out, buildChip(0x8000, loROM)...)
	}
	if hiROM != nil {
		out = append(out, buildChip(0xe000, hiROM)...)
	}
	return out
}

const chipHeaderSizeForTest = 16

func TestLoadCRTParsesHeaderAndChipPackets(t *testing.T) {
	loROM := bytes.Repeat([]byte{0x11}, 8192)
	hiROM := bytes.Repeat([]byte{0x22}, 8192)
	raw := buildCRT(0, 1, loROM, hiROM)

	info, err := fileformat.LoadCRT(raw)
	if err != nil {
		t.Fatalf("LoadCRT: %v", err)
	}
	if info.Name != "TEST CART" {
		t.Fatalf("unexpected name: %q", info.Name)
	}
	if !info.Cartridge.EXROMLow {
		t.Fatalf("expected EXROM asserted low")
	}
	if info.Cartridge.GAMELow {
		t.Fatalf("expected GAME not asserted")
	}
	if !bytes.Equal(info.Cartridge.LoROM, loROM) {
		t.Fatalf("LoROM mismatch")
	}
	if !bytes.Equal(info.Cartridge.HiROM, hiROM) {
		t.Fatalf("HiROM mismatch")
	}
}

func TestLoadCRTRejectsBadSignature(t *testing.T) {
	_, err := fileformat.LoadCRT(make([]byte, 0x40))
	if err != fileformat.ErrBadCRTSignature {
		t.Fatalf("expected ErrBadCRTSignature, got %v", err)
	}
}
