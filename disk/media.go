package disk

import (
	"github.com/retrosys/c64core/internal/curated"
	"github.com/retrosys/c64core/internal/logger"
)

const (
	MinHalftrack = 1
	MaxHalftrack = 84

	maxTrackBits = 7928 * 8
)

// speedZone returns the 1541 density zone (0..3) for a whole track number
// (1-based). Zone determines both the GCR bit-cell rate and the track's raw
// byte capacity.
func speedZone(track int) int {
	switch {
	case track >= 31:
		return 3
	case track >= 25:
		return 2
	case track >= 18:
		return 1
	default:
		return 0
	}
}

// zoneBitRates/zoneTrackBytes mirror the four physical speed zones; higher
// zone numbers spin at a lower bit-cell rate, so outer tracks (lower track
// numbers) hold more data per revolution.
var zoneTrackBytes = [4]int{7928, 7666, 7351, 6860}

// Halftrack is one radial head position's magnetic-flux bitstream.
type Halftrack struct {
	Bits     []byte // one bit per byte, 0 or 1, for simplicity of head access
	Modified bool
}

// Media is a 5.25" floppy disk: 84 halftracks, write-protect status, and a
// dirty flag used by front ends deciding whether to prompt for a save.
type Media struct {
	Tracks       [MaxHalftrack + 1]Halftrack // 1-indexed; index 0 unused
	WriteProtect bool
	Modified     bool
}

// NewBlank creates 35 formatted whole tracks of all-ones ($FF) GCR gap bytes,
// the state a freshly formatted disk would be in.
func NewBlank() *Media {
	m := &Media{}
	for track := 1; track <= 35; track++ {
		ht := track * 2
		n := zoneTrackBytes[speedZone(track)]
		m.Tracks[ht] = Halftrack{Bits: make([]byte, n*8)}
		for i := range m.Tracks[ht].Bits {
			m.Tracks[ht].Bits[i] = 1 // gap bytes are 0xFF, all-ones
		}
	}
	return m
}

// Length returns the bit length of the given halftrack.
func (m *Media) Length(ht int) int {
	if ht < MinHalftrack || ht > MaxHalftrack {
		return 0
	}
	return len(m.Tracks[ht].Bits)
}

// ReadBit returns the bit at the given offset on halftrack ht, wrapping
// around the track's length as the spinning disk would.
func (m *Media) ReadBit(ht, offset int) byte {
	n := m.Length(ht)
	if n == 0 {
		return 0
	}
	return m.Tracks[ht].Bits[offset%n]
}

// WriteBit writes a bit at the given offset, unless the disk is
// write-protected, in which case the write is silently dropped per the
// documented hardware behavior.
func (m *Media) WriteBit(ht, offset int, bit byte) {
	if m.WriteProtect {
		return
	}
	n := m.Length(ht)
	if n == 0 {
		return
	}
	m.Tracks[ht].Bits[offset%n] = bit & 1
	m.Tracks[ht].Modified = true
	m.Modified = true
}

// ErrBadD64Size reports a D64 image whose byte count doesn't match any
// known sector-count variant (35, 40, or 42 track images).
var ErrBadD64Size = curated.Errorf("disk: unrecognized D64 image size")

var d64SectorsPerTrack = [...]int{
	21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21,
	19, 19, 19, 19, 19, 19, 19,
	18, 18, 18, 18, 18, 18,
	17, 17, 17, 17, 17,
}

func d64TrackCountForSize(size int) (int, error) {
	switch size {
	case 174848, 175531:
		return 35, nil
	case 196608, 197376:
		return 40, nil
	case 205312, 206114:
		return 42, nil
	default:
		return 0, ErrBadD64Size
	}
}

// LoadD64 converts a sector-image D64 byte buffer into halftrack
// bitstreams: each sector is framed with a header block and a data block
// per the documented 1541 GCR layout, then written into the track's even
// halftrack.
func LoadD64(raw []byte) (*Media, error) {
	trackCount, err := d64TrackCountForSize(len(raw))
	if err != nil {
		return nil, err
	}

	m := &Media{}
	offset := 0
	for track := 1; track <= trackCount; track++ {
		sectors := d64SectorsPerTrack[track-1]
		enc := newTrackEncoder(track)
		for sector := 0; sector < sectors; sector++ {
			data := raw[offset : offset+256]
			offset += 256
			enc.writeSector(track, sector, data)
		}
		ht := track * 2
		m.Tracks[ht] = Halftrack{Bits: enc.bits}
	}
	logger.Logf(logger.Allow, "disk", "loaded D64 image: %d tracks, %d bytes", trackCount, len(raw))
	return m, nil
}
