package mem_test

import (
	"testing"

	"github.com/retrosys/c64core/mem"
)

func TestDefaultBankingShowsKernalAndBasicROM(t *testing.T) {
	m := mem.New()
	m.KernalROM = make([]byte, 0x2000)
	m.BasicROM = make([]byte, 0x2000)
	m.KernalROM[0] = 0xaa
	m.BasicROM[0] = 0xbb
	m.Write(0x0000, 0xff) // DDR all output
	m.Write(0x0001, 0xff) // LORAM|HIRAM|CHAREN all set: BASIC+KERNAL+IO visible

	if got := m.Read(0xa000); got != 0xbb {
		t.Fatalf("expected BASIC ROM visible at $A000, got %#02x", got)
	}
	if got := m.Read(0xe000); got != 0xaa {
		t.Fatalf("expected KERNAL ROM visible at $E000, got %#02x", got)
	}
}

func TestAllRAMBankingHidesROMs(t *testing.T) {
	m := mem.New()
	m.KernalROM = make([]byte, 0x2000)
	m.KernalROM[0] = 0xaa
	m.Write(0x0000, 0xff)
	m.Write(0x0001, 0x00) // LORAM=HIRAM=CHAREN=0: all RAM
	m.Write(0xe000, 0x42)
	if got := m.Read(0xe000); got != 0x42 {
		t.Fatalf("expected RAM visible at $E000 with banking disabled, got %#02x", got)
	}
}

func TestProcessorPortCapacitorDischarge(t *testing.T) {
	m := mem.New()
	m.Write(0x0000, 0xff) // DDR all output
	m.Write(0x0001, 0xff) // drive bit 6 high

	m.Cycle = 0
	m.Write(0x0000, 0x00) // flip to all-input: bit 6 starts floating

	m.Cycle = 349999
	if v := m.Read(0x0001); v&0x40 == 0 {
		t.Fatalf("expected bit 6 still set just before discharge, port=%#02x", v)
	}
	m.Cycle = 350000
	if v := m.Read(0x0001); v&0x40 != 0 {
		t.Fatalf("expected bit 6 clear once the discharge cycle is reached, port=%#02x", v)
	}
}

func TestWritesToBankedInROMFallThroughToRAM(t *testing.T) {
	m := mem.New()
	m.KernalROM = make([]byte, 0x2000)
	m.BasicROM = make([]byte, 0x2000)
	m.KernalROM[0] = 0xaa
	m.BasicROM[0] = 0xbb
	m.Write(0x0000, 0xff)
	m.Write(0x0001, 0xff) // LORAM|HIRAM|CHAREN: BASIC+KERNAL banked in for reads

	m.Write(0xa000, 0x11) // write lands on RAM beneath BASIC ROM
	m.Write(0xe000, 0x22) // write lands on RAM beneath KERNAL ROM

	if got := m.Read(0xa000); got != 0xbb {
		t.Fatalf("expected BASIC ROM still visible for reads after a write, got %#02x", got)
	}
	if got := m.Read(0xe000); got != 0xaa {
		t.Fatalf("expected KERNAL ROM still visible for reads after a write, got %#02x", got)
	}
	if m.RAM[0xa000] != 0x11 {
		t.Fatalf("expected the write to $A000 to have landed in RAM, got %#02x", m.RAM[0xa000])
	}
	if m.RAM[0xe000] != 0x22 {
		t.Fatalf("expected the write to $E000 to have landed in RAM, got %#02x", m.RAM[0xe000])
	}
}

func TestVICBankDerivedFromInvertedCIA2PA(t *testing.T) {
	m := mem.New()
	view := m.NewVICView()
	view.SetBankFromCIA2PA(0x03) // both lines high -> bank 0
	if view.Bank != 0 {
		t.Fatalf("expected bank 0, got %d", view.Bank)
	}
	view.SetBankFromCIA2PA(0x00) // both lines low -> bank 3
	if view.Bank != 3 {
		t.Fatalf("expected bank 3, got %d", view.Bank)
	}
}
