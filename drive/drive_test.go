package drive_test

import (
	"testing"

	"github.com/retrosys/c64core/cpu6502"
	"github.com/retrosys/c64core/disk"
	"github.com/retrosys/c64core/drive"
	"github.com/retrosys/c64core/iec"
)

func TestNewDriveResetsCleanly(t *testing.T) {
	d := drive.New()
	// reset vector -> $C000
	d.Memory.ROM[0x3ffc] = 0x00
	d.Memory.ROM[0x3ffd] = 0xc0
	d.Reset()
	if d.CPU.Regs.PC != 0xc000 {
		t.Fatalf("expected PC=0xc000 after reset, got %#04x", d.CPU.Regs.PC)
	}
}

func TestVIATimerOneShotSetsInterruptFlag(t *testing.T) {
	v := drive.New().Memory.VIA1
	v.Write(drive.RegIER, 0x80|0x40) // enable T1 interrupt
	v.Write(drive.RegACR, 0x00)      // one-shot mode
	v.Write(drive.RegT1CL, 0x02)
	v.Write(drive.RegT1CH, 0x00) // latches+starts T1=2
	for i := 0; i < 3; i++ {
		v.Tick()
	}
	if !v.IRQ() {
		t.Fatalf("expected VIA to assert IRQ after T1 one-shot underflow")
	}
}

func TestDriveObservesATNAssertedOnSharedIECBus(t *testing.T) {
	d := drive.New()
	bus := iec.NewBus()
	d.Plumb(bus, "drive")

	other := iec.C64Connector{Bus: bus, Name: "c64"}
	other.FromPA(1 << 3) // c64 asserts ATN

	d.Tick()
	if !d.Memory.VIA1.CA1Level() {
		t.Fatalf("expected VIA1's CA1 input to observe the asserted ATN line")
	}
}

// bitCellTicks is the number of 16 MHz head ticks zone 0's UE7/UE3 divider
// takes to produce one bit-cell boundary (ue7Carry[0] * 4). One drive tick
// (Drive.Tick) is 16 head ticks.
const bitCellTicks = 16 * 4

func TestWriteProtectedHeadDoesNotMutateMedia(t *testing.T) {
	d := drive.New()
	// head starts on halftrack 2, unmounted; mount a blank disk
	blank := disk.NewBlank()
	blank.WriteProtect = true
	d.InsertDisk(blank)
	before := blank.ReadBit(2, 0)
	d.Memory.VIA2.Write(drive.RegPA, 0xff) // byte the DOS would shift out
	for i := 0; i < bitCellTicks; i++ {
		d.Memory.Head.Tick(true)
	}
	if blank.ReadBit(2, 0) != before {
		t.Fatalf("write-protected media must not change under head writes")
	}
}

func TestHeadShiftsWriteDataFromVIA2PortA(t *testing.T) {
	d := drive.New()
	// NewBlank formats every track as all-one gap bytes, so write a zero
	// MSB to prove the bit on the media actually came from ora and isn't
	// just the track's original gap-byte content.
	blank := disk.NewBlank()
	d.InsertDisk(blank)
	d.Memory.VIA2.Write(drive.RegPA, 0x00) // MSB clear

	for i := 0; i < bitCellTicks; i++ {
		d.Memory.Head.Tick(true)
	}
	if got := blank.ReadBit(2, 0); got != 0 {
		t.Fatalf("expected the byte's MSB (0) to be written first, got %d", got)
	}
}

func TestDriveDeliversByteReadyToVIA2AndCPUOverflowFlag(t *testing.T) {
	d := drive.New()
	// NewBlank formats every track as all-one gap bytes, so the first ten
	// bits already form a SYNC mark. An all-ones track never completes a
	// byte (every further one-bit keeps it in SYNC), so one data byte
	// ($55) is written right after those ten bits.
	blank := disk.NewBlank()
	for i, bit := range []byte{0, 1, 0, 1, 0, 1, 0, 1} {
		blank.WriteBit(2, 10+i, bit)
	}
	d.InsertDisk(blank)
	d.Memory.VIA2.Write(drive.RegPCR, 0x01) // CA1 interrupt on rising edge
	d.Memory.VIA2.Write(drive.RegIER, 0x80|0x02)
	d.Memory.VIA2.Write(drive.RegPB, 0x06) // motor on, write gate off (read mode)

	// a full sync mark (10 bits) plus a data byte (8 bits), with a couple
	// of bit-cells of margin, at zone 0's bit-cell rate.
	for i := 0; i < 20*bitCellTicks/16; i++ {
		d.Tick()
	}
	if !d.Memory.VIA2.IRQ() {
		t.Fatalf("expected VIA2 to flag a byte-ready CA1 interrupt once a byte synced")
	}
	if d.CPU.Regs.P&cpu6502.FlagV == 0 {
		t.Fatalf("expected byte-ready to set the drive CPU's overflow flag")
	}
}
