// This file is part of c64core.
//
// c64core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// c64core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with c64core.  If not, see <https://www.gnu.org/licenses/>.

// Package c64core assembles a complete Commodore 64: CPU, memory map,
// VIC-II, two CIAs, and an attached 1541 disk drive joined by the IEC
// serial bus, plus a scheduler worker to run the whole machine one cycle
// at a time.
package c64core

import (
	"github.com/retrosys/c64core/cia"
	"github.com/retrosys/c64core/cpu6502"
	"github.com/retrosys/c64core/disk"
	"github.com/retrosys/c64core/drive"
	"github.com/retrosys/c64core/iec"
	"github.com/retrosys/c64core/internal/config"
	"github.com/retrosys/c64core/internal/random"
	"github.com/retrosys/c64core/mem"
	"github.com/retrosys/c64core/vic"
)

// c64ClockHz returns the master clock frequency (cycles per second) for
// the configured board variant.
func c64ClockHz(cfg config.Config) int {
	switch cfg.Model {
	case config.ModelNTSC:
		return 1022727
	case config.ModelNTSCOld:
		return 1022727
	default:
		return 985248
	}
}

// driveClockHz is the 1541's own CPU clock, fixed regardless of the C64
// board variant it's attached to.
const driveClockHz = 1000000

// tenthsOfNanosecondPerSecond is the fixed-point unit nextClock/nextCarry
// are expressed in, matching the drive's own clock domain.
const tenthsOfNanosecondPerSecond = 10000000000

// C64 is a complete machine: every chip, wired together, plus an attached
// drive sharing the IEC bus.
type C64 struct {
	Config config.Config

	CPU  *cpu6502.CPU
	Mem  *mem.Memory
	VIC  *vic.VIC
	CIA1 *cia.CIA
	CIA2 *cia.CIA

	Drive *drive.Drive
	IEC   *iec.Bus

	Keyboard *Keyboard

	vicView *mem.VICView

	// rng seeds power-on RAM noise; it is never consulted on the rewindable
	// side of a snapshot boundary, so it carries no cycle source of its own
	// beyond what NoRewind needs.
	rng *random.Random

	// c64Clock is this machine's own monotonically increasing clock,
	// expressed in the same tenths-of-a-nanosecond unit as the drive's
	// NextClock/NextCarry, so the two independently clocked CPUs can be
	// interleaved by comparing who is due next.
	c64Clock        uint64
	c64CyclePeriod  uint64
	driveCyclePeriod uint64

	// todPeriod is the number of master-clock cycles between line-frequency
	// pulses fed to each CIA's TOD (50 or 60 Hz, per cfg.TODFrequency());
	// todAccum counts cycles since the last pulse. The divide-by-5/6 down
	// to tenths of a second happens inside the TOD itself, not here.
	todPeriod int
	todAccum  int
}

// New builds a complete, wired machine from the given configuration. The
// caller must still call Reset (and, for the drive, InsertDisk) before
// running it.
func New(cfg config.Config) *C64 {
	c := &C64{Config: cfg}

	c.Mem = mem.New()
	c.vicView = c.Mem.NewVICView()
	c.VIC = vic.New(cfg.VICModel(), c.vicView, cfg.GrayDotBug)
	c.CIA1 = cia.New("cia1", cfg.CIAModel())
	c.CIA2 = cia.New("cia2", cfg.CIAModel())
	c.CPU = cpu6502.New(c.Mem)

	c.IEC = iec.NewBus()
	c.Drive = drive.New()
	c.Drive.Plumb(c.IEC, "drive")

	c.Keyboard = NewKeyboard()
	c.rng = random.NewRandom(func() uint64 { return c.c64Clock })

	c.Mem.Chips.VIC = c.VIC
	c.Mem.Chips.CIA1 = c.CIA1
	c.Mem.Chips.CIA2 = c.CIA2
	c.Mem.Chips.ColorRAM = &c.Mem.ColorRAM

	c.wireCIA1Ports()
	c.wireCIA2Ports()

	clockHz := c64ClockHz(cfg)
	c.c64CyclePeriod = tenthsOfNanosecondPerSecond / uint64(clockHz)
	c.driveCyclePeriod = tenthsOfNanosecondPerSecond / uint64(driveClockHz)
	c.Drive.NextClock = c.c64Clock + c.driveCyclePeriod

	c.todPeriod = clockHz / cfg.TODFrequency()

	return c
}

// wireCIA1Ports wires CIA1 port A/B to the keyboard matrix. Joystick and
// paddle inputs share these same lines on real hardware but are not
// modeled here: a host wanting joystick support can still do so by
// presenting it as keyboard-equivalent row/column state through Keyboard,
// the same abstract interface the matrix itself uses.
func (c *C64) wireCIA1Ports() {
	c.CIA1.Ports.WriteA = c.Keyboard.onWriteA
	c.CIA1.Ports.WriteB = c.Keyboard.onWriteB
	c.CIA1.Ports.ReadA = c.Keyboard.onReadA
	c.CIA1.Ports.ReadB = c.Keyboard.onReadB
}

// wireCIA2Ports wires CIA2 port A to both the IEC serial bus (ATN/CLOCK/
// DATA, bits 3-7) and the VIC-II bank select (bits 0-1, inverted); port B
// drives the user port, which this core exposes but does not otherwise
// model.
func (c *C64) wireCIA2Ports() {
	conn := iec.C64Connector{Bus: c.IEC, Name: "c64"}

	c.CIA2.Ports.WriteA = func(value, ddr uint8) {
		driven := value & ddr
		conn.FromPA(driven)
		c.vicView.SetBankFromCIA2PA(driven | ^ddr)
	}
	c.CIA2.Ports.ReadA = func(ddr uint8) uint8 {
		return conn.ToPA() &^ ddr
	}
	c.CIA2.Ports.ReadB = func(ddr uint8) uint8 { return 0xff &^ ddr }
}

// Reset presses the C64's own reset button: the CPU, VIC-II and both CIAs
// reset and the memory map rebuilds its bank tables. On real hardware the
// 1541 has its own independent reset circuit — this button doesn't reach
// it — so the drive is untouched; use PowerOn for a full cold start of
// both machines together.
func (c *C64) Reset() {
	c.CPU.Reset()
	c.VIC.Reset()
	c.CIA1.Reset()
	c.CIA2.Reset()
	c.Mem.SetUltimax(c.Mem.Cart.Present && c.Mem.Cart.EXROMLow && !c.Mem.Cart.GAMELow)
	c.CPU.LoadResetVector()

	c.c64Clock = 0
	c.todAccum = 0
}

// PowerOn is a full cold start: both the C64 and the attached drive reset,
// as they would if switched on together. Unlike Reset, this is where RAM
// content is undefined on real hardware, so RandomizeRAMAtReset fills it
// with noise here rather than leaving it zeroed.
func (c *C64) PowerOn() {
	c.Reset()
	c.Drive.Reset()
	c.Drive.NextClock = c.c64Clock + c.driveCyclePeriod

	if c.Config.RandomizeRAMAtReset {
		for i := range c.Mem.RAM {
			c.Mem.RAM[i] = byte(c.rng.NoRewind(0x100))
		}
	}
}

// InsertDisk mounts disk media in the attached drive.
func (c *C64) InsertDisk(m *disk.Media) {
	c.Drive.InsertDisk(m)
}

// AttachCartridge plugs a cartridge into the expansion port and updates
// the memory map's ultimax routing accordingly.
func (c *C64) AttachCartridge(cart mem.Cartridge) {
	c.Mem.Cart = cart
	c.Mem.SetUltimax(cart.Present && cart.EXROMLow && !cart.GAMELow)
}
