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

package c64core_test

import (
	"testing"

	"github.com/retrosys/c64core"
	"github.com/retrosys/c64core/internal/config"
	"github.com/retrosys/c64core/mem"
)

func newMachine(t *testing.T) *c64core.C64 {
	t.Helper()
	c := c64core.New(config.Default())
	c.PowerOn()
	return c
}

func TestNewWiresEveryChip(t *testing.T) {
	c := newMachine(t)
	if c.CPU == nil || c.Mem == nil || c.VIC == nil || c.CIA1 == nil || c.CIA2 == nil {
		t.Fatal("New left a core chip unwired")
	}
	if c.Drive == nil || c.IEC == nil || c.Keyboard == nil {
		t.Fatal("New left the drive, IEC bus or keyboard unwired")
	}
}

func TestPowerOnLoadsResetVectorFromKernal(t *testing.T) {
	c := c64core.New(config.Default())
	c.Mem.KernalROM = make([]byte, 8192)
	c.Mem.KernalROM[0x1ffc] = 0x34
	c.Mem.KernalROM[0x1ffd] = 0x12
	c.PowerOn()
	if c.CPU.Regs.PC != 0x1234 {
		t.Fatalf("expected PC loaded from KERNAL reset vector 0x1234, got %#04x", c.CPU.Regs.PC)
	}
}

func TestResetLeavesDriveRunning(t *testing.T) {
	c := newMachine(t)
	c.Drive.CPU.Regs.A = 0x42
	c.Reset()
	if c.Drive.CPU.Regs.A != 0x42 {
		t.Fatal("C64 Reset must not touch the drive: real hardware's RESET line doesn't reach the 1541")
	}
}

func TestPowerOnResetsDrive(t *testing.T) {
	c := newMachine(t)
	c.Drive.CPU.Regs.A = 0x42
	c.PowerOn()
	if c.Drive.CPU.Regs.A != 0 {
		t.Fatalf("PowerOn should reset the drive's CPU, A left at %#02x", c.Drive.CPU.Regs.A)
	}
}

func TestResetDoesNotClearRAM(t *testing.T) {
	c := newMachine(t)
	c.Mem.RAM[0x0400] = 0x93
	c.Reset()
	if c.Mem.RAM[0x0400] != 0x93 {
		t.Fatal("Reset must not clear RAM: real hardware leaves memory contents undefined, not zeroed")
	}
}

func TestAttachCartridgeSetsUltimaxRouting(t *testing.T) {
	c := newMachine(t)
	c.AttachCartridge(mem.Cartridge{
		Present:  true,
		EXROMLow: true,
		GAMELow:  false,
		HiROM:    make([]byte, 0x2000),
	})
	if !c.Mem.Cart.Present {
		t.Fatal("AttachCartridge did not assign the cartridge")
	}
}
