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
	"bytes"
	"testing"

	"github.com/retrosys/c64core"
	"github.com/retrosys/c64core/cia"
	"github.com/retrosys/c64core/internal/config"
)

func TestSnapshotRoundTripsCPUAndMemory(t *testing.T) {
	c := c64core.New(config.Default())
	c.PowerOn()

	c.Mem.RAM[0x1000] = 0xaa
	c.CPU.Regs.A = 0x55
	c.CPU.Regs.PC = 0x0812
	c.CIA1.Write(cia.RegTALO, 0x34)
	c.CIA1.Write(cia.RegTAHI, 0x12)

	var buf bytes.Buffer
	if err := c.Snapshot(&buf); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	// Mutate everything the snapshot captured, then restore over it.
	c.Mem.RAM[0x1000] = 0x00
	c.CPU.Regs.A = 0x00
	c.CPU.Regs.PC = 0x0000
	c.CIA1.Write(cia.RegTALO, 0)
	c.CIA1.Write(cia.RegTAHI, 0)

	if err := c.LoadSnapshot(&buf); err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if c.Mem.RAM[0x1000] != 0xaa {
		t.Fatalf("RAM not restored: got %#02x", c.Mem.RAM[0x1000])
	}
	if c.CPU.Regs.A != 0x55 {
		t.Fatalf("CPU.Regs.A not restored: got %#02x", c.CPU.Regs.A)
	}
	if c.CPU.Regs.PC != 0x0812 {
		t.Fatalf("CPU.Regs.PC not restored: got %#04x", c.CPU.Regs.PC)
	}
	if got := c.CIA1.Read(cia.RegTALO); got != 0x34 {
		t.Fatalf("CIA1 timer A low byte not restored: got %#02x", got)
	}
	if got := c.CIA1.Read(cia.RegTAHI); got != 0x12 {
		t.Fatalf("CIA1 timer A high byte not restored: got %#02x", got)
	}
}

func TestSnapshotRoundTripsVICRasterPosition(t *testing.T) {
	c := c64core.New(config.Default())
	c.PowerOn()

	for i := 0; i < 1000; i++ {
		c.Cycle()
	}
	wantLine, wantCycle := c.VIC.RasterLine, c.VIC.RasterCycle

	var buf bytes.Buffer
	if err := c.Snapshot(&buf); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	for i := 0; i < 1000; i++ {
		c.Cycle()
	}

	if err := c.LoadSnapshot(&buf); err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if c.VIC.RasterLine != wantLine || c.VIC.RasterCycle != wantCycle {
		t.Fatalf("VIC raster position not restored: got line=%d cycle=%d, want line=%d cycle=%d",
			c.VIC.RasterLine, c.VIC.RasterCycle, wantLine, wantCycle)
	}
}

func TestSnapshotKeepsRAMAcrossReset(t *testing.T) {
	c := c64core.New(config.Default())
	c.PowerOn()

	c.Mem.RAM[0xc000] = 0x7f
	c.CPU.Regs.A = 0x11

	var buf bytes.Buffer
	if err := c.Snapshot(&buf); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	c.Reset()
	if c.Mem.RAM[0xc000] != 0x7f {
		t.Fatal("Reset must not have cleared RAM before LoadSnapshot even ran")
	}

	if err := c.LoadSnapshot(&buf); err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if c.Mem.RAM[0xc000] != 0x7f {
		t.Fatal("RAM should still read back correctly after a snapshot load")
	}
	if c.CPU.Regs.A != 0x11 {
		t.Fatalf("CPU register state not restored after reset+load: got %#02x", c.CPU.Regs.A)
	}
}
