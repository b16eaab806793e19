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

package c64core

import (
	"io"

	"github.com/retrosys/c64core/cia"
	"github.com/retrosys/c64core/drive"
	"github.com/retrosys/c64core/internal/snapshot"
	"github.com/retrosys/c64core/mem"
	"github.com/retrosys/c64core/vic"
)

// snapshotScratch holds the plain-struct copies of chip-internal state
// that each package only exposes via State()/SetState(); the descriptors
// built from these reference the scratch copies rather than the live
// chips, since the live state lives behind unexported fields in other
// packages.
type snapshotScratch struct {
	vic       vic.State
	cia1      cia.State
	cia2      cia.State
	port      mem.PortState
	driveVIA1 drive.VIAState
	driveVIA2 drive.VIAState
	head      drive.HeadState
}

// descriptors builds the full set of component descriptors for this
// machine, in the order declared by §3.4's snapshot layout: header is
// handled by the snapshot package itself, components follow in a fixed
// order. RAM, color RAM, the cartridge image, disk media and head position
// are tagged KeepOnReset, matching real hardware where RESET doesn't
// disturb memory contents or drive state; everything else is
// ClearOnReset.
func (c *C64) descriptors() ([]snapshot.Descriptor, *snapshotScratch) {
	s := &snapshotScratch{
		vic:       c.VIC.State(),
		cia1:      c.CIA1.State(),
		cia2:      c.CIA2.State(),
		port:      c.Mem.PortState(),
		driveVIA1: c.Drive.Memory.VIA1.State(),
		driveVIA2: c.Drive.Memory.VIA2.State(),
		head:      c.Drive.Memory.Head.State(),
	}

	descriptors := []snapshot.Descriptor{
		{
			Component: "cpu",
			Fields: []snapshot.Field{
				{Name: "regs", Value: &c.CPU.Regs, Policy: snapshot.ClearOnReset},
				{Name: "cycle", Value: &c.CPU.Cycle, Policy: snapshot.ClearOnReset},
				{Name: "rdy", Value: &c.CPU.RDY, Policy: snapshot.ClearOnReset},
				{Name: "nmi", Value: &c.CPU.NMI, Policy: snapshot.ClearOnReset},
				{Name: "irq", Value: &c.CPU.IRQ, Policy: snapshot.ClearOnReset},
				{Name: "killed", Value: &c.CPU.Killed, Policy: snapshot.ClearOnReset},
				{Name: "state", Value: &c.CPU.State, Policy: snapshot.ClearOnReset},
			},
		},
		{
			Component: "mem",
			Fields: []snapshot.Field{
				{Name: "ram", Value: &c.Mem.RAM, Policy: snapshot.KeepOnReset},
				{Name: "colorram", Value: &c.Mem.ColorRAM, Policy: snapshot.KeepOnReset},
				{Name: "cart", Value: &c.Mem.Cart, Policy: snapshot.KeepOnReset},
				{Name: "port", Value: &s.port, Policy: snapshot.ClearOnReset},
			},
		},
		{
			Component: "vic",
			Fields: []snapshot.Field{
				{Name: "state", Value: &s.vic, Policy: snapshot.ClearOnReset},
			},
		},
		{
			Component: "cia1",
			Fields: []snapshot.Field{
				{Name: "state", Value: &s.cia1, Policy: snapshot.ClearOnReset},
			},
		},
		{
			Component: "cia2",
			Fields: []snapshot.Field{
				{Name: "state", Value: &s.cia2, Policy: snapshot.ClearOnReset},
			},
		},
		{
			Component: "drive",
			Fields: []snapshot.Field{
				{Name: "cpu_regs", Value: &c.Drive.CPU.Regs, Policy: snapshot.ClearOnReset},
				{Name: "cpu_cycle", Value: &c.Drive.CPU.Cycle, Policy: snapshot.ClearOnReset},
				{Name: "cpu_killed", Value: &c.Drive.CPU.Killed, Policy: snapshot.ClearOnReset},
				{Name: "ram", Value: &c.Drive.Memory.RAM, Policy: snapshot.KeepOnReset},
				{Name: "via1", Value: &s.driveVIA1, Policy: snapshot.ClearOnReset},
				{Name: "via2", Value: &s.driveVIA2, Policy: snapshot.ClearOnReset},
				{Name: "head", Value: &s.head, Policy: snapshot.KeepOnReset},
			},
		},
	}
	return descriptors, s
}

// Snapshot serializes the machine's complete state to out.
func (c *C64) Snapshot(out io.Writer) error {
	descriptors, _ := c.descriptors()
	w := snapshot.NewWriter()
	for _, d := range descriptors {
		w.Add(d)
	}
	return w.Encode(out)
}

// LoadSnapshot restores a previously captured state from in, replacing
// everything currently running. Cartridge and disk media must already be
// attached the same way they were when the snapshot was taken; this only
// restores register and timing state, not which ROM images are mapped.
func (c *C64) LoadSnapshot(in io.Reader) error {
	descriptors, s := c.descriptors()
	if err := snapshot.Decode(in, descriptors); err != nil {
		return err
	}
	c.VIC.SetState(s.vic)
	c.CIA1.SetState(s.cia1)
	c.CIA2.SetState(s.cia2)
	c.Mem.SetPortState(s.port)
	c.Drive.Memory.VIA1.SetState(s.driveVIA1)
	c.Drive.Memory.VIA2.SetState(s.driveVIA2)
	c.Drive.Memory.Head.SetState(s.head)
	return nil
}
