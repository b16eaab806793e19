package drive

import (
	"github.com/retrosys/c64core/cpu6502"
	"github.com/retrosys/c64core/disk"
	"github.com/retrosys/c64core/iec"
)

// Drive is a complete 1541: its own 6502, RAM/ROM/VIA address space, and
// head/media interface. It runs on an independent clock from the C64;
// C64.Cycle interleaves it by calling Tick whenever NextClock falls due.
type Drive struct {
	CPU    *cpu6502.CPU
	Memory *Memory

	lastPhase   int
	motorOn     bool
	writeGateOn bool

	// nextClock/nextCarry track the drive's own clock domain in
	// tenths-of-a-nanosecond units so the scheduler can interleave the two
	// CPUs by comparing "who is due next" rather than a fixed ratio.
	NextClock uint64
	NextCarry uint64

	IEC *iec.DriveConnector
}

func New() *Drive {
	mem := NewMemory()
	d := &Drive{Memory: mem}
	d.CPU = cpu6502.New(mem)

	mem.VIA2.Hooks.WriteB = d.onVIA2PortBWrite
	mem.VIA1.Hooks.ReadB = d.onVIA1PortBRead
	mem.VIA1.Hooks.WriteB = d.onVIA1PortBWrite
	mem.Head.ByteReady = d.onByteReady

	return d
}

// Plumb attaches the drive to a shared IEC bus, wiring VIA1 port B to the
// bus's CLOCK/DATA/ATN lines via the standard drive-side pin assignment.
func (d *Drive) Plumb(bus *iec.Bus, name string) {
	conn := iec.DriveConnector{Bus: bus, Name: name}
	d.IEC = &conn
}

// Reset powers the drive on: both VIAs and the CPU reset, then the CPU
// loads its vector once ROM is mapped. The head's position and the
// inserted media are untouched, matching real hardware (a reset doesn't
// move the stepper motor).
func (d *Drive) Reset() {
	d.Memory.VIA1.Reset()
	d.Memory.VIA2.Reset()
	d.CPU.Reset()
	d.CPU.LoadResetVector()
}

func (d *Drive) InsertDisk(m *disk.Media) {
	d.Memory.InsertDisk(m)
}

// onVIA2PortBWrite decodes the stepper-motor phase bits, spindle motor
// enable, and write gate from the DOS's writes to VIA2 port B.
func (d *Drive) onVIA2PortBWrite(value, ddr uint8) {
	phase := int(value & 0x03)
	if phase != d.lastPhase {
		diff := (phase - d.lastPhase + 4) % 4
		if diff == 1 {
			d.Memory.Head.StepIn()
		} else if diff == 3 {
			d.Memory.Head.StepOut()
		}
		d.lastPhase = phase
	}
	d.motorOn = value&0x04 != 0
	d.writeGateOn = value&0x02 == 0 // active low in the real circuit
}

// onByteReady is the head's byte-ready edge, wired the way the real 1541
// wires it: straight into VIA2 CA1 (so firmware polling the interrupt flag
// register sees it) and directly onto the drive CPU's V flag via the 6502's
// SO pin, letting the DOS poll BVS instead of handling an interrupt.
func (d *Drive) onByteReady(value uint8) {
	d.Memory.VIA2.SetCA1(true)
	d.Memory.VIA2.SetCA1(false)
	d.CPU.Regs.P |= cpu6502.FlagV
}

// onVIA1PortBRead overlays the bus's DATA IN / CLOCK IN / ATN IN levels
// onto VIA1 port B's input bits.
func (d *Drive) onVIA1PortBRead(ddr uint8) uint8 {
	if d.IEC == nil {
		return 0
	}
	return d.IEC.ToPB() &^ ddr
}

// onVIA1PortBWrite republishes the drive's DATA OUT / CLOCK OUT bits onto
// the shared IEC bus whenever the DOS writes port B.
func (d *Drive) onVIA1PortBWrite(value, ddr uint8) {
	if d.IEC == nil {
		return
	}
	d.IEC.FromPB(value & ddr)
}

// Tick runs the drive for one of its own clock cycles. The 6502 is clocked
// continuously regardless of the spindle motor, exactly as on real
// hardware: the motor only spins the disk under the head, not the CPU, so
// the DOS's idle/IEC-handshake loop can always run to notice a command and
// turn the motor on in the first place. The head itself only advances
// while the motor is on, since no disk surface passes under it otherwise.
// The head's bit clock runs at 16 MHz, so each 1 MHz drive cycle advances
// it by 16 head ticks.
func (d *Drive) Tick() {
	if d.IEC != nil {
		d.Memory.VIA1.SetCA1(d.IEC.ATNAsserted())
	}
	if d.motorOn {
		for i := 0; i < 16; i++ {
			d.Memory.Head.Tick(d.writeGateOn)
		}
	}
	d.Memory.VIA1.Tick()
	d.Memory.VIA2.Tick()

	d.CPU.NMI = false
	d.CPU.IRQ = d.Memory.VIA1.IRQ() || d.Memory.VIA2.IRQ()

	d.CPU.ExecuteOneCycle()
}
