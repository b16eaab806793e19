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

// Command c64check is a headless scenario-runner harness for c64core: it
// boots a machine from supplied ROM/media images, runs it for a fixed
// cycle count (or until interactively paused from the controlling
// terminal), and reports the resulting CPU/VIC state. It has no display or
// audio sink of its own — those are out of scope for the core — but a raw
// terminal lets a developer pause and single-step without attaching a GUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/retrosys/c64core"
	"github.com/retrosys/c64core/fileformat"
	"github.com/retrosys/c64core/internal/config"
	"github.com/retrosys/c64core/internal/curated"
	"github.com/retrosys/c64core/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "c64check:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		kernalPath = flag.String("kernal", "", "path to a KERNAL ROM image")
		basicPath  = flag.String("basic", "", "path to a BASIC ROM image")
		charPath   = flag.String("char", "", "path to a character ROM image")
		drivePath  = flag.String("driverom", "", "path to a 1541 DOS ROM image")
		d64Path    = flag.String("d64", "", "path to a D64 disk image to mount")
		g64Path    = flag.String("g64", "", "path to a G64 disk image to mount")
		crtPath    = flag.String("crt", "", "path to a CRT cartridge image to attach")
		prgPath    = flag.String("prg", "", "path to a PRG to inject directly into RAM after reset")
		ntsc       = flag.Bool("ntsc", false, "build an NTSC machine instead of PAL")
		cycles     = flag.Uint64("cycles", 1000000, "number of master-clock cycles to run")
		interact   = flag.Bool("interactive", false, "pause/resume on keypress from a raw terminal")
	)
	flag.Parse()

	cfg := config.Default()
	if *ntsc {
		cfg.Model = config.ModelNTSC
	}

	c := c64core.New(cfg)

	if err := loadImages(c, *kernalPath, *basicPath, *charPath, *drivePath, *d64Path, *g64Path, *crtPath, *prgPath); err != nil {
		return err
	}

	c.PowerOn()

	var stepper rawStepper
	if *interact {
		s, err := newRawStepper()
		if err != nil {
			return curated.Errorf("c64check: opening terminal: %v", err)
		}
		defer s.Close()
		stepper = s
		fmt.Fprintln(os.Stderr, "press any key to toggle pause, ctrl-C to quit")
	}

	logger.Logf(logger.Allow, "c64check", "running %d cycles (PAL=%v)", *cycles, !*ntsc)

	var ran uint64
	for ran < *cycles {
		if stepper != nil && stepper.Paused() {
			continue
		}
		c.Cycle()
		ran++
	}

	fmt.Printf("ran %d cycles\n", ran)
	fmt.Printf("CPU: A=%02x X=%02x Y=%02x SP=%02x PC=%04x P=%s\n",
		c.CPU.Regs.A, c.CPU.Regs.X, c.CPU.Regs.Y, c.CPU.Regs.SP, c.CPU.Regs.PC, c.CPU.Regs.P)
	fmt.Printf("VIC: line=%d cycle=%d\n", c.VIC.RasterLine, c.VIC.RasterCycle)
	return nil
}

func loadImages(c *c64core.C64, kernal, basic, char, driveROM, d64, g64, crt, prg string) error {
	if kernal != "" {
		img, err := os.ReadFile(kernal)
		if err != nil {
			return curated.Errorf("c64check: reading KERNAL image: %v", err)
		}
		c.LoadKernalROM(img)
	}
	if basic != "" {
		img, err := os.ReadFile(basic)
		if err != nil {
			return curated.Errorf("c64check: reading BASIC image: %v", err)
		}
		c.LoadBasicROM(img)
	}
	if char != "" {
		img, err := os.ReadFile(char)
		if err != nil {
			return curated.Errorf("c64check: reading character ROM image: %v", err)
		}
		c.LoadCharROM(img)
	}
	if driveROM != "" {
		img, err := os.ReadFile(driveROM)
		if err != nil {
			return curated.Errorf("c64check: reading drive ROM image: %v", err)
		}
		c.LoadDriveROM(img)
	}
	if d64 != "" {
		raw, err := os.ReadFile(d64)
		if err != nil {
			return curated.Errorf("c64check: reading D64 image: %v", err)
		}
		if err := c.LoadD64Image(raw); err != nil {
			return curated.Errorf("c64check: parsing D64 image: %v", err)
		}
	}
	if g64 != "" {
		raw, err := os.ReadFile(g64)
		if err != nil {
			return curated.Errorf("c64check: reading G64 image: %v", err)
		}
		if err := c.LoadG64Image(raw); err != nil {
			return curated.Errorf("c64check: parsing G64 image: %v", err)
		}
	}
	if crt != "" {
		raw, err := os.ReadFile(crt)
		if err != nil {
			return curated.Errorf("c64check: reading CRT image: %v", err)
		}
		if err := c.LoadCartridgeImage(raw); err != nil {
			return curated.Errorf("c64check: parsing CRT image: %v", err)
		}
	}
	if prg != "" {
		raw, err := os.ReadFile(prg)
		if err != nil {
			return curated.Errorf("c64check: reading PRG: %v", err)
		}
		p, err := fileformat.LoadPRG(raw)
		if err != nil {
			return curated.Errorf("c64check: parsing PRG: %v", err)
		}
		c.InjectProgram(p)
	}
	return nil
}

// rawStepper is satisfied by the platform-specific raw-terminal backends:
// one built on golang.org/x/term (the default), one on
// github.com/pkg/term/termios (selected with the termios build tag,
// mirroring the teacher's choice between its plainterm and easyterm
// debugger backends).
type rawStepper interface {
	Paused() bool
	Close()
}
