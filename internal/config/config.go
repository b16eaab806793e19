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

// Package config holds the emulator's power-on configuration: which
// VIC/CIA model pair to build, whether warp mode starts engaged, and the
// handful of documented hardware-quirk toggles (gray-dot bug, randomized
// RAM at reset).
package config

import (
	"github.com/retrosys/c64core/cia"
	"github.com/retrosys/c64core/vic"
)

// Model is one named, internally consistent combination of VIC-II/CIA
// models and raster geometry that corresponds to a real C64 variant.
type Model int

const (
	ModelPAL Model = iota
	ModelNTSC
	ModelNTSCOld // the 6567R56A early-NTSC board, 262 lines/64 cycles
)

// Config is the set of choices that must be fixed before a C64 instance is
// built; nothing in here changes at runtime.
type Config struct {
	Model Model

	// GrayDotBug reproduces the VIC-II colour-latch glitch present on some
	// chip revisions.
	GrayDotBug bool

	// RandomizeRAMAtReset fills RAM with pseudo-random noise on power-on
	// instead of zeroing it, matching real hardware's undefined startup
	// state; disabled by default for reproducible test runs.
	RandomizeRAMAtReset bool

	// WarpOnStart engages warp mode (no wall-clock frame pacing) from the
	// first frame.
	WarpOnStart bool
}

// Default returns a PAL configuration with every quirk toggle off.
func Default() Config {
	return Config{Model: ModelPAL}
}

// VICModel maps this configuration's Model to the vic package's model
// enum.
func (c Config) VICModel() vic.Model {
	switch c.Model {
	case ModelNTSC:
		return vic.Model6567NTSC
	case ModelNTSCOld:
		return vic.Model6567NTSCR56A
	default:
		return vic.Model6569PAL
	}
}

// CIAModel maps this configuration's Model to the cia package's model
// enum; CIA 8521 is paired with the NTSC board family on real hardware,
// 6526 with PAL.
func (c Config) CIAModel() cia.Model {
	if c.Model == ModelPAL {
		return cia.Model6526
	}
	return cia.Model8521
}

// TODFrequency is the CIA TOD clock's line-frequency input: 50 Hz on PAL
// boards, 60 Hz on NTSC.
func (c Config) TODFrequency() int {
	if c.Model == ModelPAL {
		return 50
	}
	return 60
}
