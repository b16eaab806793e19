package vic

import "math"

// MonoMode selects a monochrome palette override; Off keeps the computed
// colour palette.
type MonoMode int

const (
	MonoOff MonoMode = iota
	MonoPaperWhite
	MonoGreen
	MonoAmber
	MonoSepia
)

// hueAngle is the colour-wheel angle, in degrees, for each of the VIC-II's
// 16 palette entries; grayscale entries (black, white, the three grays) carry
// a zero angle and are forced to zero saturation in Palette.entry.
var hueAngle = [16]float64{
	0, 0, 112, 292, 56, 236, 180, 0,
	28, 208, 0, 0, 0, 292, 0, 0,
}

// luma is the model-independent luminance (0..1) assigned to each entry,
// loosely following the commonly measured VICE/Pepto luminance ordering.
var luma = [16]float64{
	0.00, 1.00, 0.30, 0.60, 0.36, 0.48, 0.24, 0.78,
	0.36, 0.24, 0.54, 0.30, 0.42, 0.66, 0.42, 0.60,
}

// saturated marks which entries carry chroma at all; black/white/gray1/
// gray2/gray3 are pure luma.
var saturated = [16]bool{
	false, false, true, true, true, true, true, true,
	true, true, true, false, false, true, true, false,
}

// RGB is a generated, gamma-corrected palette colour.
type RGB struct {
	R, G, B uint8
}

// Adjust carries the user-facing brightness/contrast/saturation/hue knobs
// applied before YUV->RGB conversion, mirroring the teacher's colour
// adjustment struct.
type Adjust struct {
	Brightness float64
	Contrast   float64
	Saturation float64
	Hue        float64 // degrees, added to every hue angle
}

// DefaultAdjust matches typical C64 display defaults: unity contrast and
// brightness, full saturation, no hue shift.
func DefaultAdjust() Adjust {
	return Adjust{Brightness: 1.0, Contrast: 1.0, Saturation: 1.0, Hue: 0}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func gammaCorrect(v, gamma float64) float64 {
	return math.Pow(clamp01(v), 1.0/gamma)
}

// Palette holds the computed 16-entry RGB table for one model/gamma/mono
// combination; Build regenerates it from the luma/hue primitives per
// spec.md's documented luma-table/hue-angle/YUV->RGB/gamma pipeline.
type Palette struct {
	Model Model
	Adjust Adjust
	Gamma  float64
	Mono   MonoMode

	entries [16]RGB
}

func NewPalette(model Model) *Palette {
	p := &Palette{Model: model, Adjust: DefaultAdjust(), Gamma: 2.2}
	if model != Model6567NTSC && model != Model6567NTSCR56A {
		p.Gamma = 2.8 // PAL sets before correction; see Build
	}
	p.Build()
	return p
}

// Build regenerates every palette entry from the luma table, the hue-angle
// table, and the current adjustment knobs.
func (p *Palette) Build() {
	for i := 0; i < 16; i++ {
		p.entries[i] = p.entry(i)
	}
}

func (p *Palette) entry(i int) RGB {
	Y := luma[i] * p.Adjust.Brightness
	Y = 0.5 + (Y-0.5)*p.Adjust.Contrast

	var U, V float64
	if saturated[i] && p.Mono == MonoOff {
		phi := (hueAngle[i] + p.Adjust.Hue) * math.Pi / 180
		sat := 0.4 * p.Adjust.Saturation
		U = sat * math.Sin(phi)
		V = sat * math.Cos(phi)
	}

	if p.Mono != MonoOff {
		U, V = p.monoUV()
	}

	// PAL models apply a gamma curve closer to 2.8 before display
	// correction normalises it back toward 2.2, per the documented PAL
	// gamma range; NTSC models use 2.2 throughout.
	gamma := p.Gamma
	if p.Model != Model6567NTSC && p.Model != Model6567NTSCR56A {
		gamma = 2.8 - (2.8-2.2)*clamp01(1.0/p.Gamma)
	}

	R := clamp01(Y + 1.140*V)
	G := clamp01(Y - 0.395*U - 0.581*V)
	B := clamp01(Y + 2.033*U)

	return RGB{
		R: uint8(gammaCorrect(R, gamma) * 255),
		G: uint8(gammaCorrect(G, gamma) * 255),
		B: uint8(gammaCorrect(B, gamma) * 255),
	}
}

// monoUV returns the fixed chroma override for a monochrome display mode;
// paper-white carries no chroma, the others tint toward their named colour.
func (p *Palette) monoUV() (float64, float64) {
	switch p.Mono {
	case MonoGreen:
		return -0.10, -0.05
	case MonoAmber:
		return -0.08, 0.18
	case MonoSepia:
		return -0.03, 0.10
	default:
		return 0, 0
	}
}

// Lookup returns the RGB for one of the 16 VIC colour codes (0-15).
func (p *Palette) Lookup(code uint8) RGB {
	return p.entries[code&0x0f]
}
