// Package palette implements the color encoder: converting 8-bit RGB
// palette entries into the four quadrature-phase composite sample values
// the scanline generator stores per pixel.
package palette

import "fmt"

// Table holds, for each of the 256 indexed colors, the four composite
// samples at subcarrier phases 0, 90, 180 and 270 degrees. Every stored
// sample is guaranteed to fit in the PWM output range [0,11].
type Table [256][4]uint16

// Phase offsets into a Table entry, matching the generator's
// palette[p*4+offset] indexing.
const (
	Phase0 = 0
	Phase90 = 1
	Phase180 = 2
	Phase270 = 3
)

// maxSample is the top of the PWM output range [0,11]; clamp limits every
// stored sample to it.
const (
	maxSample = 11
)

// Magic coefficients from the reference encoder. Preserve bit-exact: they
// encode the 0.4921/0.8773 chroma weights and the Y scaling, all folded into
// a common 65536 denominator, tuned empirically for the 12-level output
// range. Do not "simplify" these.
const (
	yScale    = 1792
	byWeight0 = 441
	ryWeight0 = 1361
	byWeight90 = 764
	ryWeight90 = -786
	bias       = 2*65536 + 32768
)

// BuildReport records which palette indices required clamping during Build,
// so a caller can detect a miscalibrated input palette.
type BuildReport struct {
	ClampedLow  []int
	ClampedHigh []int
}

func (r BuildReport) String() string {
	if len(r.ClampedLow) == 0 && len(r.ClampedHigh) == 0 {
		return "palette: all 256 entries within range"
	}
	return fmt.Sprintf("palette: %d entries clamped low, %d clamped high", len(r.ClampedLow), len(r.ClampedHigh))
}

// Encoder builds a Table from a sequence of RGB entries.
type Encoder struct {
	table  Table
	report BuildReport
}

// SetEntry populates the four phase samples for palette index i from the
// 8-bit components (B, R, G), matching the reference's
// set_palette_entry(index, B, R, G) collaborator interface.
func (e *Encoder) SetEntry(i int, b, r, g uint8) {
	y := (77*int(r) + 150*int(g) + 29*int(b) + 128) / 256

	by := int(b) - y
	ry := int(r) - y

	p0 := (y*yScale + by*byWeight0 + ry*ryWeight0 + bias) / 65536
	p90 := (y*yScale + by*byWeight90 + ry*ryWeight90 + bias) / 65536
	p180 := (y*yScale - by*byWeight0 - ry*ryWeight0 + bias) / 65536
	p270 := (y*yScale - by*byWeight90 - ry*ryWeight90 + bias) / 65536

	e.table[i][Phase0] = e.clamp(i, p0)
	e.table[i][Phase90] = e.clamp(i, p90)
	e.table[i][Phase180] = e.clamp(i, p180)
	e.table[i][Phase270] = e.clamp(i, p270)
}

func (e *Encoder) clamp(i, v int) uint16 {
	if v < 0 {
		e.report.ClampedLow = append(e.report.ClampedLow, i)
		return 0
	}
	if v > maxSample {
		e.report.ClampedHigh = append(e.report.ClampedHigh, i)
		return maxSample
	}
	return uint16(v)
}

// Build finalizes the table and returns it along with a clamp report.
func (e *Encoder) Build() (Table, BuildReport) {
	return e.table, e.report
}

// BuildFrom is a convenience that loads a full 256-entry RGB palette (as
// produced by StandardVGA, or any caller-supplied source) in one call.
func BuildFrom(entries [256][3]uint8) (Table, BuildReport) {
	var e Encoder
	for i, c := range entries {
		r, g, b := c[0], c[1], c[2]
		e.SetEntry(i, b, r, g)
	}
	return e.Build()
}
