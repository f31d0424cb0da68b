package palette

// StandardVGA reproduces the canonical 256-entry VGA-style palette the
// reference firmware hard-codes as a literal table: the first 16 entries
// are the classic EGA/VGA text-mode colors, followed by a 6x6x6 color cube
// (216 entries) and a 24-step grayscale ramp, for exactly 256 entries.
func StandardVGA() [256][3]uint8 {
	var p [256][3]uint8

	copy(p[0:16], egaColors[:])

	ramp := [6]uint8{0, 51, 102, 153, 204, 255}
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[i] = [3]uint8{ramp[r], ramp[g], ramp[b]}
				i++
			}
		}
	}

	for step := 0; step < 24; step++ {
		v := uint8(8 + step*10)
		p[i] = [3]uint8{v, v, v}
		i++
	}

	return p
}

var egaColors = [16][3]uint8{
	{0, 0, 0},       // black
	{0, 0, 170},     // blue
	{0, 170, 0},     // green
	{0, 170, 170},   // cyan
	{170, 0, 0},     // red
	{170, 0, 170},   // magenta
	{170, 85, 0},    // brown
	{170, 170, 170}, // light gray
	{85, 85, 85},    // dark gray
	{85, 85, 255},   // light blue
	{85, 255, 85},   // light green
	{85, 255, 255},  // light cyan
	{255, 85, 85},   // light red
	{255, 85, 255},  // light magenta
	{255, 255, 85},  // yellow
	{255, 255, 255}, // white
}
