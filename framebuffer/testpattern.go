package framebuffer

// ColorBars is a reference framebuffer.Source, standing in for the
// out-of-scope content producer in demos and tests. It fills the frame with
// vertical SMPTE-style bars, each bar assigned the nearest index of the
// 6x6x6 color cube laid out by palette.StandardVGA (indices 16..231).
type ColorBars struct{}

// barIndices are the StandardVGA cube indices nearest to the seven SMPTE bar
// colors (gray, yellow, cyan, green, magenta, red, blue), picked from the
// 6-level ramp {0,51,102,153,204,255}.
var barIndices = [7]byte{
	cubeIndex(4, 4, 4), // gray
	cubeIndex(4, 4, 0), // yellow
	cubeIndex(0, 4, 4), // cyan
	cubeIndex(0, 4, 0), // green
	cubeIndex(4, 0, 4), // magenta
	cubeIndex(4, 0, 0), // red
	cubeIndex(0, 0, 4), // blue
}

func cubeIndex(r, g, b int) byte {
	return byte(16 + r*36 + g*6 + b)
}

// Fill implements framebuffer.Source.
func (ColorBars) Fill(fb *Framebuffer) {
	barWidth := Width / 7
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			bar := x / barWidth
			if bar >= 7 {
				bar = 6
			}
			fb.SetXY(x, y, barIndices[bar])
		}
	}
}
