// Package framebuffer defines the indexed-color pixel buffer that an
// external content producer fills and the scanline generator reads. The
// framebuffer itself carries no synchronization: readers may observe torn
// writes, accepted here as a visual artifact only.
package framebuffer

// Width and Height are the fixed frame dimensions.
const (
	Width  = 320
	Height = 240
)

// Size is the total pixel count, and thus the framebuffer's byte length.
const Size = Width * Height

// Framebuffer is a 320x240 array of palette indices, scanned top-to-bottom,
// left-to-right, once per frame by the generator's read cursor.
type Framebuffer struct {
	pixels [Size]byte
}

// At returns the palette index at linear offset i (0..Size-1).
func (f *Framebuffer) At(i int) byte {
	return f.pixels[i]
}

// Set stores a palette index at linear offset i. Used by content producers;
// the engine never calls this.
func (f *Framebuffer) Set(i int, index byte) {
	f.pixels[i] = index
}

// SetXY stores a palette index at pixel coordinate (x,y).
func (f *Framebuffer) SetXY(x, y int, index byte) {
	f.pixels[y*Width+x] = index
}

// Bytes exposes the raw backing array for bulk fills by a content producer
// (e.g. a decoder writing a full frame in one copy).
func (f *Framebuffer) Bytes() []byte {
	return f.pixels[:]
}

// Source is the collaborator interface for the out-of-scope pixel-content
// producer: anything that can fill a Framebuffer at its own pace, with no
// handshake and no completion signal.
type Source interface {
	Fill(fb *Framebuffer)
}
