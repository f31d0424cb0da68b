// Package scanline implements the core algorithm of the engine: given a
// scanline index in [0,Lines), it writes the 908 composite samples for that
// line into a caller-owned buffer, classifying the index into one of the
// five NTSC frame regions.
package scanline

import (
	"ntsctv/framebuffer"
	"ntsctv/palette"
)

// Samples is the fixed line length: 908 samples at 14.31818 MHz per
// scanline (Lines lines/frame, non-interlaced).
const Samples = 908

// Lines is the number of scanlines per frame. The reference describes the
// scanline index as wrapping "modulo 262", but its own region table runs
// through s=277 (bottom blank); 262 would make that line unreachable. 278
// is the value consistent with the literal region boundaries (2 pre-eq + 8
// + 2 vsync + 24 top blank + 240 active + 2 bottom blank = 278); see
// DESIGN.md for the resolution.
const Lines = 278

// Sample levels in the 3-bit (0..11) PWM domain.
const (
	LevelSync      = 0
	LevelBurstLow  = 1
	LevelBlank     = 2
	LevelBurstHigh = 3
)

// ActiveStart is the horizontal blanking prefix length: 68 (hsync) + 8
// (back porch pre-burst) + 36 (9 burst cycles x 4 samples) + 60 (remaining
// back porch) = 172 samples at the head of every active-video and
// bottom-blank line, filled with LevelBlank.
const ActiveStart = 172

// ActiveLineStart and ActiveLineEnd bound the active-video region, s in
// [36,276).
const (
	ActiveLineStart = 36
	ActiveLineEnd   = 276
)

// FrameWidth is the number of framebuffer pixels encoded per active line.
const FrameWidth = framebuffer.Width

var burstPattern = [4]uint16{LevelBlank, LevelBurstLow, LevelBlank, LevelBurstHigh}

// Buffer is one scanline's worth of samples, word-aligned for DMA transfer.
type Buffer [Samples]uint16

// Cursor is the generator's private state: the scanline index is tracked by
// the caller (*engine.Engine), but the framebuffer read position and frame
// counter live here since they only make sense in terms of "how far through
// the frame has active video progressed".
type Cursor struct {
	// FBOffset is the byte offset into the framebuffer of the next pixel to
	// read. Reset to 0 at the first active scanline of each frame.
	FBOffset int
	// Frames counts completed frames; incremented on the first bottom-blank
	// line (s==276), matching the reference's frame-counter placement.
	Frames uint64
}

// Options controls generator behavior where two reasonable conventions
// exist.
type Options struct {
	// StandardBurst, when true, emits color burst on every active-video and
	// bottom-blank line in addition to the vertical-sync lines, matching the
	// NTSC standard rather than burst-on-sync-lines-only behavior. Defaults
	// to false, so burst appears only on s=10,11 unless explicitly opted
	// into.
	StandardBurst bool
}

// Generate writes exactly Samples values into buf for scanline index s,
// classifying s into pre-equalizing, vertical-sync, top-blank, active-video
// or bottom-blank. Every region is fully written: regions with no active
// content (top-blank, the wrapped tail) are explicitly filled with
// LevelBlank rather than left untouched, so Generate's output never depends
// on buf's prior contents.
func Generate(buf *Buffer, s int, pal *palette.Table, fb *framebuffer.Framebuffer, cur *Cursor, opts Options) {
	switch {
	case s == 0 || s == 1:
		genPreEqualizing(buf)
	case s == 10 || s == 11:
		genVSync(buf)
	case s >= ActiveLineStart && s < ActiveLineEnd:
		if s == ActiveLineStart {
			cur.FBOffset = 0
		}
		genActive(buf, pal, fb, cur, opts)
	case s == 276 || s == 277:
		if s == 276 {
			cur.Frames++
		}
		genBottomBlank(buf, opts)
	default:
		genBlankLine(buf)
	}
}

func genPreEqualizing(buf *Buffer) {
	for i := 0; i < 840; i++ {
		buf[i] = LevelSync
	}
	for i := 840; i < Samples; i++ {
		buf[i] = LevelBlank
	}
}

func genVSync(buf *Buffer) {
	for i := 0; i < 68; i++ {
		buf[i] = LevelSync
	}
	for i := 68; i < 76; i++ {
		buf[i] = LevelBlank
	}
	i := 76
	for rep := 0; rep < 9; rep++ {
		buf[i], buf[i+1], buf[i+2], buf[i+3] = burstPattern[0], burstPattern[1], burstPattern[2], burstPattern[3]
		i += 4
	}
	for ; i < Samples; i++ {
		buf[i] = LevelBlank
	}
}

func genBlankLine(buf *Buffer) {
	for i := range buf {
		buf[i] = LevelBlank
	}
}

func genActive(buf *Buffer, pal *palette.Table, fb *framebuffer.Framebuffer, cur *Cursor, opts Options) {
	for i := 0; i < ActiveStart; i++ {
		buf[i] = LevelBlank
	}
	if opts.StandardBurst {
		writeBurst(buf)
	}

	out := ActiveStart
	off := cur.FBOffset
	for px := 0; px < FrameWidth; px++ {
		p := fb.At(off)
		off++

		phaseOffset := Phase0Offset
		if px&1 == 1 {
			phaseOffset = Phase180Offset
		}
		buf[out] = pal[p][phaseOffset]
		buf[out+1] = pal[p][phaseOffset+1]
		out += 2
	}
	cur.FBOffset = off

	for ; out < Samples; out++ {
		buf[out] = LevelBlank
	}
}

func genBottomBlank(buf *Buffer, opts Options) {
	for i := 0; i < ActiveStart; i++ {
		buf[i] = LevelBlank
	}
	if opts.StandardBurst {
		writeBurst(buf)
	}
	for i := ActiveStart; i < ActiveStart+640; i++ {
		buf[i] = LevelBlank
	}
	for i := ActiveStart + 640; i < Samples; i++ {
		buf[i] = LevelBlank
	}
}

// writeBurst overlays the color-burst pattern at its standard position
// (sample 76) for standards-correct burst-on-every-line mode.
func writeBurst(buf *Buffer) {
	i := 76
	for rep := 0; rep < 9; rep++ {
		buf[i], buf[i+1], buf[i+2], buf[i+3] = burstPattern[0], burstPattern[1], burstPattern[2], burstPattern[3]
		i += 4
	}
}

// Palette phase offsets for even/odd pixels: an even pixel at sample
// position 2k lands on phases (0,90) -> offsets (0,1); an odd pixel at
// position 2k+2 lands on phases (180,270) -> offsets (2,3).
const (
	Phase0Offset   = 0
	Phase180Offset = 2
)
