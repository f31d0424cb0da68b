package scanline

import (
	"testing"

	"ntsctv/framebuffer"
	"ntsctv/palette"
)

func allEqual(t *testing.T, got []uint16, want uint16) {
	t.Helper()
	for i, v := range got {
		if v != want {
			t.Fatalf("index %d: got %d, want %d", i, v, want)
		}
	}
}

func TestPreEqualizing(t *testing.T) {
	var buf Buffer
	var pal palette.Table
	var fb framebuffer.Framebuffer
	var cur Cursor

	Generate(&buf, 0, &pal, &fb, &cur, Options{})

	allEqual(t, buf[0:840], LevelSync)
	allEqual(t, buf[840:Samples], LevelBlank)
}

func TestVerticalSync(t *testing.T) {
	var buf Buffer
	var pal palette.Table
	var fb framebuffer.Framebuffer
	var cur Cursor

	Generate(&buf, 10, &pal, &fb, &cur, Options{})

	allEqual(t, buf[0:68], LevelSync)
	allEqual(t, buf[68:76], LevelBlank)

	for rep := 0; rep < 9; rep++ {
		base := 76 + rep*4
		want := [4]uint16{2, 1, 2, 3}
		for i, w := range want {
			if buf[base+i] != w {
				t.Fatalf("burst rep %d sample %d: got %d, want %d", rep, i, buf[base+i], w)
			}
		}
	}
	allEqual(t, buf[112:Samples], LevelBlank)
}

func TestActiveVideoFlatPalette(t *testing.T) {
	var buf Buffer
	var pal palette.Table
	var fb framebuffer.Framebuffer
	var cur Cursor

	pal[0] = [4]uint16{2, 2, 2, 2}

	Generate(&buf, 36, &pal, &fb, &cur, Options{})

	allEqual(t, buf[ActiveStart:ActiveStart+640], LevelBlank)
}

func TestActiveVideoPhaseAlternation(t *testing.T) {
	var buf Buffer
	var pal palette.Table
	var fb framebuffer.Framebuffer
	var cur Cursor

	fb.Set(0, 5)
	fb.Set(1, 5)
	pal[5] = [4]uint16{9, 7, 3, 5}

	Generate(&buf, 36, &pal, &fb, &cur, Options{})

	if buf[172] != 9 || buf[173] != 7 {
		t.Fatalf("pixel 0 (even): got (%d,%d), want (9,7)", buf[172], buf[173])
	}
	if buf[174] != 3 || buf[175] != 5 {
		t.Fatalf("pixel 1 (odd): got (%d,%d), want (3,5)", buf[174], buf[175])
	}
}

func TestBottomBlankIncrementsFrameCounter(t *testing.T) {
	var buf Buffer
	var pal palette.Table
	var fb framebuffer.Framebuffer
	var cur Cursor

	Generate(&buf, 276, &pal, &fb, &cur, Options{})

	allEqual(t, buf[ActiveStart:ActiveStart+640], LevelBlank)
	if cur.Frames != 1 {
		t.Fatalf("frame counter: got %d, want 1", cur.Frames)
	}
}

func TestNonClassifiedLinesAreFullyBlanked(t *testing.T) {
	var pal palette.Table
	var fb framebuffer.Framebuffer
	var cur Cursor

	for _, s := range []int{2, 5, 9, 12, 35} {
		var buf Buffer
		// Poison the buffer so a no-op branch would be caught.
		for i := range buf {
			buf[i] = 0xFFFF
		}
		Generate(&buf, s, &pal, &fb, &cur, Options{})
		allEqual(t, buf[:], LevelBlank)
	}
}

func TestGenerateNeverWritesPastBufferEnd(t *testing.T) {
	var pal palette.Table
	var fb framebuffer.Framebuffer
	var cur Cursor
	for s := 0; s < Lines; s++ {
		var buf Buffer
		Generate(&buf, s, &pal, &fb, &cur, Options{})
		if len(buf) != Samples {
			t.Fatalf("scanline %d: buffer length changed to %d", s, len(buf))
		}
	}
}

func TestPreEqualizingAndVSyncNeverTouchFramebufferOrPalette(t *testing.T) {
	var pal palette.Table
	for i := range pal {
		pal[i] = [4]uint16{0xDEAD & 0xF, 0xBEEF & 0xF, 0xCAFE & 0xF, 0xF00D & 0xF}
	}
	var fb framebuffer.Framebuffer
	for i := 0; i < framebuffer.Size; i++ {
		fb.Set(i, byte(i%256))
	}
	var cur Cursor

	for _, s := range []int{0, 1, 10, 11} {
		var buf Buffer
		Generate(&buf, s, &pal, &fb, &cur, Options{})
		for _, v := range buf {
			if v > LevelBurstHigh {
				t.Fatalf("scanline %d: sample %d outside sync/blank/burst levels, indicates palette/framebuffer leaked in", s, v)
			}
		}
	}
}

func TestFrameCursorAdvancesExactlyOneFrame(t *testing.T) {
	var pal palette.Table
	var fb framebuffer.Framebuffer
	var cur Cursor

	for s := ActiveLineStart; s < ActiveLineEnd; s++ {
		var buf Buffer
		Generate(&buf, s, &pal, &fb, &cur, Options{})
	}
	if cur.FBOffset != framebuffer.Size {
		t.Fatalf("framebuffer cursor after one frame: got %d, want %d", cur.FBOffset, framebuffer.Size)
	}
}

func TestStandardBurstModeAddsBurstToActiveLines(t *testing.T) {
	var buf Buffer
	var pal palette.Table
	var fb framebuffer.Framebuffer
	var cur Cursor

	Generate(&buf, 36, &pal, &fb, &cur, Options{StandardBurst: true})

	if buf[76] != LevelBlank || buf[77] != LevelBurstLow {
		t.Fatalf("expected burst pattern at sample 76 under StandardBurst, got %v", buf[76:80])
	}
}
