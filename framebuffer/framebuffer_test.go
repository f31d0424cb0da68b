package framebuffer

import "testing"

func TestSetAndAt(t *testing.T) {
	var fb Framebuffer
	fb.Set(5, 42)
	if got := fb.At(5); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestSetXYMatchesLinearOffset(t *testing.T) {
	var fb Framebuffer
	fb.SetXY(3, 2, 7)
	if got := fb.At(2*Width + 3); got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestColorBarsFillsEveryPixel(t *testing.T) {
	var fb Framebuffer
	ColorBars{}.Fill(&fb)
	seen := map[byte]bool{}
	for i := 0; i < Size; i++ {
		seen[fb.At(i)] = true
	}
	if len(seen) != 7 {
		t.Fatalf("expected 7 distinct bar colors, got %d", len(seen))
	}
}

func TestBytesIsBackedBySameArray(t *testing.T) {
	var fb Framebuffer
	b := fb.Bytes()
	b[10] = 99
	if fb.At(10) != 99 {
		t.Fatal("Bytes() should expose the backing array, not a copy")
	}
}
