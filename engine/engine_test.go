package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"ntsctv/dma"
	"ntsctv/framebuffer"
	"ntsctv/palette"
	"ntsctv/platform"
	"ntsctv/pwm"
)

type badBringup struct{}

func (badBringup) Init() (platform.ClockTree, error) {
	return platform.ClockTree{}, nil // zero-value clock tree fails Validate
}

func TestNewRejectsBadClockTree(t *testing.T) {
	_, err := New(Config{Bringup: badBringup{}, Palette: palette.StandardVGA()})
	if err == nil {
		t.Fatal("expected an error for an invalid clock tree")
	}
	var ierr *InitError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected *InitError, got %T: %v", err, err)
	}
	if ierr.Kind != KindClock {
		t.Fatalf("got kind %q, want %q", ierr.Kind, KindClock)
	}
}

func TestNewAcceptsStandardPaletteAndClock(t *testing.T) {
	eng, err := New(Config{
		Bringup: platform.NoopBringup{},
		Palette: palette.StandardVGA(),
		Sink:    pwm.NullSink{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eng == nil {
		t.Fatal("expected a non-nil engine")
	}
	eng.Close()
}

func TestNewReturnsDMAChannelExhaustedError(t *testing.T) {
	var engines []*Engine
	defer func() {
		for _, eng := range engines {
			eng.Close()
		}
	}()

	for {
		eng, err := New(Config{
			Bringup: platform.NoopBringup{},
			Palette: palette.StandardVGA(),
			Sink:    pwm.NullSink{},
		})
		if err != nil {
			var ierr *InitError
			if !errors.As(err, &ierr) {
				t.Fatalf("expected *InitError, got %T: %v", err, err)
			}
			if ierr.Kind != KindDMA {
				t.Fatalf("got kind %q, want %q", ierr.Kind, KindDMA)
			}
			return
		}
		engines = append(engines, eng)
		if len(engines) > dma.TotalChannels {
			t.Fatal("New never reported DMA channel exhaustion")
		}
	}
}

func TestEngineRunsAndCountsFrames(t *testing.T) {
	fb := &framebuffer.Framebuffer{}
	framebuffer.ColorBars{}.Fill(fb)

	// Speed the simulated transport up drastically for the test; a real
	// deployment leaves lineDuration at the hardware sample rate. New() reads
	// the package var when it builds the DMA pair, so set it first.
	savedDuration := lineDuration
	lineDuration = time.Microsecond
	defer func() { lineDuration = savedDuration }()

	eng, err := New(Config{
		Bringup:     platform.NoopBringup{},
		Palette:     palette.StandardVGA(),
		Framebuffer: fb,
		Sink:        &pwm.RecordingSink{},
	})
	if err != nil {
		t.Fatalf("engine init: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- eng.Start(ctx) }()

	select {
	case err := <-done:
		if err != context.DeadlineExceeded {
			t.Fatalf("unexpected engine exit: %v", err)
		}
		if eng.FrameCounter() == 0 {
			t.Fatal("engine completed no frames while running")
		}
	case <-time.After(time.Second):
		t.Fatal("engine did not stop after context cancellation")
	}
}
