// Package engine wires together the palette encoder, scanline generator,
// DMA ping-pong transport and PWM output stage into the running video
// engine, and implements the interrupt-driven scanline refill handler.
package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"ntsctv/dma"
	"ntsctv/framebuffer"
	"ntsctv/palette"
	"ntsctv/platform"
	"ntsctv/pwm"
	"ntsctv/scanline"
)

// InitError distinguishes the three fatal init-time failure kinds: none of
// them are recoverable, but callers still get a typed error back instead of
// a silent halt.
type InitError struct {
	Kind string
	Err  error
}

func (e *InitError) Error() string { return fmt.Sprintf("engine init: %s: %v", e.Kind, e.Err) }
func (e *InitError) Unwrap() error { return e.Err }

const (
	KindClock   = "clock programming refused"
	KindDMA     = "DMA channel allocation exhausted"
	KindPalette = "palette entry out of range"
)

// Config configures a new Engine.
type Config struct {
	Bringup       platform.Bringup
	Palette       [256][3]uint8
	Framebuffer   *framebuffer.Framebuffer
	Sink          pwm.Sink
	StandardBurst bool
}

// Engine owns the generator state and the ping-pong transport. The scanline
// index and framebuffer read cursor are bundled here as one value rather
// than left as package-level globals, so nothing prevents running more than
// one engine in the same process.
type Engine struct {
	pal     palette.Table
	report  palette.BuildReport
	fb      *framebuffer.Framebuffer
	sink    pwm.Sink
	pair    *dma.Pair
	opts    scanline.Options
	clock   platform.ClockTree

	line   int
	cursor scanline.Cursor

	renderingActive atomic.Bool
	frameCounter    atomic.Uint64
	underruns       atomic.Uint64
}

// lineDuration is one scanline's transfer time at the required sample
// rate: 908 samples / 14.31818 MHz ~= 63.4us.
var lineDuration = time.Duration(float64(scanline.Samples) / 14318181.0 * float64(time.Second))

// New validates the clock tree and palette, allocates a DMA channel pair,
// and constructs an Engine ready to Start. It returns an *InitError for any
// of the three fatal init-time failure kinds: a refused clock program, an
// exhausted DMA channel budget, or a palette entry out of the PWM range.
func New(cfg Config) (*Engine, error) {
	if cfg.Bringup == nil {
		cfg.Bringup = platform.NoopBringup{}
	}
	clock, err := cfg.Bringup.Init()
	if err != nil {
		return nil, &InitError{Kind: KindClock, Err: err}
	}
	if err := clock.Validate(); err != nil {
		return nil, &InitError{Kind: KindClock, Err: err}
	}

	pal, report := palette.BuildFrom(cfg.Palette)
	if len(report.ClampedHigh) > 0 {
		return nil, &InitError{Kind: KindPalette, Err: fmt.Errorf("%d entries exceeded the 12-level range: %v", len(report.ClampedHigh), report.ClampedHigh)}
	}

	fb := cfg.Framebuffer
	if fb == nil {
		fb = &framebuffer.Framebuffer{}
	}
	sink := cfg.Sink
	if sink == nil {
		sink = pwm.NullSink{}
	}

	pair, err := dma.NewPair(lineDuration)
	if err != nil {
		return nil, &InitError{Kind: KindDMA, Err: err}
	}

	e := &Engine{
		pal:    pal,
		report: report,
		fb:     fb,
		sink:   sink,
		pair:   pair,
		opts:   scanline.Options{StandardBurst: cfg.StandardBurst},
		clock:  clock,
	}
	return e, nil
}

// Close releases the engine's DMA channel pair back to the shared budget.
// Callers that construct an Engine but never call Start must call Close to
// avoid leaking its channels; Start calls it automatically on return.
func (e *Engine) Close() {
	e.pair.Release()
}

// PaletteReport returns the clamp report recorded while building the
// palette table, for diagnostics.
func (e *Engine) PaletteReport() palette.BuildReport { return e.report }

// RenderingActive reports whether the handler is currently generating an
// active-video line, useful for a diagnostics display.
func (e *Engine) RenderingActive() bool { return e.renderingActive.Load() }

// FrameCounter returns the number of completed frames.
func (e *Engine) FrameCounter() uint64 { return e.frameCounter.Load() }

// Underruns returns the number of refills that did not complete before the
// peer channel finished draining. It is a visible-glitch counter, not a
// recoverable error: a missed refill deadline plays out as a corrupted
// frame on screen, nothing more.
func (e *Engine) Underruns() uint64 { return e.underruns.Load() }

// Start runs the engine until ctx is canceled. It pre-fills both ping-pong
// buffers (buffer A with line 0, buffer B with line 1, scanline index
// initialized to 2), then services each channel's completion interrupt as
// it arrives, generating the next scanline into the just-freed buffer.
func (e *Engine) Start(ctx context.Context) error {
	e.pair.A.PreFill(func(buf *scanline.Buffer) {
		e.generate(buf, 0)
	})
	e.pair.B.PreFill(func(buf *scanline.Buffer) {
		e.generate(buf, 1)
	})
	e.line = 2

	stop := make(chan struct{})
	go e.pair.A.Drain(e.sink, stop)
	go e.pair.B.Drain(e.sink, stop)
	defer close(stop)
	defer e.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.pair.A.Complete():
			e.onComplete(e.pair.A)
		case <-e.pair.B.Complete():
			e.onComplete(e.pair.B)
		}
	}
}

// onComplete is the shared DMA-completion interrupt handler: it refills the
// channel that just finished draining with the current scanline index, then
// advances the index modulo scanline.Lines. It runs to completion,
// uninterruptible by the peer's completion, because dma.Pair.Refill holds
// the pair's single mutex for the duration.
func (e *Engine) onComplete(ch *dma.Channel) {
	start := time.Now()
	e.pair.Refill(ch, func(buf *scanline.Buffer) {
		e.generate(buf, e.line)
		e.line = (e.line + 1) % scanline.Lines
	})
	if time.Since(start) >= lineDuration {
		e.underruns.Add(1)
	}
}

func (e *Engine) generate(buf *scanline.Buffer, line int) {
	active := line >= scanline.ActiveLineStart && line < scanline.ActiveLineEnd
	e.renderingActive.Store(active)
	scanline.Generate(buf, line, &e.pal, e.fb, &e.cursor, e.opts)
	if line == 276 {
		e.frameCounter.Store(e.cursor.Frames)
	}
}
