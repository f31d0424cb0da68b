// Package dma models a ping-pong DMA transport: two channels mutually
// chained, each transferring one scanline buffer to the PWM compare
// register, paced by PWM-wrap requests. On real hardware this is silicon;
// here it is two goroutines and a completion channel standing in for the
// shared DMA-completion interrupt line. The two goroutines are not chained:
// each channel drains on its own ticker, so the channels run side by side
// rather than strictly alternating. Grounded on the same "drain via
// callback" shape as the teacher's sdr.Transmit and on the
// CaptureConfig/RunCapture two-phase structure from the wider pack's DMA
// capture code.
package dma

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"ntsctv/pwm"
	"ntsctv/scanline"
)

// TotalChannels is the size of the shared DMA channel budget, modeled after
// a typical microcontroller's DMA controller (the RP2040 has 12). Each
// ping-pong Pair holds two channels for as long as its engine runs, so a
// host process that builds more engines than the hardware has channels for
// must fail at construction time rather than silently oversubscribing the
// controller.
const TotalChannels = 12

var channelBudget = func() *atomic.Int32 {
	v := &atomic.Int32{}
	v.Store(TotalChannels)
	return v
}()

// ErrChannelsExhausted is returned by NewPair when fewer than two channels
// remain in the shared budget.
var ErrChannelsExhausted = errors.New("dma: channel allocation exhausted")

func acquireTwo() bool {
	for {
		cur := channelBudget.Load()
		if cur < 2 {
			return false
		}
		if channelBudget.CompareAndSwap(cur, cur-2) {
			return true
		}
	}
}

// Channel is one half of a ping-pong pair: an owned buffer plus the state
// needed to simulate a hardware DMA channel draining it to a pwm.Sink and
// raising a completion interrupt.
type Channel struct {
	name string
	buf  scanline.Buffer

	// owned is true while the CPU (the refill handler) holds the buffer,
	// i.e. once the completion interrupt has fired and until the refill
	// finishes; false while the simulated DMA hardware is draining it.
	// Cleared only after the refill completes, not before, so the hardware
	// never starts reading a half-written buffer.
	owned atomic.Bool

	complete chan struct{}
	drainDur time.Duration
}

// NewChannel constructs a Channel paced to drain one scanline's worth of
// samples in drainDur (the software stand-in for "908 samples at the PWM
// wrap rate").
func NewChannel(name string, drainDur time.Duration) *Channel {
	c := &Channel{
		name:     name,
		complete: make(chan struct{}, 1),
		drainDur: drainDur,
	}
	c.owned.Store(true)
	return c
}

// PreFill seeds the buffer before the simulated DMA hardware starts,
// matching the startup sequence (buffer A pre-filled with line 0, buffer B
// with line 1, before channel A is triggered).
func (c *Channel) PreFill(fn func(buf *scanline.Buffer)) {
	fn(&c.buf)
	c.owned.Store(false)
}

// Buffer returns the channel's backing buffer for refilling. Callers must
// only write while Owned() is true.
func (c *Channel) Buffer() *scanline.Buffer { return &c.buf }

// Owned reports whether the CPU currently holds this channel's buffer.
func (c *Channel) Owned() bool { return c.owned.Load() }

// Complete is the channel's simulated interrupt signal, fired once per
// drain cycle.
func (c *Channel) Complete() <-chan struct{} { return c.complete }

// Drain simulates the hardware consuming this channel's buffer at the
// configured sample rate and writing it to sink, then raising the
// completion interrupt. It runs until stop is closed.
func (c *Channel) Drain(sink pwm.Sink, stop <-chan struct{}) {
	ticker := time.NewTicker(c.drainDur)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			sink.Write(c.buf[:])
			// The transfer just finished: the buffer now belongs to the CPU
			// until the refill handler releases it again.
			c.owned.Store(true)
			select {
			case c.complete <- struct{}{}:
			default:
			}
		}
	}
}

// Pair is the two ping-pong channels A and B. Each channel's Drain runs on
// its own ticker; neither channel's completion starts the other's transfer.
type Pair struct {
	A, B *Channel
	mu   sync.Mutex
}

// NewPair acquires two channels from the shared budget and constructs a
// ping-pong pair, both channels paced by lineDuration (one scanline's
// transfer time at the configured sample rate). It returns
// ErrChannelsExhausted if fewer than two channels remain available.
func NewPair(lineDuration time.Duration) (*Pair, error) {
	if !acquireTwo() {
		return nil, ErrChannelsExhausted
	}
	return &Pair{
		A: NewChannel("A", lineDuration),
		B: NewChannel("B", lineDuration),
	}, nil
}

// Release returns the pair's two channels to the shared budget. Callers
// must call this exactly once, when the engine owning this pair shuts down.
func (p *Pair) Release() {
	channelBudget.Add(2)
}

// Refill invokes fn to refill ch's buffer (which the completed Drain cycle
// has already handed to the CPU), then releases ownership back to the
// simulated DMA hardware. The pair's mutex
// serializes refills across channels, modeling a single shared interrupt
// line: a completion handler runs to completion, uninterruptible by the
// other channel's completion.
func (p *Pair) Refill(ch *Channel, fn func(buf *scanline.Buffer)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&ch.buf)
	ch.owned.Store(false)
}
