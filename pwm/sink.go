package pwm

import "periph.io/x/periph/conn/gpio"

// RPISink drives the PWM output pin through a periph.io GPIO output pin. It
// holds the validated Config but does not program a PWM slice, channel,
// divider or wrap register itself. Software cannot toggle a GPIO pin at 14.3 MHz, so
// this backend is the structural analogue of the real PWM/DMA hardware
// path (same Config, same Write contract) rather than a literal bit-banged
// implementation; a real deployment wires the periph.io PWM-capable driver
// for the target SoC behind the same gpio.PinOut.
type RPISink struct {
	cfg Config
}

// NewRPISink validates cfg and returns a Sink bound to it.
func NewRPISink(cfg Config) (*RPISink, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &RPISink{cfg: cfg}, nil
}

// Write drives one scanline buffer's samples out the configured pin,
// quantizing each sample's duty level to a high/low pulse. This is a
// best-effort software approximation of the hardware PWM slice which
// actually holds the duty cycle for one sample period; see the doc comment
// on RPISink.
func (s *RPISink) Write(buf []uint16) {
	for _, level := range buf {
		if level > Wrap/2 {
			s.cfg.Pin.Out(gpio.High)
		} else {
			s.cfg.Pin.Out(gpio.Low)
		}
	}
}

// NullSink discards every sample. Used where only the generator's timing
// and correctness matter, not the electrical output.
type NullSink struct{}

// Write implements Sink.
func (NullSink) Write(buf []uint16) {}

// RecordingSink retains the most recently written buffer, for tests that
// need to inspect what the engine last drove out.
type RecordingSink struct {
	last []uint16
}

// Write implements Sink.
func (r *RecordingSink) Write(buf []uint16) {
	if cap(r.last) < len(buf) {
		r.last = make([]uint16, len(buf))
	}
	r.last = r.last[:len(buf)]
	copy(r.last, buf)
}

// Last returns a copy of the most recently written buffer, or nil if
// nothing has been written yet.
func (r *RecordingSink) Last() []uint16 {
	if r.last == nil {
		return nil
	}
	out := make([]uint16, len(r.last))
	copy(out, r.last)
	return out
}
