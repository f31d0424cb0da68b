// Package pwm implements the sample clock and output stage: a PWM slice
// whose compare register is the engine's sole data sink. A real backend
// (RPISink) drives an actual periph.io GPIO pin; NullSink and RecordingSink
// are software stand-ins used by tests and demos.
package pwm

import (
	"fmt"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/physic"
)

// Wrap is the highest PWM output level: 12 duty-cycle levels (0..11), ~3
// effective bits. The slice's wrap register itself is programmed with
// Wrap-1 (see DefaultConfig).
const Wrap = 11

// Levels is the number of distinct output levels (Wrap+1).
const Levels = Wrap + 1

// SystemClock is the required system clock frequency. Any deviation
// produces chroma drift and must be rejected at configuration time.
const SystemClock = 315 * physic.MegaHertz

// ClockDivider is the PWM slice's clock divider.
const ClockDivider = 2.0

// SampleRate is the resulting sample rate: 315 MHz / 22 = 14.31818 MHz,
// exactly 4x the NTSC color subcarrier.
const SampleRate = 14318181 * physic.Hertz

// Sink is the PWM output stage: anything that can accept a filled scanline
// buffer and drive it out sample-by-sample through the compare register.
type Sink interface {
	// Write drives buf (one scanline's worth of samples, each in
	// [0,Wrap]) to the PWM compare register.
	Write(buf []uint16)
}

// Config describes how the PWM slice must be programmed: clock divider,
// wrap value, and the output pin. Validate rejects anything that would
// produce chroma drift.
type Config struct {
	Pin      gpio.PinOut
	Divider  float64
	WrapVal  uint16
	Clock    physic.Frequency
}

// DefaultConfig returns the required configuration: the given pin, divider
// 2.0, wrap 10 (12-level output), 315 MHz system clock.
func DefaultConfig(pin gpio.PinOut) Config {
	return Config{
		Pin:     pin,
		Divider: ClockDivider,
		WrapVal: Wrap - 1,
		Clock:   SystemClock,
	}
}

// Validate rejects any configuration that would produce chroma drift or an
// out-of-range PWM level count. NewRPISink calls it and refuses to build a
// sink from a configuration it rejects.
func (c Config) Validate() error {
	if c.Clock != SystemClock {
		return fmt.Errorf("pwm: system clock %s != required %s, would produce chroma drift", c.Clock, SystemClock)
	}
	if c.Divider != ClockDivider {
		return fmt.Errorf("pwm: clock divider %.2f != required %.2f", c.Divider, ClockDivider)
	}
	if c.WrapVal != Wrap-1 {
		return fmt.Errorf("pwm: wrap value %d != required %d", c.WrapVal, Wrap-1)
	}
	if c.Pin == nil {
		return fmt.Errorf("pwm: output pin not set")
	}
	return nil
}
