// Package platform models the bring-up collaborator deliberately kept out
// of the engine: clock tree configuration, core voltage, GPIO init and the
// heartbeat indicator. It exists here only as a thin value object the
// engine validates against at construction time, and a Bringup interface a
// real board-support package would implement.
package platform

import (
	"fmt"

	"periph.io/x/periph/conn/physic"
)

// CoreVoltage is the minimum CPU core voltage required to sustain the
// 315 MHz system clock.
const CoreVoltage = 1300 * physic.MilliVolt

// ClockTree describes the system clock and core voltage the engine
// requires. Any deviation produces chroma drift (wrong sample rate) or an
// unstable clock (insufficient voltage) and must be rejected.
type ClockTree struct {
	SystemClock physic.Frequency
	CoreVoltage physic.ElectricPotential
}

// Default is the required clock tree: 315 MHz exactly, 1.30V core.
func Default() ClockTree {
	return ClockTree{
		SystemClock: 315 * physic.MegaHertz,
		CoreVoltage: CoreVoltage,
	}
}

// Validate rejects any clock tree that would produce chroma drift or cannot
// sustain the required clock: a refused clock program, one of the three
// fatal init-time failure kinds engine.New surfaces.
func (c ClockTree) Validate() error {
	want := Default()
	if c.SystemClock != want.SystemClock {
		return fmt.Errorf("platform: system clock %s != required %s", c.SystemClock, want.SystemClock)
	}
	if c.CoreVoltage < want.CoreVoltage {
		return fmt.Errorf("platform: core voltage %s below required %s for %s", c.CoreVoltage, want.CoreVoltage, c.SystemClock)
	}
	return nil
}

// Bringup is the out-of-scope collaborator that performs one-time hardware
// setup before the engine starts: programming the clock tree, raising core
// voltage, initializing GPIO, and driving a heartbeat indicator. The engine
// only ever calls Init once, before constructing the PWM/DMA stage.
type Bringup interface {
	Init() (ClockTree, error)
}

// NoopBringup is a Bringup that reports the required clock tree without
// touching any hardware, used by tests and the demo binary.
type NoopBringup struct{}

// Init implements Bringup.
func (NoopBringup) Init() (ClockTree, error) {
	return Default(), nil
}
