package pwm

import (
	"testing"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/physic"
)

// pinStub satisfies gpio.PinOut without touching any hardware.
type pinStub struct{}

func (pinStub) String() string                                       { return "stub" }
func (pinStub) Halt() error                                          { return nil }
func (pinStub) Name() string                                         { return "stub" }
func (pinStub) Number() int                                          { return 0 }
func (pinStub) Function() string                                     { return "" }
func (pinStub) Out(gpio.Level) error                                 { return nil }
func (pinStub) PWM(gpio.Duty, physic.Frequency) error                { return nil }

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig(nil)
	cfg.Pin = pinStub{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate once a pin is set: %v", err)
	}
}

func TestValidateRejectsWrongClock(t *testing.T) {
	cfg := DefaultConfig(pinStub{})
	cfg.Clock = SystemClock * 2
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for a mismatched system clock")
	}
}

func TestValidateRejectsWrongDivider(t *testing.T) {
	cfg := DefaultConfig(pinStub{})
	cfg.Divider = 1.0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for a mismatched clock divider")
	}
}

func TestValidateRejectsMissingPin(t *testing.T) {
	cfg := DefaultConfig(nil)
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for a nil output pin")
	}
}
