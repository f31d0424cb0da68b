// Command ntscengine runs the scanline synthesis engine against a
// periph.io GPIO pin, filling the framebuffer with a stand-in test pattern
// since a real pixel-content producer is supplied by the embedding program,
// not this binary.
package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpioreg"
	"periph.io/x/periph/host"

	"ntsctv/config"
	"ntsctv/diag"
	"ntsctv/engine"
	"ntsctv/framebuffer"
	"ntsctv/palette"
	"ntsctv/platform"
	"ntsctv/pwm"
)

func main() {
	cfg := config.New()

	if _, err := host.Init(); err != nil {
		log.Fatalf("host.Init failed: %v", err)
	}

	pin := gpioreg.ByName(fmt.Sprintf("GPIO%d", cfg.Pin))
	if pin == nil {
		log.Fatalf("GPIO pin %d not found on this host", cfg.Pin)
	}
	pinOut, ok := pin.(gpio.PinOut)
	if !ok {
		log.Fatalf("GPIO pin %d cannot be driven as an output", cfg.Pin)
	}

	sink, err := pwm.NewRPISink(pwm.DefaultConfig(pinOut))
	if err != nil {
		log.Fatalf("pwm sink: %v", err)
	}

	fb := &framebuffer.Framebuffer{}
	if cfg.TestPattern {
		framebuffer.ColorBars{}.Fill(fb)
	}

	eng, err := engine.New(engine.Config{
		Bringup:       platform.NoopBringup{},
		Palette:       palette.StandardVGA(),
		Framebuffer:   fb,
		Sink:          sink,
		StandardBurst: cfg.StandardBurst,
	})
	if err != nil {
		log.Fatalf("engine init: %v", err)
	}
	if report := eng.PaletteReport(); len(report.ClampedLow) > 0 || len(report.ClampedHigh) > 0 {
		log.Printf("warning: %s", report)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Diag {
		go runEngine(ctx, eng)
		p := diag.NewProgram(eng, time.Duration(cfg.DiagInterval)*time.Millisecond)
		if _, err := p.Run(); err != nil {
			log.Fatalf("diagnostics dashboard: %v", err)
		}
		return
	}

	log.Printf("starting NTSC scanline engine on GPIO pin %d", cfg.Pin)
	runEngine(ctx, eng)
	log.Println("engine shut down")
}

func runEngine(ctx context.Context, eng *engine.Engine) {
	if err := eng.Start(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("engine stopped: %v", err)
	}
}
