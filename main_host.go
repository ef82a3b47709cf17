//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"fortuna/app"
	"fortuna/hal"
)

func main() {
	var cfg hal.HeadlessConfig
	cfg.Serial = hal.DefaultSerialConfig()

	var (
		configPath string
		debug      bool
		port       string
		baud       int
		ackDelay   time.Duration
	)
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&cfg.Inputs, "inputs", "", `Scripted front panel input for headless mode, e.g. "+2 press 2s".`)
	flag.StringVar(&configPath, "config", "", "Optional TOML config file.")
	flag.StringVar(&port, "port", "", "Serial port of the actuator controller (empty = built-in loopback).")
	flag.IntVar(&baud, "baud", 0, "Serial baud rate (default 9600).")
	flag.DurationVar(&ackDelay, "ack-delay", 0, "Loopback acknowledgment delay (default 750ms).")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging.")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	panel := app.DefaultConfig()
	if configPath != "" {
		if err := app.LoadFile(configPath, &panel, &cfg.Serial); err != nil {
			fail(err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Serial.Port = port
		case "baud":
			cfg.Serial.BaudRate = baud
		case "ack-delay":
			cfg.Serial.AckDelay = ackDelay
		}
	})
	log.Debug().
		Str("port", cfg.Serial.Port).
		Int("baud", cfg.Serial.BaudRate).
		Dur("debounce", panel.Debounce).
		Msg("panel config")

	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, panel)
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fail(err)
		}
		return
	}

	if err := hal.RunWindow(newApp, cfg.Serial); err != nil {
		fail(err)
	}
}

func fail(err error) {
	log.Error().Err(err).Msg("fortuna")
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
