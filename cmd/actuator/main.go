// Command actuator simulates the remote actuator controller on a serial port.
//
// Every valid command byte is answered with its acknowledgment after a delay.
// Other bytes are logged and ignored.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.bug.st/serial"
)

type config struct {
	Port  string `toml:"port"`
	Baud  int    `toml:"baud"`
	Delay string `toml:"delay"`
}

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		port       string
		baud       int
		delay      time.Duration
		debug      bool
	)
	flag.StringVar(&configPath, "config", "", "Optional TOML file with port, baud and delay.")
	flag.StringVar(&port, "port", "", "Serial port to answer on (required).")
	flag.IntVar(&baud, "baud", 9600, "Baud rate.")
	flag.DurationVar(&delay, "delay", 750*time.Millisecond, "Delay before each acknowledgment.")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging.")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if configPath != "" {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if cfg.Port != "" && !set["port"] {
			port = cfg.Port
		}
		if cfg.Baud > 0 && !set["baud"] {
			baud = cfg.Baud
		}
		if cfg.Delay != "" && !set["delay"] {
			d, err := time.ParseDuration(cfg.Delay)
			if err != nil {
				return fmt.Errorf("config: delay: %w", err)
			}
			delay = d
		}
	}
	if port == "" {
		return errors.New("missing -port")
	}

	p, err := serial.Open(port, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return fmt.Errorf("failed to open serial port: %w", err)
	}
	if err := p.SetReadTimeout(100 * time.Millisecond); err != nil {
		_ = p.Close()
		return fmt.Errorf("failed to set read timeout: %w", err)
	}
	defer func() {
		if err := p.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close serial port")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("port", port).Int("baud", baud).Dur("delay", delay).Msg("actuator ready")
	err = newResponder(p, clockwork.NewRealClock(), delay, log.Logger).serve(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func loadConfig(path string) (config, error) {
	var cfg config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}
