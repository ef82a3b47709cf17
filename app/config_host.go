//go:build !tinygo

package app

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"fortuna/hal"
)

// fileConfig is the on-disk TOML shape. Durations are Go duration strings
// ("500us", "50ms"). Absent keys keep the value already in the config.
type fileConfig struct {
	Panel struct {
		Debounce *string `toml:"debounce"`
	} `toml:"panel"`
	Dispatch struct {
		BlinkCount   *int    `toml:"blink_count"`
		BlinkOn      *string `toml:"blink_on"`
		BlinkOff     *string `toml:"blink_off"`
		ReceivedHold *string `toml:"received_hold"`
		Settle       *string `toml:"settle"`
	} `toml:"dispatch"`
	Serial struct {
		Port     *string `toml:"port"`
		Baud     *int    `toml:"baud"`
		AckDelay *string `toml:"ack_delay"`
	} `toml:"serial"`
}

// LoadFile reads a TOML config file and applies it on top of cfg and serial.
func LoadFile(path string, cfg *Config, serial *hal.SerialConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := Decode(data, cfg, serial); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

// Decode applies TOML data on top of cfg and serial. Unknown keys are an error.
func Decode(data []byte, cfg *Config, serial *hal.SerialConfig) error {
	var fc fileConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return err
	}

	durations := []struct {
		key string
		src *string
		dst *time.Duration
	}{
		{"panel.debounce", fc.Panel.Debounce, &cfg.Debounce},
		{"dispatch.blink_on", fc.Dispatch.BlinkOn, &cfg.Dispatch.BlinkOn},
		{"dispatch.blink_off", fc.Dispatch.BlinkOff, &cfg.Dispatch.BlinkOff},
		{"dispatch.received_hold", fc.Dispatch.ReceivedHold, &cfg.Dispatch.ReceivedHold},
		{"dispatch.settle", fc.Dispatch.Settle, &cfg.Dispatch.Settle},
		{"serial.ack_delay", fc.Serial.AckDelay, &serial.AckDelay},
	}
	for _, d := range durations {
		if d.src == nil {
			continue
		}
		v, err := time.ParseDuration(*d.src)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		if v < 0 {
			return fmt.Errorf("%s: negative duration %s", d.key, v)
		}
		*d.dst = v
	}

	if fc.Dispatch.BlinkCount != nil {
		if *fc.Dispatch.BlinkCount < 0 {
			return fmt.Errorf("dispatch.blink_count: must not be negative")
		}
		cfg.Dispatch.BlinkCount = *fc.Dispatch.BlinkCount
	}
	if fc.Serial.Port != nil {
		serial.Port = *fc.Serial.Port
	}
	if fc.Serial.Baud != nil {
		serial.BaudRate = *fc.Serial.Baud
	}
	return nil
}
