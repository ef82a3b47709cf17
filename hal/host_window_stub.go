//go:build !tinygo && !cgo

package hal

import "errors"

// RunWindow needs ebiten, which needs cgo on this platform.
func RunWindow(func(HAL) func() error, SerialConfig) error {
	return errors.New("hal: window mode requires cgo (set CGO_ENABLED=1) or use -headless")
}
