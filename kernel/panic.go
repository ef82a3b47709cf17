package kernel

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrPanic is returned by a protected step that recovered from a panic.
var ErrPanic = errors.New("kernel: panic")

// PanicInfo contains details about a recovered panic.
type PanicInfo struct {
	Value any
	Stack []byte
}

var (
	panicActive atomic.Bool
	panicOnce   sync.Once

	panicHandler atomic.Value // func(PanicInfo)
)

// InPanicMode reports whether a protected step has panicked.
func InPanicMode() bool {
	return panicActive.Load()
}

// SetPanicHandler installs a process-wide panic handler.
//
// The handler is invoked at most once (on the first panic). It must not panic.
func SetPanicHandler(fn func(PanicInfo)) {
	panicHandler.Store(fn)
}

// Protect wraps a main loop step so a panic is reported to the panic handler
// and returned as ErrPanic instead of unwinding the caller. Once any step has
// panicked, protected steps no longer run and return ErrPanic.
func Protect(step func() error) func() error {
	return func() (err error) {
		if InPanicMode() {
			return ErrPanic
		}
		defer func() {
			if r := recover(); r != nil {
				triggerPanic(PanicInfo{Value: r})
				err = ErrPanic
			}
		}()
		return step()
	}
}

func triggerPanic(info PanicInfo) {
	panicOnce.Do(func() {
		panicActive.Store(true)
		info.Stack = captureStack()
		if v := panicHandler.Load(); v != nil {
			if fn, ok := v.(func(PanicInfo)); ok && fn != nil {
				fn(info)
			}
		}
	})
}
