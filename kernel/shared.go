package kernel

import "sync/atomic"

// Shared holds the device state words touched from more than one execution context.
//
// Every access is a single hardware-atomic load, store or compare-and-swap, so no
// interrupt masking is needed around them.
type Shared struct {
	selection atomic.Int32
	guard     atomic.Bool
}

// Selection returns the current menu selection.
func (s *Shared) Selection() int {
	return int(s.selection.Load())
}

// StoreSelection publishes a new menu selection.
func (s *Shared) StoreSelection(v int) {
	s.selection.Store(int32(v))
}

// TryAcquireGuard sets the confirmation guard and reports whether this call set it.
// It returns false while a previous commit still holds the guard.
func (s *Shared) TryAcquireGuard() bool {
	return s.guard.CompareAndSwap(false, true)
}

// ReleaseGuard clears the confirmation guard.
func (s *Shared) ReleaseGuard() {
	s.guard.Store(false)
}

// Guarded reports whether a commit cycle is in progress.
func (s *Shared) Guarded() bool {
	return s.guard.Load()
}
