package kernel

import (
	"errors"
	"testing"
)

// The panic handler fires once per process, so everything is checked in one test.
func TestProtect(t *testing.T) {
	var got []PanicInfo
	SetPanicHandler(func(info PanicInfo) { got = append(got, info) })

	ok := Protect(func() error { return nil })
	if err := ok(); err != nil {
		t.Fatalf("err = %v", err)
	}
	want := errors.New("flush failed")
	if err := Protect(func() error { return want })(); err != want {
		t.Fatalf("err = %v, want %v", err, want)
	}
	if InPanicMode() {
		t.Fatalf("panic mode without a panic")
	}

	boom := Protect(func() error { panic("boom") })
	if err := boom(); !errors.Is(err, ErrPanic) {
		t.Fatalf("err = %v, want ErrPanic", err)
	}
	if err := boom(); !errors.Is(err, ErrPanic) {
		t.Fatalf("second err = %v, want ErrPanic", err)
	}

	if !InPanicMode() {
		t.Fatalf("InPanicMode = false")
	}
	ran := false
	after := Protect(func() error { ran = true; return nil })
	if err := after(); !errors.Is(err, ErrPanic) || ran {
		t.Fatalf("step after panic: err = %v, ran = %v", err, ran)
	}
	if len(got) != 1 {
		t.Fatalf("handler calls = %d, want 1", len(got))
	}
	if got[0].Value != "boom" || len(got[0].Stack) == 0 {
		t.Fatalf("info = %+v", got[0])
	}
}
