package hal

import (
	"strings"
	"sync"
	"testing"
)

type recordLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *recordLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *recordLogger) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

func TestVirtualPinConfigureRejectsMissingCaps(t *testing.T) {
	pin := newVirtualPin("IN", GPIOCapInput)

	if err := pin.Configure(GPIOModeOutput, GPIOPullNone); err == nil {
		t.Fatal("expected output to be rejected")
	}
	if err := pin.Configure(GPIOModeInput, GPIOPullUp); err == nil {
		t.Fatal("expected pull-up to be rejected")
	}
	if err := pin.Configure(GPIOModeInput, GPIOPullNone); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := pin.Write(true); err == nil {
		t.Fatal("expected write on input pin to fail")
	}
}

func TestVirtualPinDrive(t *testing.T) {
	pin := newVirtualPin("MIDDLE", GPIOCapInput|GPIOCapPullUp)
	if err := pin.Configure(GPIOModeInput, GPIOPullUp); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	level, err := pin.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !level {
		t.Fatal("expected pulled-up input to idle high")
	}

	pin.drive(false)
	if level, _ := pin.Read(); level {
		t.Fatal("expected driven level to read low")
	}
}

func TestVirtualPinPullDownIdlesLow(t *testing.T) {
	pin := newVirtualPin("IN", GPIOCapInput|GPIOCapPullDown)
	pin.drive(true)
	if err := pin.Configure(GPIOModeInput, GPIOPullDown); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if level, _ := pin.Read(); level {
		t.Fatal("expected pulled-down input to idle low")
	}
}

func TestPinLEDToggleAndLog(t *testing.T) {
	log := &recordLogger{}
	pin := newVirtualPin("LED", GPIOCapOutput)
	led, err := NewPinLED(pin, log)
	if err != nil {
		t.Fatalf("NewPinLED: %v", err)
	}

	led.High()
	led.Toggle()
	led.Toggle()

	level, err := pin.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !level {
		t.Fatal("expected pin high after High, Toggle, Toggle")
	}

	got := strings.Join(log.snapshot(), ",")
	if got != "led: HIGH,led: LOW,led: HIGH" {
		t.Fatalf("unexpected log %q", got)
	}
}

func TestNewPinLEDRequiresOutput(t *testing.T) {
	if _, err := NewPinLED(newVirtualPin("IN", GPIOCapInput), nil); err == nil {
		t.Fatal("expected error for input-only pin")
	}
	if _, err := NewPinLED(nil, nil); err == nil {
		t.Fatal("expected error for nil pin")
	}
}
