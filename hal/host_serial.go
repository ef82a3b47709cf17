//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.bug.st/serial"
)

// serialPort is the subset of serial.Port used by the host link.
type serialPort interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	SetReadTimeout(t time.Duration) error
}

// openPort opens a real serial port; tests replace it.
var openPort = func(path string, mode *serial.Mode) (serialPort, error) {
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port: %w", err)
	}
	return port, nil
}

const portReadTimeout = 100 * time.Millisecond

// portSerial is the actuator link over a host serial device (USB-UART adapter).
type portSerial struct {
	port serialPort
	log  Logger

	mu sync.Mutex
	fn func(b byte)

	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func openPortSerial(cfg SerialConfig, log Logger) (*portSerial, error) {
	baud := cfg.BaudRate
	if baud <= 0 {
		baud = 9600
	}
	port, err := openPort(cfg.Port, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("serial: %s: %w", cfg.Port, err)
	}
	if err := port.SetReadTimeout(portReadTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("serial: %s: set read timeout: %w", cfg.Port, err)
	}

	s := &portSerial{port: port, log: log, done: make(chan struct{})}
	s.wg.Add(1)
	go s.readLoop()
	return s, nil
}

func (s *portSerial) WriteByte(b byte) error {
	select {
	case <-s.done:
		return errSerialClosed
	default:
	}
	n, err := s.port.Write([]byte{b})
	if err != nil {
		return fmt.Errorf("serial: write: %w", err)
	}
	if n != 1 {
		return errors.New("serial: short write")
	}
	return nil
}

func (s *portSerial) Receive(fn func(b byte)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fn = fn
}

func (s *portSerial) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.port.Close()
		s.wg.Wait()
	})
	return err
}

func (s *portSerial) readLoop() {
	defer s.wg.Done()

	var buf [64]byte
	for {
		select {
		case <-s.done:
			return
		default:
		}

		n, err := s.port.Read(buf[:])
		if n > 0 {
			s.mu.Lock()
			fn := s.fn
			s.mu.Unlock()
			if fn != nil {
				for _, b := range buf[:n] {
					fn(b)
				}
			}
		}
		if err != nil {
			select {
			case <-s.done:
				return
			default:
			}
			if s.log != nil {
				s.log.WriteLineString("serial: read: " + err.Error())
			}
			time.Sleep(portReadTimeout)
		}
	}
}
