//go:build tinygo && baremetal

package hal

import (
	"machine"
	"sync/atomic"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/encoders"
	"tinygo.org/x/drivers/ili9341"
)

// Raspberry Pi Pico wiring of the panel.
const (
	lcdSCK = machine.GP18
	lcdSDO = machine.GP19
	lcdSDI = machine.GP16
	lcdCS  = machine.GP17
	lcdDC  = machine.GP20
	lcdRST = machine.GP21

	encA      = machine.GP2
	encB      = machine.GP3
	encMiddle = machine.GP4

	linkTX = machine.GP8
	linkRX = machine.GP9
)

// linkBaud is the actuator link speed; the remote controller must match it.
const linkBaud = 9600

type tinyGoHAL struct {
	logger *uartLogger
	led    *machineLED
	lcd    *ili9341.Device
	in     *panelInput
	serial *uartSerial
}

// New returns the Pico panel HAL.
//
// Log: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1. Actuator link: UART1 on GP8/GP9.
func New() HAL {
	logUART := machine.UART0
	logUART.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	linkUART := machine.UART1
	linkUART.Configure(machine.UARTConfig{
		BaudRate: linkBaud,
		TX:       linkTX,
		RX:       linkRX,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	logger := &uartLogger{uart: logUART}
	return &tinyGoHAL{
		logger: logger,
		led:    &machineLED{pin: ledPin},
		lcd:    newLCD(),
		in:     newPanelInput(logger),
		serial: newUARTSerial(linkUART),
	}
}

func (h *tinyGoHAL) Logger() Logger  { return h.logger }
func (h *tinyGoHAL) LED() LED        { return h.led }
func (h *tinyGoHAL) Display() Canvas { return h.lcd }
func (h *tinyGoHAL) Input() Input    { return h.in }
func (h *tinyGoHAL) Serial() Serial  { return h.serial }

func newLCD() *ili9341.Device {
	machine.SPI0.Configure(machine.SPIConfig{
		SCK:       lcdSCK,
		SDO:       lcdSDO,
		SDI:       lcdSDI,
		Frequency: 40_000_000,
	})
	lcd := ili9341.NewSPI(machine.SPI0, lcdDC, lcdCS, lcdRST)
	lcd.Configure(ili9341.Config{Rotation: drivers.Rotation90})
	return lcd
}

// panelInput reads the quadrature encoder (decoded by pin interrupts in the driver)
// and latches middle-button presses from a falling-edge interrupt.
type panelInput struct {
	enc     *encoders.QuadratureDevice
	last    int
	latched atomic.Bool
}

func newPanelInput(log Logger) *panelInput {
	in := &panelInput{enc: encoders.NewQuadratureViaInterrupt(encA, encB)}
	in.enc.Configure(encoders.QuadratureConfig{Precision: 4})

	encMiddle.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	err := encMiddle.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		in.latched.Store(true)
	})
	if err != nil && log != nil {
		log.WriteLineString("input: middle button interrupt: " + err.Error())
	}
	return in
}

func (in *panelInput) EncoderDelta() int {
	pos := in.enc.Position()
	d := pos - in.last
	in.last = pos
	return d
}

// MiddlePressed reports a latched press even if the button was already released.
func (in *panelInput) MiddlePressed() bool {
	if in.latched.Swap(false) {
		return true
	}
	return !encMiddle.Get()
}
