package epd

import (
	"fmt"
	"log/slog"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Pins names the host resources the panel is wired to, e.g. "SPI0.0"
// and "GPIO25".
type Pins struct {
	SPIPort string
	DC      string
	RST     string
	Busy    string
}

// Open initialises the host drivers and connects to the panel. The
// returned close function releases the SPI port.
func Open(pins Pins, logger *slog.Logger) (*Dev, func() error, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("host init: %w", err)
	}
	port, err := spireg.Open(pins.SPIPort)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", pins.SPIPort, err)
	}
	conn, err := port.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, nil, fmt.Errorf("connect %s: %w", pins.SPIPort, err)
	}

	var (
		dc, rst, busy gpio.PinIO
		missing       []string
	)
	for _, p := range []struct {
		name string
		dst  *gpio.PinIO
	}{{pins.DC, &dc}, {pins.RST, &rst}, {pins.Busy, &busy}} {
		if *p.dst = gpioreg.ByName(p.name); *p.dst == nil {
			missing = append(missing, p.name)
		}
	}
	if len(missing) > 0 {
		port.Close()
		return nil, nil, fmt.Errorf("unknown gpio pins %v", missing)
	}
	return New(conn, dc, rst, busy, logger), port.Close, nil
}
