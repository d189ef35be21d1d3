// Package epd drives a Waveshare 7.5" v2 (800x480, black/white) e-paper
// panel over SPI.
package epd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/tonhe/inkboard/internal/raster"
	"periph.io/x/conn/v3/gpio"
)

const (
	Width  = 800
	Height = 480

	// maxChunk is the largest single SPI write spidev accepts by default.
	maxChunk = 4096
)

// Controller commands.
const (
	cmdPanelSetting   = 0x00
	cmdPowerSetting   = 0x01
	cmdPowerOff       = 0x02
	cmdPowerOn        = 0x04
	cmdBoosterStart   = 0x06
	cmdDeepSleep      = 0x07
	cmdOldData        = 0x10
	cmdRefresh        = 0x12
	cmdNewData        = 0x13
	cmdDualSPI        = 0x15
	cmdVCOMInterval   = 0x50
	cmdTCON           = 0x60
	cmdResolution     = 0x61
	cmdGetStatus      = 0x71
	deepSleepCheckKey = 0xA5
)

var (
	ErrBusyTimeout = errors.New("panel stayed busy")
	ErrSize        = errors.New("bitmap does not match panel size")
	ErrAsleep      = errors.New("panel is in deep sleep; call Init")
)

// Conn is the SPI connection. periph's spi.Conn satisfies it.
type Conn interface {
	Tx(w, r []byte) error
}

// OutPin is a GPIO output. periph's gpio.PinOut satisfies it.
type OutPin interface {
	Out(l gpio.Level) error
}

// InPin is a GPIO input. periph's gpio.PinIn satisfies it.
type InPin interface {
	In(pull gpio.Pull, edge gpio.Edge) error
	Read() gpio.Level
}

// Dev is one attached panel.
type Dev struct {
	conn   Conn
	dc     OutPin
	rst    OutPin
	busy   InPin
	logger *slog.Logger

	// BusyTimeout bounds each wait for the controller.
	BusyTimeout time.Duration
	sleep       func(time.Duration)
	asleep      bool
}

// New wraps already opened SPI and GPIO handles. Call Init before the
// first Display.
func New(conn Conn, dc, rst OutPin, busy InPin, logger *slog.Logger) *Dev {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dev{
		conn:        conn,
		dc:          dc,
		rst:         rst,
		busy:        busy,
		logger:      logger,
		BusyTimeout: 40 * time.Second,
		sleep:       time.Sleep,
		asleep:      true,
	}
}

// Init resets the controller and loads the power and panel settings.
func (d *Dev) Init(ctx context.Context) error {
	if err := d.busy.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return fmt.Errorf("busy pin: %w", err)
	}
	if err := d.reset(); err != nil {
		return err
	}
	steps := []struct {
		cmd  byte
		data []byte
	}{
		{cmdBoosterStart, []byte{0x17, 0x17, 0x28, 0x17}},
		{cmdPowerSetting, []byte{0x07, 0x07, 0x28, 0x17}},
	}
	for _, s := range steps {
		if err := d.send(s.cmd, s.data...); err != nil {
			return err
		}
	}
	if err := d.send(cmdPowerOn); err != nil {
		return err
	}
	d.sleep(100 * time.Millisecond)
	if err := d.waitIdle(ctx); err != nil {
		return err
	}
	steps = []struct {
		cmd  byte
		data []byte
	}{
		{cmdPanelSetting, []byte{0x1F}},
		{cmdResolution, []byte{Width >> 8, Width & 0xFF, Height >> 8, Height & 0xFF}},
		{cmdDualSPI, []byte{0x00}},
		{cmdVCOMInterval, []byte{0x10, 0x07}},
		{cmdTCON, []byte{0x22}},
	}
	for _, s := range steps {
		if err := d.send(s.cmd, s.data...); err != nil {
			return err
		}
	}
	d.asleep = false
	d.logger.Debug("panel_init")
	return nil
}

// Display uploads b and runs a full refresh. The old-data plane gets the
// packed buffer as is and the new-data plane its inverse.
func (d *Dev) Display(ctx context.Context, b *raster.Bitmap) error {
	if b.Width() != Width || b.Height() != Height {
		return fmt.Errorf("%w: %dx%d", ErrSize, b.Width(), b.Height())
	}
	return d.write(ctx, b.Bytes(), b.Inverted())
}

// Clear blanks the panel to white.
func (d *Dev) Clear(ctx context.Context) error {
	white := make([]byte, Width*Height/8)
	for i := range white {
		white[i] = 0xFF
	}
	return d.write(ctx, white, make([]byte, len(white)))
}

// Sleep powers the controller down into deep sleep. Init wakes it.
func (d *Dev) Sleep(ctx context.Context) error {
	if d.asleep {
		return nil
	}
	if err := d.send(cmdVCOMInterval, 0xF7); err != nil {
		return err
	}
	if err := d.send(cmdPowerOff); err != nil {
		return err
	}
	if err := d.waitIdle(ctx); err != nil {
		return err
	}
	if err := d.send(cmdDeepSleep, deepSleepCheckKey); err != nil {
		return err
	}
	d.asleep = true
	d.logger.Debug("panel_sleep")
	return nil
}

func (d *Dev) write(ctx context.Context, old, cur []byte) error {
	if d.asleep {
		return ErrAsleep
	}
	start := time.Now()
	if err := d.send(cmdOldData, old...); err != nil {
		return err
	}
	if err := d.send(cmdNewData, cur...); err != nil {
		return err
	}
	if err := d.send(cmdRefresh); err != nil {
		return err
	}
	d.sleep(100 * time.Millisecond)
	if err := d.waitIdle(ctx); err != nil {
		return err
	}
	d.logger.Info("panel_refreshed", "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func (d *Dev) reset() error {
	for _, step := range []struct {
		level gpio.Level
		wait  time.Duration
	}{
		{gpio.High, 20 * time.Millisecond},
		{gpio.Low, 2 * time.Millisecond},
		{gpio.High, 20 * time.Millisecond},
	} {
		if err := d.rst.Out(step.level); err != nil {
			return fmt.Errorf("reset pin: %w", err)
		}
		d.sleep(step.wait)
	}
	return nil
}

// send writes a command byte with DC low followed by its data with DC
// high, split into chunks the SPI driver accepts.
func (d *Dev) send(cmd byte, data ...byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("dc pin: %w", err)
	}
	if err := d.conn.Tx([]byte{cmd}, nil); err != nil {
		return fmt.Errorf("command 0x%02X: %w", cmd, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := d.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("dc pin: %w", err)
	}
	for len(data) > 0 {
		n := min(len(data), maxChunk)
		if err := d.conn.Tx(data[:n], nil); err != nil {
			return fmt.Errorf("data for 0x%02X: %w", cmd, err)
		}
		data = data[n:]
	}
	return nil
}

// waitIdle polls the status register until the busy line reads high.
// The line is active low on this controller.
func (d *Dev) waitIdle(ctx context.Context) error {
	deadline := time.Now().Add(d.BusyTimeout)
	for {
		if err := d.send(cmdGetStatus); err != nil {
			return err
		}
		if d.busy.Read() == gpio.High {
			d.sleep(20 * time.Millisecond)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if time.Now().After(deadline) {
			return ErrBusyTimeout
		}
		d.sleep(10 * time.Millisecond)
	}
}
