package epd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tonhe/inkboard/internal/raster"
	"periph.io/x/conn/v3/gpio"
)

type command struct {
	cmd  byte
	data []byte
}

// fakeBus decodes SPI writes back into commands using the DC level.
type fakeBus struct {
	dcLevel  gpio.Level
	commands []command
	maxWrite int
	resets   []gpio.Level
	busy     gpio.Level
}

func (f *fakeBus) Tx(w, r []byte) error {
	f.maxWrite = max(f.maxWrite, len(w))
	if f.dcLevel == gpio.Low {
		for _, b := range w {
			f.commands = append(f.commands, command{cmd: b})
		}
		return nil
	}
	last := &f.commands[len(f.commands)-1]
	last.data = append(last.data, w...)
	return nil
}

type pinFunc func(gpio.Level) error

func (p pinFunc) Out(l gpio.Level) error { return p(l) }

func (f *fakeBus) In(gpio.Pull, gpio.Edge) error { return nil }
func (f *fakeBus) Read() gpio.Level               { return f.busy }

func newTestDev() (*Dev, *fakeBus) {
	bus := &fakeBus{busy: gpio.High}
	dc := pinFunc(func(l gpio.Level) error { bus.dcLevel = l; return nil })
	rst := pinFunc(func(l gpio.Level) error { bus.resets = append(bus.resets, l); return nil })
	d := New(bus, dc, rst, bus, nil)
	d.sleep = func(time.Duration) {}
	return d, bus
}

// find returns the commands with the given byte, skipping status polls.
func (f *fakeBus) find(cmd byte) []command {
	var out []command
	for _, c := range f.commands {
		if c.cmd == cmd {
			out = append(out, c)
		}
	}
	return out
}

func TestInitSequence(t *testing.T) {
	d, bus := newTestDev()
	if err := d.Init(context.Background()); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if len(bus.resets) != 3 || bus.resets[1] != gpio.Low {
		t.Errorf("expected high-low-high reset, got %v", bus.resets)
	}
	res := bus.find(cmdResolution)
	if len(res) != 1 || !bytes.Equal(res[0].data, []byte{0x03, 0x20, 0x01, 0xE0}) {
		t.Errorf("unexpected resolution command %+v", res)
	}
	if len(bus.find(cmdPowerOn)) != 1 {
		t.Error("expected one power-on command")
	}
}

func TestDisplayPlanes(t *testing.T) {
	d, bus := newTestDev()
	ctx := context.Background()
	if err := d.Display(ctx, raster.New(Width, Height)); !errors.Is(err, ErrAsleep) {
		t.Fatalf("expected ErrAsleep before Init, got %v", err)
	}
	if err := d.Init(ctx); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	b := raster.New(Width, Height)
	b.FillRect(0, 0, 7, 0, raster.Black)
	if err := d.Display(ctx, b); err != nil {
		t.Fatalf("Display() error: %v", err)
	}

	old, cur := bus.find(cmdOldData), bus.find(cmdNewData)
	if len(old) != 1 || len(cur) != 1 {
		t.Fatalf("expected one write per plane, got %d and %d", len(old), len(cur))
	}
	if len(old[0].data) != Width*Height/8 {
		t.Fatalf("expected %d bytes, got %d", Width*Height/8, len(old[0].data))
	}
	if old[0].data[0] != 0x00 || old[0].data[1] != 0xFF {
		t.Errorf("old plane should be the packed bitmap, got % X", old[0].data[:2])
	}
	if cur[0].data[0] != 0xFF || cur[0].data[1] != 0x00 {
		t.Errorf("new plane should be inverted, got % X", cur[0].data[:2])
	}
	if bus.maxWrite > maxChunk {
		t.Errorf("expected writes of at most %d bytes, got %d", maxChunk, bus.maxWrite)
	}
	if len(bus.find(cmdRefresh)) != 1 {
		t.Error("expected a refresh command")
	}
}

func TestDisplayWrongSize(t *testing.T) {
	d, _ := newTestDev()
	d.Init(context.Background())
	if err := d.Display(context.Background(), raster.New(400, 300)); !errors.Is(err, ErrSize) {
		t.Errorf("expected ErrSize, got %v", err)
	}
}

func TestBusyTimeout(t *testing.T) {
	d, bus := newTestDev()
	bus.busy = gpio.Low
	d.BusyTimeout = time.Millisecond
	if err := d.Init(context.Background()); !errors.Is(err, ErrBusyTimeout) {
		t.Errorf("expected ErrBusyTimeout, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.BusyTimeout = time.Minute
	if err := d.Init(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSleep(t *testing.T) {
	d, bus := newTestDev()
	ctx := context.Background()
	if err := d.Sleep(ctx); err != nil || len(bus.commands) != 0 {
		t.Fatalf("Sleep() before Init should be a no-op, got %v and %d commands", err, len(bus.commands))
	}
	d.Init(ctx)
	if err := d.Sleep(ctx); err != nil {
		t.Fatalf("Sleep() error: %v", err)
	}
	deep := bus.find(cmdDeepSleep)
	if len(deep) != 1 || !bytes.Equal(deep[0].data, []byte{deepSleepCheckKey}) {
		t.Errorf("unexpected deep sleep command %+v", deep)
	}
	if err := d.Clear(ctx); !errors.Is(err, ErrAsleep) {
		t.Errorf("expected ErrAsleep after Sleep, got %v", err)
	}
}
