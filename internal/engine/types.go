package engine

import (
	"errors"
	"time"

	"github.com/tonhe/inkboard/internal/raster"
	"github.com/tonhe/inkboard/internal/series"
)

var (
	ErrNotFound       = errors.New("engine not found")
	ErrAlreadyRunning = errors.New("engine already running")
	ErrInvalidJob     = errors.New("invalid job")
	ErrNoFrame        = errors.New("no frame rendered yet")
)

// Frame is one rendered dashboard.
type Frame struct {
	// ID is unique per render and doubles as the HTTP ETag.
	ID        string
	Dashboard string
	Rendered  time.Time
	Bitmap    *raster.Bitmap
	PNG       []byte
	// Raw is the packed 1bpp buffer, MSB first, 1 = white.
	Raw []byte
	// Series is the charted input, kept for debug views.
	Series []series.Sample
	Data   any
	// Err joins source and compose problems. The frame is still complete.
	Err error
}

// EngineState represents the lifecycle state of a render engine.
type EngineState int

const (
	EngineStopped EngineState = iota
	EngineRunning
	EngineError
)

func (s EngineState) String() string {
	switch s {
	case EngineRunning:
		return "running"
	case EngineError:
		return "error"
	}
	return "stopped"
}

// EngineInfo provides summary information about a running engine.
type EngineInfo struct {
	Name        string
	State       EngineState
	Interval    time.Duration
	LastRender  time.Time
	RenderCount int
	ErrorCount  int
	FrameID     string
	LastError   error
}

// EngineEvent is emitted to subscribers after each render.
type EngineEvent struct {
	DashboardName string
	Frame         *Frame
}
