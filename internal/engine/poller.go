package engine

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Poller re-renders a single dashboard at its job's interval and keeps
// the latest frame.
type Poller struct {
	mu          sync.RWMutex
	job         Job
	logger      *slog.Logger
	latest      *Frame
	subscribers []chan EngineEvent
	ctx         context.Context
	cancel      context.CancelFunc
	refreshCh   chan struct{}
	doneCh      chan struct{}
	renderCount int
	errorCount  int
	lastRender  time.Time
	lastErr     error
	state       EngineState
}

// NewPoller creates a Poller for job.
func NewPoller(job Job, logger *slog.Logger) (*Poller, error) {
	if err := job.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		job:       job,
		logger:    logger.With("dashboard", job.Name),
		ctx:       ctx,
		cancel:    cancel,
		refreshCh: make(chan struct{}, 1),
		doneCh:    make(chan struct{}),
		state:     EngineRunning,
	}, nil
}

// Run renders immediately, then on every tick or Refresh. It blocks
// until Stop is called.
func (p *Poller) Run() {
	defer close(p.doneCh)
	ticker := time.NewTicker(p.job.Interval)
	defer ticker.Stop()

	p.poll()
	for {
		select {
		case <-ticker.C:
			p.poll()
		case <-p.refreshCh:
			p.poll()
		case <-p.ctx.Done():
			return
		}
	}
}

// poll executes a single render and publishes the frame.
func (p *Poller) poll() {
	start := time.Now()
	f, err := Render(p.ctx, p.job)
	if p.ctx.Err() != nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.errorCount++
		p.lastErr = err
		p.state = EngineError
		p.logger.Error("render_failed", "error", err)
		if f == nil {
			return
		}
	} else {
		p.state = EngineRunning
		p.lastErr = f.Err
	}
	if f.Err != nil {
		p.errorCount++
		p.logger.Warn("render_degraded", "frame", f.ID, "error", f.Err)
	}
	p.latest = f
	p.renderCount++
	p.lastRender = f.Rendered
	p.logger.Info("render_done", "frame", f.ID, "took", time.Since(start).Round(time.Millisecond))
	p.notify()
}

// Refresh asks for a render outside the schedule. Requests made while
// one is pending are merged.
func (p *Poller) Refresh() {
	select {
	case p.refreshCh <- struct{}{}:
	default:
	}
}

// Latest returns the most recent frame, or nil before the first render.
func (p *Poller) Latest() *Frame {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest
}

// Subscribe returns a channel that receives an event after each render.
func (p *Poller) Subscribe() <-chan EngineEvent {
	ch := make(chan EngineEvent, 1)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, ch)
	return ch
}

// notify sends the latest frame to all subscribers (non-blocking).
// Must be called while holding the write lock on p.mu.
func (p *Poller) notify() {
	event := EngineEvent{DashboardName: p.job.Name, Frame: p.latest}
	for _, ch := range p.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// Info returns summary information about this engine.
func (p *Poller) Info() EngineInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()
	info := EngineInfo{
		Name:        p.job.Name,
		State:       p.state,
		Interval:    p.job.Interval,
		LastRender:  p.lastRender,
		RenderCount: p.renderCount,
		ErrorCount:  p.errorCount,
		LastError:   p.lastErr,
	}
	if p.latest != nil {
		info.FrameID = p.latest.ID
	}
	return info
}

// Stop cancels any in-flight render and waits for Run to return.
func (p *Poller) Stop() {
	p.cancel()
	<-p.doneCh
	p.mu.Lock()
	p.state = EngineStopped
	p.mu.Unlock()
}
