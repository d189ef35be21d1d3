package engine

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
)

// Manager coordinates multiple Pollers, one per dashboard.
type Manager struct {
	mu      sync.RWMutex
	engines map[string]*Poller
	logger  *slog.Logger
}

// NewManager creates an empty Manager.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		engines: make(map[string]*Poller),
		logger:  logger,
	}
}

// Start creates and launches a Poller for job.
func (m *Manager) Start(job Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.engines[job.Name]; exists {
		return fmt.Errorf("%w: %q", ErrAlreadyRunning, job.Name)
	}

	p, err := NewPoller(job, m.logger)
	if err != nil {
		return err
	}

	m.engines[job.Name] = p
	go p.Run()
	return nil
}

// Stop halts the Poller for the named dashboard and removes it.
func (m *Manager) Stop(name string) error {
	m.mu.Lock()
	p, ok := m.engines[name]
	delete(m.engines, name)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	p.Stop()
	return nil
}

// Latest returns the most recent frame of the named dashboard.
func (m *Manager) Latest(name string) (*Frame, error) {
	p, err := m.get(name)
	if err != nil {
		return nil, err
	}
	f := p.Latest()
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoFrame, name)
	}
	return f, nil
}

// Refresh requests an immediate render of the named dashboard.
func (m *Manager) Refresh(name string) error {
	p, err := m.get(name)
	if err != nil {
		return err
	}
	p.Refresh()
	return nil
}

// Subscribe returns a channel that receives events for the named dashboard.
func (m *Manager) Subscribe(name string) (<-chan EngineEvent, error) {
	p, err := m.get(name)
	if err != nil {
		return nil, err
	}
	return p.Subscribe(), nil
}

// ListEngines returns summary info for all running engines, by name.
func (m *Manager) ListEngines() []EngineInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]EngineInfo, 0, len(m.engines))
	for _, p := range m.engines {
		infos = append(infos, p.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// StopAll halts and removes all running engines.
func (m *Manager) StopAll() {
	m.mu.Lock()
	engines := m.engines
	m.engines = make(map[string]*Poller)
	m.mu.Unlock()

	for _, p := range engines {
		p.Stop()
	}
}

func (m *Manager) get(name string) (*Poller, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p, nil
}
