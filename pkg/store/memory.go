package store

import (
	"sort"
	"sync"
)

// Memory is a thread-safe in-memory Store.
type Memory struct {
	mu       sync.RWMutex
	counters map[string]*memCounter
	hists    map[string]*memHist2D
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{
		counters: make(map[string]*memCounter),
		hists:    make(map[string]*memHist2D),
	}
}

// Counter implements Store.
func (m *Memory) Counter(name string) Counter {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.counters[name]
	if !ok {
		c = &memCounter{name: name}
		m.counters[name] = c
	}
	return c
}

// Hist2D implements Store.
func (m *Memory) Hist2D(name string, axes Axes) Hist2D {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.hists[name]
	if !ok {
		h = newMemHist2D(name, axes)
		m.hists[name] = h
	}
	return h
}

// Names implements Store.
func (m *Memory) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.counters)+len(m.hists))
	for n := range m.counters {
		names = append(names, n)
	}
	for n := range m.hists {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LookupCounter returns an existing counter without creating it.
func (m *Memory) LookupCounter(name string) (Counter, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.counters[name]
	return c, ok
}

// LookupHist2D returns an existing histogram without creating it.
func (m *Memory) LookupHist2D(name string) (Hist2D, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.hists[name]
	return h, ok
}

// Len returns the number of bins.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.counters) + len(m.hists)
}

// Compile-time interface satisfaction check.
var _ Store = (*Memory)(nil)

type memCounter struct {
	mu    sync.Mutex
	name  string
	value float64
}

func (c *memCounter) Name() string { return c.name }

func (c *memCounter) Fill(v float64) {
	c.mu.Lock()
	c.value += v
	c.mu.Unlock()
}

func (c *memCounter) Set(v float64) {
	c.mu.Lock()
	c.value = v
	c.mu.Unlock()
}

func (c *memCounter) Value() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// memHist2D stores contents including under/overflow bins.
type memHist2D struct {
	mu      sync.Mutex
	name    string
	axes    Axes
	content []float64
	entries uint64
}

func newMemHist2D(name string, axes Axes) *memHist2D {
	nx, ny := max(axes.X.Bins, 0)+2, max(axes.Y.Bins, 0)+2
	return &memHist2D{
		name:    name,
		axes:    axes,
		content: make([]float64, nx*ny),
	}
}

func (h *memHist2D) Name() string { return h.name }

func (h *memHist2D) Axes() Axes { return h.axes }

func (h *memHist2D) index(ix, iy int) (int, bool) {
	nx, ny := max(h.axes.X.Bins, 0)+2, max(h.axes.Y.Bins, 0)+2
	if ix < 0 || ix >= nx || iy < 0 || iy >= ny {
		return 0, false
	}
	return iy*nx + ix, true
}

func (h *memHist2D) Fill(x, y, w float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries++
	if i, ok := h.index(h.axes.X.Find(x), h.axes.Y.Find(y)); ok {
		h.content[i] += w
	}
}

func (h *memHist2D) SetBin(ix, iy int, v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if i, ok := h.index(ix, iy); ok {
		h.content[i] = v
	}
}

func (h *memHist2D) Bin(ix, iy int) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	if i, ok := h.index(ix, iy); ok {
		return h.content[i]
	}
	return 0
}

func (h *memHist2D) Entries() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries
}
