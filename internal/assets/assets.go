// Package assets loads scene models off the frame loop and hands the results
// back as typed values the loop drains once per frame.
package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ErrLoad wraps every model load failure.
var ErrLoad = errors.New("asset load failed")

// Material summarizes one model material.
type Material struct {
	Name     string
	Textured bool // Has a base colour texture
	Emissive bool // Has an emissive texture
}

// Model is a loaded model summary.
type Model struct {
	Path      string
	Meshes    int
	Materials []Material
	Bytes     int64
}

// ProgressFunc receives byte progress for a load. total may be 0 when unknown.
type ProgressFunc func(loaded, total int64)

// Loader loads a single model.
type Loader interface {
	Load(ctx context.Context, path string, progress ProgressFunc) (*Model, error)
}

// Result is the outcome of one requested load: Model on success, Err otherwise.
type Result struct {
	Name  string
	Path  string
	Model *Model
	Err   error
}

// Failed reports whether the load failed.
func (r Result) Failed() bool {
	return r.Err != nil
}

type progress struct {
	loaded, total int64
}

// Manager runs loads on goroutines. Each name is requested at most once; loads
// are never retried and arrive in no particular order.
type Manager struct {
	loader  Loader
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	results chan Result
	wg      sync.WaitGroup

	mu        sync.Mutex
	requested map[string]bool
	progress  map[string]progress
	inflight  int
}

// NewManager creates a manager backed by loader.
func NewManager(loader Loader, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		loader:    loader,
		log:       log,
		ctx:       ctx,
		cancel:    cancel,
		results:   make(chan Result, 16),
		requested: make(map[string]bool),
		progress:  make(map[string]progress),
	}
}

// Request starts loading path under name. It returns false when name was
// already requested.
func (m *Manager) Request(name, path string) bool {
	m.mu.Lock()
	if m.requested[name] {
		m.mu.Unlock()
		return false
	}
	m.requested[name] = true
	m.inflight++
	m.mu.Unlock()

	m.log.Debug("asset requested", zap.String("asset", name), zap.String("path", path))

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		res := m.load(name, path)
		select {
		case m.results <- res:
		case <-m.ctx.Done():
		}
	}()
	return true
}

func (m *Manager) load(name, path string) (res Result) {
	res = Result{Name: name, Path: path}
	defer func() {
		if r := recover(); r != nil {
			res.Model = nil
			res.Err = fmt.Errorf("%w %s: panic: %v", ErrLoad, path, r)
		}
	}()

	model, err := m.loader.Load(m.ctx, path, func(loaded, total int64) {
		m.mu.Lock()
		m.progress[name] = progress{loaded, total}
		m.mu.Unlock()
	})
	if err != nil {
		if !errors.Is(err, ErrLoad) {
			err = fmt.Errorf("%w %s: %w", ErrLoad, path, err)
		}
		res.Err = err
		return res
	}
	res.Model = model
	return res
}

// Poll drains every result delivered so far without blocking.
func (m *Manager) Poll() []Result {
	var out []Result
	for {
		select {
		case res := <-m.results:
			m.mu.Lock()
			m.inflight--
			m.mu.Unlock()
			out = append(out, res)
		default:
			return out
		}
	}
}

// Progress returns the last byte progress reported for name.
func (m *Manager) Progress(name string) (loaded, total int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.progress[name]
	return p.loaded, p.total
}

// Pending returns the number of requested loads not yet polled.
func (m *Manager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inflight
}

// Close cancels outstanding loads and waits for their goroutines.
func (m *Manager) Close() {
	m.cancel()
	m.wg.Wait()
}
