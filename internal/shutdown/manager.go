package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"image-enhancer/internal/logger"
)

// DefaultTimeout bounds how long a single component may take to shut down.
const DefaultTimeout = 10 * time.Second

type Shutdownable interface {
	Shutdown()
}

// ShutdownFunc adapts a plain function to Shutdownable.
type ShutdownFunc func()

func (f ShutdownFunc) Shutdown() { f() }

type component struct {
	name string
	impl Shutdownable
}

// Manager runs registered components' Shutdown once, in reverse
// registration order.
type Manager struct {
	components []component
	logger     logger.Logger
	timeout    time.Duration
	mu         sync.Mutex
	done       chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewManager(log logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		logger:  log,
		timeout: DefaultTimeout,
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (m *Manager) SetTimeout(timeout time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.timeout = timeout
}

func (m *Manager) Register(name string, c Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, component{name: name, impl: c})
}

// Listen shuts down on SIGINT or SIGTERM.
func (m *Manager) Listen() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			m.logger.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			m.Shutdown()
		case <-m.done:
		}
	}()
}

func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}

	m.logger.Info("ShutdownManager", "shutdown sequence initiated", map[string]interface{}{
		"components": len(m.components),
	})

	m.cancel()

	for i := len(m.components) - 1; i >= 0; i-- {
		c := m.components[i]

		finished := make(chan struct{})
		go func() {
			defer close(finished)
			c.impl.Shutdown()
		}()

		select {
		case <-finished:
			m.logger.Debug("ShutdownManager", "component stopped", map[string]interface{}{
				"component": c.name,
			})
		case <-time.After(m.timeout):
			m.logger.Warning("ShutdownManager", "component shutdown timeout", map[string]interface{}{
				"component": c.name,
				"timeout":   m.timeout.String(),
			})
		}
	}

	m.logger.Info("ShutdownManager", "shutdown sequence completed", nil)
}

// Context is cancelled when Shutdown starts.
func (m *Manager) Context() context.Context {
	return m.ctx
}

func (m *Manager) Done() <-chan struct{} {
	return m.done
}
