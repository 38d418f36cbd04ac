package shutdown

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownRunsInReverseOrderOnce(t *testing.T) {
	m := NewManager(nil)

	var mu sync.Mutex
	var order []string
	record := func(name string) ShutdownFunc {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
		}
	}

	m.Register("source", record("source"))
	m.Register("controller", record("controller"))

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, []string{"controller", "source"}, order)
	require.Error(t, m.Context().Err())

	select {
	case <-m.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestShutdownDoesNotWaitForeverOnSlowComponent(t *testing.T) {
	m := NewManager(nil)
	m.SetTimeout(20 * time.Millisecond)

	release := make(chan struct{})
	defer close(release)

	reached := false
	m.Register("fast", ShutdownFunc(func() { reached = true }))
	m.Register("slow", ShutdownFunc(func() { <-release }))

	start := time.Now()
	m.Shutdown()

	assert.True(t, reached)
	assert.Less(t, time.Since(start), 2*time.Second)
}
