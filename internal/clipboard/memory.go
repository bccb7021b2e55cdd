package clipboard

import (
	"sync"

	"go.klb.dev/seep/internal/content"
)

// Memory is an in-process Backend used by tests. It holds one current
// content value and can be primed to fail the next read with an arbitrary
// error to simulate platform failures.
type Memory struct {
	mu      sync.Mutex
	current content.Content
	readErr error
}

// NewMemory returns an empty in-memory clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// FailNextRead makes the next ReadText/ReadImage return err.
func (m *Memory) FailNextRead(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// Current returns the content most recently written.
func (m *Memory) Current() content.Content {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return "", err
	}
	if t, ok := m.current.(content.Text); ok {
		return t.Value, nil
	}
	return "", ErrUnavailable
}

func (m *Memory) ReadImage() (content.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return content.Image{}, err
	}
	if img, ok := m.current.(content.Image); ok {
		return img, nil
	}
	return content.Image{}, ErrUnavailable
}

func (m *Memory) WriteText(s string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = content.Text{Value: s}
	return nil
}

func (m *Memory) WriteImage(img content.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = img
	return nil
}

func (m *Memory) Close() {}

// takeErr consumes the primed read error. Callers hold m.mu.
func (m *Memory) takeErr() error {
	err := m.readErr
	m.readErr = nil
	return err
}
