package player

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// MockSink is a test double for Sink. Appended sources stay pending
// until Drain is called.
type MockSink struct {
	mu       sync.Mutex
	pending  []*Source
	appended []string
	paused   bool
	stopped  bool
	playN    int
	pauseN   int
}

var _ Sink = (*MockSink)(nil)

func (m *MockSink) Append(src *Source) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appended = append(m.appended, src.Path)
	if !m.stopped {
		m.pending = append(m.pending, src)
	}
}

func (m *MockSink) Play() {
	m.mu.Lock()
	m.paused = false
	m.playN++
	m.mu.Unlock()
}

func (m *MockSink) Pause() {
	m.mu.Lock()
	m.paused = true
	m.pauseN++
	m.mu.Unlock()
}

func (m *MockSink) Stop() {
	m.mu.Lock()
	m.stopped = true
	m.pending = nil
	m.mu.Unlock()
}

func (m *MockSink) Empty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending) == 0
}

// Test helpers

// Drain drops every pending source, as if playback reached the end.
func (m *MockSink) Drain() {
	m.mu.Lock()
	m.pending = nil
	m.mu.Unlock()
}

// Advance drops the first pending source.
func (m *MockSink) Advance() {
	m.mu.Lock()
	if len(m.pending) > 0 {
		m.pending = m.pending[1:]
	}
	m.mu.Unlock()
}

// Pending returns the paths of the pending sources.
func (m *MockSink) Pending() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	paths := make([]string, len(m.pending))
	for i, src := range m.pending {
		paths[i] = src.Path
	}
	return paths
}

// Appended returns the paths of every source ever appended.
func (m *MockSink) Appended() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.appended...)
}

// Paused reports whether the last transport call was Pause.
func (m *MockSink) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

// Stopped reports whether Stop was called.
func (m *MockSink) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// PlayCalls returns how many times Play was called.
func (m *MockSink) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playN
}

// PauseCalls returns how many times Pause was called.
func (m *MockSink) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseN
}

// MockDevice is a test double for Device and Opener.
type MockDevice struct {
	mu       sync.Mutex
	sinks    []*MockSink
	sinkErr  error
	openErrs map[string]error
	lengths  map[string]time.Duration
	opened   []string
}

var _ Device = (*MockDevice)(nil)

// NewMockDevice creates a mock device.
func NewMockDevice() *MockDevice {
	return &MockDevice{
		openErrs: make(map[string]error),
		lengths:  make(map[string]time.Duration),
	}
}

func (d *MockDevice) NewSink() (Sink, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sinkErr != nil {
		return nil, d.sinkErr
	}
	s := &MockSink{}
	d.sinks = append(d.sinks, s)
	return s, nil
}

// Open implements Opener. Sources carry no audio.
func (d *MockDevice) Open(path string) (*Source, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opened = append(d.opened, path)
	if err := d.openErrs[path]; err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return &Source{Path: path, Length: d.lengths[path]}, nil
}

// Test helpers

// Sink returns the most recently created sink.
func (d *MockDevice) Sink() *MockSink {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.sinks) == 0 {
		return nil
	}
	return d.sinks[len(d.sinks)-1]
}

// SinkCount returns how many sinks were created.
func (d *MockDevice) SinkCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sinks)
}

// SetSinkError makes subsequent NewSink calls fail.
func (d *MockDevice) SetSinkError(err error) {
	d.mu.Lock()
	d.sinkErr = err
	d.mu.Unlock()
}

// SetOpenError makes Open fail for path.
func (d *MockDevice) SetOpenError(path string, err error) {
	d.mu.Lock()
	d.openErrs[path] = err
	d.mu.Unlock()
}

// SetLength sets the decoded length reported for path.
func (d *MockDevice) SetLength(path string, length time.Duration) {
	d.mu.Lock()
	d.lengths[path] = length
	d.mu.Unlock()
}

// Opened returns every path passed to Open.
func (d *MockDevice) Opened() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.opened...)
}
