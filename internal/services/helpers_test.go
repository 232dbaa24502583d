package services

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/yungbote/folio-backend/internal/platform/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

// memKV is an in-memory kv.Store. TTLs are recorded but never enforced;
// tests that care about expiry seed entries with timestamps in the past.
type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration

	getErr error
	setErr error
}

func newMemKV() *memKV {
	return &memKV{
		data: map[string][]byte{},
		ttls: map[string]time.Duration{},
	}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	raw, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return raw, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memKV) SetNX(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return false, m.setErr
	}
	if _, exists := m.data[key]; exists {
		return false, nil
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return true, nil
}

func (m *memKV) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	delete(m.ttls, key)
	return nil
}

func (m *memKV) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	if raw, ok := m.data[key]; ok {
		parsed, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return 0, err
		}
		n = parsed
	}
	n++
	m.data[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func (m *memKV) Close() error { return nil }

func (m *memKV) get(t *testing.T, key string) []byte {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}

func (m *memKV) put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *memKV) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// fakeGateway replays a canned response (or error) and records the last call.
type fakeGateway struct {
	response []byte
	err      error

	calls          int
	lastSystem     string
	lastUser       string
	lastSchemaName string
}

func (f *fakeGateway) GenerateJSON(_ context.Context, system, user string, schemaName string, _ map[string]any) ([]byte, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	f.lastSchemaName = schemaName
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

var errGatewayDown = errors.New("gateway unavailable")
