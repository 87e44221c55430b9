package storage

import (
	"sort"
	"sync"
)

// KV is a flat string key-value store. Game saves are kept behind this
// interface so the save logic never knows which medium holds them.
//
// Get reports ok=false for an absent key; an error means the medium itself
// failed and the caller should treat the read as failed, not as empty.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryKV is an in-process KV used by tests and as the fallback backend.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string

	// FailWrites makes every Set and Delete fail with ErrUnavailable.
	FailWrites bool
	// FailReads makes every Get fail with ErrUnavailable.
	FailReads bool
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FailReads {
		return "", false, ErrUnavailable
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Set stores value under key, replacing any previous value.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return ErrUnavailable
	}
	m.data[key] = value
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return ErrUnavailable
	}
	delete(m.data, key)
	return nil
}

// Keys returns all stored keys in sorted order.
func (m *MemoryKV) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// prefixedKV namespaces every key of an underlying store.
type prefixedKV struct {
	inner  KV
	prefix string
}

// Prefixed returns a KV that stores every key as prefix+key in inner.
// The SSH server uses it to give each user a separate set of save slots.
func Prefixed(inner KV, prefix string) KV {
	if prefix == "" {
		return inner
	}
	return &prefixedKV{inner: inner, prefix: prefix}
}

func (p *prefixedKV) Get(key string) (string, bool, error) {
	return p.inner.Get(p.prefix + key)
}

func (p *prefixedKV) Set(key, value string) error {
	return p.inner.Set(p.prefix+key, value)
}

func (p *prefixedKV) Delete(key string) error {
	return p.inner.Delete(p.prefix + key)
}
