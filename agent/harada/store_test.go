package harada

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"
)

// memStore is an in-memory document store for handler tests.
type memStore struct {
	docs     map[string]json.RawMessage
	writeErr error
}

func newMemStore() *memStore {
	return &memStore{docs: map[string]json.RawMessage{}}
}

func (m *memStore) Read(_ context.Context, key string, out any) bool {
	raw, ok := m.docs[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (m *memStore) Write(_ context.Context, key string, doc any) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	m.docs[key] = raw
	return nil
}

func (m *memStore) List(_ context.Context, prefix string) []string {
	var keys []string
	for k := range m.docs {
		if strings.HasPrefix(k, prefix+"/") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

var errWriteFailed = errors.New("write failed")

var testClock = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newTestDispatcher(st *memStore) *Dispatcher {
	d := NewDispatcher(st)
	d.now = func() time.Time { return testClock }
	return d
}
