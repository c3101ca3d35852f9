package crawler

import (
	"context"
	"errors"
	"sync"

	"github.com/samvad-hq/headline-harvester/internal/storage"
	"github.com/samvad-hq/headline-harvester/pkg/providers"
	"github.com/samvad-hq/headline-harvester/pkg/publishers"
)

var testLayout = Layout{RawPrefix: "headlines/raw", FinalPrefix: "headlines/final"}

type storedObject struct {
	body        []byte
	contentType string
}

type memStore struct {
	mu      sync.Mutex
	bucket  string
	objects map[string]storedObject
	gets    []string
	putErr  error
}

func newMemStore() *memStore {
	return &memStore{bucket: "parcial3luis", objects: map[string]storedObject{}}
}

func (m *memStore) Bucket() string { return m.bucket }

func (m *memStore) Put(_ context.Context, key string, body []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.objects[key] = storedObject{body: append([]byte(nil), body...), contentType: contentType}
	return nil
}

func (m *memStore) Get(_ context.Context, _ string, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets = append(m.gets, key)
	obj, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return obj.body, nil
}

func (m *memStore) object(key string) (storedObject, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	return obj, ok
}

type fakeSource struct {
	pages map[string]string
}

func (f *fakeSource) Fetch(_ context.Context, cfg providers.Provider) ([]byte, error) {
	page, ok := f.pages[cfg.ID]
	if !ok {
		return nil, errors.New("status 503 body: unavailable")
	}
	return []byte(page), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishers.Event
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, evt publishers.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return r.err
}
