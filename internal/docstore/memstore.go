package docstore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ Store = (*MemStore)(nil)

// MemStore is an in-memory Store used in unit tests and local
// development. It honors the same order-by / limit / idempotent-delete
// semantics as the Firestore adapter.
type MemStore struct {
	mutex       sync.RWMutex
	collections map[string]map[string]map[string]any

	// ability to inject id generation (for deterministic tests)
	IDFunc func() string
}

func NewMemStore() *MemStore {
	return &MemStore{
		collections: make(map[string]map[string]map[string]any),
		IDFunc:      uuid.NewString,
	}
}

func (m *MemStore) Add(_ context.Context, collection string, data map[string]any) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	id := m.IDFunc()
	if m.collections[collection] == nil {
		m.collections[collection] = make(map[string]map[string]any)
	}
	m.collections[collection][id] = copyDoc(data)
	return id, nil
}

func (m *MemStore) Set(_ context.Context, doc string, data map[string]any) error {
	collection, id, err := splitDocPath(doc)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.collections[collection] == nil {
		m.collections[collection] = make(map[string]map[string]any)
	}
	m.collections[collection][id] = copyDoc(data)
	return nil
}

func (m *MemStore) Get(_ context.Context, doc string) (map[string]any, error) {
	collection, id, err := splitDocPath(doc)
	if err != nil {
		return nil, err
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()

	data, ok := m.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDoc(data), nil
}

func (m *MemStore) Find(_ context.Context, collection, field string, value any) ([]Document, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var docs []Document
	for id, data := range m.collections[collection] {
		if reflect.DeepEqual(data[field], value) {
			docs = append(docs, Document{ID: id, Data: copyDoc(data)})
		}
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})
	return docs, nil
}

func (m *MemStore) Query(_ context.Context, collection string, q Query) ([]Document, error) {
	m.mutex.RLock()
	docs := make([]Document, 0, len(m.collections[collection]))
	for id, data := range m.collections[collection] {
		docs = append(docs, Document{ID: id, Data: copyDoc(data)})
	}
	m.mutex.RUnlock()

	sort.Slice(docs, func(i, j int) bool {
		less, equal := compareValues(docs[i].Data[q.OrderBy], docs[j].Data[q.OrderBy])
		if equal {
			// tie-break by document id, following the query direction
			if q.Descending {
				return docs[i].ID > docs[j].ID
			}
			return docs[i].ID < docs[j].ID
		}
		if q.Descending {
			return !less
		}
		return less
	})

	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs, nil
}

func (m *MemStore) Delete(_ context.Context, doc string) error {
	collection, id, err := splitDocPath(doc)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.collections[collection], id)
	return nil
}

func splitDocPath(doc string) (collection, id string, err error) {
	i := strings.LastIndex(doc, "/")
	if i <= 0 || i == len(doc)-1 {
		return "", "", fmt.Errorf("invalid document path: %s", doc)
	}
	return doc[:i], doc[i+1:], nil
}

func compareValues(a, b any) (less, equal bool) {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Before(bv), av.Equal(bv)
		}
	case string:
		if bv, ok := b.(string); ok {
			return av < bv, av == bv
		}
	case int:
		bf := Float(b)
		return float64(av) < bf, float64(av) == bf
	case int64:
		bf := Float(b)
		return float64(av) < bf, float64(av) == bf
	case float64:
		bf := Float(b)
		return av < bf, av == bf
	}
	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	return as < bs, as == bs
}

func copyDoc(data map[string]any) map[string]any {
	cp := make(map[string]any, len(data))
	for k, v := range data {
		cp[k] = copyValue(v)
	}
	return cp
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyDoc(t)
	case []any:
		cp := make([]any, len(t))
		for i, e := range t {
			cp[i] = copyValue(e)
		}
		return cp
	default:
		return v
	}
}
