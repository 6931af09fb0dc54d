package docstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ Store = (*Firestore)(nil)

// Firestore is the production Store, a thin adapter over the Cloud
// Firestore client. All path scoping is done by the callers.
type Firestore struct {
	client *firestore.Client
}

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{
		client: client,
	}
}

func (f *Firestore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	ref, _, err := f.client.Collection(collection).Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("firestore add: %w", err)
	}
	return ref.ID, nil
}

func (f *Firestore) Set(ctx context.Context, doc string, data map[string]any) error {
	if _, err := f.client.Doc(doc).Set(ctx, data); err != nil {
		return fmt.Errorf("firestore set: %w", err)
	}
	return nil
}

func (f *Firestore) Get(ctx context.Context, doc string) (map[string]any, error) {
	snap, err := f.client.Doc(doc).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("firestore get: %w", err)
	}
	return snap.Data(), nil
}

func (f *Firestore) Find(ctx context.Context, collection, field string, value any) ([]Document, error) {
	iter := f.client.Collection(collection).Where(field, "==", value).Documents(ctx)
	defer iter.Stop()
	return collectDocs(iter)
}

func (f *Firestore) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	fsQuery := f.client.Collection(collection).Query
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Descending {
			dir = firestore.Desc
		}
		fsQuery = fsQuery.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		fsQuery = fsQuery.Limit(q.Limit)
	}

	iter := fsQuery.Documents(ctx)
	defer iter.Stop()
	return collectDocs(iter)
}

func (f *Firestore) Delete(ctx context.Context, doc string) error {
	// firestore deletes are already a no-op for missing documents
	if _, err := f.client.Doc(doc).Delete(ctx); err != nil {
		return fmt.Errorf("firestore delete: %w", err)
	}
	return nil
}

func collectDocs(iter *firestore.DocumentIterator) ([]Document, error) {
	var docs []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore iterate: %w", err)
		}
		docs = append(docs, Document{
			ID:   snap.Ref.ID,
			Data: snap.Data(),
		})
	}
	return docs, nil
}
