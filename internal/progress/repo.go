package progress

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mkovacic/fitlog/internal/docstore"
	"github.com/mkovacic/fitlog/internal/telemetry/tracing"
	"github.com/mkovacic/fitlog/internal/validation"
)

type Repo struct {
	store docstore.Store
}

func NewRepo(store docstore.Store) *Repo {
	return &Repo{
		store: store,
	}
}

func collection(userID string) string {
	return "users/" + userID + "/progress"
}

// Add persists a new weight measurement. Weight has to be a positive
// number; zero and negative values never reach the store.
func (r *Repo) Add(ctx context.Context, userID string, weight float64) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validation.PositiveFloat("weight", weight); err != nil {
		return nil, err
	}

	entry := Entry{
		CreatedAt: time.Now(),
		Weight:    weight,
	}

	id, err := r.store.Add(ctx, collection(userID), map[string]any{
		"createdAt": entry.CreatedAt,
		"weight":    entry.Weight,
	})
	if err != nil {
		return nil, fmt.Errorf("store progress entry: %w", err)
	}

	span.SetAttributes(attribute.String("progress.id", id))

	entry.ID = id
	entry.Date = entry.DisplayDate()
	return &entry, nil
}

// List returns all entries of the user, ordered by creation time.
// Ascending order feeds the chart, descending the history list.
func (r *Repo) List(ctx context.Context, userID string, ascending bool) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Bool("ascending", ascending))

	docs, err := r.store.Query(ctx, collection(userID), docstore.Query{
		OrderBy:    "createdAt",
		Descending: !ascending,
	})
	if err != nil {
		return nil, fmt.Errorf("query progress entries: %w", err)
	}

	entries := make([]Entry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, entryFromDoc(doc))
	}
	return entries, nil
}

// Latest returns the most recent entry, or ErrNoEntries when the user
// has not logged any weight yet.
func (r *Repo) Latest(ctx context.Context, userID string) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docs, err := r.store.Query(ctx, collection(userID), docstore.Query{
		OrderBy:    "createdAt",
		Descending: true,
		Limit:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("query latest progress entry: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrNoEntries
	}

	entry := entryFromDoc(docs[0])
	return &entry, nil
}

func entryFromDoc(doc docstore.Document) Entry {
	entry := Entry{
		ID:        doc.ID,
		CreatedAt: docstore.Time(doc.Data["createdAt"]),
		Weight:    docstore.Float(doc.Data["weight"]),
	}
	entry.Date = entry.DisplayDate()
	return entry
}
