package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"github.com/mkovacic/fitlog/internal/docstore"
	"github.com/mkovacic/fitlog/internal/progress"
	"github.com/mkovacic/fitlog/internal/telemetry/tracing"
)

const megabyte = 1024 * 1024

// UserProfile is the composed account overview: account data from the
// users document plus the most recently logged weight. CurrentWeight
// is nil until the user logs the first weight.
type UserProfile struct {
	FullName      string   `json:"fullName"`
	Email         string   `json:"email"`
	CurrentWeight *float64 `json:"currentWeight,omitempty"`
}

type progressReader interface {
	Latest(ctx context.Context, userID string) (*progress.Entry, error)
}

type Repo struct {
	store          docstore.Store
	progress       progressReader
	cache          *freecache.Cache
	cacheExpireSec int
}

func NewRepo(store docstore.Store, progressRepo progressReader, cacheExpireSec int) *Repo {
	return &Repo{
		store:          store,
		progress:       progressRepo,
		cache:          freecache.NewCache(megabyte),
		cacheExpireSec: cacheExpireSec,
	}
}

// Get composes the profile from two independent reads. The reads are
// not atomic; a weight logged between them shows up on the next read.
// Composed profiles are cached briefly, Invalidate drops the entry.
func (r *Repo) Get(ctx context.Context, userID string) (_ *UserProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if cachedBytes, err := r.cache.Get([]byte(userID)); err == nil {
		var cached UserProfile
		if err := json.Unmarshal(cachedBytes, &cached); err == nil {
			log.Tracef("profile for user [%s] served from cache", userID)
			return &cached, nil
		}
		log.Errorf("failed to unmarshal cached profile for user [%s]: %s", userID, err)
	}

	userDoc, err := r.store.Get(ctx, "users/"+userID)
	if err != nil {
		return nil, fmt.Errorf("get user doc: %w", err)
	}

	userProfile := &UserProfile{
		FullName: docstore.String(userDoc["fullName"]),
		Email:    docstore.String(userDoc["email"]),
	}

	latest, err := r.progress.Latest(ctx, userID)
	switch {
	case err == nil:
		userProfile.CurrentWeight = &latest.Weight
	case errors.Is(err, progress.ErrNoEntries):
		// no weight logged yet, profile stays without one
	default:
		return nil, fmt.Errorf("get latest progress entry: %w", err)
	}

	if profileBytes, err := json.Marshal(userProfile); err == nil {
		if err := r.cache.Set([]byte(userID), profileBytes, r.cacheExpireSec); err != nil {
			log.Errorf("failed to cache profile for user [%s]: %s", userID, err)
		}
	}

	return userProfile, nil
}

// Invalidate drops the cached profile of the user. Called after a new
// weight is logged so the next profile read picks it up.
func (r *Repo) Invalidate(userID string) {
	r.cache.Del([]byte(userID))
}
