package progress

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/mkovacic/fitlog/internal/auth"
	"github.com/mkovacic/fitlog/internal/telemetry/metrics"
	"github.com/mkovacic/fitlog/internal/telemetry/tracing"
	"github.com/mkovacic/fitlog/internal/validation"
	"github.com/mkovacic/fitlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=progress_mocks_test.go -package=progress_test

type progressRepo interface {
	Add(ctx context.Context, userID string, weight float64) (*Entry, error)
	List(ctx context.Context, userID string, ascending bool) ([]Entry, error)
}

// profileInvalidator drops the cached profile aggregate of a user so
// the next profile read sees the weight logged just now.
type profileInvalidator interface {
	Invalidate(userID string)
}

type AddEntryRequest struct {
	Weight float64 `json:"weight"`
}

type ListResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

type Handler struct {
	repo    progressRepo
	profile profileInvalidator
	metrics *metrics.Manager
}

func NewHandler(repo progressRepo, profile profileInvalidator, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		profile: profile,
		metrics: metricsManager,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var addReq AddEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&addReq); err != nil {
		log.Tracef("new progress entry, unmarshal json params: %s", err)
		http.Error(w, "add progress entry failed", http.StatusBadRequest)
		return
	}

	addedEntry, err := handler.repo.Add(ctx, userID, addReq.Weight)
	if err != nil {
		if validation.IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("failed to add progress entry for user [%s]: %s", userID, err)
		http.Error(w, "error, failed to add progress entry", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterProgressEntries.Inc()
	handler.profile.Invalidate(userID)

	addedEntryJson, err := json.Marshal(addedEntry)
	if err != nil {
		log.Errorf("failed to marshal new progress entry: %s", err)
		http.Error(w, "error, failed to add progress entry", http.StatusInternalServerError)
		return
	}

	log.Debugf("new progress entry added: %s", addedEntry.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedEntryJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.list")
	defer span.End()

	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	order := r.URL.Query().Get("order")
	switch order {
	case "", "desc", "asc":
	default:
		http.Error(w, "invalid order (has to be asc or desc)", http.StatusBadRequest)
		return
	}
	ascending := order == "asc"

	entries, err := handler.repo.List(ctx, userID, ascending)
	if err != nil {
		log.Errorf("list progress entries error: %s", err)
		http.Error(w, "failed to get progress entries", http.StatusInternalServerError)
		return
	}

	listRespJson, err := json.Marshal(ListResponse{
		Entries: entries,
		Total:   len(entries),
	})
	if err != nil {
		log.Errorf("marshal progress entries error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listRespJson)
}

var _ progressRepo = (*Repo)(nil)

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/progress", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-progress")
	mainRouter.HandleFunc("/progress", handler.HandleList).Methods("GET", "OPTIONS").Name("list-progress")
}
