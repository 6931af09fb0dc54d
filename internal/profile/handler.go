package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/mkovacic/fitlog/internal/auth"
	"github.com/mkovacic/fitlog/internal/docstore"
	"github.com/mkovacic/fitlog/internal/telemetry/tracing"
	"github.com/mkovacic/fitlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=profile_mocks_test.go -package=profile_test

type profileRepo interface {
	Get(ctx context.Context, userID string) (*UserProfile, error)
}

type Handler struct {
	repo profileRepo
}

func NewHandler(repo profileRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get")
	defer span.End()

	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	userProfile, err := handler.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("get profile for user [%s] error: %s", userID, err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	profileJson, err := json.Marshal(userProfile)
	if err != nil {
		log.Errorf("marshal profile error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, profileJson)
}

var _ profileRepo = (*Repo)(nil)

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/profile", handler.HandleGet).Methods("GET", "OPTIONS").Name("profile")
}
