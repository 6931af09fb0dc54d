package profile_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mkovacic/fitlog/internal/auth"
	"github.com/mkovacic/fitlog/internal/docstore"
	"github.com/mkovacic/fitlog/internal/profile"
)

func authedRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest("GET", "/profile", nil)
	require.NoError(t, err)
	return req.WithContext(auth.ContextWithUserID(context.Background(), "user-1"))
}

func TestHandler_HandleGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockprofileRepo(ctrl)
	h := profile.NewHandler(repoMock)

	currentWeight := 82.5
	repoMock.EXPECT().
		Get(gomock.Any(), "user-1").
		Return(&profile.UserProfile{
			FullName:      "Marko Kovacic",
			Email:         "marko@example.com",
			CurrentWeight: &currentWeight,
		}, nil)

	rec := httptest.NewRecorder()
	h.HandleGet(rec, authedRequest(t))

	require.Equal(t, http.StatusOK, rec.Code)
	var userProfile profile.UserProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &userProfile))
	assert.Equal(t, "Marko Kovacic", userProfile.FullName)
	assert.Equal(t, "marko@example.com", userProfile.Email)
	require.NotNil(t, userProfile.CurrentWeight)
	assert.Equal(t, 82.5, *userProfile.CurrentWeight)
}

func TestHandler_HandleGet_NoWeightYet(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockprofileRepo(ctrl)
	h := profile.NewHandler(repoMock)

	repoMock.EXPECT().
		Get(gomock.Any(), "user-1").
		Return(&profile.UserProfile{
			FullName: "Marko Kovacic",
			Email:    "marko@example.com",
		}, nil)

	rec := httptest.NewRecorder()
	h.HandleGet(rec, authedRequest(t))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "currentWeight")
}

func TestHandler_HandleGet_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := profile.NewHandler(NewMockprofileRepo(ctrl))

	req, err := http.NewRequest("GET", "/profile", nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.HandleGet(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_HandleGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockprofileRepo(ctrl)
	h := profile.NewHandler(repoMock)

	repoMock.EXPECT().
		Get(gomock.Any(), "user-1").
		Return(nil, docstore.ErrNotFound)

	rec := httptest.NewRecorder()
	h.HandleGet(rec, authedRequest(t))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_HandleGet_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockprofileRepo(ctrl)
	h := profile.NewHandler(repoMock)

	repoMock.EXPECT().
		Get(gomock.Any(), "user-1").
		Return(nil, errors.New("store down"))

	rec := httptest.NewRecorder()
	h.HandleGet(rec, authedRequest(t))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
