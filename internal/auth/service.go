package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/mkovacic/fitlog/internal/docstore"
	"github.com/mkovacic/fitlog/pkg"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "fitlog-service-session||"

	usersCollection = "users"
)

var (
	ErrUserExists       = errors.New("user already exists")
	ErrWrongCredentials = errors.New("wrong credentials")
	ErrNotLoggedIn      = errors.New("not logged in")
)

type User struct {
	UID       string    `json:"uid"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Service keeps the user registry in the document store (profile
// document at users/{uid}) and the login sessions in redis, token
// mapped to user id, expired via redis TTL.
type Service struct {
	store       docstore.Store
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewService(
	store docstore.Store,
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		store:          store,
		redisClient:    redisClient,
		ttl:            ttl,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func (s *Service) Register(ctx context.Context, fullName, email, password string) (*User, string, error) {
	existing, err := s.store.Find(ctx, usersCollection, "email", email)
	if err != nil {
		return nil, "", fmt.Errorf("find user by email: %w", err)
	}
	if len(existing) > 0 {
		return nil, "", ErrUserExists
	}

	passwordHash, err := pkg.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	createdAt := time.Now()
	uid, err := s.store.Add(ctx, usersCollection, map[string]any{
		"fullName":     fullName,
		"email":        email,
		"passwordHash": passwordHash,
		"createdAt":    createdAt,
	})
	if err != nil {
		return nil, "", fmt.Errorf("store user: %w", err)
	}

	token, err := s.newSession(ctx, uid)
	if err != nil {
		return nil, "", err
	}

	log.Debugf("new user registered: %s", uid)

	return &User{
		UID:       uid,
		FullName:  fullName,
		Email:     email,
		CreatedAt: createdAt,
	}, token, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	found, err := s.store.Find(ctx, usersCollection, "email", email)
	if err != nil {
		return nil, "", fmt.Errorf("find user by email: %w", err)
	}
	if len(found) == 0 {
		return nil, "", ErrWrongCredentials
	}

	userDoc := found[0]
	if !pkg.CheckPasswordHash(password, docstore.String(userDoc.Data["passwordHash"])) {
		return nil, "", ErrWrongCredentials
	}

	token, err := s.newSession(ctx, userDoc.ID)
	if err != nil {
		return nil, "", err
	}

	return &User{
		UID:       userDoc.ID,
		FullName:  docstore.String(userDoc.Data["fullName"]),
		Email:     docstore.String(userDoc.Data["email"]),
		CreatedAt: docstore.Time(userDoc.Data["createdAt"]),
	}, token, nil
}

func (s *Service) Logout(ctx context.Context, token string) (bool, error) {
	cmdDel := s.redisClient.Del(ctx, sessionKeyPrefix+token)
	if err := cmdDel.Err(); err != nil {
		return false, err
	}
	return cmdDel.Val() > 0, nil
}

func (s *Service) newSession(ctx context.Context, uid string) (string, error) {
	token, err := s.RandStringFunc(35)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	cmdSet := s.redisClient.Set(ctx, sessionKeyPrefix+token, uid, s.ttl)
	if err := cmdSet.Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}
