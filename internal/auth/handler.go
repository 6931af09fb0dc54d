package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/mkovacic/fitlog/internal/telemetry/tracing"
	"github.com/mkovacic/fitlog/pkg"
)

// TokenHeader carries the session token on every authenticated request.
const TokenHeader = "X-FITLOG-TOKEN"

const minPasswordLength = 6

type Handler struct {
	authService *Service
}

func NewHandler(authService *Service) *Handler {
	return &Handler{
		authService: authService,
	}
}

// SetupRoutes registers the register/login/logout endpoints on the
// given (sub)router; rate limiting and CORS for these open endpoints
// are applied by the server router setup.
func (handler *Handler) SetupRoutes(authRouter *mux.Router) {
	authRouter.
		HandleFunc("/register", handler.handleRegister).
		Methods("POST", "OPTIONS").Name("register")
	authRouter.
		HandleFunc("/login", handler.handleLogin).
		Methods("POST", "OPTIONS").Name("login")
	authRouter.
		HandleFunc("/logout", handler.handleLogout).
		Methods("GET", "OPTIONS").Name("logout")
}

type sessionResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (handler *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.register")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	type registerRequest struct {
		FullName        string `json:"fullName"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}

	var registerReq registerRequest
	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		log.Errorf("register, unmarshal json params: %s", err)
		http.Error(w, "registration failed", http.StatusBadRequest)
		return
	}

	if registerReq.FullName == "" {
		http.Error(w, "error, full name required", http.StatusBadRequest)
		return
	}
	if registerReq.Email == "" {
		http.Error(w, "error, email empty", http.StatusBadRequest)
		return
	}
	if len(registerReq.Password) < minPasswordLength {
		http.Error(w, fmt.Sprintf("error, password shorter than %d characters", minPasswordLength), http.StatusBadRequest)
		return
	}
	if registerReq.Password != registerReq.ConfirmPassword {
		http.Error(w, "error, passwords do not match", http.StatusBadRequest)
		return
	}

	user, token, err := handler.authService.Register(ctx, registerReq.FullName, registerReq.Email, registerReq.Password)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			http.Error(w, "error, user already exists", http.StatusConflict)
			return
		}
		log.Errorf("register user [%s]: %s", registerReq.Email, err)
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	}

	sessionRespJson, err := json.Marshal(sessionResponse{
		Token: token,
		User:  user,
	})
	if err != nil {
		log.Errorf("failed to marshal register response: %s", err)
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionRespJson, http.StatusCreated)
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	type loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var loginReq loginRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			log.Errorf("login, unmarshal json params: %s", err)
			http.Error(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusInternalServerError)
			return
		}
		loginReq = loginRequest{
			Email:    r.Form.Get("email"),
			Password: r.Form.Get("password"),
		}
	}

	if loginReq.Email == "" {
		http.Error(w, "error, email empty", http.StatusBadRequest)
		return
	}
	if loginReq.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	user, token, err := handler.authService.Login(ctx, loginReq.Email, loginReq.Password)
	if err != nil {
		if errors.Is(err, ErrWrongCredentials) {
			reqIp, _ := pkg.ReadUserIP(r)
			log.Tracef("failed login attempt for [%s] from %s", loginReq.Email, reqIp)
			http.Error(w, "error, wrong credentials", http.StatusBadRequest)
			return
		}
		log.Errorf("login failed for [%s]: %s", loginReq.Email, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	sessionRespJson, err := json.Marshal(sessionResponse{
		Token: token,
		User:  user,
	})
	if err != nil {
		log.Errorf("failed to marshal login response: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	log.Trace("new login success")
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, sessionRespJson)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	authToken := r.Header.Get(TokenHeader)
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.authService.Logout(ctx, authToken)
	if err != nil {
		log.Tracef("logout failed => %s: %s", r.URL.Path, err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}
