package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/hongminglow/eventos-be/internal/auth"
	"github.com/hongminglow/eventos-be/internal/http/respond"
	"github.com/hongminglow/eventos-be/internal/models/dto"
	"github.com/hongminglow/eventos-be/internal/service"
	"github.com/hongminglow/eventos-be/internal/session"
)

// AuthHandler owns the signup, login, profile, logout and password recovery endpoints.
type AuthHandler struct {
	gateway   *service.CredentialGateway
	profiles  *service.ProfileComposer
	cookies   *session.CookieManager
	tokens    *auth.TokenInspector
	echoToken bool
}

// NewAuthHandler constructs the handler. echoToken controls whether the login
// response body repeats the access token already placed in the cookie.
func NewAuthHandler(gateway *service.CredentialGateway, profiles *service.ProfileComposer, cookies *session.CookieManager, tokens *auth.TokenInspector, echoToken bool) *AuthHandler {
	return &AuthHandler{gateway: gateway, profiles: profiles, cookies: cookies, tokens: tokens, echoToken: echoToken}
}

// Register attaches auth routes to r. limit wraps the credential endpoints;
// nil means no limit.
func (h *AuthHandler) Register(r chi.Router, limit func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		if limit != nil {
			r.Use(limit)
		}
		r.Post("/signup", h.handleSignup)
		r.Post("/login", h.handleLogin)
		r.Post("/forgot-password", h.handleForgotPassword)
	})
	r.Get("/profile", h.handleProfile)
	r.Post("/logout", h.handleLogout)
}

func (h *AuthHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.AppError(w, r, err)
		return
	}
	if err := validateRequest(req); err != nil {
		respond.AppError(w, r, err)
		return
	}

	_, err := h.gateway.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		respond.AppError(w, r, err)
		return
	}
	respond.Message(w, http.StatusCreated, "user created successfully")
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.AppError(w, r, err)
		return
	}
	if err := validateRequest(req); err != nil {
		respond.AppError(w, r, err)
		return
	}

	sess, err := h.gateway.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.AppError(w, r, err)
		return
	}

	h.cookies.Issue(w, sess.AccessToken, h.tokenTTL(r, sess.AccessToken, sess.ExpiresIn))

	resp := dto.LoginResponse{Message: "login successful", User: sess.User}
	if h.echoToken {
		resp.Token = sess.AccessToken
	}
	respond.JSON(w, http.StatusOK, resp)
}

// tokenTTL prefers the token's own exp claim and falls back to the
// provider's expires_in. An expired token yields a negative duration.
func (h *AuthHandler) tokenTTL(r *http.Request, token string, expiresIn int64) time.Duration {
	fallback := time.Duration(expiresIn) * time.Second
	if h.tokens == nil {
		return fallback
	}
	ttl, err := h.tokens.Remaining(token)
	if errors.Is(err, auth.ErrExpired) {
		return -time.Second
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("access token expiry unreadable; using expires_in")
		return fallback
	}
	return ttl
}

func (h *AuthHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.GetProfile(r.Context(), h.cookies.Read(r))
	if err != nil {
		respond.AppError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, profile)
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	respond.Message(w, http.StatusOK, "logged out")
}

func (h *AuthHandler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.AppError(w, r, err)
		return
	}
	if err := validateRequest(req); err != nil {
		respond.AppError(w, r, err)
		return
	}

	if err := h.gateway.ResetPassword(r.Context(), req.Email); err != nil {
		respond.AppError(w, r, err)
		return
	}
	respond.Message(w, http.StatusOK, "password reset email sent")
}
