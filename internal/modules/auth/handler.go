package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/georgemunganga/praktikum-backend/internal/apperr"
	"github.com/georgemunganga/praktikum-backend/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// maxLoginBody caps the login request body.
const maxLoginBody = 16 << 10

type Handler struct {
	service      Service
	verifier     TokenVerifier
	secret       string
	redactErrors bool
}

func NewHandler(service Service, verifier TokenVerifier, secret string, redactErrors bool) *Handler {
	return &Handler{
		service:      service,
		verifier:     verifier,
		secret:       secret,
		redactErrors: redactErrors,
	}
}

// RegisterRoutes mounts the auth endpoints. loginMiddleware wraps only the
// login route.
func (h *Handler) RegisterRoutes(router chi.Router, loginMiddleware ...func(http.Handler) http.Handler) {
	router.Route("/api/auth", func(r chi.Router) {
		r.With(loginMiddleware...).Post("/login", h.login)
		r.With(RequireToken(h.verifier, h.secret)).Get("/me", h.me)
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	r.Body = http.MaxBytesReader(w, r.Body, maxLoginBody)
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil && !errors.Is(err, io.EOF) {
		metrics.ObserveLogin(metrics.LoginInvalidInput)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apperr.Write(w, apperr.Wrap(err, apperr.CodeInvalidInput, "Request body too large", http.StatusRequestEntityTooLarge), false)
			return
		}
		apperr.Write(w, apperr.NewInvalidInput("Invalid request body"), false)
		return
	}

	result, err := h.service.Login(r.Context(), creds)
	if err != nil {
		ae := apperr.From(err)
		switch {
		case ae.Status >= http.StatusInternalServerError:
			metrics.ObserveLogin(metrics.LoginError)
			zerolog.Ctx(r.Context()).Error().Err(ae.Err).Msg("login failed")
		case ae.Status == http.StatusUnauthorized:
			metrics.ObserveLogin(metrics.LoginRejected)
		default:
			metrics.ObserveLogin(metrics.LoginInvalidInput)
		}
		apperr.Write(w, ae, h.redactErrors)
		return
	}

	metrics.ObserveLogin(metrics.LoginSuccess)
	zerolog.Ctx(r.Context()).Info().Int64("user_id", result.User.ID).Msg("login succeeded")
	apperr.JSON(w, http.StatusOK, result)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		apperr.Write(w, apperr.NewUnauthorized(MsgInvalidToken), false)
		return
	}
	apperr.JSON(w, http.StatusOK, map[string]Claims{"user": *claims})
}
