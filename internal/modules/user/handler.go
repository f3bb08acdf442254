package user

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/chesterOps/ecommerce-backend/internal/httpx"
	"github.com/chesterOps/ecommerce-backend/internal/modules/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Handler exposes user HTTP endpoints.
type Handler struct {
	service  Service
	authmw   *auth.Auth
	validate *validator.Validate
	logger   *logrus.Logger
}

func NewHandler(service Service, authmw *auth.Auth, logger *logrus.Logger) *Handler {
	return &Handler{
		service:  service,
		authmw:   authmw,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Post("/api/v1/users/register", h.register)
	r.Post("/api/v1/users/login", h.login)
	r.With(h.authmw.Require).Get("/api/v1/users/me", h.me)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, h.logger, apperr.Validation("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, h.logger, apperr.Wrap(apperr.KindValidation, "invalid registration data", err))
		return
	}

	u, err := h.service.Register(r.Context(), req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	h.logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user registered")
	httpx.JSON(w, http.StatusCreated, u)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, h.logger, apperr.Validation("invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.Error(w, h.logger, apperr.Validation("email and password are required"))
		return
	}

	token, u, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.TokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"token": token, "user": u})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	u, err := h.service.GetUser(r.Context(), p.UserID.String())
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, u)
}
