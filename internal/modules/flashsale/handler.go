package flashsale

import (
	"encoding/json"
	"net/http"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/chesterOps/ecommerce-backend/internal/httpx"
	"github.com/chesterOps/ecommerce-backend/internal/modules/auth"
	"github.com/chesterOps/ecommerce-backend/internal/modules/user"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Handler exposes flash sale HTTP endpoints.
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
	r.Get("/api/v1/flashsale", h.current)
	r.With(h.authmw.Require, auth.RequireRole(user.RoleAdmin)).
		Post("/api/v1/flashsale", h.create)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, h.logger, apperr.Validation("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, h.logger, apperr.Wrap(apperr.KindValidation, "invalid flash sale data", err))
		return
	}

	sale, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	h.logger.WithFields(logrus.Fields{
		"sale_id":  sale.ID,
		"start":    sale.Start,
		"end":      sale.End,
		"products": len(req.Products),
	}).Info("flash sale replaced")
	httpx.JSON(w, http.StatusCreated, sale)
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	sale, err := h.service.Current(r.Context())
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sale)
}
