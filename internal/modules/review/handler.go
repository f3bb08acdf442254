package review

import (
	"encoding/json"
	"net/http"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/chesterOps/ecommerce-backend/internal/httpx"
	"github.com/chesterOps/ecommerce-backend/internal/modules/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Handler exposes review HTTP endpoints.
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
	r.Get("/api/v1/products/{id}/reviews", h.listByProduct)
	r.With(h.authmw.Require).Post("/api/v1/reviews", h.create)
	r.With(h.authmw.Require).Patch("/api/v1/reviews/{id}", h.update)
	r.With(h.authmw.Require).Delete("/api/v1/reviews/{id}", h.delete)
}

func (h *Handler) listByProduct(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListByProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, reviews)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	p, _ := auth.FromContext(r.Context())
	rv, err := h.service.Create(r.Context(), req, p)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rv)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	p, _ := auth.FromContext(r.Context())
	rv, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req, p)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rv)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), p); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "review deleted"})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (ReviewInput, bool) {
	var req ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, h.logger, apperr.Validation("invalid request body"))
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, h.logger, apperr.Wrap(apperr.KindValidation, "invalid review data", err))
		return req, false
	}
	return req, true
}
