package coupon

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

// Handler exposes coupon HTTP endpoints. Apply is public; everything else
// is admin-only.
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
	admin := []func(http.Handler) http.Handler{h.authmw.Require, auth.RequireRole(user.RoleAdmin)}

	r.Post("/api/v1/coupons/apply", h.apply)
	r.With(admin...).Get("/api/v1/coupons", h.list)
	r.With(admin...).Post("/api/v1/coupons", h.create)
	r.With(admin...).Get("/api/v1/coupons/{id}", h.get)
	r.With(admin...).Patch("/api/v1/coupons/{id}", h.update)
	r.With(admin...).Delete("/api/v1/coupons/{id}", h.delete)
}

func (h *Handler) apply(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, h.logger, apperr.Validation("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, h.logger, apperr.Wrap(apperr.KindValidation, "code and cartTotal are required", err))
		return
	}
	result, err := h.service.Apply(r.Context(), req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Coupon applied",
		"data":    result,
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.service.List(r.Context())
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, coupons)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	c, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	c, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "coupon deleted"})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (CouponInput, bool) {
	var req CouponInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, h.logger, apperr.Validation("invalid request body"))
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, h.logger, apperr.Wrap(apperr.KindValidation, "invalid coupon data", err))
		return req, false
	}
	return req, true
}
