package order

import (
	"encoding/json"
	"net/http"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/chesterOps/ecommerce-backend/internal/httpx"
	"github.com/chesterOps/ecommerce-backend/internal/modules/auth"
	"github.com/chesterOps/ecommerce-backend/internal/modules/user"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Handler exposes order HTTP endpoints.
type Handler struct {
	service Service
	authmw  *auth.Auth
	logger  *logrus.Logger
}

func NewHandler(service Service, authmw *auth.Auth, logger *logrus.Logger) *Handler {
	return &Handler{service: service, authmw: authmw, logger: logger}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	admin := []func(http.Handler) http.Handler{h.authmw.Require, auth.RequireRole(user.RoleAdmin)}

	r.With(h.authmw.Optional).Post("/api/v1/orders", h.create)
	r.With(h.authmw.Require).Get("/api/v1/orders", h.list)
	r.With(h.authmw.Require).Get("/api/v1/orders/{id}", h.get)
	r.With(admin...).Patch("/api/v1/orders/{id}", h.updateStatus)
	r.With(admin...).Delete("/api/v1/orders/{id}", h.delete)
	r.With(h.authmw.Require, auth.RequireRole(user.RoleCustomer)).
		Patch("/api/v1/orders/cancel-order/{id}", h.cancel)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, h.logger, apperr.Validation("invalid request body"))
		return
	}
	if p, ok := auth.FromContext(r.Context()); ok {
		req.UserID = p.UserID.String()
	}

	o, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	h.logger.WithFields(logrus.Fields{
		"order_id":       o.ID,
		"payment_method": o.PaymentMethod,
		"items_count":    len(o.Items),
	}).Info("order created")
	httpx.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order created successfully",
		"order":   o,
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	orders, err := h.service.List(r.Context(), p)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{
		"count": len(orders),
		"data":  orders,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	o, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

// updateStatus accepts only the status field; anything else in the payload
// is ignored.
func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, h.logger, apperr.Validation("invalid request body"))
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	o, err := h.service.Cancel(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order cancelled successfully",
		"data":    o,
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}
