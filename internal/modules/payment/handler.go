package payment

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/chesterOps/ecommerce-backend/internal/httpx"
	"github.com/chesterOps/ecommerce-backend/internal/modules/auth"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Handler exposes checkout and webhook HTTP endpoints.
type Handler struct {
	service Service
	authmw  *auth.Auth
	logger  *logrus.Logger
}

func NewHandler(service Service, authmw *auth.Auth, logger *logrus.Logger) *Handler {
	return &Handler{service: service, authmw: authmw, logger: logger}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.With(h.authmw.Optional).Post("/api/v1/orders/checkout", h.checkout)
	r.Post("/api/v1/orders/verify-payment", h.webhook)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, h.logger, apperr.Validation("invalid request body"))
		return
	}

	var principal *auth.Principal
	if p, ok := auth.FromContext(r.Context()); ok {
		principal = &p
	}

	res, err := h.service.Checkout(r.Context(), req, principal)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	if res.Order != nil {
		httpx.JSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Order created successfully",
			"order":   res.Order,
		})
		return
	}
	// Card checkout: forward the provider payload containing the payment
	// link untouched.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(res.Payment)
}

// webhook reads the raw body before any decoding: signature verification
// covers the exact bytes the provider sent.
func (h *Handler) webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.Error(w, h.logger, apperr.Validation("could not read request body"))
		return
	}

	res, err := h.service.HandleWebhook(r.Context(), r.Header, body)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}
