package catalog

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

// Handler exposes product and category HTTP endpoints.
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

	r.Get("/api/v1/products", h.listProducts)
	r.Get("/api/v1/products/{id}", h.getProduct)
	r.Get("/api/v1/products/slug/{slug}", h.getProductBySlug)
	r.With(admin...).Post("/api/v1/products", h.createProduct)
	r.With(admin...).Put("/api/v1/products/{id}", h.updateProduct)
	r.With(admin...).Delete("/api/v1/products/{id}", h.deleteProduct)

	r.Get("/api/v1/categories", h.listCategories)
	r.Get("/api/v1/categories/{id}", h.getCategory)
	r.With(admin...).Post("/api/v1/categories", h.createCategory)
	r.With(admin...).Patch("/api/v1/categories/{id}", h.updateCategory)
	r.With(admin...).Delete("/api/v1/categories/{id}", h.deleteCategory)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		CategoryID:    r.URL.Query().Get("category"),
		PublishedOnly: r.URL.Query().Get("published") != "false",
	}
	products, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) getProductBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "product deleted"})
}

func (h *Handler) decodeProduct(w http.ResponseWriter, r *http.Request) (ProductInput, bool) {
	var req ProductInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, h.logger, apperr.Validation("invalid request body"))
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, h.logger, apperr.Wrap(apperr.KindValidation, "invalid product data", err))
		return req, false
	}
	return req, true
}

// ── categories ───────────────────────────────────────────────────────────────

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, categories)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCategory(w, r)
	if !ok {
		return
	}
	c, err := h.service.CreateCategory(r.Context(), req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCategory(w, r)
	if !ok {
		return
	}
	c, err := h.service.UpdateCategory(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "category deleted"})
}

func (h *Handler) decodeCategory(w http.ResponseWriter, r *http.Request) (CategoryInput, bool) {
	var req CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, h.logger, apperr.Validation("invalid request body"))
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, h.logger, apperr.Wrap(apperr.KindValidation, "invalid category data", err))
		return req, false
	}
	return req, true
}
