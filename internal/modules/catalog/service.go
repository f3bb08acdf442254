package catalog

import (
	"context"
	"strings"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Service defines catalog business logic for products and categories.
type Service interface {
	CreateProduct(ctx context.Context, req ProductInput) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)
	ListProducts(ctx context.Context, filter ListFilter) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req ProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// ProductExists, DecrementStock and the rating setters are the narrow
	// surface other modules (orders, reviews, flash sales) call into.
	ProductExists(ctx context.Context, id string) (bool, error)
	DecrementStock(ctx context.Context, id string, qty int) error
	SetProductRating(ctx context.Context, id string, value float64, count int) error
	ClearProductRating(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, req CategoryInput) (*Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	UpdateCategory(ctx context.Context, id string, req CategoryInput) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type service struct {
	products   Repository
	categories CategoryRepository
	logger     *logrus.Logger
}

// NewService creates a new catalog service.
func NewService(products Repository, categories CategoryRepository, logger *logrus.Logger) Service {
	return &service{products: products, categories: categories, logger: logger}
}

func (s *service) CreateProduct(ctx context.Context, req ProductInput) (*Product, error) {
	categoryIDs, err := parseCategoryIDs(req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}
	p := &Product{
		ID:          uuid.New(),
		Title:       req.Title,
		Slug:        Slugify(req.Title),
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Discount:    req.Discount,
		Published:   published,
		Images:      req.Images,
		CategoryIDs: categoryIDs,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applySaleDiscount(p)
	return p, nil
}

func (s *service) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	p, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	applySaleDiscount(p)
	return p, nil
}

func (s *service) ListProducts(ctx context.Context, filter ListFilter) ([]*Product, error) {
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		applySaleDiscount(p)
	}
	return products, nil
}

func (s *service) UpdateProduct(ctx context.Context, id string, req ProductInput) (*Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	categoryIDs, err := parseCategoryIDs(req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	if req.Title != p.Title {
		p.Slug = Slugify(req.Title)
	}
	p.Title = req.Title
	p.Description = req.Description
	p.Price = req.Price
	p.Stock = req.Stock
	p.Discount = req.Discount
	if req.Published != nil {
		p.Published = *req.Published
	}
	p.Images = req.Images
	p.CategoryIDs = categoryIDs

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

func (s *service) ProductExists(ctx context.Context, id string) (bool, error) {
	return s.products.Exists(ctx, id)
}

func (s *service) DecrementStock(ctx context.Context, id string, qty int) error {
	if qty <= 0 {
		return apperr.Validation("quantity must be greater than 0")
	}
	return s.products.DecrementStock(ctx, id, qty)
}

func (s *service) SetProductRating(ctx context.Context, id string, value float64, count int) error {
	return s.products.SetRating(ctx, id, value, count)
}

func (s *service) ClearProductRating(ctx context.Context, id string) error {
	return s.products.ClearRating(ctx, id)
}

// ── categories ───────────────────────────────────────────────────────────────

func (s *service) CreateCategory(ctx context.Context, req CategoryInput) (*Category, error) {
	c := &Category{
		ID:   uuid.New(),
		Name: strings.TrimSpace(req.Name),
		Slug: Slugify(req.Name),
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetCategory(ctx context.Context, id string) (*Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.categories.List(ctx)
}

func (s *service) UpdateCategory(ctx context.Context, id string, req CategoryInput) (*Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(req.Name)
	c.Slug = Slugify(req.Name)
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory removes the category and detaches it from every product
// that referenced it. The cleanup is an explicit call here, not a
// persistence hook.
func (s *service) DeleteCategory(ctx context.Context, id string) error {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.products.DetachCategory(ctx, c.ID); err != nil {
		s.logger.WithError(err).WithField("category_id", id).
			Error("failed to detach deleted category from products")
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

// applySaleDiscount surfaces the flash-sale discount in place of the declared
// one when an override is present.
func applySaleDiscount(p *Product) {
	if p.Sale != nil {
		p.Discount = p.Sale.Discount
		p.Sale = nil
	}
}

func parseCategoryIDs(raw []string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, apperr.Newf(apperr.KindValidation, "invalid category id: %s", s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Slugify derives a URL-safe slug from a title.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
