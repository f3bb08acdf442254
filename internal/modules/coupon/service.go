package coupon

import (
	"context"
	"strings"
	"time"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/google/uuid"
)

// Service defines coupon business logic.
type Service interface {
	// Apply validates a code against its active window and prices the cart.
	Apply(ctx context.Context, req ApplyRequest) (*ApplyResult, error)

	Create(ctx context.Context, req CouponInput) (*Coupon, error)
	Get(ctx context.Context, id string) (*Coupon, error)
	List(ctx context.Context) ([]*Coupon, error)
	Update(ctx context.Context, id string, req CouponInput) (*Coupon, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new coupon service.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Apply(ctx context.Context, req ApplyRequest) (*ApplyResult, error) {
	c, err := s.repo.GetActiveByCode(ctx, strings.ToUpper(strings.TrimSpace(req.Code)))
	if err != nil {
		return nil, err
	}

	now := s.now()
	if now.Before(c.Start) {
		return nil, apperr.Validation("coupon is not active yet")
	}
	if now.After(c.End) {
		return nil, apperr.Validation("coupon has expired")
	}

	final := round2(req.CartTotal * (1 - c.Discount/100))
	return &ApplyResult{FinalTotal: final, Coupon: c}, nil
}

func (s *service) Create(ctx context.Context, req CouponInput) (*Coupon, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	c := &Coupon{
		ID:       uuid.New(),
		Code:     strings.ToUpper(strings.TrimSpace(req.Code)),
		Discount: req.Discount,
		Start:    req.Start,
		End:      req.End,
		Active:   active,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, id string) (*Coupon, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Coupon, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, req CouponInput) (*Coupon, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	c.Discount = req.Discount
	c.Start = req.Start
	c.End = req.End
	if req.Active != nil {
		c.Active = *req.Active
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
