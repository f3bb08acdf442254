package order

import (
	"context"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/chesterOps/ecommerce-backend/internal/modules/auth"
	"github.com/chesterOps/ecommerce-backend/internal/modules/user"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// StockAdjuster is the slice of the catalog service orders depend on.
// Stock is decremented by an explicit call after an order is recorded.
type StockAdjuster interface {
	DecrementStock(ctx context.Context, productID string, qty int) error
}

// Service defines the order ledger business logic.
type Service interface {
	// Create records a new order in pending state.
	Create(ctx context.Context, req CreateRequest) (*Order, error)

	// CreatePaid records an order already confirmed by a verified payment
	// webhook, carrying the provider transaction reference.
	CreatePaid(ctx context.Context, req CreateRequest, providerRef string) (*Order, error)

	// List returns all orders for admins, or the requester's own otherwise.
	List(ctx context.Context, p auth.Principal) ([]*Order, error)

	// Get fetches one order; non-admins only see orders they own.
	Get(ctx context.Context, id string, p auth.Principal) (*Order, error)

	// UpdateStatus is the admin-only status change.
	UpdateStatus(ctx context.Context, id string, newStatus string) (*Order, error)

	// Cancel sets a pending order owned by the requester to cancelled.
	Cancel(ctx context.Context, id string, p auth.Principal) (*Order, error)

	// Delete is the admin-only hard delete.
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	stock    StockAdjuster
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewService creates a new order service.
func NewService(repo Repository, stock StockAdjuster, logger *logrus.Logger) Service {
	return &service{
		repo:     repo,
		stock:    stock,
		validate: validator.New(),
		logger:   logger,
	}
}

// adminStatuses are the values an admin may set through UpdateStatus.
var adminStatuses = map[Status]bool{
	StatusCompleted: true,
	StatusPending:   true,
	StatusCancelled: true,
}

// terminal statuses cannot be left once reached.
var terminal = map[Status]bool{
	StatusCompleted: true,
	StatusCancelled: true,
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	return s.create(ctx, req, StatusPending, "")
}

func (s *service) CreatePaid(ctx context.Context, req CreateRequest, providerRef string) (*Order, error) {
	return s.create(ctx, req, StatusPaid, providerRef)
}

func (s *service) create(ctx context.Context, req CreateRequest, status Status, ref string) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, apperr.Validation("no items in the order")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid order data", err)
	}

	o := &Order{
		ID:             uuid.New(),
		Status:         status,
		PaymentMethod:  PaymentMethod(req.PaymentMethod),
		Ref:            ref,
		BillingAddress: req.BillingAddress,
	}
	if req.UserID != "" {
		uid, err := uuid.Parse(req.UserID)
		if err != nil {
			return nil, apperr.Validation("invalid user id")
		}
		o.UserID = &uid
	}
	for _, in := range req.Items {
		pid, err := uuid.Parse(in.ProductID)
		if err != nil {
			return nil, apperr.Newf(apperr.KindValidation, "invalid product id: %s", in.ProductID)
		}
		o.Items = append(o.Items, &Item{
			ID:        uuid.New(),
			OrderID:   o.ID,
			Title:     in.Title,
			Price:     in.Price,
			Quantity:  in.Quantity,
			ProductID: pid,
		})
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	// A pending card order has not been paid for; stock only moves once the
	// webhook confirms payment and records the paid order.
	if o.PaymentMethod != MethodCard || o.Status != StatusPending {
		s.decrementStock(ctx, o)
	}
	return o, nil
}

// decrementStock reduces stock for each line item. Failures are logged and
// do not roll the order back.
func (s *service) decrementStock(ctx context.Context, o *Order) {
	for _, item := range o.Items {
		if err := s.stock.DecrementStock(ctx, item.ProductID.String(), item.Quantity); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"order_id":   o.ID,
				"product_id": item.ProductID,
				"quantity":   item.Quantity,
			}).Error("failed to decrement stock")
		}
	}
}

func (s *service) List(ctx context.Context, p auth.Principal) ([]*Order, error) {
	if p.Role == user.RoleAdmin {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByUser(ctx, p.UserID.String())
}

func (s *service) Get(ctx context.Context, id string, p auth.Principal) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Role != user.RoleAdmin && (o.UserID == nil || *o.UserID != p.UserID) {
		// Not the owner; respond as if the order does not exist.
		return nil, apperr.NotFound("order not found")
	}
	return o, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, newStatus string) (*Order, error) {
	status := Status(newStatus)
	if !adminStatuses[status] {
		return nil, apperr.Validation("invalid status value")
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if terminal[o.Status] && o.Status != status {
		return nil, apperr.Newf(apperr.KindConflict, "cannot change a %s order to %s", o.Status, status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	o.Status = status
	return o, nil
}

// Cancel only applies to pending orders. Paid and completed orders need an
// admin, and cancelled orders stay cancelled.
func (s *service) Cancel(ctx context.Context, id string, p auth.Principal) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID == nil || *o.UserID != p.UserID {
		return nil, apperr.NotFound("order not found")
	}
	if o.Status != StatusPending {
		return nil, apperr.Newf(apperr.KindConflict, "only pending orders can be cancelled (current: %s)", o.Status)
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}
	o.Status = StatusCancelled
	return o, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
