package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/chesterOps/ecommerce-backend/internal/modules/auth"
	"github.com/chesterOps/ecommerce-backend/internal/modules/order"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// OrderLedger is the slice of the order service checkout depends on.
type OrderLedger interface {
	Create(ctx context.Context, req order.CreateRequest) (*order.Order, error)
	CreatePaid(ctx context.Context, req order.CreateRequest, providerRef string) (*order.Order, error)
}

// AddressSaver persists a checkout billing address onto a user profile.
type AddressSaver interface {
	SaveBillingAddress(ctx context.Context, userID string, address json.RawMessage) error
}

// CheckoutResult is the outcome of a checkout request: an order for
// cash-on-delivery, or the provider's charge payload for card payments.
type CheckoutResult struct {
	Order   *order.Order    `json:"order,omitempty"`
	Payment json.RawMessage `json:"data,omitempty"`
}

// WebhookResult reports how a webhook delivery was handled.
type WebhookResult struct {
	Status string       `json:"status"` // processed | replayed | ignored
	Order  *order.Order `json:"order,omitempty"`
}

// Service orchestrates the checkout flow and webhook finalization.
type Service interface {
	Checkout(ctx context.Context, req CheckoutRequest, p *auth.Principal) (*CheckoutResult, error)
	HandleWebhook(ctx context.Context, header http.Header, body []byte) (*WebhookResult, error)
}

type service struct {
	gateways Registry
	provider string
	repo     Repository
	orders   OrderLedger
	users    AddressSaver
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewService creates the checkout orchestrator. provider names the gateway
// used for card payments.
func NewService(gateways Registry, provider string, repo Repository, orders OrderLedger, users AddressSaver, logger *logrus.Logger) Service {
	return &service{
		gateways: gateways,
		provider: provider,
		repo:     repo,
		orders:   orders,
		users:    users,
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *service) Checkout(ctx context.Context, req CheckoutRequest, p *auth.Principal) (*CheckoutResult, error) {
	// Fail fast: nothing is persisted and no provider is called until the
	// payload is fully valid.
	if err := s.validate.Struct(req); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid data format", err)
	}

	billing := order.BillingAddress{
		Name:         req.FirstName,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		CompanyName:  req.CompanyName,
		City:         req.City,
		Phone:        req.Phone,
		Email:        req.Email,
	}

	var res *CheckoutResult
	var err error
	switch order.PaymentMethod(req.PaymentMethod) {
	case order.MethodCashOnDelivery:
		res, err = s.checkoutCashOnDelivery(ctx, req, billing, p)
	case order.MethodCard:
		res, err = s.checkoutCard(ctx, req, p)
	default:
		return nil, apperr.Validation("invalid payment method")
	}
	if err != nil {
		return nil, err
	}

	// Side effect only after the checkout itself went through; a rejected
	// checkout must not touch the profile.
	if req.SaveAddress && p != nil {
		if raw, err := json.Marshal(billing); err == nil {
			if err := s.users.SaveBillingAddress(ctx, p.UserID.String(), raw); err != nil {
				s.logger.WithError(err).WithField("user_id", p.UserID).
					Warn("failed to save billing address")
			}
		}
	}
	return res, nil
}

// checkoutCashOnDelivery records the pending order immediately; there is no
// gateway interaction.
func (s *service) checkoutCashOnDelivery(ctx context.Context, req CheckoutRequest, billing order.BillingAddress, p *auth.Principal) (*CheckoutResult, error) {
	oreq := order.CreateRequest{
		BillingAddress: billing,
		Items:          toOrderItems(req.Items),
		PaymentMethod:  string(order.MethodCashOnDelivery),
	}
	if p != nil {
		oreq.UserID = p.UserID.String()
	}
	o, err := s.orders.Create(ctx, oreq)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"order_id": o.ID}).Info("cash-on-delivery order created")
	return &CheckoutResult{Order: o}, nil
}

// checkoutCard initiates the charge and returns the provider payload. No
// order exists until the webhook confirms payment; an abandoned checkout
// leaves no trace because it was never charged.
func (s *service) checkoutCard(ctx context.Context, req CheckoutRequest, p *auth.Principal) (*CheckoutResult, error) {
	gw, ok := s.gateways[s.provider]
	if !ok {
		return nil, apperr.Newf(apperr.KindGateway, "no payment gateway configured for provider: %s", s.provider)
	}

	itemsJSON, err := json.Marshal(req.Items)
	if err != nil {
		return nil, err
	}
	meta := CheckoutMeta{
		FirstName:    req.FirstName,
		Email:        req.Email,
		Phone:        req.Phone,
		City:         req.City,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		CompanyName:  req.CompanyName,
		Items:        string(itemsJSON),
	}
	if p != nil {
		meta.UserID = p.UserID.String()
	}

	charge := &ChargeRequest{
		TxRef:    fmt.Sprintf("tx-%s", uuid.New()),
		Amount:   req.Amount,
		Currency: "USD",
		Customer: Customer{Name: req.FirstName, Email: req.Email, Phone: req.Phone},
		Meta:     meta,
	}
	resp, err := gw.InitiateCharge(ctx, charge)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"provider": gw.Name(),
		"tx_ref":   charge.TxRef,
		"amount":   charge.Amount,
	}).Info("charge initiated")
	return &CheckoutResult{Payment: resp.Raw}, nil
}

// HandleWebhook authenticates and finalizes an asynchronous payment
// confirmation. Replays of an already-finalized transaction reference are
// no-ops.
func (s *service) HandleWebhook(ctx context.Context, header http.Header, body []byte) (*WebhookResult, error) {
	gw, signature := s.matchGateway(header)
	if gw == nil {
		return nil, apperr.New(apperr.KindInvalidSignature, "missing webhook signature")
	}
	if err := gw.VerifyWebhook(signature, body); err != nil {
		return nil, err
	}

	ev, err := gw.ParseEvent(body)
	if err != nil {
		return nil, err
	}
	if !ev.Succeeded {
		s.logger.WithFields(logrus.Fields{
			"provider": ev.Provider,
			"event":    ev.Type,
			"status":   ev.Status,
		}).Info("ignoring non-success payment event")
		return &WebhookResult{Status: "ignored"}, nil
	}
	if ev.TxRef == "" {
		return nil, apperr.Validation("webhook event missing transaction reference")
	}

	// Dedupe before doing anything else: at-least-once delivery means the
	// same reference can arrive more than once. Only a record with an
	// attached order marks the reference as finalized; a claimed but
	// unattached record means a prior delivery died before the order was
	// written, so this retry runs finalization again.
	existing, err := s.repo.GetByTxRef(ctx, ev.TxRef)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.OrderID != nil {
		s.logger.WithField("tx_ref", ev.TxRef).Info("replayed webhook, no-op")
		return &WebhookResult{Status: "replayed"}, nil
	}

	if existing == nil {
		// Claim the reference first; the unique constraint arbitrates
		// concurrent deliveries of the same reference.
		rec := &Record{
			ID:       uuid.New(),
			Provider: ev.Provider,
			TxRef:    ev.TxRef,
			Amount:   ev.Amount,
			Currency: ev.Currency,
		}
		if err := s.repo.Create(ctx, rec); err != nil {
			if apperr.KindOf(err) == apperr.KindConflict {
				// A concurrent delivery holds the claim and is finalizing.
				return &WebhookResult{Status: "replayed"}, nil
			}
			return nil, err
		}
	}

	o, err := s.finalizeOrder(ctx, ev)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AttachOrder(ctx, ev.TxRef, o.ID); err != nil {
		s.logger.WithError(err).WithField("tx_ref", ev.TxRef).
			Error("failed to attach order to payment record")
	}

	s.logger.WithFields(logrus.Fields{
		"provider": ev.Provider,
		"tx_ref":   ev.TxRef,
		"order_id": o.ID,
	}).Info("payment webhook processed")
	return &WebhookResult{Status: "processed", Order: o}, nil
}

// finalizeOrder reconstructs the cart from the round-tripped metadata and
// records the paid order.
func (s *service) finalizeOrder(ctx context.Context, ev *Event) (*order.Order, error) {
	var items []CheckoutItem
	if err := json.Unmarshal([]byte(ev.Meta.Items), &items); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid items metadata", err)
	}

	oreq := order.CreateRequest{
		BillingAddress: order.BillingAddress{
			Name:         ev.Meta.FirstName,
			AddressLine1: ev.Meta.AddressLine1,
			AddressLine2: ev.Meta.AddressLine2,
			CompanyName:  ev.Meta.CompanyName,
			City:         ev.Meta.City,
			Phone:        ev.Meta.Phone,
			Email:        ev.Meta.Email,
		},
		Items:         toOrderItems(items),
		PaymentMethod: string(order.MethodCard),
		UserID:        ev.Meta.UserID,
	}
	return s.orders.CreatePaid(ctx, oreq, ev.TxRef)
}

func (s *service) matchGateway(header http.Header) (Gateway, string) {
	for _, gw := range s.gateways {
		if sig := header.Get(gw.SignatureHeader()); sig != "" {
			return gw, sig
		}
	}
	return nil, ""
}

func toOrderItems(items []CheckoutItem) []order.ItemInput {
	out := make([]order.ItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, order.ItemInput{
			Title:     it.Title,
			Price:     it.Price,
			Quantity:  it.Quantity,
			ProductID: it.ProductID,
		})
	}
	return out
}
