package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"math"
	"net/http"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
)

const (
	paystackBaseURL = "https://api.paystack.co"

	// ProviderPaystack identifies the Paystack adapter in the registry.
	ProviderPaystack = "paystack"
)

// paystackGateway charges through the Paystack API. Webhooks are signed
// with an HMAC-SHA512 of the raw body in the x-paystack-signature header.
type paystackGateway struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

// NewPaystackGateway creates the Paystack adapter.
func NewPaystackGateway(secretKey string) Gateway {
	return &paystackGateway{
		secretKey: secretKey,
		baseURL:   paystackBaseURL,
		client:    newHTTPClient(),
	}
}

func (g *paystackGateway) Name() string { return ProviderPaystack }

func (g *paystackGateway) SignatureHeader() string { return "x-paystack-signature" }

func (g *paystackGateway) InitiateCharge(ctx context.Context, req *ChargeRequest) (*ChargeResponse, error) {
	payload := map[string]interface{}{
		"email":     req.Customer.Email,
		"amount":    int64(math.Round(req.Amount * 100)), // subunits
		"currency":  req.Currency,
		"reference": req.TxRef,
		"metadata":  req.Meta,
	}

	body, err := postJSON(ctx, g.client, g.baseURL+"/transaction/initialize", g.secretKey, payload)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindGateway, "paystack charge initiation failed", err)
	}

	var out struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			AuthorizationURL string `json:"authorization_url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apperr.Wrap(apperr.KindGateway, "unexpected paystack response", err)
	}
	status := "error"
	if out.Status {
		status = "success"
	}
	return &ChargeResponse{
		Status:  status,
		Message: out.Message,
		Link:    out.Data.AuthorizationURL,
		Raw:     body,
	}, nil
}

// VerifyWebhook recomputes the HMAC-SHA512 of the raw body and compares it
// against the signature header in constant time.
func (g *paystackGateway) VerifyWebhook(signature string, body []byte) error {
	mac := hmac.New(sha512.New, []byte(g.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return apperr.New(apperr.KindInvalidSignature, "invalid webhook signature")
	}
	return nil
}

func (g *paystackGateway) ParseEvent(body []byte) (*Event, error) {
	var in struct {
		Event string `json:"event"`
		Data  struct {
			Status    string       `json:"status"`
			Reference string       `json:"reference"`
			Amount    int64        `json:"amount"` // subunits
			Currency  string       `json:"currency"`
			Metadata  CheckoutMeta `json:"metadata"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid webhook payload", err)
	}
	return &Event{
		Provider:  g.Name(),
		Type:      in.Event,
		Status:    in.Data.Status,
		TxRef:     in.Data.Reference,
		Amount:    float64(in.Data.Amount) / 100,
		Currency:  in.Data.Currency,
		Succeeded: in.Event == "charge.success",
		Meta:      in.Data.Metadata,
	}, nil
}
