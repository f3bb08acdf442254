package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Gateway is the provider-agnostic interface every payment adapter
// implements. To add a provider, implement this interface and register it.
type Gateway interface {
	// Name is the provider identifier stored on payment records.
	Name() string

	// SignatureHeader is the HTTP header the provider signs webhooks with.
	SignatureHeader() string

	// InitiateCharge asks the provider to start a charge and returns its
	// payload, which carries the redirect link for the customer.
	InitiateCharge(ctx context.Context, req *ChargeRequest) (*ChargeResponse, error)

	// VerifyWebhook checks the webhook signature against the raw body using
	// a constant-time comparison. It is the sole authentication for
	// asynchronous payment confirmation.
	VerifyWebhook(signature string, body []byte) error

	// ParseEvent decodes a verified webhook body into a normalised event.
	ParseEvent(body []byte) (*Event, error)
}

// Registry maps provider names to their Gateway implementations.
type Registry map[string]Gateway

// outboundTimeout bounds every call to a payment provider.
const outboundTimeout = 15 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: outboundTimeout}
}

// postJSON sends an authorised JSON request to a provider endpoint and
// returns the response body. Non-2xx responses surface as an error carrying
// the provider's reply.
func postJSON(ctx context.Context, client *http.Client, url, bearer string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return data, fmt.Errorf("provider returned %d: %s", resp.StatusCode, data)
	}
	return data, nil
}
