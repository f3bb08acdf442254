package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlutterwaveVerifyWebhook(t *testing.T) {
	gw := &flutterwaveGateway{webhookHash: "secret-hash"}

	t.Run("matching hash passes", func(t *testing.T) {
		assert.NoError(t, gw.VerifyWebhook("secret-hash", []byte(`{}`)))
	})

	t.Run("wrong hash fails", func(t *testing.T) {
		err := gw.VerifyWebhook("wrong", []byte(`{}`))
		require.Error(t, err)
		assert.Equal(t, apperr.KindInvalidSignature, apperr.KindOf(err))
	})

	t.Run("unconfigured hash rejects everything", func(t *testing.T) {
		bare := &flutterwaveGateway{}
		err := bare.VerifyWebhook("", []byte(`{}`))
		require.Error(t, err)
		assert.Equal(t, apperr.KindInvalidSignature, apperr.KindOf(err))
	})
}

func TestFlutterwaveParseEvent(t *testing.T) {
	gw := &flutterwaveGateway{}

	t.Run("successful charge", func(t *testing.T) {
		body := []byte(`{
			"event": "charge.completed",
			"data": {
				"status": "successful",
				"tx_ref": "tx-abc",
				"amount": 120.5,
				"currency": "USD",
				"meta": {"firstName": "Ada", "email": "ada@example.com", "items": "[]"}
			}
		}`)
		ev, err := gw.ParseEvent(body)
		require.NoError(t, err)
		assert.True(t, ev.Succeeded)
		assert.Equal(t, ProviderFlutterwave, ev.Provider)
		assert.Equal(t, "tx-abc", ev.TxRef)
		assert.Equal(t, 120.5, ev.Amount)
		assert.Equal(t, "Ada", ev.Meta.FirstName)
	})

	t.Run("failed charge is not a success", func(t *testing.T) {
		body := []byte(`{"event": "charge.completed", "data": {"status": "failed", "tx_ref": "tx-abc"}}`)
		ev, err := gw.ParseEvent(body)
		require.NoError(t, err)
		assert.False(t, ev.Succeeded)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := gw.ParseEvent([]byte(`not json`))
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestPaystackVerifyWebhook(t *testing.T) {
	gw := &paystackGateway{secretKey: "sk_test_secret"}
	body := []byte(`{"event":"charge.success"}`)

	mac := hmac.New(sha512.New, []byte("sk_test_secret"))
	mac.Write(body)
	valid := hex.EncodeToString(mac.Sum(nil))

	t.Run("valid signature passes", func(t *testing.T) {
		assert.NoError(t, gw.VerifyWebhook(valid, body))
	})

	t.Run("signature over different body fails", func(t *testing.T) {
		err := gw.VerifyWebhook(valid, []byte(`{"event":"charge.success","amount":1}`))
		require.Error(t, err)
		assert.Equal(t, apperr.KindInvalidSignature, apperr.KindOf(err))
	})

	t.Run("garbage signature fails", func(t *testing.T) {
		err := gw.VerifyWebhook("deadbeef", body)
		require.Error(t, err)
		assert.Equal(t, apperr.KindInvalidSignature, apperr.KindOf(err))
	})
}

func TestPaystackParseEvent(t *testing.T) {
	gw := &paystackGateway{}

	body := []byte(`{
		"event": "charge.success",
		"data": {
			"status": "success",
			"reference": "tx-xyz",
			"amount": 12050,
			"currency": "NGN",
			"metadata": {"firstName": "Obi", "items": "[]"}
		}
	}`)
	ev, err := gw.ParseEvent(body)
	require.NoError(t, err)
	assert.True(t, ev.Succeeded)
	assert.Equal(t, ProviderPaystack, ev.Provider)
	assert.Equal(t, "tx-xyz", ev.TxRef)
	assert.Equal(t, 120.5, ev.Amount) // subunits converted back
	assert.Equal(t, "Obi", ev.Meta.FirstName)
}

func TestFlutterwaveInitiateCharge(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/payments", r.URL.Path)
		assert.Equal(t, "Bearer flw-secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","message":"Hosted Link","data":{"link":"https://checkout.flutterwave.com/pay/abc"}}`))
	}))
	defer srv.Close()

	gw := &flutterwaveGateway{secretKey: "flw-secret", baseURL: srv.URL, client: srv.Client()}
	resp, err := gw.InitiateCharge(context.Background(), &ChargeRequest{
		TxRef:    "tx-1",
		Amount:   99.9,
		Currency: "USD",
		Customer: Customer{Name: "Ada", Email: "ada@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "https://checkout.flutterwave.com/pay/abc", resp.Link)
	assert.NotEmpty(t, resp.Raw)

	// Amount goes over the wire as a two-decimal string.
	assert.Equal(t, "99.90", got["amount"])
	assert.Equal(t, "tx-1", got["tx_ref"])
}

func TestPaystackInitiateCharge(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{"authorization_url":"https://checkout.paystack.com/xyz"}}`))
	}))
	defer srv.Close()

	gw := &paystackGateway{secretKey: "sk-test", baseURL: srv.URL, client: srv.Client()}
	resp, err := gw.InitiateCharge(context.Background(), &ChargeRequest{
		TxRef:    "tx-2",
		Amount:   120.5,
		Currency: "NGN",
		Customer: Customer{Email: "obi@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "https://checkout.paystack.com/xyz", resp.Link)

	// Amount goes over the wire in subunits.
	assert.Equal(t, float64(12050), got["amount"])
}

func TestGatewayErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"error","message":"invalid key"}`))
	}))
	defer srv.Close()

	gw := &flutterwaveGateway{secretKey: "bad", baseURL: srv.URL, client: srv.Client()}
	_, err := gw.InitiateCharge(context.Background(), &ChargeRequest{TxRef: "tx-3", Amount: 1, Currency: "USD"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindGateway, apperr.KindOf(err))
}
