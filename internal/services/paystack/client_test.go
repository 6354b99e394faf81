package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSignature(t *testing.T) {
	secret := "sk_test_secret"
	body := []byte(`{"event":"charge.success","data":{"reference":"ref-1","amount":50000}}`)

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	signature := hex.EncodeToString(mac.Sum(nil))

	client := NewClient(Config{SecretKey: secret})

	assert.True(t, client.ValidateSignature(body, signature))
	assert.False(t, client.ValidateSignature(body, ""))
	assert.False(t, client.ValidateSignature(body, "deadbeef"))
	// Any body mutation must invalidate the signature.
	assert.False(t, client.ValidateSignature(append(body, ' '), signature))
	// A signature computed with a different key must not validate.
	other := NewClient(Config{SecretKey: "sk_test_other"})
	assert.False(t, other.ValidateSignature(body, signature))
}

func TestInitialize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))

		var req map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ada@example.com", req["email"])
		assert.Equal(t, float64(50000), req["amount"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]interface{}{
				"authorization_url": "https://checkout.paystack.com/abc",
				"access_code":       "abc",
				"reference":         "ref-123",
			},
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, SecretKey: "sk_test_secret"})
	result, err := client.Initialize(context.Background(), "ada@example.com", 50000)
	assert.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc", result.AuthorizationURL)
	assert.Equal(t, "ref-123", result.Reference)
}

func TestInitialize_GatewayRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "Invalid amount",
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, SecretKey: "sk_test_secret"})
	_, err := client.Initialize(context.Background(), "ada@example.com", 0)
	assert.ErrorIs(t, err, ErrGatewayError)
}

func TestVerify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/transaction/verify/ref-123", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]interface{}{
				"status":    "success",
				"amount":    50000,
				"reference": "ref-123",
			},
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, SecretKey: "sk_test_secret"})
	result, err := client.Verify(context.Background(), "ref-123")
	assert.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, int64(50000), result.AmountKobo)
}

func TestVerify_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, SecretKey: "sk_test_secret"})
	_, err := client.Verify(context.Background(), "ref-123")
	assert.ErrorIs(t, err, ErrGatewayError)
}
