package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velorent/vehicle-rental-backend/internal/config"
	"github.com/velorent/vehicle-rental-backend/internal/models"
)

func newTestStripeService(baseURL string) *StripeService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	svc := NewStripeService(&config.StripeConfig{
		SecretKey:       "sk_test_123",
		DefaultCurrency: "usd",
		RequestTimeout:  5 * time.Second,
	}, logger)
	svc.SetBaseURL(baseURL)
	return svc
}

func TestCreateIntent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "/v1/payment_intents", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "4999", r.PostForm.Get("amount"))
			assert.Equal(t, "usd", r.PostForm.Get("currency"))
			assert.Equal(t, "veh-1", r.PostForm.Get("metadata[vehicle_id]"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret","amount":4999,"currency":"usd","status":"requires_payment_method"}`))
		}))
		defer server.Close()

		svc := newTestStripeService(server.URL)

		intent, err := svc.CreateIntent(49.99, "", models.JSONB{"vehicle_id": "veh-1"})
		require.NoError(t, err)
		assert.Equal(t, "pi_123", intent.ID)
		assert.Equal(t, "pi_123_secret", intent.ClientSecret)
		assert.Equal(t, int64(4999), intent.Amount)
	})

	t.Run("Gateway Error Envelope", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusPaymentRequired)
			w.Write([]byte(`{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`))
		}))
		defer server.Close()

		svc := newTestStripeService(server.URL)

		intent, err := svc.CreateIntent(10, "usd", nil)
		assert.Error(t, err)
		assert.Nil(t, intent)
		assert.Contains(t, err.Error(), "Your card was declined.")
	})

	t.Run("Rejects Non Positive Amount", func(t *testing.T) {
		svc := newTestStripeService("http://127.0.0.1:0")

		_, err := svc.CreateIntent(0, "usd", nil)
		assert.Error(t, err)
	})

	t.Run("Rejects Missing Secret", func(t *testing.T) {
		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		svc := NewStripeService(&config.StripeConfig{RequestTimeout: time.Second}, logger)

		_, err := svc.CreateIntent(10, "usd", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not configured")
	})
}

func TestRetrieveIntent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "GET", r.Method)
			assert.Equal(t, "/v1/payment_intents/pi_123", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"pi_123","amount":4999,"currency":"usd","status":"succeeded"}`))
		}))
		defer server.Close()

		svc := newTestStripeService(server.URL)

		intent, err := svc.RetrieveIntent("pi_123")
		require.NoError(t, err)
		assert.Equal(t, "succeeded", intent.Status)
	})

	t.Run("Empty ID", func(t *testing.T) {
		svc := newTestStripeService("http://127.0.0.1:0")

		_, err := svc.RetrieveIntent("")
		assert.Error(t, err)
	})

	t.Run("Unknown Intent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"No such payment_intent"}}`))
		}))
		defer server.Close()

		svc := newTestStripeService(server.URL)

		_, err := svc.RetrieveIntent("pi_missing")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "No such payment_intent")
	})
}
