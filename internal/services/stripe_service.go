package services

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/velorent/vehicle-rental-backend/internal/config"
	"github.com/velorent/vehicle-rental-backend/internal/models"
)

// StripeBaseURL is the production Stripe API endpoint. Overridable on the
// service for tests.
const StripeBaseURL = "https://api.stripe.com"

// ErrPaymentNotSucceeded is returned when a payment intent is confirmed
// before the gateway reports it as succeeded.
var ErrPaymentNotSucceeded = fmt.Errorf("payment has not been completed")

// StripeService talks to the Stripe payment-intents API over plain HTTP
type StripeService struct {
	secretKey       string
	defaultCurrency string
	baseURL         string
	logger          *logrus.Logger
	client          *http.Client
}

// PaymentIntent is the subset of the Stripe payment-intent object the
// API exposes to clients.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// stripeError is the error envelope Stripe wraps failures in
type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewStripeService creates a new StripeService
func NewStripeService(cfg *config.StripeConfig, logger *logrus.Logger) *StripeService {
	return &StripeService{
		secretKey:       cfg.SecretKey,
		defaultCurrency: cfg.DefaultCurrency,
		baseURL:         StripeBaseURL,
		logger:          logger,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

// SetBaseURL points the service at a different API host. Used by tests.
func (s *StripeService) SetBaseURL(baseURL string) {
	s.baseURL = strings.TrimRight(baseURL, "/")
}

// CreateIntent creates a payment intent for the given major-unit amount.
// Stripe takes amounts in the smallest currency unit, so 49.99 becomes 4999.
func (s *StripeService) CreateIntent(amount float64, currency string, metadata models.JSONB) (*PaymentIntent, error) {
	if s.secretKey == "" {
		return nil, fmt.Errorf("payment gateway not configured: missing secret key")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be greater than zero")
	}

	if currency == "" {
		currency = s.defaultCurrency
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(int64(math.Round(amount*100)), 10))
	form.Set("currency", strings.ToLower(currency))
	form.Set("automatic_payment_methods[enabled]", "true")
	for key, value := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), fmt.Sprintf("%v", value))
	}

	s.logger.WithFields(logrus.Fields{
		"amount":   amount,
		"currency": currency,
	}).Info("Creating payment intent")

	intent, err := s.do("POST", "/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	return intent, nil
}

// RetrieveIntent fetches the current state of a payment intent
func (s *StripeService) RetrieveIntent(intentID string) (*PaymentIntent, error) {
	if s.secretKey == "" {
		return nil, fmt.Errorf("payment gateway not configured: missing secret key")
	}
	if intentID == "" {
		return nil, fmt.Errorf("payment intent id is required")
	}

	return s.do("GET", "/v1/payment_intents/"+url.PathEscape(intentID), nil)
}

func (s *StripeService) do(method, path string, body io.Reader) (*PaymentIntent, error) {
	req, err := http.NewRequest(method, s.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.WithError(err).Error("Failed to call payment gateway")
		return nil, fmt.Errorf("failed to call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var gatewayErr stripeError
		if err := json.Unmarshal(respBody, &gatewayErr); err == nil && gatewayErr.Error.Message != "" {
			s.logger.WithFields(logrus.Fields{
				"status_code": resp.StatusCode,
				"type":        gatewayErr.Error.Type,
				"code":        gatewayErr.Error.Code,
			}).Error("Payment gateway rejected request")
			return nil, fmt.Errorf("payment gateway error: %s", gatewayErr.Error.Message)
		}
		return nil, fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var intent PaymentIntent
	if err := json.Unmarshal(respBody, &intent); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return &intent, nil
}
