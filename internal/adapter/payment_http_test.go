// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitesh01487/natours/internal/config"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/models"
)

func newTestGateway(t *testing.T, serverURL string) PaymentGateway {
	t.Helper()
	g, err := NewPaymentGateway(config.Payment{
		BaseURL:   serverURL,
		SecretKey: "sk_test_123",
		Timeout:   5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	return g
}

func checkoutRequest() models.CheckoutSessionRequest {
	return models.CheckoutSessionRequest{
		SuccessURL:        "http://localhost:8080/?tour=1&user=7&price=397",
		CancelURL:         "http://localhost:8080/tour/the-forest-hiker",
		CustomerEmail:     "jonas@example.io",
		ClientReferenceID: "1",
		LineItem: models.CheckoutLineItem{
			Name:        "The Forest Hiker Tour",
			Description: "Breathtaking hike",
			Images:      []string{"https://www.natours.dev/img/tours/tour-1-cover.jpg"},
			Amount:      39700,
			Currency:    "inr",
			Quantity:    1,
		},
	}
}

// ── CreateCheckoutSession ───────────────────────────────────────────────────

func TestCreateCheckoutSession_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, checkoutSessionsPath, r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "card", r.PostForm.Get("payment_method_types[]"))
		assert.Equal(t, "jonas@example.io", r.PostForm.Get("customer_email"))
		assert.Equal(t, "1", r.PostForm.Get("client_reference_id"))
		assert.Equal(t, "39700", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "inr", r.PostForm.Get("line_items[0][price_data][currency]"))
		assert.Equal(t, "The Forest Hiker Tour", r.PostForm.Get("line_items[0][price_data][product_data][name]"))
		assert.Equal(t, "https://www.natours.dev/img/tours/tour-1-cover.jpg",
			r.PostForm.Get("line_items[0][price_data][product_data][images][0]"))
		assert.Equal(t, "1", r.PostForm.Get("line_items[0][quantity]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_a1","url":"https://checkout.example/pay/cs_test_a1","object":"checkout.session"}`))
	}))
	defer srv.Close()

	session, err := newTestGateway(t, srv.URL).CreateCheckoutSession(context.Background(), checkoutRequest())
	require.NoError(t, err)
	assert.Equal(t, models.CheckoutSession{ID: "cs_test_a1", URL: "https://checkout.example/pay/cs_test_a1"}, session)
}

func TestCreateCheckoutSession_GatewayErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{"bad request", http.StatusBadRequest, `{"error":{"type":"invalid_request_error","message":"Invalid currency: xyz"}}`, ErrBadRequest, "Invalid currency: xyz"},
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"Invalid API Key provided"}}`, ErrUnauthorized, "Invalid API Key"},
		{"rate limited", http.StatusTooManyRequests, ``, ErrRateLimited, ""},
		{"unavailable", http.StatusServiceUnavailable, `upstream down`, ErrGatewayUnavailable, "upstream down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestGateway(t, srv.URL).CreateCheckoutSession(context.Background(), checkoutRequest())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCreateCheckoutSession_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := newTestGateway(t, srv.URL).CreateCheckoutSession(context.Background(), checkoutRequest())
	assert.ErrorContains(t, err, "decode checkout session")
}

func TestNewPaymentGateway_Disabled(t *testing.T) {
	g, err := NewPaymentGateway(config.Payment{BaseURL: "https://api.stripe.com"}, logger.Nop())
	require.NoError(t, err)

	_, err = g.CreateCheckoutSession(context.Background(), checkoutRequest())
	assert.ErrorIs(t, err, ErrPaymentsDisabled)
}

func TestNewPaymentGateway_InvalidURL(t *testing.T) {
	_, err := NewPaymentGateway(config.Payment{BaseURL: "   ", SecretKey: "sk"}, logger.Nop())
	assert.Error(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "https://api.stripe.com/", want: "https://api.stripe.com"},
		{raw: "api.stripe.com", want: "https://api.stripe.com"},
		{raw: "http://127.0.0.1:12111", want: "http://127.0.0.1:12111"},
		{raw: "", wantErr: true},
		{raw: "https://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
