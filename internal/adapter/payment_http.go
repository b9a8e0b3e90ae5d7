package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nitesh01487/natours/internal/config"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/utils"
	"github.com/nitesh01487/natours/models"
)

const checkoutSessionsPath = "/v1/checkout/sessions"

type httpPaymentGateway struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewPaymentGateway returns a [PaymentGateway] for cfg. Without a secret key
// every call fails with [ErrPaymentsDisabled].
func NewPaymentGateway(cfg config.Payment, logger *logger.Logger) (PaymentGateway, error) {
	if strings.TrimSpace(cfg.SecretKey) == "" {
		logger.Warn().Str("func", "NewPaymentGateway").Msg("payment secret key is empty, checkout is disabled")
		return disabledPaymentGateway{}, nil
	}

	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid payment base url: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.Timeout)
	client.SetAuthToken(cfg.SecretKey)

	return &httpPaymentGateway{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// CreateCheckoutSession implements [PaymentGateway]. The request is sent
// form-encoded with bracketed keys, as the checkout sessions API expects.
func (g *httpPaymentGateway) CreateCheckoutSession(ctx context.Context, req models.CheckoutSessionRequest) (models.CheckoutSession, error) {
	log := logger.FromContext(ctx)

	resp, err := g.client.R().
		SetContext(ctx).
		SetFormDataFromValues(checkoutForm(req)).
		Post(checkoutSessionsPath)
	if err != nil {
		log.Err(err).Str("func", "*httpPaymentGateway.CreateCheckoutSession").Msg("checkout session request failed")
		return models.CheckoutSession{}, fmt.Errorf("%w: %w", ErrGatewayUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Err(err).Str("func", "*httpPaymentGateway.CreateCheckoutSession").
			Int("status", resp.StatusCode()).
			Msg("checkout session rejected")
		return models.CheckoutSession{}, err
	}

	var session models.CheckoutSession
	if err = json.Unmarshal(resp.Body(), &session); err != nil {
		return models.CheckoutSession{}, fmt.Errorf("decode checkout session: %w", err)
	}

	log.Debug().Str("func", "*httpPaymentGateway.CreateCheckoutSession").Str("session_id", session.ID).Msg("checkout session created")
	return session, nil
}

func checkoutForm(req models.CheckoutSessionRequest) url.Values {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[]", "card")
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("customer_email", req.CustomerEmail)
	form.Set("client_reference_id", req.ClientReferenceID)

	item := req.LineItem
	const prefix = "line_items[0]"
	form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
	form.Set(prefix+"[price_data][currency]", item.Currency)
	form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.Amount, 10))
	form.Set(prefix+"[price_data][product_data][name]", item.Name)
	if item.Description != "" {
		form.Set(prefix+"[price_data][product_data][description]", item.Description)
	}
	for i, image := range item.Images {
		form.Set(fmt.Sprintf("%s[price_data][product_data][images][%d]", prefix, i), image)
	}

	return form
}

type disabledPaymentGateway struct{}

func (disabledPaymentGateway) CreateCheckoutSession(context.Context, models.CheckoutSessionRequest) (models.CheckoutSession, error) {
	return models.CheckoutSession{}, ErrPaymentsDisabled
}
