// Package payment implémente la création de sessions de checkout auprès
// d'une passerelle de paiement compatible Stripe (API Checkout Sessions,
// corps application/x-www-form-urlencoded, auth Bearer par clé secrète).
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jannahweb/jannah-os-api/internal/application/billing"
	"github.com/jannahweb/jannah-os-api/pkg/config"
)

var _ billing.CheckoutProvider = (*CheckoutClient)(nil)

// CheckoutClient client HTTP de la passerelle de paiement.
type CheckoutClient struct {
	httpClient *http.Client
	cfg        config.PaymentConfig
}

// NewCheckoutClient construit le client avec un timeout réseau court : la
// création de session est interactive, l'utilisateur attend la redirection.
func NewCheckoutClient(cfg config.PaymentConfig) *CheckoutClient {
	return &CheckoutClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cfg:        cfg,
	}
}

// checkoutSession sous-ensemble de la réponse de l'API qui nous intéresse.
type checkoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// apiError corps d'erreur de la passerelle.
type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateSession crée une session de paiement pour la facture et retourne
// l'URL de redirection. Le montant est converti en centimes (plus petite
// unité de la devise). Jamais de retry : l'échec remonte tel quel à
// l'action utilisateur qui l'a déclenché.
func (c *CheckoutClient) CreateSession(ctx context.Context, invoiceID, invoiceNumber string, amount decimal.Decimal) (string, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", c.cfg.SuccessURL)
	form.Set("cancel_url", c.cfg.CancelURL)
	form.Set("client_reference_id", invoiceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", c.cfg.Currency)
	form.Set("line_items[0][price_data][product_data][name]", "Facture "+invoiceNumber)
	form.Set("line_items[0][price_data][unit_amount]", amount.Mul(decimal.NewFromInt(100)).Round(0).String())

	endpoint := strings.TrimRight(c.cfg.APIURL, "/") + "/v1/checkout/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("checkout: construire requête: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("checkout: appel passerelle: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("checkout: lire réponse: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("checkout: passerelle (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("checkout: passerelle (%d)", resp.StatusCode)
	}

	var session checkoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return "", fmt.Errorf("checkout: décoder réponse: %w", err)
	}
	if session.URL == "" {
		return "", fmt.Errorf("checkout: session sans URL de redirection")
	}
	return session.URL, nil
}
