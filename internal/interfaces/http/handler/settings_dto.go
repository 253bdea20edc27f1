package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketplace/backend/internal/domain/settings"
)

type currencyResponse struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"code"`
	Symbol    string          `json:"symbol"`
	Rate      decimal.Decimal `json:"rate"`
	Enabled   bool            `json:"enabled"`
	IsDefault bool            `json:"is_default"`
}

func newCurrencyResponse(c *settings.Currency) currencyResponse {
	return currencyResponse{
		ID:        c.ID,
		Code:      c.Code,
		Symbol:    c.Symbol,
		Rate:      c.Rate,
		Enabled:   c.Enabled,
		IsDefault: c.IsDefault,
	}
}

func newCurrencyResponses(currencies []*settings.Currency) []currencyResponse {
	out := make([]currencyResponse, len(currencies))
	for i, c := range currencies {
		out[i] = newCurrencyResponse(c)
	}
	return out
}

type languageResponse struct {
	ID        uuid.UUID `json:"id"`
	Tag       string    `json:"tag"`
	Name      string    `json:"name"`
	Enabled   bool      `json:"enabled"`
	IsDefault bool      `json:"is_default"`
}

func newLanguageResponse(l *settings.Language) languageResponse {
	return languageResponse{ID: l.ID, Tag: l.Tag, Name: l.Name, Enabled: l.Enabled, IsDefault: l.IsDefault}
}

func newLanguageResponses(languages []*settings.Language) []languageResponse {
	out := make([]languageResponse, len(languages))
	for i, l := range languages {
		out[i] = newLanguageResponse(l)
	}
	return out
}

type shippingZoneResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Countries []string  `json:"countries"`
	Enabled   bool      `json:"enabled"`
}

func newShippingZoneResponse(z *settings.ShippingZone) shippingZoneResponse {
	return shippingZoneResponse{ID: z.ID, Name: z.Name, Countries: z.Countries, Enabled: z.Enabled}
}

type shippingMethodResponse struct {
	ID      uuid.UUID       `json:"id"`
	ZoneID  uuid.UUID       `json:"zone_id"`
	Name    string          `json:"name"`
	Fee     decimal.Decimal `json:"fee"`
	EtaDays int             `json:"eta_days"`
	Enabled bool            `json:"enabled"`
}

func newShippingMethodResponse(m *settings.ShippingMethod) shippingMethodResponse {
	return shippingMethodResponse{ID: m.ID, ZoneID: m.ZoneID, Name: m.Name, Fee: m.Fee, EtaDays: m.EtaDays, Enabled: m.Enabled}
}

type paymentMethodResponse struct {
	ID            uuid.UUID `json:"id"`
	Provider      string    `json:"provider"`
	DisplayName   string    `json:"display_name"`
	CredentialRef string    `json:"credential_ref,omitempty"`
	Enabled       bool      `json:"enabled"`
}

func newPaymentMethodResponse(p *settings.PaymentMethodConfig) paymentMethodResponse {
	return paymentMethodResponse{
		ID:            p.ID,
		Provider:      string(p.Provider),
		DisplayName:   p.DisplayName,
		CredentialRef: p.CredentialRef,
		Enabled:       p.Enabled,
	}
}

type securityPolicyResponse struct {
	MinPasswordLength int      `json:"min_password_length"`
	RequireMFA        bool     `json:"require_mfa"`
	SessionLifetime   int64    `json:"session_lifetime_seconds"`
	MaxLoginAttempts  int      `json:"max_login_attempts"`
	LockoutMinutes    int      `json:"lockout_minutes"`
	IPAllowlist       []string `json:"ip_allowlist"`
}

func newSecurityPolicyResponse(p *settings.SecurityPolicy) securityPolicyResponse {
	return securityPolicyResponse{
		MinPasswordLength: p.MinPasswordLength,
		RequireMFA:        p.RequireMFA,
		SessionLifetime:   p.SessionLifetime,
		MaxLoginAttempts:  p.MaxLoginAttempts,
		LockoutMinutes:    p.LockoutMinutes,
		IPAllowlist:       p.IPAllowlist,
	}
}

type webhookEndpointResponse struct {
	ID           uuid.UUID  `json:"id"`
	URL          string     `json:"url"`
	Events       []string   `json:"events"`
	Secret       string     `json:"secret,omitempty"`
	Enabled      bool       `json:"enabled"`
	FailureCount int        `json:"failure_count"`
	LastFiredAt  *time.Time `json:"last_fired_at,omitempty"`
}

// newWebhookEndpointResponse maps an endpoint for listing. The signing
// secret is withheld; it is only disclosed once at creation.
func newWebhookEndpointResponse(w *settings.WebhookEndpoint, includeSecret bool) webhookEndpointResponse {
	events := make([]string, len(w.Events))
	for i, e := range w.Events {
		events[i] = string(e)
	}
	resp := webhookEndpointResponse{
		ID:           w.ID,
		URL:          w.URL,
		Events:       events,
		Enabled:      w.Enabled,
		FailureCount: w.FailureCount,
		LastFiredAt:  w.LastFiredAt,
	}
	if includeSecret {
		resp.Secret = w.Secret
	}
	return resp
}

type notificationRuleResponse struct {
	ID      uuid.UUID `json:"id"`
	Event   string    `json:"event"`
	Channel string    `json:"channel"`
	Enabled bool      `json:"enabled"`
}

func newNotificationRuleResponse(r *settings.NotificationRule) notificationRuleResponse {
	return notificationRuleResponse{ID: r.ID, Event: string(r.Event), Channel: r.Channel, Enabled: r.Enabled}
}
