package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	settingsapp "github.com/marketplace/backend/internal/application/settings"
	"github.com/marketplace/backend/internal/application/support"
	"github.com/marketplace/backend/internal/domain/settings"
	"github.com/marketplace/backend/internal/infrastructure/payment"
)

// SignatureHeader carries the gateway's HMAC over the raw body
const SignatureHeader = "X-Callback-Signature"

// PaymentHandler opens payments with the gateways and receives their
// signed settlement callbacks
type PaymentHandler struct {
	BaseHandler
	verifier *payment.CallbackVerifier
	gateway  *payment.Gateway
	methods  *settingsapp.PaymentConfigService
	orders   *support.OrderService
	logger   *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(verifier *payment.CallbackVerifier, gateway *payment.Gateway, methods *settingsapp.PaymentConfigService, orders *support.OrderService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{verifier: verifier, gateway: gateway, methods: methods, orders: orders, logger: logger}
}

// RegisterRoutes registers the storefront payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/initiate", h.Initiate)
	rg.POST("/payments/callbacks/:provider", h.Handle)
}

type initiatePaymentRequest struct {
	Provider   string `json:"provider" binding:"required"`
	OrderID    string `json:"order_id" binding:"required"`
	CustomerID string `json:"customer_id" binding:"required,uuid"`
	Amount     string `json:"amount" binding:"required"`
	Currency   string `json:"currency" binding:"required,len=3"`
	ReturnURL  string `json:"return_url" binding:"omitempty,url"`
}

// Initiate opens a payment with the provider's gateway. The provider
// must be configured and enabled in the tenant's settings.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		h.BadRequest(c, "Missing or invalid tenant header")
		return
	}

	var req initiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid payment request: "+err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		h.BadRequest(c, "Amount must be a positive number")
		return
	}

	provider := settings.PaymentProvider(req.Provider)
	if _, err := h.methods.EnabledProvider(c.Request.Context(), tenantID, provider); err != nil {
		h.HandleError(c, err)
		return
	}

	customerID, _ := uuid.Parse(req.CustomerID)
	result, err := h.gateway.Initiate(c.Request.Context(), provider, payment.InitiationRequest{
		TenantID:   tenantID,
		CustomerID: customerID,
		OrderID:    req.OrderID,
		Amount:     amount,
		Currency:   req.Currency,
		ReturnURL:  req.ReturnURL,
	})
	if err != nil {
		if errors.Is(err, payment.ErrUnknownProvider) {
			h.NotFound(c, "Unknown payment provider")
			return
		}
		h.logger.Error("Payment initiation failed",
			zap.String("provider", string(provider)),
			zap.String("order_id", req.OrderID),
			zap.Error(err))
		h.Error(c, http.StatusBadGateway, "GATEWAY_FAILED", "Payment gateway is unavailable")
		return
	}
	h.Success(c, result)
}

// Handle verifies and applies one gateway callback. Unpaid statuses
// are acknowledged without side effects so gateways stop retrying.
func (h *PaymentHandler) Handle(c *gin.Context) {
	provider := settings.PaymentProvider(c.Param("provider"))

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Unable to read callback body")
		return
	}

	event, err := h.verifier.Verify(provider, body, c.GetHeader(SignatureHeader))
	if err != nil {
		if errors.Is(err, payment.ErrUnknownProvider) {
			h.NotFound(c, "Unknown payment provider")
			return
		}
		h.logger.Warn("Rejected payment callback",
			zap.String("provider", string(provider)),
			zap.Error(err))
		h.Error(c, http.StatusUnauthorized, "INVALID_SIGNATURE", "Callback signature verification failed")
		return
	}

	if !event.Paid() {
		h.NoContent(c)
		return
	}

	items := make([]support.OrderItem, len(event.Items))
	for i, item := range event.Items {
		items[i] = support.OrderItem{Category: item.Category, Tags: item.Tags}
	}

	err = h.orders.HandlePaid(c.Request.Context(), support.PaidOrderInput{
		TenantID:   event.TenantID,
		CustomerID: event.CustomerID,
		OrderID:    event.OrderID,
		Total:      event.Amount,
		Currency:   event.Currency,
		PaidAt:     event.OccurredAt,
		Items:      items,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
