package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/marketplace/backend/internal/application/support"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// LoyaltyHandler manages manual loyalty point adjustments and the
// points ledger
type LoyaltyHandler struct {
	BaseHandler
	loyalty *support.LoyaltyService
	auth    *middleware.Auth
}

// NewLoyaltyHandler creates a new LoyaltyHandler
func NewLoyaltyHandler(loyalty *support.LoyaltyService, auth *middleware.Auth) *LoyaltyHandler {
	return &LoyaltyHandler{loyalty: loyalty, auth: auth}
}

// RegisterRoutes registers the loyalty routes
func (h *LoyaltyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/admin/customers/:id/loyalty", h.auth.AdminGuard())
	g.GET("/ledger", h.auth.Require(identity.PermUsersRead), h.Ledger)
	g.POST("/adjust", h.auth.Require(identity.PermActionsExecute), h.Adjust)
}

type adjustPointsRequest struct {
	Delta  int64  `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required,max=200"`
}

// Ledger returns the customer's loyalty transaction history
func (h *LoyaltyHandler) Ledger(c *gin.Context) {
	customerID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	entries, err := h.loyalty.Ledger(c.Request.Context(), actx.Admin.TenantID, customerID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// Adjust applies a manual point adjustment
func (h *LoyaltyHandler) Adjust(c *gin.Context) {
	customerID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req adjustPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid adjustment: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	result, err := h.loyalty.Adjust(c.Request.Context(), support.AdjustPointsInput{
		TenantID:   actx.Admin.TenantID,
		CustomerID: customerID,
		ActorID:    actx.Admin.ID,
		Delta:      req.Delta,
		Reason:     req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
