package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/marketplace/backend/internal/application/support"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// QuickActionHandler dispatches console quick actions against a
// customer profile
type QuickActionHandler struct {
	BaseHandler
	actions *support.QuickActionService
	auth    *middleware.Auth
}

// NewQuickActionHandler creates a new QuickActionHandler
func NewQuickActionHandler(actions *support.QuickActionService, auth *middleware.Auth) *QuickActionHandler {
	return &QuickActionHandler{actions: actions, auth: auth}
}

// RegisterRoutes registers the quick action route
func (h *QuickActionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/customers/:id/actions",
		h.auth.AdminGuard(), h.auth.Require(identity.PermActionsExecute), h.Execute)
}

type quickActionRequest struct {
	Kind   string                 `json:"kind" binding:"required,oneof=send_email create_ticket adjust_points add_note"`
	Email  *support.EmailPayload  `json:"email,omitempty"`
	Ticket *support.TicketPayload `json:"ticket,omitempty"`
	Points *support.PointsPayload `json:"points,omitempty"`
	Note   *support.NotePayload   `json:"note,omitempty"`
}

// Execute runs one quick action against the customer
func (h *QuickActionHandler) Execute(c *gin.Context) {
	customerID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req quickActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid action: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	result, err := h.actions.Execute(c.Request.Context(), support.QuickActionInput{
		TenantID:   actx.Admin.TenantID,
		CustomerID: customerID,
		ActorID:    actx.Admin.ID,
		Kind:       support.ActionKind(req.Kind),
		Email:      req.Email,
		Ticket:     req.Ticket,
		Points:     req.Points,
		Note:       req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
