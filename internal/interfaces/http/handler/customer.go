package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/marketplace/backend/internal/application/support"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// CustomerHandler serves the support console's customer list and the
// Customer 360 view
type CustomerHandler struct {
	BaseHandler
	customers   *support.CustomerService
	customer360 *support.Customer360Service
	auth        *middleware.Auth
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customers *support.CustomerService, customer360 *support.Customer360Service, auth *middleware.Auth) *CustomerHandler {
	return &CustomerHandler{customers: customers, customer360: customer360, auth: auth}
}

// RegisterRoutes registers the customer console routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/admin/customers", h.auth.AdminGuard(), h.auth.Require(identity.PermUsersRead))
	g.GET("", h.List)
	g.GET("/:id", h.Get360)
	g.GET("/:id/timeline", h.Timeline)
	g.GET("/:id/tickets", h.Tickets)
	g.POST("/:id/block", h.auth.Require(identity.PermUsersWrite), h.Block)
	g.POST("/:id/unblock", h.auth.Require(identity.PermUsersWrite), h.Unblock)
}

type customerListRequest struct {
	dto.ListRequest
	Status      string `form:"status"`
	LoyaltyTier string `form:"loyalty_tier"`
	Country     string `form:"country"`
	City        string `form:"city"`
	MinPoints   *int64 `form:"min_points"`
}

// List returns a filtered, paginated customer list. Contact fields are
// masked according to the viewer's role.
func (h *CustomerHandler) List(c *gin.Context) {
	var req customerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}

	filter := req.ToFilter()
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.LoyaltyTier != "" {
		filter.Filters["loyalty_tier"] = req.LoyaltyTier
	}
	if req.Country != "" {
		filter.Filters["country"] = req.Country
	}
	if req.City != "" {
		filter.Filters["city"] = req.City
	}
	if req.MinPoints != nil {
		filter.Filters["min_points"] = *req.MinPoints
	}

	actx, _ := adminFrom(c)
	page, err := h.customers.List(c.Request.Context(), actx.Admin.TenantID, filter, actx.Admin)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get360 returns the aggregated Customer 360 view
func (h *CustomerHandler) Get360(c *gin.Context) {
	customerID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	actx, _ := adminFrom(c)
	view, err := h.customer360.Get(c.Request.Context(), actx.Admin.TenantID, customerID, actx.Admin)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Timeline returns the customer's audit timeline
func (h *CustomerHandler) Timeline(c *gin.Context) {
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
	filter := req.ToFilter()
	if action := c.Query("action"); action != "" {
		filter.Filters["action"] = action
	}

	actx, _ := adminFrom(c)
	entries, err := h.customers.Timeline(c.Request.Context(), actx.Admin.TenantID, customerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// Tickets returns the customer's support tickets
func (h *CustomerHandler) Tickets(c *gin.Context) {
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
	filter := req.ToFilter()
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	actx, _ := adminFrom(c)
	tickets, err := h.customers.Tickets(c.Request.Context(), actx.Admin.TenantID, customerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tickets)
}

// Block suspends the customer's account
func (h *CustomerHandler) Block(c *gin.Context) {
	customerID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	actx, _ := adminFrom(c)
	if err := h.customers.Block(c.Request.Context(), actx.Admin.TenantID, customerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Unblock reinstates the customer's account
func (h *CustomerHandler) Unblock(c *gin.Context) {
	customerID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	actx, _ := adminFrom(c)
	if err := h.customers.Unblock(c.Request.Context(), actx.Admin.TenantID, customerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
