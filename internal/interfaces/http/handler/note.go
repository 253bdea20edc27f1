package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/marketplace/backend/internal/application/support"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// NoteHandler manages internal notes on customer profiles
type NoteHandler struct {
	BaseHandler
	notes *support.NoteService
	auth  *middleware.Auth
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(notes *support.NoteService, auth *middleware.Auth) *NoteHandler {
	return &NoteHandler{notes: notes, auth: auth}
}

// RegisterRoutes registers the note routes
func (h *NoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/admin/customers/:id/notes", h.auth.AdminGuard())
	g.GET("", h.auth.Require(identity.PermNotesRead), h.List)
	g.POST("", h.auth.Require(identity.PermNotesWrite), h.Create)
}

type createNoteRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// List returns the customer's notes, newest first
func (h *NoteHandler) List(c *gin.Context) {
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
	page, err := h.notes.List(c.Request.Context(), actx.Admin.TenantID, customerID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Create adds a note authored by the current admin
func (h *NoteHandler) Create(c *gin.Context) {
	customerID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid note: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	note, err := h.notes.Create(c.Request.Context(), support.CreateNoteInput{
		TenantID:   actx.Admin.TenantID,
		CustomerID: customerID,
		AuthorID:   actx.Admin.ID,
		Content:    req.Content,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, note)
}
