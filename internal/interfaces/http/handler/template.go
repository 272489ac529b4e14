package handler

import (
	catalogapp "github.com/catalog/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// TemplateHandler handles template registry API endpoints
type TemplateHandler struct {
	BaseHandler
	templateService *catalogapp.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templateService *catalogapp.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// RegisterRoutes registers template routes
func (h *TemplateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	templates := rg.Group("/templates")
	{
		templates.POST("", h.Create)
		templates.GET("", h.List)
		templates.GET("/:id", h.Get)
		templates.PUT("/:id", h.Update)
		templates.DELETE("/:id", h.Delete)
	}
}

// Create registers a new rendering template
func (h *TemplateHandler) Create(c *gin.Context) {
	var req catalogapp.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	tpl, err := h.templateService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tpl)
}

// Get returns a template by id
func (h *TemplateHandler) Get(c *gin.Context) {
	tpl, err := h.templateService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tpl)
}

// List returns a paginated list of templates
func (h *TemplateHandler) List(c *gin.Context) {
	req := catalogapp.ListTemplatesRequest{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.templateService.List(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.Size)
}

// Update changes a template's background tone or asset URL
func (h *TemplateHandler) Update(c *gin.Context) {
	var req catalogapp.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	tpl, err := h.templateService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tpl)
}

// Delete removes a template from the registry
func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.templateService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
