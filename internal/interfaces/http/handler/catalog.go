package handler

import (
	"encoding/base64"
	"strings"

	catalogapp "github.com/catalog/backend/internal/application/catalog"
	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/catalog/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// CatalogHandler handles catalog generation API endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	catalogs := rg.Group("/catalogs")
	{
		catalogs.POST("", h.Generate)
		catalogs.GET("/:job_id/status", h.GetStatus)
	}
}

// GenerateCatalogRequest is the wire form of a catalog generation request.
// Logos arrive base64-encoded, with or without a data-URL prefix.
type GenerateCatalogRequest struct {
	CustomerName  string                    `json:"customer_name" binding:"required,min=1,max=200"`
	Industry      string                    `json:"industry" binding:"required,min=1,max=100"`
	LogoDark      string                    `json:"logo_dark" binding:"required"`
	LogoLight     string                    `json:"logo_light" binding:"required"`
	LogoPlacement string                    `json:"logo_placement" binding:"omitempty,oneof=left_chest center"`
	Selections    []catalogapp.SelectionDTO `json:"selections" binding:"required,min=1,max=50,dive"`
}

// Generate submits a catalog generation job
func (h *CatalogHandler) Generate(c *gin.Context) {
	var req GenerateCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	logoDark, err := decodeLogo(req.LogoDark)
	if err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidInput, "logo_dark is not valid base64")
		return
	}
	logoLight, err := decodeLogo(req.LogoLight)
	if err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidInput, "logo_light is not valid base64")
		return
	}

	placement := catalog.LogoPlacement(req.LogoPlacement)
	if req.LogoPlacement == "" {
		placement = catalog.LogoPlacementLeftChest
	}

	selections := make([]catalog.Selection, 0, len(req.Selections))
	for _, sel := range req.Selections {
		selections = append(selections, catalog.Selection{Item: sel.Item, Color: sel.Color})
	}

	resp, err := h.catalogService.Submit(c.Request.Context(), catalogapp.SubmitCatalogRequest{
		CustomerName:  req.CustomerName,
		Industry:      req.Industry,
		LogoDark:      logoDark,
		LogoLight:     logoLight,
		LogoPlacement: placement,
		Selections:    selections,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Accepted(c, resp)
}

// GetStatus returns the current snapshot of a generation job
func (h *CatalogHandler) GetStatus(c *gin.Context) {
	jobID := c.Param("job_id")

	status, err := h.catalogService.GetStatus(c.Request.Context(), jobID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, status)
}

// decodeLogo decodes a base64 logo payload, tolerating a data-URL prefix
// such as "data:image/png;base64,"
func decodeLogo(encoded string) ([]byte, error) {
	if idx := strings.Index(encoded, ","); idx >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
}
