package handler

import "github.com/gin-gonic/gin"

// Supported industry labels for the front-end picker. The hero image
// workflow accepts free-form industries; this list is only a suggestion.
var industries = []string{
	"Tecnologia", "Moda", "Alimentação", "Saúde", "Automóveis",
	"Imóveis", "Educação", "Turismo", "Esportes", "Beleza",
}

// IndustryHandler serves the static industry list
type IndustryHandler struct {
	BaseHandler
}

// NewIndustryHandler creates a new IndustryHandler
func NewIndustryHandler() *IndustryHandler {
	return &IndustryHandler{}
}

// RegisterRoutes registers industry routes
func (h *IndustryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/industries", h.List)
}

// IndustriesResponse lists the supported industries
type IndustriesResponse struct {
	Industries []string `json:"industries"`
}

// List returns the supported industries
func (h *IndustryHandler) List(c *gin.Context) {
	h.Success(c, IndustriesResponse{Industries: industries})
}
