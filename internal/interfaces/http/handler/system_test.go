package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/catalog/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(ctx context.Context) error {
	return p.err
}

func newSystemRouter(db handler.Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewSystemHandler(db)

	router := gin.New()
	router.GET("/health", h.Health)
	api := router.Group("/api/v1")
	h.RegisterRoutes(api)
	return router
}

func TestSystemHandler_Health(t *testing.T) {
	router := newSystemRouter(fakePinger{})

	w := performJSON(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]any)
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, "connected", data["database"])
}

func TestSystemHandler_Health_DatabaseDown(t *testing.T) {
	router := newSystemRouter(fakePinger{err: errors.New("connection refused")})

	w := performJSON(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]any)
	assert.Equal(t, "degraded", data["status"])
	assert.Equal(t, "unreachable", data["database"])
}

func TestSystemHandler_Health_NoDatabase(t *testing.T) {
	router := newSystemRouter(nil)

	w := performJSON(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]any)
	assert.Equal(t, "healthy", data["status"])
	assert.NotContains(t, data, "database")
}

func TestSystemHandler_Ping(t *testing.T) {
	router := newSystemRouter(nil)

	w := performJSON(router, http.MethodGet, "/api/v1/system/ping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]any)
	assert.Equal(t, "pong", data["message"])
	assert.NotEmpty(t, data["timestamp"])
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	router := newSystemRouter(nil)

	w := performJSON(router, http.MethodGet, "/api/v1/system/info", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]any)
	assert.Equal(t, "Catalog Generator API", data["name"])
	assert.Contains(t, data["go_version"], "go")
}

func TestIndustryHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.NewIndustryHandler().RegisterRoutes(api)

	w := performJSON(router, http.MethodGet, "/api/v1/industries", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]any)
	list := data["industries"].([]any)
	assert.NotEmpty(t, list)
	assert.Contains(t, list, "Tecnologia")
}
