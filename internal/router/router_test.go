package router

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"hadoop-cluster-backend/internal/handler"
	"hadoop-cluster-backend/internal/pkg/logger"
)

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, handler.NewClusterHandler(nil, logger.NewNopLogger(), nil, 0))

	routes := make(map[string]bool)
	for _, ri := range r.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"GET /api/clusters",
		"POST /api/clusters",
		"PUT /api/clusters",
		"POST /api/clusters/import",
		"GET /api/clusters/:name",
		"DELETE /api/clusters/:name",
		"POST /api/clusters/:name/tests",
		"GET /api/clusters/:name/tests",
		"GET /api/clusters/:name/tests/stream",
		"GET /api/shims",
		"POST /api/drivers",
		"GET /api/files/valid",
	} {
		assert.True(t, routes[want], want)
	}
}
