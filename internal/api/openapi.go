package api

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

// The OpenAPI 3.0.3 document is embedded so the endpoint keeps working
// regardless of the working directory the container starts in.
//
//go:embed openapi.json
var openAPIDocument []byte

// OpenAPI serves the OpenAPI 3.0.3 document used by HTTP-connector
// integrations that cannot consume 3.1.
func (h *Handler) OpenAPI(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", openAPIDocument)
}
