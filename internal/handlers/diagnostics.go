package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health answers the liveness check.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// EnvDiagnostics reports whether the backend settings are present. Values
// are MISSING or SET, never the setting itself.
func EnvDiagnostics(diagnostics func() map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		env := map[string]string{}
		if diagnostics != nil {
			env = diagnostics()
		}
		c.JSON(http.StatusOK, gin.H{"env": env})
	}
}
